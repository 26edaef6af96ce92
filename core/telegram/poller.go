package telegram

import (
	"fmt"
	"strings"
	"time"

	coreconfig "github.com/m3rciful/recruitbot/core/config"

	tele "gopkg.in/telebot.v4"
)

const defaultPollTimeoutSeconds = 10

// BuildPoller returns a Telebot poller for the configured run mode.
func BuildPoller(cfg *coreconfig.Config) tele.Poller {
	if strings.EqualFold(strings.TrimSpace(cfg.Telegram.RunMode), coreconfig.RunModeWebhook) {
		return &tele.Webhook{
			Listen:   fmt.Sprintf("%s:%d", cfg.Webhook.Listen, cfg.Webhook.Port),
			Endpoint: &tele.WebhookEndpoint{PublicURL: cfg.Webhook.URL},
		}
	}
	return &tele.LongPoller{Timeout: time.Duration(pollTimeoutSeconds(cfg.Telegram.LongPollTimeoutSeconds)) * time.Second}
}

func pollTimeoutSeconds(configured int) int {
	if configured <= 0 {
		return defaultPollTimeoutSeconds
	}
	return configured
}
