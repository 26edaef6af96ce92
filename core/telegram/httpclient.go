package telegram

import (
	"net/http"
	"time"

	coreconfig "github.com/m3rciful/recruitbot/core/config"
	"github.com/m3rciful/recruitbot/core/netutil"
)

const (
	// pollHeaderMargin is added to the long-poll timeout so getUpdates is
	// never cut before Telegram answers.
	pollHeaderMargin = 10 * time.Second
	apiRetryBackoff  = 2 * time.Second
	apiCallTimeout   = 30 * time.Second
)

// BuildHTTPClient returns an HTTP client tuned for Telegram API calls.
func BuildHTTPClient(cfg coreconfig.TelegramConfig) *http.Client {
	headerTimeout := time.Duration(pollTimeoutSeconds(cfg.LongPollTimeoutSeconds))*time.Second + pollHeaderMargin
	return netutil.NewHTTPClient(netutil.ClientOptions{
		Timeout:               max(apiCallTimeout, headerTimeout+pollHeaderMargin),
		ResponseHeaderTimeout: headerTimeout,
		Retries:               cfg.HTTPRetries,
		Backoff:               apiRetryBackoff,
	})
}
