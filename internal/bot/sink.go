package bot

import (
	"context"
	"errors"
	"sync"

	"github.com/samber/lo"

	tghelpers "github.com/m3rciful/recruitbot/core/telegram/helpers"
	"github.com/m3rciful/recruitbot/core/telegram/keyboard"
	"github.com/m3rciful/recruitbot/internal/conversation"

	tele "gopkg.in/telebot.v4"
)

// ErrDetached is returned by TelegramSink before a bot is attached.
var ErrDetached = errors.New("bot: sink has no telegram bot attached")

// Messenger is the part of *tele.Bot the sink needs.
type Messenger interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// TelegramSink delivers conversation replies as plain text messages with an
// inline keyboard. Sends run on the helper dispatcher keyed by user id, so
// replies to one user keep their order.
type TelegramSink struct {
	mu  sync.RWMutex
	api Messenger
}

var _ conversation.Sink = (*TelegramSink)(nil)

// NewTelegramSink returns a detached sink; call Attach once the bot exists.
func NewTelegramSink() *TelegramSink {
	return &TelegramSink{}
}

// Attach sets the messenger used for sends.
func (s *TelegramSink) Attach(api Messenger) {
	s.mu.Lock()
	s.api = api
	s.mu.Unlock()
}

func (s *TelegramSink) messenger() Messenger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.api
}

// Send implements conversation.Sink.
func (s *TelegramSink) Send(ctx context.Context, reply conversation.Reply) error {
	api := s.messenger()
	if api == nil {
		return ErrDetached
	}
	opts := &tele.SendOptions{ReplyMarkup: Markup(reply.Keyboard)}
	to := tele.ChatID(reply.UserID)
	return tghelpers.SendTo(ctx, reply.UserID, "send.reply", "sendMessage", opts.ReplyMarkup != nil, func() error {
		_, err := api.Send(to, reply.Text, opts)
		return err
	})
}

// Markup converts a conversation keyboard into inline markup. Token buttons
// carry the token as raw callback data.
func Markup(rows [][]conversation.Button) *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(lo.Map(rows, func(row []conversation.Button, _ int) []keyboard.InlineBtn {
		return lo.Map(row, func(b conversation.Button, _ int) keyboard.InlineBtn {
			return keyboard.InlineBtn{Text: b.Label, Data: b.Token, URL: b.URL}
		})
	})...)
}
