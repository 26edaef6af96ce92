package helpers

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/m3rciful/recruitbot/core/logger"
	"github.com/m3rciful/recruitbot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

var globalDispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher wires the asynchronous sender used by helper functions.
func SetDispatcher(d *sender.Dispatcher) {
	globalDispatcher.Store(d)
}

// SendTo runs an outbound call for chatID on the dispatcher, preserving the
// order of calls per chat. Without a dispatcher run executes synchronously.
// A full or closed queue drops the call and returns the dispatcher error;
// calls never bypass the queue.
func SendTo(ctx context.Context, chatID int64, action, endpoint string, keyboard bool, run func() error) error {
	disp := globalDispatcher.Load()
	if disp == nil {
		CountersFrom(ctx).Add(keyboard)
		return run()
	}
	err := disp.Enqueue(ctx, chatID, action, endpoint, run)
	if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
		logger.Warn(ctx, "tg.sender", "queue.drop",
			slog.String("action", action),
			slog.String("endpoint", endpoint),
			slog.String("err", err.Error()),
		)
		return err
	}
	if err == nil {
		CountersFrom(ctx).Add(keyboard)
	}
	return err
}

// SendText sends raw text (no parse mode) to the current recipient.
func SendText(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	opts := &tele.SendOptions{}
	if len(markup) > 0 {
		opts.ReplyMarkup = markup[0]
	}
	chatID, _ := IDs(c)
	return SendTo(BuildContext(c), chatID, "send.text", "sendMessage", opts.ReplyMarkup != nil, func() error {
		return c.Send(text, opts)
	})
}

// SendMDV2 sends a message with MarkdownV2 parse mode and optional reply markup.
func SendMDV2(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	opts := &tele.SendOptions{ParseMode: tele.ModeMarkdownV2}
	if len(markup) > 0 {
		opts.ReplyMarkup = markup[0]
	}
	chatID, _ := IDs(c)
	return SendTo(BuildContext(c), chatID, "send.md", "sendMessage", opts.ReplyMarkup != nil, func() error {
		return c.Send(text, opts)
	})
}

// Respond answers the pending callback query, if any, with an optional toast.
func Respond(c tele.Context, text string) error {
	if c.Callback() == nil {
		return nil
	}
	if text == "" {
		return c.Respond()
	}
	return c.Respond(&tele.CallbackResponse{Text: text})
}
