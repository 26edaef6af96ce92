// Package bot binds the conversation engine to Telegram updates.
package bot

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m3rciful/recruitbot/core/logger"
	tg "github.com/m3rciful/recruitbot/core/telegram"
	"github.com/m3rciful/recruitbot/core/telegram/callbacks"
	"github.com/m3rciful/recruitbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/recruitbot/core/telegram/helpers"
	"github.com/m3rciful/recruitbot/internal/conversation"

	tele "gopkg.in/telebot.v4"
)

const component = "bot"

// User-facing notices sent by the transport layer.
const (
	NoticeUnsupported = "Unsupported action"
	NoticeUnavailable = "The service is temporarily unavailable. Please try again later."
)

// Turns runs one conversation event.
type Turns interface {
	Handle(ctx context.Context, ev conversation.Event) error
}

// Handlers turn Telegram updates into conversation events.
type Handlers struct {
	turns Turns
	sink  conversation.Sink
}

// NewHandlers builds Handlers; sink delivers the service notices.
func NewHandlers(turns Turns, sink conversation.Sink) *Handlers {
	return &Handlers{turns: turns, sink: sink}
}

// Register wires the handlers into reg: /start as a command, every
// slash-prefixed callback as a directive and any other text as free input.
func (h *Handlers) Register(reg *tg.Registry) error {
	reg.RegisterCommand(conversation.TokenStart, commands.Command{
		Handler:     h.Start,
		Description: "Open the main menu",
	})
	reg.SetTextFallback(h.Text)
	reg.SetCallbackNotFound(h.Unsupported)
	return reg.RegisterCallbackPrefix("/", h.Callback)
}

// Start handles the /start command.
func (h *Handlers) Start(c tele.Context) error {
	_, userID := tghelpers.IDs(c)
	return h.run(c, conversation.Directive(userID, conversation.TokenStart))
}

// Text handles typed input.
func (h *Handlers) Text(c tele.Context) error {
	_, userID := tghelpers.IDs(c)
	return h.run(c, conversation.FreeText(userID, c.Text()))
}

// Callback handles a pressed inline button whose data is a directive token.
func (h *Handlers) Callback(c tele.Context) error {
	_, userID := tghelpers.IDs(c)
	err := h.run(c, conversation.Directive(userID, callbacks.CallbackKey(c)))
	if errors.Is(err, conversation.ErrUnknownDirective) {
		return h.Unsupported(c)
	}
	if ackErr := tghelpers.Respond(c, ""); ackErr != nil {
		logger.Debug(tghelpers.BuildContext(c), component, "callback.ack",
			slog.String("status", "fail"),
			slog.String("err", ackErr.Error()),
		)
	}
	return err
}

// Unsupported answers a callback nothing can handle.
func (h *Handlers) Unsupported(c tele.Context) error {
	return tghelpers.Respond(c, NoticeUnsupported)
}

// run passes ev to the engine. Unknown directives are returned to the caller;
// other failures are logged and reported to the user once.
func (h *Handlers) run(c tele.Context, ev conversation.Event) error {
	ctx := tghelpers.BuildContext(c)
	err := h.turns.Handle(ctx, ev)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, conversation.ErrUnknownDirective):
		logger.Debug(ctx, component, "directive.unknown", slog.String("token", logger.SanitizeLimit(ev.Token, 64)))
		return err
	case errors.Is(err, conversation.ErrNoUser):
		logger.Debug(ctx, component, "update.skip", slog.String("reason", "no_user"))
		return nil
	case errors.Is(err, context.Canceled):
		return nil
	}

	logger.Warn(ctx, component, "turn.fail",
		slog.String("kind", ev.Kind.String()),
		slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
	)
	if h.sink == nil {
		return nil
	}
	if sendErr := h.sink.Send(ctx, conversation.Reply{UserID: ev.UserID, Text: NoticeUnavailable}); sendErr != nil {
		logger.Warn(ctx, component, "notice.fail", slog.String("err", sendErr.Error()))
	}
	return nil
}
