package router

import (
	"log/slog"

	tg "github.com/m3rciful/recruitbot/core/telegram"
	"github.com/m3rciful/recruitbot/core/telegram/callbacks"
	"github.com/m3rciful/recruitbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// CallbackOptions customises fallback behaviour for callbacks.
type CallbackOptions struct {
	// NotFound runs when neither the registry nor its fallback handles the key.
	NotFound tele.HandlerFunc
}

// CallbackRoute returns a route dispatching every callback through the registry.
// Found handlers answer the callback query themselves.
func CallbackRoute(reg *tg.Registry, opts CallbackOptions) tg.Route {
	handler := func(c tele.Context) error {
		if c.Callback() == nil {
			return nil
		}
		key := callbacks.CallbackKey(c)
		name := "callback." + normalizeHandlerName(key)
		extras := []slog.Attr{slog.String("cb_key", key)}

		if h, ok := reg.GetCallback(key); ok && h != nil {
			return handleWithSummary(c, name, func() error { return h(c) }, extras...)
		}

		fallback := reg.CallbackNotFound()
		if fallback == nil {
			fallback = opts.NotFound
		}
		extras = append(extras, slog.String("reason", "not_found"))
		return handleWithSummary(c, name, func() error {
			if fallback == nil {
				return c.Respond()
			}
			return fallback(c)
		}, extras...)
	}
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
