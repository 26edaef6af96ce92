package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/m3rciful/recruitbot/core/logger"
	"github.com/m3rciful/recruitbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

const componentWire = "tg.wire"

// ErrInvalidCallback is returned for callback registrations without a key or handler.
var ErrInvalidCallback = errors.New("telegram: invalid callback registration")

// Registry holds bot commands and callbacks.
//
// Callbacks are matched by exact key first and then by the longest
// registered prefix, so a single handler can own a family of raw tokens.
type Registry struct {
	commands map[string]commands.Command

	callbacksMu      sync.RWMutex
	callbacks        map[string]tele.HandlerFunc
	prefixes         map[string]tele.HandlerFunc
	callbackNotFound tele.HandlerFunc
	textFallback     tele.HandlerFunc
}

// NewRegistry creates an empty Registry with default fallbacks.
func NewRegistry() *Registry {
	return &Registry{
		commands:  make(map[string]commands.Command),
		callbacks: make(map[string]tele.HandlerFunc),
		prefixes:  make(map[string]tele.HandlerFunc),
		callbackNotFound: func(c tele.Context) error {
			return c.Respond(&tele.CallbackResponse{Text: "Unsupported action"})
		},
	}
}

// RegisterCommand adds a new command.
func (r *Registry) RegisterCommand(name string, cmd commands.Command) {
	if reason := cmd.Invalid(name); reason != "" {
		logger.Warn(context.Background(), componentWire, "register.command.skip",
			slog.String("name", name),
			slog.String("reason", reason),
		)
		return
	}
	if _, exists := r.commands[name]; exists {
		logger.Warn(context.Background(), componentWire, "register.command.duplicate", slog.String("name", name))
		return
	}
	r.commands[name] = cmd
}

// ListCommands returns the registered commands sorted by name, optionally
// without hidden and admin-only ones.
func (r *Registry) ListCommands(visibleOnly bool) []tele.Command {
	list := make([]tele.Command, 0, len(r.commands))
	for name, meta := range r.commands {
		if visibleOnly && !meta.Visible() {
			continue
		}
		list = append(list, tele.Command{Text: strings.TrimPrefix(name, "/"), Description: meta.Description})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Text < list[j].Text })
	return list
}

// LookupCommand searches for a command by name or one of its aliases and
// returns the canonical key with metadata if found.
func (r *Registry) LookupCommand(name string) (string, commands.Command, bool) {
	name = strings.TrimSpace(name)
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	if cmd, ok := r.commands[name]; ok {
		return name, cmd, true
	}
	for key, cmd := range r.commands {
		if cmd.HasAlias(name) {
			return key, cmd, true
		}
	}
	return "", commands.Command{}, false
}

// Commands returns all registered commands.
func (r *Registry) Commands() map[string]commands.Command {
	return r.commands
}

// RegisterCallback adds a callback handler mapped to its key.
func (r *Registry) RegisterCallback(key string, handler tele.HandlerFunc) error {
	return r.register(r.callbacks, "callback", key, handler)
}

// RegisterCallbackPrefix adds a handler for every callback key starting with prefix.
func (r *Registry) RegisterCallbackPrefix(prefix string, handler tele.HandlerFunc) error {
	return r.register(r.prefixes, "callback_prefix", prefix, handler)
}

func (r *Registry) register(into map[string]tele.HandlerFunc, kind, key string, handler tele.HandlerFunc) error {
	if key == "" || handler == nil {
		logger.Warn(context.Background(), componentWire, "register."+kind+".skip",
			slog.String("key", key),
			slog.Bool("handler_nil", handler == nil),
		)
		return ErrInvalidCallback
	}
	r.callbacksMu.Lock()
	defer r.callbacksMu.Unlock()
	if _, exists := into[key]; exists {
		logger.Warn(context.Background(), componentWire, "register."+kind+".duplicate", slog.String("key", key))
		return fmt.Errorf("telegram: %s already registered: %s", kind, key)
	}
	into[key] = handler
	return nil
}

// GetCallback returns the handler for key: an exact registration wins over
// the longest matching prefix.
func (r *Registry) GetCallback(key string) (tele.HandlerFunc, bool) {
	r.callbacksMu.RLock()
	defer r.callbacksMu.RUnlock()
	if h, ok := r.callbacks[key]; ok {
		return h, true
	}
	best := ""
	for prefix := range r.prefixes {
		if strings.HasPrefix(key, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return nil, false
	}
	return r.prefixes[best], true
}

// ListCallbacks returns sorted keys (for diagnostics); prefixes end with '*'.
func (r *Registry) ListCallbacks() []string {
	r.callbacksMu.RLock()
	defer r.callbacksMu.RUnlock()
	names := lo.Keys(r.callbacks)
	for prefix := range r.prefixes {
		names = append(names, prefix+"*")
	}
	sort.Strings(names)
	return names
}

// SetCallbackNotFound replaces the fallback handler for unknown callbacks.
func (r *Registry) SetCallbackNotFound(h tele.HandlerFunc) {
	if h != nil {
		r.callbackNotFound = h
	}
}

// CallbackNotFound returns the current fallback callback handler.
func (r *Registry) CallbackNotFound() tele.HandlerFunc {
	return r.callbackNotFound
}

// SetTextFallback sets a global fallback handler for unknown text messages.
func (r *Registry) SetTextFallback(h tele.HandlerFunc) {
	r.textFallback = h
}

// TextFallback returns the current text fallback handler.
func (r *Registry) TextFallback() tele.HandlerFunc {
	return r.textFallback
}

// SetupCommands publishes the visible commands in the Telegram command menu.
func SetupCommands(ctx context.Context, bot *tele.Bot, reg *Registry) {
	list := reg.ListCommands(true)
	if err := bot.SetCommands(list); err != nil {
		logger.Error(ctx, componentWire, "register.commands.set_failed", slog.String("err", err.Error()))
		return
	}
	logger.Info(ctx, componentWire, "register.commands",
		slog.Int("commands", len(list)),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)
}
