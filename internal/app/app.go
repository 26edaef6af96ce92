// Package app assembles recruitbot from its parts.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/recruitbot/core/bootstrap"
	"github.com/m3rciful/recruitbot/core/cmd"
	"github.com/m3rciful/recruitbot/core/logger"
	tg "github.com/m3rciful/recruitbot/core/telegram"
	"github.com/m3rciful/recruitbot/core/telegram/router"
	"github.com/m3rciful/recruitbot/internal/audit"
	"github.com/m3rciful/recruitbot/internal/backend"
	"github.com/m3rciful/recruitbot/internal/bot"
	"github.com/m3rciful/recruitbot/internal/conversation"
	"github.com/m3rciful/recruitbot/internal/session"
)

const component = "app"

// App holds the wired components of a running bot.
type App struct {
	cfg      *Config
	infra    *bootstrap.Result
	store    session.Store
	sink     *bot.TelegramSink
	registry *tg.Registry
}

var _ cmd.TelegramApp = (*App)(nil)

// Bootstrap initializes logging and the optional database, then builds the App.
func Bootstrap(ctx context.Context, carrier cmd.ConfigCarrier) (cmd.TelegramApp, error) {
	cfg, ok := carrier.(*Config)
	if !ok {
		return nil, fmt.Errorf("app: unexpected config type %T", carrier)
	}
	infra, err := bootstrap.Run(ctx, bootstrap.Options{
		Config:   &cfg.Config,
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}
	a, err := New(cfg, infra.DB)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}
	a.infra = infra
	logger.Info(ctx, component, "bootstrap",
		slog.String("backend", cfg.Backend.BaseURL),
		slog.Bool("journal", infra.DB != nil),
	)
	return a, nil
}

// New wires the conversation engine to the backend and the Telegram
// registry. db is optional; without it actions are not journaled.
func New(cfg *Config, db *sqlx.DB) (*App, error) {
	client, err := backend.New(cfg.Backend)
	if err != nil {
		return nil, err
	}

	store := session.NewMemoryStore()
	sink := bot.NewTelegramSink()
	opts := conversation.Options{CallTimeout: cfg.Backend.WithDefaults().CallTimeout}

	var reader bot.JournalReader
	if db != nil {
		journal := audit.NewJournal(db)
		opts.Auditor = journal
		reader = journal
	}
	engine := conversation.NewEngine(store, client, sink, opts)

	reg := tg.NewRegistry()
	if err := bot.NewHandlers(engine, sink).Register(reg); err != nil {
		return nil, fmt.Errorf("app: register handlers: %w", err)
	}
	bot.NewStats(store, reader).Register(reg)

	return &App{cfg: cfg, store: store, sink: sink, registry: reg}, nil
}

// TelegramRunOptions describes routes, middleware and lifecycle hooks.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	core := &a.cfg.Config

	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{AdminID: core.Telegram.AdminID})
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(a.registry, router.TextOptions{})...)

	return tg.RunOptions{
		Config:            core,
		Registry:          a.registry,
		DispatcherOptions: a.cfg.Sender,
		Middlewares:       tg.DefaultMiddlewares(core, nil),
		Routes:            routes,
		OnStart: func(ctx context.Context, rt tg.Runtime) error {
			a.sink.Attach(rt.Bot)
			return nil
		},
		OnStop: func(ctx context.Context, _ tg.Runtime) error {
			st := a.store.Stats()
			logger.Info(ctx, component, "sessions",
				slog.Int("sessions", st.Sessions),
				slog.Int("authenticated", st.Authenticated),
			)
			return nil
		},
	}, nil
}

// Close releases the database, if any.
func (a *App) Close() error {
	return a.infra.Close()
}
