package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/recruitbot/core/config"
	coredatabase "github.com/m3rciful/recruitbot/core/database"
	tgsender "github.com/m3rciful/recruitbot/core/telegram/sender"
	"github.com/m3rciful/recruitbot/internal/backend"
)

const sampleConfig = `
telegram:
  token: "123:abc"
  admin_id: 42
logging:
  level: debug
backend:
  base_url: "https://recruit.example.com/api"
  call_timeout: 5s
database:
  driver: sqlite
  path: var/audit.db
sender:
  workers: 2
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("BACKEND_TIMEOUT", "3s")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	require.Equal(t, "123:abc", cfg.Telegram.Token)
	require.Equal(t, int64(42), cfg.Telegram.AdminID)
	require.Equal(t, coreconfig.RunModeLongpoll, cfg.Telegram.RunMode)
	require.Equal(t, "https://recruit.example.com/api", cfg.Backend.BaseURL)
	require.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	require.Equal(t, 5*time.Second, cfg.Backend.CallTimeout)
	require.Equal(t, coredatabase.DriverSQLite, cfg.Database.DriverName())
	require.True(t, cfg.Database.Enabled())
	require.Equal(t, 2, cfg.Sender.Workers)
	require.Same(t, &cfg.Config, cfg.CoreConfig())
}

func TestLoadRejectsInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "telegram:\n  token: \"123:abc\"\n"))
	require.ErrorContains(t, err, "BaseURL")

	_, err = Load(writeConfig(t, "telegram:\n  token: \"123:abc\"\nbackend:\n  base_url: not a url\n"))
	require.ErrorContains(t, err, "BaseURL")

	_, err = Load(writeConfig(t, "telegram:\n  token: \"123:abc\"\nbackend:\n  base_url: https://x.example\ndatabase:\n  driver: mysql\n"))
	require.ErrorContains(t, err, "Driver")
}

func testConfig() *Config {
	return &Config{
		Config: coreconfig.Config{
			Telegram: coreconfig.TelegramConfig{Token: "123:abc", AdminID: 42, RunMode: coreconfig.RunModeLongpoll},
		},
		Backend: backend.Config{BaseURL: "https://recruit.example.com"},
		Sender:  tgsender.Options{Workers: 1},
	}
}

func TestNewWiresRoutes(t *testing.T) {
	a, err := New(testConfig(), nil)
	require.NoError(t, err)

	opts, err := a.TelegramRunOptions()
	require.NoError(t, err)
	require.Same(t, &a.cfg.Config, opts.Config)
	require.Equal(t, 1, opts.DispatcherOptions.Workers)

	endpoints := make([]any, 0, len(opts.Routes))
	for _, r := range opts.Routes {
		endpoints = append(endpoints, r.Endpoint)
	}
	require.ElementsMatch(t, []any{"/start", "/stats", "\acallback", "\atext", "\adocument"}, endpoints)
	require.NotEmpty(t, opts.Middlewares)
	require.NoError(t, a.Close())
}

func TestNewWithJournal(t *testing.T) {
	dbCfg := coredatabase.Config{
		Driver:        coredatabase.DriverSQLite,
		Path:          filepath.Join(t.TempDir(), "audit.db"),
		MigrationsDir: filepath.Join("..", "..", "migrations", "sqlite"),
	}
	ctx := context.Background()
	require.NoError(t, coredatabase.RunMigrations(ctx, dbCfg))
	db, err := coredatabase.Connect(ctx, dbCfg)
	require.NoError(t, err)
	defer db.Close()

	a, err := New(testConfig(), db)
	require.NoError(t, err)
	_, _, ok := a.registry.LookupCommand("/stats")
	require.True(t, ok)
}

func TestNewRejectsRelativeBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Backend.BaseURL = "recruit.example.com"
	_, err := New(cfg, nil)
	require.Error(t, err)
}
