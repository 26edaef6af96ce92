package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/m3rciful/recruitbot/core/logger"
)

const (
	componentDB  = "db"
	connectLimit = 5 * time.Second
)

// Connect opens the database connection, configures the pool, and verifies connectivity.
func Connect(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectLimit)
	defer cancel()

	where := []slog.Attr{
		slog.String("driver", cfg.DriverName()),
		slog.String("db", cfg.Describe()),
	}

	start := time.Now()
	db, err := sqlx.ConnectContext(ctx, cfg.DriverName(), cfg.DSN())
	took := logger.Took(start)
	if err != nil {
		logger.Error(ctx, componentDB, "db.connect", append(where,
			slog.Duration("duration", took),
			slog.String("err", err.Error()),
		)...)
		return nil, fmt.Errorf("db connect: %w", err)
	}

	switch {
	case cfg.DriverName() == DriverSQLite:
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	case cfg.MaxConnections > 0:
		db.SetMaxOpenConns(cfg.MaxConnections)
		db.SetMaxIdleConns(cfg.MaxConnections)
	}
	logger.Info(ctx, componentDB, "db.connect", append(where,
		slog.Int("pool_open", cfg.MaxConnections),
		slog.Duration("duration", took),
	)...)
	return db, nil
}

// WaitForPostgres pings dsn every two seconds until it answers or timeout elapses.
func WaitForPostgres(ctx context.Context, dsn string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	db, err := sql.Open(DriverPostgres, dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		lastErr := db.PingContext(ctx)
		if lastErr == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout reached waiting for database: %w", lastErr)
		case <-ticker.C:
		}
	}
}
