package database

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

const (
	// DriverPostgres selects a Postgres server through lib/pq.
	DriverPostgres = "postgres"
	// DriverSQLite selects a local SQLite file through modernc.org/sqlite.
	DriverSQLite = "sqlite"
)

// Config holds database connection settings. A database is enabled when
// Host (postgres) or Path (sqlite) is set.
type Config struct {
	Driver         string `yaml:"driver" envconfig:"DB_DRIVER" validate:"omitempty,oneof=postgres sqlite"`
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT" validate:"required_with=Host"`
	User           string `yaml:"user" envconfig:"DB_USER" validate:"required_with=Host"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME" validate:"required_with=Host"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	Path           string `yaml:"path" envconfig:"DB_PATH"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS" validate:"gte=0"`
	// MigrationsDir is resolved against the working directory when relative.
	// It defaults to migrations/<driver>.
	MigrationsDir string `yaml:"migrations_dir" envconfig:"DB_MIGRATIONS_DIR"`
}

// DriverName returns the database/sql driver of c.
func (c Config) DriverName() string {
	if strings.EqualFold(strings.TrimSpace(c.Driver), DriverSQLite) {
		return DriverSQLite
	}
	return DriverPostgres
}

// Enabled reports whether a database is configured.
func (c Config) Enabled() bool {
	if c.DriverName() == DriverSQLite {
		return strings.TrimSpace(c.Path) != ""
	}
	return strings.TrimSpace(c.Host) != ""
}

func (c Config) sslMode() string {
	if c.SSLMode == "" {
		return "disable"
	}
	return c.SSLMode
}

// DSN returns the data source name for DriverName: the keyword/value form
// for lib/pq, the file path with pragmas for SQLite.
func (c Config) DSN() string {
	if c.DriverName() == DriverSQLite {
		return c.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.sslMode(),
	)
}

// URL returns the form used by golang-migrate.
func (c Config) URL() string {
	if c.DriverName() == DriverSQLite {
		return "sqlite://" + filepath.ToSlash(c.Path)
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.sslMode()),
	}
	return u.String()
}

// Describe returns loggable attributes of the target without secrets.
func (c Config) Describe() string {
	if c.DriverName() == DriverSQLite {
		return "sqlite:" + c.Path
	}
	return fmt.Sprintf("postgres:%s:%s/%s", c.Host, c.Port, c.Name)
}
