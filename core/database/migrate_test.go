package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectApplied(t *testing.T) {
	files := []string{"0001_audit_log.up.sql", "0002_index.up.sql", "0003_more.up.sql"}

	require.Equal(t, []string{"0002_index.up.sql", "0003_more.up.sql"}, selectApplied(files, 1, 3))
	require.Empty(t, selectApplied(files, 3, 3))
	require.Equal(t, uint64(2), parseVersion("0002_index.up.sql"))
	require.Zero(t, parseVersion("readme.md"))
}

func TestListMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_b.up.sql", "0001_a.up.sql", "0001_a.down.sql"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "0003_dir.up.sql"), 0o755))

	require.Equal(t, []string{"0001_a.up.sql", "0002_b.up.sql"}, listMigrationFiles(dir))
}

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "bot", Password: "p@ss", Name: "recruit"}

	require.True(t, cfg.Enabled())
	require.False(t, Config{}.Enabled())
	require.Contains(t, cfg.DSN(), "sslmode=disable")
	require.Equal(t, "postgres://bot:p%40ss@db:5432/recruit?sslmode=disable", cfg.URL())

	path, err := MigrationsPath(Config{MigrationsDir: "db/migrations"})
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(path))
	require.True(t, strings.HasSuffix(path, filepath.Join("db", "migrations")))

	path, err = MigrationsPath(Config{})
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(path, filepath.Join("migrations", "postgres")))
}

func TestConfigSQLite(t *testing.T) {
	cfg := Config{Driver: "SQLite", Path: "var/audit.db"}

	require.Equal(t, DriverSQLite, cfg.DriverName())
	require.True(t, cfg.Enabled())
	require.False(t, Config{Driver: DriverSQLite, Host: "db"}.Enabled())
	require.Equal(t, "sqlite://var/audit.db", cfg.URL())
	require.True(t, strings.HasPrefix(cfg.DSN(), "var/audit.db?"))
	require.Equal(t, "sqlite:var/audit.db", cfg.Describe())
}

func TestMigrationsApplyOnSQLite(t *testing.T) {
	dir := t.TempDir()
	migrations := filepath.Join(dir, "migrations")
	require.NoError(t, os.Mkdir(migrations, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(migrations, "0001_notes.up.sql"),
		[]byte("CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT NOT NULL);"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(migrations, "0001_notes.down.sql"),
		[]byte("DROP TABLE notes;"), 0o644))

	cfg := Config{Driver: DriverSQLite, Path: filepath.Join(dir, "test.db"), MigrationsDir: migrations}
	ctx := context.Background()
	require.NoError(t, RunMigrations(ctx, cfg))
	require.NoError(t, RunMigrations(ctx, cfg))

	db, err := Connect(ctx, cfg)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.ExecContext(ctx, "INSERT INTO notes (body) VALUES (?)", "hello")
	require.NoError(t, err)
}
