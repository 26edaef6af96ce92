// Package audit keeps a journal of backend-visible conversation actions.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/recruitbot/core/logger"
	"github.com/m3rciful/recruitbot/internal/conversation"
	"github.com/m3rciful/recruitbot/internal/domain"
)

const (
	component    = "audit"
	maxDetailLen = 256
)

// Entry is a stored journal record.
type Entry struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Action    string    `db:"action"`
	Outcome   string    `db:"outcome"`
	Detail    string    `db:"detail"`
	CreatedAt time.Time `db:"created_at"`
}

// Journal is the SQL-backed audit log. It works on any database created by
// the audit_log migration.
type Journal struct {
	db  *sqlx.DB
	now func() time.Time
}

var _ conversation.Auditor = (*Journal)(nil)

// NewJournal wraps db.
func NewJournal(db *sqlx.DB) *Journal {
	return &Journal{db: db, now: time.Now}
}

const insertEntry = `INSERT INTO audit_log (user_id, action, outcome, detail, created_at)
VALUES (:user_id, :action, :outcome, :detail, :created_at)`

// Record appends entry.
func (j *Journal) Record(ctx context.Context, entry domain.AuditEntry) error {
	row := Entry{
		UserID:    entry.UserID,
		Action:    entry.Action,
		Outcome:   entry.Outcome,
		Detail:    logger.SanitizeLimit(entry.Detail, maxDetailLen),
		CreatedAt: j.now().UTC(),
	}
	if _, err := j.db.NamedExecContext(ctx, insertEntry, row); err != nil {
		return fmt.Errorf("audit: record %s: %w", entry.Action, err)
	}
	logger.Debug(ctx, component, "record",
		slog.String("status", "ok"),
		slog.String("op", entry.Action),
		slog.String("outcome", entry.Outcome),
	)
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}
	var entries []Entry
	query := j.db.Rebind(`SELECT id, user_id, action, outcome, detail, created_at
FROM audit_log ORDER BY id DESC LIMIT ?`)
	if err := j.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("audit: recent: %w", err)
	}
	return entries, nil
}
