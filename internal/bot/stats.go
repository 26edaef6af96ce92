package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/m3rciful/recruitbot/core/buildinfo"
	"github.com/m3rciful/recruitbot/core/logger"
	tg "github.com/m3rciful/recruitbot/core/telegram"
	"github.com/m3rciful/recruitbot/core/telegram/commands"
	"github.com/m3rciful/recruitbot/core/telegram/format"
	tghelpers "github.com/m3rciful/recruitbot/core/telegram/helpers"
	"github.com/m3rciful/recruitbot/internal/audit"
	"github.com/m3rciful/recruitbot/internal/session"

	tele "gopkg.in/telebot.v4"
)

const recentEntries = 10

// SessionCounter reports store totals.
type SessionCounter interface {
	Stats() session.Stats
}

// JournalReader lists recent audit entries.
type JournalReader interface {
	Recent(ctx context.Context, limit int) ([]audit.Entry, error)
}

// Stats serves the admin /stats command.
type Stats struct {
	sessions SessionCounter
	journal  JournalReader
}

// NewStats builds the command; journal may be nil when auditing is off.
func NewStats(sessions SessionCounter, journal JournalReader) *Stats {
	return &Stats{sessions: sessions, journal: journal}
}

// Register adds /stats as a hidden admin command.
func (s *Stats) Register(reg *tg.Registry) {
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     s.Handle,
		Description: "Runtime statistics",
		AdminOnly:   true,
		Hidden:      true,
	})
}

// Handle replies with the report.
func (s *Stats) Handle(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	text, err := s.Report(ctx)
	if err != nil {
		return err
	}
	return tghelpers.SendMDV2(c, text)
}

// Report renders the MarkdownV2 statistics message.
func (s *Stats) Report(ctx context.Context) (string, error) {
	st := s.sessions.Stats()
	head, err := format.EscapeMarkdown(fmt.Sprintf("sessions: %d, authenticated: %d\nbuild: %s",
		st.Sessions, st.Authenticated, buildinfo.String()), format.MarkdownV2)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("*Stats*\n")
	b.WriteString(head)
	b.WriteString("\n\n")

	if s.journal == nil {
		b.WriteString("journal: disabled")
		return b.String(), nil
	}
	entries, err := s.journal.Recent(ctx, recentEntries)
	if err != nil {
		logger.Warn(ctx, component, "stats.journal", slog.String("err", err.Error()))
		b.WriteString("journal: unavailable")
		return b.String(), nil
	}
	if len(entries) == 0 {
		b.WriteString("journal: empty")
		return b.String(), nil
	}
	b.WriteString(format.CodeBlockV2(strings.Join(lo.Map(entries, func(e audit.Entry, _ int) string {
		return formatEntry(e)
	}), "\n")))
	return b.String(), nil
}

func formatEntry(e audit.Entry) string {
	line := fmt.Sprintf("%s user=%d %s %s", e.CreatedAt.UTC().Format("2006-01-02 15:04:05"), e.UserID, e.Action, e.Outcome)
	if e.Detail != "" {
		line += " " + e.Detail
	}
	return line
}
