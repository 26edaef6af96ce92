//go:generate go run go.uber.org/mock/mockgen -source=ports.go -destination=../mocks/mock_ports.go -package=mocks

package conversation

import (
	"context"

	"github.com/m3rciful/recruitbot/internal/domain"
)

// Backend is the recruiting REST service. A returned error means the call
// did not complete (transport or malformed response); business outcomes are
// reported through the boolean and result values.
type Backend interface {
	Login(ctx context.Context, userID int64, secret string) (domain.Role, bool, error)
	ListJobs(ctx context.Context, creds domain.Credentials) ([]domain.Job, error)
	ListUsers(ctx context.Context, creds domain.Credentials) ([]domain.SubUser, bool, error)
	AddUser(ctx context.Context, creds domain.Credentials, name string) (domain.SubUser, bool, error)
	DeleteUser(ctx context.Context, creds domain.Credentials, externalID string) (bool, error)
	SendInvitation(ctx context.Context, creds domain.Credentials, jobID int64, draft domain.InviteDraft) (bool, error)
	Register(ctx context.Context, draft domain.RegistrationDraft) (domain.RegistrationResult, error)
	GetSettings(ctx context.Context, creds domain.Credentials) (*domain.Settings, error)
	SaveSettings(ctx context.Context, creds domain.Credentials, settings domain.Settings) (bool, error)
}

// Sink delivers rendered replies to a chat user.
type Sink interface {
	Send(ctx context.Context, reply Reply) error
}

// Auditor records backend-visible actions.
type Auditor interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}

// Button is a keyboard button. Token is sent back as a directive when the
// button is pressed; URL buttons open a link instead.
type Button struct {
	Label string
	Token string
	URL   string
}

// Reply is one outbound message with an optional inline keyboard.
type Reply struct {
	UserID   int64
	Text     string
	Keyboard [][]Button
}
