// Package domain holds the recruiting backend models shared by the
// conversation engine, the session store and the REST client.
package domain

import "strings"

// Role is the backend role of an authenticated chat user.
type Role string

const (
	// RoleOwner owns the organization and may manage settings and sub-users.
	RoleOwner Role = "OWNER"
	// RoleManager is a sub-user created by an owner.
	RoleManager Role = "MANAGER"
)

// Credentials identify the chat user against the backend.
type Credentials struct {
	UserID int64
	Secret string
}

// Job is an open vacancy candidates can be invited to.
type Job struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SubUser is a manager account created by an owner.
type SubUser struct {
	ExternalID string `json:"socialUserId"`
	OwnerID    int64  `json:"ownerId"`
	Name       string `json:"name"`
	Secret     string `json:"password"`
}

// InviteDraft accumulates the invitation form across several messages.
type InviteDraft struct {
	Name         string
	Phone        string
	Email        string
	EmailChannel bool
	VoiceChannel bool
}

// RegistrationDraft accumulates the owner registration form.
type RegistrationDraft struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	ExternalID      string
}

// RegistrationResult is the backend verdict on a registration attempt.
type RegistrationResult struct {
	Success bool
	Message string
}

// Settings are the company and contact details of an organization.
type Settings struct {
	ManagerName        string
	ManagerEmail       string
	Phone              string
	Site               string
	Address            string
	CompanyName        string
	CompanyDescription string
	OrganizationID     int64
}

// AuditEntry is a single journal record about a backend-visible action.
type AuditEntry struct {
	UserID  int64
	Action  string
	Outcome string
	Detail  string
}

// Audit actions.
const (
	ActionLogin        = "login"
	ActionRegistration = "registration"
	ActionInvitation   = "invitation"
	ActionUserAdd      = "user.add"
	ActionUserDelete   = "user.delete"
	ActionSettingsSave = "settings.save"
)

// Audit outcomes.
const (
	OutcomeOK   = "ok"
	OutcomeFail = "fail"
)

// Outcome maps a boolean result onto an audit outcome.
func Outcome(ok bool) string {
	if ok {
		return OutcomeOK
	}
	return OutcomeFail
}

// IsBlank reports whether s has no non-space characters.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
