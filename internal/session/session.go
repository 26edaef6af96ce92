// Package session holds the per-user conversation state and the store that
// owns it for the life of the process.
package session

import "github.com/m3rciful/recruitbot/internal/domain"

// State identifies a step of the conversation.
type State string

const (
	StateStart                      State = "START"
	StateLogin                      State = "LOGIN"
	StateRegistration               State = "REGISTRATION"
	StateRegistrationName           State = "REGISTRATION_NAME"
	StateRegistrationEmail          State = "REGISTRATION_EMAIL"
	StateRegistrationPassword       State = "REGISTRATION_PASSWORD"
	StateInvitation                 State = "INVITATION"
	StateInvitationJobSelected      State = "INVITATION_JOB_SELECTED"
	StateInvitationNameEntered      State = "INVITATION_NAME_ENTERED"
	StateInvitationPhoneEntered     State = "INVITATION_PHONE_ENTERED"
	StateInvitationEmailEntered     State = "INVITATION_EMAIL_ENTERED"
	StateSettings                   State = "SETTINGS"
	StateSettingsUsers              State = "SETTINGS_USERS"
	StateSettingsUsersList          State = "SETTINGS_USERS_LIST"
	StateSettingsUsersAdd           State = "SETTINGS_USERS_ADD"
	StateSettingsUsersDelete        State = "SETTINGS_USERS_DELETE"
	StateSettingsUsersDeleteConfirm State = "SETTINGS_USERS_DELETE_CONFIRM"
	StateSettingsCompanyFIO         State = "SETTINGS_COMPANY_FIO"
	StateSettingsCompanyPhone       State = "SETTINGS_COMPANY_PHONE"
	StateSettingsCompanySite        State = "SETTINGS_COMPANY_SITE"
	StateSettingsCompanyAddress     State = "SETTINGS_COMPANY_ADDRESS"
	StateSettingsCompanyName        State = "SETTINGS_COMPANY_NAME"
	StateSettingsCompanyDescription State = "SETTINGS_COMPANY_DESCRIPTION"
	StateHelp                       State = "HELP"
)

// AllStates lists every state in declaration order.
var AllStates = []State{
	StateStart,
	StateLogin,
	StateRegistration,
	StateRegistrationName,
	StateRegistrationEmail,
	StateRegistrationPassword,
	StateInvitation,
	StateInvitationJobSelected,
	StateInvitationNameEntered,
	StateInvitationPhoneEntered,
	StateInvitationEmailEntered,
	StateSettings,
	StateSettingsUsers,
	StateSettingsUsersList,
	StateSettingsUsersAdd,
	StateSettingsUsersDelete,
	StateSettingsUsersDeleteConfirm,
	StateSettingsCompanyFIO,
	StateSettingsCompanyPhone,
	StateSettingsCompanySite,
	StateSettingsCompanyAddress,
	StateSettingsCompanyName,
	StateSettingsCompanyDescription,
	StateHelp,
}

// Session is the conversation state of one chat user.
type Session struct {
	UserID        int64
	State         State
	PreviousState State

	Authenticated bool
	Role          domain.Role
	Secret        string

	SelectedJobID *int64

	Invite       *domain.InviteDraft
	Registration *domain.RegistrationDraft
	Settings     *domain.Settings
}

// New returns a fresh unauthenticated session in StateStart.
func New(userID int64) *Session {
	return &Session{UserID: userID, State: StateStart}
}

// Transition moves to next and remembers the current state as previous.
func (s *Session) Transition(next State) {
	s.PreviousState = s.State
	s.State = next
}

// Authenticate caches the backend role and secret.
func (s *Session) Authenticate(role domain.Role, secret string) {
	s.Authenticated = true
	s.Role = role
	s.Secret = secret
}

// Reset drops credentials, the selected job and every draft.
// State and PreviousState are left to the caller.
func (s *Session) Reset() {
	s.Authenticated = false
	s.Role = ""
	s.Secret = ""
	s.SelectedJobID = nil
	s.Invite = nil
	s.Registration = nil
	s.Settings = nil
}

// Credentials returns the backend credentials of the session.
func (s *Session) Credentials() domain.Credentials {
	return domain.Credentials{UserID: s.UserID, Secret: s.Secret}
}

// IsOwner reports whether the session belongs to an organization owner.
func (s *Session) IsOwner() bool {
	return s.Authenticated && s.Role == domain.RoleOwner
}

// StartInvite replaces the invitation draft with an empty one carrying the channel flags.
func (s *Session) StartInvite(email, voice bool) *domain.InviteDraft {
	s.Invite = &domain.InviteDraft{EmailChannel: email, VoiceChannel: voice}
	s.SelectedJobID = nil
	return s.Invite
}

// EnsureInvite returns the invitation draft, creating an empty one if absent.
func (s *Session) EnsureInvite() *domain.InviteDraft {
	if s.Invite == nil {
		s.Invite = &domain.InviteDraft{}
	}
	return s.Invite
}

// StartRegistration replaces the registration draft with an empty one.
func (s *Session) StartRegistration() *domain.RegistrationDraft {
	s.Registration = &domain.RegistrationDraft{}
	return s.Registration
}

// EnsureRegistration returns the registration draft, creating an empty one if absent.
func (s *Session) EnsureRegistration() *domain.RegistrationDraft {
	if s.Registration == nil {
		s.Registration = &domain.RegistrationDraft{}
	}
	return s.Registration
}

// StartSettings replaces the settings draft with a copy of loaded, or an empty one.
func (s *Session) StartSettings(loaded *domain.Settings) *domain.Settings {
	if loaded == nil {
		s.Settings = &domain.Settings{}
	} else {
		cp := *loaded
		s.Settings = &cp
	}
	return s.Settings
}

// EnsureSettings returns the settings draft, creating an empty one if absent.
func (s *Session) EnsureSettings() *domain.Settings {
	if s.Settings == nil {
		s.Settings = &domain.Settings{}
	}
	return s.Settings
}

// Clone returns a deep copy of s.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	if s.SelectedJobID != nil {
		id := *s.SelectedJobID
		cp.SelectedJobID = &id
	}
	if s.Invite != nil {
		d := *s.Invite
		cp.Invite = &d
	}
	if s.Registration != nil {
		d := *s.Registration
		cp.Registration = &d
	}
	if s.Settings != nil {
		d := *s.Settings
		cp.Settings = &d
	}
	return &cp
}
