package conversation

// EventKind distinguishes button/command directives from typed input.
type EventKind int

const (
	// KindDirective is a command token, usually from a pressed button.
	KindDirective EventKind = iota + 1
	// KindText is free text interpreted by the current state.
	KindText
)

func (k EventKind) String() string {
	switch k {
	case KindDirective:
		return "directive"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Event is a single inbound user action.
type Event struct {
	UserID int64
	Kind   EventKind
	Token  string
	Text   string
}

// Directive builds a directive event.
func Directive(userID int64, token string) Event {
	return Event{UserID: userID, Kind: KindDirective, Token: token}
}

// FreeText builds a free-text event.
func FreeText(userID int64, text string) Event {
	return Event{UserID: userID, Kind: KindText, Text: text}
}

// Directive tokens.
const (
	TokenStart                = "/start"
	TokenLogin                = "/login"
	TokenRegister             = "/register"
	TokenHelp                 = "/help"
	TokenInvitation           = "/invitation"
	TokenInvitationVoice      = "/invitationWithAudio"
	TokenInvitationEmail      = "/invitationWithEmail"
	TokenInvitationEmailVoice = "/invitationWithEmailAndAudio"
	TokenSettings             = "/settings"
	TokenSettingsCompany      = "/settingsCompany"
	TokenSettingsCompanyKeep  = "/settingsCompany/next"
	TokenSettingsUsers        = "/settingsUsers"
	TokenUsersList            = "/users/list"
	TokenUsersAdd             = "/users/add"
	TokenUsersDelete          = "/users/delete"
	TokenUsersRevertDelete    = "/users/revert/delete"
	TokenSetupLater           = "/setupLater"
	TokenBack                 = "/back"
	TokenLogout               = "/logout"
	PrefixVacancy             = "/vacancy/"
	PrefixUsersConfirmDelete  = "/users/confirm/delete/"
)
