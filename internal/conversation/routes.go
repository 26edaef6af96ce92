package conversation

import "github.com/m3rciful/recruitbot/internal/session"

type directiveRoute struct {
	gated bool
	run   func(*turn) error
}

type prefixRoute struct {
	prefix string
	gated  bool
	run    func(*turn, string) error
}

var directives = map[string]directiveRoute{
	TokenStart:    {run: (*turn).start},
	TokenLogin:    {run: (*turn).askPassword},
	TokenRegister: {run: (*turn).beginRegistration},
	TokenHelp:     {run: (*turn).help},
	TokenBack:     {run: (*turn).back},
	TokenLogout:   {run: (*turn).logout},

	TokenInvitation:           {gated: true, run: invitation(false, false)},
	TokenInvitationVoice:      {gated: true, run: invitation(false, true)},
	TokenInvitationEmail:      {gated: true, run: invitation(true, false)},
	TokenInvitationEmailVoice: {gated: true, run: invitation(true, true)},
	TokenSetupLater:           {gated: true, run: (*turn).invitationRoot},

	TokenSettings:            {gated: true, run: (*turn).settings},
	TokenSettingsCompany:     {gated: true, run: (*turn).openCompanySettings},
	TokenSettingsCompanyKeep: {gated: true, run: (*turn).keepCompanyField},
	TokenSettingsUsers:       {gated: true, run: (*turn).usersMenu},
	TokenUsersList:           {gated: true, run: (*turn).listUsers},
	TokenUsersAdd:            {gated: true, run: (*turn).askSubUserName},
	TokenUsersDelete:         {gated: true, run: (*turn).askDeleteID},
	TokenUsersRevertDelete:   {gated: true, run: (*turn).usersMenu},
}

var prefixDirectives = []prefixRoute{
	{prefix: PrefixVacancy, gated: true, run: (*turn).selectJob},
	{prefix: PrefixUsersConfirmDelete, gated: true, run: (*turn).confirmDelete},
}

// textHandlers interpret free text by the state that asked for it.
var textHandlers = map[session.State]func(*turn, string) error{
	session.StateLogin: (*turn).login,

	session.StateInvitationJobSelected:  (*turn).inviteName,
	session.StateInvitationNameEntered:  (*turn).invitePhone,
	session.StateInvitationPhoneEntered: (*turn).inviteEmail,

	session.StateRegistration:      (*turn).registrationName,
	session.StateRegistrationName:  (*turn).registrationEmail,
	session.StateRegistrationEmail: (*turn).registrationPassword,

	session.StateSettingsUsersAdd:    (*turn).addSubUser,
	session.StateSettingsUsersDelete: (*turn).lookupDeleteID,

	session.StateSettingsCompanyFIO:         (*turn).companyInput,
	session.StateSettingsCompanyPhone:       (*turn).companyInput,
	session.StateSettingsCompanySite:        (*turn).companyInput,
	session.StateSettingsCompanyAddress:     (*turn).companyInput,
	session.StateSettingsCompanyName:        (*turn).companyInput,
	session.StateSettingsCompanyDescription: (*turn).companyInput,
}

// menuStates show a menu and wait for a button; typed text is ignored there.
var menuStates = map[session.State]struct{}{
	session.StateStart:                      {},
	session.StateRegistrationPassword:       {},
	session.StateInvitation:                 {},
	session.StateInvitationEmailEntered:     {},
	session.StateSettings:                   {},
	session.StateSettingsUsers:              {},
	session.StateSettingsUsersList:          {},
	session.StateSettingsUsersDeleteConfirm: {},
	session.StateHelp:                       {},
}

// backRoutes map a state to its fixed predecessor. Only one level of history
// is kept, so deep flows fall back to a shallow parent.
var backRoutes = map[session.State]func(*turn) error{
	session.StateInvitation:        (*turn).invitationRoot,
	session.StateRegistration:      (*turn).toStart,
	session.StateSettings:          (*turn).backFromSettings,
	session.StateSettingsUsers:     (*turn).settings,
	session.StateSettingsUsersList: (*turn).usersMenu,
	session.StateHelp:              (*turn).toStart,
}

// noBackStates never render a back button; a stray back directive is a no-op.
var noBackStates = map[session.State]struct{}{
	session.StateStart:                      {},
	session.StateLogin:                      {},
	session.StateRegistrationName:           {},
	session.StateRegistrationEmail:          {},
	session.StateRegistrationPassword:       {},
	session.StateInvitationJobSelected:      {},
	session.StateInvitationNameEntered:      {},
	session.StateInvitationPhoneEntered:     {},
	session.StateInvitationEmailEntered:     {},
	session.StateSettingsUsersAdd:           {},
	session.StateSettingsUsersDelete:        {},
	session.StateSettingsUsersDeleteConfirm: {},
	session.StateSettingsCompanyFIO:         {},
	session.StateSettingsCompanyPhone:       {},
	session.StateSettingsCompanySite:        {},
	session.StateSettingsCompanyAddress:     {},
	session.StateSettingsCompanyName:        {},
	session.StateSettingsCompanyDescription: {},
}
