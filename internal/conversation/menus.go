package conversation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/m3rciful/recruitbot/internal/domain"
)

const (
	msgWelcome          = "Welcome! Log in or register to start inviting candidates."
	msgNotAuthorized    = "You are not authorized!"
	msgAskPassword      = "Enter your password:"
	msgWrongCredentials = "Wrong data. Check the password and try again."

	msgChooseInvitation  = "Choose the invitation type:"
	msgChooseJob         = "Choose a vacancy:"
	msgNoJobs            = "There are no open vacancies yet."
	msgNoJobSelected     = "Choose a vacancy first."
	msgAskCandidateName  = "Enter the candidate's name:"
	msgAskCandidatePhone = "Enter the candidate's mobile phone, digits only (for example 9991234567):"
	msgAskCandidateEmail = "Enter the candidate's email:"
	msgBadPhone          = "The phone number is invalid."
	msgBadEmail          = "The email is invalid."
	msgInvitationSent    = "The invitation has been sent."
	msgInvitationFailed  = "Failed to send the invitation."

	msgAskRegName         = "Enter your name:"
	msgAskRegEmail        = "Enter your email:"
	msgAskRegPassword     = "Come up with a password:"
	msgRegistrationOK     = "Registration successful. Your password: %s"
	msgRegistrationFailed = "Registration error: %s"

	msgSettings         = "Settings"
	msgUsers            = "Users"
	msgNoUsers          = "No users"
	msgAskSubUserName   = "Enter the name of the new user:"
	msgUserAdded        = "User %s added. ID: %s, password: %s"
	msgUserAddFailed    = "Failed to add the user."
	msgAskDeleteID      = "Enter the ID of the user to delete:"
	msgUserNotFound     = "User with ID %s not found."
	msgDeleteConfirm    = "Delete user %s (ID: %s)?"
	msgUserDeleted      = "The user has been deleted."
	msgUserDeleteFailed = "Failed to delete the user."
	msgUsersUnavailable = "Failed to load the users."

	msgAskManagerName        = "Enter the manager's full name."
	msgAskCompanyPhone       = "Enter the contact phone, digits only."
	msgAskCompanySite        = "Enter the company site."
	msgAskCompanyAddress     = "Enter the company address."
	msgAskCompanyName        = "Enter the company name."
	msgAskCompanyDescription = "Enter the company description."
	msgCurrentValue          = "Current value: %s"
	msgNotFilled             = "not filled"
	msgSettingsSaved         = "Settings saved."
	msgSettingsSaveFailed    = "Failed to save the settings."

	msgHelpLinks    = "Useful links:"
	msgHelpContacts = "Call support: +79119119111\nWrite: support@help.com"
)

var backRow = []Button{{Label: "⬅ Back", Token: TokenBack}}

func row(label, token string) []Button {
	return []Button{{Label: label, Token: token}}
}

func startMenu() Reply {
	return Reply{
		Text: msgWelcome,
		Keyboard: [][]Button{
			row("Log in", TokenLogin),
			row("Register", TokenRegister),
			row("Help", TokenHelp),
		},
	}
}

func invitationMenu() Reply {
	return Reply{
		Text: msgChooseInvitation,
		Keyboard: [][]Button{
			row("Invitation", TokenInvitation),
			row("Invitation with voice message", TokenInvitationVoice),
			row("Invitation with email", TokenInvitationEmail),
			row("Invitation with email and voice message", TokenInvitationEmailVoice),
			row("Settings", TokenSettings),
			row("Log out", TokenLogout),
		},
	}
}

func jobsMenu(jobs []domain.Job) Reply {
	rows := lo.Map(jobs, func(j domain.Job, _ int) []Button {
		return row(j.Name, PrefixVacancy+strconv.FormatInt(j.ID, 10))
	})
	return Reply{Text: msgChooseJob, Keyboard: append(rows, backRow)}
}

func noJobsMenu() Reply {
	return Reply{Text: msgNoJobs, Keyboard: [][]Button{backRow}}
}

func settingsMenu(owner bool) Reply {
	var rows [][]Button
	if owner {
		rows = append(rows,
			row("Company", TokenSettingsCompany),
			row("Users", TokenSettingsUsers),
		)
	}
	return Reply{Text: msgSettings, Keyboard: append(rows, backRow)}
}

func usersMenu() Reply {
	return Reply{
		Text: msgUsers,
		Keyboard: [][]Button{
			row("List", TokenUsersList),
			row("Add", TokenUsersAdd),
			row("Delete", TokenUsersDelete),
			backRow,
		},
	}
}

func usersListReply(users []domain.SubUser) Reply {
	text := msgNoUsers
	if len(users) > 0 {
		lines := lo.Map(users, func(u domain.SubUser, _ int) string {
			return fmt.Sprintf("%s, ID: %s, password: %s", u.Name, u.ExternalID, u.Secret)
		})
		text = strings.Join(lines, "\n")
	}
	return Reply{Text: text, Keyboard: [][]Button{backRow}}
}

func deleteConfirmMenu(u domain.SubUser) Reply {
	return Reply{
		Text: fmt.Sprintf(msgDeleteConfirm, u.Name, u.ExternalID),
		Keyboard: [][]Button{{
			{Label: "Yes", Token: PrefixUsersConfirmDelete + u.ExternalID},
			{Label: "No", Token: TokenUsersRevertDelete},
		}},
	}
}

func companyFieldPrompt(prompt, current string, withLater bool) Reply {
	if domain.IsBlank(current) {
		current = msgNotFilled
	}
	rows := [][]Button{row("Keep current", TokenSettingsCompanyKeep)}
	if withLater {
		rows = append(rows, row("Set up later", TokenSetupLater))
	}
	return Reply{
		Text:     prompt + "\n" + fmt.Sprintf(msgCurrentValue, current),
		Keyboard: rows,
	}
}

func helpLinksMenu() Reply {
	return Reply{
		Text: msgHelpLinks,
		Keyboard: [][]Button{
			{{Label: "Documentation", URL: "https://telegram.org/faq"}},
			{{Label: "Viber support", URL: "https://viber.click/79119119111"}},
			{{Label: "WhatsApp support", URL: "https://wa.me/79119119111"}},
		},
	}
}

func helpContactsMenu() Reply {
	return Reply{Text: msgHelpContacts, Keyboard: [][]Button{backRow}}
}
