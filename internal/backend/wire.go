package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/m3rciful/recruitbot/internal/domain"
)

type successBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type inviteBody struct {
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone"`
	EmailInvite bool   `json:"emailInvite"`
	AudioInvite bool   `json:"audioInvite"`
}

type registrationBody struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	SocialUserID    string `json:"socialUserId"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// settingsBody mirrors the settings document; the service sends the literal
// string "null" for some unset fields.
type settingsBody struct {
	OrganizationID     orgID   `json:"organizationId"`
	ManagerName        *string `json:"managerName"`
	ManagerEmail       *string `json:"managerEmail"`
	Phone              *string `json:"phone"`
	Site               *string `json:"site"`
	Address            *string `json:"address"`
	CompanyName        *string `json:"companyName"`
	CompanyDescription *string `json:"companyDescription"`
}

func newInviteBody(d domain.InviteDraft) inviteBody {
	return inviteBody{
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		EmailInvite: d.EmailChannel,
		AudioInvite: d.VoiceChannel,
	}
}

func newRegistrationBody(d domain.RegistrationDraft) registrationBody {
	return registrationBody{
		Name:            d.Name,
		Email:           d.Email,
		SocialUserID:    d.ExternalID,
		Password:        d.Password,
		ConfirmPassword: d.ConfirmPassword,
	}
}

func newSettingsBody(s domain.Settings) settingsBody {
	body := settingsBody{
		ManagerName:        optional(s.ManagerName),
		ManagerEmail:       optional(s.ManagerEmail),
		Phone:              optional(s.Phone),
		Site:               optional(s.Site),
		Address:            optional(s.Address),
		CompanyName:        optional(s.CompanyName),
		CompanyDescription: optional(s.CompanyDescription),
	}
	body.OrganizationID = orgID(s.OrganizationID)
	return body
}

// toDomain returns nil when the document carries no manager name, which is
// how the service reports that nothing was stored yet.
func (b settingsBody) toDomain() *domain.Settings {
	name := text(b.ManagerName)
	if name == "" {
		return nil
	}
	s := &domain.Settings{
		ManagerName:        name,
		ManagerEmail:       text(b.ManagerEmail),
		Phone:              text(b.Phone),
		Site:               text(b.Site),
		Address:            text(b.Address),
		CompanyName:        text(b.CompanyName),
		CompanyDescription: text(b.CompanyDescription),
	}
	s.OrganizationID = int64(b.OrganizationID)
	return s
}

func text(p *string) string {
	if p == nil {
		return ""
	}
	v := strings.TrimSpace(*p)
	if v == "null" {
		return ""
	}
	return v
}

func optional(s string) *string {
	if domain.IsBlank(s) {
		return nil
	}
	return &s
}

// orgID accepts a number, a numeric string, null or "null"; zero means unset.
type orgID int64

func (o orgID) MarshalJSON() ([]byte, error) {
	if o == 0 {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(o), 10), nil
}

func (o *orgID) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if raw == "" || raw == "null" {
		*o = 0
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("organizationId %q: %w", raw, err)
	}
	*o = orgID(v)
	return nil
}

var _ json.Unmarshaler = (*orgID)(nil)
