package conversation

import (
	"context"
	"log/slog"

	"github.com/m3rciful/recruitbot/core/logger"
	"github.com/m3rciful/recruitbot/internal/domain"
	"github.com/m3rciful/recruitbot/internal/session"
	"github.com/m3rciful/recruitbot/internal/validate"
)

type companyField struct {
	state  session.State
	prompt string
	get    func(*domain.Settings) string
	set    func(*domain.Settings, string)
	valid  func(string) bool
}

// companyChain is the order in which company settings are collected.
var companyChain = []companyField{
	{
		state:  session.StateSettingsCompanyFIO,
		prompt: msgAskManagerName,
		get:    func(s *domain.Settings) string { return s.ManagerName },
		set:    func(s *domain.Settings, v string) { s.ManagerName = v },
	},
	{
		state:  session.StateSettingsCompanyPhone,
		prompt: msgAskCompanyPhone,
		get:    func(s *domain.Settings) string { return s.Phone },
		set:    func(s *domain.Settings, v string) { s.Phone = v },
		valid:  validate.IsAcceptedPhone,
	},
	{
		state:  session.StateSettingsCompanySite,
		prompt: msgAskCompanySite,
		get:    func(s *domain.Settings) string { return s.Site },
		set:    func(s *domain.Settings, v string) { s.Site = v },
	},
	{
		state:  session.StateSettingsCompanyAddress,
		prompt: msgAskCompanyAddress,
		get:    func(s *domain.Settings) string { return s.Address },
		set:    func(s *domain.Settings, v string) { s.Address = v },
	},
	{
		state:  session.StateSettingsCompanyName,
		prompt: msgAskCompanyName,
		get:    func(s *domain.Settings) string { return s.CompanyName },
		set:    func(s *domain.Settings, v string) { s.CompanyName = v },
	},
	{
		state:  session.StateSettingsCompanyDescription,
		prompt: msgAskCompanyDescription,
		get:    func(s *domain.Settings) string { return s.CompanyDescription },
		set: func(s *domain.Settings, v string) {
			if !domain.IsBlank(v) {
				s.CompanyDescription = v
			}
		},
	},
}

func companyFieldIndex(state session.State) int {
	for i, f := range companyChain {
		if f.state == state {
			return i
		}
	}
	return -1
}

func (t *turn) openCompanySettings() error {
	return t.loadCompanySettings(false)
}

// loadCompanySettings fetches the stored settings into a fresh draft and asks
// for the first field. withLater adds the "set up later" shortcut.
func (t *turn) loadCompanySettings(withLater bool) error {
	var loaded *domain.Settings
	err := t.call("get_settings", func(ctx context.Context) (err error) {
		loaded, err = t.e.backend.GetSettings(ctx, t.sess.Credentials())
		return err
	})
	if err != nil {
		return err
	}
	t.sess.StartSettings(loaded)
	t.promptCompanyField(0, withLater)
	return nil
}

func (t *turn) promptCompanyField(i int, withLater bool) {
	f := companyChain[i]
	t.send(companyFieldPrompt(f.prompt, f.get(t.sess.EnsureSettings()), withLater))
	t.moveTo(f.state)
}

func (t *turn) companyInput(input string) error {
	i := companyFieldIndex(t.sess.State)
	if i < 0 {
		return nil
	}
	f := companyChain[i]
	if f.valid != nil && !f.valid(input) {
		t.say(msgBadPhone)
		t.send(companyFieldPrompt(f.prompt, f.get(t.sess.EnsureSettings()), false))
		return nil
	}
	f.set(t.sess.EnsureSettings(), input)
	return t.advanceCompany(i)
}

// keepCompanyField leaves the current field untouched and moves on.
func (t *turn) keepCompanyField() error {
	i := companyFieldIndex(t.sess.State)
	if i < 0 {
		logger.Debug(t.ctx, component, "keep.ignored", slog.String("state", string(t.sess.State)))
		return nil
	}
	return t.advanceCompany(i)
}

func (t *turn) advanceCompany(i int) error {
	if i+1 < len(companyChain) {
		t.promptCompanyField(i+1, false)
		return nil
	}
	return t.saveCompanySettings()
}

func (t *turn) saveCompanySettings() error {
	settings := *t.sess.EnsureSettings()

	var ok bool
	err := t.call("save_settings", func(ctx context.Context) (err error) {
		ok, err = t.e.backend.SaveSettings(ctx, t.sess.Credentials(), settings)
		return err
	})
	if err != nil {
		return err
	}
	t.audit(domain.ActionSettingsSave, ok, "")

	if ok {
		t.say(msgSettingsSaved)
	} else {
		t.say(msgSettingsSaveFailed)
	}
	return t.settings()
}
