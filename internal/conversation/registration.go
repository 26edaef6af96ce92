package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/m3rciful/recruitbot/core/logger"
	"github.com/m3rciful/recruitbot/internal/domain"
	"github.com/m3rciful/recruitbot/internal/session"
	"github.com/m3rciful/recruitbot/internal/validate"
)

func (t *turn) beginRegistration() error {
	t.sess.StartRegistration()
	t.say(msgAskRegName)
	t.moveTo(session.StateRegistration)
	return nil
}

func (t *turn) registrationName(name string) error {
	draft := t.sess.EnsureRegistration()
	draft.Name = name
	draft.ExternalID = strconv.FormatInt(t.sess.UserID, 10)
	t.say(msgAskRegEmail)
	t.moveTo(session.StateRegistrationName)
	return nil
}

func (t *turn) registrationEmail(email string) error {
	if !validate.IsValidEmail(email) {
		t.say(msgBadEmail)
		t.say(msgAskRegEmail)
		return nil
	}
	t.sess.EnsureRegistration().Email = email
	t.say(msgAskRegPassword)
	t.moveTo(session.StateRegistrationEmail)
	return nil
}

func (t *turn) registrationPassword(password string) error {
	if password == "" {
		t.say(msgAskRegPassword)
		return nil
	}
	draft := t.sess.EnsureRegistration()
	draft.Password = password
	draft.ConfirmPassword = password
	t.moveTo(session.StateRegistrationPassword)

	var res domain.RegistrationResult
	err := t.call("register", func(ctx context.Context) (err error) {
		res, err = t.e.backend.Register(ctx, *draft)
		return err
	})
	if err != nil {
		return err
	}
	t.audit(domain.ActionRegistration, res.Success, res.Message)

	if !res.Success {
		logger.Info(t.ctx, component, "registration.rejected",
			slog.String("cause", logger.SanitizeLimit(res.Message, 128)),
		)
		t.say(fmt.Sprintf(msgRegistrationFailed, res.Message))
		return t.toStart()
	}

	t.sess.Authenticate(domain.RoleOwner, password)
	t.say(fmt.Sprintf(msgRegistrationOK, password))
	// A failed settings fetch leaves the owner at the authenticated root.
	t.moveTo(session.StateLogin)
	return t.loadCompanySettings(true)
}
