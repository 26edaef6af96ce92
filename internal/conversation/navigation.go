package conversation

import (
	"context"
	"log/slog"

	"github.com/m3rciful/recruitbot/core/logger"
	"github.com/m3rciful/recruitbot/internal/domain"
	"github.com/m3rciful/recruitbot/internal/session"
)

func (t *turn) start() error {
	return t.toStart()
}

func (t *turn) logout() error {
	logger.Info(t.ctx, component, "logout", slog.Bool("authenticated", t.sess.Authenticated))
	return t.toStart()
}

func (t *turn) help() error {
	t.send(helpLinksMenu())
	t.send(helpContactsMenu())
	t.moveTo(session.StateHelp)
	return nil
}

func (t *turn) back() error {
	state := t.sess.State
	if route, ok := backRoutes[state]; ok {
		return route(t)
	}
	logger.Debug(t.ctx, component, "back.ignored", slog.String("state", string(state)))
	return nil
}

// backFromSettings returns to the invitation menu only when settings were
// opened straight from it.
func (t *turn) backFromSettings() error {
	switch t.sess.PreviousState {
	case session.StateLogin, session.StateInvitation:
		return t.invitationRoot()
	default:
		return t.toStart()
	}
}

// invitationRoot shows the authenticated main menu.
func (t *turn) invitationRoot() error {
	t.send(invitationMenu())
	t.moveTo(session.StateLogin)
	return nil
}

func (t *turn) settings() error {
	t.send(settingsMenu(t.sess.IsOwner()))
	t.moveTo(session.StateSettings)
	return nil
}

func (t *turn) askPassword() error {
	t.say(msgAskPassword)
	t.moveTo(session.StateLogin)
	return nil
}

func (t *turn) login(password string) error {
	if password == "" {
		t.say(msgAskPassword)
		return nil
	}

	var (
		role domain.Role
		ok   bool
	)
	err := t.call("login", func(ctx context.Context) (err error) {
		role, ok, err = t.e.backend.Login(ctx, t.sess.UserID, password)
		return err
	})
	if err != nil {
		return err
	}
	t.audit(domain.ActionLogin, ok, string(role))

	if !ok {
		t.say(msgWrongCredentials)
		return nil
	}
	t.sess.Authenticate(role, password)
	logger.Info(t.ctx, component, "login.ok", slog.String("role", string(role)))
	t.send(invitationMenu())
	t.moveTo(session.StateInvitation)
	return nil
}
