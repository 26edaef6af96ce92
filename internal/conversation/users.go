package conversation

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/m3rciful/recruitbot/internal/domain"
	"github.com/m3rciful/recruitbot/internal/session"
)

func (t *turn) usersMenu() error {
	t.send(usersMenu())
	t.moveTo(session.StateSettingsUsers)
	return nil
}

func (t *turn) fetchUsers() ([]domain.SubUser, bool, error) {
	var (
		users []domain.SubUser
		ok    bool
	)
	err := t.call("list_users", func(ctx context.Context) (err error) {
		users, ok, err = t.e.backend.ListUsers(ctx, t.sess.Credentials())
		return err
	})
	return users, ok, err
}

func (t *turn) listUsers() error {
	users, ok, err := t.fetchUsers()
	if err != nil {
		return err
	}
	if !ok {
		t.say(msgUsersUnavailable)
		return t.usersMenu()
	}
	t.send(usersListReply(users))
	t.moveTo(session.StateSettingsUsersList)
	return nil
}

func (t *turn) askSubUserName() error {
	t.say(msgAskSubUserName)
	t.moveTo(session.StateSettingsUsersAdd)
	return nil
}

func (t *turn) addSubUser(name string) error {
	if name == "" {
		t.say(msgAskSubUserName)
		return nil
	}

	var (
		user domain.SubUser
		ok   bool
	)
	err := t.call("add_user", func(ctx context.Context) (err error) {
		user, ok, err = t.e.backend.AddUser(ctx, t.sess.Credentials(), name)
		return err
	})
	if err != nil {
		return err
	}
	t.audit(domain.ActionUserAdd, ok, user.ExternalID)

	if ok {
		t.say(fmt.Sprintf(msgUserAdded, name, user.ExternalID, user.Secret))
	} else {
		t.say(msgUserAddFailed)
	}
	return t.usersMenu()
}

func (t *turn) askDeleteID() error {
	t.say(msgAskDeleteID)
	t.moveTo(session.StateSettingsUsersDelete)
	return nil
}

func (t *turn) lookupDeleteID(id string) error {
	users, ok, err := t.fetchUsers()
	if err != nil {
		return err
	}
	if !ok {
		t.say(msgUsersUnavailable)
		return t.usersMenu()
	}

	user, found := lo.Find(users, func(u domain.SubUser) bool {
		return u.ExternalID == id
	})
	if !found {
		t.say(fmt.Sprintf(msgUserNotFound, id))
		return t.usersMenu()
	}
	t.send(deleteConfirmMenu(user))
	t.moveTo(session.StateSettingsUsersDeleteConfirm)
	return nil
}

func (t *turn) confirmDelete(id string) error {
	var ok bool
	err := t.call("delete_user", func(ctx context.Context) (err error) {
		ok, err = t.e.backend.DeleteUser(ctx, t.sess.Credentials(), id)
		return err
	})
	if err != nil {
		return err
	}
	t.audit(domain.ActionUserDelete, ok, id)

	if ok {
		t.say(msgUserDeleted)
	} else {
		t.say(msgUserDeleteFailed)
	}
	return t.usersMenu()
}
