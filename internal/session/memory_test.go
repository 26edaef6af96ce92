package session_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/recruitbot/internal/domain"
	"github.com/m3rciful/recruitbot/internal/session"
)

func TestMemoryStoreGetMissing(t *testing.T) {
	store := session.NewMemoryStore()

	_, ok := store.Get(1)
	require.False(t, ok)

	unlock := store.Lock(1)
	unlock()
	_, ok = store.Get(1)
	require.False(t, ok, "locking must not create a session")
}

func TestMemoryStoreCopiesOnGetAndPut(t *testing.T) {
	store := session.NewMemoryStore()

	s := store.CreateOrReset(7)
	require.Equal(t, session.StateStart, s.State)

	s.Authenticate(domain.RoleOwner, "pw")
	s.StartInvite(true, false).Name = "Ivan"

	stored, _ := store.Get(7)
	require.False(t, stored.Authenticated, "mutations are invisible until Put")

	store.Put(s)
	s.Invite.Name = "changed after put"

	stored, ok := store.Get(7)
	require.True(t, ok)
	require.True(t, stored.Authenticated)
	require.Equal(t, "Ivan", stored.Invite.Name)
}

func TestMemoryStoreCreateOrResetDropsState(t *testing.T) {
	store := session.NewMemoryStore()
	s := store.CreateOrReset(3)
	s.Authenticate(domain.RoleManager, "pw")
	s.Transition(session.StateInvitation)
	store.Put(s)

	fresh := store.CreateOrReset(3)
	require.Equal(t, session.StateStart, fresh.State)
	require.False(t, fresh.Authenticated)
	require.Nil(t, fresh.Invite)
}

func TestMemoryStoreStats(t *testing.T) {
	store := session.NewMemoryStore()
	store.CreateOrReset(1)
	s := store.CreateOrReset(2)
	s.Authenticate(domain.RoleOwner, "pw")
	store.Put(s)

	require.Equal(t, session.Stats{Sessions: 2, Authenticated: 1}, store.Stats())
}

func TestMemoryStoreLockSerializesSameUser(t *testing.T) {
	store := session.NewMemoryStore()
	store.CreateOrReset(42)

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock := store.Lock(42)
			defer unlock()
			s, _ := store.Get(42)
			d := s.EnsureInvite()
			d.Name += "x"
			store.Put(s)
		}()
	}
	wg.Wait()

	s, _ := store.Get(42)
	require.Len(t, s.Invite.Name, workers)
}

func TestSessionTransitionAndReset(t *testing.T) {
	s := session.New(5)
	s.Transition(session.StateLogin)
	s.Transition(session.StateInvitation)
	require.Equal(t, session.StateLogin, s.PreviousState)

	job := int64(9)
	s.SelectedJobID = &job
	s.Authenticate(domain.RoleOwner, "pw")
	s.StartRegistration().Name = "n"
	s.StartSettings(&domain.Settings{Site: "x"})

	s.Reset()
	require.False(t, s.Authenticated)
	require.Empty(t, s.Secret)
	require.Empty(t, s.Role)
	require.Nil(t, s.SelectedJobID)
	require.Nil(t, s.Invite)
	require.Nil(t, s.Registration)
	require.Nil(t, s.Settings)
}
