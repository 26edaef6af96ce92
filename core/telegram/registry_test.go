package telegram

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/recruitbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func named(name string, calls *[]string) tele.HandlerFunc {
	return func(tele.Context) error {
		*calls = append(*calls, name)
		return nil
	}
}

func TestRegistryCallbackLookup(t *testing.T) {
	var calls []string
	reg := NewRegistry()
	require.NoError(t, reg.RegisterCallbackPrefix("/", named("any", &calls)))
	require.NoError(t, reg.RegisterCallbackPrefix("/users/", named("users", &calls)))
	require.NoError(t, reg.RegisterCallback("/users/list", named("list", &calls)))
	require.Error(t, reg.RegisterCallback("/users/list", named("dup", &calls)))
	require.ErrorIs(t, reg.RegisterCallback("", named("empty", &calls)), ErrInvalidCallback)

	for _, key := range []string{"/users/list", "/users/confirm/delete/3", "/vacancy/5"} {
		h, ok := reg.GetCallback(key)
		require.True(t, ok, key)
		require.NoError(t, h(nil))
	}
	require.Equal(t, []string{"list", "users", "any"}, calls)

	_, ok := reg.GetCallback("stats")
	require.False(t, ok)
	require.Equal(t, []string{"/*", "/users/*", "/users/list"}, reg.ListCallbacks())
}

func TestRegistryCommands(t *testing.T) {
	reg := NewRegistry()
	noop := func(tele.Context) error { return nil }
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Start", Aliases: []string{"menu"}})
	reg.RegisterCommand("/stats", commands.Command{Handler: noop, Description: "Stats", AdminOnly: true, Hidden: true})
	reg.RegisterCommand("help", commands.Command{Handler: noop, Description: "Help"})
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Again"})

	require.Len(t, reg.Commands(), 2)
	require.Equal(t, []tele.Command{{Text: "start", Description: "Start"}}, reg.ListCommands(true))
	require.Len(t, reg.ListCommands(false), 2)

	key, cmd, ok := reg.LookupCommand("/menu")
	require.True(t, ok)
	require.Equal(t, "/start", key)
	require.Equal(t, "Start", cmd.Description)

	_, _, ok = reg.LookupCommand("/login")
	require.False(t, ok)
}
