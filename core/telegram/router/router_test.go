package router

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	tg "github.com/m3rciful/recruitbot/core/telegram"
	"github.com/m3rciful/recruitbot/core/telegram/callbacks"
	"github.com/m3rciful/recruitbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func newContext(t *testing.T, upd tele.Update) tele.Context {
	t.Helper()
	b, err := tele.NewBot(tele.Settings{Offline: true})
	require.NoError(t, err)
	return b.NewContext(upd)
}

func TestCallbackRouteUsesPrefixHandler(t *testing.T) {
	reg := tg.NewRegistry()
	var got string
	require.NoError(t, reg.RegisterCallbackPrefix("/", func(c tele.Context) error {
		got = callbacks.CallbackKey(c)
		return nil
	}))

	route := CallbackRoute(reg, CallbackOptions{})
	require.Equal(t, tele.OnCallback, route.Endpoint)

	c := newContext(t, tele.Update{ID: 1, Callback: &tele.Callback{Data: "/vacancy/5", Sender: &tele.User{ID: 7}}})
	require.NoError(t, route.Handler(c))
	require.Equal(t, "/vacancy/5", got)
}

func TestCallbackRouteNotFound(t *testing.T) {
	reg := tg.NewRegistry()
	reg.SetCallbackNotFound(func(tele.Context) error { return errors.New("unsupported") })

	route := CallbackRoute(reg, CallbackOptions{})
	c := newContext(t, tele.Update{ID: 2, Callback: &tele.Callback{Data: "nope", Sender: &tele.User{ID: 7}}})
	require.EqualError(t, route.Handler(c), "unsupported")
}

func TestTextRoutes(t *testing.T) {
	reg := tg.NewRegistry()
	var calls []string
	reg.RegisterCommand("/start", commands.Command{
		Description: "Start",
		Aliases:     []string{"begin"},
		Handler:     func(tele.Context) error { calls = append(calls, "start"); return nil },
	})
	reg.SetTextFallback(func(c tele.Context) error {
		calls = append(calls, "text:"+c.Text())
		return nil
	})

	routes := TextRoutes(reg, TextOptions{})
	require.Len(t, routes, 2)
	text := routes[0].Handler

	send := func(id int, s string) {
		c := newContext(t, tele.Update{ID: id, Message: &tele.Message{
			Text: s, Sender: &tele.User{ID: 7}, Chat: &tele.Chat{ID: 7},
		}})
		require.NoError(t, text(c))
	}
	send(1, "/begin")
	send(2, "begin")
	send(3, "/login")

	require.Equal(t, []string{"start", "text:begin", "text:/login"}, calls)
}

type codeErr struct{}

func (codeErr) Error() string { return "x" }
func (codeErr) Code() string  { return "backend down" }

func TestDeriveErrorCode(t *testing.T) {
	require.Equal(t, "BACKEND_DOWN", deriveErrorCode(fmt.Errorf("wrap: %w", codeErr{})))
	require.Equal(t, "OPERROR", deriveErrorCode(fmt.Errorf("wrap: %w", &opError{})))
	require.Empty(t, deriveErrorCode(nil))
	require.Equal(t, "users.confirm.delete.1", normalizeHandlerName("/users/confirm/delete/1"))
}

type opError struct{}

func (*opError) Error() string { return "op" }
