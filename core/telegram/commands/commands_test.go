package commands

import (
	"testing"

	"github.com/stretchr/testify/require"

	tele "gopkg.in/telebot.v4"
)

func TestCommandChecks(t *testing.T) {
	noop := func(tele.Context) error { return nil }
	cmd := Command{Handler: noop, Description: "Start", Aliases: []string{"begin"}}

	require.Empty(t, cmd.Invalid("/start"))
	require.Equal(t, "no_slash_prefix", cmd.Invalid("start"))
	require.Equal(t, "invalid", Command{Handler: noop}.Invalid("/start"))
	require.Equal(t, "invalid", Command{Description: "x"}.Invalid("/start"))

	require.True(t, cmd.Visible())
	require.False(t, Command{AdminOnly: true}.Visible())
	require.False(t, Command{Hidden: true}.Visible())

	require.True(t, cmd.HasAlias("/begin"))
	require.True(t, cmd.HasAlias("begin"))
	require.False(t, cmd.HasAlias("/start"))
}
