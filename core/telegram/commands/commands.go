// Package commands describes bot commands independently of their routing.
package commands

import (
	"strings"

	"github.com/samber/lo"

	tele "gopkg.in/telebot.v4"
)

// Command is a slash command with its handler and menu metadata. AdminOnly
// commands pass the admin middleware before Handler runs; Hidden ones are
// left out of the Telegram command menu.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
	Aliases     []string
}

// Invalid returns why cmd cannot be registered under name, or "" if it can.
func (cmd Command) Invalid(name string) string {
	switch {
	case name == "" || cmd.Handler == nil || strings.TrimSpace(cmd.Description) == "":
		return "invalid"
	case name[0] != '/':
		return "no_slash_prefix"
	}
	return ""
}

// Visible reports whether cmd belongs in the public command menu.
func (cmd Command) Visible() bool {
	return !cmd.Hidden && !cmd.AdminOnly
}

// HasAlias reports whether name, with or without the leading slash, is one
// of the aliases.
func (cmd Command) HasAlias(name string) bool {
	return lo.ContainsBy(cmd.Aliases, func(alias string) bool {
		return alias == name || "/"+alias == name || alias == "/"+name
	})
}
