package keyboard

import (
	"github.com/samber/lo"

	tele "gopkg.in/telebot.v4"
)

// InlineBtn describes a convenience wrapper for inline button properties.
//
// URL buttons open a link. Buttons with a Unique are encoded the telebot way
// and reach the handler registered for that unique; buttons without one
// carry Data verbatim as raw callback data.
type InlineBtn struct {
	Text   string
	Unique string
	Data   string
	URL    string
}

// RemoveKeyboard returns a markup that hides the keyboard.
func RemoveKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

// InlineButtons builds an inline keyboard where each provided button is placed on its own row.
func InlineButtons(buttons []InlineBtn) *tele.ReplyMarkup {
	return InlineButtonsNPerRow(buttons, 1)
}

// InlineButtonsRows builds an inline keyboard from rows of InlineBtn.
// Empty rows are skipped; nil is returned when no button remains.
func InlineButtonsRows(rows ...[]InlineBtn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		markup.InlineKeyboard = append(markup.InlineKeyboard, lo.Map(row, func(btn InlineBtn, _ int) tele.InlineButton {
			return inline(markup, btn)
		}))
	}
	if len(markup.InlineKeyboard) == 0 {
		return nil
	}
	return markup
}

// InlineButtonsNPerRow splits a flat list of buttons into rows with up to n buttons per row.
func InlineButtonsNPerRow(buttons []InlineBtn, n int) *tele.ReplyMarkup {
	return InlineButtonsRows(lo.Chunk(buttons, max(n, 1))...)
}

func inline(markup *tele.ReplyMarkup, btn InlineBtn) tele.InlineButton {
	switch {
	case btn.URL != "":
		return tele.InlineButton{Text: btn.Text, URL: btn.URL}
	case btn.Unique == "":
		return tele.InlineButton{Text: btn.Text, Data: btn.Data}
	default:
		return *markup.Data(btn.Text, btn.Unique, btn.Data).Inline()
	}
}
