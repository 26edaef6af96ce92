package keyboard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInlineButtonsRowsKinds(t *testing.T) {
	markup := InlineButtonsRows(
		[]InlineBtn{{Text: "Vacancy", Data: "/vacancy/5"}},
		nil,
		[]InlineBtn{{Text: "Docs", URL: "https://example.com/docs"}, {Text: "Stats", Unique: "stats", Data: "all"}},
	)
	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 2)

	raw := markup.InlineKeyboard[0][0]
	require.Equal(t, "/vacancy/5", raw.Data)
	require.Empty(t, raw.Unique)

	url := markup.InlineKeyboard[1][0]
	require.Equal(t, "https://example.com/docs", url.URL)
	require.Empty(t, url.Data)

	unique := markup.InlineKeyboard[1][1]
	require.Equal(t, "stats", unique.Unique)
}

func TestInlineButtonsNPerRow(t *testing.T) {
	buttons := []InlineBtn{{Text: "a", Data: "/a"}, {Text: "b", Data: "/b"}, {Text: "c", Data: "/c"}}

	markup := InlineButtonsNPerRow(buttons, 2)
	require.Len(t, markup.InlineKeyboard, 2)
	require.Len(t, markup.InlineKeyboard[0], 2)
	require.Len(t, markup.InlineKeyboard[1], 1)

	require.Len(t, InlineButtons(buttons).InlineKeyboard, 3)
	require.Nil(t, InlineButtons(nil))
}
