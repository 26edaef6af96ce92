package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEscapeMarkdown(t *testing.T) {
	v2, err := EscapeMarkdown("build v1.2-rc (x_y)!", MarkdownV2)
	require.NoError(t, err)
	require.Equal(t, `build v1\.2\-rc \(x\_y\)\!`, v2)

	v2, err = EscapeMarkdown("sessions: 3, authenticated: 1/2 <a>; x[0]", MarkdownV2)
	require.NoError(t, err)
	require.Equal(t, `sessions: 3, authenticated: 1/2 <a\>; x\[0\]`, v2)

	v2, err = EscapeMarkdown(`a\b`, MarkdownV2)
	require.NoError(t, err)
	require.Equal(t, `a\\b`, v2)

	v1, err := EscapeMarkdown("a_b*c", MarkdownV1)
	require.NoError(t, err)
	require.Equal(t, `a\_b\*c`, v1)

	_, err = EscapeMarkdown("x", 3)
	require.Error(t, err)
}

func TestCodeBlockV2(t *testing.T) {
	require.Equal(t, "```\na\\`b\n```", CodeBlockV2("a`b"))
}
