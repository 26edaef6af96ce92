package validate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/recruitbot/internal/validate"
)

func TestIsAcceptedPhone(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"9991234567", true},
		{"89991234567", true},
		{"1234567890", false},
		{"123", false},
		{"", false},
		{"999123456a", false},
		{"9991234567890123", false},
		{" 9991234567", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.want, validate.IsAcceptedPhone(tc.in))
		})
	}
}

func TestIsMobile(t *testing.T) {
	require.True(t, validate.IsMobile("0912345678"))
	require.False(t, validate.IsMobile("091234567"))
	require.False(t, validate.IsMobile("9"))
}

func TestIsDigitsOnly(t *testing.T) {
	require.True(t, validate.IsDigitsOnly("1"))
	require.True(t, validate.IsDigitsOnly("123456789012345"))
	require.False(t, validate.IsDigitsOnly("1234567890123456"))
	require.False(t, validate.IsDigitsOnly("+7999"))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "A.B@Example.COM", "user+tag@mail.example.org", "x@[10.0.0.1]"}
	invalid := []string{"", "   ", "not-an-email", "a@", "@b.co", "a..b@c.d", "a b@c.d", "a@b..c"}

	for _, s := range valid {
		require.Truef(t, validate.IsValidEmail(s), "expected %q to be valid", s)
	}
	for _, s := range invalid {
		require.Falsef(t, validate.IsValidEmail(s), "expected %q to be invalid", s)
	}
}
