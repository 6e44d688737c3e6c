package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0722690154", "254722690154"},
		{"254722690154", "254722690154"},
		{"0110000000", "254110000000"},
		{"254110000000", "254110000000"},
		{"+254 722 690 154", "254722690154"},
		{"0722-690-154", "254722690154"},
	}
	for _, tc := range cases {
		got, err := NormalizePhone(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
}

func TestNormalizePhoneLocalAndInternationalAgree(t *testing.T) {
	a, err := NormalizePhone("0722690154")
	require.NoError(t, err)
	b, err := NormalizePhone("254722690154")
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestNormalizePhoneRejectsInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"12345",
		"0822690154",   // unknown local prefix
		"255722690154", // wrong country code
		"07226901",     // too short
		"07226901541",  // too long
		"not a phone",
	} {
		_, err := NormalizePhone(in)
		require.ErrorIs(t, err, ErrInvalidPhone, in)
		require.False(t, ValidPhone(in), in)
	}
}
