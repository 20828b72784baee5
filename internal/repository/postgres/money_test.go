package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericStringToCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"100.50", 10050},
		{"0.01", 1},
		{"7", 700},
		{"100.5", 10050},
		{" 12.34 ", 1234},
		{"-3.21", -321},
	}
	for _, tt := range tests {
		got, err := numericStringToCents(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestNumericStringToCents_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1,5"} {
		_, err := numericStringToCents(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestCentsToNumericString(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{10050, "100.50"},
		{1, "0.01"},
		{700, "7.00"},
		{-321, "-3.21"},
		{0, "0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, centsToNumericString(tt.in))
	}
}

func TestMoneyRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 10050, 999999999} {
		got, err := numericStringToCents(centsToNumericString(cents))
		require.NoError(t, err)
		assert.Equal(t, cents, got)
	}
}
