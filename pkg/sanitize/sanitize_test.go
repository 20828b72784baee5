package sanitize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/payportal/payportal/pkg/sanitize"
)

func TestHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Alice Smith", "Alice Smith"},
		{"tags stripped", "<b>USD</b>", "USD"},
		{"script removed", "<script>alert(1)</script>", ""},
		{"attributes never survive", `<a href="javascript:alert(1)">pay</a>`, "pay"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitize.HTML(tt.in))
		})
	}
}

func TestHTML_Idempotent(t *testing.T) {
	in := "<b>Alice</b> <i>Smith</i>"
	once := sanitize.HTML(in)
	assert.Equal(t, once, sanitize.HTML(once))
}

func TestStripSymbols(t *testing.T) {
	assert.Equal(t, "1234567890", sanitize.StripSymbols("12.345.678.90"))
	assert.Equal(t, "100", sanitize.StripSymbols("$100"))
	assert.Equal(t, "Alice Smith", sanitize.StripSymbols("Alice Smith"))
	assert.Equal(t, "", sanitize.StripSymbols("$."))
}
