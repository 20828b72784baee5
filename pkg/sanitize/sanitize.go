// Package sanitize holds the input-scrubbing helpers the portal runs over
// user-supplied strings before they are transmitted or rendered.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict strips every HTML element and attribute, leaving only text content.
var strict = bluemonday.StrictPolicy()

// HTML removes any markup or script-bearing content from s.
func HTML(s string) string {
	return strict.Sanitize(s)
}

// StripSymbols removes dollar signs and dots from identity fields (full name,
// ID number, account number) before submission. It is never applied to
// amounts: the decimal point is required for correct parsing there.
func StripSymbols(s string) string {
	s = strings.ReplaceAll(s, "$", "")
	return strings.ReplaceAll(s, ".", "")
}
