package portal

import (
	"regexp"
	"sort"
	"strings"
)

// Errors maps a failing field name to a human-readable message. An empty map
// means every field passed and submission may proceed.
type Errors map[string]string

// Error implements the error interface so a non-empty map can be returned
// directly from submission calls.
func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

// Rule checks one raw field value. Check returns true when the value is
// acceptable.
type Rule struct {
	Field   string
	Check   func(string) bool
	Message string
}

// RuleSet is the declarative rule table for one form. Every rule is evaluated
// (no short-circuiting) so multiple errors can surface simultaneously, and
// evaluation has no side effects.
type RuleSet []Rule

// Validate runs every rule against the corresponding field value and returns
// the field -> message map of failures.
func (rs RuleSet) Validate(fields map[string]string) Errors {
	errs := Errors{}
	for _, r := range rs {
		if !r.Check(fields[r.Field]) {
			errs[r.Field] = r.Message
		}
	}
	return errs
}

// matches builds a check accepting values matched by re.
func matches(re *regexp.Regexp) func(string) bool {
	return func(s string) bool { return re.MatchString(s) }
}

// matchesUpper builds a check that uppercases the value before matching.
func matchesUpper(re *regexp.Regexp) func(string) bool {
	return func(s string) bool { return re.MatchString(strings.ToUpper(s)) }
}

// oneOfUpper builds a check accepting any of the given values after
// uppercasing the input.
func oneOfUpper(values ...string) func(string) bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return func(s string) bool { return set[strings.ToUpper(s)] }
}

func notEmpty(s string) bool { return s != "" }

// strongPassword accepts passwords of at least 8 characters containing an
// uppercase letter, a lowercase letter and a digit. This is the lookahead-free
// equivalent of /(?=.*[a-z])(?=.*[A-Z])(?=.*\d).{8,}/.
func strongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return lower && upper && digit
}
