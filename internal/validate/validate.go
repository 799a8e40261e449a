// Package validate checks form input before it is sent to the backend.
//
// Validation is pure and synchronous: rule tables map field names to rule
// lists, and Apply runs them against a set of field values. Uniqueness and
// other server-side checks are not performed here; the backend's field
// errors are mapped into the same Result shape after submission.
package validate

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// DateFormat is the wire format for due dates.
const DateFormat = "2006-01-02"

// Result is the outcome of validating a set of field values.
type Result struct {
	// Errors maps field names to messages. Empty means valid.
	Errors map[string]string
}

// Valid reports whether every field passed.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Merge folds additional field errors into the result, keeping existing
// messages. Used to map backend field errors into the same shape.
func (r *Result) Merge(fields map[string]string) {
	for name, msg := range fields {
		if r.Errors == nil {
			r.Errors = make(map[string]string)
		}
		if _, exists := r.Errors[name]; !exists {
			r.Errors[name] = msg
		}
	}
}

// Rule checks a single value and returns an error message, or "" if the
// value passes.
type Rule func(value string) string

// Rules maps field names to the rules applied to them, in order. The first
// failing rule per field wins.
type Rules map[string][]Rule

// Apply runs the rule table against the given field values. Fields missing
// from values validate as empty strings.
func Apply(rules Rules, values map[string]string) Result {
	var result Result
	for field, ruleList := range rules {
		value := values[field]
		for _, rule := range ruleList {
			if msg := rule(value); msg != "" {
				if result.Errors == nil {
					result.Errors = make(map[string]string)
				}
				result.Errors[field] = msg
				break
			}
		}
	}
	return result
}

// Required fails on values that are empty after trimming.
func Required() Rule {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return "required"
		}
		return ""
	}
}

// MaxLen fails on values longer than n runes.
func MaxLen(n int) Rule {
	return func(value string) string {
		if len([]rune(value)) > n {
			return fmt.Sprintf("must be at most %d characters", n)
		}
		return ""
	}
}

// MinLen fails on non-empty values shorter than n runes. Pair with
// Required when the field is mandatory.
func MinLen(n int) Rule {
	return func(value string) string {
		if value != "" && len([]rune(value)) < n {
			return fmt.Sprintf("must be at least %d characters", n)
		}
		return ""
	}
}

// ContainsDigit fails on non-empty values without a digit.
func ContainsDigit() Rule {
	return func(value string) string {
		if value == "" {
			return ""
		}
		for _, r := range value {
			if unicode.IsDigit(r) {
				return ""
			}
		}
		return "must contain at least one digit"
	}
}

// ValidDate fails on non-empty values that do not parse as DateFormat.
func ValidDate() Rule {
	return func(value string) string {
		if value == "" {
			return ""
		}
		if _, err := time.Parse(DateFormat, strings.TrimSpace(value)); err != nil {
			return "must be a date in YYYY-MM-DD form"
		}
		return ""
	}
}

// NotBeforeDay fails on parseable dates strictly before day. Values that
// are empty or unparseable pass; pair with Required and ValidDate.
func NotBeforeDay(day time.Time) Rule {
	floor := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return func(value string) string {
		parsed, err := time.Parse(DateFormat, strings.TrimSpace(value))
		if err != nil {
			return ""
		}
		if parsed.Before(floor) {
			return "must not be in the past"
		}
		return ""
	}
}

// Email fails on non-empty values without a plausible addr shape. The
// backend remains the authority on deliverability.
func Email() Rule {
	return func(value string) string {
		if value == "" {
			return ""
		}
		at := strings.Index(value, "@")
		if at < 1 || at == len(value)-1 || strings.ContainsAny(value, " \t") {
			return "must be a valid email address"
		}
		return ""
	}
}
