package validate

import "time"

// Policy holds the tunable validation limits. The zero value is not
// usable; start from DefaultPolicy.
type Policy struct {
	// TitleMaxLen caps the task title length.
	TitleMaxLen int

	// DescriptionMaxLen caps the task description length.
	DescriptionMaxLen int

	// AllowPastDue permits due dates before today.
	AllowPastDue bool

	// PasswordMinLen is the minimum password length.
	PasswordMinLen int

	// PasswordRequireDigit requires at least one digit in passwords.
	PasswordRequireDigit bool
}

// DefaultPolicy returns the stock limits.
func DefaultPolicy() Policy {
	return Policy{
		TitleMaxLen:          200,
		DescriptionMaxLen:    2000,
		AllowPastDue:         false,
		PasswordMinLen:       8,
		PasswordRequireDigit: true,
	}
}

// TaskRules builds the rule table for task create/edit forms. now anchors
// the past-due check.
func TaskRules(p Policy, now time.Time) Rules {
	dueRules := []Rule{Required(), ValidDate()}
	if !p.AllowPastDue {
		dueRules = append(dueRules, NotBeforeDay(now))
	}
	return Rules{
		"title":       {Required(), MaxLen(p.TitleMaxLen)},
		"description": {MaxLen(p.DescriptionMaxLen)},
		"due_date":    dueRules,
	}
}

// AccountRules builds the rule table for the registration form.
func AccountRules(p Policy) Rules {
	passwordRules := []Rule{Required(), MinLen(p.PasswordMinLen)}
	if p.PasswordRequireDigit {
		passwordRules = append(passwordRules, ContainsDigit())
	}
	return Rules{
		"username": {Required()},
		"email":    {Required(), Email()},
		"password": passwordRules,
	}
}

// LoginRules builds the rule table for the login form. Only presence is
// checked; the backend decides whether the pair is valid.
func LoginRules() Rules {
	return Rules{
		"username": {Required()},
		"password": {Required()},
	}
}
