package user

import (
	"regexp"
	"strings"
)

// Violation is a single field-level constraint failure. FieldName is the
// violated field, Message a human-readable description.
type Violation struct {
	FieldName string `json:"fieldName"`
	Message   string `json:"message"`
}

// Constraint messages. These are part of the public API contract.
const (
	MsgEmailRequired     = "Email is required."
	MsgEmailInvalid      = "Invalid email format."
	MsgFirstNameRequired = "First name is required."
	MsgLastNameRequired  = "Last name is required."
	MsgBirthDateRequired = "Birth date is required."
	MsgBirthDateNotPast  = "Birth date must be earlier than current date."
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validator evaluates the field constraints on a User. One long-lived
// instance is constructed at startup and shared; its only state is the
// clock, injectable for tests.
type Validator struct {
	now func() Date
}

// NewValidator creates a validator using the real clock.
func NewValidator() *Validator {
	return &Validator{now: Today}
}

// NewValidatorAt creates a validator with a fixed notion of "today".
func NewValidatorAt(now func() Date) *Validator {
	return &Validator{now: now}
}

// Validate evaluates every constraint independently and returns all
// violations together, in field order. It never stops at the first failure.
//
// Constraints: email non-blank and syntactically valid, first and last name
// non-blank, birth date present and strictly before the current date.
func (v *Validator) Validate(u *User) []Violation {
	var violations []Violation

	switch {
	case u.Email == nil || strings.TrimSpace(*u.Email) == "":
		violations = append(violations, Violation{FieldName: "email", Message: MsgEmailRequired})
	case !emailRegex.MatchString(*u.Email):
		violations = append(violations, Violation{FieldName: "email", Message: MsgEmailInvalid})
	}

	if u.FirstName == nil || strings.TrimSpace(*u.FirstName) == "" {
		violations = append(violations, Violation{FieldName: "firstName", Message: MsgFirstNameRequired})
	}
	if u.LastName == nil || strings.TrimSpace(*u.LastName) == "" {
		violations = append(violations, Violation{FieldName: "lastName", Message: MsgLastNameRequired})
	}

	switch {
	case u.BirthDate == nil:
		violations = append(violations, Violation{FieldName: "birthDate", Message: MsgBirthDateRequired})
	case !u.BirthDate.Before(v.now()):
		violations = append(violations, Violation{FieldName: "birthDate", Message: MsgBirthDateNotPast})
	}

	return violations
}
