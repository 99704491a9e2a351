package auth

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Field keys used in ValidationError.
const (
	FieldForm            = "form"
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldPasswordConfirm = "password_confirm"
)

// User-facing messages.
const (
	MsgAllFieldsRequired  = "All fields are required."
	MsgLoginRequired      = "Both email and password are required."
	MsgPasswordsMismatch  = "Passwords do not match."
	MsgUsernameLength     = "Username must be between 1 and 50 characters."
	MsgInvalidEmail       = "Invalid email format."
	MsgEmailTaken         = "Email already registered."
	MsgInvalidCredentials = "Invalid email or password."
	MsgStoreFailure       = "A database error occurred."
)

var (
	// ErrEmailTaken means another account already uses the email.
	ErrEmailTaken = errors.New(MsgEmailTaken)

	// ErrInvalidCredentials means the email is unknown or the password is wrong.
	ErrInvalidCredentials = errors.New(MsgInvalidCredentials)

	// ErrStore wraps persistence failures. The cause is logged, not shown.
	ErrStore = errors.New(MsgStoreFailure)
)

// ValidationError collects input problems per field.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a message for field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// First returns the first message for field, or "".
func (e *ValidationError) First(field string) string {
	if msgs := e.Fields[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// orNil returns e when it holds messages.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func newFieldError(field, msg string) *ValidationError {
	e := &ValidationError{}
	e.Add(field, msg)
	return e
}

// Message picks the single line to show for err: the first field message
// (form first), then the sentinel text, then a generic fallback.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		for _, f := range []string{FieldForm, FieldEmail, FieldPassword, FieldPasswordConfirm, FieldUsername} {
			if m := ve.First(f); m != "" {
				return m
			}
		}
	}
	for _, sentinel := range []error{ErrEmailTaken, ErrInvalidCredentials, ErrStore} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "Request failed. Please try again."
}
