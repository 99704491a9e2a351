package auth

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abhisek/passgate/internal/strength"
)

// MaxUsernameLength is the longest accepted username, in characters.
const MaxUsernameLength = 50

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// passwordRules are checked in order; every failing rule is reported.
var passwordRules = []struct {
	ok  func(string) bool
	msg string
}{
	{func(p string) bool { return utf8.RuneCountInString(p) >= strength.MinLength }, "Password must be at least 8 characters long."},
	{strength.HasUpper, "Password must contain at least one uppercase letter."},
	{strength.HasLower, "Password must contain at least one lowercase letter."},
	{strength.HasDigit, "Password must contain at least one digit."},
	{hasPolicySpecial, "Password must contain at least one special character."},
}

// hasPolicySpecial reports whether p has a rune that is not a word character,
// or an underscore. Letters and digits of any script are word characters,
// so "é" does not count. The meter's strength.HasSpecial is looser.
func hasPolicySpecial(p string) bool {
	return strings.ContainsFunc(p, func(r rune) bool {
		return r == '_' || !(unicode.IsLetter(r) || unicode.IsNumber(r))
	})
}

// PasswordPolicy returns every registration rule password breaks, or nil.
func PasswordPolicy(password string) []string {
	var problems []string
	for _, r := range passwordRules {
		if !r.ok(password) {
			problems = append(problems, r.msg)
		}
	}
	return problems
}

// ValidEmail reports whether email looks like an address.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizeEmail trims surrounding space and lowercases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

// CheckRequired enforces the checks that happen before any schema rule:
// every field present, and the two passwords equal.
func (in RegisterInput) CheckRequired() error {
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Email) == "" ||
		in.Password == "" || in.PasswordConfirm == "" {
		return newFieldError(FieldForm, MsgAllFieldsRequired)
	}
	if in.Password != in.PasswordConfirm {
		return newFieldError(FieldPasswordConfirm, MsgPasswordsMismatch)
	}
	return nil
}

// Validate runs the full registration rule set and collects all problems.
func (in RegisterInput) Validate() error {
	if err := in.CheckRequired(); err != nil {
		return err
	}

	ve := &ValidationError{}
	if n := utf8.RuneCountInString(strings.TrimSpace(in.Username)); n < 1 || n > MaxUsernameLength {
		ve.Add(FieldUsername, MsgUsernameLength)
	}
	if !ValidEmail(NormalizeEmail(in.Email)) {
		ve.Add(FieldEmail, MsgInvalidEmail)
	}
	for _, p := range PasswordPolicy(in.Password) {
		ve.Add(FieldPassword, p)
	}
	return ve.orNil()
}

// validateLogin checks the login form.
func validateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return newFieldError(FieldForm, MsgLoginRequired)
	}
	if !ValidEmail(NormalizeEmail(email)) {
		return newFieldError(FieldEmail, MsgInvalidEmail)
	}
	return nil
}
