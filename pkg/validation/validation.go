// Package validation holds the login form field rules. The rules are pure
// functions over the raw field value; displaying the outcome is the
// controller's job.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf16"
)

// Fixed user-facing messages.
const (
	MessageEmailRequired     = "Please enter your email address."
	MessageEmailInvalid      = "Please enter a valid email address (e.g. user@example.com)."
	MessagePasswordRequired  = "Please enter your password."
	MessagePasswordTooShort  = "Password must be at least 6 characters long."
	MessagePasswordIncorrect = "Incorrect password"
)

// MinPasswordLength is counted in UTF-16 code units, the way browsers report
// string length.
const MinPasswordLength = 6

// DemoPassword is the only password DemoPasswordCheck accepts. It stands in
// for a real credential check.
const DemoPassword = "correctpassword"

// jsSpace lists the characters ECMAScript treats as \s and strips in
// String.prototype.trim.
const jsSpace = `\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

var emailPattern = regexp.MustCompile(`^[^` + jsSpace + `@]+@[^` + jsSpace + `@]+\.[^` + jsSpace + `@]+$`)

// Result is the outcome of a single rule evaluation. Message is empty when
// Valid is true.
type Result struct {
	Valid   bool
	Message string
}

func ok() Result { return Result{Valid: true} }

func fail(message string) Result { return Result{Message: message} }

// PasswordCheck decides whether a well-formed password is accepted.
type PasswordCheck func(password string) bool

// DemoPasswordCheck accepts DemoPassword only.
func DemoPasswordCheck(password string) bool {
	return password == DemoPassword
}

// Email validates a raw email field value. The value is trimmed first.
func Email(raw string) Result {
	email := TrimSpace(raw)
	if email == "" {
		return fail(MessageEmailRequired)
	}
	if !emailPattern.MatchString(email) {
		return fail(MessageEmailInvalid)
	}
	return ok()
}

// Password validates a raw password value. The value is not trimmed. A nil
// check falls back to DemoPasswordCheck.
func Password(raw string, check PasswordCheck) Result {
	if raw == "" {
		return fail(MessagePasswordRequired)
	}
	if Length(raw) < MinPasswordLength {
		return fail(MessagePasswordTooShort)
	}
	if check == nil {
		check = DemoPasswordCheck
	}
	if !check(raw) {
		return fail(MessagePasswordIncorrect)
	}
	return ok()
}

// TrimSpace strips leading and trailing ECMAScript whitespace.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, isJSSpace)
}

// Length returns the UTF-16 length of s.
func Length(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func isJSSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		0x00A0, 0x1680, 0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}
