package controller

import (
	"fmt"
	"strings"
)

// SubmitMode selects what a successful submit does.
type SubmitMode string

const (
	// SubmitModePasswordGate validates the password, shows the loading state
	// and redirects to the success page after the redirect delay.
	SubmitModePasswordGate SubmitMode = "passwordGate"
	// SubmitModeEmailGate validates the email and acknowledges with an alert.
	SubmitModeEmailGate SubmitMode = "emailGate"
)

// ParseSubmitMode accepts the canonical names plus kebab and snake case
// spellings and the short forms "password" and "email".
func ParseSubmitMode(raw string) (SubmitMode, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("-", "", "_", "").Replace(key)
	switch key {
	case "passwordgate", "password":
		return SubmitModePasswordGate, nil
	case "emailgate", "email":
		return SubmitModeEmailGate, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSubmitMode, raw)
	}
}

func (m SubmitMode) String() string { return string(m) }

// Valid reports whether m is one of the known modes.
func (m SubmitMode) Valid() bool {
	return m == SubmitModePasswordGate || m == SubmitModeEmailGate
}

// Phase tracks a submit attempt.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseRejected
	PhaseSubmitting
	PhaseRedirecting
	PhaseAcknowledged
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseRejected:
		return "rejected"
	case PhaseSubmitting:
		return "submitting"
	case PhaseRedirecting:
		return "redirecting"
	case PhaseAcknowledged:
		return "acknowledged"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}
