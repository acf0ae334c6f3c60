package terminal

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g. Ctrl+C).
	ErrAborted = errors.New("terminal: aborted")
	// ErrTooManyAttempts is returned once the attempt budget is spent without
	// an accepted submission.
	ErrTooManyAttempts = errors.New("terminal: too many attempts")
	// ErrMissingRenderer is returned when a session has no page renderer.
	ErrMissingRenderer = errors.New("terminal: missing page renderer")
)
