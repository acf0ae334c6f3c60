package controller

import "errors"

var (
	// ErrMissingElement signals that the page lacks an element the controller
	// binds to.
	ErrMissingElement = errors.New("controller: missing element")
	// ErrUnknownField is returned when a field, its container or its error
	// element cannot be found.
	ErrUnknownField = errors.New("controller: unknown field")
	// ErrUnknownSubmitMode is returned when parsing an unsupported submit mode.
	ErrUnknownSubmitMode = errors.New("controller: unknown submit mode")
	// ErrNilDocument is returned when New receives no document or window.
	ErrNilDocument = errors.New("controller: document and window are required")
)
