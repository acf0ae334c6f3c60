package page

import "errors"

var (
	// ErrNilRenderer is returned when a method is called on a nil Renderer.
	ErrNilRenderer = errors.New("page: renderer is nil")
	// ErrThemeNotFound is returned when a named theme cannot be resolved.
	ErrThemeNotFound = errors.New("page: theme not found")
	// ErrInvalidIcon is returned when icon markup is empty after sanitising.
	ErrInvalidIcon = errors.New("page: icon markup rejected by sanitizer")
)
