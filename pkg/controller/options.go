package controller

import (
	"strings"
	"time"

	"github.com/goliatone/go-loginform/pkg/dom"
	"github.com/goliatone/go-loginform/pkg/validation"
)

// Logger is satisfied by *log.Logger from charmbracelet/log.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
}

// Option configures a Controller.
type Option func(*Controller)

// WithSubmitMode selects the submit behaviour. Unknown modes are ignored.
func WithSubmitMode(mode SubmitMode) Option {
	return func(c *Controller) {
		if mode.Valid() {
			c.mode = mode
		}
	}
}

// WithPasswordCheck replaces the hardcoded password comparison.
func WithPasswordCheck(check validation.PasswordCheck) Option {
	return func(c *Controller) {
		if check != nil {
			c.check = check
		}
	}
}

// WithScheduler overrides the timer used for the delayed redirect.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithRedirectDelay overrides RedirectDelay. Negative values are ignored.
func WithRedirectDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.delay = d
		}
	}
}

// WithSuccessPath overrides the redirect target.
func WithSuccessPath(path string) Option {
	return func(c *Controller) {
		if path != "" {
			c.successPath = path
		}
	}
}

// WithSuccessMessage overrides the acknowledgment alert text.
func WithSuccessMessage(message string) Option {
	return func(c *Controller) {
		if message != "" {
			c.successMessage = message
		}
	}
}

// WithLogger attaches a debug logger. Field values are never logged.
func WithLogger(l Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Form data attributes carrying host configuration into the page.
const (
	AttrSubmitMode     = "data-submit-mode"
	AttrSuccessPath    = "data-success-path"
	AttrRedirectDelay  = "data-redirect-delay"
	AttrSuccessMessage = "data-success-message"
)

// FormOptions reads the data attributes rendered on the form. Unparseable
// values are skipped so the defaults apply.
func FormOptions(form dom.Element) []Option {
	if form == nil {
		return nil
	}
	var opts []Option
	if raw, ok := form.Attribute(AttrSubmitMode); ok {
		if mode, err := ParseSubmitMode(raw); err == nil {
			opts = append(opts, WithSubmitMode(mode))
		}
	}
	if path, ok := form.Attribute(AttrSuccessPath); ok {
		opts = append(opts, WithSuccessPath(strings.TrimSpace(path)))
	}
	if raw, ok := form.Attribute(AttrRedirectDelay); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(raw)); err == nil {
			opts = append(opts, WithRedirectDelay(d))
		}
	}
	if message, ok := form.Attribute(AttrSuccessMessage); ok {
		opts = append(opts, WithSuccessMessage(message))
	}
	return opts
}
