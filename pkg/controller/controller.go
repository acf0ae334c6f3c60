package controller

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-loginform/pkg/dom"
	"github.com/goliatone/go-loginform/pkg/validation"
)

// DOM contract shared with the page templates.
const (
	FormID         = "loginForm"
	EmailID        = "email"
	PasswordID     = "password"
	ErrorIDSuffix  = "Error"
	SubmitSelector = ".harmony-button"
	FieldSelector  = ".organic-field"

	ErrorClass   = "error"
	ShowClass    = "show"
	LoadingClass = "loading"

	// PlaceholderValue is set on the email input so CSS can float the label
	// using :placeholder-shown.
	PlaceholderValue = " "
)

// Submission defaults.
const (
	SuccessPath    = "/home/index.html"
	RedirectDelay  = 1800 * time.Millisecond
	SuccessMessage = "Email submitted successfully!"
)

// Field names with inline error slots.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

// FieldError mirrors the inline error display of one field.
type FieldError struct {
	Field   string
	Active  bool
	Message string
}

// Controller binds the login form, validates its fields and performs the
// simulated submission. Handlers are serialised, matching a single threaded
// event loop even when the host delivers events from several goroutines.
type Controller struct {
	mu sync.Mutex

	id     string
	doc    dom.Document
	win    dom.Window
	form   dom.Element
	email  dom.Element
	submit dom.Element

	mode           SubmitMode
	check          validation.PasswordCheck
	scheduler      Scheduler
	delay          time.Duration
	successPath    string
	successMessage string
	logger         Logger

	errors  map[string]FieldError
	phase   Phase
	pending Timer
	closed  bool
}

// New locates the form elements, prepares the email input and attaches the
// event listeners. It fails when any of the bound elements is absent.
func New(doc dom.Document, win dom.Window, options ...Option) (*Controller, error) {
	if doc == nil || win == nil {
		return nil, ErrNilDocument
	}

	c := &Controller{
		id:             uuid.NewString(),
		doc:            doc,
		win:            win,
		mode:           SubmitModePasswordGate,
		check:          validation.DemoPasswordCheck,
		scheduler:      RealScheduler(),
		delay:          RedirectDelay,
		successPath:    SuccessPath,
		successMessage: SuccessMessage,
		logger:         nopLogger{},
		errors:         make(map[string]FieldError),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	c.form = doc.GetElementByID(FormID)
	if c.form == nil {
		return nil, fmt.Errorf("%w: #%s", ErrMissingElement, FormID)
	}
	c.email = doc.GetElementByID(EmailID)
	if c.email == nil {
		return nil, fmt.Errorf("%w: #%s", ErrMissingElement, EmailID)
	}
	c.submit = c.form.QuerySelector(SubmitSelector)
	if c.submit == nil {
		return nil, fmt.Errorf("%w: #%s %s", ErrMissingElement, FormID, SubmitSelector)
	}

	c.bindEvents()
	c.logger.Debug("login form bound", "controller", c.id, "mode", c.mode)
	return c, nil
}

func (c *Controller) bindEvents() {
	c.form.AddEventListener(dom.EventSubmit, func(evt dom.Event) {
		c.HandleSubmit(evt)
	})
	c.email.AddEventListener(dom.EventBlur, func(dom.Event) {
		if c.isClosed() {
			return
		}
		c.ValidateEmail()
	})
	c.email.AddEventListener(dom.EventInput, func(dom.Event) {
		if c.isClosed() {
			return
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		c.clearErrorLocked(FieldEmail)
		if c.phase == PhaseRejected {
			c.phase = PhaseIdle
		}
	})

	c.email.SetAttribute("placeholder", PlaceholderValue)
}

// ID identifies this controller instance in logs.
func (c *Controller) ID() string { return c.id }

// Mode returns the configured submit mode.
func (c *Controller) Mode() SubmitMode { return c.mode }

// Phase reports the state of the current submit attempt.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Errors returns a copy of the per-field error state.
func (c *Controller) Errors() map[string]FieldError {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]FieldError, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// Error returns the error state of field. Fields that never showed an error
// report an inactive zero value.
func (c *Controller) Error(field string) FieldError {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fe, ok := c.errors[field]; ok {
		return fe
	}
	return FieldError{Field: field}
}

// ValidateEmail checks the trimmed email value, updating the inline error.
func (c *Controller) ValidateEmail() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateEmailLocked()
}

// ValidatePassword checks the password value, updating the inline error. A
// page without a password input is treated as an empty password.
func (c *Controller) ValidatePassword() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validatePasswordLocked()
}

// ShowError marks field as errored and displays message.
func (c *Controller) ShowError(field, message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.showErrorLocked(field, message)
}

// ClearError removes the error marker and message of field.
func (c *Controller) ClearError(field string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clearErrorLocked(field)
}

// HandleSubmit runs the submit flow for the configured mode. The event
// default is always prevented.
func (c *Controller) HandleSubmit(evt dom.Event) {
	if evt != nil {
		evt.PreventDefault()
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.pending != nil {
		// redirect already scheduled
		c.mu.Unlock()
		return
	}

	c.phase = PhaseValidating
	switch c.mode {
	case SubmitModeEmailGate:
		if !c.validateEmailLocked() {
			c.reject()
			return
		}
		c.phase = PhaseAcknowledged
		message := c.successMessage
		c.logger.Debug("submission acknowledged", "controller", c.id)
		c.mu.Unlock()
		c.win.Alert(message)

	default:
		if !c.validatePasswordLocked() {
			c.reject()
			return
		}
		c.submit.ClassList().Add(LoadingClass)
		c.submit.SetDisabled(true)
		c.phase = PhaseSubmitting
		c.pending = c.scheduler.AfterFunc(c.delay, c.redirect)
		c.logger.Debug("redirect scheduled", "controller", c.id, "delay", c.delay, "path", c.successPath)
		c.mu.Unlock()
	}
}

// Close cancels a pending redirect and detaches the handlers from further
// events. It is safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.pending != nil {
		if c.pending.Stop() {
			c.logger.Debug("pending redirect cancelled", "controller", c.id)
		}
		c.pending = nil
	}
}

// reject must be called with c.mu held; it releases the lock.
func (c *Controller) reject() {
	c.phase = PhaseRejected
	c.logger.Debug("submission rejected", "controller", c.id, "mode", c.mode)
	c.mu.Unlock()
}

func (c *Controller) redirect() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	c.phase = PhaseRedirecting
	target := c.successPath
	c.mu.Unlock()

	c.win.Navigate(target)
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Controller) validateEmailLocked() bool {
	res := validation.Email(c.email.Value())
	return c.apply(FieldEmail, res)
}

func (c *Controller) validatePasswordLocked() bool {
	value := ""
	if input := c.doc.GetElementByID(PasswordID); input != nil {
		value = input.Value()
	}
	res := validation.Password(value, c.check)
	return c.apply(FieldPassword, res)
}

func (c *Controller) apply(field string, res validation.Result) bool {
	var err error
	if res.Valid {
		err = c.clearErrorLocked(field)
	} else {
		err = c.showErrorLocked(field, res.Message)
	}
	if err != nil {
		c.logger.Warn("field error display unavailable", "controller", c.id, "field", field, "err", err)
	}
	c.logger.Debug("field validated", "controller", c.id, "field", field, "valid", res.Valid)
	return res.Valid
}

func (c *Controller) showErrorLocked(field, message string) error {
	c.errors[field] = FieldError{Field: field, Active: true, Message: message}

	container, errorEl, err := c.errorSlots(field)
	if err != nil {
		return err
	}
	container.ClassList().Add(ErrorClass)
	errorEl.SetTextContent(message)
	errorEl.ClassList().Add(ShowClass)
	return nil
}

func (c *Controller) clearErrorLocked(field string) error {
	c.errors[field] = FieldError{Field: field}

	container, errorEl, err := c.errorSlots(field)
	if err != nil {
		return err
	}
	container.ClassList().Remove(ErrorClass)
	errorEl.ClassList().Remove(ShowClass)
	errorEl.SetTextContent("")
	return nil
}

func (c *Controller) errorSlots(field string) (dom.Element, dom.Element, error) {
	input := c.doc.GetElementByID(field)
	if input == nil {
		return nil, nil, fmt.Errorf("%w: #%s", ErrUnknownField, field)
	}
	container := input.Closest(FieldSelector)
	if container == nil {
		return nil, nil, fmt.Errorf("%w: #%s has no %s container", ErrUnknownField, field, FieldSelector)
	}
	errorEl := c.doc.GetElementByID(field + ErrorIDSuffix)
	if errorEl == nil {
		return nil, nil, fmt.Errorf("%w: #%s%s", ErrUnknownField, field, ErrorIDSuffix)
	}
	return container, errorEl, nil
}

type nopLogger struct{}

func (nopLogger) Debug(interface{}, ...interface{}) {}
func (nopLogger) Warn(interface{}, ...interface{})  {}
