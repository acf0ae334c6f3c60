package terminal

import (
	"context"
	"fmt"
	"strings"

	clog "github.com/charmbracelet/log"

	"github.com/goliatone/go-loginform/internal/logging"
	"github.com/goliatone/go-loginform/pkg/controller"
	"github.com/goliatone/go-loginform/pkg/dom/htmldom"
	"github.com/goliatone/go-loginform/pkg/page"
)

const DefaultMaxAttempts = 3

type Option func(*Session)

func WithDriver(d PromptDriver) Option {
	return func(s *Session) {
		if d != nil {
			s.driver = d
		}
	}
}

func WithStyles(styles Styles) Option {
	return func(s *Session) {
		s.styles = styles
	}
}

// WithControllerOptions forwards options to the controller bound to the
// rendered page. The submit mode always follows the renderer.
func WithControllerOptions(opts ...controller.Option) Option {
	return func(s *Session) {
		s.controllerOpts = append(s.controllerOpts, opts...)
	}
}

// WithMaxAttempts bounds how many rejected submissions are retried.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

func WithLogger(l *clog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// Session fills in the login form from the terminal. The page is rendered
// into an in-memory document and driven through the same controller the
// browser runs.
type Session struct {
	renderer       *page.Renderer
	driver         PromptDriver
	styles         Styles
	controllerOpts []controller.Option
	maxAttempts    int
	log            *clog.Logger
}

// Outcome describes how a session ended.
type Outcome struct {
	Email    string
	Alert    string
	Location string
	Attempts int
}

func NewSession(renderer *page.Renderer, opts ...Option) (*Session, error) {
	if renderer == nil {
		return nil, ErrMissingRenderer
	}
	s := &Session{
		renderer:    renderer,
		styles:      DefaultStyles(),
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver()
	}
	if s.log == nil {
		s.log = logging.For("terminal")
	}
	return s, nil
}

// Run prompts until a submission is accepted, the attempt budget runs out or
// ctx is cancelled. In password gate mode it waits for the redirect.
func (s *Session) Run(ctx context.Context) (Outcome, error) {
	var outcome Outcome

	markup, err := s.renderer.RenderLogin(ctx, page.LoginData{})
	if err != nil {
		return outcome, err
	}
	doc, err := htmldom.ParseString(string(markup))
	if err != nil {
		return outcome, fmt.Errorf("terminal: parse page: %w", err)
	}

	navigated := make(chan string, 1)
	alerted := make(chan string, 1)
	doc.OnNavigate(func(href string) {
		select {
		case navigated <- href:
		default:
		}
	})
	doc.OnAlert(func(message string) {
		select {
		case alerted <- message:
		default:
		}
	})

	mode := s.renderer.Mode()
	opts := append([]controller.Option{
		controller.WithLogger(s.log),
	}, s.controllerOpts...)
	opts = append(opts, controller.WithSubmitMode(mode))

	ctrl, err := controller.New(doc, doc, opts...)
	if err != nil {
		return outcome, err
	}
	defer ctrl.Close()

	email := doc.ElementByID(controller.EmailID)
	password := doc.ElementByID(controller.PasswordID)
	form := doc.ElementByID(controller.FormID)

	for outcome.Attempts < s.maxAttempts {
		outcome.Attempts++

		value, err := s.driver.Input(ctx, InputConfig{
			Message: "Email address",
			Default: outcome.Email,
		})
		if err != nil {
			return outcome, err
		}
		outcome.Email = strings.TrimSpace(value)
		email.Type(value)
		email.Blur()
		if err := s.reportErrors(ctx, doc, controller.EmailID); err != nil {
			return outcome, err
		}

		if password != nil {
			secret, err := s.driver.Password(ctx, InputConfig{Message: "Password"})
			if err != nil {
				return outcome, err
			}
			password.Type(secret)
		}

		form.Submit()

		switch ctrl.Phase() {
		case controller.PhaseAcknowledged:
			select {
			case outcome.Alert = <-alerted:
			default:
			}
			return outcome, s.driver.Info(ctx, s.styles.Alert.Render(outcome.Alert))

		case controller.PhaseSubmitting, controller.PhaseRedirecting:
			if err := s.driver.Info(ctx, s.styles.Muted.Render("Signing in...")); err != nil {
				return outcome, err
			}
			select {
			case outcome.Location = <-navigated:
			case <-ctx.Done():
				return outcome, ctx.Err()
			}
			return outcome, s.driver.Info(ctx, s.styles.Success.Render("Redirected to "+outcome.Location))
		}

		if err := s.reportErrors(ctx, doc, controller.PasswordID); err != nil {
			return outcome, err
		}
		if outcome.Attempts >= s.maxAttempts {
			break
		}
		again, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
		if err != nil {
			return outcome, err
		}
		if !again {
			return outcome, ErrAborted
		}
	}
	return outcome, ErrTooManyAttempts
}

// reportErrors prints every visible inline error among ids, as the page
// would show them.
func (s *Session) reportErrors(ctx context.Context, doc *htmldom.Document, ids ...string) error {
	for _, id := range ids {
		slot := doc.ElementByID(id + controller.ErrorIDSuffix)
		if slot == nil || !slot.HasClass(controller.ShowClass) {
			continue
		}
		if err := s.driver.Info(ctx, s.styles.Error.Render("✗ "+slot.TextContent())); err != nil {
			return err
		}
	}
	return nil
}
