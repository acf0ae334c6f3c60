package controller_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-loginform/pkg/controller"
	"github.com/goliatone/go-loginform/pkg/dom/htmldom"
	"github.com/goliatone/go-loginform/pkg/testsupport"
	"github.com/goliatone/go-loginform/pkg/validation"
)

type fixture struct {
	doc       *htmldom.Document
	ctrl      *controller.Controller
	scheduler *testsupport.ManualScheduler
	form      *htmldom.Element
	email     *htmldom.Element
	submit    *htmldom.Element
}

func newFixture(t *testing.T, withPassword bool, opts ...controller.Option) *fixture {
	t.Helper()

	doc := testsupport.LoadDocument(t, testsupport.LoginMarkup(withPassword))
	scheduler := &testsupport.ManualScheduler{}
	opts = append([]controller.Option{controller.WithScheduler(scheduler)}, opts...)

	ctrl, err := controller.New(doc, doc, opts...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	t.Cleanup(ctrl.Close)

	return &fixture{
		doc:       doc,
		ctrl:      ctrl,
		scheduler: scheduler,
		form:      testsupport.MustElement(t, doc, controller.FormID),
		email:     testsupport.MustElement(t, doc, controller.EmailID),
		submit:    doc.QuerySelector(controller.SubmitSelector),
	}
}

func (f *fixture) fieldContainer(t *testing.T, id string) *htmldom.Element {
	t.Helper()
	el := testsupport.MustElement(t, f.doc, id).Closest(controller.FieldSelector)
	if el == nil {
		t.Fatalf("no container for #%s", id)
	}
	return el.(*htmldom.Element)
}

func assertFieldError(t *testing.T, f *fixture, field, message string) {
	t.Helper()

	container := f.fieldContainer(t, field)
	errorEl := testsupport.MustElement(t, f.doc, field+controller.ErrorIDSuffix)
	active := message != ""

	if got := container.HasClass(controller.ErrorClass); got != active {
		t.Fatalf("%s container error class = %v, want %v", field, got, active)
	}
	if got := errorEl.HasClass(controller.ShowClass); got != active {
		t.Fatalf("%s error element show class = %v, want %v", field, got, active)
	}
	if got := errorEl.TextContent(); got != message {
		t.Fatalf("%s error text = %q, want %q", field, got, message)
	}

	want := controller.FieldError{Field: field, Active: active, Message: message}
	if diff := cmp.Diff(want, f.ctrl.Error(field)); diff != "" {
		t.Fatalf("%s field error state mismatch (-want +got):\n%s", field, diff)
	}
}

func TestNew_SetsPlaceholderAndDefaults(t *testing.T) {
	f := newFixture(t, true)

	if got, ok := f.email.Attribute("placeholder"); !ok || got != controller.PlaceholderValue {
		t.Fatalf("placeholder = %q (present %v), want %q", got, ok, controller.PlaceholderValue)
	}
	if f.ctrl.Mode() != controller.SubmitModePasswordGate {
		t.Fatalf("default mode = %s", f.ctrl.Mode())
	}
	if f.ctrl.Phase() != controller.PhaseIdle {
		t.Fatalf("initial phase = %s", f.ctrl.Phase())
	}
	if f.ctrl.ID() == "" {
		t.Fatalf("expected controller id")
	}
}

func TestNew_MissingElements(t *testing.T) {
	cases := map[string]string{
		"form":   `<div><input id="email"><button class="harmony-button"></button></div>`,
		"email":  `<form id="loginForm"><button class="harmony-button"></button></form>`,
		"submit": `<form id="loginForm"><input id="email"><button class="other"></button></form>`,
	}
	for name, markup := range cases {
		t.Run(name, func(t *testing.T) {
			doc := testsupport.LoadDocument(t, markup)
			_, err := controller.New(doc, doc)
			if !errors.Is(err, controller.ErrMissingElement) {
				t.Fatalf("expected ErrMissingElement, got %v", err)
			}
		})
	}

	if _, err := controller.New(nil, nil); !errors.Is(err, controller.ErrNilDocument) {
		t.Fatalf("expected ErrNilDocument, got %v", err)
	}
}

func TestValidateEmail_Messages(t *testing.T) {
	f := newFixture(t, false)

	f.email.SetValue("")
	if f.ctrl.ValidateEmail() {
		t.Fatalf("empty email accepted")
	}
	assertFieldError(t, f, controller.FieldEmail, validation.MessageEmailRequired)

	f.email.SetValue("not-an-email")
	if f.ctrl.ValidateEmail() {
		t.Fatalf("malformed email accepted")
	}
	assertFieldError(t, f, controller.FieldEmail, validation.MessageEmailInvalid)

	f.email.SetValue("  user@example.com ")
	if !f.ctrl.ValidateEmail() {
		t.Fatalf("valid email rejected")
	}
	assertFieldError(t, f, controller.FieldEmail, "")
}

func TestEmailBlurValidatesAndInputClears(t *testing.T) {
	f := newFixture(t, false)

	f.email.SetValue("user@")
	f.email.Blur()
	assertFieldError(t, f, controller.FieldEmail, validation.MessageEmailInvalid)

	// typing clears eagerly without re-validating
	f.email.Type("user@x")
	assertFieldError(t, f, controller.FieldEmail, "")

	f.email.Blur()
	assertFieldError(t, f, controller.FieldEmail, validation.MessageEmailInvalid)

	f.email.Type("user@example.com")
	f.email.Blur()
	assertFieldError(t, f, controller.FieldEmail, "")
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		value   string
		valid   bool
		message string
	}{
		{value: "", message: "Please enter your password."},
		{value: "abc", message: "Password must be at least 6 characters long."},
		{value: "wrongpass", message: "Incorrect password"},
		{value: "correctpassword", valid: true},
	}

	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			f := newFixture(t, true)
			testsupport.MustElement(t, f.doc, controller.PasswordID).SetValue(tc.value)

			if got := f.ctrl.ValidatePassword(); got != tc.valid {
				t.Fatalf("ValidatePassword(%q) = %v, want %v", tc.value, got, tc.valid)
			}
			assertFieldError(t, f, controller.FieldPassword, tc.message)
		})
	}
}

func TestValidatePassword_MissingFieldTreatedAsEmpty(t *testing.T) {
	f := newFixture(t, false)

	if f.ctrl.ValidatePassword() {
		t.Fatalf("missing password field accepted")
	}
	got := f.ctrl.Error(controller.FieldPassword)
	if !got.Active || got.Message != validation.MessagePasswordRequired {
		t.Fatalf("unexpected password error state: %+v", got)
	}
}

func TestShowErrorReplacesAndClearErrorResets(t *testing.T) {
	f := newFixture(t, true)

	if err := f.ctrl.ShowError(controller.FieldPassword, "first"); err != nil {
		t.Fatalf("show error: %v", err)
	}
	if err := f.ctrl.ShowError(controller.FieldPassword, "second"); err != nil {
		t.Fatalf("show error: %v", err)
	}
	assertFieldError(t, f, controller.FieldPassword, "second")

	if err := f.ctrl.ClearError(controller.FieldPassword); err != nil {
		t.Fatalf("clear error: %v", err)
	}
	assertFieldError(t, f, controller.FieldPassword, "")

	if err := f.ctrl.ShowError("username", "nope"); !errors.Is(err, controller.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestPasswordGate_RedirectsAfterDelay(t *testing.T) {
	f := newFixture(t, true)
	testsupport.MustElement(t, f.doc, controller.PasswordID).SetValue("correctpassword")

	evt := f.form.Submit()
	if !evt.DefaultPrevented() {
		t.Fatalf("submit default not prevented")
	}
	if !f.submit.HasClass(controller.LoadingClass) || !f.submit.Disabled() {
		t.Fatalf("submit control not in loading state: %s", f.doc.String())
	}
	if f.ctrl.Phase() != controller.PhaseSubmitting {
		t.Fatalf("phase = %s, want submitting", f.ctrl.Phase())
	}

	f.scheduler.Advance(controller.RedirectDelay - time.Millisecond)
	if loc := f.doc.Location(); loc != "" {
		t.Fatalf("navigated early to %q", loc)
	}

	f.scheduler.Advance(time.Millisecond)
	if loc := f.doc.Location(); loc != "/home/index.html" {
		t.Fatalf("location = %q, want /home/index.html", loc)
	}
	if f.ctrl.Phase() != controller.PhaseRedirecting {
		t.Fatalf("phase = %s, want redirecting", f.ctrl.Phase())
	}
	if len(f.doc.Alerts()) != 0 {
		t.Fatalf("unexpected alerts: %v", f.doc.Alerts())
	}
}

func TestPasswordGate_IgnoresEmailAndRejectsBadPassword(t *testing.T) {
	f := newFixture(t, true)
	f.email.SetValue("not-an-email")
	testsupport.MustElement(t, f.doc, controller.PasswordID).SetValue("wrongpass")

	evt := f.form.Submit()
	if !evt.DefaultPrevented() {
		t.Fatalf("submit default not prevented")
	}
	assertFieldError(t, f, controller.FieldPassword, validation.MessagePasswordIncorrect)
	assertFieldError(t, f, controller.FieldEmail, "")
	if f.submit.Disabled() || f.submit.HasClass(controller.LoadingClass) {
		t.Fatalf("submit control changed on rejection")
	}
	if f.scheduler.Pending() != 0 {
		t.Fatalf("redirect scheduled on rejection: %s", f.scheduler)
	}
	if f.ctrl.Phase() != controller.PhaseRejected {
		t.Fatalf("phase = %s, want rejected", f.ctrl.Phase())
	}

	f.email.Type("u")
	if f.ctrl.Phase() != controller.PhaseIdle {
		t.Fatalf("phase after input = %s, want idle", f.ctrl.Phase())
	}
}

func TestPasswordGate_SecondSubmitDoesNotScheduleTwice(t *testing.T) {
	f := newFixture(t, true)
	testsupport.MustElement(t, f.doc, controller.PasswordID).SetValue("correctpassword")

	f.form.Submit()
	f.form.Submit()
	if got := f.scheduler.Pending(); got != 1 {
		t.Fatalf("pending timers = %d, want 1", got)
	}

	f.scheduler.Advance(controller.RedirectDelay)
	testsupport.AssertStrings(t, "navigations", []string{"/home/index.html"}, f.doc.Navigations())
}

func TestClose_CancelsPendingRedirect(t *testing.T) {
	f := newFixture(t, true)
	testsupport.MustElement(t, f.doc, controller.PasswordID).SetValue("correctpassword")

	f.form.Submit()
	f.ctrl.Close()
	f.scheduler.Advance(time.Hour)

	if loc := f.doc.Location(); loc != "" {
		t.Fatalf("navigated after close to %q", loc)
	}

	// closed controllers still suppress the native submit
	if evt := f.form.Submit(); !evt.DefaultPrevented() {
		t.Fatalf("submit default not prevented after close")
	}
}

func TestEmailGate_AlertsOnValidEmail(t *testing.T) {
	f := newFixture(t, false, controller.WithSubmitMode(controller.SubmitModeEmailGate))
	f.email.SetValue("user@example.com")

	evt := f.form.Submit()
	if !evt.DefaultPrevented() {
		t.Fatalf("submit default not prevented")
	}
	testsupport.AssertStrings(t, "alerts", []string{"Email submitted successfully!"}, f.doc.Alerts())
	if f.submit.Disabled() || f.submit.HasClass(controller.LoadingClass) {
		t.Fatalf("email gate must not show a loading state")
	}
	if f.doc.Location() != "" || f.scheduler.Pending() != 0 {
		t.Fatalf("email gate must not navigate")
	}
	if f.ctrl.Phase() != controller.PhaseAcknowledged {
		t.Fatalf("phase = %s, want acknowledged", f.ctrl.Phase())
	}
}

func TestEmailGate_InvalidEmailShowsErrorWithoutAlert(t *testing.T) {
	f := newFixture(t, false, controller.WithSubmitMode(controller.SubmitModeEmailGate))
	f.email.SetValue("user@example")

	f.form.Submit()
	assertFieldError(t, f, controller.FieldEmail, validation.MessageEmailInvalid)
	if alerts := f.doc.Alerts(); len(alerts) != 0 {
		t.Fatalf("unexpected alerts: %v", alerts)
	}
	if f.ctrl.Phase() != controller.PhaseRejected {
		t.Fatalf("phase = %s, want rejected", f.ctrl.Phase())
	}
}

func TestOptions_OverrideSubmission(t *testing.T) {
	f := newFixture(t, true,
		controller.WithPasswordCheck(func(p string) bool { return p == "opensesame" }),
		controller.WithRedirectDelay(50*time.Millisecond),
		controller.WithSuccessPath("/welcome"),
	)
	testsupport.MustElement(t, f.doc, controller.PasswordID).SetValue("opensesame")

	f.form.Submit()
	f.scheduler.Advance(50 * time.Millisecond)
	if loc := f.doc.Location(); loc != "/welcome" {
		t.Fatalf("location = %q, want /welcome", loc)
	}
}

func TestRealScheduler_Redirects(t *testing.T) {
	doc := testsupport.LoadDocument(t, testsupport.LoginMarkup(true))
	ctrl, err := controller.New(doc, doc, controller.WithRedirectDelay(time.Millisecond))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	defer ctrl.Close()

	navigated := make(chan string, 1)
	doc.OnNavigate(func(href string) { navigated <- href })

	testsupport.MustElement(t, doc, controller.PasswordID).SetValue("correctpassword")
	testsupport.MustElement(t, doc, controller.FormID).Submit()

	select {
	case href := <-navigated:
		if href != controller.SuccessPath {
			t.Fatalf("navigated to %q", href)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("redirect never fired")
	}
}

func TestParseSubmitMode(t *testing.T) {
	cases := map[string]controller.SubmitMode{
		"passwordGate":   controller.SubmitModePasswordGate,
		"password-gate":  controller.SubmitModePasswordGate,
		"PASSWORD":       controller.SubmitModePasswordGate,
		"emailGate":      controller.SubmitModeEmailGate,
		"email_gate":     controller.SubmitModeEmailGate,
		" email ":        controller.SubmitModeEmailGate,
	}
	for raw, want := range cases {
		got, err := controller.ParseSubmitMode(raw)
		if err != nil || got != want {
			t.Fatalf("ParseSubmitMode(%q) = %q, %v; want %q", raw, got, err, want)
		}
	}
	if _, err := controller.ParseSubmitMode("redirect"); !errors.Is(err, controller.ErrUnknownSubmitMode) {
		t.Fatalf("expected ErrUnknownSubmitMode, got %v", err)
	}
}
