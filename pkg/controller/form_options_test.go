package controller_test

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-loginform/pkg/controller"
	"github.com/goliatone/go-loginform/pkg/testsupport"
	"github.com/goliatone/go-loginform/pkg/validation"
)

func formWithAttributes(withPassword bool, attrs string) string {
	return strings.Replace(testsupport.LoginMarkup(withPassword), `<form id="loginForm"`, `<form id="loginForm" `+attrs, 1)
}

func TestFormOptions_RedirectFromAttributes(t *testing.T) {
	doc := testsupport.LoadDocument(t, formWithAttributes(true,
		`data-submit-mode="password" data-success-path="/welcome" data-redirect-delay="5s"`))
	form := testsupport.MustElement(t, doc, controller.FormID)

	sched := &testsupport.ManualScheduler{}
	opts := append(controller.FormOptions(form), controller.WithScheduler(sched))
	ctrl, err := controller.New(doc, doc, opts...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	defer ctrl.Close()

	testsupport.MustElement(t, doc, controller.EmailID).Type("user@example.com")
	testsupport.MustElement(t, doc, controller.PasswordID).Type(validation.DemoPassword)
	form.Submit()

	sched.Advance(controller.RedirectDelay)
	if len(doc.Navigations()) != 0 {
		t.Fatalf("redirected before the configured delay: %v", doc.Navigations())
	}
	sched.Advance(5*time.Second - controller.RedirectDelay)
	testsupport.AssertStrings(t, "navigations", []string{"/welcome"}, doc.Navigations())
}

func TestFormOptions_SuccessMessageFromAttributes(t *testing.T) {
	doc := testsupport.LoadDocument(t, formWithAttributes(false,
		`data-submit-mode="emailGate" data-success-message="Thanks!"`))
	form := testsupport.MustElement(t, doc, controller.FormID)

	ctrl, err := controller.New(doc, doc, controller.FormOptions(form)...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	defer ctrl.Close()

	testsupport.MustElement(t, doc, controller.EmailID).Type("user@example.com")
	form.Submit()
	testsupport.AssertStrings(t, "alerts", []string{"Thanks!"}, doc.Alerts())
}

func TestFormOptions_InvalidValuesKeepDefaults(t *testing.T) {
	doc := testsupport.LoadDocument(t, formWithAttributes(true,
		`data-submit-mode="magic" data-redirect-delay="soon"`))
	form := testsupport.MustElement(t, doc, controller.FormID)

	if got := len(controller.FormOptions(form)); got != 0 {
		t.Fatalf("expected no options from invalid attributes, got %d", got)
	}
	if controller.FormOptions(nil) != nil {
		t.Fatalf("expected nil options for a missing form")
	}
}
