// Package loginform wires the login form controller, the in-memory DOM and
// the page renderer behind a small top-level API.
package loginform

import (
	"context"

	"github.com/goliatone/go-loginform/pkg/controller"
	"github.com/goliatone/go-loginform/pkg/dom/htmldom"
	"github.com/goliatone/go-loginform/pkg/page"
)

// SubmitMode aliases controller.SubmitMode for callers configuring the form
// from the root package.
type SubmitMode = controller.SubmitMode

const (
	SubmitModePasswordGate = controller.SubmitModePasswordGate
	SubmitModeEmailGate    = controller.SubmitModeEmailGate
)

// LoginData aliases page.LoginData.
type LoginData = page.LoginData

// RenderLoginPage renders the login page with the given page options.
func RenderLoginPage(ctx context.Context, data LoginData, options ...page.Option) ([]byte, error) {
	r, err := page.New(options...)
	if err != nil {
		return nil, err
	}
	return r.RenderLogin(ctx, data)
}

// Bind parses markup into an in-memory document and attaches a controller to
// it. The document doubles as the window, recording navigations and alerts.
func Bind(markup string, options ...controller.Option) (*htmldom.Document, *controller.Controller, error) {
	doc, err := htmldom.ParseString(markup)
	if err != nil {
		return nil, nil, err
	}
	ctrl, err := controller.New(doc, doc, options...)
	if err != nil {
		return nil, nil, err
	}
	return doc, ctrl, nil
}
