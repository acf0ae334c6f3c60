package page

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-loginform/pkg/controller"
	rendertemplate "github.com/goliatone/go-loginform/pkg/render/template"
	"github.com/goliatone/go-loginform/pkg/render/template/gotemplate"
)

const (
	DefaultTitle         = "Sign in"
	DefaultHeading       = "Welcome back"
	DefaultSubheading    = "Sign in to continue growing"
	DefaultSubmitLabel   = "Sign in"
	DefaultStylesheetURL = "/assets/loginform.css"
	DefaultWasmURL       = "/wasm/loginform.wasm"
	DefaultWasmExecURL   = "/wasm/wasm_exec.js"
	DefaultHomeHeading   = "You're in"
	DefaultHomeMessage   = "Your session has started."
)

type Option func(*config)

type config struct {
	title         string
	heading       string
	subheading    string
	submitLabel   string
	mode          controller.SubmitMode
	successPath   string
	redirectDelay time.Duration
	successMsg    string
	stylesheetURL string
	wasmURL       string
	wasmExecURL   string
	icon          string
	manifest      *theme.Manifest
	selector      theme.ThemeSelector
	themeName     string
	themeVariant  string
	templatesDir  string
	templatesFS   fs.FS
	templates     rendertemplate.TemplateRenderer
}

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if title = strings.TrimSpace(title); title != "" {
			cfg.title = title
		}
	}
}

// WithHeading sets the card heading.
func WithHeading(heading string) Option {
	return func(cfg *config) {
		if heading = strings.TrimSpace(heading); heading != "" {
			cfg.heading = heading
		}
	}
}

// WithSubheading sets the line under the heading. An empty value hides it.
func WithSubheading(text string) Option {
	return func(cfg *config) {
		cfg.subheading = strings.TrimSpace(text)
	}
}

func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if label = strings.TrimSpace(label); label != "" {
			cfg.submitLabel = label
		}
	}
}

// WithSubmitMode controls the data-submit-mode attribute and whether the
// password field is rendered.
func WithSubmitMode(mode controller.SubmitMode) Option {
	return func(cfg *config) {
		if mode.Valid() {
			cfg.mode = mode
		}
	}
}

func WithSuccessPath(path string) Option {
	return func(cfg *config) {
		if path = strings.TrimSpace(path); path != "" {
			cfg.successPath = path
		}
	}
}

// WithRedirectDelay sets the data-redirect-delay attribute the browser
// controller waits before redirecting. Negative values are ignored.
func WithRedirectDelay(d time.Duration) Option {
	return func(cfg *config) {
		if d >= 0 {
			cfg.redirectDelay = d
		}
	}
}

// WithSuccessMessage sets the data-success-message attribute shown by the
// email gate acknowledgment.
func WithSuccessMessage(message string) Option {
	return func(cfg *config) {
		if message = strings.TrimSpace(message); message != "" {
			cfg.successMsg = message
		}
	}
}

func WithStylesheetURL(url string) Option {
	return func(cfg *config) {
		if url = strings.TrimSpace(url); url != "" {
			cfg.stylesheetURL = url
		}
	}
}

// WithWasm sets the controller binary and its loader script. Passing an
// empty wasmURL renders the page without scripts.
func WithWasm(wasmURL, wasmExecURL string) Option {
	return func(cfg *config) {
		cfg.wasmURL = strings.TrimSpace(wasmURL)
		if exec := strings.TrimSpace(wasmExecURL); exec != "" {
			cfg.wasmExecURL = exec
		}
	}
}

// WithIcon replaces the default SVG mark. The markup is sanitised when the
// renderer is built.
func WithIcon(svg string) Option {
	return func(cfg *config) {
		cfg.icon = svg
	}
}

// WithThemeManifest applies a manifest directly, selecting variant when set.
func WithThemeManifest(manifest *theme.Manifest, variant string) Option {
	return func(cfg *config) {
		cfg.manifest = manifest
		cfg.themeVariant = strings.TrimSpace(variant)
	}
}

// WithThemeSelector resolves name and variant through a go-theme selector.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.selector = selector
		cfg.themeName = strings.TrimSpace(name)
		cfg.themeVariant = strings.TrimSpace(variant)
	}
}

// WithTemplatesDir loads templates from disk first, falling back to the
// embedded set for anything missing.
func WithTemplatesDir(dir string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(dir)
	}
}

// WithTemplatesFS replaces the embedded template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templatesFS = files
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templates = renderer
		}
	}
}

// Renderer produces the login and landing pages.
type Renderer struct {
	cfg       config
	theme     Theme
	icon      string
	templates rendertemplate.TemplateRenderer
}

// LoginData carries per-request values for the login page.
type LoginData struct {
	Email string
}

// New constructs a Renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		title:         DefaultTitle,
		heading:       DefaultHeading,
		subheading:    DefaultSubheading,
		submitLabel:   DefaultSubmitLabel,
		mode:          controller.SubmitModePasswordGate,
		successPath:   controller.SuccessPath,
		redirectDelay: controller.RedirectDelay,
		successMsg:    controller.SuccessMessage,
		stylesheetURL: DefaultStylesheetURL,
		wasmURL:       DefaultWasmURL,
		wasmExecURL:   DefaultWasmExecURL,
		icon:          DefaultIcon,
		templatesFS:   TemplatesFS(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	r := &Renderer{cfg: cfg, templates: cfg.templates}

	if strings.TrimSpace(cfg.icon) != "" {
		r.icon = SanitizeIcon(cfg.icon)
		if r.icon == "" {
			return nil, ErrInvalidIcon
		}
	}

	switch {
	case cfg.selector != nil:
		resolved, err := selectTheme(cfg.selector, cfg.themeName, cfg.themeVariant)
		if err != nil {
			return nil, err
		}
		r.theme = resolved
	case cfg.manifest != nil:
		r.theme = ResolveTheme(cfg.manifest, cfg.themeVariant)
	}

	if r.templates == nil {
		opts := []gotemplate.Option{gotemplate.WithFS(cfg.templatesFS)}
		if cfg.templatesDir != "" {
			opts = append(opts, gotemplate.WithBaseDir(cfg.templatesDir))
		}
		engine, err := gotemplate.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("page renderer: configure template renderer: %w", err)
		}
		r.templates = engine
	}
	return r, nil
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Mode reports the submit mode baked into rendered pages.
func (r *Renderer) Mode() controller.SubmitMode {
	if r == nil {
		return controller.SubmitModePasswordGate
	}
	return r.cfg.mode
}

// Theme returns the resolved theme, zero when none is configured.
func (r *Renderer) Theme() Theme {
	if r == nil {
		return Theme{}
	}
	return r.theme
}

// RenderLogin renders the login form page.
func (r *Renderer) RenderLogin(ctx context.Context, data LoginData) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, ErrNilRenderer
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	view := r.baseView()
	view["heading"] = r.cfg.heading
	view["subheading"] = r.cfg.subheading
	view["submit_label"] = r.cfg.submitLabel
	view["submit_mode"] = r.cfg.mode.String()
	view["success_path"] = r.cfg.successPath
	view["redirect_delay"] = r.cfg.redirectDelay.String()
	view["success_message"] = r.cfg.successMsg
	view["show_password"] = r.cfg.mode == controller.SubmitModePasswordGate
	view["email"] = strings.TrimSpace(data.Email)
	view["email_label"] = "Email address"
	view["password_label"] = "Password"
	view["wasm_url"] = r.cfg.wasmURL
	view["wasm_exec_url"] = r.cfg.wasmExecURL

	result, err := r.templates.RenderTemplate("login", view)
	if err != nil {
		return nil, fmt.Errorf("page renderer: render login: %w", err)
	}
	return []byte(result), nil
}

// RenderHome renders the page the password gate redirects to.
func (r *Renderer) RenderHome(ctx context.Context) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, ErrNilRenderer
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	view := r.baseView()
	view["home_heading"] = DefaultHomeHeading
	view["home_message"] = DefaultHomeMessage
	view["back_label"] = "Back to sign in"

	result, err := r.templates.RenderTemplate("home", view)
	if err != nil {
		return nil, fmt.Errorf("page renderer: render home: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) baseView() map[string]any {
	stylesheet := r.cfg.stylesheetURL
	if r.theme.Stylesheet != "" {
		stylesheet = r.theme.Stylesheet
	}
	return map[string]any{
		"title":          r.cfg.title,
		"stylesheet_url": stylesheet,
		"icon":           r.icon,
		"theme": map[string]any{
			"name":           r.theme.Name,
			"variant":        r.theme.Variant,
			"css_vars_style": r.theme.CSSVarsStyle,
		},
	}
}
