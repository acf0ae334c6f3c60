package server

import (
	"io/fs"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"

	"github.com/goliatone/go-loginform/pkg/controller"
	"github.com/goliatone/go-loginform/pkg/page"
)

type Options struct {
	Addr            string
	SuccessPath     string
	WasmDir         string
	Assets          fs.FS
	Renderer        *page.Renderer
	Logger          *clog.Logger
	ShutdownTimeout time.Duration
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		Addr:            ":8080",
		SuccessPath:     controller.SuccessPath,
		ShutdownTimeout: 5 * time.Second,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if strings.TrimSpace(opts.Addr) == "" {
		opts.Addr = ":8080"
	}
	if opts.SuccessPath = strings.TrimSpace(opts.SuccessPath); opts.SuccessPath == "" {
		opts.SuccessPath = controller.SuccessPath
	}
	if !strings.HasPrefix(opts.SuccessPath, "/") {
		opts.SuccessPath = "/" + opts.SuccessPath
	}
	if opts.Assets == nil {
		opts.Assets = page.AssetsFS()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	return opts
}

func WithAddr(addr string) OptionFn {
	return func(o *Options) {
		o.Addr = addr
	}
}

// WithSuccessPath mounts the landing page where the password gate redirects.
func WithSuccessPath(path string) OptionFn {
	return func(o *Options) {
		o.SuccessPath = path
	}
}

// WithWasmDir serves the compiled controller and wasm_exec.js under /wasm/.
func WithWasmDir(dir string) OptionFn {
	return func(o *Options) {
		o.WasmDir = strings.TrimSpace(dir)
	}
}

func WithAssets(files fs.FS) OptionFn {
	return func(o *Options) {
		o.Assets = files
	}
}

func WithRenderer(r *page.Renderer) OptionFn {
	return func(o *Options) {
		o.Renderer = r
	}
}

func WithLogger(l *clog.Logger) OptionFn {
	return func(o *Options) {
		o.Logger = l
	}
}

func WithShutdownTimeout(d time.Duration) OptionFn {
	return func(o *Options) {
		o.ShutdownTimeout = d
	}
}
