package main

import (
	"fmt"

	"github.com/goliatone/go-loginform/internal/config"
	"github.com/goliatone/go-loginform/internal/logging"
	"github.com/goliatone/go-loginform/pkg/controller"
	"github.com/goliatone/go-loginform/pkg/page"
)

// pageOptions maps configuration onto renderer options. withWasm controls
// whether the loader script is emitted.
func pageOptions(c config.Config, withWasm bool) ([]page.Option, error) {
	opts := []page.Option{
		page.WithSubmitMode(c.Mode()),
		page.WithSuccessPath(c.SuccessPath),
		page.WithRedirectDelay(c.RedirectDelay),
		page.WithSuccessMessage(c.SuccessMessage),
		page.WithTitle(c.Page.Title),
		page.WithHeading(c.Page.Heading),
		page.WithTemplatesDir(c.Page.TemplatesDir),
	}
	if c.Page.Icon != "" {
		opts = append(opts, page.WithIcon(c.Page.Icon))
	}
	if !withWasm {
		opts = append(opts, page.WithWasm("", ""))
	}

	if c.Page.ThemeFile != "" {
		manifest, err := page.LoadManifestFile(c.Page.ThemeFile)
		if err != nil {
			return nil, err
		}
		if c.Page.Theme != "" && c.Page.Theme != manifest.Name {
			return nil, fmt.Errorf("%w: %s (manifest declares %s)", page.ErrThemeNotFound, c.Page.Theme, manifest.Name)
		}
		opts = append(opts, page.WithThemeManifest(manifest, c.Page.ThemeVariant))
	}
	return opts, nil
}

func buildRenderer(c config.Config, withWasm bool) (*page.Renderer, error) {
	opts, err := pageOptions(c, withWasm)
	if err != nil {
		return nil, err
	}
	return page.New(opts...)
}

func controllerOptions(c config.Config) []controller.Option {
	return []controller.Option{
		controller.WithSubmitMode(c.Mode()),
		controller.WithRedirectDelay(c.RedirectDelay),
		controller.WithSuccessPath(c.SuccessPath),
		controller.WithSuccessMessage(c.SuccessMessage),
		controller.WithLogger(logging.For("controller")),
	}
}
