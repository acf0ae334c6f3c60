package page

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

//go:embed assets/*
var assetsFS embed.FS

// TemplatesFS exposes the built-in page templates rooted at the template
// directory, so "login.tpl" resolves directly.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return templatesFS
	}
	return sub
}

// AssetsFS exposes the stylesheet served under /assets/.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		return assetsFS
	}
	return sub
}
