package template

import (
	"io"
)

// TemplateRenderer is the seam page renderers depend on. The pongo2 backed
// engine in the gotemplate package is the default implementation.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
