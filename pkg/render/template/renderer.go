// Package template declares the template engine seam HTML renderers rely on.
package template

import "io"

// TemplateRenderer mirrors the github.com/goliatone/go-template engine
// contract so renderers stay decoupled from the concrete engine.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
