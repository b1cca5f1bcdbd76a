package htmlpreview

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle for consumers that want
// to serve or override the default preview layout.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
