package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/formscribe/go-formscribe/pkg/form"
)

// Options carry per-request data renderers can use to customise their output
// without touching the definition itself.
type Options struct {
	// Theme selects colors and design tokens for visual renderers. Nil means
	// the renderer's built-in defaults.
	Theme *theme.RendererConfig
	// Warnings are the normalizer's repair notes; renderers may surface them
	// so a reviewer sees what was downgraded or dropped.
	Warnings []form.Warning
}
