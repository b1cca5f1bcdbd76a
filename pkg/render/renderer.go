// Package render defines the renderer seam: concrete renderers live under
// pkg/renderers and register themselves in a Registry keyed by name.
package render

import (
	"context"

	"github.com/formscribe/go-formscribe/pkg/form"
)

// Renderer converts a normalized form definition into a byte representation
// (HTML preview, plain text summary, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, definition form.FormDefinition, options Options) ([]byte, error)
}
