// Package creator defines the outbound seam for materializing a normalized
// form definition in an external forms service. The pipeline only depends on
// this interface; concrete backends (Google Forms, a staging recorder) plug
// in behind it.
package creator

import (
	"context"

	"github.com/formscribe/go-formscribe/pkg/form"
)

// CreatedForm describes a materialized form.
type CreatedForm struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	EditURL string `json:"edit_url,omitempty"`
}

// Creator materializes a form definition in a backing service.
type Creator interface {
	Create(ctx context.Context, definition form.FormDefinition) (CreatedForm, error)
}
