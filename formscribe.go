// Package formscribe turns exam documents and scripts into normalized form
// definitions: model responses are repaired and decoded, Apps Script sources
// are scanned and extracted, and the result can be previewed or materialized
// in a forms backend.
package formscribe

import (
	"context"
	"io/fs"

	"github.com/formscribe/go-formscribe/pkg/form"
	"github.com/formscribe/go-formscribe/pkg/parse"
	"github.com/formscribe/go-formscribe/pkg/pipeline"
	"github.com/formscribe/go-formscribe/pkg/render"
	"github.com/formscribe/go-formscribe/pkg/renderers/htmlpreview"
)

// FormDefinition aliases the canonical form structure exported via the root
// package for convenience.
type FormDefinition = form.FormDefinition

// Question is a single normalized form question.
type Question = form.Question

// Result is a parsed definition plus the normalizer's warnings.
type Result = parse.Result

// Options carries per-request renderer configuration.
type Options = render.Options

// NewPipeline exposes the pipeline constructor from the top-level module.
func NewPipeline(options ...pipeline.Option) *pipeline.Pipeline {
	return pipeline.New(options...)
}

// ParseScript parses user-supplied input, accepting both JSON documents and
// Google Apps Script sources. It is the simplest entry point for callers
// that already have the script text.
func ParseScript(ctx context.Context, src string) (Result, error) {
	return parse.ParseScript(ctx, src)
}

// ParseResponse repairs and parses a model response into a definition.
func ParseResponse(ctx context.Context, raw string) (Result, error) {
	return parse.ParseResponse(ctx, raw)
}

// EmbeddedTemplates exposes the built-in HTML preview templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return htmlpreview.TemplatesFS()
}
