// Package llm defines the generation collaborator seam: a Generator turns a
// prompt into raw model output, and the parse package turns that output into
// a form definition. Provider adapters live in the subpackages.
package llm

import "context"

// Generator produces raw model output for a prompt. Implementations return
// the text verbatim, including markdown fences or surrounding prose; cleanup
// is the response parser's job.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
