// Package gemini adapts the Google Gemini API to the llm.Generator seam.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/formscribe/go-formscribe/pkg/llm"
)

// DefaultModel is tried first; Fallbacks are tried in order when the primary
// model rejects a request, so a deprecated model name degrades gracefully
// instead of failing the whole generation.
const DefaultModel = "gemini-2.5-flash"

var defaultFallbacks = []string{
	"gemini-2.0-flash-exp",
	"gemini-1.5-flash",
	"gemini-1.5-pro",
	"gemini-pro",
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel overrides the primary model.
func WithModel(model string) Option {
	return func(g *Generator) {
		g.model = model
	}
}

// WithFallbacks replaces the fallback model list. Pass none to disable
// fallback entirely.
func WithFallbacks(models ...string) Option {
	return func(g *Generator) {
		g.fallbacks = models
	}
}

// Generator calls the Gemini API with a JSON response MIME type so the model
// is steered toward fenced-free output. It still routes responses through the
// repair pipeline; the MIME hint is best effort.
type Generator struct {
	client    *genai.Client
	model     string
	fallbacks []string
}

var _ llm.Generator = (*Generator)(nil)

// New builds a Generator. The API key is read from the GEMINI_API_KEY or
// GOOGLE_API_KEY environment variable by the underlying client.
func New(ctx context.Context, opts ...Option) (*Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	g := &Generator{
		client:    client,
		model:     DefaultModel,
		fallbacks: defaultFallbacks,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate sends the prompt to the primary model, walking the fallback list
// on failure. Context cancellation stops the walk immediately.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	models := append([]string{g.model}, g.fallbacks...)

	var errs []error
	for _, model := range models {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := g.generateWith(ctx, model, prompt)
		if err == nil {
			return text, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", model, err))
	}
	return "", fmt.Errorf("gemini: all models failed: %w", errors.Join(errs...))
}

func (g *Generator) generateWith(ctx context.Context, model, prompt string) (string, error) {
	contents := []*genai.Content{
		{Parts: []*genai.Part{{Text: prompt}}},
	}
	resp, err := g.client.Models.GenerateContent(ctx, model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			b.WriteString(part.Text)
		}
		break
	}
	if b.Len() == 0 {
		return "", errors.New("empty response")
	}
	return b.String(), nil
}
