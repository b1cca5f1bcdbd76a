// Package openaicompat adapts any OpenAI-compatible chat completion endpoint
// (OpenAI itself, or self-hosted gateways speaking the same wire protocol) to
// the llm.Generator seam.
package openaicompat

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/formscribe/go-formscribe/pkg/llm"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// Config carries the endpoint settings. BaseURL is optional; leaving it empty
// targets the official OpenAI API.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Generator sends prompts as single-turn chat completions.
type Generator struct {
	client openai.Client
	model  string
}

var _ llm.Generator = (*Generator)(nil)

// New builds a Generator from cfg.
func New(cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openaicompat: API key is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Generator{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Generate sends the prompt as a single user message and returns the first
// choice's content.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openaicompat: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openaicompat: response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
