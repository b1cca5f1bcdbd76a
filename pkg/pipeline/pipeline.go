// Package pipeline coordinates the full flow: document text in, generated
// and normalized form definition out, with optional rendering and creation.
// It applies sensible defaults (HTML preview renderer, no-op logger) while
// remaining open to dependency injection for advanced callers.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/formscribe/go-formscribe/pkg/creator"
	"github.com/formscribe/go-formscribe/pkg/form"
	"github.com/formscribe/go-formscribe/pkg/ingest"
	"github.com/formscribe/go-formscribe/pkg/llm"
	"github.com/formscribe/go-formscribe/pkg/parse"
	"github.com/formscribe/go-formscribe/pkg/render"
	appsscriptrenderer "github.com/formscribe/go-formscribe/pkg/renderers/appsscript"
	"github.com/formscribe/go-formscribe/pkg/renderers/htmlpreview"
)

const defaultRendererName = "html"

// Option customises the pipeline configuration.
type Option func(*Pipeline)

// WithGenerator injects the generation collaborator. Required for the
// Generate* methods; parsing and rendering work without one.
func WithGenerator(generator llm.Generator) Option {
	return func(p *Pipeline) {
		p.generator = generator
	}
}

// WithCreator injects the form creation backend used by Create.
func WithCreator(c creator.Creator) Option {
	return func(p *Pipeline) {
		p.creator = c
	}
}

// WithRegistry injects a renderer registry, replacing the built-in one.
func WithRegistry(registry *render.Registry) Option {
	return func(p *Pipeline) {
		p.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a call omits an
// explicit renderer name.
func WithDefaultRenderer(name string) Option {
	return func(p *Pipeline) {
		p.defaultRenderer = name
	}
}

// WithLogger injects a structured logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Pipeline wires the generator, parsers, renderer registry, and creator.
type Pipeline struct {
	generator       llm.Generator
	creator         creator.Creator
	registry        *render.Registry
	defaultRenderer string
	logger          *zap.Logger
	initialiseErr   error
}

// New constructs a Pipeline applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Pipeline {
	p := &Pipeline{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	p.applyDefaults()
	return p
}

func (p *Pipeline) applyDefaults() {
	if p.registry != nil {
		return
	}
	registry := render.NewRegistry()

	preview, err := htmlpreview.New()
	if err != nil {
		p.initialiseErr = fmt.Errorf("pipeline: initialise html renderer: %w", err)
		return
	}
	if err := registry.Register(preview); err != nil {
		p.initialiseErr = err
		return
	}
	if err := registry.Register(appsscriptrenderer.New()); err != nil {
		p.initialiseErr = err
		return
	}
	p.registry = registry
}

// GenerateFromText asks the generator for a form covering the document text
// and parses the response into a normalized definition.
func (p *Pipeline) GenerateFromText(ctx context.Context, text string) (parse.Result, error) {
	return p.generate(ctx, "", llm.BuildPrompt(text))
}

// GenerateFromFile extracts text from an uploaded document and generates a
// form from it. The filename picks the extraction strategy.
func (p *Pipeline) GenerateFromFile(ctx context.Context, filename string, content []byte) (parse.Result, error) {
	text, err := ingest.ExtractText(filename, content)
	if err != nil {
		return parse.Result{}, err
	}
	p.logger.Debug("document ingested",
		zap.String("filename", filename),
		zap.Int("bytes", len(content)),
		zap.Int("text_length", len(text)))
	return p.generate(ctx, filename, llm.BuildFilePrompt(filename, text))
}

func (p *Pipeline) generate(ctx context.Context, filename, prompt string) (parse.Result, error) {
	if err := p.initialiseErr; err != nil {
		return parse.Result{}, err
	}
	if p.generator == nil {
		return parse.Result{}, errors.New("pipeline: generator is not configured")
	}
	if err := ctx.Err(); err != nil {
		return parse.Result{}, err
	}

	raw, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		return parse.Result{}, fmt.Errorf("pipeline: generate: %w", err)
	}

	result, err := parse.ParseResponse(ctx, raw)
	if err != nil {
		if mre, ok := parse.AsMalformedResponse(err); ok {
			p.logger.Warn("model response defeated repair",
				zap.String("filename", filename),
				zap.String("preview", mre.Preview))
		}
		return parse.Result{}, err
	}

	p.logResult("generated", result)
	return result, nil
}

// ParseScript parses user-supplied script or JSON input without touching the
// generator.
func (p *Pipeline) ParseScript(ctx context.Context, src string) (parse.Result, error) {
	if err := p.initialiseErr; err != nil {
		return parse.Result{}, err
	}
	result, err := parse.ParseScript(ctx, src)
	if err != nil {
		return parse.Result{}, err
	}
	p.logResult("parsed", result)
	return result, nil
}

// Render runs the named renderer over a parse result, surfacing the
// normalizer's warnings to the renderer. An empty name picks the default.
// The second return value is the renderer's content type.
func (p *Pipeline) Render(ctx context.Context, result parse.Result, rendererName string, options render.Options) ([]byte, string, error) {
	if err := p.initialiseErr; err != nil {
		return nil, "", err
	}

	name := rendererName
	if name == "" {
		name = p.defaultRenderer
	}
	renderer, err := p.registry.Get(name)
	if err != nil {
		return nil, "", err
	}

	if len(options.Warnings) == 0 {
		options.Warnings = result.Warnings
	}
	out, err := renderer.Render(ctx, result.Definition, options)
	if err != nil {
		return nil, "", fmt.Errorf("pipeline: render %q: %w", name, err)
	}
	return out, renderer.ContentType(), nil
}

// Renderers lists the names the registry knows about.
func (p *Pipeline) Renderers() []string {
	if p.registry == nil {
		return nil
	}
	return p.registry.List()
}

// Create materializes the definition in the configured creation backend.
func (p *Pipeline) Create(ctx context.Context, definition form.FormDefinition) (creator.CreatedForm, error) {
	if p.creator == nil {
		return creator.CreatedForm{}, errors.New("pipeline: creator is not configured")
	}
	created, err := p.creator.Create(ctx, definition)
	if err != nil {
		return creator.CreatedForm{}, fmt.Errorf("pipeline: create form: %w", err)
	}
	p.logger.Info("form created",
		zap.String("id", created.ID),
		zap.String("url", created.URL))
	return created, nil
}

func (p *Pipeline) logResult(verb string, result parse.Result) {
	p.logger.Info("form definition "+verb,
		zap.String("source", string(result.Source)),
		zap.String("title", result.Definition.Title),
		zap.Int("questions", len(result.Definition.Flatten())),
		zap.Int("warnings", len(result.Warnings)))
}
