// Command formscribe turns exam documents, scripts, and OpenAPI schemas into
// normalized form definitions.
//
// Usage:
//
//	formscribe --text "describe the form"           # generate from a prompt
//	formscribe exam.pdf                             # generate from a document
//	formscribe --script form.js                     # parse an Apps Script
//	formscribe --openapi api.yaml --schema User     # derive from a schema
//
// The --format flag selects the output: canonical JSON (default), an HTML
// preview, or a Google Apps Script that recreates the form.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/formscribe/go-formscribe/internal/config"
	"github.com/formscribe/go-formscribe/pkg/form"
	"github.com/formscribe/go-formscribe/pkg/llm"
	"github.com/formscribe/go-formscribe/pkg/llm/gemini"
	"github.com/formscribe/go-formscribe/pkg/llm/openaicompat"
	"github.com/formscribe/go-formscribe/pkg/openapiform"
	"github.com/formscribe/go-formscribe/pkg/parse"
	"github.com/formscribe/go-formscribe/pkg/pipeline"
	"github.com/formscribe/go-formscribe/pkg/render"
)

func main() {
	// Local development keeps API keys in a .env file; absence is fine.
	_ = godotenv.Load()

	text := pflag.String("text", "", "Generate a form from this prompt text")
	script := pflag.String("script", "", "Parse a Google Apps Script or JSON file instead of generating")
	definitionPath := pflag.String("definition", "", "Load a hand-written YAML or JSON form definition")
	openapiPath := pflag.String("openapi", "", "Derive a form from an OpenAPI document")
	schemaName := pflag.String("schema", "", "Component schema name inside the OpenAPI document")

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	inputs := inputFlags{
		text:        *text,
		script:      *script,
		definition:  *definitionPath,
		openapiPath: *openapiPath,
		schemaName:  *schemaName,
		args:        pflag.Args(),
	}
	if err := run(ctx, cfg, logger, inputs); err != nil {
		logger.Error("formscribe failed", zap.Error(err))
		os.Exit(1)
	}
}

type inputFlags struct {
	text        string
	script      string
	definition  string
	openapiPath string
	schemaName  string
	args        []string
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, inputs inputFlags) error {
	p, err := buildPipeline(ctx, cfg, logger, inputs)
	if err != nil {
		return err
	}

	result, err := resolveDefinition(ctx, p, inputs)
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		logger.Warn("normalization repaired a question", zap.String("warning", warning.String()))
	}

	if cfg.Review {
		if err := reviewRequired(&result.Definition); err != nil {
			return err
		}
	}

	output, err := renderOutput(ctx, p, cfg, result)
	if err != nil {
		return err
	}

	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, output, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Info("output written", zap.String("path", cfg.Output))
		return nil
	}
	fmt.Println(string(output))
	return nil
}

// buildPipeline constructs the generator only when this invocation needs one,
// so parse-only runs work without API keys.
func buildPipeline(ctx context.Context, cfg *config.Config, logger *zap.Logger, inputs inputFlags) (*pipeline.Pipeline, error) {
	options := []pipeline.Option{pipeline.WithLogger(logger)}

	needsGenerator := inputs.text != "" || len(inputs.args) > 0
	if needsGenerator {
		generator, err := buildGenerator(ctx, cfg)
		if err != nil {
			return nil, err
		}
		options = append(options, pipeline.WithGenerator(generator))
	}
	return pipeline.New(options...), nil
}

func buildGenerator(ctx context.Context, cfg *config.Config) (llm.Generator, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openaicompat.New(openaicompat.Config{
			APIKey:  cfg.OpenAIAPIKey(),
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.Model,
		})
	default:
		var opts []gemini.Option
		if cfg.Model != "" {
			opts = append(opts, gemini.WithModel(cfg.Model))
		}
		return gemini.New(ctx, opts...)
	}
}

func resolveDefinition(ctx context.Context, p *pipeline.Pipeline, inputs inputFlags) (parse.Result, error) {
	switch {
	case inputs.script != "":
		payload, err := os.ReadFile(inputs.script)
		if err != nil {
			return parse.Result{}, fmt.Errorf("read script: %w", err)
		}
		return p.ParseScript(ctx, string(payload))

	case inputs.definition != "":
		payload, err := os.ReadFile(inputs.definition)
		if err != nil {
			return parse.Result{}, fmt.Errorf("read definition: %w", err)
		}
		definition, warnings, err := form.FromYAML(payload)
		if err != nil {
			return parse.Result{}, err
		}
		return parse.Result{Definition: definition, Warnings: warnings, Source: parse.SourceJSON}, nil

	case inputs.openapiPath != "":
		payload, err := os.ReadFile(inputs.openapiPath)
		if err != nil {
			return parse.Result{}, fmt.Errorf("read openapi document: %w", err)
		}
		definition, err := openapiform.FromDocument(ctx, payload, inputs.schemaName)
		if err != nil {
			return parse.Result{}, err
		}
		return parse.Result{Definition: definition, Source: parse.SourceJSON}, nil

	case inputs.text != "":
		return p.GenerateFromText(ctx, inputs.text)

	case len(inputs.args) > 0:
		content, err := os.ReadFile(inputs.args[0])
		if err != nil {
			return parse.Result{}, fmt.Errorf("read document: %w", err)
		}
		return p.GenerateFromFile(ctx, inputs.args[0], content)

	default:
		return parse.Result{}, fmt.Errorf("nothing to do: pass a document, --text, --script, --definition, or --openapi")
	}
}

// reviewRequired lets the user toggle which questions are mandatory before
// the definition is emitted.
func reviewRequired(definition *form.FormDefinition) error {
	questions := definition.Flatten()
	options := make([]string, len(questions))
	var defaults []string
	for i, q := range questions {
		options[i] = fmt.Sprintf("%d. %s", i+1, q.Text)
		if q.Required {
			defaults = append(defaults, options[i])
		}
	}

	var selected []string
	prompt := &survey.MultiSelect{
		Message:  "Mark the required questions:",
		Options:  options,
		Default:  defaults,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return fmt.Errorf("review aborted: %w", err)
	}

	chosen := make(map[string]bool, len(selected))
	for _, s := range selected {
		chosen[s] = true
	}

	index := 0
	apply := func(questions []form.Question) {
		for i := range questions {
			questions[i].Required = chosen[options[index]]
			index++
		}
	}
	if definition.Sectioned() {
		for si := range definition.Sections {
			for gi := range definition.Sections[si].QuestionGroups {
				apply(definition.Sections[si].QuestionGroups[gi].Questions)
			}
		}
	} else {
		apply(definition.Questions)
	}
	return nil
}

func renderOutput(ctx context.Context, p *pipeline.Pipeline, cfg *config.Config, result parse.Result) ([]byte, error) {
	switch cfg.Format {
	case config.FormatHTML:
		out, _, err := p.Render(ctx, result, "html", render.Options{})
		return out, err
	case config.FormatAppsScript:
		out, _, err := p.Render(ctx, result, "appsscript", render.Options{})
		return out, err
	default:
		return json.MarshalIndent(result.Definition, "", "  ")
	}
}

func buildLogger(level string) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	// Logs go to stderr so stdout stays clean for the emitted document.
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
