// Package htmlpreview renders a form definition as a static HTML page so a
// reviewer can inspect the extracted questions before the form is created
// anywhere. The preview is intentionally inert: no submission handling, just
// the structure, required markers, and normalization warnings.
package htmlpreview

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/formscribe/go-formscribe/pkg/form"
	"github.com/formscribe/go-formscribe/pkg/render"
	rendertemplate "github.com/formscribe/go-formscribe/pkg/render/template"
	gotemplate "github.com/formscribe/go-formscribe/pkg/render/template/gotemplate"
)

const templateName = "templates/form.tmpl"

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path != "" {
			cfg.templateFS = os.DirFS(path)
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer produces the HTML preview document.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	sanitizer *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a preview renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if _, err := fs.Stat(cfg.templateFS, templateName); err != nil {
		return nil, fmt.Errorf("htmlpreview: template %q missing: %w", templateName, err)
	}

	templateRenderer := cfg.templateRenderer
	if templateRenderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("htmlpreview: configure template renderer: %w", err)
		}
		templateRenderer = engine
	}

	return &Renderer{
		templates: templateRenderer,
		// Descriptions carry model-generated passage text that may contain
		// markup; UGC policy keeps the harmless bits and strips the rest.
		sanitizer: bluemonday.UGCPolicy(),
	}, nil
}

// Name identifies the renderer inside the registry.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType returns the MIME type for generated documents.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the preview HTML.
func (r *Renderer) Render(ctx context.Context, definition form.FormDefinition, options render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := map[string]any{
		"form":     r.viewForm(definition),
		"warnings": warningMessages(options.Warnings),
		"theme":    themeContext(options),
	}

	out, err := r.templates.RenderTemplate(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("htmlpreview: render: %w", err)
	}
	return []byte(out), nil
}

// viewForm lowers the definition into the template context, numbering the
// questions across all sections so the preview mirrors exam numbering.
func (r *Renderer) viewForm(definition form.FormDefinition) map[string]any {
	number := 0
	viewQuestions := func(questions []form.Question) []map[string]any {
		out := make([]map[string]any, 0, len(questions))
		for _, q := range questions {
			number++
			out = append(out, map[string]any{
				"number":          number,
				"text":            q.Text,
				"type":            string(q.Type),
				"required":        q.Required,
				"help_text":       q.HelpText,
				"options":         q.Options,
				"scale_min":       q.ScaleMin,
				"scale_max":       q.ScaleMax,
				"scale_min_label": q.ScaleMinLabel,
				"scale_max_label": q.ScaleMaxLabel,
			})
		}
		return out
	}

	view := map[string]any{
		"title":            definition.Title,
		"description_html": r.sanitizer.Sanitize(definition.Description),
	}

	var sections []map[string]any
	for _, section := range definition.Sections {
		var groups []map[string]any
		for _, group := range section.QuestionGroups {
			groups = append(groups, map[string]any{
				"title":            group.Title,
				"description_html": r.sanitizer.Sanitize(group.Description),
				"questions":        viewQuestions(group.Questions),
			})
		}
		sections = append(sections, map[string]any{
			"title":            section.Title,
			"description_html": r.sanitizer.Sanitize(section.Description),
			"question_groups":  groups,
		})
	}
	view["sections"] = sections
	// Sections take precedence over the flat list, mirroring Flatten.
	if definition.Sectioned() {
		view["questions"] = []map[string]any{}
	} else {
		view["questions"] = viewQuestions(definition.Questions)
	}
	return view
}

func warningMessages(warnings []form.Warning) []string {
	out := make([]string, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, w.String())
	}
	return out
}

// themeContext flattens the theme config into an inline CSS custom property
// block the template drops into the page header.
func themeContext(options render.Options) map[string]any {
	ctx := map[string]any{
		"name":           "",
		"variant":        "",
		"css_vars_style": "",
	}
	cfg := options.Theme
	if cfg == nil {
		return ctx
	}
	ctx["name"] = cfg.Theme
	ctx["variant"] = cfg.Variant

	if len(cfg.CSSVars) > 0 {
		keys := make([]string, 0, len(cfg.CSSVars))
		for key := range cfg.CSSVars {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		var b strings.Builder
		for _, key := range keys {
			fmt.Fprintf(&b, "%s: %s; ", key, cfg.CSSVars[key])
		}
		ctx["css_vars_style"] = strings.TrimSpace(b.String())
	}
	return ctx
}
