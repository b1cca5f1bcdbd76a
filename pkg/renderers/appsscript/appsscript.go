// Package appsscript renders a form definition as a Google Apps Script that
// recreates the form when pasted into script.google.com. For the question
// types the script extraction path recognises, an emitted script parses back
// to the same definition; paragraph, date, and time questions emit their
// native FormApp calls, which the extractor does not read back.
package appsscript

import (
	"context"
	"fmt"
	"strings"

	"github.com/formscribe/go-formscribe/pkg/form"
	"github.com/formscribe/go-formscribe/pkg/render"
)

var itemCalls = map[form.QuestionType]string{
	form.TypeText:      "addTextItem",
	form.TypeParagraph: "addParagraphTextItem",
	form.TypeChoice:    "addMultipleChoiceItem",
	form.TypeCheckbox:  "addCheckboxItem",
	form.TypeDropdown:  "addListItem",
	form.TypeScale:     "addScaleItem",
	form.TypeDate:      "addDateItem",
	form.TypeTime:      "addTimeItem",
}

// Renderer emits the script.
type Renderer struct{}

var _ render.Renderer = Renderer{}

// New constructs the renderer.
func New() Renderer {
	return Renderer{}
}

func (Renderer) Name() string {
	return "appsscript"
}

func (Renderer) ContentType() string {
	return "application/javascript; charset=utf-8"
}

// Render writes one createForm function covering the whole definition.
// Sections become page breaks carrying the section description.
func (Renderer) Render(ctx context.Context, definition form.FormDefinition, _ render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("function createForm() {\n")
	fmt.Fprintf(&b, "  var form = FormApp.create(%s);\n", quote(definition.Title))
	if definition.Description != "" {
		fmt.Fprintf(&b, "  form.setDescription(%s);\n", quote(definition.Description))
	}

	for _, section := range definition.Sections {
		b.WriteString("\n  form.addPageBreakItem()")
		if section.Title != "" {
			fmt.Fprintf(&b, ".setTitle(%s)", quote(section.Title))
		}
		if section.Description != "" {
			fmt.Fprintf(&b, ".setHelpText(%s)", quote(section.Description))
		}
		b.WriteString(";\n")
		for _, group := range section.QuestionGroups {
			if group.Title != "" || group.Description != "" {
				b.WriteString("  form.addSectionHeaderItem()")
				if group.Title != "" {
					fmt.Fprintf(&b, ".setTitle(%s)", quote(group.Title))
				}
				if group.Description != "" {
					fmt.Fprintf(&b, ".setHelpText(%s)", quote(group.Description))
				}
				b.WriteString(";\n")
			}
			writeQuestions(&b, group.Questions)
		}
	}
	writeQuestions(&b, definition.Questions)

	b.WriteString("\n  Logger.log('Form URL: ' + form.getPublishedUrl());\n")
	b.WriteString("  Logger.log('Edit URL: ' + form.getEditUrl());\n")
	b.WriteString("}\n")
	return []byte(b.String()), nil
}

func writeQuestions(b *strings.Builder, questions []form.Question) {
	for _, q := range questions {
		call, ok := itemCalls[q.Type]
		if !ok {
			// File upload has no FormApp equivalent; fall back to text so the
			// question is not silently lost.
			call = itemCalls[form.TypeText]
		}
		fmt.Fprintf(b, "  form.%s().setTitle(%s)", call, quote(q.Text))
		if q.HelpText != "" {
			fmt.Fprintf(b, ".setHelpText(%s)", quote(q.HelpText))
		}
		if len(q.Options) > 0 {
			quoted := make([]string, 0, len(q.Options))
			for _, option := range q.Options {
				quoted = append(quoted, quote(option))
			}
			fmt.Fprintf(b, ".setChoiceValues([%s])", strings.Join(quoted, ", "))
		}
		if q.Type == form.TypeScale {
			fmt.Fprintf(b, ".setBounds(%d, %d)", q.ScaleMin, q.ScaleMax)
			if q.ScaleMinLabel != "" || q.ScaleMaxLabel != "" {
				fmt.Fprintf(b, ".setLabels(%s, %s)", quote(q.ScaleMinLabel), quote(q.ScaleMaxLabel))
			}
		}
		if q.Required {
			b.WriteString(".setRequired(true)")
		}
		b.WriteString(";\n")
	}
}

// quote emits a single-quoted JavaScript string literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
