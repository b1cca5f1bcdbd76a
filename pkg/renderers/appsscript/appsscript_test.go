package appsscript_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/formscribe/go-formscribe/pkg/form"
	"github.com/formscribe/go-formscribe/pkg/parse"
	"github.com/formscribe/go-formscribe/pkg/render"
	"github.com/formscribe/go-formscribe/pkg/renderers/appsscript"
)

func TestRenderEmitsScript(t *testing.T) {
	def := form.FormDefinition{
		Title:       "Exam",
		Description: "Line one\nLine two",
		Questions: []form.Question{
			{Text: "Name", Type: form.TypeText, Required: true},
			{Text: "Color", Type: form.TypeChoice, Options: []string{"Red", "it's blue"}},
			{Text: "Rate", Type: form.TypeScale, ScaleMin: 1, ScaleMax: 10, ScaleMinLabel: "Low", ScaleMaxLabel: "High"},
		},
	}

	out, err := appsscript.New().Render(context.Background(), def, render.Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	script := string(out)

	for _, want := range []string{
		"FormApp.create('Exam')",
		`form.setDescription('Line one\nLine two')`,
		"form.addTextItem().setTitle('Name').setRequired(true);",
		`.setChoiceValues(['Red', 'it\'s blue'])`,
		".setBounds(1, 10).setLabels('Low', 'High')",
	} {
		if !strings.Contains(script, want) {
			t.Fatalf("script missing %q:\n%s", want, script)
		}
	}
}

// The emitted script must survive the extraction path unchanged.
func TestRenderRoundTripsThroughParser(t *testing.T) {
	def := form.FormDefinition{
		Title:       "Round Trip",
		Description: "Desc",
		Questions: []form.Question{
			{Text: "Name", Type: form.TypeText, Required: true},
			{Text: "Pick", Type: form.TypeDropdown, Options: []string{"a", "b"}},
			{Text: "Agree?", Type: form.TypeCheckbox, Options: []string{"Yes", "No"}},
			{Text: "Rate", Type: form.TypeScale, ScaleMin: 1, ScaleMax: 5},
		},
	}

	out, err := appsscript.New().Render(context.Background(), def, render.Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	result, err := parse.ParseScript(context.Background(), string(out))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	if result.Source != parse.SourceAppsScript {
		t.Fatalf("source = %q", result.Source)
	}
	if result.Definition.Title != def.Title {
		t.Fatalf("title = %q", result.Definition.Title)
	}
	if diff := cmp.Diff(def.Questions, result.Definition.Questions); diff != "" {
		t.Fatalf("round trip drifted (-want +got):\n%s", diff)
	}
}

// Paragraph, date, and time questions emit their native FormApp calls. The
// extraction path does not read those back, so they are outside the
// round-trip guarantee; this pins the emitted call names.
func TestRenderEmitsNativeCallsForNonExtractableTypes(t *testing.T) {
	def := form.FormDefinition{
		Title: "One Way",
		Questions: []form.Question{
			{Text: "Essay", Type: form.TypeParagraph},
			{Text: "When", Type: form.TypeDate},
			{Text: "At", Type: form.TypeTime},
		},
	}

	out, err := appsscript.New().Render(context.Background(), def, render.Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	script := string(out)

	for _, want := range []string{
		"form.addParagraphTextItem().setTitle('Essay');",
		"form.addDateItem().setTitle('When');",
		"form.addTimeItem().setTitle('At');",
	} {
		if !strings.Contains(script, want) {
			t.Fatalf("script missing %q:\n%s", want, script)
		}
	}
}

func TestRenderSectionsBecomePageBreaks(t *testing.T) {
	def := form.FormDefinition{
		Title: "Sectioned",
		Sections: []form.Section{{
			Title:       "READING PASSAGE 1",
			Description: "Passage",
			QuestionGroups: []form.QuestionGroup{{
				Title:     "Questions 1-2",
				Questions: []form.Question{{Text: "Q1", Type: form.TypeText}},
			}},
		}},
	}

	out, err := appsscript.New().Render(context.Background(), def, render.Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	script := string(out)
	if !strings.Contains(script, "form.addPageBreakItem().setTitle('READING PASSAGE 1').setHelpText('Passage');") {
		t.Fatalf("page break missing:\n%s", script)
	}
	if !strings.Contains(script, "form.addSectionHeaderItem().setTitle('Questions 1-2');") {
		t.Fatalf("section header missing:\n%s", script)
	}
}
