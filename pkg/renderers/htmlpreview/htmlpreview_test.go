package htmlpreview

import (
	"context"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/formscribe/go-formscribe/pkg/form"
	"github.com/formscribe/go-formscribe/pkg/render"
)

func sampleForm() form.FormDefinition {
	return form.FormDefinition{
		Title:       "Reading Exam",
		Description: "Answer all questions.",
		Sections: []form.Section{{
			Title:       "READING PASSAGE 1",
			Description: "The passage text.",
			QuestionGroups: []form.QuestionGroup{{
				Title: "Questions 1-3",
				Questions: []form.Question{
					{Text: "What is the answer?", Type: form.TypeChoice, Required: true, Options: []string{"A", "B", "C"}},
					{Text: "Fill in ______", Type: form.TypeText},
					{Text: "Rate the passage", Type: form.TypeScale, ScaleMin: 1, ScaleMax: 5, ScaleMinLabel: "Dull", ScaleMaxLabel: "Gripping"},
				},
			}},
		}},
	}
}

func renderSample(t *testing.T, options render.Options) string {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := r.Render(context.Background(), sampleForm(), options)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return string(out)
}

func TestRenderContainsStructure(t *testing.T) {
	html := renderSample(t, render.Options{})

	for _, want := range []string{
		"<title>Reading Exam</title>",
		"READING PASSAGE 1",
		"Questions 1-3",
		"1. What is the answer?",
		"2. Fill in ______",
		"3. Rate the passage",
		`type="radio"`,
		"> A</label>",
		`class="required"`,
		`type="range"`,
		"Dull",
		"Gripping",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered HTML missing %q\n%s", want, html)
		}
	}
}

func TestRenderSanitizesDescriptions(t *testing.T) {
	def := sampleForm()
	def.Description = `Keep <em>this</em><script>alert("x")</script>`

	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := r.Render(context.Background(), def, render.Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := string(out)
	if strings.Contains(html, "<script>") {
		t.Fatal("script tag survived sanitization")
	}
	if !strings.Contains(html, "<em>this</em>") {
		t.Fatal("harmless markup was stripped")
	}
}

func TestRenderShowsWarnings(t *testing.T) {
	html := renderSample(t, render.Options{
		Warnings: []form.Warning{{Index: 0, Message: "downgraded to text"}},
	})
	if !strings.Contains(html, "question 1: downgraded to text") {
		t.Fatal("warnings not rendered")
	}
}

func TestRenderAppliesThemeVars(t *testing.T) {
	html := renderSample(t, render.Options{
		Theme: &theme.RendererConfig{
			Theme:   "acme",
			Variant: "dark",
			CSSVars: map[string]string{"--accent": "#123456"},
		},
	})
	if !strings.Contains(html, "--accent: #123456;") {
		t.Fatal("theme CSS vars not inlined")
	}
}

func TestRendererMetadata(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.Name() != "html" {
		t.Fatalf("Name() = %q", r.Name())
	}
	if !strings.HasPrefix(r.ContentType(), "text/html") {
		t.Fatalf("ContentType() = %q", r.ContentType())
	}
}

func TestRenderFlatQuestions(t *testing.T) {
	def := form.FormDefinition{
		Title: "Flat",
		Questions: []form.Question{
			{Text: "Pick one", Type: form.TypeDropdown, Options: []string{"x", "y"}},
		},
	}

	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := r.Render(context.Background(), def, render.Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(out), "<select disabled>") {
		t.Fatalf("dropdown not rendered:\n%s", out)
	}
}
