package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/formscribe/go-formscribe/pkg/creator"
	"github.com/formscribe/go-formscribe/pkg/form"
	"github.com/formscribe/go-formscribe/pkg/llm"
	"github.com/formscribe/go-formscribe/pkg/parse"
	"github.com/formscribe/go-formscribe/pkg/render"
)

// fixtureResponse is a typical model reply: fenced, and carrying a raw
// control character inside a string value.
const fixtureResponse = "```json\n" +
	`{
  "title": "Reading Exam",
  "sections": [
    {
      "title": "READING PASSAGE 1",
      "description": "Passage line one` + "\x01" + `",
      "question_groups": [
        {
          "title": "Questions 1-2",
          "questions": [
            {"text": "What is the answer?", "type": "choice", "required": true, "options": ["A", "B", "C"]},
            {"text": "Fill in ______", "type": "text", "required": true}
          ]
        }
      ]
    }
  ]
}` + "\n```"

func stubGenerator(response string, err error) llm.GeneratorFunc {
	return func(context.Context, string) (string, error) {
		return response, err
	}
}

func TestGenerateFromTextEndToEnd(t *testing.T) {
	var seenPrompt string
	p := New(WithGenerator(llm.GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		seenPrompt = prompt
		return fixtureResponse, nil
	})))

	result, err := p.GenerateFromText(context.Background(), "document text here")
	if err != nil {
		t.Fatalf("GenerateFromText: %v", err)
	}

	if !strings.Contains(seenPrompt, "document text here") {
		t.Fatal("prompt does not carry the document text")
	}
	if result.Definition.Title != "Reading Exam" {
		t.Fatalf("title = %q", result.Definition.Title)
	}
	questions := result.Definition.Flatten()
	if len(questions) != 2 {
		t.Fatalf("question count = %d, want 2", len(questions))
	}
	if questions[1].Type != form.TypeText {
		t.Fatalf("second question type = %q", questions[1].Type)
	}
}

func TestGenerateFromFileUsesIngestion(t *testing.T) {
	p := New(WithGenerator(stubGenerator(fixtureResponse, nil)))

	result, err := p.GenerateFromFile(context.Background(), "exam.txt", []byte("1. Question text"))
	if err != nil {
		t.Fatalf("GenerateFromFile: %v", err)
	}
	if len(result.Definition.Flatten()) == 0 {
		t.Fatal("no questions parsed")
	}
}

func TestGenerateFromFileRejectsUnsupported(t *testing.T) {
	p := New(WithGenerator(stubGenerator(fixtureResponse, nil)))

	_, err := p.GenerateFromFile(context.Background(), "scores.xlsx", []byte("PK"))
	if err == nil {
		t.Fatal("expected ingestion error")
	}
}

func TestGenerateWithoutGenerator(t *testing.T) {
	p := New()
	_, err := p.GenerateFromText(context.Background(), "text")
	if err == nil || !strings.Contains(err.Error(), "generator is not configured") {
		t.Fatalf("err = %v", err)
	}
}

func TestGenerateSurfacesGeneratorError(t *testing.T) {
	boom := errors.New("model unavailable")
	p := New(WithGenerator(stubGenerator("", boom)))

	_, err := p.GenerateFromText(context.Background(), "text")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped generator error", err)
	}
}

func TestGenerateSurfacesMalformedResponse(t *testing.T) {
	p := New(WithGenerator(stubGenerator("I cannot produce a form for that.", nil)))

	_, err := p.GenerateFromText(context.Background(), "text")
	if _, ok := parse.AsMalformedResponse(err); !ok {
		t.Fatalf("err = %v, want MalformedResponseError", err)
	}
}

func TestParseScriptAndRender(t *testing.T) {
	p := New()

	result, err := p.ParseScript(context.Background(), `
		form.addTextItem().setTitle('Name').setRequired(true);
	`)
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}

	out, contentType, err := p.Render(context.Background(), result, "", render.Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(contentType, "text/html") {
		t.Fatalf("content type = %q", contentType)
	}
	if !strings.Contains(string(out), "1. Name") {
		t.Fatalf("preview missing question:\n%s", out)
	}
}

func TestRenderAppsScript(t *testing.T) {
	p := New()

	result, err := p.ParseScript(context.Background(), `{"questions": [{"text": "Q1", "type": "text"}]}`)
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}

	out, contentType, err := p.Render(context.Background(), result, "appsscript", render.Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(contentType, "application/javascript") {
		t.Fatalf("content type = %q", contentType)
	}
	if !strings.Contains(string(out), "form.addTextItem().setTitle('Q1');") {
		t.Fatalf("script missing question:\n%s", out)
	}
}

func TestRenderUnknownRenderer(t *testing.T) {
	p := New()
	_, _, err := p.Render(context.Background(), parse.Result{}, "pdf", render.Options{})
	if err == nil {
		t.Fatal("expected unknown renderer error")
	}
}

func TestRenderersListsDefaults(t *testing.T) {
	p := New()
	names := p.Renderers()
	want := map[string]bool{"html": false, "appsscript": false}
	for _, name := range names {
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Fatalf("renderer %q not registered by default", name)
		}
	}
}

func TestCreateRecordsForm(t *testing.T) {
	memory := creator.NewMemory()
	p := New(WithCreator(memory))

	def := form.FormDefinition{
		Title:     "T",
		Questions: []form.Question{{Text: "Q", Type: form.TypeText}},
	}
	created, err := p.Create(context.Background(), def)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.URL == "" || created.ID == "" {
		t.Fatalf("created = %+v", created)
	}
	if got := memory.Forms(); len(got) != 1 || got[0].Title != "T" {
		t.Fatalf("recorded forms = %+v", got)
	}
}

func TestCreateWithoutCreator(t *testing.T) {
	p := New()
	if _, err := p.Create(context.Background(), form.FormDefinition{}); err == nil {
		t.Fatal("expected missing creator error")
	}
}
