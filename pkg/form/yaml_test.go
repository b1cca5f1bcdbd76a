package form

import (
	"errors"
	"testing"
)

func TestFromYAML(t *testing.T) {
	payload := []byte(`
title: Quiz
questions:
  - text: Name
    type: text
    required: true
  - text: Color
    type: choice
    options: [Red, Blue]
`)
	def, warnings, err := FromYAML(payload)
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v", warnings)
	}
	if def.Title != "Quiz" || len(def.Questions) != 2 {
		t.Fatalf("definition = %+v", def)
	}
	if !def.Questions[0].Required {
		t.Fatal("required flag lost")
	}
}

func TestFromYAMLInvalid(t *testing.T) {
	if _, _, err := FromYAML([]byte("questions: {not: a list}")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFromYAMLEmpty(t *testing.T) {
	_, _, err := FromYAML([]byte("title: Empty"))
	if !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("err = %v, want ErrInvalidDocument", err)
	}
}
