// Package jsonrepair coerces malformed LLM output into parseable JSON. The
// usual defect is a raw control character (newline, tab) inside a string
// value; the engine escapes those without touching any other byte, so
// structural formatting survives the repair.
package jsonrepair

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/formscribe/go-formscribe/internal/scan"
)

const previewLimit = 1000

// MalformedResponseError reports that every repair strategy failed. It keeps
// the parse error from the strict pass and a bounded preview of the original
// payload so callers can surface something actionable without re-running the
// upstream generation.
type MalformedResponseError struct {
	Err     error
	Preview string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("jsonrepair: response is not valid JSON after repair: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// Document extracts the JSON payload from raw and repairs it if necessary.
// Strategies run in increasing aggressiveness: strict parse, control-character
// escaping inside strings, then a best-effort pass that deletes stray control
// bytes. A *MalformedResponseError is returned when all three fail.
func Document(raw string) ([]byte, error) {
	candidate := extractPayload(raw)
	if json.Valid([]byte(candidate)) {
		return []byte(candidate), nil
	}
	strictErr := parseError(candidate)

	repaired := EscapeControlCharacters(candidate)
	if json.Valid([]byte(repaired)) {
		return []byte(repaired), nil
	}

	scrubbed := stripStrayControls(repaired)
	if json.Valid([]byte(scrubbed)) {
		return []byte(scrubbed), nil
	}

	return nil, &MalformedResponseError{Err: strictErr, Preview: preview(raw)}
}

// extractPayload strips Markdown code fences and slices the substring from
// the first '{' to the last '}' as the candidate document.
func extractPayload(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return strings.TrimSpace(s)
}

// EscapeControlCharacters rewrites raw control bytes found inside string
// literals into their JSON escapes. Characters outside string context are
// copied unchanged.
func EscapeControlCharacters(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 16)

	st := scan.NewState(scan.JSONQuotes)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !st.Step(c) || c >= 0x20 {
			b.WriteByte(c)
			continue
		}
		switch c {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			fmt.Fprintf(&b, `\u%04x`, c)
		}
	}
	return b.String()
}

// stripStrayControls is the last-resort pass: NUL bytes are deleted outright
// and any control character still sitting outside tracked string context is
// dropped. Legal structural whitespace is kept. This may corrupt some
// documents; it runs only after the targeted repair has failed.
func stripStrayControls(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	st := scan.NewState(scan.JSONQuotes)
	for i := 0; i < len(s); i++ {
		c := s[i]
		inside := st.Step(c)
		if c == 0 {
			continue
		}
		if !inside && c < 0x20 && c != '\t' && c != '\n' && c != '\r' {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func parseError(s string) error {
	var v any
	return json.Unmarshal([]byte(s), &v)
}

func preview(s string) string {
	if len(s) <= previewLimit {
		return s
	}
	return s[:previewLimit]
}
