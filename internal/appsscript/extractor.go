// Package appsscript extracts form structure from Google Apps Script style
// source text. The extraction is plain text scanning, not an AST parse: it
// locates add-item invocations and reads the string, boolean, and numeric
// literals fed to the chained setter calls. All boundary searches run through
// the shared scanner so semicolons or method names inside string literals are
// never mistaken for statement structure.
package appsscript

import (
	"strings"

	"github.com/formscribe/go-formscribe/internal/scan"
	"github.com/formscribe/go-formscribe/pkg/form"
)

// defaultTitle is used when the source has no FormApp.create call with a
// literal title.
const defaultTitle = "Form from Script"

// itemTypes maps add-item method names to question types. Page breaks and
// section headers are deliberately absent: they are layout markers, not
// questions, and blocks carrying them are skipped entirely.
var itemTypes = map[string]form.QuestionType{
	"addTextItem":           form.TypeText,
	"addMultipleChoiceItem": form.TypeChoice,
	"addListItem":           form.TypeDropdown,
	"addCheckboxItem":       form.TypeCheckbox,
	"addScaleItem":          form.TypeScale,
	"addLinearScaleItem":    form.TypeScale,
}

// Parse scans script source and returns the extracted candidate definition.
// Unrecognized add-calls and questions with empty resolved titles are skipped
// silently; the caller runs the result through form.Normalize.
func Parse(src string) form.FormDefinition {
	code := stripComments(src)

	def := form.FormDefinition{
		Title:       extractCreateTitle(code),
		Description: extractDescription(code),
	}
	if def.Title == "" {
		def.Title = defaultTitle
	}

	for _, block := range questionBlocks(code) {
		if q, ok := parseBlock(block); ok {
			def.Questions = append(def.Questions, q)
		}
	}
	return def
}

// stripComments removes //-to-end-of-line and /* */ runs. Comment openers
// inside string literals are kept, and quotes inside comments do not disturb
// the string state, so the two machines have to run interleaved.
func stripComments(code string) string {
	var b strings.Builder
	b.Grow(len(code))

	st := scan.NewState(scan.ScriptQuotes)
	i := 0
	for i < len(code) {
		if !st.InString() {
			if strings.HasPrefix(code[i:], "//") {
				j := strings.IndexByte(code[i:], '\n')
				if j < 0 {
					break
				}
				i += j
				continue
			}
			if strings.HasPrefix(code[i:], "/*") {
				j := strings.Index(code[i+2:], "*/")
				if j < 0 {
					break
				}
				i += 2 + j + 2
				continue
			}
		}
		b.WriteByte(code[i])
		st.Step(code[i])
		i++
	}
	return b.String()
}

func extractCreateTitle(code string) string {
	const marker = "FormApp.create("
	idx := scan.Index(code, marker, scan.ScriptQuotes, 0)
	if idx < 0 {
		return ""
	}
	title, _, ok := parseStringLiteral(code, idx+len(marker))
	if !ok {
		return ""
	}
	return strings.TrimSpace(title)
}

func extractDescription(code string) string {
	const marker = ".setDescription("
	idx := scan.Index(code, marker, scan.ScriptQuotes, 0)
	if idx < 0 {
		return ""
	}
	desc, _, ok := parseStringLiteral(code, idx+len(marker))
	if !ok {
		return ""
	}
	return strings.TrimSpace(desc)
}

type block struct {
	name string
	body string
}

// questionBlocks slices the source into one block per add-item invocation.
// A block runs from the invocation's leading dot up to the next semicolon or
// the next add-item invocation, whichever comes first, with both terminators
// searched outside string literals.
func questionBlocks(code string) []block {
	calls := findAddCalls(code)
	blocks := make([]block, 0, len(calls))
	for k, call := range calls {
		end := scan.Index(code, ";", scan.ScriptQuotes, call.pos)
		if end < 0 {
			end = len(code)
		}
		if k+1 < len(calls) && calls[k+1].pos < end {
			end = calls[k+1].pos
		}
		blocks = append(blocks, block{name: call.name, body: code[call.pos:end]})
	}
	return blocks
}

type addCall struct {
	pos  int
	name string
}

// findAddCalls locates every `.add<Name>Item(` invocation outside string
// literals, in source order.
func findAddCalls(code string) []addCall {
	var calls []addCall
	st := scan.NewState(scan.ScriptQuotes)
	for i := 0; i < len(code); i++ {
		if st.Step(code[i]) || code[i] != '.' {
			continue
		}
		j := i + 1
		for j < len(code) && isIdentByte(code[j]) {
			j++
		}
		name := code[i+1 : j]
		if len(name) > len("addItem") &&
			strings.HasPrefix(name, "add") && strings.HasSuffix(name, "Item") &&
			j < len(code) && code[j] == '(' {
			calls = append(calls, addCall{pos: i, name: name})
		}
	}
	return calls
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func parseBlock(b block) (form.Question, bool) {
	typ, ok := itemTypes[b.name]
	if !ok {
		// Page breaks, section headers, and anything unrecognized.
		return form.Question{}, false
	}

	q := form.Question{Type: typ}
	if title, ok := stringArg(b.body, "setTitle"); ok {
		q.Text = strings.TrimSpace(title)
	}
	if q.Text == "" {
		return form.Question{}, false
	}

	q.Required = boolArg(b.body, "setRequired")
	if help, ok := stringArg(b.body, "setHelpText"); ok {
		q.HelpText = strings.TrimSpace(help)
	}

	switch {
	case typ == form.TypeChoice || typ == form.TypeCheckbox || typ == form.TypeDropdown:
		q.Options = stringArrayArg(b.body, "setChoiceValues")
	case typ == form.TypeScale:
		q.ScaleMin, q.ScaleMax = 1, 5
		if lo, hi, ok := intPairArg(b.body, "setBounds"); ok {
			q.ScaleMin, q.ScaleMax = lo, hi
		}
		if lo, hi, ok := stringPairArg(b.body, "setLabels"); ok {
			q.ScaleMinLabel, q.ScaleMaxLabel = lo, hi
		}
	}
	return q, true
}
