package form

import (
	"fmt"
	"strings"
)

// DefaultTitle replaces an absent or blank form title during normalization.
const DefaultTitle = "AI Generated Form"

const (
	defaultScaleMin = 1
	defaultScaleMax = 5
)

// Warning records a per-question defect that was repaired rather than
// reported as a hard failure. Index counts questions in document order.
type Warning struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("question %d: %s", w.Index+1, w.Message)
}

// Normalize validates candidate and fills in defaults, producing the
// canonical definition handed to the rendering collaborator. Per-question
// defects (missing options, unknown types, empty text) downgrade or drop the
// offending question and record a Warning; only a document with no usable
// questions at all fails, with an error wrapping ErrInvalidDocument.
//
// The input's shape is preserved: sectioned documents stay sectioned, legacy
// flat documents stay flat. Normalization is pure and idempotent.
func Normalize(candidate FormDefinition) (FormDefinition, []Warning, error) {
	out := FormDefinition{
		Title:       strings.TrimSpace(candidate.Title),
		Description: candidate.Description,
	}
	if out.Title == "" {
		out.Title = DefaultTitle
	}

	var warnings []Warning
	index := 0

	normalizeList := func(questions []Question) []Question {
		kept := make([]Question, 0, len(questions))
		for _, q := range questions {
			nq, ws, ok := normalizeQuestion(q, index)
			warnings = append(warnings, ws...)
			index++
			if ok {
				kept = append(kept, nq)
			}
		}
		return kept
	}

	if candidate.Sectioned() {
		out.Sections = make([]Section, 0, len(candidate.Sections))
		for _, section := range candidate.Sections {
			ns := Section{
				Title:       strings.TrimSpace(section.Title),
				Description: section.Description,
			}
			for _, group := range section.QuestionGroups {
				ng := QuestionGroup{
					Title:       strings.TrimSpace(group.Title),
					Description: group.Description,
					Questions:   normalizeList(group.Questions),
				}
				if len(ng.Questions) == 0 && ng.Title == "" && ng.Description == "" {
					continue
				}
				ns.QuestionGroups = append(ns.QuestionGroups, ng)
			}
			out.Sections = append(out.Sections, ns)
		}
	} else {
		out.Questions = normalizeList(candidate.Questions)
	}

	if len(out.Flatten()) == 0 {
		return FormDefinition{}, nil, fmt.Errorf("form: normalize %q: %w", out.Title, ErrInvalidDocument)
	}
	return out, warnings, nil
}

func normalizeQuestion(q Question, index int) (Question, []Warning, bool) {
	var warnings []Warning

	q.Text = strings.TrimSpace(q.Text)
	if q.Text == "" {
		warnings = append(warnings, Warning{Index: index, Message: "empty question text, dropped"})
		return Question{}, warnings, false
	}

	q.Type = QuestionType(strings.TrimSpace(strings.ToLower(string(q.Type))))
	if q.Type == typeLinearScale {
		q.Type = TypeScale
	}
	if q.Type == "" {
		q.Type = TypeText
	}
	if !knownType(q.Type) {
		warnings = append(warnings, Warning{
			Index:   index,
			Message: fmt.Sprintf("unknown type %q, downgraded to text", q.Type),
		})
		q.Type = TypeText
	}

	if choiceFamily(q.Type) && len(q.Options) < 2 {
		warnings = append(warnings, Warning{
			Index:   index,
			Message: fmt.Sprintf("type %q needs at least two options, downgraded to text", q.Type),
		})
		q.Type = TypeText
	}
	if !choiceFamily(q.Type) {
		q.Options = nil
	}

	if q.Type == TypeScale {
		if q.ScaleMin == 0 && q.ScaleMax == 0 {
			q.ScaleMin, q.ScaleMax = defaultScaleMin, defaultScaleMax
		}
		if q.ScaleMin >= q.ScaleMax {
			warnings = append(warnings, Warning{
				Index:   index,
				Message: fmt.Sprintf("scale bounds %d..%d are invalid, reset to %d..%d", q.ScaleMin, q.ScaleMax, defaultScaleMin, defaultScaleMax),
			})
			q.ScaleMin, q.ScaleMax = defaultScaleMin, defaultScaleMax
		}
	} else {
		q.ScaleMin, q.ScaleMax = 0, 0
		q.ScaleMinLabel, q.ScaleMaxLabel = "", ""
	}

	return q, warnings, true
}
