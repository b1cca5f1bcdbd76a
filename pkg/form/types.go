package form

// QuestionType enumerates the question kinds the rendering collaborator
// understands. The wire values match the generation prompt's vocabulary.
type QuestionType string

const (
	TypeText      QuestionType = "text"
	TypeParagraph QuestionType = "paragraph"
	TypeChoice    QuestionType = "choice"
	TypeCheckbox  QuestionType = "checkbox"
	TypeDropdown  QuestionType = "dropdown"
	TypeScale     QuestionType = "scale"
	TypeDate      QuestionType = "date"
	TypeTime      QuestionType = "time"
	TypeFile      QuestionType = "file"
)

// legacy spelling emitted by some script sources and older prompts.
const typeLinearScale QuestionType = "linear_scale"

// choiceFamily reports whether the type carries an options list.
func choiceFamily(t QuestionType) bool {
	return t == TypeChoice || t == TypeCheckbox || t == TypeDropdown
}

func knownType(t QuestionType) bool {
	switch t {
	case TypeText, TypeParagraph, TypeChoice, TypeCheckbox, TypeDropdown,
		TypeScale, TypeDate, TypeTime, TypeFile:
		return true
	}
	return false
}

// Question is a single form item. Text may itself contain blank markers
// (ellipsis or underscore runs) when the intended answer mode is free text.
type Question struct {
	Text     string       `json:"text" yaml:"text"`
	Type     QuestionType `json:"type" yaml:"type"`
	Required bool         `json:"required" yaml:"required"`
	HelpText string       `json:"help_text,omitempty" yaml:"help_text,omitempty"`
	Options  []string     `json:"options,omitempty" yaml:"options,omitempty"`

	// Scale bounds and labels, meaningful only when Type is TypeScale.
	ScaleMin      int    `json:"scale_min,omitempty" yaml:"scale_min,omitempty"`
	ScaleMax      int    `json:"scale_max,omitempty" yaml:"scale_max,omitempty"`
	ScaleMinLabel string `json:"scale_min_label,omitempty" yaml:"scale_min_label,omitempty"`
	ScaleMaxLabel string `json:"scale_max_label,omitempty" yaml:"scale_max_label,omitempty"`
}

// QuestionGroup is a named cluster of questions within a section, e.g.
// "Questions 1-5" with shared instructions in Description.
type QuestionGroup struct {
	Title       string     `json:"title,omitempty" yaml:"title,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Questions   []Question `json:"questions" yaml:"questions"`
}

// Section groups questions under a heading. Description may hold a full
// source passage, e.g. reading-comprehension text.
type Section struct {
	Title          string          `json:"title,omitempty" yaml:"title,omitempty"`
	Description    string          `json:"description,omitempty" yaml:"description,omitempty"`
	QuestionGroups []QuestionGroup `json:"question_groups" yaml:"question_groups"`
}

// FormDefinition is the canonical in-memory representation of a form. Either
// Sections or the legacy flat Questions slice carries the content; when both
// are present Sections takes precedence. The struct is treated as immutable
// once normalization succeeds.
type FormDefinition struct {
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Sections    []Section  `json:"sections,omitempty" yaml:"sections,omitempty"`
	Questions   []Question `json:"questions,omitempty" yaml:"questions,omitempty"`
}

// Sectioned reports whether the definition carries sectioned content.
func (d FormDefinition) Sectioned() bool {
	return len(d.Sections) > 0
}

// Flatten returns the definition's questions in document order. Sectioned
// content wins over the legacy flat slice; the receiver is not modified.
func (d FormDefinition) Flatten() []Question {
	if !d.Sectioned() {
		return append([]Question(nil), d.Questions...)
	}
	var out []Question
	for _, section := range d.Sections {
		for _, group := range section.QuestionGroups {
			out = append(out, group.Questions...)
		}
	}
	return out
}
