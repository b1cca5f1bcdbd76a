package form

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromYAML decodes a hand-written YAML candidate document and normalizes it.
// This covers the CLI's --definition path where users author a form directly
// instead of going through a generator.
func FromYAML(payload []byte) (FormDefinition, []Warning, error) {
	var candidate FormDefinition
	if err := yaml.Unmarshal(payload, &candidate); err != nil {
		return FormDefinition{}, nil, fmt.Errorf("form: decode yaml definition: %w", err)
	}
	return Normalize(candidate)
}
