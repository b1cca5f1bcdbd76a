// Package openapiform turns an OpenAPI document's component schemas into
// form definitions, so an existing API contract can seed an intake form
// without a generation round trip.
package openapiform

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/formscribe/go-formscribe/pkg/form"
)

// FromDocument loads an OpenAPI document from raw bytes and builds a form for
// the named component schema. An empty name selects the document's single
// schema; with several schemas present the name is required.
func FromDocument(ctx context.Context, raw []byte, schemaName string) (form.FormDefinition, error) {
	if err := ctx.Err(); err != nil {
		return form.FormDefinition{}, err
	}
	if len(raw) == 0 {
		return form.FormDefinition{}, errors.New("openapiform: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return form.FormDefinition{}, fmt.Errorf("openapiform: load document: %w", err)
	}

	ref, name, err := selectSchema(spec, schemaName)
	if err != nil {
		return form.FormDefinition{}, err
	}

	candidate := buildDefinition(spec, name, ref)
	definition, _, err := form.Normalize(candidate)
	if err != nil {
		return form.FormDefinition{}, fmt.Errorf("openapiform: schema %q: %w", name, err)
	}
	return definition, nil
}

func selectSchema(spec *openapi3.T, name string) (*openapi3.SchemaRef, string, error) {
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, "", errors.New("openapiform: document has no component schemas")
	}
	schemas := spec.Components.Schemas

	if name != "" {
		ref, ok := schemas[name]
		if !ok {
			return nil, "", fmt.Errorf("openapiform: schema %q not found", name)
		}
		return ref, name, nil
	}
	if len(schemas) > 1 {
		names := make([]string, 0, len(schemas))
		for n := range schemas {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, "", fmt.Errorf("openapiform: document has %d schemas, name one of: %s", len(names), strings.Join(names, ", "))
	}
	for n, ref := range schemas {
		return ref, n, nil
	}
	return nil, "", errors.New("openapiform: document has no component schemas")
}

func buildDefinition(spec *openapi3.T, name string, ref *openapi3.SchemaRef) form.FormDefinition {
	def := form.FormDefinition{Title: name}
	if spec.Info != nil && spec.Info.Title != "" {
		def.Title = fmt.Sprintf("%s: %s", spec.Info.Title, name)
	}
	if ref.Value == nil {
		return def
	}
	def.Description = ref.Value.Description

	required := make(map[string]bool, len(ref.Value.Required))
	for _, field := range ref.Value.Required {
		required[field] = true
	}

	// Map iteration order is random; sort for a stable form.
	fields := make([]string, 0, len(ref.Value.Properties))
	for field := range ref.Value.Properties {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		property := ref.Value.Properties[field]
		if property == nil || property.Value == nil {
			continue
		}
		question, ok := questionFor(field, property.Value)
		if !ok {
			continue
		}
		question.Required = required[field]
		def.Questions = append(def.Questions, question)
	}
	return def
}

// questionFor maps one schema property to a question. Nested objects and
// arrays have no form equivalent here and are skipped.
func questionFor(field string, schema *openapi3.Schema) (form.Question, bool) {
	q := form.Question{
		Text:     fieldLabel(field, schema),
		HelpText: schema.Description,
	}

	if len(schema.Enum) > 0 {
		q.Type = form.TypeDropdown
		for _, value := range schema.Enum {
			q.Options = append(q.Options, fmt.Sprint(value))
		}
		return q, true
	}

	switch firstSchemaType(schema.Type) {
	case "boolean":
		q.Type = form.TypeChoice
		q.Options = []string{"Yes", "No"}
	case "integer", "number":
		if schema.Min != nil && schema.Max != nil && *schema.Max > *schema.Min {
			q.Type = form.TypeScale
			q.ScaleMin = int(*schema.Min)
			q.ScaleMax = int(*schema.Max)
		} else {
			q.Type = form.TypeText
		}
	case "string":
		switch schema.Format {
		case "date", "date-time":
			q.Type = form.TypeDate
		case "time":
			q.Type = form.TypeTime
		case "binary", "byte":
			q.Type = form.TypeFile
		default:
			if schema.MaxLength != nil && *schema.MaxLength > 255 {
				q.Type = form.TypeParagraph
			} else {
				q.Type = form.TypeText
			}
		}
	case "object", "array":
		return form.Question{}, false
	default:
		q.Type = form.TypeText
	}
	return q, true
}

func fieldLabel(field string, schema *openapi3.Schema) string {
	if schema.Title != "" {
		return schema.Title
	}
	// snake_case and kebab-case field names read better with spaces.
	label := strings.NewReplacer("_", " ", "-", " ").Replace(field)
	return strings.TrimSpace(label)
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
