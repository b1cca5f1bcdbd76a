// Package parse is the public entry point of the script/response parsing
// pipeline: heterogeneous input text in, normalized form definition out.
package parse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/formscribe/go-formscribe/internal/appsscript"
	"github.com/formscribe/go-formscribe/internal/jsonrepair"
	"github.com/formscribe/go-formscribe/pkg/form"
)

// SourceKind identifies which parser produced a Result.
type SourceKind string

const (
	SourceJSON       SourceKind = "json"
	SourceAppsScript SourceKind = "appsscript"
)

// Result is a parsed and normalized form definition together with the
// warnings the normalizer recorded while repairing per-question defects.
type Result struct {
	Definition form.FormDefinition
	Warnings   []form.Warning
	Source     SourceKind
}

// ParseScript parses user-supplied script input: a JSON document is decoded
// directly, anything else falls back to the Apps Script extractor. The JSON
// attempt wins only when it decodes cleanly and yields at least one usable
// question, mirroring the auto-detection contract.
func ParseScript(ctx context.Context, src string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(src) == "" {
		return Result{}, errors.New("parse: script input is empty")
	}

	var candidate form.FormDefinition
	if err := json.Unmarshal([]byte(src), &candidate); err == nil {
		if definition, warnings, nerr := form.Normalize(candidate); nerr == nil {
			return Result{Definition: definition, Warnings: warnings, Source: SourceJSON}, nil
		}
	}

	definition, warnings, err := form.Normalize(appsscript.Parse(src))
	if err != nil {
		return Result{}, fmt.Errorf("parse: script yielded no questions: %w", err)
	}
	return Result{Definition: definition, Warnings: warnings, Source: SourceAppsScript}, nil
}

// ParseResponse parses a generation collaborator's response: the payload is
// extracted and repaired by the JSON repair engine, decoded, and normalized.
// Responses that defeat every repair pass surface a *MalformedResponseError.
func ParseResponse(ctx context.Context, raw string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	payload, err := jsonrepair.Document(raw)
	if err != nil {
		return Result{}, fmt.Errorf("parse: repair response: %w", err)
	}

	var candidate form.FormDefinition
	if err := json.Unmarshal(payload, &candidate); err != nil {
		return Result{}, fmt.Errorf("parse: decode response: %w", err)
	}

	definition, warnings, err := form.Normalize(candidate)
	if err != nil {
		return Result{}, fmt.Errorf("parse: response: %w", err)
	}
	return Result{Definition: definition, Warnings: warnings, Source: SourceJSON}, nil
}
