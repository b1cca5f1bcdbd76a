package parse

import (
	"errors"

	"github.com/formscribe/go-formscribe/internal/jsonrepair"
)

// MalformedResponseError re-exports the repair engine's terminal failure so
// callers can inspect the parse error and payload preview without importing
// internal packages.
type MalformedResponseError = jsonrepair.MalformedResponseError

// AsMalformedResponse unwraps err looking for a repair failure.
func AsMalformedResponse(err error) (*MalformedResponseError, bool) {
	var target *MalformedResponseError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
