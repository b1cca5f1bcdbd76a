package form

import "errors"

// ErrInvalidDocument marks a candidate that yielded no usable questions after
// flattening. Not recoverable locally; callers surface it as a hard failure
// for that input.
var ErrInvalidDocument = errors.New("document contains no usable questions")
