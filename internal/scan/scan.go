// Package scan provides the single left-to-right string-tracking pass shared
// by the script extractor and the JSON repair engine. Both consumers need the
// same answer to the same question, "is this character logically inside a
// quoted string literal?", so the state machine lives here and nowhere else.
package scan

import (
	"iter"
	"strings"
)

// Quote sets accepted by the scanner. JSON strings only ever use double
// quotes; Apps Script style source mixes single and double quotes.
const (
	JSONQuotes   = `"`
	ScriptQuotes = `"'`
)

// State tracks string-literal membership across a byte-at-a-time walk.
// A quote toggles the in-string flag only when it is not escaped, which the
// machine expresses through the pending-escape flag: a quote preceded by an
// even number of consecutive backslashes is a real delimiter, one preceded by
// an odd number is content.
type State struct {
	quotes  string
	inside  bool
	quote   byte
	escaped bool
}

// NewState returns a fresh State recognising the given quote characters.
func NewState(quotes string) *State {
	return &State{quotes: quotes}
}

// Step consumes one byte and reports whether that byte is part of string
// content. The opening and closing delimiters themselves are reported as
// outside, so the in-string run between them has exactly the length of the
// literal's raw contents.
func (s *State) Step(c byte) bool {
	if s.escaped {
		s.escaped = false
		return s.inside
	}
	if s.inside {
		switch c {
		case '\\':
			s.escaped = true
			return true
		case s.quote:
			s.inside = false
			return false
		}
		return true
	}
	if c != 0 && strings.IndexByte(s.quotes, c) >= 0 {
		s.inside = true
		s.quote = c
		return false
	}
	return false
}

// InString reports whether the walk is currently inside a string literal.
func (s *State) InString() bool {
	return s.inside
}

// Scan yields every byte of text paired with its in-string flag. The pass is
// pure and restartable: each call starts from a fresh State.
func Scan(text, quotes string) iter.Seq2[byte, bool] {
	return func(yield func(byte, bool) bool) {
		st := NewState(quotes)
		for i := 0; i < len(text); i++ {
			if !yield(text[i], st.Step(text[i])) {
				return
			}
		}
	}
}

// Index returns the first occurrence of substr at or after from that starts
// outside any string literal, or -1. The walk always begins at the start of
// text so the string state is correct regardless of from.
func Index(text, substr, quotes string, from int) int {
	if substr == "" || from < 0 || from > len(text) {
		return -1
	}
	st := NewState(quotes)
	for i := 0; i < len(text); i++ {
		inside := st.Step(text[i])
		if inside || i < from {
			continue
		}
		if strings.HasPrefix(text[i:], substr) {
			return i
		}
	}
	return -1
}
