package appsscript

import (
	"strings"

	"github.com/formscribe/go-formscribe/internal/scan"
)

// parseStringLiteral reads a single- or double-quoted literal starting at the
// first non-space byte at or after i. Escaped characters \n, \", \' and \\
// are unescaped; any other backslash pair is kept verbatim. Returns the
// decoded value and the index just past the closing quote.
func parseStringLiteral(s string, i int) (string, int, bool) {
	i = skipSpace(s, i)
	if i >= len(s) || (s[i] != '\'' && s[i] != '"') {
		return "", i, false
	}
	quote := s[i]
	i++

	var b strings.Builder
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
			case '\'', '"', '\\':
				b.WriteByte(s[i+1])
			default:
				b.WriteByte('\\')
				b.WriteByte(s[i+1])
			}
			i += 2
			continue
		}
		if c == quote {
			return b.String(), i + 1, true
		}
		b.WriteByte(c)
		i++
	}
	return "", i, false
}

// stringArg finds the first `.setter(` call in body and parses its string
// literal argument.
func stringArg(body, setter string) (string, bool) {
	idx := argStart(body, setter)
	if idx < 0 {
		return "", false
	}
	value, _, ok := parseStringLiteral(body, idx)
	return value, ok
}

// boolArg reports whether `.setter(true)` appears in body. An absent setter
// or any other argument reads as false.
func boolArg(body, setter string) bool {
	idx := argStart(body, setter)
	if idx < 0 {
		return false
	}
	return strings.HasPrefix(body[skipSpace(body, idx):], "true")
}

// stringArrayArg parses the `['a', 'b', ...]` argument of `.setter(`.
// Escaped quotes inside options are restored to literal quotes.
func stringArrayArg(body, setter string) []string {
	idx := argStart(body, setter)
	if idx < 0 {
		return nil
	}
	i := skipSpace(body, idx)
	if i >= len(body) || body[i] != '[' {
		return nil
	}
	i++

	var options []string
	for i < len(body) {
		i = skipSpace(body, i)
		if i >= len(body) || body[i] == ']' {
			break
		}
		if body[i] == ',' {
			i++
			continue
		}
		if body[i] == '\'' || body[i] == '"' {
			value, next, ok := parseStringLiteral(body, i)
			if !ok {
				break
			}
			options = append(options, value)
			i = next
			continue
		}
		// Skip a non-string element.
		for i < len(body) && body[i] != ',' && body[i] != ']' {
			i++
		}
	}
	return options
}

// intPairArg parses the `(lo, hi)` integer arguments of `.setter(`.
func intPairArg(body, setter string) (int, int, bool) {
	idx := argStart(body, setter)
	if idx < 0 {
		return 0, 0, false
	}
	lo, i, ok := parseInt(body, idx)
	if !ok {
		return 0, 0, false
	}
	i = skipSpace(body, i)
	if i >= len(body) || body[i] != ',' {
		return 0, 0, false
	}
	hi, _, ok := parseInt(body, i+1)
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// stringPairArg parses the `('a', 'b')` string arguments of `.setter(`.
func stringPairArg(body, setter string) (string, string, bool) {
	idx := argStart(body, setter)
	if idx < 0 {
		return "", "", false
	}
	first, i, ok := parseStringLiteral(body, idx)
	if !ok {
		return "", "", false
	}
	i = skipSpace(body, i)
	if i >= len(body) || body[i] != ',' {
		return "", "", false
	}
	second, _, ok := parseStringLiteral(body, i+1)
	if !ok {
		return "", "", false
	}
	return first, second, true
}

// argStart returns the index just past `.setter(`, searched outside string
// literals, or -1.
func argStart(body, setter string) int {
	marker := "." + setter + "("
	idx := scan.Index(body, marker, scan.ScriptQuotes, 0)
	if idx < 0 {
		return -1
	}
	return idx + len(marker)
}

func parseInt(s string, i int) (int, int, bool) {
	i = skipSpace(s, i)
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, i, false
	}
	n := 0
	for _, c := range []byte(s[start:i]) {
		n = n*10 + int(c-'0')
	}
	return n, i, true
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}
