package scan

import "testing"

func TestScanTracksStringContents(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		quotes string
		inside int
	}{
		{name: "plain literal", input: `{"a": "bc"}`, quotes: JSONQuotes, inside: 3},
		{name: "escaped quote stays inside", input: `"a\"b"`, quotes: JSONQuotes, inside: 4},
		{name: "double backslash then quote closes", input: `"a\\"x`, quotes: JSONQuotes, inside: 3},
		{name: "single quotes in script mode", input: `x = 'a;b'`, quotes: ScriptQuotes, inside: 3},
		{name: "single quotes ignored in json mode", input: `'ab'`, quotes: JSONQuotes, inside: 0},
		{name: "no strings", input: `[1, 2]`, quotes: JSONQuotes, inside: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			count := 0
			for _, inside := range Scan(tc.input, tc.quotes) {
				if inside {
					count++
				}
			}
			if count != tc.inside {
				t.Fatalf("in-string count = %d, want %d", count, tc.inside)
			}
		})
	}
}

func TestScanIsRestartable(t *testing.T) {
	const input = `{"key": "value"}`
	seq := Scan(input, JSONQuotes)

	first := 0
	for _, inside := range seq {
		if inside {
			first++
		}
	}
	second := 0
	for _, inside := range seq {
		if inside {
			second++
		}
	}
	if first != second {
		t.Fatalf("second pass saw %d in-string bytes, first saw %d", second, first)
	}
}

func TestStateStringRunMatchesContentLength(t *testing.T) {
	// The bytes between the delimiters of "it's \"fine\"" are all content,
	// including the escaped quotes.
	const input = `"it's \"fine\""`
	const content = `it's \"fine\"`

	count := 0
	for _, inside := range Scan(input, JSONQuotes) {
		if inside {
			count++
		}
	}
	if count != len(content) {
		t.Fatalf("in-string count = %d, want %d", count, len(content))
	}
}

func TestIndexSkipsMatchesInsideStrings(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		substr string
		quotes string
		from   int
		want   int
	}{
		{name: "semicolon inside literal", input: `t('a;b');`, substr: ";", quotes: ScriptQuotes, want: 8},
		{name: "no match outside", input: `'all ; inside'`, substr: ";", quotes: ScriptQuotes, want: -1},
		{name: "from offset", input: `a;b;c`, substr: ";", quotes: ScriptQuotes, from: 2, want: 3},
		{name: "escaped quote does not close", input: `'a\';' ;`, substr: ";", quotes: ScriptQuotes, want: 7},
		{name: "empty substr", input: `abc`, substr: "", quotes: ScriptQuotes, want: -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Index(tc.input, tc.substr, tc.quotes, tc.from); got != tc.want {
				t.Fatalf("Index(%q, %q, from=%d) = %d, want %d", tc.input, tc.substr, tc.from, got, tc.want)
			}
		})
	}
}
