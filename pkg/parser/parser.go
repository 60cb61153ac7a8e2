// Package parser extracts a sentiment label and emotion scores from the
// free-form text completion returned by the generative model. The model is
// prompted to answer in a loose "SENTIMENT: x" / "Happiness=20" shape, but
// nothing guarantees it, so every extraction degrades to a default instead
// of failing.
package parser

import "strings"

// Label returns the trimmed remainder of the line that follows the first
// occurrence of prefix. The second return value is false when the prefix does
// not appear; callers substitute their own default. The search is
// case-sensitive and only the first occurrence counts.
func Label(text, prefix string) (string, bool) {
	idx := strings.Index(text, prefix)
	if idx < 0 {
		return "", false
	}

	rest := text[idx+len(prefix):]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}

	return strings.TrimSpace(rest), true
}

// Score returns the integer value that follows the first occurrence of label,
// allowing optional separators ('=', ':', whitespace) between the label and
// the digits. Scanning is bounded to the span between the label and the first
// newline or comma, so "Happiness=42, Sadness=3" yields 42 for "Happiness".
// Returns 0 when the label is absent or no digits follow it.
//
// The label match is a plain substring search. A label embedded in a longer
// word matches too; the upstream prompt keeps labels unambiguous enough that
// stricter tokenization has not been needed.
func Score(text, label string) int {
	idx := strings.Index(text, label)
	if idx < 0 {
		return 0
	}

	span := text[idx+len(label):]
	if end := strings.IndexAny(span, "\n,"); end >= 0 {
		span = span[:end]
	}

	pos := 0
	for pos < len(span) && isSeparator(span[pos]) {
		pos++
	}

	value := 0
	found := false
	for pos < len(span) && span[pos] >= '0' && span[pos] <= '9' {
		value = value*10 + int(span[pos]-'0')
		found = true
		pos++
	}
	if !found {
		return 0
	}

	return value
}

func isSeparator(c byte) bool {
	switch c {
	case '=', ':', ' ', '\t', '\r':
		return true
	}
	return false
}
