package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// extractTitle scrubs residual date/time tokens from the working text,
// collapses whitespace and drops a leading preposition orphaned by span
// removal. An empty result is the caller's cue to fall back to the original
// input.
func extractTitle(text string) string {
	result := text
	for _, re := range timePatterns {
		result = re.ReplaceAllString(result, "")
	}
	result = strings.Join(strings.Fields(result), " ")
	result = reLeadingPreposition.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// capitalize uppercases the first rune for display.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
