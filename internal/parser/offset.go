package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Offset phrases: an explicit lead time like "за 15 минут" or a composite
// duration like "через 1 час 30 минут". The inner capture group holds the
// semantic span so only it gets deleted; the outer guards stand in for word
// boundaries, which RE2 cannot express for Cyrillic.
var (
	reOffsetHours = regexp.MustCompile(
		`(?:^|[^\p{L}\d])((?:за|через)\s+(\d+)\s*час(?:а|ов)?(?:\s+(\d+)\s*мин(?:ут)?)?)(?:$|[^\p{L}])`)
	reOffsetMinutes = regexp.MustCompile(
		`(?:^|[^\p{L}\d])((?:за|через)\s+(?:(\d+)\s*)?мин(?:ут[уы]?)?)(?:$|[^\p{L}])`)
)

// extractOffset detects an explicit relative-duration phrase, returning the
// offset in minutes and the text with the matched span removed. The composite
// hours pattern is tried first; a minutes phrase without a numeral ("через
// минуту") counts as one minute. The span is deleted so later date extraction
// cannot pick it up again.
func extractOffset(text string) (minutes int, rest string, ok bool) {
	if m := reOffsetHours.FindStringSubmatchIndex(text); m != nil {
		hours, _ := strconv.Atoi(text[m[4]:m[5]])
		mins := 0
		if m[6] >= 0 {
			mins, _ = strconv.Atoi(text[m[6]:m[7]])
		}
		return hours*60 + mins, cutSpan(text, m[2], m[3]), true
	}
	if m := reOffsetMinutes.FindStringSubmatchIndex(text); m != nil {
		mins := 1
		if m[4] >= 0 {
			mins, _ = strconv.Atoi(text[m[4]:m[5]])
		}
		return mins, cutSpan(text, m[2], m[3]), true
	}
	return 0, text, false
}

// cutSpan removes s[start:end] and collapses the whitespace around the seam
// so neighbouring words neither merge nor drift apart.
func cutSpan(s string, start, end int) string {
	return strings.Join(strings.Fields(s[:start]+" "+s[end:]), " ")
}
