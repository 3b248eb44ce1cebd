package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// reClock matches an explicit clock reference: an optional "в", an hour with
// optional minutes ("9", "09:30", "9 30"), and an optional meridiem or
// o'clock qualifier. Group 1 is the span removed from the working text,
// groups 2–4 hour, minutes and qualifier.
var reClock = regexp.MustCompile(
	`((?:(?:^|[^\p{L}\d])в\s+)?(\d{1,2})(?:[:\s]?(\d{2}))?\s*(утра|вечера|дня|ночи|часов|часа|час)?)(?:$|[^\p{L}])`)

// extractExplicit recognizes a day keyword (сегодня/завтра/послезавтра)
// combined with an explicit clock time and resolves it to a concrete moment.
// With no day keyword the time resolves to its nearest future occurrence.
// Malformed or out-of-range values yield no match rather than an error, and
// the text is returned untouched.
func extractExplicit(text string, now time.Time) (time.Time, string, bool) {
	dayOffset := -1
	switch {
	case containsWord(text, "завтра"):
		dayOffset = 1
	case containsWord(text, "сегодня"):
		dayOffset = 0
	case containsWord(text, "послезавтра"):
		dayOffset = 2
	}

	m := reClock.FindStringSubmatchIndex(text)
	if m == nil {
		return time.Time{}, text, false
	}

	hour, err := strconv.Atoi(text[m[4]:m[5]])
	if err != nil || hour > 23 {
		return time.Time{}, text, false
	}
	minute := 0
	if m[6] >= 0 {
		minute, err = strconv.Atoi(text[m[6]:m[7]])
		if err != nil || minute > 59 {
			return time.Time{}, text, false
		}
	}

	if m[8] >= 0 {
		hour = meridiemHour(hour, text[m[8]:m[9]])
	}

	var event time.Time
	if dayOffset >= 0 {
		base := midnight(now).AddDate(0, 0, dayOffset)
		event = time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, base.Location())
	} else {
		// No day keyword: nearest future occurrence of this clock time.
		event = time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if !event.After(now) {
			event = event.AddDate(0, 0, 1)
		}
	}

	// Group 1 may include the leading "в" and its guard character; dropping
	// the whole span keeps the preposition out of the title.
	return event, cutSpan(text, m[2], m[3]), true
}

// meridiemHour normalizes a 12-hour reference: an afternoon, evening or night
// qualifier shifts hours 1..11 into the second half of the day. Morning and
// bare o'clock qualifiers leave the hour as spoken.
func meridiemHour(hour int, qualifier string) int {
	switch qualifier {
	case "дня", "вечера", "ночи":
		if hour >= 1 && hour <= 11 {
			return hour + 12
		}
	}
	return hour
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// removeFold deletes the first occurrence of sub from s, ignoring case
// differences a date provider may introduce.
func removeFold(s, sub string) string {
	i := strings.Index(s, sub)
	if i < 0 {
		i = strings.Index(s, strings.ToLower(sub))
		if i < 0 {
			return s
		}
		sub = strings.ToLower(sub)
	}
	return cutSpan(s, i, i+len(sub))
}
