// Package parser turns a free-form Russian sentence into a structured task:
// a category, an event timestamp, an optional relative reminder offset, the
// derived reminder timestamp and a cleaned title.
//
// The pipeline is pure and stateless: normalization, category classification
// and offset extraction always run, then the temporal stages short-circuit in
// a fixed order: explicit day/clock constructs first, then fuzzy phrase
// search through the injected DateProvider, then a whole-string fallback
// parse. The stage order is a deliberate tie-break policy between
// overlapping patterns and must not be reordered. No stage ever fails outward; anything malformed degrades to "no
// match" and a ParsedTask without timestamps tells the caller no time could
// be determined.
//
// All lookup tables are read-only and every call is independent, so a Parser
// is safe for concurrent use. The only non-pure input is a single wall-clock
// sample per call, injectable for tests.
package parser

import (
	"regexp"
	"strings"
	"time"
)

// Category classifies what kind of entry the user is creating.
type Category string

const (
	CategoryReminder Category = "reminder"
	CategoryTask     Category = "task"
	CategoryEvent    Category = "event"
)

// ParsedTask is the result of parsing one message. EventAt is never nil when
// RemindAt is set: with no explicit event time it falls back to the reminder
// time so consumers always have a displayable moment.
type ParsedTask struct {
	Text                  string
	Category              Category
	EventAt               *time.Time
	RemindAt              *time.Time
	ReminderOffsetMinutes *int
}

// Match is one date/time phrase found inside running text.
type Match struct {
	Text string
	Time time.Time
}

// DateProvider is the external date-parsing capability consumed by the fuzzy
// stages. Search scans text for embedded date/time phrases, most confident
// first; Parse attempts to read the entire string as a single expression.
// Implementations should prefer future dates and resolve relative phrases
// against now.
type DateProvider interface {
	Search(text string, now time.Time) []Match
	Parse(text string, now time.Time) (time.Time, bool)
}

// Parser runs the extraction pipeline. Zero-value is not usable; construct
// with New.
type Parser struct {
	dates DateProvider
	now   func() time.Time
}

// New returns a parser backed by the given date provider, sampling the wall
// clock once per call.
func New(dates DateProvider) *Parser {
	return NewWithClock(dates, time.Now)
}

// NewWithClock fixes the clock source; with a constant now, Parse is a pure
// function of its input.
func NewWithClock(dates DateProvider, now func() time.Time) *Parser {
	return &Parser{dates: dates, now: now}
}

// Now reports the parser's current time, honoring an injected clock.
func (p *Parser) Now() time.Time {
	return p.now()
}

// Parse extracts a task description from one message.
func (p *Parser) Parse(text string) ParsedTask {
	original := strings.TrimSpace(text)
	now := p.now()

	clean := normalize(original)
	category := detectCategory(clean)

	for _, trigger := range triggerWords {
		clean = strings.TrimSpace(strings.ReplaceAll(clean, trigger, ""))
	}

	clean = foldNumberWords(clean)

	var offset *int
	if minutes, rest, ok := extractOffset(clean); ok {
		offset = &minutes
		clean = rest
	}

	var eventAt *time.Time
	if dt, rest, ok := extractExplicit(clean, now); ok {
		eventAt = &dt
		clean = rest
	}
	if eventAt == nil {
		if dt, rest, ok := p.searchDates(clean, now); ok {
			eventAt = &dt
			clean = rest
		}
	}
	if eventAt == nil {
		if dt, ok := p.parseWhole(clean, now); ok {
			eventAt = &dt
		}
	}

	var remindAt *time.Time
	switch {
	case offset != nil && eventAt == nil:
		// Offset with no event phrase is relative to the moment of parsing.
		t := now.Add(time.Duration(*offset) * time.Minute)
		remindAt = &t
	case offset != nil:
		t := eventAt.Add(-time.Duration(*offset) * time.Minute)
		remindAt = &t
	default:
		remindAt = eventAt
	}

	if eventAt == nil {
		eventAt = remindAt
	}

	title := extractTitle(clean)
	if title == "" {
		title = original
	}

	return ParsedTask{
		Text:                  capitalize(title),
		Category:              category,
		EventAt:               eventAt,
		RemindAt:              remindAt,
		ReminderOffsetMinutes: offset,
	}
}

// IsReminderRequest reports whether the message contains a trigger word.
// Callers use it to decide between parsing and ordinary conversation.
func IsReminderRequest(text string) bool {
	lower := strings.ToLower(text)
	for _, trigger := range triggerWords {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}

func detectCategory(text string) Category {
	for _, w := range eventWords {
		if strings.Contains(text, w) {
			return CategoryEvent
		}
	}
	for _, w := range taskWords {
		if strings.Contains(text, w) {
			return CategoryTask
		}
	}
	return CategoryReminder
}

// reTimeToken detects an explicit clock reference inside a matched date
// phrase. Its absence means the user gave a bare date, which resolves to the
// default 09:00.
var reTimeToken = regexp.MustCompile(`\d{1,2}[:\s]?\d{2}|\d{1,2}\s*(?:часов|часа|час|утра|вечера|дня|ночи)`)

// defaultMorning is the "unspecified time of day" convention.
const defaultMorningHour = 9

// searchDates runs the fuzzy phrase search. Only the provider's head result
// is used; a midnight result with no explicit time token in the matched
// phrase is shifted to 09:00, and the matched substring is deleted from the
// working text so it cannot leak into the title.
func (p *Parser) searchDates(text string, now time.Time) (time.Time, string, bool) {
	matches := p.dates.Search(text, now)
	if len(matches) == 0 {
		return time.Time{}, text, false
	}
	head := matches[0]
	dt := head.Time
	if dt.Hour() == 0 && dt.Minute() == 0 && !reTimeToken.MatchString(strings.ToLower(head.Text)) {
		dt = time.Date(dt.Year(), dt.Month(), dt.Day(), defaultMorningHour, 0, 0, 0, dt.Location())
	}
	return dt, removeFold(text, head.Text), true
}

// parseWhole interprets the entire remaining text as one date expression.
// Besides the midnight rule, a result within two minutes of now with no
// explicit time token is treated as the provider defaulting to the current
// moment and is shifted to 09:00 on the same day.
func (p *Parser) parseWhole(text string, now time.Time) (time.Time, bool) {
	dt, ok := p.dates.Parse(text, now)
	if !ok {
		return time.Time{}, false
	}
	explicitTime := reTimeToken.MatchString(text)
	midnightResult := dt.Hour() == 0 && dt.Minute() == 0
	closeToNow := dt.Sub(now).Abs() < 2*time.Minute
	if !explicitTime && (midnightResult || closeToNow) {
		dt = time.Date(dt.Year(), dt.Month(), dt.Day(), defaultMorningHour, 0, 0, 0, dt.Location())
	}
	return dt, true
}
