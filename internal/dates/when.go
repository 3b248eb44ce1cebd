// Package dates resolves free-form Russian date phrases to points in time.
package dates

import (
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/ru"

	"github.com/taskbot-app/taskbot/internal/parser"
)

// Provider wraps the when parser with Russian and common rules.
// A zero Provider is not usable, construct it with New.
type Provider struct {
	w *when.Parser
}

func New() *Provider {
	w := when.New(nil)
	w.Add(ru.All...)
	w.Add(common.All...)
	return &Provider{w: w}
}

// reClock matches an explicit clock reference inside a date phrase.
var reClock = regexp.MustCompile(`\d{1,2}[:\s]?\d{2}|\d{1,2}\s*(?:часов|часа|час|утра|вечера|дня|ночи)`)

// dayOnly reports whether the phrase named a calendar day without a clock.
// Day-level rules (завтра, weekdays, month dates) shift whole days and keep
// the base clock, so an unchanged clock with no clock token means no time
// rule fired.
func dayOnly(phrase string, dt, base time.Time) bool {
	if dt.Hour() != base.Hour() || dt.Minute() != base.Minute() {
		return false
	}
	return !reClock.MatchString(strings.ToLower(phrase))
}

func midnight(dt time.Time) time.Time {
	return time.Date(dt.Year(), dt.Month(), dt.Day(), 0, 0, 0, 0, dt.Location())
}

// Search finds date phrases inside text. The earliest match wins, which
// mirrors how people put the date next to the thing they describe. Day-only
// phrases come back at midnight so callers can tell a bare date apart from
// one carrying a clock time.
func (p *Provider) Search(text string, now time.Time) []parser.Match {
	r, err := p.w.Parse(text, now)
	if err != nil || r == nil {
		return nil
	}
	dt := r.Time
	if dayOnly(r.Text, dt, now) {
		dt = midnight(dt)
	}
	return []parser.Match{{Text: strings.TrimSpace(r.Text), Time: dt}}
}

// Parse interprets the whole text as a single date expression. Day-only
// expressions come back at midnight, same as Search.
func (p *Provider) Parse(text string, now time.Time) (time.Time, bool) {
	r, err := p.w.Parse(text, now)
	if err != nil || r == nil {
		return time.Time{}, false
	}
	dt := r.Time
	if dayOnly(r.Text, dt, now) {
		dt = midnight(dt)
	}
	return dt, true
}
