package dates

import (
	"testing"
	"time"

	"github.com/taskbot-app/taskbot/internal/parser"
)

// Monday morning.
var ref = time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)

func TestSearchDayOnlyPhraseIsMidnight(t *testing.T) {
	p := New()
	matches := p.Search("купить молоко завтра", ref)
	if len(matches) == 0 {
		t.Fatal("expected a match for завтра")
	}
	got := matches[0].Time
	if got.Day() != 6 {
		t.Errorf("day = %d, want 6", got.Day())
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("clock = %02d:%02d, want midnight for a day-only phrase", got.Hour(), got.Minute())
	}
}

func TestSearchKeepsExplicitClock(t *testing.T) {
	p := New()
	matches := p.Search("встреча завтра в 15:30", ref)
	if len(matches) == 0 {
		t.Fatal("expected a match")
	}
	got := matches[0].Time
	if got.Day() != 6 || got.Hour() != 15 || got.Minute() != 30 {
		t.Errorf("got %v, want Jan 6 15:30", got)
	}
}

func TestSearchNoDate(t *testing.T) {
	p := New()
	if matches := p.Search("просто список покупок", ref); len(matches) != 0 {
		t.Errorf("unexpected matches: %v", matches)
	}
}

func TestParseWhole(t *testing.T) {
	p := New()
	got, ok := p.Parse("завтра", ref)
	if !ok {
		t.Fatal("expected завтра to parse")
	}
	if got.Day() != 6 || got.Month() != time.January {
		t.Errorf("got %v, want Jan 6", got)
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("clock = %02d:%02d, want midnight for a day-only phrase", got.Hour(), got.Minute())
	}
}

func TestParseWholeNoDate(t *testing.T) {
	p := New()
	if _, ok := p.Parse("ничего похожего на дату", ref); ok {
		t.Error("expected no parse")
	}
}

// The checks below run the full pipeline against the real provider instead
// of canned matches, pinning down the contract between the two: a bare date
// resolves to 09:00, an explicit clock survives untouched.

func newPipeline() *parser.Parser {
	return parser.NewWithClock(New(), func() time.Time { return ref })
}

func TestPipelineDateOnlyDefaultsToMorning(t *testing.T) {
	p := newPipeline()
	parsed := p.Parse("Купить молоко в субботу")
	if parsed.EventAt == nil {
		t.Fatal("expected an event time")
	}
	want := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	if !parsed.EventAt.Equal(want) {
		t.Errorf("event at %v, want %v", parsed.EventAt, want)
	}
	if parsed.RemindAt == nil || !parsed.RemindAt.Equal(want) {
		t.Errorf("remind at %v, want %v", parsed.RemindAt, want)
	}
	if parsed.Category != parser.CategoryTask {
		t.Errorf("category = %q, want %q", parsed.Category, parser.CategoryTask)
	}
	if parsed.Text != "Купить молоко" {
		t.Errorf("text = %q, want %q", parsed.Text, "Купить молоко")
	}
}

func TestPipelineSameWeekdayRollsAWeek(t *testing.T) {
	p := newPipeline()
	parsed := p.Parse("Напомни в понедельник сдать отчёт")
	if parsed.EventAt == nil {
		t.Fatal("expected an event time")
	}
	want := time.Date(2026, time.January, 12, 9, 0, 0, 0, time.UTC)
	if !parsed.EventAt.Equal(want) {
		t.Errorf("event at %v, want %v", parsed.EventAt, want)
	}
	if parsed.Text != "Сдать отчёт" {
		t.Errorf("text = %q, want %q", parsed.Text, "Сдать отчёт")
	}
}
