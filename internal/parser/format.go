package parser

import (
	"fmt"
	"time"
)

// FormatDatetime renders a timestamp for display: "сегодня в 15:00",
// "завтра в 09:30", otherwise day plus genitive month name.
func (p *Parser) FormatDatetime(t time.Time) string {
	return formatDatetime(t, p.now())
}

func formatDatetime(t, now time.Time) string {
	clock := t.Format("15:04")
	day := midnight(t)
	today := midnight(now)

	switch {
	case day.Equal(today):
		return "сегодня в " + clock
	case day.Equal(today.AddDate(0, 0, 1)):
		return "завтра в " + clock
	}
	return fmt.Sprintf("%d %s в %s", t.Day(), monthNames[t.Month()-1], clock)
}
