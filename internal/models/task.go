package models

import "time"

// Task categories as detected from the message text.
const (
	CategoryTask     = "task"
	CategoryEvent    = "event"
	CategoryReminder = "reminder"
)

type Task struct {
	TaskID                int        `json:"task_id"`
	UserID                int64      `json:"user_id"`
	Text                  string     `json:"text"`
	Category              string     `json:"category"`
	EventAt               *time.Time `json:"event_at"`   // When the event or task is due
	RemindAt              *time.Time `json:"remind_at"`  // When to send the notification
	ReminderOffsetMinutes *int       `json:"reminder_offset_minutes"`
	Completed             bool       `json:"completed"`
	Notified              bool       `json:"notified"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// CategoryEmoji returns the marker used in lists and notifications.
func (t *Task) CategoryEmoji() string {
	switch t.Category {
	case CategoryReminder:
		return "🔔"
	case CategoryEvent:
		return "📅"
	default:
		return "✅"
	}
}
