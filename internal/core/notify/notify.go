// Package notify defines the notification value type shared by the toast
// center and the console printer.
package notify

import "time"

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// ParseLevel maps s to a known Level. Unrecognized values fall back to
// LevelInfo.
func ParseLevel(s string) Level {
	switch Level(s) {
	case LevelSuccess:
		return LevelSuccess
	case LevelError:
		return LevelError
	default:
		return LevelInfo
	}
}

// Notification is a single feedback message. It is never modified after it
// has been shown.
type Notification struct {
	ID        int64
	Level     Level
	Message   string
	CreatedAt time.Time
}
