// Package notify defines the status notifications shown by the TUI.
package notify

import (
	"fmt"
	"time"
)

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification represents a single notification event.
type Notification struct {
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Info returns an info notification stamped with the current time.
func Info(format string, args ...any) Notification {
	return newNotification(LevelInfo, format, args...)
}

// Warn returns a warning notification stamped with the current time.
func Warn(format string, args ...any) Notification {
	return newNotification(LevelWarning, format, args...)
}

// Error returns an error notification stamped with the current time.
func Error(format string, args ...any) Notification {
	return newNotification(LevelError, format, args...)
}

func newNotification(level Level, format string, args ...any) Notification {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return Notification{Level: level, Message: msg, CreatedAt: time.Now()}
}
