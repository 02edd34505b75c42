package utils

import (
	"fmt"
	"os"
	"time"
)

// MessageType is a custom type used as a placeholder for various message types.
type MessageType int

// The message types used across the CLI application.
const (
	DefaultMessage MessageType = iota
	SuccessMessage
	ErrorMessage
	StatusMessage
)

// Colors used across the CLI application.
const (
	DefaultColor = "\x1b[0m"
	StatusColor  = "\x1b[36m"
	SuccessColor = "\x1b[32m"
	ErrorColor   = "\x1b[31m"
)

// noColor is set when the NO_COLOR convention asks for plain output.
var noColor = os.Getenv("NO_COLOR") != ""

// DecorateText shows the message types in different colors.
func DecorateText(s string, msgType MessageType) string {
	if noColor {
		return s
	}
	switch msgType {
	case DefaultMessage:
		s = DefaultColor + s
	case StatusMessage:
		s = StatusColor + s
	case SuccessMessage:
		s = SuccessColor + s
	case ErrorMessage:
		s = ErrorColor + s
	default:
		return s
	}
	return s + DefaultColor
}

// FormatTime formats time.Duration output to a human readable value.
func FormatTime(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d < time.Hour:
		m := d.Truncate(time.Minute)
		return fmt.Sprintf("%dm %.2fs", int64(d.Minutes()), (d - m).Seconds())
	}
	h := d.Truncate(time.Hour)
	m := (d - h).Truncate(time.Minute)
	return fmt.Sprintf("%dh %dm %.2fs", int64(d.Hours()), int64(m.Minutes()), (d - h - m).Seconds())
}
