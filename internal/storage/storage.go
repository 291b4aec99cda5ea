package storage

import (
	"fmt"
	"time"
)

// TimeLayout is the timestamp format used in log entries and on the console.
const TimeLayout = "2006/01/02 15:04:05"

const separator = " : "

// Entry is one received message with its receipt time.
type Entry struct {
	ID      string
	Time    time.Time
	Message string
}

// Storage is the interface for persisting received messages.
// Append must not return before the entry is durable.
type Storage interface {
	Append(entry Entry) error
}

// LogWriteError is returned when an entry could not be persisted.
type LogWriteError struct {
	Path string
	Err  error
}

func (e *LogWriteError) Error() string {
	return fmt.Sprintf("log write %s: %v", e.Path, e.Err)
}

func (e *LogWriteError) Unwrap() error { return e.Err }
