package events

import (
	"sync"
)

// Log is the process-wide append-only event sequence. Entries are addressed
// by their index in append order; the log never shrinks or compacts.
type Log struct {
	mu      sync.Mutex
	entries []Event
}

func NewLog() *Log {
	return &Log{}
}

// Append adds the event at the end of the log and returns the log length
// after the append.
func (l *Log) Append(event Event) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, event)
	return len(l.entries)
}

// ReadFrom returns a copy of every event with index >= cursor without
// blocking. Reads take the append lock so a concurrent append can never
// expose a torn entry.
func (l *Log) ReadFrom(cursor int) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cursor < 0 {
		cursor = 0
	}
	if cursor >= len(l.entries) {
		return nil
	}

	unseen := make([]Event, len(l.entries)-cursor)
	copy(unseen, l.entries[cursor:])
	return unseen
}

// Len is the current log length, used as the starting cursor by subscribers
// that only want future events.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
