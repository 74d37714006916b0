// Package testutil provides common test utilities for sitecast.
package testutil

import (
	"sync"

	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/logging"
)

// MockLogger implements logging.Logger and records every entry so tests can
// assert on emitted warnings, such as the forecast engine's unknown-method
// fallback.
type MockLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// LogEntry is a single captured log record.
type LogEntry struct {
	Level   string
	Message string
	Fields  []logging.Field
}

// NewMockLogger creates an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) log(level, msg string, fields []logging.Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, LogEntry{Level: level, Message: msg, Fields: fields})
}

func (m *MockLogger) Debug(msg string, fields ...logging.Field) { m.log("debug", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...logging.Field)  { m.log("info", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...logging.Field)  { m.log("warn", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...logging.Field) { m.log("error", msg, fields) }
func (m *MockLogger) Fatal(msg string, fields ...logging.Field) { m.log("fatal", msg, fields) }

// With returns the same recorder; field chaining is not tracked.
func (m *MockLogger) With(fields ...logging.Field) logging.Logger { return m }

// Named returns the same recorder.
func (m *MockLogger) Named(name string) logging.Logger { return m }

// Entries returns a copy of everything logged so far.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LogEntry(nil), m.entries...)
}

// EntriesAt returns the captured entries with the given level.
func (m *MockLogger) EntriesAt(level string) []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []LogEntry
	for _, e := range m.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// HasMessage reports whether any entry carries the exact message.
func (m *MockLogger) HasMessage(msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.Message == msg {
			return true
		}
	}
	return false
}

// Reset discards captured entries.
func (m *MockLogger) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
}
