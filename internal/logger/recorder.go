package logger

import (
	"fmt"
	"strings"
	"sync"
)

// Entry is one recorded message
type Entry struct {
	Level   LogLevel
	Message string
}

// Recorder is a Sink that keeps formatted messages in memory. It is meant for
// tests and for hosts that forward diagnostics elsewhere.
type Recorder struct {
	mu      sync.Mutex
	level   LogLevel
	entries []Entry
}

var _ Sink = (*Recorder)(nil)

// NewRecorder records messages at level and above
func NewRecorder(level LogLevel) *Recorder {
	return &Recorder{level: level}
}

func (r *Recorder) Debug(format string, args ...any) { r.record(DebugLevel, format, args) }

func (r *Recorder) Info(format string, args ...any) { r.record(InfoLevel, format, args) }

func (r *Recorder) Warn(format string, args ...any) { r.record(WarnLevel, format, args) }

func (r *Recorder) Error(format string, args ...any) { r.record(ErrorLevel, format, args) }

func (r *Recorder) IsDebugEnabled() bool { return r.enabled(DebugLevel) }

func (r *Recorder) IsInfoEnabled() bool { return r.enabled(InfoLevel) }

func (r *Recorder) IsWarnEnabled() bool { return r.enabled(WarnLevel) }

func (r *Recorder) IsErrorEnabled() bool { return r.enabled(ErrorLevel) }

// Entries returns a copy of everything recorded so far
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Messages returns the recorded messages of one level
func (r *Recorder) Messages(level LogLevel) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Contains reports whether a message at level contains substr
func (r *Recorder) Contains(level LogLevel, substr string) bool {
	for _, msg := range r.Messages(level) {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

func (r *Recorder) record(level LogLevel, format string, args []any) {
	if !r.enabled(level) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (r *Recorder) enabled(level LogLevel) bool {
	return rank(level) >= rank(r.level)
}

func rank(level LogLevel) int {
	switch level {
	case DebugLevel:
		return 0
	case InfoLevel:
		return 1
	case WarnLevel:
		return 2
	default:
		return 3
	}
}
