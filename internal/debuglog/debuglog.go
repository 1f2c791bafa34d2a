// Package debuglog writes JSON-lines event logs for troubleshooting gestures.
package debuglog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// DefaultPath is the fixed path for debug logs (easy to find).
const DefaultPath = "rota-debug.log"

// Fields holds structured log data.
type Fields map[string]any

// Logger writes one JSON object per event. A nil or disabled Logger is a no-op.
type Logger struct {
	mu      sync.Mutex
	w       io.Writer
	closer  io.Closer
	enabled bool
	seq     int
	now     func() time.Time
}

// Disabled returns a logger that drops everything.
func Disabled() *Logger {
	return &Logger{}
}

// New returns a logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{w: w, enabled: true, now: time.Now}
}

// Open creates (truncating) the log file at path.
func Open(path string) (*Logger, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating debug log: %w", err)
	}
	l := New(f)
	l.closer = f
	l.Log("DEBUG_START", Fields{
		"log_file": path,
		"time":     time.Now().Format(time.RFC3339),
	})
	return l, nil
}

// Enabled reports whether entries are written.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}

// Log writes a structured log entry.
func (l *Logger) Log(event string, data Fields) {
	if !l.Enabled() || l.w == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	entry := map[string]any{
		"seq":   l.seq,
		"ts":    l.now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(l.w, "%s\n", b)
}

// Close flushes the end marker and closes the underlying file, if any.
func (l *Logger) Close() error {
	if !l.Enabled() || l.closer == nil {
		return nil
	}
	l.Log("DEBUG_END", Fields{"time": time.Now().Format(time.RFC3339)})
	return l.closer.Close()
}
