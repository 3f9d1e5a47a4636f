package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrorEntry is one line of the durable error log. Body must already be redacted.
type ErrorEntry struct {
	Timestamp time.Time           `json:"timestamp"`
	TraceID   string              `json:"traceId,omitempty"`
	Method    string              `json:"method"`
	FullURL   string              `json:"fullUrl"`
	Params    map[string]string   `json:"params,omitempty"`
	Query     map[string][]string `json:"query,omitempty"`
	IP        string              `json:"ip"`
	UserAgent string              `json:"userAgent,omitempty"`
	Body      json.RawMessage     `json:"body,omitempty"`
	Status    int                 `json:"status"`
	Response  string              `json:"response,omitempty"`
	Error     string              `json:"error,omitempty"`
	Stack     string              `json:"stack,omitempty"`
}

// ErrorLog appends ErrorEntry values as JSON lines. A nil *ErrorLog discards
// everything, which is how the sink is disabled.
type ErrorLog struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
}

// NewErrorLog writes entries to w.
func NewErrorLog(w io.Writer) *ErrorLog {
	return &ErrorLog{w: w}
}

// OpenErrorLog opens (creating directories as needed) the file at path in append mode.
// An empty path returns a nil *ErrorLog.
func OpenErrorLog(path string) (*ErrorLog, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create error log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("failed to open error log %s: %w", path, err)
	}
	return &ErrorLog{w: f, closer: f}, nil
}

// Write appends entry as a single JSON line. Concurrent calls are serialized.
func (l *ErrorLog) Write(entry ErrorEntry) error {
	if l == nil {
		return nil
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode error log entry: %w", err)
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.w.Write(line); err != nil {
		return fmt.Errorf("failed to write error log entry: %w", err)
	}
	return nil
}

// Close releases the underlying file, if any.
func (l *ErrorLog) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
