package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/gzhole/mcpfsbridge/internal/redact"
)

// defaultMaxLogBytes is the file size at which the log is rotated.
const defaultMaxLogBytes = 10 * 1024 * 1024

// Logger is a JSONL sink for Events, rotating at a byte threshold and
// redacting secrets before each write.
type Logger struct {
	path        string
	file        *os.File
	maxBytes    int64
	mu          sync.Mutex
}

// Option configures a Logger at construction.
type Option func(*Logger)

// WithMaxBytes overrides the rotation threshold.
func WithMaxBytes(n int64) Option {
	return func(l *Logger) { l.maxBytes = n }
}

// New opens (or creates) the log file at path for append.
func New(path string, opts ...Option) (*Logger, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}

	l := &Logger{path: path, file: file, maxBytes: defaultMaxLogBytes}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// rotateIfNeeded renames the current file to <path>.1 and opens a fresh
// file once the threshold is exceeded. Must be called with l.mu held.
func (l *Logger) rotateIfNeeded() error {
	info, err := l.file.Stat()
	if err != nil {
		return fmt.Errorf("stat audit log: %w", err)
	}
	if info.Size() < l.maxBytes {
		return nil
	}

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("close audit log before rotation: %w", err)
	}

	rotated := l.path + ".1"
	_ = os.Remove(rotated)
	if err := os.Rename(l.path, rotated); err != nil {
		return fmt.Errorf("rotate audit log: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open fresh audit log after rotation: %w", err)
	}
	l.file = f
	return nil
}

// Emit writes one event as a JSON line, redacting its reason, error, and
// metadata values so the audit trail never becomes a secret-exfiltration
// channel.
func (l *Logger) Emit(e Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.rotateIfNeeded(); err != nil {
		fmt.Fprintf(os.Stderr, "mcpfsbridge: audit log rotation failed: %v\n", err)
	}

	e.Reason = redact.Redact(e.Reason)
	e.Error = redact.Redact(e.Error)
	for k, v := range e.Metadata {
		e.Metadata[k] = redact.Redact(v)
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	data = append(data, '\n')

	_, err = l.file.Write(data)
	return err
}

// Close releases the underlying file handle.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Requested emits an OperationRequested event.
func (l *Logger) Requested(correlationID, opType, path string) error {
	e := newEvent(correlationID, OperationRequested)
	e.OpType, e.Path = opType, path
	return l.Emit(e)
}

// PolicyResult emits a PolicyEvaluated event.
func (l *Logger) PolicyResult(correlationID, opType, path string, allowed bool, reason string, compliance []string) error {
	e := newEvent(correlationID, PolicyEvaluated)
	e.OpType, e.Path, e.Allowed, e.Reason, e.Compliance = opType, path, allowed, reason, compliance
	return l.Emit(e)
}

// Completed emits an OperationCompleted event.
func (l *Logger) Completed(correlationID, opType, path string) error {
	e := newEvent(correlationID, OperationCompleted)
	e.OpType, e.Path, e.Allowed = opType, path, true
	return l.Emit(e)
}

// Failed emits an OperationFailed event.
func (l *Logger) Failed(correlationID, opType, path, errMsg string) error {
	e := newEvent(correlationID, OperationFailed)
	e.OpType, e.Path, e.Error = opType, path, errMsg
	return l.Emit(e)
}

// Violation emits a SecurityViolation event — the highest-severity variant,
// used for unicode-smuggling hits, binary-gate denials, and similar
// pre-policy rejections.
func (l *Logger) Violation(correlationID, opType, path, reason string) error {
	e := newEvent(correlationID, SecurityViolation)
	e.OpType, e.Path, e.Reason = opType, path, reason
	return l.Emit(e)
}
