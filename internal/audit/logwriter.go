package audit

import (
	"context"
	"errors"
	"log"
	"time"
)

// LogWriter emits audit entries to the application log. Used when no
// database is configured so mutations still leave a trace.
type LogWriter struct {
	logger *log.Logger
}

// NewLogWriter constructs a log-backed audit writer.
func NewLogWriter(logger *log.Logger) *LogWriter {
	if logger == nil {
		return nil
	}
	return &LogWriter{logger: logger}
}

// Log writes one entry as a single log line.
func (w *LogWriter) Log(_ context.Context, entry Entry) error {
	if w == nil || w.logger == nil {
		return errors.New("audit logwriter: nil logger")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	w.logger.Printf("audit action=%s resource=%s/%s actor=%s role=%s ip=%s",
		entry.Action, entry.ResourceType, entry.ResourceID, entry.Actor, entry.Role, entry.IP)
	return nil
}
