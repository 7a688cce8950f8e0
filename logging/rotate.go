package logging

import (
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// timedRotatingWriter wraps a lumberjack logger and forces a rotation on
// the first write past a time boundary (daily or hourly). lumberjack
// owns file handling, backup naming and retention; this wrapper only
// supplies the time trigger.
type timedRotatingWriter struct {
	mu      sync.Mutex
	file    *lumberjack.Logger
	when    string
	current time.Time
	now     func() time.Time
}

func newTimedRotatingWriter(file *lumberjack.Logger, when string) *timedRotatingWriter {
	return &timedRotatingWriter{
		file: file,
		when: when,
		now:  time.Now,
	}
}

// boundary truncates t to the start of its rotation window.
func (w *timedRotatingWriter) boundary(t time.Time) time.Time {
	switch w.when {
	case RotateHourly:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

func (w *timedRotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	boundary := w.boundary(w.now())
	if w.current.IsZero() {
		w.current = boundary
	} else if boundary.After(w.current) {
		// Rotation failure must not lose the record; keep writing to
		// the current file and retry at the next boundary crossing.
		if err := w.file.Rotate(); err == nil {
			w.current = boundary
		}
	}
	return w.file.Write(p)
}

func (w *timedRotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
