package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
)

func newTestRotatingWriter(t *testing.T, when string) (*timedRotatingWriter, string, *time.Time) {
	t.Helper()
	dir := t.TempDir()
	w := newTimedRotatingWriter(&lumberjack.Logger{
		Filename:   filepath.Join(dir, "svc.log"),
		MaxBackups: 3,
	}, when)
	t.Cleanup(func() { _ = w.Close() })

	clock := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return clock }
	return w, dir, &clock
}

func logFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestTimedRotatingWriter_Boundary(t *testing.T) {
	w, _, _ := newTestRotatingWriter(t, RotateDaily)

	daily := w.boundary(time.Date(2026, 3, 14, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), daily)

	w.when = RotateHourly
	hourly := w.boundary(time.Date(2026, 3, 14, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC), hourly)
}

func TestTimedRotatingWriter_RotatesOnDayChange(t *testing.T) {
	w, dir, clock := newTestRotatingWriter(t, RotateDaily)

	_, err := w.Write([]byte("day one\n"))
	require.NoError(t, err)
	require.Len(t, logFiles(t, dir), 1)

	// Same day: no rotation.
	*clock = clock.Add(6 * time.Hour)
	_, err = w.Write([]byte("still day one\n"))
	require.NoError(t, err)
	require.Len(t, logFiles(t, dir), 1)

	// Past midnight: first write rotates.
	*clock = clock.Add(24 * time.Hour)
	_, err = w.Write([]byte("day two\n"))
	require.NoError(t, err)
	assert.Len(t, logFiles(t, dir), 2)

	data, err := os.ReadFile(filepath.Join(dir, "svc.log"))
	require.NoError(t, err)
	assert.Equal(t, "day two\n", string(data))
}

func TestTimedRotatingWriter_RotatesHourly(t *testing.T) {
	w, dir, clock := newTestRotatingWriter(t, RotateHourly)

	_, err := w.Write([]byte("nine o'clock\n"))
	require.NoError(t, err)

	*clock = clock.Add(time.Hour)
	_, err = w.Write([]byte("ten o'clock\n"))
	require.NoError(t, err)

	assert.Len(t, logFiles(t, dir), 2)
}
