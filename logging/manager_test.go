package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svcsuite/secutils/errors"
)

// fileOnlyOptions keeps test output out of the console stream.
func fileOnlyOptions(dir string) Options {
	return Options{
		Console: false,
		File:    true,
		LogDir:  dir,
		Level:   "info",
	}
}

func readLogFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name+".log"))
	require.NoError(t, err)
	return string(data)
}

func TestManager_Setup(t *testing.T) {
	t.Run("file sink end to end", func(t *testing.T) {
		dir := t.TempDir()
		m := NewManager()
		t.Cleanup(func() { _ = m.Close() })

		log, err := m.Setup("svc", "svc.main", fileOnlyOptions(dir))
		require.NoError(t, err)

		log.InfoWith().User("alice").Msg("started")

		out := readLogFile(t, dir, "svc")
		assert.Contains(t, out, "INFO")
		assert.Contains(t, out, "svc.main")
		assert.Contains(t, out, "started")
		assert.Contains(t, out, "\n  user: alice")
	})

	t.Run("empty name", func(t *testing.T) {
		m := NewManager()
		_, err := m.Setup("", "svc.main", DefaultOptions())
		require.Error(t, err)
		assert.True(t, errors.IsConfiguration(err))
		assert.Contains(t, err.Error(), errMsgEmptyName)
	})

	t.Run("invalid level", func(t *testing.T) {
		m := NewManager()
		_, err := m.Setup("svc", "svc.main", Options{Console: true, Level: "loud"})
		require.Error(t, err)
		assert.True(t, errors.IsConfiguration(err))
	})

	t.Run("invalid rotation boundary", func(t *testing.T) {
		m := NewManager()
		_, err := m.Setup("svc", "svc.main", Options{File: true, LogDir: t.TempDir(), RotateWhen: "weekly"})
		require.Error(t, err)
		assert.True(t, errors.IsConfiguration(err))
	})

	t.Run("negative backup count", func(t *testing.T) {
		m := NewManager()
		_, err := m.Setup("svc", "svc.main", Options{File: true, LogDir: t.TempDir(), BackupCount: -1})
		require.Error(t, err)
		assert.True(t, errors.IsConfiguration(err))
	})

	t.Run("log dir is a file", func(t *testing.T) {
		dir := t.TempDir()
		blocked := filepath.Join(dir, "logs")
		require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

		m := NewManager()
		_, err := m.Setup("svc", "svc.main", fileOnlyOptions(blocked))
		require.Error(t, err)
		assert.True(t, errors.IsConfiguration(err))
		assert.Contains(t, err.Error(), "not a directory")
	})

	t.Run("silent logger is valid", func(t *testing.T) {
		m := NewManager()
		t.Cleanup(func() { _ = m.Close() })

		log, err := m.Setup("quiet", "quiet.main", Options{Console: false, File: false})
		require.NoError(t, err)
		require.NotNil(t, log)

		assert.NotPanics(t, func() {
			log.InfoWith().Msg("into the void")
		})
	})
}

func TestManager_SetupIdempotent(t *testing.T) {
	dir := t.TempDir()
	m := NewManager()
	t.Cleanup(func() { _ = m.Close() })

	opts := fileOnlyOptions(dir)
	_, err := m.Setup("svc", "svc.main", opts)
	require.NoError(t, err)
	log, err := m.Setup("svc", "svc.main", opts)
	require.NoError(t, err)

	log.InfoWith().Msg("only once")

	out := readLogFile(t, dir, "svc")
	assert.Equal(t, 1, strings.Count(out, "only once"),
		"repeated setup must never duplicate sinks")
}

func TestManager_Reconfigure(t *testing.T) {
	dir := t.TempDir()
	m := NewManager()
	t.Cleanup(func() { _ = m.Close() })

	log, err := m.Setup("svc", "svc.main", fileOnlyOptions(dir))
	require.NoError(t, err)
	log.InfoWith().Msg("with file sink")

	// Drop the file sink; the handle from the first setup must follow.
	_, err = m.Setup("svc", "svc.main", Options{Console: false, File: false})
	require.NoError(t, err)
	log.InfoWith().Msg("after file sink removed")

	out := readLogFile(t, dir, "svc")
	assert.Contains(t, out, "with file sink")
	assert.NotContains(t, out, "after file sink removed")
}

func TestManager_Get(t *testing.T) {
	dir := t.TempDir()
	m := NewManager()
	t.Cleanup(func() { _ = m.Close() })

	_, ok := m.Get("svc")
	assert.False(t, ok)

	_, err := m.Setup("svc", "svc.main", fileOnlyOptions(dir))
	require.NoError(t, err)

	log, ok := m.Get("svc")
	require.True(t, ok)
	log.InfoWith().Msg("via lookup")
	assert.Contains(t, readLogFile(t, dir, "svc"), "via lookup")
}

func TestManager_SetLevel(t *testing.T) {
	dir := t.TempDir()
	m := NewManager()
	t.Cleanup(func() { _ = m.Close() })

	log, err := m.Setup("svc", "svc.main", fileOnlyOptions(dir))
	require.NoError(t, err)

	require.NoError(t, m.SetLevel("svc", "error"))
	log.InfoWith().Msg("suppressed")
	log.ErrorWith().Msg("emitted")

	out := readLogFile(t, dir, "svc")
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, "emitted")

	t.Run("aliases", func(t *testing.T) {
		require.NoError(t, m.SetLevel("svc", "warning"))
		require.NoError(t, m.SetLevel("svc", "critical"))
	})

	t.Run("unknown name", func(t *testing.T) {
		err := m.SetLevel("nope", "info")
		require.Error(t, err)
		assert.True(t, errors.IsConfiguration(err))
	})

	t.Run("unknown level", func(t *testing.T) {
		err := m.SetLevel("svc", "loud")
		require.Error(t, err)
		assert.True(t, errors.IsConfiguration(err))
	})
}

func TestManager_Close(t *testing.T) {
	dir := t.TempDir()
	m := NewManager()

	log, err := m.Setup("svc", "svc.main", fileOnlyOptions(dir))
	require.NoError(t, err)
	log.InfoWith().Msg("before close")

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	assert.NotPanics(t, func() {
		log.InfoWith().Msg("after close")
	})
	out := readLogFile(t, dir, "svc")
	assert.Contains(t, out, "before close")
	assert.NotContains(t, out, "after close")
}

func TestManager_ConcurrentSetupSameName(t *testing.T) {
	dir := t.TempDir()
	m := NewManager()
	t.Cleanup(func() { _ = m.Close() })

	const goroutines = 20
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			_, err := m.Setup("svc", "svc.main", fileOnlyOptions(dir))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	log, ok := m.Get("svc")
	require.True(t, ok)
	log.InfoWith().Msg("single sink survives the race")

	out := readLogFile(t, dir, "svc")
	assert.Equal(t, 1, strings.Count(out, "single sink survives the race"))
}

func TestManager_ConcurrentSetupDifferentNames(t *testing.T) {
	dir := t.TempDir()
	m := NewManager()
	t.Cleanup(func() { _ = m.Close() })

	names := []string{"alpha", "beta", "gamma", "delta"}
	var wg sync.WaitGroup
	wg.Add(len(names))
	for _, name := range names {
		go func(name string) {
			defer wg.Done()
			log, err := m.Setup(name, name+".main", fileOnlyOptions(dir))
			assert.NoError(t, err)
			log.InfoWith().Msg("hello from " + name)
		}(name)
	}
	wg.Wait()

	for _, name := range names {
		assert.Contains(t, readLogFile(t, dir, name), "hello from "+name)
	}
}

func TestPackageLevelAPI(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { _ = Close() })

	log, err := Setup("pkgapi", "pkgapi.main", fileOnlyOptions(dir))
	require.NoError(t, err)
	log.InfoWith().Msg("default manager")

	got, ok := Get("pkgapi")
	require.True(t, ok)
	got.InfoWith().Msg("same registry")

	require.NoError(t, SetLevel("pkgapi", "debug"))

	out := readLogFile(t, dir, "pkgapi")
	assert.Contains(t, out, "default manager")
	assert.Contains(t, out, "same registry")
}

func TestContextLogger(t *testing.T) {
	dir := t.TempDir()
	m := NewManager()
	t.Cleanup(func() { _ = m.Close() })

	log, err := m.Setup("svc", "svc.main", fileOnlyOptions(dir))
	require.NoError(t, err)

	userLog := log.With().Str("user", "bob").Logger()
	userLog.InfoWith().Msg("first")
	userLog.InfoWith().Msg("second")

	out := readLogFile(t, dir, "svc")
	assert.Equal(t, 2, strings.Count(out, "  user: bob"),
		"context field must appear on every event of the child logger")
}

func TestOptionsFromFile(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logging.yaml")
		doc := "console: false\nfile: true\nlog_dir: /var/log/svc\nlevel: warning\nrotate_when: hourly\nbackup_count: 3\n"
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

		opts, err := OptionsFromFile(path)
		require.NoError(t, err)
		assert.False(t, opts.Console)
		assert.True(t, opts.File)
		assert.Equal(t, "/var/log/svc", opts.LogDir)
		assert.Equal(t, "warning", opts.Level)
		assert.Equal(t, RotateHourly, opts.RotateWhen)
		assert.Equal(t, 3, opts.BackupCount)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := OptionsFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsConfiguration(err))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("console: [unclosed"), 0o644))

		_, err := OptionsFromFile(path)
		require.Error(t, err)
		assert.True(t, errors.IsConfiguration(err))
	})
}

func TestDump(t *testing.T) {
	dir := t.TempDir()
	m := NewManager()
	t.Cleanup(func() { _ = m.Close() })

	opts := fileOnlyOptions(dir)
	opts.Level = "debug"
	log, err := m.Setup("svc", "svc.main", opts)
	require.NoError(t, err)

	type inner struct{ Count int }
	type outer struct {
		Name  string
		Inner inner
	}
	log.Dump(outer{Name: "widget", Inner: inner{Count: 3}})

	out := readLogFile(t, dir, "svc")
	assert.Contains(t, out, "Struct: outer")
	assert.Contains(t, out, "Name: widget")
	assert.Contains(t, out, "Inner.Count: 3")
}
