package logging

import (
	"io"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/svcsuite/secutils/errors"
)

// buildSinks resolves the sinks requested by opts. Both flags false is
// valid and yields no writers: a configured-but-silent logger. The
// returned closer owns the file sink, nil when no file sink was built.
// All sinks of one call share the same Formatter instance.
func buildSinks(name, module string, opts Options) ([]io.Writer, io.Closer, error) {
	formatter := NewFormatter()

	var writers []io.Writer
	var closer io.Closer

	if opts.File {
		if err := ensureLogDir(opts.LogDir); err != nil {
			return nil, nil, err
		}
		rotating := newTimedRotatingWriter(&lumberjack.Logger{
			Filename:   filepath.Join(opts.LogDir, name+".log"),
			MaxBackups: opts.BackupCount,
		}, opts.RotateWhen)
		writers = append(writers, newFormatWriter(rotating, name, module, formatter))
		closer = rotating
	}
	if opts.Console {
		writers = append(writers, newFormatWriter(os.Stderr, name, module, formatter))
	}

	return writers, closer, nil
}

// ensureLogDir creates the log directory if absent. A path that exists
// but is not a directory, or one that cannot be created, is a
// configuration error.
func ensureLogDir(dir string) error {
	const op errors.Op = "logging.ensureLogDir"

	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return errors.NewConfigurationError(op, dir, "exists and is not a directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewConfigurationError(op, dir, errMsgUnusableDir).WithCause(err)
	}
	return nil
}
