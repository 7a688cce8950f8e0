package logging

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/svcsuite/secutils/errors"
)

// Options describes the sinks attached to a logger by Setup. A zero
// value is usable: empty fields fall back to the documented defaults.
// Options are copied on Setup and never mutated afterwards.
type Options struct {
	// Console attaches a sink writing formatted records to stderr.
	Console bool `yaml:"console"`

	// File attaches a rotating file sink at <LogDir>/<name>.log.
	File bool `yaml:"file"`

	// LogDir is the directory for file sinks, created if absent.
	// Defaults to DefaultLogDir.
	LogDir string `yaml:"log_dir"`

	// Level is the minimum severity emitted. Accepts trace, debug,
	// info, warn, warning, error, critical and fatal ("warning" and
	// "critical" are aliases). Defaults to info.
	Level string `yaml:"level" validate:"omitempty,oneof=trace debug info warn warning error critical fatal"`

	// RotateWhen selects the time boundary on which the file sink
	// rotates. Defaults to daily.
	RotateWhen string `yaml:"rotate_when" validate:"omitempty,oneof=daily hourly"`

	// BackupCount caps the number of rotated files retained. Zero
	// falls back to DefaultBackupCount.
	BackupCount int `yaml:"backup_count" validate:"gte=0"`
}

// DefaultOptions returns the options Setup assumes for a console-only
// logger: stderr output at info level, no file sink.
func DefaultOptions() Options {
	return Options{
		Console:     true,
		File:        false,
		LogDir:      DefaultLogDir,
		Level:       defaultLevel,
		RotateWhen:  RotateDaily,
		BackupCount: DefaultBackupCount,
	}
}

// withDefaults fills empty fields without touching the caller's value.
func (o Options) withDefaults() Options {
	if o.LogDir == emptyString {
		o.LogDir = DefaultLogDir
	}
	if o.Level == emptyString {
		o.Level = defaultLevel
	}
	if o.RotateWhen == emptyString {
		o.RotateWhen = RotateDaily
	}
	if o.BackupCount == 0 {
		o.BackupCount = DefaultBackupCount
	}
	return o
}

// OptionsFromFile loads Options from a YAML document. Missing fields
// keep the Setup defaults.
func OptionsFromFile(path string) (Options, error) {
	const op errors.Op = "logging.OptionsFromFile"

	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, errors.NewConfigurationError(op, "options file", "unreadable").WithCause(err)
	}

	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, errors.NewConfigurationError(op, "options file", "invalid yaml").WithCause(err)
	}
	return opts, nil
}
