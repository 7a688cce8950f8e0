package logging

const (
	emptyString = ""

	// DefaultLogDir is where file sinks are created when Options.LogDir
	// is left empty.
	DefaultLogDir = "./logs"

	// DefaultBackupCount is the number of rotated files retained when
	// Options.BackupCount is left at zero.
	DefaultBackupCount = 14

	defaultLevel = "info"
)

// Rotation boundaries accepted by Options.RotateWhen.
const (
	RotateDaily  = "daily"
	RotateHourly = "hourly"
)

const (
	errMsgEmptyName     = "logger name must not be empty"
	errMsgConfigInvalid = "logging options are invalid"
	errMsgUnusableDir   = "log directory is unusable"
	errMsgUnknownLevel  = "unknown log level"
)
