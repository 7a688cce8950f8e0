package logging

import (
	"io"
	"sync"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/svcsuite/secutils/errors"
)

// Manager configures named loggers and guarantees idempotent handler
// attachment. The registry is process-wide state with a documented
// lifecycle: populated on the first Setup per name, mutex-protected,
// never torn down except through Close.
//
// Re-running Setup for a configured name uses replace semantics: the
// previous sinks are closed and detached before the new set is attached,
// so any number of Setup calls yields exactly the sinks implied by the
// latest options.
type Manager struct {
	mu      sync.Mutex
	entries map[string]*loggerState
}

// loggerState is one registry entry. The zerolog logger is swapped
// atomically on reconfiguration so handles returned by earlier Setup
// calls observe the latest configuration without locking on the
// emission path.
type loggerState struct {
	name     string
	module   string
	opts     Options
	logger   atomic.Pointer[zerolog.Logger]
	fileSink io.Closer
	// closed silences handles, including child context loggers that
	// hold their own zerolog logger wired to the released sinks.
	closed atomic.Bool
}

func NewManager() *Manager {
	return &Manager{entries: make(map[string]*loggerState)}
}

// defaultManager backs the package-level API. The host process has one
// logger registry, so most callers never construct their own Manager.
var defaultManager = NewManager()

// Setup configures the logger registered under name. The module
// identifier is included verbatim in every formatted header. Returns a
// handle for emission; the same handle is also retrievable later via
// Get. Safe for concurrent use; calls for the same name are serialized.
func (m *Manager) Setup(name, module string, opts Options) (Logger, error) {
	const op errors.Op = "logging.Setup"

	if name == emptyString {
		return nil, errors.NewConfigurationError(op, "name", errMsgEmptyName)
	}
	opts = opts.withDefaults()
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, errors.NewConfigurationError(op, "level", errMsgUnknownLevel).WithCause(err)
	}

	writers, closer, err := buildSinks(name, module, opts)
	if err != nil {
		return nil, err
	}

	var out io.Writer = io.Discard
	if len(writers) == 1 {
		out = writers[0]
	} else if len(writers) > 1 {
		out = zerolog.MultiLevelWriter(writers...)
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()

	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.entries[name]
	if ok {
		// Replace semantics: release the previous file sink before the
		// new set takes over, so handlers never accumulate.
		if st.fileSink != nil {
			_ = st.fileSink.Close()
		}
	} else {
		st = &loggerState{name: name}
		m.entries[name] = st
	}
	st.module = module
	st.opts = opts
	st.fileSink = closer
	st.logger.Store(&logger)
	st.closed.Store(false)

	return &namedLogger{state: st}, nil
}

// Get returns the handle for a previously configured name.
func (m *Manager) Get(name string) (Logger, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.entries[name]
	if !ok {
		return nil, false
	}
	return &namedLogger{state: st}, true
}

// SetLevel changes the minimum emitted severity of a configured logger.
func (m *Manager) SetLevel(name, level string) error {
	const op errors.Op = "logging.SetLevel"

	l, err := parseLevel(level)
	if err != nil {
		return errors.NewConfigurationError(op, "level", errMsgUnknownLevel).WithCause(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.entries[name]
	if !ok {
		return errors.NewConfigurationError(op, "name", "logger is not configured")
	}
	logger := st.logger.Load().Level(l)
	st.logger.Store(&logger)
	st.opts.Level = level
	return nil
}

// Close releases every file sink and silences all registered loggers.
// It is safe to call multiple times; emission afterwards is a no-op.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	for _, st := range m.entries {
		st.closed.Store(true)
		nop := zerolog.Nop()
		st.logger.Store(&nop)
		if st.fileSink != nil {
			if err := st.fileSink.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
			st.fileSink = nil
		}
	}
	return firstErr
}

// Setup configures a named logger on the process-wide default Manager.
func Setup(name, module string, opts Options) (Logger, error) {
	return defaultManager.Setup(name, module, opts)
}

// Get looks up a configured logger on the default Manager.
func Get(name string) (Logger, bool) {
	return defaultManager.Get(name)
}

// SetLevel adjusts a configured logger on the default Manager.
func SetLevel(name, level string) error {
	return defaultManager.SetLevel(name, level)
}

// Close releases the default Manager's sinks.
func Close() error {
	return defaultManager.Close()
}
