package logging

import (
	stderrs "errors"
	"strings"

	"github.com/rs/zerolog"

	suerrors "github.com/svcsuite/secutils/errors"
)

// parseLevel parses a string log level into a zerolog.Level. The
// "warning" and "critical" aliases map onto warn and fatal.
func parseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case "warning":
		return zerolog.WarnLevel, nil
	case "critical":
		return zerolog.FatalLevel, nil
	}
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, err
	}
	return l, nil
}

// buildErrorChain walks an error's cause chain and returns:
//   - chain: outermost -> innermost error messages
//   - ops: operation identifiers for Detailed links ("" if not available)
//   - root: the innermost error message
//   - rootOp: the innermost operation identifier if available
//
// The traversal prefers secutils Detailed errors and falls back to
// stdlib errors.Unwrap. It guards against excessive depth and repeated
// messages to avoid cycles.
func buildErrorChain(err error) (chain []string, ops []string, root string, rootOp string) {
	const maxDepth = 50
	visited := 0
	seen := map[string]bool{}

	for err != nil && visited < maxDepth {
		visited++

		if dErr, ok := suerrors.AsDetailed(err); ok && dErr != nil {
			chain = append(chain, dErr.Error())
			ops = append(ops, string(dErr.Op()))
			err = dErr.Unwrap()
			continue
		}

		msg := err.Error()
		// avoid infinite loops if messages repeat due to unusual cycles
		if seen[msg] {
			break
		}
		seen[msg] = true
		chain = append(chain, msg)
		ops = append(ops, "")
		err = stderrs.Unwrap(err)
	}

	if len(chain) > 0 {
		root = chain[len(chain)-1]
	}
	if len(ops) > 0 {
		rootOp = ops[len(ops)-1]
	}
	return
}

// joinChain returns a single string for the error chain separated by " -> ".
func joinChain(chain []string) string {
	if len(chain) == 0 {
		return ""
	}
	return strings.Join(chain, " -> ")
}

// logEventBuilder creates a log event on the state's current logger.
// If the level is disabled, or the logger was never configured, it
// returns a no-op LogEvent rather than panicking.
func logEventBuilder(st *loggerState, level zerolog.Level) LogEvent {
	if st == nil || st.closed.Load() || level == zerolog.NoLevel {
		return newLogEvent(nil)
	}
	logger := st.logger.Load()
	if logger == nil {
		return newLogEvent(nil)
	}
	if logger.GetLevel() > level {
		return newLogEvent(nil)
	}

	switch level {
	case zerolog.TraceLevel:
		return newLogEvent(logger.Trace())
	case zerolog.DebugLevel:
		return newLogEvent(logger.Debug())
	case zerolog.InfoLevel:
		return newLogEvent(logger.Info())
	case zerolog.WarnLevel:
		return newLogEvent(logger.Warn())
	case zerolog.ErrorLevel:
		return newLogEvent(logger.Error())
	case zerolog.FatalLevel:
		return newLogEvent(logger.Fatal())
	default:
		return newLogEvent(nil)
	}
}
