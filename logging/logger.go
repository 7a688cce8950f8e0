package logging

import (
	"time"

	"github.com/rs/zerolog"
)

// namedLogger is the registry-backed Logger handle. It holds no logger
// of its own: every event loads the state's current zerolog logger, so
// reconfiguration through Setup is observed immediately by all handles.
type namedLogger struct {
	state *loggerState
}

func (l *namedLogger) DebugWith() LogEvent { return logEventBuilder(l.state, zerolog.DebugLevel) }
func (l *namedLogger) InfoWith() LogEvent  { return logEventBuilder(l.state, zerolog.InfoLevel) }
func (l *namedLogger) WarnWith() LogEvent  { return logEventBuilder(l.state, zerolog.WarnLevel) }
func (l *namedLogger) ErrorWith() LogEvent { return logEventBuilder(l.state, zerolog.ErrorLevel) }
func (l *namedLogger) FatalWith() LogEvent { return logEventBuilder(l.state, zerolog.FatalLevel) }

func (l *namedLogger) With() LogContext {
	return &logContext{state: l.state}
}

// field is one pre-populated key/value pair carried by a context logger.
type field struct {
	key string
	val interface{}
}

// logContext accumulates fields for a child logger. It deliberately
// stores fields instead of a zerolog.Context: a context bound to a
// zerolog logger would pin the sinks that were attached when the child
// was created, leaking them across reconfiguration.
type logContext struct {
	state  *loggerState
	fields []field
}

func (c *logContext) add(key string, val interface{}) LogContext {
	c.fields = append(c.fields, field{key: key, val: val})
	return c
}

func (c *logContext) Str(key, val string) LogContext                   { return c.add(key, val) }
func (c *logContext) Strs(key string, vals []string) LogContext        { return c.add(key, vals) }
func (c *logContext) Int(key string, val int) LogContext               { return c.add(key, val) }
func (c *logContext) Int64(key string, val int64) LogContext           { return c.add(key, val) }
func (c *logContext) Float64(key string, val float64) LogContext       { return c.add(key, val) }
func (c *logContext) Bool(key string, val bool) LogContext             { return c.add(key, val) }
func (c *logContext) Time(key string, val time.Time) LogContext        { return c.add(key, val) }
func (c *logContext) Interface(key string, val interface{}) LogContext { return c.add(key, val) }

func (c *logContext) Logger() Logger {
	fields := make([]field, len(c.fields))
	copy(fields, c.fields)
	return &contextLogger{state: c.state, fields: fields}
}

// contextLogger is a child logger carrying pre-populated fields. Events
// resolve the parent state's current logger, so children follow
// reconfiguration and Close like any other handle.
type contextLogger struct {
	state  *loggerState
	fields []field
}

func (cl *contextLogger) event(level zerolog.Level) LogEvent {
	ev := logEventBuilder(cl.state, level)
	for _, f := range cl.fields {
		if s, ok := f.val.(string); ok {
			ev.Str(f.key, s)
			continue
		}
		ev.Interface(f.key, f.val)
	}
	return ev
}

func (cl *contextLogger) DebugWith() LogEvent { return cl.event(zerolog.DebugLevel) }
func (cl *contextLogger) InfoWith() LogEvent  { return cl.event(zerolog.InfoLevel) }
func (cl *contextLogger) WarnWith() LogEvent  { return cl.event(zerolog.WarnLevel) }
func (cl *contextLogger) ErrorWith() LogEvent { return cl.event(zerolog.ErrorLevel) }
func (cl *contextLogger) FatalWith() LogEvent { return cl.event(zerolog.FatalLevel) }

func (cl *contextLogger) With() LogContext {
	fields := make([]field, len(cl.fields))
	copy(fields, cl.fields)
	return &logContext{state: cl.state, fields: fields}
}

func (cl *contextLogger) Dump(v interface{}) {
	if cl.state == nil || cl.state.closed.Load() {
		return
	}
	dump(cl.state.logger.Load(), v)
}
