package logging

// Logger is the emission handle returned by Setup and Get. It provides
// structured, level-gated events; emission on a logger whose manager has
// been closed is a safe no-op.
type Logger interface {
	DebugWith() LogEvent
	InfoWith() LogEvent
	WarnWith() LogEvent
	ErrorWith() LogEvent
	FatalWith() LogEvent

	// With creates a child logger with pre-populated fields included in
	// all subsequent events.
	// Example: reqLogger := logger.With().Str("request_id", id).Logger()
	With() LogContext

	// Dump logs the contents of an arbitrary value at Debug level,
	// walking exported struct fields, maps and slices.
	Dump(v interface{})
}
