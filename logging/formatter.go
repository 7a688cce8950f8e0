package logging

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// recognizedExtras is the fixed render order for structured detail
// lines. Extras outside this list (and the error fields below) are
// ignored by the formatter.
var recognizedExtras = []string{"request", "response", "user", "details", "objects"}

// errorExtras render after the caller-facing extras. They are emitted by
// LogEvent.Err rather than attached directly by callers.
var errorExtras = []string{zerolog.ErrorFieldName, "error_history"}

// Record is one log event as seen by the Formatter: the fields of the
// header line plus the optional structured extras attached at call time.
type Record struct {
	Time    time.Time
	Level   zerolog.Level
	Name    string
	Module  string
	Message string
	// Extras holds the caller-supplied structured attributes. Only
	// recognized keys are rendered; the rest are ignored, not errors.
	Extras map[string]interface{}
}

// Formatter renders a Record into a deterministic, human-readable,
// multi-line string: a fixed header line followed by one indented
// detail line per recognized extra present. It is stateless beyond its
// configured time layout and is shared by all sinks of a setup call.
type Formatter struct {
	// TimeFormat is the header timestamp layout. Defaults to RFC3339.
	TimeFormat string
}

func NewFormatter() *Formatter {
	return &Formatter{TimeFormat: time.RFC3339}
}

// Format never fails: a value whose rendering panics yields the
// <unrenderable> placeholder instead.
func (f *Formatter) Format(r Record) string {
	var b strings.Builder

	b.WriteString(r.Time.Format(f.TimeFormat))
	b.WriteString(" | ")
	b.WriteString(levelName(r.Level))
	b.WriteString(" | ")
	b.WriteString(r.Name)
	b.WriteString(" | ")
	b.WriteString(r.Module)
	b.WriteString(" | ")
	// Embedded newlines in the message are preserved verbatim.
	b.WriteString(r.Message)

	for _, key := range recognizedExtras {
		f.writeExtra(&b, r, key)
	}
	for _, key := range errorExtras {
		f.writeExtra(&b, r, key)
	}

	return b.String()
}

func (f *Formatter) writeExtra(b *strings.Builder, r Record, key string) {
	val, ok := r.Extras[key]
	if !ok {
		return
	}
	b.WriteString("\n  ")
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(renderValue(val))
}

// renderValue converts an extra value to its string form. Rendering must
// never propagate a failure up the logging pipeline, so panics from
// Stringer or Error implementations degrade to a placeholder. Stringer
// and error methods are invoked directly because fmt would swallow their
// panics into a noisy %!v(PANIC=...) string.
func renderValue(v interface{}) (s string) {
	defer func() {
		if recover() != nil {
			s = "<unrenderable>"
		}
	}()
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case error:
		return t.Error()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// levelName maps zerolog levels onto the header's level vocabulary.
func levelName(l zerolog.Level) string {
	switch l {
	case zerolog.WarnLevel:
		return "WARNING"
	case zerolog.FatalLevel, zerolog.PanicLevel:
		return "CRITICAL"
	case zerolog.NoLevel:
		return "LOG"
	default:
		return strings.ToUpper(l.String())
	}
}
