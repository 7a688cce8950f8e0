package logging

import (
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fastjson"
)

// formatWriter decorates a sink with the structured formatter: each
// zerolog JSON event written to it is decoded into a Record and written
// to the sink as formatted text. This is the zerolog ConsoleWriter
// architecture with our rendering.
//
// The mutex serializes both the parser reuse and the sink write, so a
// sink shared by concurrent goroutines never sees interleaved output.
type formatWriter struct {
	mu        sync.Mutex
	out       io.Writer
	formatter *Formatter
	name      string
	module    string
	parser    fastjson.Parser
}

func newFormatWriter(out io.Writer, name, module string, f *Formatter) *formatWriter {
	return &formatWriter{out: out, formatter: f, name: name, module: module}
}

func (w *formatWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	v, err := w.parser.ParseBytes(p)
	if err != nil {
		// A record must never crash the pipeline: pass the raw event
		// through instead of dropping it.
		if _, werr := w.out.Write(p); werr != nil {
			return 0, werr
		}
		return len(p), nil
	}

	rec := w.decode(v)
	if _, err := io.WriteString(w.out, w.formatter.Format(rec)+"\n"); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *formatWriter) decode(v *fastjson.Value) Record {
	rec := Record{
		Name:   w.name,
		Module: w.module,
		Level:  zerolog.NoLevel,
	}

	if ts := v.GetStringBytes(zerolog.TimestampFieldName); ts != nil {
		if t, err := time.Parse(time.RFC3339, string(ts)); err == nil {
			rec.Time = t
		}
	}
	if lvl := v.GetStringBytes(zerolog.LevelFieldName); lvl != nil {
		if l, err := zerolog.ParseLevel(string(lvl)); err == nil {
			rec.Level = l
		}
	}
	if msg := v.GetStringBytes(zerolog.MessageFieldName); msg != nil {
		rec.Message = string(msg)
	}

	for _, key := range recognizedExtras {
		if field := v.Get(key); field != nil {
			w.addExtra(&rec, key, field)
		}
	}
	for _, key := range errorExtras {
		if field := v.Get(key); field != nil {
			w.addExtra(&rec, key, field)
		}
	}
	return rec
}

func (w *formatWriter) addExtra(rec *Record, key string, field *fastjson.Value) {
	if rec.Extras == nil {
		rec.Extras = make(map[string]interface{}, len(recognizedExtras))
	}
	if field.Type() == fastjson.TypeString {
		rec.Extras[key] = string(field.GetStringBytes())
		return
	}
	// Objects, arrays and numbers keep their compact JSON form.
	rec.Extras[key] = field.String()
}
