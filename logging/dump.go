package logging

import (
	"fmt"
	"reflect"

	"github.com/rs/zerolog"
)

// Maximum recursion depth to prevent stack overflow
const maxDumpDepth = 10

// maxDumpElements caps how many slice/array elements are logged.
const maxDumpElements = 10

// Dump logs the contents of the provided value at Debug level, walking
// exported struct fields, map entries and slice elements. Useful for
// ad-hoc inspection during development.
func (l *namedLogger) Dump(v interface{}) {
	if l.state == nil {
		return
	}
	dump(l.state.logger.Load(), v)
}

func dump(logger *zerolog.Logger, v interface{}) {
	if logger == nil || logger.GetLevel() > zerolog.DebugLevel {
		return
	}
	if v == nil {
		logger.Debug().Msg("Dump: <nil>")
		return
	}
	visited := make(map[uintptr]bool)
	dumpValue(logger, reflect.ValueOf(v), "", visited, 0)
}

func dumpValue(logger *zerolog.Logger, val reflect.Value, prefix string, visited map[uintptr]bool, depth int) {
	if depth > maxDumpDepth {
		logger.Debug().Msgf("%s: <max depth reached>", prefix)
		return
	}

	// Unwrap interfaces and pointers, with cycle detection on pointers.
	for val.Kind() == reflect.Interface || val.Kind() == reflect.Ptr {
		if val.IsNil() {
			logger.Debug().Msgf("%s: <nil>", prefix)
			return
		}
		if val.Kind() == reflect.Ptr {
			ptr := val.Pointer()
			if visited[ptr] {
				logger.Debug().Msgf("%s: <circular reference>", prefix)
				return
			}
			visited[ptr] = true
		}
		val = val.Elem()
	}

	typ := val.Type()

	switch val.Kind() {
	case reflect.Struct:
		if prefix == "" {
			logger.Debug().Msgf("Struct: %s", typ.Name())
		} else {
			logger.Debug().Msgf("%s: %s {", prefix, typ.Name())
		}
		for i := 0; i < val.NumField(); i++ {
			fieldVal := val.Field(i)
			if !fieldVal.CanInterface() {
				continue
			}
			fieldPrefix := typ.Field(i).Name
			if prefix != "" {
				fieldPrefix = prefix + "." + fieldPrefix
			}
			dumpValue(logger, fieldVal, fieldPrefix, visited, depth+1)
		}
		if prefix != "" {
			logger.Debug().Msgf("%s: }", prefix)
		}

	case reflect.Map:
		logger.Debug().Msgf("%s: map[%s]%s (len: %d) {",
			prefix, typ.Key().String(), typ.Elem().String(), val.Len())
		iter := val.MapRange()
		for iter.Next() {
			keyStr := fmt.Sprintf("%v", iter.Key().Interface())
			dumpValue(logger, iter.Value(), prefix+"["+keyStr+"]", visited, depth+1)
		}
		logger.Debug().Msgf("%s: }", prefix)

	case reflect.Slice, reflect.Array:
		logger.Debug().Msgf("%s: %s (len: %d) {", prefix, typ.String(), val.Len())
		for i := 0; i < val.Len() && i < maxDumpElements; i++ {
			dumpValue(logger, val.Index(i), fmt.Sprintf("%s[%d]", prefix, i), visited, depth+1)
		}
		if val.Len() > maxDumpElements {
			logger.Debug().Msgf("%s: ... (%d more elements)", prefix, val.Len()-maxDumpElements)
		}
		logger.Debug().Msgf("%s: }", prefix)

	default:
		if val.IsValid() && val.CanInterface() {
			logger.Debug().Msgf("%s: %v", prefix, val.Interface())
		} else {
			logger.Debug().Msgf("%s: <unexported>", prefix)
		}
	}
}
