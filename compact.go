package dumpy

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
)

// CompactHandler renders an opaque value on one line.
type CompactHandler func(v reflect.Value) string

// compactRegistry maps a type name, or a package prefix ending in ".", to the
// handler used instead of the object report.
var (
	compactMu       sync.RWMutex
	compactRegistry = make(map[string]CompactHandler)
)

func init() {
	RegisterCompact("time.Time", func(v reflect.Value) string {
		if t, ok := valueInterface(v).(time.Time); ok {
			return "<time.Time " + t.String() + ">"
		}
		return "<time.Time>"
	})
	RegisterCompact("time.Location", func(v reflect.Value) string {
		if v.CanAddr() {
			if loc, ok := valueInterface(v.Addr()).(*time.Location); ok {
				return "<time.Location " + loc.String() + ">"
			}
		}
		return "<time.Location>"
	})

	opaque := func(v reflect.Value) string {
		return fmt.Sprintf("<%s>", v.Type().String())
	}
	for _, name := range []string{
		"sync.Mutex", "sync.RWMutex", "sync.Cond", "sync.Pool", "sync.WaitGroup", "sync.Once",
		"reflect.Value", "os.File", "sql.DB", "sql.Rows", "sql.Stmt", "http.Request", "http.Response",
	} {
		RegisterCompact(name, opaque)
	}
	for _, prefix := range []string{"context.", "runtime.", "net.", "crypto."} {
		RegisterCompact(prefix, opaque)
	}
}

// RegisterCompact registers handler for the type printed as name (for
// example "time.Time"), or for every type of a package when name ends in ".".
func RegisterCompact(name string, handler CompactHandler) {
	compactMu.Lock()
	defer compactMu.Unlock()
	compactRegistry[name] = handler
}

// UnregisterCompact removes the handler registered for name.
func UnregisterCompact(name string) {
	compactMu.Lock()
	defer compactMu.Unlock()
	delete(compactRegistry, name)
}

// compact looks up a handler for struct value v, exact names first.
func compact(v reflect.Value) (string, bool) {
	typeName := v.Type().String()

	compactMu.RLock()
	defer compactMu.RUnlock()
	if handler, ok := compactRegistry[typeName]; ok {
		return handler(v), true
	}
	for pattern, handler := range compactRegistry {
		if strings.HasSuffix(pattern, ".") && strings.HasPrefix(typeName, pattern) {
			return handler(v), true
		}
	}
	return "", false
}
