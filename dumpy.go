// Package dumpy renders arbitrary Go values as deterministic, human-readable
// text for debugging.
//
// A Dumper owns one live configuration (see the Opt* constants) and walks
// scalars, ordered containers and objects recursively:
//
//	d, _ := dumpy.New()
//	fmt.Print(d.Dump(dumpy.Map("foo", "bar", "baz", dumpy.List(1, 2))))
//
// prints
//
//	[
//	    "foo" => "bar",
//	    "baz" => [
//	        1,
//	        2,
//	    ],
//	]
//
// Structs are described through reflection; types that want full control over
// their report implement [Describer]. No cycle detection is performed: a
// self-referencing structure recurses until the stack is exhausted.
//
// A Dumper is not safe for concurrent use.
package dumpy

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Dumper converts values to text according to its configuration.
type Dumper struct {
	config *configStore
	log    *logrus.Logger

	// ids maps object addresses to display identities.
	ids    map[uintptr]int
	lastID int
}

// Option customizes a Dumper at construction.
type Option func(*Dumper) error

// WithLogger sets the logger used for configuration changes.
func WithLogger(l *logrus.Logger) Option {
	return func(d *Dumper) error {
		if l != nil {
			d.log = l
		}
		return nil
	}
}

// WithEnv applies DUMPY_* environment overrides. Values that fail to parse
// are ignored.
func WithEnv() Option {
	return func(d *Dumper) error {
		d.config.loadFromEnv()
		return nil
	}
}

// WithOption sets a single option, as Configure does.
func WithOption(name string, value any) Option {
	return func(d *Dumper) error {
		return d.Configure(name, value)
	}
}

// New creates a Dumper with default options, then applies opts in order.
func New(opts ...Option) (*Dumper, error) {
	d := &Dumper{
		config: newConfigStore(),
		log:    discardLogger(),
		ids:    make(map[uintptr]int),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Configure replaces the value of a known option. Any value type is accepted;
// it is interpreted loosely when formatting.
func (d *Dumper) Configure(name string, value any) error {
	if err := d.config.set(name, value); err != nil {
		d.log.WithFields(logrus.Fields{"option": name, "error": err}).Debug("configure rejected")
		return err
	}
	d.log.WithFields(logrus.Fields{"option": name, "value": value}).Debug("option updated")
	return nil
}

// GetConfigOption returns the current value of a known option.
func (d *Dumper) GetConfigOption(name string) (any, error) {
	return d.config.get(name)
}

// Options returns a copy of every option value.
func (d *Dumper) Options() map[string]any {
	return d.config.snapshot()
}

// Dump returns the text form of v. A top-level container is followed by a
// line break.
func (d *Dumper) Dump(v any) string {
	return d.dump(v)
}

// Fdump writes the text form of v to w.
func (d *Dumper) Fdump(w io.Writer, v any) error {
	_, err := io.WriteString(w, d.dump(v))
	return err
}

// Sdump formats v with a fresh default Dumper.
func Sdump(v any) string {
	d, _ := New()
	return d.Dump(v)
}

// nextID hands out a display identity. Non-zero addresses keep the identity
// they received first.
func (d *Dumper) nextID(addr uintptr) int {
	if addr != 0 {
		if id, ok := d.ids[addr]; ok {
			return id
		}
	}
	d.lastID++
	if addr != 0 {
		d.ids[addr] = d.lastID
	}
	return d.lastID
}
