package dumpy

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Entry is one keyed element of a Sequence.
type Entry struct {
	Key   any
	Value any
}

// Sequence is an ordered container of keyed values. It is list-like when its
// keys are exactly the integers 0..n-1 in order and map-like otherwise.
type Sequence []Entry

// List builds a list-like Sequence from values.
func List(values ...any) Sequence {
	seq := make(Sequence, len(values))
	for i, v := range values {
		seq[i] = Entry{Key: i, Value: v}
	}
	return seq
}

// Map builds a Sequence from alternating keys and values, keeping their order.
// A trailing key without a value is paired with nil.
func Map(keysAndValues ...any) Sequence {
	seq := make(Sequence, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		e := Entry{Key: keysAndValues[i]}
		if i+1 < len(keysAndValues) {
			e.Value = keysAndValues[i+1]
		}
		seq = append(seq, e)
	}
	return seq
}

// IsList reports whether the keys are exactly 0..n-1 in stored order.
func (s Sequence) IsList() bool {
	for i, e := range s {
		if !isIndexKey(e.Key, i) {
			return false
		}
	}
	return true
}

func isIndexKey(key any, want int) bool {
	rv := reflect.ValueOf(key)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == int64(want)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == uint64(want)
	default:
		return false
	}
}

// renderSequence draws seq at the given nesting level, starting at 1.
func (d *Dumper) renderSequence(seq Sequence, level int) string {
	indent := d.config.stringOption(OptArrayIndenting)
	max := d.config.intOption(OptArrayMaxElements)
	isList := seq.IsList()

	var b strings.Builder
	b.WriteString("[\n")
	for i, e := range seq {
		if i+1 > max {
			b.WriteString(strings.Repeat(indent, level))
			b.WriteString(Ellipsis)
			b.WriteString("\n")
			break
		}

		element := d.renderElement(e.Value, level)

		b.WriteString(strings.Repeat(indent, level))
		if !isList {
			b.WriteString(d.renderElement(e.Key, level))
			b.WriteString(keySeparator)
		}
		b.WriteString(element)
		b.WriteString(",\n")
	}
	b.WriteString(strings.Repeat(indent, level-1))
	b.WriteString("]")
	return b.String()
}

// renderElement renders a key or value sitting at level. Nested containers
// open one level deeper; objects have their lines after the first shifted to
// the element indent.
func (d *Dumper) renderElement(v any, level int) string {
	if nested, ok := asSequence(v); ok {
		return d.renderSequence(nested, level+1)
	}
	out := d.dump(v)
	if isComposite(v) {
		out = indentInterior(out, strings.Repeat(d.config.stringOption(OptArrayIndenting), level))
	}
	return out
}

// asSequence converts container values into a Sequence. Byte slices are
// rendered as strings and never treated as containers.
func asSequence(v any) (Sequence, bool) {
	switch s := v.(type) {
	case nil:
		return nil, false
	case Sequence:
		return s, true
	case []byte:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	return sequenceFromValue(rv)
}

func sequenceFromValue(rv reflect.Value) (Sequence, bool) {
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() || rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
		return sliceEntries(rv), true
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
		return sliceEntries(rv), true
	case reflect.Map:
		if rv.IsNil() {
			return nil, false
		}
		return mapEntries(rv), true
	default:
		return nil, false
	}
}

func sliceEntries(rv reflect.Value) Sequence {
	if rv.Type() == reflect.TypeOf(Sequence(nil)) {
		return rv.Interface().(Sequence)
	}
	seq := make(Sequence, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		seq[i] = Entry{Key: i, Value: valueInterface(rv.Index(i))}
	}
	return seq
}

// mapEntries orders map keys so the output is deterministic: numbers
// ascending, then strings, then everything else by its printed form.
func mapEntries(rv reflect.Value) Sequence {
	keys := rv.MapKeys()
	sort.SliceStable(keys, func(i, j int) bool {
		return keyLess(keys[i], keys[j])
	})
	seq := make(Sequence, len(keys))
	for i, k := range keys {
		seq[i] = Entry{Key: valueInterface(k), Value: valueInterface(rv.MapIndex(k))}
	}
	return seq
}

func keyRank(k reflect.Value) int {
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return 0
	case reflect.String:
		return 1
	default:
		return 2
	}
}

func keyLess(a, b reflect.Value) bool {
	for a.Kind() == reflect.Interface && !a.IsNil() {
		a = a.Elem()
	}
	for b.Kind() == reflect.Interface && !b.IsNil() {
		b = b.Elem()
	}
	ra, rb := keyRank(a), keyRank(b)
	if ra != rb {
		return ra < rb
	}
	switch ra {
	case 0:
		return numericKey(a) < numericKey(b)
	case 1:
		return a.String() < b.String()
	default:
		return fmt.Sprint(valueInterface(a)) < fmt.Sprint(valueInterface(b))
	}
}

func numericKey(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	default:
		return float64(v.Uint())
	}
}
