package dumpy

import (
	"fmt"
	"reflect"
	"strconv"
)

// renderer defines the strategy for one reflect.Kind.
type renderer interface {
	render(d *Dumper, v reflect.Value) string
}

// rendererRegistry maps reflect.Kind to its corresponding renderer
var rendererRegistry map[reflect.Kind]renderer

func init() {
	rendererRegistry = make(map[reflect.Kind]renderer)

	// Basic types
	rendererRegistry[reflect.Bool] = &boolRenderer{}
	for _, k := range []reflect.Kind{reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64} {
		rendererRegistry[k] = &intRenderer{}
	}
	for _, k := range []reflect.Kind{reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr} {
		rendererRegistry[k] = &uintRenderer{}
	}
	rendererRegistry[reflect.Float32] = &floatRenderer{}
	rendererRegistry[reflect.Float64] = &floatRenderer{}
	rendererRegistry[reflect.Complex64] = &complexRenderer{}
	rendererRegistry[reflect.Complex128] = &complexRenderer{}
	rendererRegistry[reflect.String] = &stringRenderer{}
	rendererRegistry[reflect.Chan] = &handleRenderer{}
	rendererRegistry[reflect.Func] = &handleRenderer{}
	rendererRegistry[reflect.UnsafePointer] = &handleRenderer{}

	// Containers and objects
	rendererRegistry[reflect.Ptr] = &ptrRenderer{}
	rendererRegistry[reflect.Interface] = &interfaceRenderer{}
	rendererRegistry[reflect.Struct] = &structRenderer{}
	rendererRegistry[reflect.Slice] = &containerRenderer{}
	rendererRegistry[reflect.Array] = &containerRenderer{}
	rendererRegistry[reflect.Map] = &containerRenderer{}
}

// dump is the single dispatch point used by every renderer for nested values.
func (d *Dumper) dump(v any) string {
	switch x := v.(type) {
	case nil:
		return d.renderNull()
	case Sequence:
		return d.renderSequence(x, 1) + "\n"
	case Object:
		return d.renderObject(&x)
	case *Object:
		if x == nil {
			return d.renderNull()
		}
		return d.renderObject(x)
	case Describer:
		obj := x.DumpObject()
		return d.renderObject(&obj)
	case []byte:
		return d.renderString(string(x))
	}

	rv := reflect.ValueOf(v)
	r, ok := rendererRegistry[rv.Kind()]
	if !ok {
		return fmt.Sprintf("<unsupported %s>", rv.Type().String())
	}
	return r.render(d, rv)
}

type boolRenderer struct{}

func (r *boolRenderer) render(d *Dumper, v reflect.Value) string {
	return d.renderBool(v.Bool())
}

type intRenderer struct{}

func (r *intRenderer) render(d *Dumper, v reflect.Value) string {
	return strconv.FormatInt(v.Int(), 10)
}

type uintRenderer struct{}

func (r *uintRenderer) render(d *Dumper, v reflect.Value) string {
	return strconv.FormatUint(v.Uint(), 10)
}

type floatRenderer struct{}

func (r *floatRenderer) render(d *Dumper, v reflect.Value) string {
	f := v.Float()
	if v.Kind() == reflect.Float32 {
		// Keep the digits a float32 literal was written with.
		f, _ = strconv.ParseFloat(strconv.FormatFloat(f, 'g', -1, 32), 64)
	}
	return d.renderFloat(f)
}

type complexRenderer struct{}

func (r *complexRenderer) render(d *Dumper, v reflect.Value) string {
	return fmt.Sprintf("%v", v.Complex())
}

type stringRenderer struct{}

func (r *stringRenderer) render(d *Dumper, v reflect.Value) string {
	return d.renderString(v.String())
}

// handleRenderer covers values that only have an address worth showing.
type handleRenderer struct{}

func (r *handleRenderer) render(d *Dumper, v reflect.Value) string {
	if v.IsNil() {
		return d.renderNull()
	}
	switch v.Kind() {
	case reflect.Chan:
		return fmt.Sprintf("<chan %s %#x>", v.Type().String(), v.Pointer())
	case reflect.Func:
		return fmt.Sprintf("<func %s %#x>", v.Type().String(), v.Pointer())
	default:
		return fmt.Sprintf("<unsafe.Pointer %#x>", v.Pointer())
	}
}

type ptrRenderer struct{}

func (r *ptrRenderer) render(d *Dumper, v reflect.Value) string {
	if v.IsNil() {
		return d.renderNull()
	}
	elem := v.Elem()
	if elem.Kind() == reflect.Struct {
		if s, ok := compact(elem); ok {
			return s
		}
		return d.renderObject(d.reflectObject(elem, v.Pointer()))
	}
	return d.dump(valueInterface(elem))
}

type interfaceRenderer struct{}

func (r *interfaceRenderer) render(d *Dumper, v reflect.Value) string {
	if v.IsNil() {
		return d.renderNull()
	}
	return d.dump(valueInterface(v.Elem()))
}

type structRenderer struct{}

func (r *structRenderer) render(d *Dumper, v reflect.Value) string {
	if s, ok := compact(v); ok {
		return s
	}
	return d.renderObject(d.reflectObject(v, 0))
}

type containerRenderer struct{}

func (r *containerRenderer) render(d *Dumper, v reflect.Value) string {
	if (v.Kind() == reflect.Slice || v.Kind() == reflect.Map) && v.IsNil() {
		return d.renderNull()
	}
	if v.Kind() != reflect.Map && v.Type().Elem().Kind() == reflect.Uint8 {
		return d.renderString(string(byteContents(v)))
	}
	seq, _ := sequenceFromValue(v)
	return d.renderSequence(seq, 1) + "\n"
}

// byteContents copies the bytes of a byte slice or array.
func byteContents(v reflect.Value) []byte {
	out := make([]byte, v.Len())
	for i := range out {
		out[i] = byte(v.Index(i).Uint())
	}
	return out
}
