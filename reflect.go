package dumpy

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unsafe"
)

// interfaceRegistry holds the interfaces reported for reflected structs.
var (
	interfaceMu       sync.RWMutex
	interfaceRegistry []reflect.Type
)

// RegisterInterface adds the interface type T to the set checked for every
// reflected struct. It panics if T is not an interface.
func RegisterInterface[T any]() {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Interface {
		panic(fmt.Sprintf("dumpy: RegisterInterface: %s is not an interface", t))
	}
	interfaceMu.Lock()
	defer interfaceMu.Unlock()
	for _, r := range interfaceRegistry {
		if r == t {
			return
		}
	}
	interfaceRegistry = append(interfaceRegistry, t)
}

// UnregisterInterface removes T from the registered interfaces.
func UnregisterInterface[T any]() {
	t := reflect.TypeOf((*T)(nil)).Elem()
	interfaceMu.Lock()
	defer interfaceMu.Unlock()
	for i, r := range interfaceRegistry {
		if r == t {
			interfaceRegistry = append(interfaceRegistry[:i], interfaceRegistry[i+1:]...)
			return
		}
	}
}

func registeredInterfaces() []reflect.Type {
	interfaceMu.RLock()
	defer interfaceMu.RUnlock()
	out := make([]reflect.Type, len(interfaceRegistry))
	copy(out, interfaceRegistry)
	return out
}

// fieldTag is the parsed form of a `dumpy:"..."` struct tag.
type fieldTag struct {
	name     string
	skip     bool
	parent   bool
	abstract bool
}

func parseTag(raw string) fieldTag {
	if raw == "-" {
		return fieldTag{skip: true}
	}
	parts := strings.Split(raw, ",")
	tag := fieldTag{name: parts[0]}
	if tag.name == "parent" {
		tag.name = ""
		tag.parent = true
	}
	for _, p := range parts[1:] {
		switch p {
		case "parent":
			tag.parent = true
		case "abstract":
			tag.abstract = true
		}
	}
	return tag
}

// typeName returns the package-qualified name of t.
func typeName(t reflect.Type) string {
	if t.Name() == "" {
		return t.String()
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

// embeddedStruct reports the struct type behind an anonymous field, if any.
func embeddedStruct(f reflect.StructField) (reflect.Type, bool) {
	if !f.Anonymous {
		return nil, false
	}
	t := f.Type
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t, t.Kind() == reflect.Struct
}

// classOf builds the class description of struct type t. The embedded struct
// tagged `dumpy:"parent"` is the parent; every other embedded struct is a
// trait. Embedded interfaces and registered interfaces implemented by t or *t
// are the class interfaces.
func classOf(t reflect.Type) *Class {
	return classOfSeen(t, map[reflect.Type]bool{})
}

func classOfSeen(t reflect.Type, seen map[reflect.Type]bool) *Class {
	seen[t] = true
	c := &Class{Name: typeName(t)}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		tag := parseTag(f.Tag.Get(tagName))
		if tag.skip {
			continue
		}
		if f.Type.Kind() == reflect.Interface {
			c.Interfaces = append(c.Interfaces, interfaceOf(f.Type))
			continue
		}
		st, ok := embeddedStruct(f)
		if !ok || seen[st] {
			continue
		}
		if tag.parent && c.Parent == nil {
			c.Parent = classOfSeen(st, seen)
			c.Parent.Abstract = tag.abstract
			continue
		}
		c.Traits = append(c.Traits, traitOf(st, seen))
	}

	pt := reflect.PointerTo(t)
	for _, it := range registeredInterfaces() {
		if t.Implements(it) || pt.Implements(it) {
			c.Interfaces = append(c.Interfaces, interfaceOf(it))
		}
	}
	return c
}

// interfaceOf describes interface type it. Registered interfaces whose
// method sets it contains are listed as extended.
func interfaceOf(it reflect.Type) *Interface {
	iface := &Interface{Name: typeName(it)}
	for _, other := range registeredInterfaces() {
		if other != it && it.Implements(other) {
			iface.Extends = append(iface.Extends, &Interface{Name: typeName(other)})
		}
	}
	return iface
}

func traitOf(t reflect.Type, seen map[reflect.Type]bool) *Trait {
	seen[t] = true
	tr := &Trait{Name: typeName(t)}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if parseTag(f.Tag.Get(tagName)).skip {
			continue
		}
		st, ok := embeddedStruct(f)
		if !ok || seen[st] {
			continue
		}
		tr.Uses = append(tr.Uses, traitOf(st, seen))
	}
	return tr
}

// reflectObject describes struct value v. addr is the address the value was
// reached through, or 0 for a value without identity.
func (d *Dumper) reflectObject(v reflect.Value, addr uintptr) *Object {
	t := v.Type()
	if !v.CanAddr() {
		cp := reflect.New(t).Elem()
		cp.Set(v)
		v = cp
	}
	return &Object{
		Class:  classOf(t),
		ID:     strconv.Itoa(d.nextID(addr)),
		Fields: structFields(v),
	}
}

// structFields lists the visible fields of v in declaration order, promoted
// fields included. Embedded structs contribute their fields, not themselves.
func structFields(v reflect.Value) []Field {
	var fields []Field
	var skipped [][]int
	for _, sf := range reflect.VisibleFields(v.Type()) {
		if hasPrefix(sf.Index, skipped) {
			continue
		}
		tag := parseTag(sf.Tag.Get(tagName))
		if tag.skip {
			skipped = append(skipped, sf.Index)
			continue
		}
		if _, ok := embeddedStruct(sf); ok {
			continue
		}
		fv, err := v.FieldByIndexErr(sf.Index)
		if err != nil {
			// promoted through a nil embedded pointer
			continue
		}
		name := sf.Name
		if tag.name != "" {
			name = tag.name
		}
		fields = append(fields, Field{Name: name, Value: valueInterface(fv)})
	}
	return fields
}

func hasPrefix(index []int, prefixes [][]int) bool {
	for _, p := range prefixes {
		if len(p) > len(index) {
			continue
		}
		match := true
		for i := range p {
			if p[i] != index[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// valueInterface returns v as an interface value, reading unexported fields
// through unsafe when v is addressable.
func valueInterface(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	if v.CanInterface() {
		return v.Interface()
	}
	if v.CanAddr() {
		return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem().Interface()
	}
	return fmt.Sprintf("<unexported %s>", v.Type().String())
}

// isComposite reports whether v renders on several lines.
func isComposite(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case Object, Describer:
		return true
	case *Object:
		return x != nil
	}
	if _, ok := asSequence(v); ok {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Struct:
		_, ok := compact(rv)
		return !ok
	case reflect.Ptr:
		if rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return false
		}
		_, ok := compact(rv.Elem())
		return !ok
	default:
		return false
	}
}
