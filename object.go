package dumpy

import (
	"fmt"
	"strconv"
	"strings"
)

// Object describes an instance for the object report.
type Object struct {
	// Class is the runtime type. A nil Class is a programming error and
	// makes rendering panic.
	Class *Class
	// ID is the display identity. When empty the Dumper assigns one.
	ID string
	// Fields are the instance fields in declaration order.
	Fields []Field
}

// Field is a named instance field value.
type Field struct {
	Name  string
	Value any
}

// Class describes a type and its composition.
type Class struct {
	Name       string
	Abstract   bool
	Parent     *Class
	Interfaces []*Interface
	Traits     []*Trait
}

// Interface is a named contract a class conforms to. Extends lists the
// contracts it inherits.
type Interface struct {
	Name    string
	Extends []*Interface
}

// Trait is a reusable bundle composed into a class, possibly composing
// further traits itself.
type Trait struct {
	Name string
	Uses []*Trait
}

// Describer is implemented by values that build their own object report.
type Describer interface {
	DumpObject() Object
}

// Lineage lists the ancestors from the immediate parent to the root.
func (c *Class) Lineage() []*Class {
	var out []*Class
	for p := c.Parent; p != nil; p = p.Parent {
		out = append(out, p)
	}
	return out
}

// AllInterfaces returns the deduplicated names of every interface the class
// conforms to, including those declared by ancestors and inherited through
// Extends.
func (c *Class) AllInterfaces() []string {
	var names []string
	seen := make(map[string]bool)
	var walk func(list []*Interface)
	walk = func(list []*Interface) {
		for _, iface := range list {
			if iface == nil || seen[iface.Name] {
				continue
			}
			seen[iface.Name] = true
			names = append(names, iface.Name)
			walk(iface.Extends)
		}
	}
	for k := c; k != nil; k = k.Parent {
		walk(k.Interfaces)
	}
	return names
}

// AllTraits flattens the traits composed into the class, directly or through
// other traits, into one deduplicated list.
func (c *Class) AllTraits() []string {
	var names []string
	seen := make(map[string]bool)
	var walk func(list []*Trait)
	walk = func(list []*Trait) {
		for _, t := range list {
			if t == nil || seen[t.Name] {
				continue
			}
			seen[t.Name] = true
			names = append(names, t.Name)
			walk(t.Uses)
		}
	}
	walk(c.Traits)
	return names
}

func (d *Dumper) renderObject(obj *Object) string {
	if obj.Class == nil {
		panic(fmt.Sprintf("dumpy: object #%s has no type metadata", obj.ID))
	}
	id := obj.ID
	if id == "" {
		id = strconv.Itoa(d.nextID(0))
	}

	var b strings.Builder
	b.WriteString(obj.Class.Name)
	b.WriteString(" #")
	b.WriteString(id)
	b.WriteString("\n")

	if !d.config.boolOption(OptObjectLimitedInfo) {
		var parents []string
		for _, p := range obj.Class.Lineage() {
			name := p.Name
			if p.Abstract {
				name += " (abstract)"
			}
			parents = append(parents, name)
		}
		writeReportLine(&b, labelParents, parents)
		writeReportLine(&b, labelInterfaces, obj.Class.AllInterfaces())
		writeReportLine(&b, labelTraits, obj.Class.AllTraits())
	}

	b.WriteString(labelProperties)
	for _, f := range obj.Fields {
		value := d.dump(f.Value)
		if isComposite(f.Value) {
			value = indentInterior(value, propertyIndent)
		}
		b.WriteString("\n")
		b.WriteString(propertyIndent)
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(value)
	}
	return b.String()
}

func writeReportLine(b *strings.Builder, label string, names []string) {
	b.WriteString(label)
	if len(names) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(names, ", "))
	}
	b.WriteString("\n")
}

// indentInterior prefixes every non-empty line after the first with indent.
// A trailing line break is dropped.
func indentInterior(s, indent string) string {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = indent + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
