// Package decode turns JSON and YAML documents into values that dumpy renders
// in document order.
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/toheart/dumpy"
	"gopkg.in/yaml.v3"
)

// Sentinel errors returned by the decoders.
var (
	// ErrInvalidJSON is returned when the input is not a single valid JSON document.
	ErrInvalidJSON = errors.New("invalid json")
	// ErrInvalidYAML wraps parse failures reported by the YAML decoder.
	ErrInvalidYAML = errors.New("invalid yaml")
	// ErrUnknownFormat is returned for a format name other than auto, json or yaml.
	ErrUnknownFormat = errors.New("unknown format")
)

// Format names an input encoding.
type Format string

const (
	// FormatAuto detects the format from the file name, then the content.
	FormatAuto Format = "auto"
	// FormatJSON decodes with strict JSON syntax.
	FormatJSON Format = "json"
	// FormatYAML decodes the first YAML document.
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatAuto, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Detect picks the format from a file name extension.
func Detect(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// Decode parses data in the given format. FormatAuto sniffs the content.
func Decode(format Format, data []byte) (any, error) {
	switch format {
	case FormatJSON:
		return JSON(data)
	case FormatYAML:
		return YAML(data)
	case FormatAuto, "":
		return Auto(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
}

// Auto decodes data as JSON when it looks like a JSON document and as YAML
// otherwise. YAML is a superset of JSON so the fallback also covers scalars.
func Auto(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') && gjson.ValidBytes(trimmed) {
		return JSON(trimmed)
	}
	return YAML(data)
}

// JSON decodes a JSON document. Objects become map-like sequences whose keys
// keep their document order.
func JSON(data []byte) (any, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	return fromJSON(gjson.ParseBytes(data)), nil
}

func fromJSON(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return jsonNumber(r)
	case gjson.String:
		return r.Str
	}

	seq := dumpy.Sequence{}
	if r.IsArray() {
		r.ForEach(func(_, value gjson.Result) bool {
			seq = append(seq, dumpy.Entry{Key: len(seq), Value: fromJSON(value)})
			return true
		})
		return seq
	}
	r.ForEach(func(key, value gjson.Result) bool {
		seq = append(seq, dumpy.Entry{Key: key.Str, Value: fromJSON(value)})
		return true
	})
	return seq
}

// jsonNumber keeps integral literals as int64 when they fit.
func jsonNumber(r gjson.Result) any {
	if !strings.ContainsAny(r.Raw, ".eE") {
		if i, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
			return i
		}
	}
	return r.Num
}

// YAML decodes the first document of a YAML stream. Aliases are expanded and
// mappings keep their document order.
func YAML(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return fromYAML(&root, 0)
}

// maxAliasDepth bounds alias expansion so self-referencing documents fail
// instead of recursing forever.
const maxAliasDepth = 100

func fromYAML(n *yaml.Node, aliases int) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromYAML(n.Content[0], aliases)
	case yaml.AliasNode:
		if aliases >= maxAliasDepth {
			return nil, fmt.Errorf("%w: alias nesting too deep at line %d", ErrInvalidYAML, n.Line)
		}
		return fromYAML(n.Alias, aliases+1)
	case yaml.SequenceNode:
		seq := make(dumpy.Sequence, 0, len(n.Content))
		for i, item := range n.Content {
			v, err := fromYAML(item, aliases)
			if err != nil {
				return nil, err
			}
			seq = append(seq, dumpy.Entry{Key: i, Value: v})
		}
		return seq, nil
	case yaml.MappingNode:
		seq := make(dumpy.Sequence, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := fromYAML(n.Content[i], aliases)
			if err != nil {
				return nil, err
			}
			v, err := fromYAML(n.Content[i+1], aliases)
			if err != nil {
				return nil, err
			}
			seq = append(seq, dumpy.Entry{Key: k, Value: v})
		}
		return seq, nil
	}
	return yamlScalar(n)
}

func yamlScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		// out of range integers fall back to float
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
		return f, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
		return f, nil
	}
	return n.Value, nil
}
