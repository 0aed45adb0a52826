package dumpy

import (
	"errors"
	"fmt"
	"math"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Sentinel errors returned by the option accessors.
var (
	// ErrUnknownOption is returned when reading an option that does not exist.
	ErrUnknownOption = errors.New("unknown option")
	// ErrInvalidOption is returned when writing an option that does not exist.
	ErrInvalidOption = errors.New("invalid option")
)

// optionField 配置项定义
type optionField struct {
	envKey       string                   // 环境变量键名
	defaultValue any                      // 默认值
	parse        func(string) (any, bool) // 解析环境变量（可选）
}

// optionNames keeps the canonical order of the whitelist.
var optionNames = []string{
	OptStrMaxLength,
	OptBoolLowercase,
	OptNullLowercase,
	OptRoundDouble,
	OptReplaceNewline,
	OptArrayMaxElements,
	OptArrayIndenting,
	OptObjectLimitedInfo,
}

// 配置项映射表
var optionFields = map[string]optionField{
	OptStrMaxLength: {
		envKey:       EnvStrMaxLength,
		defaultValue: DefaultStrMaxLength,
		parse:        parseNonNegativeInt,
	},
	OptBoolLowercase: {
		envKey:       EnvBoolLowercase,
		defaultValue: false,
		parse:        parseBool,
	},
	OptNullLowercase: {
		envKey:       EnvNullLowercase,
		defaultValue: false,
		parse:        parseBool,
	},
	OptRoundDouble: {
		envKey:       EnvRoundDouble,
		defaultValue: false,
		parse: func(v string) (any, bool) {
			if v == "false" {
				return false, true
			}
			return parseNonNegativeInt(v)
		},
	},
	OptReplaceNewline: {
		envKey:       EnvReplaceNewline,
		defaultValue: true,
		parse:        parseBool,
	},
	OptArrayMaxElements: {
		envKey:       EnvArrayMaxElements,
		defaultValue: DefaultArrayMaxElements,
		parse:        parseNonNegativeInt,
	},
	OptArrayIndenting: {
		envKey:       EnvArrayIndenting,
		defaultValue: DefaultArrayIndenting,
		parse: func(v string) (any, bool) {
			return v, true
		},
	},
	OptObjectLimitedInfo: {
		envKey:       EnvObjectLimitedInfo,
		defaultValue: false,
		parse:        parseBool,
	},
}

func parseNonNegativeInt(v string) (any, bool) {
	i, err := strconv.Atoi(v)
	if err != nil || i < 0 {
		return nil, false
	}
	return i, true
}

func parseBool(v string) (any, bool) {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, false
	}
	return b, true
}

// OptionNames returns the recognized option names in canonical order.
func OptionNames() []string {
	out := make([]string, len(optionNames))
	copy(out, optionNames)
	return out
}

// configStore holds the live option values. The key set is fixed at
// construction; only values are replaced.
type configStore struct {
	values map[string]any
}

func newConfigStore() *configStore {
	c := &configStore{values: make(map[string]any, len(optionFields))}
	for name, field := range optionFields {
		c.values[name] = field.defaultValue
	}
	return c
}

func (c *configStore) get(name string) (any, error) {
	v, ok := c.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
	return v, nil
}

// set accepts any value type for a known name.
func (c *configStore) set(name string, value any) error {
	if _, ok := c.values[name]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidOption, name)
	}
	c.values[name] = value
	return nil
}

func (c *configStore) snapshot() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// loadFromEnv 从环境变量加载配置，无效值保留默认值
func (c *configStore) loadFromEnv() {
	for _, name := range optionNames {
		field := optionFields[name]
		envValue, ok := os.LookupEnv(field.envKey)
		if !ok {
			continue
		}
		// 缩进允许空字符串，其余选项空值视为未设置
		if envValue == "" && name != OptArrayIndenting {
			continue
		}
		if v, ok := field.parse(envValue); ok {
			c.values[name] = v
		}
	}
}

func (c *configStore) intOption(name string) int {
	return toInt(c.values[name])
}

func (c *configStore) boolOption(name string) bool {
	return toBool(c.values[name])
}

func (c *configStore) stringOption(name string) string {
	switch s := c.values[name].(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}

// roundPlaces reports the rounding precision, or false when rounding is off.
func (c *configStore) roundPlaces() (int, bool) {
	switch v := c.values[OptRoundDouble].(type) {
	case nil:
		return 0, false
	case bool:
		if !v {
			return 0, false
		}
		return 1, true
	default:
		return toInt(v), true
	}
}

// toInt reads a loosely typed option value as an integer.
func toInt(v any) int {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt {
			return math.MaxInt
		}
		return int(u)
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) {
			return 0
		}
		if f >= math.MaxInt {
			return math.MaxInt
		}
		if f <= math.MinInt {
			return math.MinInt
		}
		return int(f)
	case reflect.Bool:
		if rv.Bool() {
			return 1
		}
		return 0
	case reflect.String:
		s := strings.TrimSpace(rv.String())
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return toInt(f)
		}
		return 0
	default:
		return 0
	}
}

// toBool reads a loosely typed option value as a boolean.
func toBool(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Invalid:
		return false
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		s := rv.String()
		return s != "" && s != "0" && s != "false"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return !rv.IsZero()
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return !rv.IsNil()
	default:
		return true
	}
}
