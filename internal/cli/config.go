package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/toheart/dumpy"
)

// fileConfig is the TOML configuration file layout.
//
//	journal = "dumps.db"
//	log_file = "dumpy.log"
//	format = "auto"
//
//	[options]
//	str_max_length = 80
//	array_indenting = "  "
type fileConfig struct {
	Journal string         `toml:"journal"`
	LogFile string         `toml:"log_file"`
	Format  string         `toml:"format"`
	Options map[string]any `toml:"options"`
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// setting is one name=value override.
type setting struct {
	name  string
	value any
}

// parseSet splits a --set argument and types its value as bool, int or string.
func parseSet(arg string) (setting, error) {
	name, raw, ok := strings.Cut(arg, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return setting{}, fmt.Errorf("invalid --set %q: want name=value", arg)
	}
	return setting{name: name, value: parseValue(raw)}, nil
}

func parseValue(raw string) any {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		return i
	}
	return raw
}

// dumperOptions orders file options by name and appends the flag overrides,
// so flags win over the file.
func dumperOptions(file map[string]any, sets []setting) []dumpy.Option {
	names := make([]string, 0, len(file))
	for name := range file {
		names = append(names, name)
	}
	sort.Strings(names)

	opts := make([]dumpy.Option, 0, len(names)+len(sets))
	for _, name := range names {
		opts = append(opts, dumpy.WithOption(name, file[name]))
	}
	for _, s := range sets {
		opts = append(opts, dumpy.WithOption(s.name, s.value))
	}
	return opts
}
