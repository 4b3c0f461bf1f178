package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/dragon/log"
)

// resolve is a [kong.ConfigurationLoader] that reads a YAML configuration
// file.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// The file is a flat mapping from flag names to values:
//   - Flag names with hyphens (e.g., "log-level") may also be written with
//     underscores (e.g., "log_level")
//   - Sequences provide the values of slice flags
//   - Scalars of any YAML type are accepted
//
// Example config file (see "dragon init"):
//
//	log-level: debug
//	log-format: text
//	catalog:
//	  - ~/levels/extra.yaml
//
// Command-line flags override config file values. A file that cannot be
// parsed is ignored with a warning.
func resolve(r io.Reader) (kong.Resolver, error) {
	var raw map[string]any

	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if !errors.Is(err, io.EOF) {
			log.Warn("ignoring configuration file", slog.String("error", err.Error()))
		}

		return config{}, nil
	}

	cfg := make(config, len(raw))
	for key, value := range raw {
		cfg[key] = native(value)
	}

	return cfg, nil
}

// config implements [kong.Resolver] for YAML configuration.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	name := flag.Name

	if value, ok := r[name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(name, "-", "_")]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// native converts a decoded YAML value to the form kong expects. Kong
// requires numbers as strings for parsing.
func native(v any) any {
	switch v := v.(type) {
	case int, int64, uint64:
		return fmt.Sprint(v)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = native(e)
		}

		return out

	default:
		return v
	}
}
