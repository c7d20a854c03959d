package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ucl/log"
	"github.com/ardnew/ucl/ucl"
)

// resolve returns a [kong.ConfigurationLoader] that parses config files
// written in the interpreter's own configuration language.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx, "config"), "/path/to/config")
//
// The named top-level section of the document supplies flag values:
//   - Scalar fields map directly to flags of the same name
//   - Flag names with hyphens (e.g., "log-level") may use either hyphens
//     or underscores in the config file (e.g., "log_level")
//   - Arrays are applied element-wise to repeatable flags
//   - Numbers are converted to strings so kong can reparse them against
//     the flag's declared type
//
// Example config file:
//
//	[config]
//	log-level  = "debug"
//	log-format = "json"
//	log-pretty = true
//
// This configuration will be applied to kong flags:
//
//	--log-level=debug
//	--log-format=json
//	--log-pretty=true
//
// Command-line flags override config file values.
func resolve(ctx context.Context, name string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		doc, err := ucl.ParseReader(ctx, r,
			ucl.WithCache(true),
			ucl.WithLogger(log.With(slog.String("component", "resolver"))),
		)
		if err != nil {
			// Parse error - return empty config
			return config{}, nil
		}

		section, ok := doc.Lookup(name)
		if !ok || section.Kind != ucl.KindMapping {
			// Section not found - return empty config
			return config{}, nil
		}

		return config(sectionToMap(section)), nil
	}
}

// config implements [kong.Resolver] for configuration-language files.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but config keys
	// may use underscores. Try both forms.
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	// Look up the value in our config
	if value, ok := r[name]; ok {
		return value, nil
	}

	// Try underscore variant
	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// sectionToMap flattens a mapping value to a native map representation.
func sectionToMap(section ucl.Value) map[string]any {
	result := make(map[string]any, len(section.Fields))

	for key, val := range section.Fields {
		result[key] = flagValue(val)
	}

	return result
}

// flagValue converts one field to the form kong applies to a flag.
func flagValue(v ucl.Value) any {
	switch v.Kind {
	case ucl.KindNumber:
		// Kong requires numbers as strings for parsing
		if v.Number == float64(int64(v.Number)) {
			return strconv.FormatInt(int64(v.Number), 10)
		}

		return strconv.FormatFloat(v.Number, 'f', -1, 64)

	case ucl.KindSequence:
		items := make([]any, len(v.Items))
		for i := range v.Items {
			items[i] = flagValue(v.Items[i])
		}

		return items

	default:
		return v.Native()
	}
}
