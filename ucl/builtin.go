package ucl

import (
	"maps"
	"slices"
	"strings"
	"sync"
)

// BuiltinEnv returns the builtin query environment constructed with default
// settings. The result is shared; callers must not modify it.
//
//nolint:gochecknoglobals
var BuiltinEnv = sync.OnceValue(func() map[string]any {
	return builtinEnv(makeConfig())
})

// BuiltinEnvKeys returns the sorted top-level names of the builtin query
// environment.
func BuiltinEnvKeys() []string {
	return slices.Sorted(maps.Keys(BuiltinEnv()))
}

// BuiltinEnvLookup returns the sorted names nested under the given dotted
// path in the builtin query environment, or nil if the path does not name
// a group of builtins.
func BuiltinEnvLookup(path string) []string {
	var current any = BuiltinEnv()

	for _, seg := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}

		current, ok = m[seg]
		if !ok {
			return nil
		}
	}

	m, ok := current.(map[string]any)
	if !ok {
		return nil
	}

	return slices.Sorted(maps.Keys(m))
}
