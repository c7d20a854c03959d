package ucl

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"runtime"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/mung"
)

// Query evaluates an expr expression against a parsed document. The
// document's top-level keys become identifiers in the expression
// environment, shadowing the builtins where names collide. Results are
// plain Go data in the shapes produced by [Value.Native].
//
// Hyphenated keys are supported: a-b resolves the key "a-b" whenever it
// exists, falling back to subtraction otherwise.
func Query(
	ctx context.Context,
	d Document,
	source string,
	opts ...Option,
) (any, error) {
	cfg := makeConfig(opts...)

	native := d.Native()

	env := builtinEnv(cfg)
	maps.Copy(env, native)

	patcher := &hyphenPatcher{
		doc:    native,
		logger: cfg.logger,
	}

	program, err := expr.Compile(source,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
		expr.Patch(patcher),
	)
	if err != nil {
		return nil, ErrQueryCompile.Wrap(err).
			With(slog.String("source", source))
	}

	cfg.logger.TraceContext(ctx, "query compiled",
		slog.String("source", source))

	result, err := vm.Run(program, env)
	if err != nil {
		return nil, ErrQueryRun.Wrap(err).
			With(slog.String("source", source))
	}

	return result, nil
}

// builtinEnv returns the builtin variables and functions available to
// query expressions. Document keys shadow any of these names.
func builtinEnv(cfg config) map[string]any {
	return map[string]any{
		// Host information.
		"platform": getPlatform(),
		"hostname": getHostname(),

		// Working directory.
		"cwd": getCwd,

		// Process environment, through the configured lookup hook.
		"env": func(key string) string {
			val, _ := cfg.lookupEnv(key)

			return val
		},

		// Filesystem predicates.
		"file": map[string]any{
			"exists": fileExists,
			"isDir":  fileIsDir,
		},

		// Path manipulation.
		"path": map[string]any{
			"abs": pathAbs,
			"cat": pathCat,
			"rel": pathRel,
		},

		// PATH-like list manipulation via mung.
		"mung": map[string]any{
			"prefix":   mungPrefix,
			"prefixif": mungPrefixIf,
		},
	}
}

// platform contains string identifiers for an operating system and
// instruction set architecture, using Go naming conventions.
type platform struct {
	OS   string
	Arch string
}

func getPlatform() platform {
	return platform{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}
}

func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return ""
	}

	return hostname
}

func getCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return pathAbs(".")
	}

	return cwd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return !os.IsNotExist(err)
}

func fileIsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return info.IsDir()
}

func pathAbs(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return p
}

func pathCat(elem ...string) string {
	return filepath.Join(elem...)
}

func pathRel(from, to string) string {
	p, err := filepath.Rel(pathAbs(from), pathAbs(to))
	if err != nil {
		return pathCat(from, to)
	}

	return p
}

func mungPrefix(key string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(key),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

func mungPrefixIf(
	key string,
	predicate func(string) bool,
	prefix ...string,
) string {
	return mung.Make(
		mung.WithSubjectItems(key),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}
