package ucl

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
)

// ParseString parses a complete document from source text.
// The returned Document is independent of the input and of any cache.
func ParseString(
	ctx context.Context,
	source string,
	opts ...Option,
) (Document, error) {
	cfg := makeConfig(opts...)

	if cfg.cache {
		return parseCached(ctx, source, cfg)
	}

	return parse(ctx, source, cfg)
}

// ParseFile parses the document in the named file.
// Unless overridden with [WithBaseDir], includes resolve against the
// file's directory.
func ParseFile(
	ctx context.Context,
	path string,
	opts ...Option,
) (Document, error) {
	cfg := makeConfig(
		append([]Option{WithBaseDir(filepath.Dir(path))}, opts...)...)

	data, err := cfg.readFile(path)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("path", path))
	}

	if cfg.cache {
		return parseCached(ctx, string(data), cfg)
	}

	return parse(ctx, string(data), cfg)
}

// parse runs the full pipeline over one source with a fixed configuration.
func parse(ctx context.Context, source string, cfg config) (Document, error) {
	in := &interp{
		doc: make(Document),
		cfg: cfg,
	}

	stripped := stripComments(source)

	in.cfg.logger.TraceContext(ctx, "comments stripped",
		slog.Int("bytes", len(stripped)))

	expanded, err := in.expandIncludes(ctx, stripped, 0)
	if err != nil {
		return nil, err
	}

	if err := in.assemble(ctx, strings.Split(expanded, "\n")); err != nil {
		return nil, err
	}

	in.applyDefaults(ctx)

	in.cfg.logger.TraceContext(ctx, "parse complete",
		slog.Int("keys", len(in.doc)),
		slog.Int("defaults", len(in.defaults)))

	return in.doc, nil
}

// interp holds the state of one parse: the document assembled so far, the
// defaults captured for post-assembly application, and the configuration.
// Each parse gets a fresh interp.
type interp struct {
	doc      Document
	defaults []defaultEntry
	cfg      config
}

// defaultEntry is one captured line of the defaults block.
// The path is the literal dotted key; the value is already evaluated.
type defaultEntry struct {
	path  string
	value Value
}
