package ucl

import (
	"context"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
)

// includeDirective matches the directive at the start of a trimmed line.
// The quote pair need not match and trailing text is ignored, but the path
// itself must be quoted and non-empty.
var includeDirective = regexp.MustCompile(`^include\s+["']([^"']+)["']`)

// expandIncludes splices included files into the source, recursively.
// Sources arrive comment-stripped; included files are comment-stripped
// before splicing. Every path resolves against the one configured base
// directory regardless of nesting.
func (in *interp) expandIncludes(
	ctx context.Context,
	source string,
	depth int,
) (string, error) {
	if depth > in.cfg.maxDepth {
		return "", ErrSyntax.Wrap(ErrMaxDepthExceeded).
			With(slog.Int("depth", depth))
	}

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		stripped := strings.TrimSpace(line)

		if !strings.HasPrefix(stripped, "include ") {
			out = append(out, line)

			continue
		}

		m := includeDirective.FindStringSubmatch(stripped)
		if m == nil {
			return "", ErrSyntax.WithFragment(stripped).
				With(slog.String("expected", `include "path"`))
		}

		path := filepath.Join(in.cfg.baseDir, m[1])

		data, err := in.cfg.readFile(path)
		if err != nil {
			return "", ErrInclusion.Wrap(err).
				With(slog.String("path", path))
		}

		in.cfg.logger.TraceContext(ctx, "include expanded",
			slog.String("path", path),
			slog.Int("depth", depth))

		expanded, err := in.expandIncludes(
			ctx, stripComments(string(data)), depth+1)
		if err != nil {
			return "", err
		}

		out = append(out, expanded)
	}

	return strings.Join(out, "\n"), nil
}
