package ucl

import (
	"context"
	"log/slog"
	"slices"
	"strings"
)

// assemble runs the line loop over the fully expanded source, populating
// the document and capturing defaults entries. The section path in effect
// is threaded to every value evaluation.
func (in *interp) assemble(ctx context.Context, lines []string) error {
	var section []string

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if line == "" {
			i++

			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			name := strings.TrimSpace(line[1 : len(line)-1])

			if strings.EqualFold(name, "defaults") {
				// The defaults block runs to the end of the document.
				return in.assembleDefaults(ctx, lines, i+1, section)
			}

			section = strings.Split(name, ".")

			in.cfg.logger.TraceContext(ctx, "section",
				slog.String("name", name),
				slog.Int("line", i+1))

			i++

			continue
		}

		next, err := in.keyValue(ctx, lines, i, section)
		if err != nil {
			return err
		}

		i = next
	}

	return nil
}

// assembleDefaults captures the defaults block, which must be last.
// Keys are literal dotted paths. Values evaluate immediately, with the
// section path in effect when the block began. A repeated path keeps its
// capture position but takes the newest value.
func (in *interp) assembleDefaults(
	ctx context.Context,
	lines []string,
	start int,
	section []string,
) error {
	index := make(map[string]int)

	for i := start; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			return ErrSyntax.WithLine(i + 1).
				With(slog.String("reason", "defaults block must be last"))
		}

		if !strings.Contains(line, "=") {
			continue
		}

		key, raw, err := splitKeyValue(line)
		if err != nil {
			return withLine(err, i+1)
		}

		val, err := in.evalValue(ctx, raw, section, 0)
		if err != nil {
			return withLine(err, i+1)
		}

		if at, ok := index[key]; ok {
			in.defaults[at].value = val

			continue
		}

		index[key] = len(in.defaults)
		in.defaults = append(in.defaults, defaultEntry{path: key, value: val})
	}

	return nil
}

// keyValue parses one assignment, consuming additional lines when the
// value opens a brace or bracket structure. It returns the index of the
// next unconsumed line.
func (in *interp) keyValue(
	ctx context.Context,
	lines []string,
	idx int,
	section []string,
) (int, error) {
	line := strings.TrimSpace(lines[idx])

	if !strings.Contains(line, "=") {
		if !structuralRemnant(line) {
			return 0, ErrSyntax.WithLine(idx + 1).WithFragment(line).
				With(slog.String("reason", "line without equals sign"))
		}

		return idx + 1, nil
	}

	key, raw, err := splitKeyValue(line)
	if err != nil {
		return 0, withLine(err, idx+1)
	}

	end := idx

	if strings.HasPrefix(raw, "{") || strings.HasPrefix(raw, "[") {
		raw, end = captureStructured(lines, idx, raw)
	}

	val, err := in.evalValue(ctx, raw, section, 0)
	if err != nil {
		return 0, withLine(err, idx+1)
	}

	in.doc.Set(val, append(slices.Clone(section), key)...)

	in.cfg.logger.TraceContext(ctx, "assign",
		slog.String("key", key),
		slog.String("kind", val.Kind.String()),
		slog.Int("line", idx+1))

	return end + 1, nil
}

// structuralRemnant reports whether a line without an assignment is a
// harmless leftover of a structured value rather than a syntax error.
func structuralRemnant(line string) bool {
	if line == "" ||
		strings.HasPrefix(line, "[") ||
		strings.HasSuffix(line, "]") {
		return true
	}

	if line == "{" || line == "}" {
		return true
	}

	return strings.ContainsAny(line, `[]{},"'`)
}

// splitKeyValue splits a line at the first equals sign outside quotes.
// Both halves are returned trimmed.
func splitKeyValue(line string) (string, string, error) {
	inString := false

	var quote byte

	for i := 0; i < len(line); i++ {
		ch := line[i]

		switch {
		case !inString && (ch == '"' || ch == '\''):
			inString = true
			quote = ch

		case inString && ch == quote && (i == 0 || line[i-1] != '\\'):
			inString = false

		case !inString && ch == '=':
			return strings.TrimSpace(line[:i]),
				strings.TrimSpace(line[i+1:]),
				nil
		}
	}

	return "", "", ErrSyntax.WithFragment(line).
		With(slog.String("reason", "missing key-value separator"))
}

// captureStructured extends a value opening a brace or bracket structure
// across lines until the count balances. Counting is textual: quotes do
// not hide braces. Blank lines inside the structure are dropped.
func captureStructured(lines []string, idx int, initial string) (string, int) {
	opener, closer := "{", "}"
	if strings.HasPrefix(initial, "[") {
		opener, closer = "[", "]"
	}

	value := initial
	count := strings.Count(value, opener) - strings.Count(value, closer)

	i := idx + 1
	for i < len(lines) && count > 0 {
		line := strings.TrimSpace(lines[i])
		if line != "" {
			value += "\n" + line
			count += strings.Count(line, opener) - strings.Count(line, closer)
		}

		i++
	}

	return value, i - 1
}

// applyDefaults fills each captured defaults entry whose target is
// missing or null, in capture order. Present values are never replaced.
func (in *interp) applyDefaults(ctx context.Context) {
	for _, entry := range in.defaults {
		path := strings.Split(entry.path, ".")

		if cur, ok := in.doc.Lookup(path...); ok && !cur.IsNull() {
			continue
		}

		in.doc.Set(entry.value, path...)

		in.cfg.logger.TraceContext(ctx, "default applied",
			slog.String("path", entry.path),
			slog.String("kind", entry.value.Kind.String()))
	}
}
