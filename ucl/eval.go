package ucl

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// envReference matches an environment reference occupying the whole value.
var envReference = regexp.MustCompile(`^\$ENV\{([^}]+)\}$`)

// evalValue resolves one raw value string through the ordered pipeline:
// environment references, conversion suffixes, expressions, references,
// then literals. The first matching stage wins. The section path in
// effect is threaded through for reference resolution.
func (in *interp) evalValue(
	ctx context.Context,
	raw string,
	section []string,
	depth int,
) (Value, error) {
	if depth > in.cfg.maxDepth {
		return Value{}, ErrSyntax.Wrap(ErrMaxDepthExceeded).
			With(slog.Int("depth", depth))
	}

	raw = strings.TrimSpace(raw)

	if raw == "" {
		return Null(), nil
	}

	if m := envReference.FindStringSubmatch(raw); m != nil {
		return in.lookupEnv(ctx, m[1]), nil
	}

	if strings.Contains(raw, ".") && !isSimpleLiteral(raw) {
		if dot := strings.LastIndexByte(raw, '.'); dot >= 0 {
			if target, ok := conversionTarget(raw[dot+1:]); ok {
				base, err := in.evalValue(ctx, raw[:dot], section, depth+1)
				if err != nil {
					return Value{}, err
				}

				return convert(base, target)
			}
		}
	}

	if containsOperators(raw) && !isSimpleLiteral(raw) {
		return in.evalExpression(ctx, raw, section, depth)
	}

	if !isSimpleLiteral(raw) && isReference(raw) {
		return in.resolve(raw, section)
	}

	return in.parseSimpleValue(ctx, raw, section, depth)
}

// lookupEnv resolves an environment reference: the raw text when the
// variable is set, null when it is not. The value is never re-evaluated.
func (in *interp) lookupEnv(ctx context.Context, name string) Value {
	text, ok := in.cfg.lookupEnv(name)
	if !ok {
		in.cfg.logger.TraceContext(ctx, "env unset",
			slog.String("name", name))

		return Null()
	}

	return String(text)
}

// conversionTarget matches a type-conversion suffix segment, ignoring
// case. Surrounding whitespace in the segment does not match.
func conversionTarget(segment string) (string, bool) {
	switch target := strings.ToLower(segment); target {
	case "int", "float", "string", "bool":
		return target, true
	}

	return "", false
}

// containsOperators reports whether an arithmetic operator appears
// outside quotes.
func containsOperators(text string) bool {
	inString := false

	var quote byte

	for i := 0; i < len(text); i++ {
		ch := text[i]

		switch {
		case !inString && (ch == '"' || ch == '\''):
			inString = true
			quote = ch

		case inString && ch == quote && (i == 0 || text[i-1] != '\\'):
			inString = false

		case !inString && isOperator(ch):
			return true
		}
	}

	return false
}

func isOperator(ch byte) bool {
	switch ch {
	case '+', '-', '*', '/', '%':
		return true
	}

	return false
}

// isSimpleLiteral reports whether text stands on its own as a literal: a
// double-quoted string with no operators outside quotes, a bracketed or
// braced structure, a boolean or null word, or anything float-shaped.
// The numeric test accepts more than the literal number grammar, so
// exponent-shaped text skips the expression stage and falls back to an
// opaque string.
func isSimpleLiteral(text string) bool {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) &&
		!containsOperators(text) {
		return true
	}

	if (strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]")) ||
		(strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}")) {
		return true
	}

	switch strings.ToLower(text) {
	case "true", "false", "null":
		return true
	}

	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return true
	}

	return false
}
