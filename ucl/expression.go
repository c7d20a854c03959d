package ucl

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
)

// evalExpression evaluates arithmetic and string concatenation with ( )
// grouping. Parenthesized groups reduce innermost-rightmost first; each
// result substitutes textually into the expression, strings re-quoted so
// they remain single operands.
func (in *interp) evalExpression(
	ctx context.Context,
	expr string,
	section []string,
	depth int,
) (Value, error) {
	if !parensBalanced(expr) {
		return Value{}, ErrSyntax.WithFragment(expr).
			With(slog.String("reason", "mismatched parentheses"))
	}

	for {
		at := lastParenOpen(expr)
		if at < 0 {
			break
		}

		end := parenCloseAfter(expr, at+1)
		if end < 0 {
			return Value{}, ErrSyntax.WithFragment(expr).
				With(slog.String("reason", "mismatched parentheses"))
		}

		inner, err := in.evalFlat(ctx, expr[at+1:end], section, depth)
		if err != nil {
			return Value{}, err
		}

		expr = expr[:at] + substituteText(inner) + expr[end+1:]
	}

	return in.evalFlat(ctx, expr, section, depth)
}

// substituteText renders a reduced group for textual substitution.
// Strings re-quote; everything else uses canonical text.
func substituteText(v Value) string {
	if v.Kind == KindString {
		return quoteText(v.Text)
	}

	return v.String()
}

// evalFlat evaluates an expression without parentheses: operands resolve
// first, then one multiplicative pass and one additive pass, each left
// to right.
func (in *interp) evalFlat(
	ctx context.Context,
	expr string,
	section []string,
	depth int,
) (Value, error) {
	tokens := tokenizeExpression(expr)

	if len(tokens) == 0 {
		return Null(), nil
	}

	// Well-formed token lists alternate operand, operator, operand, ...
	// and have odd length.
	values := make([]Value, 0, len(tokens)/2+1)
	ops := make([]byte, 0, len(tokens)/2)

	for i, tok := range tokens {
		if tok.op != (i%2 == 1) {
			return Value{}, ErrSyntax.WithFragment(expr).
				With(slog.String("reason", "malformed expression"))
		}

		if tok.op {
			ops = append(ops, tok.text[0])

			continue
		}

		val, err := in.resolveOperand(ctx, tok.text, section, depth)
		if err != nil {
			return Value{}, err
		}

		values = append(values, val)
	}

	if len(tokens)%2 == 0 {
		return Value{}, ErrSyntax.WithFragment(expr).
			With(slog.String("reason", "malformed expression"))
	}

	// Multiplicative pass.
	for i := 0; i < len(ops); {
		switch ops[i] {
		case '*', '/', '%':
			res, err := applyMulDiv(ops[i], values[i], values[i+1])
			if err != nil {
				return Value{}, err
			}

			values[i] = res
			values = slices.Delete(values, i+1, i+2)
			ops = slices.Delete(ops, i, i+1)

		default:
			i++
		}
	}

	// Additive pass.
	for len(ops) > 0 {
		res, err := applyAddSub(ops[0], values[0], values[1])
		if err != nil {
			return Value{}, err
		}

		values[0] = res
		values = slices.Delete(values, 1, 2)
		ops = slices.Delete(ops, 0, 1)
	}

	return values[0], nil
}

// resolveOperand resolves one operand token: quoted or literal text
// parses directly, whole-token environment references resolve against
// the environment, reference-shaped text resolves against the document,
// and anything else parses as a literal.
func (in *interp) resolveOperand(
	ctx context.Context,
	text string,
	section []string,
	depth int,
) (Value, error) {
	if isSimpleLiteral(text) {
		return in.parseSimpleValue(ctx, text, section, depth+1)
	}

	if m := envReference.FindStringSubmatch(text); m != nil {
		return in.lookupEnv(ctx, m[1]), nil
	}

	if isReference(text) {
		return in.resolve(text, section)
	}

	return in.parseSimpleValue(ctx, text, section, depth+1)
}

// applyMulDiv applies *, /, or % to numerically coerced operands.
// Division always produces a float; modulo follows the divisor's sign.
func applyMulDiv(op byte, left, right Value) (Value, error) {
	l, err := toNumber(left)
	if err != nil {
		return Value{}, err
	}

	r, err := toNumber(right)
	if err != nil {
		return Value{}, err
	}

	switch op {
	case '*':
		return Number(l * r), nil

	case '/':
		if r == 0 {
			return Value{}, ErrType.
				With(slog.String("reason", "division by zero"))
		}

		return Number(l / r), nil

	default: // '%'
		if r == 0 {
			return Value{}, ErrType.
				With(slog.String("reason", "modulo by zero"))
		}

		return Number(modulo(l, r)), nil
	}
}

// applyAddSub applies + or -. Addition concatenates when either operand
// is a string, using canonical text for the other side; subtraction is
// always numeric.
func applyAddSub(op byte, left, right Value) (Value, error) {
	if op == '+' &&
		(left.Kind == KindString || right.Kind == KindString) {
		return String(left.String() + right.String()), nil
	}

	l, err := toNumber(left)
	if err != nil {
		return Value{}, err
	}

	r, err := toNumber(right)
	if err != nil {
		return Value{}, err
	}

	if op == '+' {
		return Number(l + r), nil
	}

	return Number(l - r), nil
}

// modulo follows sign-of-divisor semantics: the result is zero or shares
// the divisor's sign.
func modulo(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}

	return r
}

// toNumber coerces a value for arithmetic: numbers pass through,
// booleans count 1 or 0, null counts 0, and strings parse as numbers.
func toNumber(v Value) (float64, error) {
	switch v.Kind {
	case KindNumber:
		return v.Number, nil

	case KindBool:
		if v.Bool {
			return 1, nil
		}

		return 0, nil

	case KindNull:
		return 0, nil

	case KindString:
		return textToNumber(v.Text)

	default:
		return 0, ErrType.WithFragment(v.String()).
			With(slog.String("reason", "not numeric"),
				slog.String("kind", v.Kind.String()))
	}
}

// textToNumber parses text as arithmetic does: float syntax when a dot
// or exponent marker appears, integer syntax otherwise. Integer text too
// large for int64 falls back to float parsing.
func textToNumber(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)

	if strings.ContainsAny(trimmed, ".eE") {
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, ErrType.WithFragment(text).
				With(slog.String("reason", "cannot convert to number"))
		}

		return f, nil
	}

	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			if f, ferr := strconv.ParseFloat(trimmed, 64); ferr == nil {
				return f, nil
			}
		}

		return 0, ErrType.WithFragment(text).
			With(slog.String("reason", "cannot convert to number"))
	}

	return float64(n), nil
}

// exprToken is one token of a flat expression.
type exprToken struct {
	text string
	op   bool
}

// tokenizeExpression splits a flat expression into operand and operator
// tokens. Quoted strings are single operands retaining their quotes,
// operators are single characters outside quotes, and whitespace
// separates adjacent operands. A '-' at operand position, at the start
// of the expression or following an operator, signs the operand instead
// of acting as an operator, so reduced groups that splice back as
// negative numbers stay single operands.
func tokenizeExpression(expr string) []exprToken {
	var (
		tokens   []exprToken
		current  strings.Builder
		inString bool
		quote    byte
	)

	flush := func() {
		text := strings.TrimSpace(current.String())
		current.Reset()

		if text != "" {
			tokens = append(tokens, exprToken{text: text})
		}
	}

	for i := 0; i < len(expr); i++ {
		ch := expr[i]

		switch {
		case !inString && (ch == '"' || ch == '\''):
			flush()
			current.WriteByte(ch)

			inString = true
			quote = ch

		case inString && ch == quote && !escaped(expr, i):
			current.WriteByte(ch)
			tokens = append(tokens, exprToken{text: current.String()})
			current.Reset()

			inString = false

		case !inString && ch == '-' && current.Len() == 0 &&
			(len(tokens) == 0 || tokens[len(tokens)-1].op):
			current.WriteByte(ch)

		case !inString && isOperator(ch):
			flush()

			tokens = append(tokens, exprToken{text: string(ch), op: true})

		case !inString &&
			(ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'):
			flush()

		default:
			current.WriteByte(ch)
		}
	}

	flush()

	return tokens
}

// escaped reports whether the byte at i is preceded by an odd run of
// backslashes.
func escaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}

	return n%2 == 1
}

// scanOutsideQuotes visits each byte outside quoted runs.
// Returning false from visit stops the scan.
func scanOutsideQuotes(s string, visit func(i int, ch byte) bool) {
	inString := false

	var quote byte

	for i := 0; i < len(s); i++ {
		ch := s[i]

		switch {
		case !inString && (ch == '"' || ch == '\''):
			inString = true
			quote = ch

		case inString && ch == quote && !escaped(s, i):
			inString = false

		case inString:

		default:
			if !visit(i, ch) {
				return
			}
		}
	}
}

// parensBalanced reports whether parentheses outside quotes balance.
func parensBalanced(s string) bool {
	n := 0

	scanOutsideQuotes(s, func(_ int, ch byte) bool {
		switch ch {
		case '(':
			n++

		case ')':
			n--
		}

		return true
	})

	return n == 0
}

// lastParenOpen returns the index of the rightmost '(' outside quotes,
// or -1 when none remains.
func lastParenOpen(s string) int {
	at := -1

	scanOutsideQuotes(s, func(i int, ch byte) bool {
		if ch == '(' {
			at = i
		}

		return true
	})

	return at
}

// parenCloseAfter returns the index of the first ')' outside quotes at
// or after from, or -1 when none exists.
func parenCloseAfter(s string, from int) int {
	at := -1

	scanOutsideQuotes(s, func(i int, ch byte) bool {
		if i >= from && ch == ')' {
			at = i

			return false
		}

		return true
	})

	return at
}
