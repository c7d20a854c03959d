package ucl

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// literalNumber is the number grammar: optional sign, digits, optional
// fraction. Exponents and bare dots are not numbers.
var literalNumber = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// arrayNewlines collapses newlines and surrounding space inside a
// sequence literal so elements split cleanly.
var arrayNewlines = regexp.MustCompile(`\s*\n\s*`)

// parseSimpleValue parses a literal: null, booleans, quoted strings,
// sequences, JSON mappings, numbers. Anything else is an opaque string.
func (in *interp) parseSimpleValue(
	ctx context.Context,
	raw string,
	section []string,
	depth int,
) (Value, error) {
	raw = strings.TrimSpace(raw)

	switch strings.ToLower(raw) {
	case "null":
		return Null(), nil

	case "true":
		return Bool(true), nil

	case "false":
		return Bool(false), nil
	}

	if raw != "" {
		first, last := raw[0], raw[len(raw)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			if len(raw) == 1 {
				return String(""), nil
			}

			return String(unescapeText(raw[1 : len(raw)-1])), nil
		}
	}

	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		return in.parseSequence(ctx, raw, section, depth)
	}

	if strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}") {
		return parseMapping(raw)
	}

	if literalNumber.MatchString(raw) {
		f, _ := strconv.ParseFloat(raw, 64)

		return Number(f), nil
	}

	return String(raw), nil
}

// parseSequence parses a bracketed sequence literal. Elements split on
// top-level commas and re-enter the full pipeline; empty segments are
// dropped.
func (in *interp) parseSequence(
	ctx context.Context,
	raw string,
	section []string,
	depth int,
) (Value, error) {
	content := strings.TrimSpace(raw[1 : len(raw)-1])
	if content == "" {
		return Sequence(), nil
	}

	content = arrayNewlines.ReplaceAllString(content, " ")

	var (
		items    []Value
		element  strings.Builder
		brackets int
		braces   int
		inString bool
		quote    byte
	)

	flush := func() error {
		text := strings.TrimSpace(element.String())
		element.Reset()

		if text == "" {
			return nil
		}

		val, err := in.evalValue(ctx, text, section, depth+1)
		if err != nil {
			return err
		}

		items = append(items, val)

		return nil
	}

	for i := 0; i < len(content); i++ {
		ch := content[i]

		switch {
		case !inString && (ch == '"' || ch == '\''):
			inString = true
			quote = ch

			element.WriteByte(ch)

		case inString && ch == quote && (i == 0 || content[i-1] != '\\'):
			inString = false

			element.WriteByte(ch)

		case inString:
			element.WriteByte(ch)

		case ch == '[':
			brackets++

			element.WriteByte(ch)

		case ch == ']':
			brackets--

			element.WriteByte(ch)

		case ch == '{':
			braces++

			element.WriteByte(ch)

		case ch == '}':
			braces--

			element.WriteByte(ch)

		case ch == ',' && brackets == 0 && braces == 0:
			if err := flush(); err != nil {
				return Value{}, err
			}

		default:
			element.WriteByte(ch)
		}
	}

	if err := flush(); err != nil {
		return Value{}, err
	}

	return Sequence(items...), nil
}

// parseMapping parses a braced literal as strict JSON.
func parseMapping(raw string) (Value, error) {
	var native any

	if err := json.Unmarshal([]byte(raw), &native); err != nil {
		return Value{}, ErrSyntax.Wrap(err).WithFragment(raw)
	}

	return FromNative(native), nil
}

// unescapeText resolves the escape table \n \t \r \\ \" \' in string
// content. An unrecognized escape keeps its backslash.
func unescapeText(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				sb.WriteByte('\n')
				i++

				continue

			case 't':
				sb.WriteByte('\t')
				i++

				continue

			case 'r':
				sb.WriteByte('\r')
				i++

				continue

			case '\\', '"', '\'':
				sb.WriteByte(s[i+1])
				i++

				continue
			}
		}

		sb.WriteByte(s[i])
	}

	return sb.String()
}

// quoteText wraps s in double quotes, escaping exactly what unescapeText
// resolves, so the result survives a round trip.
func quoteText(s string) string {
	var sb strings.Builder

	sb.Grow(len(s) + 2)
	sb.WriteByte('"')

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			sb.WriteString(`\n`)

		case '\t':
			sb.WriteString(`\t`)

		case '\r':
			sb.WriteString(`\r`)

		case '\\':
			sb.WriteString(`\\`)

		case '"':
			sb.WriteString(`\"`)

		default:
			sb.WriteByte(s[i])
		}
	}

	sb.WriteByte('"')

	return sb.String()
}
