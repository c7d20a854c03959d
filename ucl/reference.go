package ucl

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// Resolve evaluates a reference against the document, supporting dotted
// paths with index and key accessors (e.g. "data.users[0].name").
func (d Document) Resolve(ref string) (Value, error) {
	in := &interp{doc: d, cfg: makeConfig()}

	return in.resolve(ref, nil)
}

// resolve evaluates a reference against the document, attempting the
// absolute path first and the current section's scope second.
func (in *interp) resolve(ref string, section []string) (Value, error) {
	if strings.Contains(ref, "[") {
		return in.resolveComplex(ref, section)
	}

	return in.resolveSimple(ref, section)
}

// resolveSimple resolves a dotted path without accessors.
func (in *interp) resolveSimple(
	ref string,
	section []string,
) (Value, error) {
	parts := strings.Split(ref, ".")

	if v, ok := in.doc.Lookup(parts...); ok {
		return v, nil
	}

	if len(section) > 0 {
		scoped := append(slices.Clone(section), parts...)
		if v, ok := in.doc.Lookup(scoped...); ok {
			return v, nil
		}
	}

	return Value{}, ErrReference.WithFragment(ref)
}

// resolveComplex resolves a reference containing bracket accessors. The
// base path before the first bracket resolves like a simple reference;
// accessors and trailing name segments then walk into the value.
func (in *interp) resolveComplex(
	ref string,
	section []string,
) (Value, error) {
	at := strings.IndexByte(ref, '[')

	cur, err := in.resolveSimple(ref[:at], section)
	if err != nil {
		return Value{}, err
	}

	for i := at; i < len(ref); {
		switch ref[i] {
		case '[':
			end := bracketEnd(ref, i)
			if end < 0 {
				return Value{}, ErrSyntax.WithFragment(ref).
					With(slog.String("reason", "unterminated accessor"))
			}

			cur, err = access(cur, ref[i+1:end], ref)
			if err != nil {
				return Value{}, err
			}

			i = end + 1

		case '.':
			n := identLen(ref, i+1)
			if n == 0 {
				return Value{}, ErrSyntax.WithFragment(ref).
					With(slog.String("reason", "malformed reference"))
			}

			name := ref[i+1 : i+1+n]

			if cur.Kind != KindMapping {
				return Value{}, ErrReference.WithFragment(ref).
					With(slog.String("reason", "not a mapping"),
						slog.String("field", name))
			}

			next, ok := cur.Fields[name]
			if !ok {
				return Value{}, ErrReference.WithFragment(ref).
					With(slog.String("field", name))
			}

			cur = next
			i += 1 + n

		default:
			return Value{}, ErrSyntax.WithFragment(ref).
				With(slog.String("reason", "malformed reference"))
		}
	}

	return cur, nil
}

// access applies one bracket accessor: an all-digit accessor indexes a
// sequence, anything else keys a mapping after trimming quotes.
func access(v Value, accessor, ref string) (Value, error) {
	if isDigits(accessor) {
		if v.Kind != KindSequence {
			return Value{}, ErrReference.WithFragment(ref).
				With(slog.String("reason", "not a sequence"),
					slog.String("accessor", accessor))
		}

		n, err := strconv.Atoi(accessor)
		if err != nil {
			return Value{}, ErrReference.WithFragment(ref).Wrap(err)
		}

		if n >= len(v.Items) {
			return Value{}, ErrReference.WithFragment(ref).
				With(slog.String("reason", "index out of range"),
					slog.Int("index", n),
					slog.Int("length", len(v.Items)))
		}

		return v.Items[n], nil
	}

	if v.Kind != KindMapping {
		return Value{}, ErrReference.WithFragment(ref).
			With(slog.String("reason", "not a mapping"),
				slog.String("accessor", accessor))
	}

	key := strings.Trim(accessor, `"'`)

	next, ok := v.Fields[key]
	if !ok {
		return Value{}, ErrReference.WithFragment(ref).
			With(slog.String("key", key))
	}

	return next, nil
}

// isReference reports whether text is shaped like a document reference,
// an identifier path with optional bracket accessors.
func isReference(text string) bool {
	i := identLen(text, 0)
	if i == 0 {
		return false
	}

	for i < len(text) {
		switch text[i] {
		case '.':
			n := identLen(text, i+1)
			if n == 0 {
				return false
			}

			i += 1 + n

		case '[':
			end := bracketEnd(text, i)
			if end < 0 {
				return false
			}

			i = end + 1

		default:
			return false
		}
	}

	return true
}

// identLen returns the length of the identifier at position i, or zero.
// Identifiers begin with a letter or underscore and continue with
// letters, digits, and underscores.
func identLen(s string, i int) int {
	n := 0

	for i+n < len(s) {
		ch := s[i+n]

		if ch == '_' ||
			ch >= 'a' && ch <= 'z' ||
			ch >= 'A' && ch <= 'Z' ||
			n > 0 && ch >= '0' && ch <= '9' {
			n++

			continue
		}

		break
	}

	return n
}

// bracketEnd returns the index of the ']' matching the '[' at open,
// or -1 when unterminated. Accessors may nest brackets.
func bracketEnd(s string, open int) int {
	depth := 0

	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++

		case ']':
			depth--

			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// isDigits reports whether s is nonempty and entirely ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
