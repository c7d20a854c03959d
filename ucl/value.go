package ucl

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the runtime type of a [Value].
type Kind int

const (
	KindNull     Kind = iota // null
	KindBool                 // bool
	KindNumber               // number
	KindString               // string
	KindSequence             // sequence
	KindMapping              // mapping
)

// Value is a single evaluated value.
// Exactly one payload field is meaningful, selected by Kind.
// The zero Value is null.
type Value struct {
	Items  []Value
	Fields map[string]Value
	Text   string
	Number float64
	Kind   Kind
	Bool   bool
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Number returns a numeric value.
// All numbers share one representation (float64).
func Number(f float64) Value { return Value{Kind: KindNumber, Number: f} }

// String returns a string value.
func String(s string) Value { return Value{Kind: KindString, Text: s} }

// Sequence returns a sequence value holding the given items.
func Sequence(items ...Value) Value {
	return Value{Kind: KindSequence, Items: items}
}

// Mapping returns a mapping value over the given fields.
// A nil map yields an empty mapping.
func Mapping(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}

	return Value{Kind: KindMapping, Fields: fields}
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// String returns the canonical text of the value: the text produced by
// string concatenation and the .string conversion.
// Strings render bare; sequence and mapping values render in literal
// syntax with nested strings quoted and mapping keys sorted.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"

	case KindBool:
		return strconv.FormatBool(v.Bool)

	case KindNumber:
		return formatNumber(v.Number)

	case KindString:
		return v.Text

	case KindSequence, KindMapping:
		var sb strings.Builder

		v.appendLiteral(&sb)

		return sb.String()

	default:
		return "null"
	}
}

// appendLiteral writes the value in literal syntax, quoting strings so the
// result reparses to an equal value.
func (v Value) appendLiteral(sb *strings.Builder) {
	switch v.Kind {
	case KindNull:
		sb.WriteString("null")

	case KindBool:
		sb.WriteString(strconv.FormatBool(v.Bool))

	case KindNumber:
		sb.WriteString(formatNumber(v.Number))

	case KindString:
		sb.WriteString(strconv.Quote(v.Text))

	case KindSequence:
		sb.WriteByte('[')

		for i, item := range v.Items {
			if i > 0 {
				sb.WriteString(", ")
			}

			item.appendLiteral(sb)
		}

		sb.WriteByte(']')

	case KindMapping:
		sb.WriteByte('{')

		for i, key := range slices.Sorted(maps.Keys(v.Fields)) {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(strconv.Quote(key))
			sb.WriteString(": ")
			v.Fields[key].appendLiteral(sb)
		}

		sb.WriteByte('}')
	}
}

// Equal reports whether two values are deeply equal.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}

	switch v.Kind {
	case KindNull:
		return true

	case KindBool:
		return v.Bool == other.Bool

	case KindNumber:
		return v.Number == other.Number

	case KindString:
		return v.Text == other.Text

	case KindSequence:
		return slices.EqualFunc(v.Items, other.Items, Value.Equal)

	case KindMapping:
		if len(v.Fields) != len(other.Fields) {
			return false
		}

		for key, val := range v.Fields {
			ov, ok := other.Fields[key]
			if !ok || !val.Equal(ov) {
				return false
			}
		}

		return true

	default:
		return false
	}
}

// clone returns a deep copy sharing no mutable state with the receiver.
func (v Value) clone() Value {
	switch v.Kind {
	case KindSequence:
		items := make([]Value, len(v.Items))
		for i, item := range v.Items {
			items[i] = item.clone()
		}

		v.Items = items

	case KindMapping:
		fields := make(map[string]Value, len(v.Fields))
		for key, val := range v.Fields {
			fields[key] = val.clone()
		}

		v.Fields = fields
	}

	return v
}

// formatNumber renders a number canonically: no exponent, no trailing
// zeros, no decimal point for integral values.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Document is a fully evaluated document: the top-level mapping of section
// and key names to values.
type Document map[string]Value

// Lookup walks the given path of mapping keys from the document root.
// It reports false when any step is missing or any intermediate value is
// not a mapping.
func (d Document) Lookup(path ...string) (Value, bool) {
	if len(path) == 0 {
		return Value{}, false
	}

	cur := map[string]Value(d)

	var val Value

	for i, name := range path {
		var ok bool

		val, ok = cur[name]
		if !ok {
			return Value{}, false
		}

		if i < len(path)-1 {
			if val.Kind != KindMapping {
				return Value{}, false
			}

			cur = val.Fields
		}
	}

	return val, true
}

// Set stores a value at the given path, creating intermediate mappings as
// needed. An intermediate that exists but is not a mapping is replaced.
func (d Document) Set(v Value, path ...string) {
	if len(path) == 0 {
		return
	}

	cur := map[string]Value(d)

	for _, name := range path[:len(path)-1] {
		next, ok := cur[name]
		if !ok || next.Kind != KindMapping || next.Fields == nil {
			next = Mapping(map[string]Value{})
			cur[name] = next
		}

		cur = next.Fields
	}

	cur[path[len(path)-1]] = v
}

// Equal reports whether two documents are deeply equal.
func (d Document) Equal(other Document) bool {
	return Mapping(d).Equal(Mapping(other))
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for key, val := range d {
		out[key] = val.clone()
	}

	return out
}
