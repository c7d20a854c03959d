package ucl

import (
	"encoding/json"
	"fmt"
)

// Native returns the value as plain Go data: nil, bool, float64,
// string, []any, or map[string]any.
func (v Value) Native() any {
	switch v.Kind {
	case KindNull:
		return nil

	case KindBool:
		return v.Bool

	case KindNumber:
		return v.Number

	case KindString:
		return v.Text

	case KindSequence:
		items := make([]any, len(v.Items))
		for i := 0; i < len(v.Items); i++ {
			items[i] = v.Items[i].Native()
		}

		return items

	default:
		fields := make(map[string]any, len(v.Fields))
		for name, field := range v.Fields {
			fields[name] = field.Native()
		}

		return fields
	}
}

// Native returns the document as a plain string-keyed map.
func (d Document) Native() map[string]any {
	fields := make(map[string]any, len(d))
	for name, field := range d {
		fields[name] = field.Native()
	}

	return fields
}

// FromNative builds a value from plain Go data: nil, booleans, numeric
// types, strings, []any slices, and string-keyed maps, the shapes the
// encoding/json and yaml decoders produce. Anything else renders to its
// string form.
func FromNative(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()

	case Value:
		return t

	case bool:
		return Bool(t)

	case string:
		return String(t)

	case float64:
		return Number(t)

	case float32:
		return Number(float64(t))

	case int:
		return Number(float64(t))

	case int64:
		return Number(float64(t))

	case int32:
		return Number(float64(t))

	case uint:
		return Number(float64(t))

	case uint64:
		return Number(float64(t))

	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return String(t.String())
		}

		return Number(f)

	case []any:
		items := make([]Value, len(t))
		for i := 0; i < len(t); i++ {
			items[i] = FromNative(t[i])
		}

		return Sequence(items...)

	case map[string]any:
		fields := make(map[string]Value, len(t))
		for name, field := range t {
			fields[name] = FromNative(field)
		}

		return Mapping(fields)

	case map[any]any:
		fields := make(map[string]Value, len(t))
		for name, field := range t {
			fields[fmt.Sprint(name)] = FromNative(field)
		}

		return Mapping(fields)

	default:
		return String(fmt.Sprint(t))
	}
}

// MarshalJSON encodes the value as its native form.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Native())
}

// UnmarshalJSON decodes arbitrary JSON into the value.
func (v *Value) UnmarshalJSON(data []byte) error {
	var x any
	if err := json.Unmarshal(data, &x); err != nil {
		return ErrInvalidValueType.Wrap(err)
	}

	*v = FromNative(x)

	return nil
}
