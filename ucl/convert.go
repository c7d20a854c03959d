package ucl

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// convert applies an explicit conversion suffix to a value. The target
// is one of "int", "float", "string", or "bool".
func convert(v Value, target string) (Value, error) {
	switch target {
	case "int":
		return convertInt(v)

	case "float":
		return convertFloat(v)

	case "string":
		return String(v.String()), nil

	default: // "bool"
		return convertBool(v)
	}
}

// convertInt truncates toward zero. Strings parse as numbers first.
func convertInt(v Value) (Value, error) {
	switch v.Kind {
	case KindNumber:
		return Number(math.Trunc(v.Number)), nil

	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil {
			return Value{}, ErrType.WithFragment(v.Text).
				With(slog.String("target", "int"))
		}

		return Number(math.Trunc(f)), nil

	case KindNull:
		return Number(0), nil

	default:
		return Value{}, ErrType.WithFragment(v.String()).
			With(slog.String("target", "int"),
				slog.String("kind", v.Kind.String()))
	}
}

func convertFloat(v Value) (Value, error) {
	switch v.Kind {
	case KindNumber:
		return v, nil

	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil {
			return Value{}, ErrType.WithFragment(v.Text).
				With(slog.String("target", "float"))
		}

		return Number(f), nil

	case KindNull:
		return Number(0), nil

	default:
		return Value{}, ErrType.WithFragment(v.String()).
			With(slog.String("target", "float"),
				slog.String("kind", v.Kind.String()))
	}
}

// convertBool recognizes true/yes/1 and false/no/0 in strings, treats
// numbers as nonzero tests, and maps null to false.
func convertBool(v Value) (Value, error) {
	switch v.Kind {
	case KindBool:
		return v, nil

	case KindNumber:
		return Bool(v.Number != 0), nil

	case KindNull:
		return Bool(false), nil

	case KindString:
		switch strings.ToLower(strings.TrimSpace(v.Text)) {
		case "true", "yes", "1":
			return Bool(true), nil

		case "false", "no", "0":
			return Bool(false), nil
		}

		return Value{}, ErrType.WithFragment(v.Text).
			With(slog.String("target", "bool"))

	default:
		return Value{}, ErrType.WithFragment(v.String()).
			With(slog.String("target", "bool"),
				slog.String("kind", v.Kind.String()))
	}
}
