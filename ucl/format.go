package ucl

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format renders a document as configuration text that parses back to
// an equal document. Top-level scalars come first, then each nested
// mapping as a dotted section header with its fields, all sorted by
// name.
func Format(d Document) string {
	var b strings.Builder

	writeSection(&b, nil, Mapping(d))

	return b.String()
}

// String renders the document with [Format].
func (d Document) String() string {
	return Format(d)
}

func writeSection(b *strings.Builder, path []string, v Value) {
	names := slices.Sorted(maps.Keys(v.Fields))

	var nested []string

	for i := 0; i < len(names); i++ {
		field := v.Fields[names[i]]

		// Nonempty mappings become sections of their own; everything
		// else renders inline.
		if field.Kind == KindMapping && len(field.Fields) > 0 {
			nested = append(nested, names[i])

			continue
		}

		fmt.Fprintf(b, "%s = %s\n", names[i], formatInline(field))
	}

	for i := 0; i < len(nested); i++ {
		sub := append(slices.Clone(path), nested[i])

		if b.Len() > 0 {
			b.WriteByte('\n')
		}

		fmt.Fprintf(b, "[%s]\n", strings.Join(sub, "."))
		writeSection(b, sub, v.Fields[nested[i]])
	}
}

// formatInline renders a value as a single-line literal. Strings quote
// and escape, sequences bracket their elements, and mappings emit
// compact JSON.
func formatInline(v Value) string {
	switch v.Kind {
	case KindString:
		return quoteText(v.Text)

	case KindSequence:
		parts := make([]string, len(v.Items))
		for i := 0; i < len(v.Items); i++ {
			parts[i] = formatInline(v.Items[i])
		}

		return "[" + strings.Join(parts, ", ") + "]"

	case KindMapping:
		data, err := json.Marshal(v)
		if err != nil {
			return "{}"
		}

		return string(data)

	default:
		return v.String()
	}
}

// ToJSON renders the document as indented JSON.
func ToJSON(d Document) ([]byte, error) {
	data, err := json.MarshalIndent(d.Native(), "", "  ")
	if err != nil {
		return nil, ErrInvalidValueType.Wrap(err)
	}

	return append(data, '\n'), nil
}

// ToYAML renders the document as YAML.
func ToYAML(d Document) ([]byte, error) {
	data, err := yaml.Marshal(d.Native())
	if err != nil {
		return nil, ErrInvalidValueType.Wrap(err)
	}

	return data, nil
}
