package ucl

import (
	"errors"
	"testing"
)

func TestConversionSuffix(t *testing.T) {
	tests := []struct {
		raw  string
		want Value
	}{
		{`"123".int`, Number(123)},
		{`"3.9".int`, Number(3)}, // truncates toward zero
		{`(0 - 3.9).int`, Number(-3)},
		{`2.5.int`, Number(2)},
		{`5.INT`, Number(5)}, // suffix is case-insensitive
		{`"2.5".float`, Number(2.5)},
		{`" 42 ".float`, Number(42)}, // strings trim before parsing
		{`7.float`, Number(7)},
		{`42.string`, String("42")},
		{`2.50.string`, String("2.5")}, // canonical text drops zeros
		{`true.string`, String("true")},
		{`null.string`, String("null")},
		{`0.bool`, Bool(false)},
		{`100.bool`, Bool(true)},
		{`"no".bool`, Bool(false)},
		{`"YES".bool`, Bool(true)},
		{`"1".bool`, Bool(true)},
		{`"false".bool`, Bool(false)},
		{`true.bool`, Bool(true)},
		{`null.int`, Number(0)},
		{`null.float`, Number(0)},
		{`null.bool`, Bool(false)},
		{`"42".int.string`, String("42")}, // suffixes chain
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := evalOne(t, tt.raw)

			if !got.Equal(tt.want) {
				t.Errorf("%s = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestConversionErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"non-numeric int", `"abc".int`},
		{"non-numeric float", `"x1".float`},
		{"unrecognized bool word", `"maybe".bool`},
		{"bool to int", `true.int`},
		{"bool to float", `false.float`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := evalErr(t, tt.raw)

			if !errors.Is(err, ErrType) {
				t.Errorf("expected type error, got %v", err)
			}
		})
	}
}

func TestConversionOfReference(t *testing.T) {
	source := `
[Config]
retries = "5"
verbose = "yes"
list = [1, 2]

[Out]
retries = Config.retries.int
verbose = Config.verbose.bool
listing = Config.list.string
`

	doc := mustParse(t, source)

	tests := []struct {
		key  string
		want Value
	}{
		{"retries", Number(5)},
		{"verbose", Bool(true)},
		{"listing", String("[1, 2]")},
	}

	for _, tt := range tests {
		if got := lookup(t, doc, "Out", tt.key); !got.Equal(tt.want) {
			t.Errorf("Out.%s = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestConversionOfExpression(t *testing.T) {
	// A parenthesized expression takes a suffix as a whole.
	got := evalOne(t, `(2.0 + 3).string`)

	if !got.Equal(String("5")) {
		t.Errorf("got %v, want \"5\"", got)
	}
}
