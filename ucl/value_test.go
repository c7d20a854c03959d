package ucl

import "testing"

func TestValueString(t *testing.T) {
	tests := []struct {
		val  Value
		want string
	}{
		{Null(), "null"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Number(5), "5"},
		{Number(2.5), "2.5"},
		{Number(2.50), "2.5"},     // no trailing zeros
		{Number(1e6), "1000000"},  // no exponent
		{Number(-0.125), "-0.125"},
		{String("text"), "text"},  // bare, unquoted
		{Sequence(Number(1), String("a")), `[1, "a"]`},
		{Mapping(map[string]Value{"b": Number(2), "a": Number(1)}),
			`{"a": 1, "b": 2}`}, // keys sort
		{Sequence(), "[]"},
		{Mapping(nil), "{}"},
	}

	for _, tt := range tests {
		if got := tt.val.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"nulls", Null(), Null(), true},
		{"null vs zero value", Null(), Value{}, true},
		{"numbers", Number(1), Number(1), true},
		{"numbers differ", Number(1), Number(2), false},
		{"kinds differ", Number(1), String("1"), false},
		{"bool vs null", Bool(false), Null(), false},
		{"sequences", Sequence(Number(1)), Sequence(Number(1)), true},
		{"sequence lengths differ", Sequence(Number(1)), Sequence(), false},
		{
			"mappings",
			Mapping(map[string]Value{"k": String("v")}),
			Mapping(map[string]Value{"k": String("v")}),
			true,
		},
		{
			"mapping keys differ",
			Mapping(map[string]Value{"k": String("v")}),
			Mapping(map[string]Value{"j": String("v")}),
			false,
		},
		{
			"nested",
			Sequence(Mapping(map[string]Value{"n": Number(1)})),
			Sequence(Mapping(map[string]Value{"n": Number(1)})),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}

			// Equality is symmetric.
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("reverse Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocumentLookup(t *testing.T) {
	doc := Document{
		"top": String("value"),
		"section": Mapping(map[string]Value{
			"nested": Mapping(map[string]Value{
				"deep": Number(42),
			}),
			"leaf": Bool(true),
		}),
	}

	tests := []struct {
		path []string
		want Value
		ok   bool
	}{
		{[]string{"top"}, String("value"), true},
		{[]string{"section", "leaf"}, Bool(true), true},
		{[]string{"section", "nested", "deep"}, Number(42), true},
		{[]string{"missing"}, Value{}, false},
		{[]string{"section", "missing"}, Value{}, false},
		{[]string{"top", "under-scalar"}, Value{}, false},
		{nil, Value{}, false},
	}

	for _, tt := range tests {
		got, ok := doc.Lookup(tt.path...)

		if ok != tt.ok {
			t.Errorf("Lookup(%v) ok = %v, want %v", tt.path, ok, tt.ok)

			continue
		}

		if ok && !got.Equal(tt.want) {
			t.Errorf("Lookup(%v) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestDocumentSet(t *testing.T) {
	doc := Document{}

	doc.Set(Number(1), "a", "b", "c")

	if got, ok := doc.Lookup("a", "b", "c"); !ok || !got.Equal(Number(1)) {
		t.Fatalf("Lookup after Set = %v, %v", got, ok)
	}

	// Setting through an existing scalar replaces it with a mapping.
	doc.Set(String("scalar"), "x")
	doc.Set(Number(2), "x", "y")

	if got, ok := doc.Lookup("x", "y"); !ok || !got.Equal(Number(2)) {
		t.Fatalf("Lookup after replace = %v, %v", got, ok)
	}

	// Overwriting a leaf keeps siblings.
	doc.Set(Number(3), "a", "b", "c")
	doc.Set(Number(4), "a", "b", "d")

	if got, _ := doc.Lookup("a", "b", "c"); !got.Equal(Number(3)) {
		t.Errorf("sibling c = %v, want 3", got)
	}
}

func TestDocumentClone(t *testing.T) {
	orig := Document{
		"list": Sequence(Number(1), Number(2)),
		"map":  Mapping(map[string]Value{"k": String("v")}),
	}

	copied := orig.Clone()

	if !copied.Equal(orig) {
		t.Fatalf("clone differs: %v vs %v", copied, orig)
	}

	// Mutating the clone must not affect the original.
	copied["list"].Items[0] = Number(99)
	copied["map"].Fields["k"] = String("changed")

	if got, _ := orig.Lookup("list"); !got.Items[0].Equal(Number(1)) {
		t.Errorf("original sequence mutated: %v", got)
	}

	if got, _ := orig.Lookup("map"); !got.Fields["k"].Equal(String("v")) {
		t.Errorf("original mapping mutated: %v", got)
	}
}
