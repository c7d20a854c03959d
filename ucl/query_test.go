package ucl

import (
	"errors"
	"runtime"
	"slices"
	"testing"
)

func TestQueryDocumentKeys(t *testing.T) {
	source := `
[Server]
port = 8000
host = "api"
tags = ["a", "b"]
`

	doc := mustParse(t, source)

	tests := []struct {
		name  string
		query string
		want  any
	}{
		{"scalar", "Server.port", 8000.0},
		{"arithmetic", "Server.port * 2", 16000.0},
		{"string", `Server.host + ".example.com"`, "api.example.com"},
		{"index", "Server.tags[1]", "b"},
		{"comparison", "Server.port > 1024", true},
		{"conditional", `Server.port == 8000 ? "std" : "alt"`, "std"},
		{"len builtin", "len(Server.tags)", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Query(t.Context(), doc, tt.query)
			if err != nil {
				t.Fatalf("query error: %v", err)
			}

			if got != tt.want {
				t.Errorf("%s = %v (%T), want %v (%T)",
					tt.query, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestQueryHyphenatedKeys(t *testing.T) {
	doc := Document{
		"log-level": String("debug"),
		"a":         Number(10),
		"b":         Number(3),
	}

	// A hyphenated identifier resolves as a key when one exists.
	got, err := Query(t.Context(), doc, "log-level")
	if err != nil {
		t.Fatalf("query error: %v", err)
	}

	if got != "debug" {
		t.Errorf("log-level = %v, want debug", got)
	}

	// Otherwise the hyphen is plain subtraction.
	got, err = Query(t.Context(), doc, "a-b")
	if err != nil {
		t.Fatalf("query error: %v", err)
	}

	if got != 7.0 {
		t.Errorf("a-b = %v, want 7", got)
	}
}

func TestQueryHyphenatedMember(t *testing.T) {
	doc := Document{
		"server": Mapping(map[string]Value{
			"log-level": String("warn"),
		}),
	}

	got, err := Query(t.Context(), doc, "server.log-level")
	if err != nil {
		t.Fatalf("query error: %v", err)
	}

	if got != "warn" {
		t.Errorf("server.log-level = %v, want warn", got)
	}
}

func TestQueryBuiltins(t *testing.T) {
	doc := Document{}

	got, err := Query(t.Context(), doc, "platform.OS")
	if err != nil {
		t.Fatalf("query error: %v", err)
	}

	if got != runtime.GOOS {
		t.Errorf("platform.OS = %v, want %v", got, runtime.GOOS)
	}

	lookupEnv := func(name string) (string, bool) {
		if name == "ANSWER" {
			return "42", true
		}

		return "", false
	}

	got, err = Query(t.Context(), doc, `env("ANSWER")`,
		WithLookupEnv(lookupEnv))
	if err != nil {
		t.Fatalf("query error: %v", err)
	}

	if got != "42" {
		t.Errorf("env = %v, want 42", got)
	}
}

func TestQueryKeysShadowBuiltins(t *testing.T) {
	doc := Document{"hostname": String("configured")}

	got, err := Query(t.Context(), doc, "hostname")
	if err != nil {
		t.Fatalf("query error: %v", err)
	}

	if got != "configured" {
		t.Errorf("hostname = %v, want configured", got)
	}
}

func TestQueryCompileError(t *testing.T) {
	_, err := Query(t.Context(), Document{}, "1 +")

	if !errors.Is(err, ErrQueryCompile) {
		t.Fatalf("expected compile error, got %v", err)
	}
}

func TestBuiltinEnvKeys(t *testing.T) {
	keys := BuiltinEnvKeys()

	for _, want := range []string{"platform", "hostname", "env", "file", "path", "mung"} {
		if !slices.Contains(keys, want) {
			t.Errorf("missing builtin %q in %v", want, keys)
		}
	}

	if !slices.IsSorted(keys) {
		t.Errorf("keys not sorted: %v", keys)
	}
}

func TestBuiltinEnvLookup(t *testing.T) {
	if got := BuiltinEnvLookup("file"); !slices.Equal(got, []string{"exists", "isDir"}) {
		t.Errorf("file group = %v", got)
	}

	if got := BuiltinEnvLookup("path"); !slices.Equal(got, []string{"abs", "cat", "rel"}) {
		t.Errorf("path group = %v", got)
	}

	if got := BuiltinEnvLookup("hostname"); got != nil {
		t.Errorf("scalar builtin should have no group, got %v", got)
	}

	if got := BuiltinEnvLookup("missing"); got != nil {
		t.Errorf("unknown path should have no group, got %v", got)
	}
}
