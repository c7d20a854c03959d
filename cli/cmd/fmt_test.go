package cmd

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
)

// TestNativeFmtValidSyntax tests that valid syntax is formatted correctly.
func TestNativeFmtValidSyntax(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "simple key",
			input:   "test = 123",
			wantErr: false,
		},
		{
			name:    "section with keys",
			input:   "[server]\nhost = \"localhost\"\nport = 8080",
			wantErr: false,
		},
		{
			name:    "multiple sections",
			input:   "[a]\nx = 1\n\n[b]\ny = 2",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, tt.input)

			native := &Native{Source: path}

			_, err := captureStdout(t, func() error {
				return native.Run(context.Background())
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("Native.Run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestNativeFmtInvalidSyntax tests that unresolvable input produces errors.
func TestNativeFmtInvalidSyntax(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "undefined reference",
			input:   "test = missing.reference",
			wantErr: true,
		},
		{
			name:    "bad conversion",
			input:   `test = "abc".int`,
			wantErr: true,
		},
		{
			name:    "malformed mapping literal",
			input:   "test = {not valid json}",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, tt.input)

			native := &Native{Source: path}

			_, err := captureStdout(t, func() error {
				return native.Run(context.Background())
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("Native.Run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestNativeFmtStdin tests reading from stdin.
func TestNativeFmtStdin(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "valid from stdin",
			input:   "test = 123",
			wantErr: false,
		},
		{
			name:    "invalid from stdin",
			input:   "test = missing.reference",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Save and restore stdin
			oldStdin := os.Stdin
			defer func() { os.Stdin = oldStdin }()

			r, w, err := os.Pipe()
			if err != nil {
				t.Fatal(err)
			}
			os.Stdin = r

			go func() {
				defer w.Close()
				io.WriteString(w, tt.input)
			}()

			native := &Native{Source: "-"}

			_, err = captureStdout(t, func() error {
				return native.Run(context.Background())
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("Native.Run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestJSONFmt tests JSON conversion and its error paths.
func TestJSONFmt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		contains []string
	}{
		{
			name:    "section to object",
			input:   "[server]\nhost = \"localhost\"\nport = 8080",
			wantErr: false,
			contains: []string{
				`"server"`,
				`"host": "localhost"`,
				`"port": 8080`,
			},
		},
		{
			name:    "undefined reference",
			input:   "test = missing.reference",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, tt.input)

			cmd := &JSON{Indent: 2, Source: path}

			out, err := captureStdout(t, func() error {
				return cmd.Run(context.Background())
			})

			if (err != nil) != tt.wantErr {
				t.Fatalf("JSON.Run() error = %v, wantErr %v", err, tt.wantErr)
			}

			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("JSON.Run() output = %q, want to contain %q", out, want)
				}
			}
		})
	}
}

// TestYAMLFmt tests YAML conversion and its error paths.
func TestYAMLFmt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		contains []string
	}{
		{
			name:    "section to mapping",
			input:   "[server]\nhost = \"localhost\"\nport = 8080",
			wantErr: false,
			contains: []string{
				"server:",
				"host: localhost",
				"port: 8080",
			},
		},
		{
			name:    "undefined reference",
			input:   "test = missing.reference",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, tt.input)

			cmd := &YAML{Indent: 2, Source: path}

			out, err := captureStdout(t, func() error {
				return cmd.Run(context.Background())
			})

			if (err != nil) != tt.wantErr {
				t.Fatalf("YAML.Run() error = %v, wantErr %v", err, tt.wantErr)
			}

			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("YAML.Run() output = %q, want to contain %q", out, want)
				}
			}
		})
	}
}

// TestNativeFmtOutput tests the canonical formatting output.
func TestNativeFmtOutput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:  "scalar keys",
			input: "b = 2\na = 1",
			contains: []string{
				"a = 1",
				"b = 2",
			},
		},
		{
			name:  "section keys",
			input: "[server]\nhost = \"localhost\"",
			contains: []string{
				"[server]",
				`host = "localhost"`,
			},
		},
		{
			name:  "references resolved before formatting",
			input: "[server]\nhost = \"db\"\n\n[client]\ntarget = server.host",
			contains: []string{
				"[client]",
				`target = "db"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, tt.input)

			native := &Native{Source: path}

			out, err := captureStdout(t, func() error {
				return native.Run(context.Background())
			})
			if err != nil {
				t.Fatalf("Native.Run() unexpected error = %v", err)
			}

			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("Native.Run() output = %q, want to contain %q", out, want)
				}
			}
		})
	}
}
