package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ucl/ucl"
)

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		setup   func(t *testing.T, path string) // prepares the target path
		name    string
		force   bool
		wantErr bool
	}{
		{
			name:    "create_new_config",
			force:   false,
			setup:   nil, // no pre-existing file
			wantErr: false,
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				t.Helper()

				if err := os.WriteFile(path, []byte("existing content"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: false,
		},
		{
			name:  "fail_without_force",
			force: false,
			setup: func(t *testing.T, path string) {
				t.Helper()

				if err := os.WriteFile(path, []byte("existing content"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: true, // should fail because file exists
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.ucl")

			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			var cli struct{}

			parser, err := kong.New(&cli, kong.Vars{
				ConfigIdentifier: confPath,
			})
			if err != nil {
				t.Fatal(err)
			}

			kctx, err := parser.Parse(nil)
			if err != nil {
				t.Fatal(err)
			}

			ctx := WithContext(t.Context(), kctx)

			initCmd := &Init{Force: tt.force}

			err = initCmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("Init.Run() error = %v, wantErr %v", err, tt.wantErr)

				return
			}

			if tt.wantErr {
				return
			}

			if _, err := os.Stat(confPath); os.IsNotExist(err) {
				t.Error("Init.Run() did not create config file")
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			// The generated file must parse back with the interpreter.
			if _, err := ucl.ParseString(ctx, string(content)); err != nil {
				t.Errorf("Generated config does not parse: %v", err)
			}
		})
	}
}

// TestInitBuildDocument tests that buildDocument captures flag values.
func TestInitBuildDocument(t *testing.T) {
	t.Parallel()

	var cli struct {
		Output  string `help:"Output file"           name:"output"`
		Count   int    `help:"Number of items"       name:"count"`
		Verbose bool   `help:"Enable verbose output" name:"verbose"`
	}

	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse(
		[]string{"--verbose", "--output=test.txt", "--count=5"})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithContext(t.Context(), kctx)

	initCmd := &Init{}

	doc := initCmd.buildDocument(ctx)
	if doc == nil {
		t.Fatal("buildDocument() returned nil")
	}

	section, ok := doc.Lookup(ConfigIdentifier)
	if !ok || section.Kind != ucl.KindMapping {
		t.Fatalf("buildDocument() did not create %q section", ConfigIdentifier)
	}

	tests := []struct {
		name string
		want ucl.Value
	}{
		{name: "verbose", want: ucl.Bool(true)},
		{name: "output", want: ucl.String("test.txt")},
		{name: "count", want: ucl.Number(5)},
	}

	for _, tt := range tests {
		got, ok := section.Fields[tt.name]
		if !ok {
			t.Errorf("buildDocument() missing flag %q", tt.name)

			continue
		}

		if !got.Equal(tt.want) {
			t.Errorf("flag %q = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// TestInitWithInvalidPath tests init with an invalid file path.
func TestInitWithInvalidPath(t *testing.T) {
	t.Parallel()

	invalidPath := "/nonexistent/directory/config.ucl"

	var cli struct{}

	parser, err := kong.New(&cli, kong.Vars{
		ConfigIdentifier: invalidPath,
	})
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithContext(t.Context(), kctx)

	initCmd := &Init{Force: false}

	if err := initCmd.Run(ctx); err == nil {
		t.Error("Init.Run() expected error for invalid path, got nil")
	}
}

// TestInitFormatOutput tests that init generates parseable section output.
func TestInitFormatOutput(t *testing.T) {
	t.Parallel()

	confPath := filepath.Join(t.TempDir(), "config.ucl")

	var cli struct {
		Test string `help:"Test flag" name:"test"`
	}

	parser, err := kong.New(&cli, kong.Vars{
		ConfigIdentifier: confPath,
	})
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse([]string{"--test=value"})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithContext(t.Context(), kctx)

	initCmd := &Init{Force: false}
	if err := initCmd.Run(ctx); err != nil {
		t.Fatalf("Init.Run() unexpected error = %v", err)
	}

	content, err := os.ReadFile(confPath)
	if err != nil {
		t.Fatal(err)
	}

	output := string(content)

	if !strings.Contains(output, "["+ConfigIdentifier+"]") {
		t.Errorf("Output missing section header, got: %s", output)
	}

	doc, err := ucl.ParseString(ctx, output)
	if err != nil {
		t.Fatalf("Generated config does not parse: %v", err)
	}

	got, ok := doc.Lookup(ConfigIdentifier, "test")
	if !ok || !got.Equal(ucl.String("value")) {
		t.Errorf("round trip lost flag value, got %v", got)
	}
}
