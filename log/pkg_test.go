package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// swapDefault points the package-level logging functions at a buffer for
// the duration of a test.
func swapDefault(t *testing.T, opts ...Option) *bytes.Buffer {
	t.Helper()

	original := defaultLog
	t.Cleanup(func() { defaultLog = original })

	var buf bytes.Buffer
	defaultLog = Make(&buf, opts...)

	return &buf
}

func TestPackageFunctions(t *testing.T) {
	buf := swapDefault(t,
		WithLevel(LevelDebug), WithFormat(FormatJSON), WithPretty(false))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
		msg   string
	}{
		{"Debug", Debug, "DEBUG", "resolved source path"},
		{"Info", Info, "INFO", "configuration parsed"},
		{"Warn", Warn, "WARN", "cache entry invalidated"},
		{"Error", Error, "ERROR", "include failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn(tt.msg, slog.String("key", "value"))

			output := buf.String()
			if !strings.Contains(output, tt.msg) {
				t.Errorf("output missing message %q: %s", tt.msg, output)
			}
			if !strings.Contains(output, tt.level) {
				t.Errorf("output missing level %q: %s", tt.level, output)
			}
			if !strings.Contains(output, `"key":"value"`) {
				t.Errorf("output missing attribute: %s", output)
			}
		})
	}
}
