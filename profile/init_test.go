//go:build !pprof

package profile

import "testing"

func zeroConfig() Config {
	return func() (string, string, bool) { return "", "", false }
}

func TestConfigStartUnsetMode(t *testing.T) {
	ctrl := zeroConfig().Start()
	if ctrl == nil {
		t.Fatal("Start returned nil controller")
	}

	// Stop must always be safe to call, repeatedly.
	ctrl.Stop()
	ctrl.Stop()
}

func TestConfigStartWithoutProfiler(t *testing.T) {
	cfg := zeroConfig()
	cfg = WithMode("cpu")(cfg)
	cfg = WithPath(t.TempDir())(cfg)
	cfg = WithQuiet(true)(cfg)

	// Without the profiling build tag a configured mode still starts and
	// stops cleanly as a no-op.
	ctrl := cfg.Start()
	if ctrl == nil {
		t.Fatal("Start returned nil controller")
	}

	ctrl.Stop()
}

func TestConfigOptions(t *testing.T) {
	cfg := zeroConfig()
	cfg = WithMode("heap")(cfg)
	cfg = WithPath("/tmp/profiles")(cfg)
	cfg = WithQuiet(true)(cfg)

	mode, path, quiet := cfg()

	if mode != "heap" || path != "/tmp/profiles" || !quiet {
		t.Errorf("config = (%q, %q, %v), want (heap, /tmp/profiles, true)",
			mode, path, quiet)
	}
}

func TestModesWithoutProfiler(t *testing.T) {
	if got := Modes(); len(got) != 0 {
		t.Errorf("expected no modes without profiler support, got %v", got)
	}
}
