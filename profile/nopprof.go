//go:build !pprof

package profile

import "sync"

// Modes returns the list of supported profiling modes. Without the pprof
// build tag no profiler is linked in, so the list is empty.
var Modes = sync.OnceValue(
	func() []string { return nil },
)

// start is the no-op profiler used when the pprof build tag is unset.
// Every configured mode degrades to a safely stoppable nothing.
func start(_, _ string, _ bool) interface{ Stop() } {
	return ignore{}
}
