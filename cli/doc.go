// Package cli contains the command line interface for ucl.
//
// # Usage
//
// The CLI provides logging and profiling configuration:
//
//	ucl --log-level=debug --pprof-mode=cpu
//
// # Commands
//
// Source documents are supplied with --source (repeatable, "-" for stdin)
// or with each command's own source flag:
//
//   - eval: resolve a reference against the parsed document, or print the
//     whole document when no reference is given
//   - query: evaluate an expression with the document's top-level keys
//     bound as variables
//   - fmt: rewrite documents in canonical native syntax, JSON, or YAML
//   - watch: re-parse documents whenever their sources change on disk
//   - repl: interactive read-eval-print loop with completion
//   - init: write a configuration file holding the current flag values
//
// # Configuration Loader
//
// The package includes a Kong configuration loader ([resolve]) that reads
// config files written in the interpreter's own syntax and converts the
// fields of the [config] section to Kong flag values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//		go build -tags pprof -o ucl .
//
//	  - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//	    heap, mem, mutex, thread, trace)
//	  - --pprof-dir: Set profile output directory (default:
//
// ~/.cache/ucl/pprof)
//
// # Examples
//
//	# Debug logging with CPU profiling
//	ucl --log-level=debug --pprof-mode=cpu
//
//	# Text format with heap profiling
//	ucl --log-format=text --pprof-mode=heap
//
//	# Custom profile directory
//	ucl --pprof-mode=allocs --pprof-dir=/tmp/profiles
package cli
