package cmd

import "github.com/ardnew/ucl/ucl"

// Command failure sentinels.
// They share the engine's error type, so CLI failures carry structured
// attributes via Wrap/With and classify with errors.Is exactly like
// parse errors do.
var (
	ErrJSONMarshal = ucl.NewError("marshal JSON")
	ErrYAMLMarshal = ucl.NewError("marshal YAML")
	ErrWriteConfig = ucl.NewError("write configuration file")
	ErrFileExists  = ucl.NewError("file exists (use --force to overwrite)")
	ErrWatcher     = ucl.NewError("watch source files")
)
