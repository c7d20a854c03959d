// Package cmd implements the subcommands of the configuration language
// interpreter's command-line interface.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the name of
	// the default configuration section parsed from the configuration file.
	ConfigIdentifier = "config"
)
