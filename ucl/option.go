package ucl

import (
	"os"

	"github.com/ardnew/ucl/log"
)

// DefaultMaxDepth bounds include expansion and value recursion.
const DefaultMaxDepth = 100

// Option configures a single parse.
type Option func(*config)

// config holds the settings for one parse.
// Hooks default to the host environment and filesystem; tests swap them.
type config struct {
	lookupEnv func(string) (string, bool)
	readFile  func(string) ([]byte, error)
	logger    log.Logger
	baseDir   string
	maxDepth  int
	cache     bool
}

// makeConfig returns the default configuration with opts applied.
func makeConfig(opts ...Option) config {
	cfg := config{
		lookupEnv: os.LookupEnv,
		readFile:  os.ReadFile,
		baseDir:   ".",
		maxDepth:  DefaultMaxDepth,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// WithMaxDepth sets the recursion limit shared by include expansion and
// value evaluation. Values below 1 keep the default.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		if depth >= 1 {
			c.maxDepth = depth
		}
	}
}

// WithBaseDir sets the directory against which include paths resolve.
// All includes resolve against this one directory, however deeply nested
// the including file.
func WithBaseDir(dir string) Option {
	return func(c *config) {
		if dir != "" {
			c.baseDir = dir
		}
	}
}

// WithLookupEnv replaces the environment lookup used by $ENV{...}
// references. The function reports the value and whether it is set.
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(c *config) {
		if lookup != nil {
			c.lookupEnv = lookup
		}
	}
}

// WithReadFile replaces the file reader used by include expansion.
func WithReadFile(read func(string) ([]byte, error)) Option {
	return func(c *config) {
		if read != nil {
			c.readFile = read
		}
	}
}

// WithLogger sets the logger used for trace output during parsing.
// The zero Logger discards everything.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithCache enables the content-addressed parse cache for this call.
// Cache hits return a deep copy, so callers may mutate results freely.
func WithCache(enable bool) Option {
	return func(c *config) {
		c.cache = enable
	}
}

// fingerprint summarizes the settings that change parse results.
// Hook functions cannot be compared, so cached parses require default
// hooks; see [parseCached].
type fingerprint struct {
	baseDir  string
	maxDepth int
}

func (c config) fingerprint() fingerprint {
	return fingerprint{baseDir: c.baseDir, maxDepth: c.maxDepth}
}
