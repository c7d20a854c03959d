package log

// Option transforms a logger configuration, returning the derived config.
// Options compose left to right.
type Option func(config) config

// apply folds opts over cfg in order. Nil options are skipped, so
// callers may pass conditionally constructed option slices directly.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	return cfg
}
