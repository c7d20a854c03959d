//go:build pprof

package profile

// Option appends pkg/profile settings to a control under construction.
type Option func(control) control

// newControl folds opts over an empty control.
func newControl(opts ...Option) control {
	return apply(control{}, opts...)
}

// apply applies each option to c in order.
func apply(c control, opts ...Option) control {
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}
