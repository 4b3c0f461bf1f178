package lang

import "github.com/ardnew/dragon/log"

// DefaultMaxDepth is the default bound on nested user-function calls.
const DefaultMaxDepth = 4096

// Option configures parsing and evaluation.
type Option func(*options)

type options struct {
	logger   log.Logger
	maxDepth int
}

func makeOptions(opts ...Option) options {
	o := options{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithLogger sets the logger used to trace parsing and evaluation.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMaxDepth bounds the depth of nested user-function calls.
// Values less than 1 select [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}

		o.maxDepth = depth
	}
}
