package game

import (
	"math/rand/v2"

	"github.com/ardnew/dragon/lang"
	"github.com/ardnew/dragon/log"
)

// Option configures a [Game].
type Option func(*options)

type options struct {
	logger   log.Logger
	rng      *rand.Rand
	strict   bool
	maxDepth int
}

func makeOptions(opts ...Option) options {
	o := options{maxDepth: lang.DefaultMaxDepth}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec
	}

	return o
}

// WithLogger sets the logger used to trace play.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithSeed makes dragon placement deterministic.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec
	}
}

// WithStrictExclusions rejects scripts that use a statement the level
// excludes, or that extend something the level does not list.
func WithStrictExclusions(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithMaxDepth bounds nested user-function calls during evaluation.
func WithMaxDepth(depth int) Option {
	return func(o *options) { o.maxDepth = depth }
}

func (o options) langOptions() []lang.Option {
	return []lang.Option{lang.WithLogger(o.logger), lang.WithMaxDepth(o.maxDepth)}
}
