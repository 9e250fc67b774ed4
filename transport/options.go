package transport

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"
)

// Numeric policy defaults.
const (
	// DefaultSentinel is the quantity placed in a cell to mark it occupied when
	// resolving degeneracy. It must stay below any real allocation granularity.
	DefaultSentinel = 1e-6

	// DefaultEpsilon is the comparison tolerance for gains and near-zero quantities.
	DefaultEpsilon = 1e-9
)

// Iteration bound defaults. With MaxIterations == 0 the bound is
// max(MinIterationBound, DefaultIterationFactor·m·n).
const (
	DefaultIterationFactor = 8
	MinIterationBound      = 64
)

const (
	panicSentinelInvalid    = "transport: WithSentinel: sentinel must be finite and > 0"
	panicEpsilonInvalid     = "transport: WithEpsilon: eps must be finite and >= 0"
	panicMaxIterInvalid     = "transport: WithMaxIterations: bound must be >= 0"
	panicConcurrencyInvalid = "transport: WithConcurrency: limit must be >= 0"
)

// Options configures the engine. Build it with DefaultOptions and Option setters.
//
//   - Sentinel:      degeneracy marker quantity (default 1e-6).
//   - Epsilon:       tolerance for gains and zero tests (default 1e-9); must be < Sentinel.
//   - MaxIterations: pivot bound; 0 derives it from the instance size.
//   - Concurrency:   SolveBatch worker limit; 0 means GOMAXPROCS.
//   - Balance:       let Solve add a dummy row/column instead of failing on imbalance.
//   - Logger:        debug log of pivots and degeneracy fixes; nil discards.
type Options struct {
	Sentinel      float64
	Epsilon       float64
	MaxIterations int
	Concurrency   int
	Balance       bool
	Logger        *slog.Logger
}

// Option mutates Options. Constructors panic only on nonsensical arguments.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Sentinel:      DefaultSentinel,
		Epsilon:       DefaultEpsilon,
		MaxIterations: 0,
		Concurrency:   0,
		Balance:       false,
		Logger:        nil,
	}
}

// WithSentinel sets the degeneracy marker quantity.
// Scale it with the instance: it has to be negligible next to real quantities.
func WithSentinel(s float64) Option {
	if math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
		panic(panicSentinelInvalid)
	}

	return func(o *Options) { o.Sentinel = s }
}

// WithEpsilon sets the comparison tolerance.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.Epsilon = eps }
}

// WithMaxIterations bounds the number of MODI pivots; 0 restores the size-derived bound.
func WithMaxIterations(n int) Option {
	if n < 0 {
		panic(panicMaxIterInvalid)
	}

	return func(o *Options) { o.MaxIterations = n }
}

// WithConcurrency limits SolveBatch workers; 0 means GOMAXPROCS.
func WithConcurrency(n int) Option {
	if n < 0 {
		panic(panicConcurrencyInvalid)
	}

	return func(o *Options) { o.Concurrency = n }
}

// WithBalancing lets Solve balance the instance with a dummy source or destination.
// Without it an unbalanced instance fails with ErrImbalancedInstance.
func WithBalancing() Option {
	return func(o *Options) { o.Balance = true }
}

// WithLogger routes debug records (greedy summary, markers, pivots) to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// gatherOptions applies opts over the defaults and validates the combination.
func gatherOptions(opts ...Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o, o.validate()
}

// validate catches inconsistent values set through struct literals or
// combinations no single setter can see.
func (o Options) validate() error {
	switch {
	case math.IsNaN(o.Sentinel) || math.IsInf(o.Sentinel, 0) || o.Sentinel <= 0:
		return fmt.Errorf("%w: sentinel %g", ErrBadOptions, o.Sentinel)
	case math.IsNaN(o.Epsilon) || math.IsInf(o.Epsilon, 0) || o.Epsilon < 0:
		return fmt.Errorf("%w: epsilon %g", ErrBadOptions, o.Epsilon)
	case o.Epsilon >= o.Sentinel:
		// A marker must be distinguishable from zero.
		return fmt.Errorf("%w: epsilon %g must be below sentinel %g", ErrBadOptions, o.Epsilon, o.Sentinel)
	case o.MaxIterations < 0 || o.Concurrency < 0:
		return fmt.Errorf("%w: negative bound", ErrBadOptions)
	}

	return nil
}

// iterationBound returns the pivot budget for an m×n instance.
func (o Options) iterationBound(m, n int) int {
	if o.MaxIterations > 0 {
		return o.MaxIterations
	}
	b := DefaultIterationFactor * m * n
	if b < MinIterationBound {
		b = MinIterationBound
	}

	return b
}

// workers returns the SolveBatch concurrency limit.
func (o Options) workers() int {
	if o.Concurrency > 0 {
		return o.Concurrency
	}

	return runtime.GOMAXPROCS(0)
}

// logger never returns nil.
func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}

	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
