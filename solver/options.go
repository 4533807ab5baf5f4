// SPDX-License-Identifier: MIT

package solver

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/factorgraph/linear"
)

// Defaults shared by every solver.
const (
	DefaultMaxIterations      = 100
	DefaultCostTolerance      = 1e-5
	DefaultGradientTolerance  = 1e-9
	DefaultParameterTolerance = 1e-7
	DefaultInexactStepEta     = 1e-1

	// DefaultCGMaxIterations of 0 caps CG at the problem dimension.
	DefaultCGMaxIterations = 0
	DefaultCGAbsTolerance  = linear.DefaultAbsTolerance
)

// Levenberg-Marquardt damping defaults.
const (
	DefaultLambdaInitial = 5e-4
	DefaultLambdaFactor  = 2.0
	DefaultLambdaMin     = 1e-5
	DefaultLambdaMax     = 1e10
	DefaultMaxRejections = 10
)

// Options configures a Solver.
type Options struct {
	MaxIterations      int     // outer iteration cap, > 0
	CostTolerance      float64 // relative cost change threshold, ≥ 0
	GradientTolerance  float64 // max-abs gradient proxy threshold, ≥ 0
	ParameterTolerance float64 // step-size threshold, ≥ 0
	InexactStepEta     float64 // CG forcing term numerator, > 0

	CGMaxIterations int                       // 0 = problem dimension
	CGAbsTolerance  float64                   // absolute CG residual target
	Preconditioner  linear.PreconditionerKind // Jacobi or none

	LambdaInitial float64 // first LM damping, > 0
	LambdaFactor  float64 // grow/shrink multiplier, > 1
	LambdaMin     float64 // lower clamp
	LambdaMax     float64 // upper clamp
	MaxRejections int     // consecutive LM rejections before giving up, ≥ 0

	Logger *slog.Logger
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns the documented defaults with a discarding logger.
func DefaultOptions() Options {
	return Options{
		MaxIterations:      DefaultMaxIterations,
		CostTolerance:      DefaultCostTolerance,
		GradientTolerance:  DefaultGradientTolerance,
		ParameterTolerance: DefaultParameterTolerance,
		InexactStepEta:     DefaultInexactStepEta,
		CGMaxIterations:    DefaultCGMaxIterations,
		CGAbsTolerance:     DefaultCGAbsTolerance,
		Preconditioner:     linear.Jacobi,
		LambdaInitial:      DefaultLambdaInitial,
		LambdaFactor:       DefaultLambdaFactor,
		LambdaMin:          DefaultLambdaMin,
		LambdaMax:          DefaultLambdaMax,
		MaxRejections:      DefaultMaxRejections,
		Logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithMaxIterations sets the outer iteration cap. Panics if n <= 0.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			panic("solver: WithMaxIterations: n must be > 0")
		}
		o.MaxIterations = n
	}
}

// WithCostTolerance sets the relative cost-change threshold. Panics if tol < 0.
func WithCostTolerance(tol float64) Option {
	return func(o *Options) {
		o.CostTolerance = nonNegative("WithCostTolerance", tol)
	}
}

// WithGradientTolerance sets the gradient threshold. Panics if tol < 0.
func WithGradientTolerance(tol float64) Option {
	return func(o *Options) {
		o.GradientTolerance = nonNegative("WithGradientTolerance", tol)
	}
}

// WithParameterTolerance sets the step-size threshold. Panics if tol < 0.
func WithParameterTolerance(tol float64) Option {
	return func(o *Options) {
		o.ParameterTolerance = nonNegative("WithParameterTolerance", tol)
	}
}

// WithInexactStepEta sets the CG forcing numerator. Panics if eta <= 0.
func WithInexactStepEta(eta float64) Option {
	return func(o *Options) {
		if !(eta > 0) {
			panic("solver: WithInexactStepEta: eta must be > 0")
		}
		o.InexactStepEta = eta
	}
}

// WithCGMaxIterations caps CG iterations; 0 means the problem dimension.
// Panics if n < 0.
func WithCGMaxIterations(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic("solver: WithCGMaxIterations: n must be >= 0")
		}
		o.CGMaxIterations = n
	}
}

// WithCGAbsTolerance sets the absolute CG residual target. Panics if tol < 0.
func WithCGAbsTolerance(tol float64) Option {
	return func(o *Options) {
		o.CGAbsTolerance = nonNegative("WithCGAbsTolerance", tol)
	}
}

// WithPreconditioner selects the CG preconditioner.
func WithPreconditioner(kind linear.PreconditionerKind) Option {
	return func(o *Options) {
		o.Preconditioner = kind
	}
}

// WithLambda configures Levenberg-Marquardt damping. Ignored by Gauss-Newton.
// Panics unless 0 < lo ≤ initial ≤ hi and factor > 1.
func WithLambda(initial, factor, lo, hi float64) Option {
	return func(o *Options) {
		if !(lo > 0) || initial < lo || initial > hi || !(factor > 1) {
			panic("solver: WithLambda: need 0 < lo <= initial <= hi and factor > 1")
		}
		o.LambdaInitial, o.LambdaFactor, o.LambdaMin, o.LambdaMax = initial, factor, lo, hi
	}
}

// WithMaxRejections bounds consecutive LM rejections per iteration. Panics if n < 0.
func WithMaxRejections(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic("solver: WithMaxRejections: n must be >= 0")
		}
		o.MaxRejections = n
	}
}

// WithLogger sets the structured logger; nil restores the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		o.Logger = l
	}
}

func nonNegative(op string, v float64) float64 {
	if !(v >= 0) {
		panic("solver: " + op + ": value must be >= 0")
	}

	return v
}
