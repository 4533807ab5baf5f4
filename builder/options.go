// SPDX-License-Identifier: MIT
// Package: factorgraph/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   • Option constructors validate and panic on meaningless input.
//   • Seeding is explicit via WithSeed or WithRand.

package builder

import (
	"math"
	"math/rand"
)

// BuilderOption mutates a builderConfig before construction begins.
type BuilderOption func(*builderConfig)

// WithSeed installs a deterministic RNG seeded with seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand installs r as the noise source. Panics if r is nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}

	return func(c *builderConfig) { c.rng = r }
}

// WithNoise sets the standard deviations of the translation (metres) and
// rotation (radians) noise added to every Between measurement.
// Panics if a sigma is negative or not finite.
func WithNoise(transSigma, rotSigma float64) BuilderOption {
	for _, s := range []float64{transSigma, rotSigma} {
		if s < 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			panic("builder: WithNoise sigma must be finite and ≥ 0")
		}
	}

	return func(c *builderConfig) {
		c.transSigma = transSigma
		c.rotSigma = rotSigma
	}
}

// WithStep sets the distance between neighbouring poses. Panics if step ≤ 0.
func WithStep(step float64) BuilderOption {
	if !(step > 0) || math.IsInf(step, 0) {
		panic("builder: WithStep must be finite and > 0")
	}

	return func(c *builderConfig) { c.step = step }
}

// WithLabels sets the variable label scheme. Panics if fn is nil.
func WithLabels(fn func(int) string) BuilderOption {
	if fn == nil {
		panic("builder: WithLabels(nil)")
	}

	return func(c *builderConfig) { c.labelFn = fn }
}
