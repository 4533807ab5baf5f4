// SPDX-License-Identifier: MIT
// Package: factorgraph/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Defaults:
//   • labelFn    = decimalLabel   ("0","1","2",...)
//   • rng        = nil            (noise-free unless seeded)
//   • step       = 1.0            (edge length in metres)
//   • sigmas     = 0              (exact measurements)

package builder

import (
	"math/rand"
	"strconv"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by value to constructors.
type builderConfig struct {
	labelFn func(int) string
	rng     *rand.Rand

	step       float64
	transSigma float64
	rotSigma   float64
}

const (
	defaultStep  = 1.0
	defaultSigma = 0.0
)

// newBuilderConfig applies opts in order over the defaults.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		labelFn:    decimalLabel,
		step:       defaultStep,
		transSigma: defaultSigma,
		rotSigma:   defaultSigma,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// noisy reports whether measurements are perturbed.
func (c builderConfig) noisy() bool { return c.transSigma > 0 || c.rotSigma > 0 }

func decimalLabel(i int) string { return strconv.Itoa(i) }
