// SPDX-License-Identifier: MIT
// Package: factorgraph/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Constructors attach context with %w; option constructors panic instead.

package builder

import "errors"

// ErrTooFewPoses indicates that a size parameter (n, rows, cols) is below
// the constructor's minimum.
var ErrTooFewPoses = errors.New("builder: parameter too small")

// ErrNeedRandSource indicates that noise was requested without a *rand.Rand
// (use WithSeed or WithRand).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a nil constructor or a factor the core
// rejected.
var ErrConstructFailed = errors.New("builder: construction failed")
