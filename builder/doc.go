// SPDX-License-Identifier: MIT
// Package: factorgraph/builder
//
// Package builder generates deterministic synthetic SE2 pose graphs for tests,
// examples and benchmarks.
//
// A Dataset carries the variables, the factors (one Prior anchoring the
// first pose of each constructor plus Between odometry and loop closures)
// and the ground-truth poses the measurements were derived from.
//
//	ds, err := builder.Build(
//		[]builder.BuilderOption{builder.WithSeed(7), builder.WithNoise(0.05, 0.01)},
//		builder.Cycle(64),
//	)
//
// Constructors:
//   - Path(n):        straight odometry chain, n ≥ 2.
//   - Cycle(n):       regular polygon with a closing loop, n ≥ 3.
//   - Grid(rows, cols): 4-neighborhood lattice, rows·cols ≥ 2.
//
// Determinism: the same options, seed and constructor order produce
// identical datasets. Noise is drawn only when a sigma is positive, and then
// requires WithSeed or WithRand.
package builder
