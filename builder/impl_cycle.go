// SPDX-License-Identifier: MIT
// Package: factorgraph/builder
//
// impl_cycle.go - Cycle(n): poses on a regular polygon with loop closure.
//
// Contract:
//   • n ≥ 3 (else ErrTooFewPoses).
//   • Pose i sits at vertex i of a regular n-gon with side cfg.step, heading
//     along the next side.
//   • Edges i → (i+1)%n in ascending i; the last one closes the loop.

package builder

import (
	"fmt"
	"math"

	"github.com/katalvlaran/factorgraph/core"
	"github.com/katalvlaran/factorgraph/geometry"
)

const (
	methodCycle   = "Cycle"
	minCyclePoses = 3
)

// Cycle returns a Constructor for an n-pose loop.
func Cycle(n int) Constructor {
	return func(d *Dataset, cfg builderConfig) error {
		if n < minCyclePoses {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCyclePoses, ErrTooFewPoses)
		}
		turn := 2 * math.Pi / float64(n)
		radius := cfg.step / (2 * math.Sin(turn/2))
		poses := make([]*core.Variable, n)
		for i := range poses {
			phi := float64(i) * turn
			heading := phi + math.Pi/2 + turn/2
			poses[i] = d.addPose(cfg, geometry.SE2FromXYTheta(radius*math.Cos(phi), radius*math.Sin(phi), heading))
		}
		if err := d.anchor(methodCycle, poses[0]); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := d.measure(methodCycle, cfg, poses[i], poses[(i+1)%n]); err != nil {
				return err
			}
		}

		return nil
	}
}
