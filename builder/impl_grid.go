// SPDX-License-Identifier: MIT
// Package: factorgraph/builder
//
// impl_grid.go - Grid(rows, cols): 4-neighborhood lattice of poses.
//
// Contract:
//   • rows, cols ≥ 1 and rows·cols ≥ 2 (else ErrTooFewPoses).
//   • Poses are added row-major; pose (r, c) sits at (c·step, r·step) facing +x.
//   • Edges per pose in row-major order: right neighbour, then lower neighbour.

package builder

import (
	"fmt"

	"github.com/katalvlaran/factorgraph/core"
	"github.com/katalvlaran/factorgraph/geometry"
)

const methodGrid = "Grid"

// Grid returns a Constructor for a rows×cols lattice anchored at (0, 0).
func Grid(rows, cols int) Constructor {
	return func(d *Dataset, cfg builderConfig) error {
		if rows < 1 || cols < 1 || rows*cols < 2 {
			return fmt.Errorf("%s: %dx%d: %w", methodGrid, rows, cols, ErrTooFewPoses)
		}
		at := make([]*core.Variable, rows*cols)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				at[r*cols+c] = d.addPose(cfg, geometry.SE2FromXYTheta(float64(c)*cfg.step, float64(r)*cfg.step, 0))
			}
		}
		if err := d.anchor(methodGrid, at[0]); err != nil {
			return err
		}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				u := at[r*cols+c]
				if c+1 < cols {
					if err := d.measure(methodGrid, cfg, u, at[r*cols+c+1]); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err := d.measure(methodGrid, cfg, u, at[(r+1)*cols+c]); err != nil {
						return err
					}
				}
			}
		}

		return nil
	}
}
