// SPDX-License-Identifier: MIT
// Package: factorgraph/builder
//
// impl_path.go - Path(n): straight odometry chain along +x.

package builder

import (
	"fmt"

	"github.com/katalvlaran/factorgraph/core"
	"github.com/katalvlaran/factorgraph/geometry"
)

const (
	methodPath   = "Path"
	minPathPoses = 2
)

// Path returns a Constructor for n poses spaced cfg.step apart on the x axis,
// anchored at the first pose, with n−1 odometry edges i → i+1.
func Path(n int) Constructor {
	return func(d *Dataset, cfg builderConfig) error {
		if n < minPathPoses {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathPoses, ErrTooFewPoses)
		}
		poses := make([]*core.Variable, n)
		for i := range poses {
			poses[i] = d.addPose(cfg, geometry.SE2FromXYTheta(float64(i)*cfg.step, 0, 0))
		}
		if err := d.anchor(methodPath, poses[0]); err != nil {
			return err
		}
		for i := 0; i+1 < n; i++ {
			if err := d.measure(methodPath, cfg, poses[i], poses[i+1]); err != nil {
				return err
			}
		}

		return nil
	}
}
