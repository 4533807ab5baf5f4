// SPDX-License-Identifier: MIT

package core

import (
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Linearize returns the linearized form of f around values:
//
//	A_i = W · ∂e/∂δ_i   (local coordinates of variable i)
//	b   = −W · e(x)
//
// so that W·e(x ⊕ δ) ≈ Σ A_i δ_i − b.
//
// Jacobian source, in order of preference:
//  1. *LinearFactor - its stored A_i are reused as-is (identity whitening).
//  2. JacobianFactor - analytic blocks, whitened here.
//  3. Central finite differences over Retract in tangent space (gonum diff/fd).
//
// Errors:
//   - ErrDimensionMismatch if len(values) != arity or a value has the wrong length.
//
// Complexity: O(Σ LocalDim_i · cost(e)) for the numeric path.
func Linearize(f Factor, values [][]float64) (*LinearFactor, error) {
	vars := f.Variables()
	if len(values) != len(vars) {
		return nil, coreErrorf("Linearize", ErrDimensionMismatch)
	}
	for i, v := range vars {
		if len(values[i]) != v.Type().StorageDim() {
			return nil, coreErrorf("Linearize", ErrDimensionMismatch)
		}
	}

	b := WhitenedError(f, values)
	floats.Scale(-1, b)

	if lf, ok := f.(*LinearFactor); ok {
		return newLinearFactor(vars, lf.blocks, b, "Linearize")
	}

	m := f.ErrorDim()
	raw := make([]*mat.Dense, len(vars))
	for i, v := range vars {
		raw[i] = mat.NewDense(m, v.Type().LocalDim(), nil)
	}
	if jf, ok := f.(JacobianFactor); ok {
		jf.LocalJacobians(raw, values)
	} else {
		for i := range vars {
			numericJacobian(raw[i], f, values, i)
		}
	}

	w := f.Whitening()
	blocks := make([]*mat.Dense, len(vars))
	for i := range raw {
		var wj mat.Dense
		wj.Mul(w, raw[i])
		blocks[i] = &wj
	}

	return newLinearFactor(vars, blocks, b, "Linearize")
}

// numericJacobian fills dst with ∂e/∂δ_i at δ = 0 by central differences.
func numericJacobian(dst *mat.Dense, f Factor, values [][]float64, i int) {
	t := f.Variables()[i].Type()
	x := values[i]
	buf := make([]float64, t.StorageDim())
	perturbed := make([][]float64, len(values))
	copy(perturbed, values)
	perturbed[i] = buf

	// Sequential evaluation: the closure reuses buf.
	settings := fd.JacobianSettings{Formula: fd.Central}
	fd.Jacobian(dst, func(y, delta []float64) {
		t.Retract(buf, x, delta)
		f.UnwhitenedError(y, perturbed)
	}, make([]float64, t.LocalDim()), &settings)
}
