// SPDX-License-Identifier: MIT

package core

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// IdentityWhitening returns the n×n identity, i.e. a unit-covariance constraint.
// Panics if n <= 0.
func IdentityWhitening(n int) *mat.TriDense {
	return ScaledWhitening(n, 1)
}

// ScaledWhitening returns s·I (isotropic standard deviation 1/s).
// Panics if n <= 0 or s is not finite and positive.
func ScaledWhitening(n int, s float64) *mat.TriDense {
	if n <= 0 {
		panic("core: ScaledWhitening: n must be > 0")
	}
	if !(s > 0) || math.IsInf(s, 0) {
		panic("core: ScaledWhitening: scale must be finite and > 0")
	}
	w := mat.NewTriDense(n, mat.Lower, nil)
	for i := 0; i < n; i++ {
		w.SetTri(i, i, s)
	}

	return w
}

// WhiteningFromCovariance returns L⁻¹ where Σ = L·Lᵀ (Cholesky), so that
// (L⁻¹)ᵀ(L⁻¹) = Σ⁻¹ and the result is lower-triangular.
//
// Errors:
//   - ErrBadWhitening if Σ is not symmetric positive definite.
//
// Complexity: O(n³).
func WhiteningFromCovariance(cov mat.Symmetric) (*mat.TriDense, error) {
	var chol mat.Cholesky
	if ok := chol.Factorize(cov); !ok {
		return nil, coreErrorf("WhiteningFromCovariance", ErrBadWhitening)
	}
	var l mat.TriDense
	chol.LTo(&l)

	var w mat.TriDense
	if err := w.InverseTri(&l); err != nil {
		return nil, coreErrorf("WhiteningFromCovariance", ErrBadWhitening)
	}

	return &w, nil
}

// WhiteningFromInformation returns a lower-triangular W with WᵀW = Λ for an
// information matrix Λ = Σ⁻¹ (the form pose-graph datasets usually ship).
//
// Errors:
//   - ErrBadWhitening if Λ is not symmetric positive definite.
//
// Complexity: O(n³).
func WhiteningFromInformation(info mat.Symmetric) (*mat.TriDense, error) {
	var chol mat.Cholesky
	if ok := chol.Factorize(info); !ok {
		return nil, coreErrorf("WhiteningFromInformation", ErrBadWhitening)
	}
	var cov mat.SymDense
	if err := chol.InverseTo(&cov); err != nil {
		return nil, coreErrorf("WhiteningFromInformation", ErrBadWhitening)
	}

	return WhiteningFromCovariance(&cov)
}
