// SPDX-License-Identifier: MIT

package linear

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Default CG settings.
const (
	// DefaultTolerance is the relative residual target ‖r‖/‖rhs‖.
	DefaultTolerance = 1e-6

	// DefaultAbsTolerance stops CG once ‖r‖ falls below it, whatever ‖rhs‖ is.
	DefaultAbsTolerance = 1e-12
)

// PreconditionerKind selects the preconditioner of SolveNormal.
type PreconditionerKind int

const (
	// Jacobi scales by the inverse diagonal of JᵀJ + λI.
	Jacobi PreconditionerKind = iota

	// NoPreconditioner runs plain CG.
	NoPreconditioner
)

// String implements fmt.Stringer.
func (k PreconditionerKind) String() string {
	switch k {
	case Jacobi:
		return "jacobi"
	case NoPreconditioner:
		return "none"
	default:
		return fmt.Sprintf("PreconditionerKind(%d)", int(k))
	}
}

// Preconditioner applies M⁻¹.
type Preconditioner interface {
	// Solve writes M⁻¹·r into dst.
	Solve(dst, r []float64)
}

// DiagonalPreconditioner is M = diag(d).
type DiagonalPreconditioner struct {
	inv []float64
}

// NewDiagonalPreconditioner builds diag(d)⁻¹. Non-positive entries are
// replaced by 1 so that empty columns do not poison the iteration.
func NewDiagonalPreconditioner(d []float64) *DiagonalPreconditioner {
	inv := make([]float64, len(d))
	for i, v := range d {
		if v > 0 {
			inv[i] = 1 / v
		} else {
			inv[i] = 1
		}
	}

	return &DiagonalPreconditioner{inv: inv}
}

// Solve writes diag(d)⁻¹·r.
func (p *DiagonalPreconditioner) Solve(dst, r []float64) {
	floats.MulTo(dst, p.inv, r)
}

// CGOptions bounds a conjugate gradient run.
type CGOptions struct {
	// MaxIterations caps inner iterations; 0 (or anything above the dimension)
	// means the problem dimension.
	MaxIterations int

	// Tolerance is the relative residual target.
	Tolerance float64

	// AbsTolerance is the absolute residual target.
	AbsTolerance float64

	// Preconditioner used by SolveNormal.
	Preconditioner PreconditionerKind
}

// DefaultCGOptions returns Jacobi-preconditioned CG with the default tolerances.
func DefaultCGOptions() CGOptions {
	return CGOptions{
		Tolerance:      DefaultTolerance,
		AbsTolerance:   DefaultAbsTolerance,
		Preconditioner: Jacobi,
	}
}

// Result reports the outcome of a CG run.
type Result struct {
	X            []float64 // best iterate
	Iterations   int       // inner iterations performed
	ResidualNorm float64   // ‖rhs − A·X‖ as tracked by the recurrence
	Converged    bool      // a tolerance was met
}

// InexactTolerance returns the forcing term eta/(k+1) for zero-based outer iteration k.
func InexactTolerance(eta float64, k int) float64 {
	return eta / float64(k+1)
}

// ConjugateGradient solves A·x = rhs for symmetric positive (semi-)definite A,
// starting from x = 0. A nil precond runs unpreconditioned CG.
//
// It never fails on numerical trouble: on non-positive curvature or when the
// iteration cap is hit it returns the best iterate with Converged == false.
//
// Errors:
//   - ErrDimensionMismatch if len(rhs) != A.Dim().
//
// Complexity: O(k · cost(A)) for k ≤ Dim iterations.
func ConjugateGradient(a SymmetricOperator, rhs []float64, precond Preconditioner, opts CGOptions) (Result, error) {
	n := a.Dim()
	if len(rhs) != n {
		return Result{}, fmt.Errorf("ConjugateGradient: %w", ErrDimensionMismatch)
	}

	x := make([]float64, n)
	if n == 0 {
		return Result{X: x, Converged: true}, nil
	}

	maxIter := opts.MaxIterations
	if maxIter <= 0 || maxIter > n {
		maxIter = n
	}

	r := make([]float64, n)
	copy(r, rhs)
	rNorm := floats.Norm(r, 2)
	target := opts.Tolerance * rNorm
	if opts.AbsTolerance > target {
		target = opts.AbsTolerance
	}
	if rNorm <= target {
		return Result{X: x, ResidualNorm: rNorm, Converged: true}, nil
	}

	z := make([]float64, n)
	applyPrecond(precond, z, r)
	p := make([]float64, n)
	copy(p, z)
	ap := make([]float64, n)
	rz := floats.Dot(r, z)

	res := Result{X: x, ResidualNorm: rNorm}
	for k := 0; k < maxIter; k++ {
		a.Apply(ap, p)
		pAp := floats.Dot(p, ap)
		if pAp <= 0 {
			break
		}
		alpha := rz / pAp
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, ap)
		res.Iterations = k + 1
		res.ResidualNorm = floats.Norm(r, 2)
		if res.ResidualNorm <= target {
			res.Converged = true
			break
		}

		applyPrecond(precond, z, r)
		rzNext := floats.Dot(r, z)
		beta := rzNext / rz
		rz = rzNext
		for i := range p {
			p[i] = z[i] + beta*p[i]
		}
	}

	return res, nil
}

// SolveNormal solves (JᵀJ + λI)·Δ = Jᵀb, the (damped) Gauss-Newton step of
// min ‖J·Δ − b‖².
//
// Errors:
//   - ErrDimensionMismatch if len(b) != J.Rows().
func SolveNormal(j Operator, b []float64, lambda float64, opts CGOptions) (Result, error) {
	if len(b) != j.Rows() {
		return Result{}, fmt.Errorf("SolveNormal: %w", ErrDimensionMismatch)
	}
	rhs := make([]float64, j.Cols())
	j.ApplyTranspose(rhs, b)

	var precond Preconditioner
	if opts.Preconditioner == Jacobi {
		precond = jacobiFor(j, lambda)
	}

	return ConjugateGradient(NewNormal(j, lambda), rhs, precond, opts)
}

// jacobiFor builds diag(JᵀJ)+λ when J can report its column norms.
func jacobiFor(j Operator, lambda float64) Preconditioner {
	cn, ok := j.(interface{ ColumnSquaredNorms() []float64 })
	if !ok {
		return nil
	}
	d := cn.ColumnSquaredNorms()
	for i := range d {
		d[i] += lambda
	}

	return NewDiagonalPreconditioner(d)
}

func applyPrecond(p Preconditioner, dst, r []float64) {
	if p == nil {
		copy(dst, r)
		return
	}
	p.Solve(dst, r)
}
