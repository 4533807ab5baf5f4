// Package linear provides the matrix-free linear algebra used by the nonlinear
// solvers: a sparse block Jacobian operator and a preconditioned conjugate
// gradient solver for the damped normal equations.
//
// Overview:
//
//	A linearized factor graph is the system J·Δ ≈ b, where J is a tall sparse
//	matrix made of dense blocks (one per factor/variable pair), Δ is the
//	stacked tangent update and b = −r is the negated whitened residual.
//	The Newton step solves the normal equations
//
//	    (JᵀJ + λI)·Δ = Jᵀb
//
//	without ever forming JᵀJ: Normal applies v ↦ Jᵀ(J·v) + λv through
//	BlockJacobian.Apply and ApplyTranspose.
//
// Solvers:
//
//	– ConjugateGradient: PCG on any symmetric positive (semi-)definite operator.
//	– SolveNormal:       CG on (JᵀJ + λI) with a Jacobi preconditioner built
//	                     from the column norms of J.
//
// Termination (first that holds):
//
//	– ‖r_k‖ ≤ max(Tolerance·‖rhs‖, AbsTolerance)          → Converged
//	– k == MaxIterations (0 means the problem dimension) → best iterate
//	– pᵀA·p ≤ 0 (non-positive curvature)                 → best iterate
//
// Inexact Newton steps loosen Tolerance with the outer iteration count via
// InexactTolerance(eta, k) = eta/(k+1).
//
// Complexity:
//
//	– BlockJacobian.Apply / ApplyTranspose: O(nnz) where nnz = Σ rows·cols of all blocks.
//	– One CG iteration on Normal: O(nnz + n).
//
// Errors (sentinel):
//
//	– ErrDimensionMismatch if a vector length disagrees with the operator.
//	– ErrBlockOutOfRange   if a block does not fit inside the Jacobian.
package linear
