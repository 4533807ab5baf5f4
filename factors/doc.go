// Package factors provides the standard constraint types of a factor graph:
//
//   - Prior:   a unary constraint pulling a variable toward a mean,
//     e(x) = x ⊖ μ.
//   - Between: a binary relative constraint between two variables of the
//     same type, e(a, b) = (a ⊕ δ) ⊖ b, with δ in a's tangent space.
//
// Both are generic over any core.VariableType, so the same factor kinds serve
// RealVector unknowns and every Lie group of package geometry. The residual
// dimension is the variable type's LocalDim; the whitening matrix must be
// LocalDim × LocalDim (nil selects identity whitening).
//
// Jacobians are left to core.Linearize (central differences in tangent space).
package factors
