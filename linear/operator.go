// SPDX-License-Identifier: MIT

package linear

// Operator is a matrix-free linear map R^Cols → R^Rows together with its transpose.
type Operator interface {
	Rows() int
	Cols() int

	// Apply writes A·x into dst (len Rows).
	Apply(dst, x []float64)

	// ApplyTranspose writes Aᵀ·y into dst (len Cols).
	ApplyTranspose(dst, y []float64)
}

// SymmetricOperator is a square, symmetric matrix-free map.
type SymmetricOperator interface {
	Dim() int

	// Apply writes A·x into dst (len Dim).
	Apply(dst, x []float64)
}

// Normal is the damped normal operator JᵀJ + λI.
// It is not safe for concurrent use: Apply reuses an internal buffer.
type Normal struct {
	J      Operator
	Lambda float64
	tmp    []float64
}

// NewNormal wraps J with damping lambda.
func NewNormal(j Operator, lambda float64) *Normal {
	return &Normal{J: j, Lambda: lambda, tmp: make([]float64, j.Rows())}
}

// Dim returns Cols of J.
func (n *Normal) Dim() int { return n.J.Cols() }

// Apply writes Jᵀ(J·x) + λx into dst.
// Complexity: O(nnz(J) + Cols).
func (n *Normal) Apply(dst, x []float64) {
	if len(n.tmp) != n.J.Rows() {
		n.tmp = make([]float64, n.J.Rows())
	}
	n.J.Apply(n.tmp, x)
	n.J.ApplyTranspose(dst, n.tmp)
	if n.Lambda != 0 {
		for i := range dst {
			dst[i] += n.Lambda * x[i]
		}
	}
}
