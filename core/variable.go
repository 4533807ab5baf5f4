// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"strconv"
)

// VariableType describes a family of values living on a manifold.
//
// Storage is the ambient representation written into an Assignments buffer
// (e.g. 4 numbers for a planar pose stored as x, y, cos, sin); Local is the
// tangent space the solver works in (3 numbers for the same pose).
//
// Contract:
//   - Name is a stable tag; it keys factor groups and the value Registry.
//   - LocalDim() <= StorageDim().
//   - Retract(dst, x, 0) writes x bit-for-bit.
//   - LocalSubtract(d, Retract(x, δ), x) ≈ δ to first order in δ.
//   - dst never aliases the inputs' backing arrays for Retract/LocalSubtract
//     unless the implementation documents otherwise.
type VariableType interface {
	// Name returns the stable type tag, e.g. "SE2" or "RealVector3".
	Name() string

	// StorageDim returns the number of scalars in the stored representation.
	StorageDim() int

	// LocalDim returns the tangent-space dimension.
	LocalDim() int

	// Default writes the default (identity/zero) value into dst (len StorageDim).
	Default(dst []float64)

	// Retract writes x ⊕ delta into dst (len StorageDim); delta has len LocalDim.
	Retract(dst, x, delta []float64)

	// LocalSubtract writes a ⊖ b into dst (len LocalDim).
	LocalSubtract(dst, a, b []float64)
}

// Euclidean is implemented by variable types whose retraction is plain vector
// addition. LinearFactor only accepts such variables.
type Euclidean interface {
	VariableType
	IsEuclidean() bool
}

// IsZero reports whether every entry of delta is exactly zero.
// Retract implementations use it to return x unchanged for a zero step.
func IsZero(delta []float64) bool {
	for _, d := range delta {
		if d != 0 {
			return false
		}
	}

	return true
}

// Variable is an unknown in the factor graph.
//
// Identity is the pointer: two calls to NewVariable never compare equal, and
// a *Variable is safe to use as a map key. The type and label are fixed at
// construction.
type Variable struct {
	typ   VariableType
	label string
}

// NewVariable returns a fresh variable of the given type.
// Panics if typ is nil (programmer error).
func NewVariable(typ VariableType) *Variable {
	return NewNamedVariable("", typ)
}

// NewNamedVariable returns a fresh variable carrying a human-readable label
// used only in String() and log output.
func NewNamedVariable(label string, typ VariableType) *Variable {
	if typ == nil {
		panic("core: NewVariable: nil VariableType")
	}

	return &Variable{typ: typ, label: label}
}

// Type returns the variable's manifold type.
func (v *Variable) Type() VariableType { return v.typ }

// Label returns the optional label ("" when unnamed).
func (v *Variable) Label() string { return v.label }

// String implements fmt.Stringer.
func (v *Variable) String() string {
	if v == nil {
		return "<nil>"
	}
	if v.label != "" {
		return fmt.Sprintf("%s(%s)", v.typ.Name(), v.label)
	}

	return fmt.Sprintf("%s(%p)", v.typ.Name(), v)
}

// RealVectorType is the Euclidean space R^Dim.
// Storage and local dimensions coincide; Retract is addition.
type RealVectorType struct {
	Dim int
}

// RealVector returns the R^dim variable type. Panics if dim <= 0.
func RealVector(dim int) RealVectorType {
	if dim <= 0 {
		panic("core: RealVector: dim must be > 0")
	}

	return RealVectorType{Dim: dim}
}

// Name returns "RealVector<Dim>".
func (t RealVectorType) Name() string { return "RealVector" + strconv.Itoa(t.Dim) }

// StorageDim returns Dim.
func (t RealVectorType) StorageDim() int { return t.Dim }

// LocalDim returns Dim.
func (t RealVectorType) LocalDim() int { return t.Dim }

// IsEuclidean marks RealVectorType as a flat space.
func (t RealVectorType) IsEuclidean() bool { return true }

// Default writes the zero vector.
func (t RealVectorType) Default(dst []float64) {
	for i := range dst[:t.Dim] {
		dst[i] = 0
	}
}

// Retract writes x + delta.
func (t RealVectorType) Retract(dst, x, delta []float64) {
	for i := 0; i < t.Dim; i++ {
		dst[i] = x[i] + delta[i]
	}
}

// LocalSubtract writes a − b.
func (t RealVectorType) LocalSubtract(dst, a, b []float64) {
	for i := 0; i < t.Dim; i++ {
		dst[i] = a[i] - b[i]
	}
}
