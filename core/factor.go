// SPDX-License-Identifier: MIT

package core

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Factor is a constraint over an ordered tuple of variables.
//
// Implementations must be pointer types: graphs key factors by interface
// value, and two factors are the same factor only if they are the same pointer.
type Factor interface {
	// Kind returns the stable factor tag ("Prior", "Between", "Linear", ...).
	Kind() string

	// Variables returns the ordered variables. Callers receive a copy.
	Variables() []*Variable

	// ErrorDim returns the residual dimension (== rows of Whitening).
	ErrorDim() int

	// Whitening returns the lower-triangular inverse square root of the
	// constraint covariance. Callers must not mutate it.
	Whitening() *mat.TriDense

	// UnwhitenedError writes the raw residual e(x) into dst (len ErrorDim).
	// values[i] holds the storage of Variables()[i].
	UnwhitenedError(dst []float64, values [][]float64)
}

// JacobianFactor is an optional capability: factors that know their analytic
// Jacobians skip finite differencing during linearization.
type JacobianFactor interface {
	Factor

	// LocalJacobians writes ∂e/∂δ_i (unwhitened, local coordinates) into dst[i],
	// each pre-sized ErrorDim × LocalDim of variable i.
	LocalJacobians(dst []*mat.Dense, values [][]float64)
}

// BatchFactor is an optional capability: a group whose first factor
// implements it has its residuals computed in one call per span of the group
// instead of one UnwhitenedError call per factor.
type BatchFactor interface {
	Factor

	// UnwhitenedErrorBatch writes the raw residual of group[k] into dst[k].
	// values[k] holds the argument storage of group[k]. Every factor of group
	// shares the receiver's GroupKey.
	UnwhitenedErrorBatch(dst [][]float64, group []Factor, values [][][]float64)
}

// GroupKey identifies the structural shape of a factor. Factors sharing a key
// are evaluated together as one batch.
type GroupKey struct {
	Kind      string // factor tag
	Signature string // argument variable-type names joined by ","
	ErrorDim  int    // residual dimension
}

// String implements fmt.Stringer.
func (k GroupKey) String() string {
	return k.Kind + "(" + k.Signature + ")/" + strconv.Itoa(k.ErrorDim)
}

// GroupKeyOf derives the group key of f from its kind, argument types and error dim.
// Complexity: O(arity).
func GroupKeyOf(f Factor) GroupKey {
	vars := f.Variables()
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Type().Name()
	}

	return GroupKey{Kind: f.Kind(), Signature: strings.Join(names, ","), ErrorDim: f.ErrorDim()}
}

// FactorBase carries the state every factor shares: its variables and its
// whitening matrix. Concrete factors embed it and add Kind/UnwhitenedError.
type FactorBase struct {
	variables []*Variable
	whitening *mat.TriDense
	errorDim  int
}

// NewFactorBase validates and captures the variable tuple and whitening.
//
// Errors:
//   - ErrNoVariables  if vars is empty.
//   - ErrNilVariable  if any entry is nil.
//   - ErrBadWhitening if whitening is nil, empty or upper-triangular.
func NewFactorBase(vars []*Variable, whitening *mat.TriDense) (FactorBase, error) {
	if len(vars) == 0 {
		return FactorBase{}, ErrNoVariables
	}
	for _, v := range vars {
		if v == nil {
			return FactorBase{}, ErrNilVariable
		}
	}
	if whitening == nil || whitening.IsEmpty() {
		return FactorBase{}, ErrBadWhitening
	}
	n, kind := whitening.Triangle()
	if kind != mat.Lower {
		return FactorBase{}, ErrBadWhitening
	}

	// Own copies so later caller mutations cannot change the factor's identity.
	owned := make([]*Variable, len(vars))
	copy(owned, vars)
	w := mat.NewTriDense(n, mat.Lower, nil)
	w.Copy(whitening)

	return FactorBase{variables: owned, whitening: w, errorDim: n}, nil
}

// Variables returns a copy of the ordered variable tuple.
func (b *FactorBase) Variables() []*Variable {
	out := make([]*Variable, len(b.variables))
	copy(out, b.variables)

	return out
}

// Arity returns the number of variables without copying.
func (b *FactorBase) Arity() int { return len(b.variables) }

// Variable returns the i-th variable without copying the tuple.
func (b *FactorBase) Variable(i int) *Variable { return b.variables[i] }

// ErrorDim returns the residual dimension.
func (b *FactorBase) ErrorDim() int { return b.errorDim }

// Whitening returns the whitening matrix.
func (b *FactorBase) Whitening() *mat.TriDense { return b.whitening }

// Whiten overwrites r with W·r.
// Complexity: O(d²) for error dim d.
func Whiten(w *mat.TriDense, r []float64) {
	var out mat.VecDense
	out.MulVec(w, mat.NewVecDense(len(r), r))
	copy(r, out.RawVector().Data)
}

// ComputeError returns the whitened residual W·e(x) of f at a.
//
// Errors:
//   - ErrUnknownVariable if a does not hold one of f's variables.
func ComputeError(f Factor, a *Assignments) ([]float64, error) {
	values, err := a.valuesOf(f.Variables())
	if err != nil {
		return nil, coreErrorf("ComputeError", err)
	}

	return WhitenedError(f, values), nil
}

// WhitenedError evaluates W·e for explicit per-variable storage values.
func WhitenedError(f Factor, values [][]float64) []float64 {
	r := make([]float64, f.ErrorDim())
	f.UnwhitenedError(r, values)
	Whiten(f.Whitening(), r)

	return r
}
