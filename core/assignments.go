// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"strings"
)

// Assignments is the variable assignment store: one contiguous buffer holding
// the value of every variable, indexed by a shared Layout.
//
// Assignments are value objects. No method mutates the receiver; updates such
// as Retract and WithValue return a new store with the same Layout.
type Assignments struct {
	layout  *Layout
	storage []float64
}

// NewAssignments builds a store over vars, each set to its type's default.
//
// Errors: those of NewLayout.
// Complexity: O(total storage).
func NewAssignments(vars []*Variable) (*Assignments, error) {
	l, err := NewLayout(vars)
	if err != nil {
		return nil, err
	}

	return NewDefaultAssignments(l), nil
}

// NewDefaultAssignments builds a default-initialized store over an existing layout.
func NewDefaultAssignments(l *Layout) *Assignments {
	a := &Assignments{layout: l, storage: make([]float64, l.storageDim)}
	for _, v := range l.vars {
		s := l.slots[v]
		t := v.Type()
		t.Default(a.storage[s.offset : s.offset+t.StorageDim()])
	}

	return a
}

// NewAssignmentsFromStorage copies storage into a new store over l.
//
// Errors:
//   - ErrDimensionMismatch if len(storage) != l.StorageDim().
func NewAssignmentsFromStorage(l *Layout, storage []float64) (*Assignments, error) {
	if len(storage) != l.storageDim {
		return nil, coreErrorf("NewAssignmentsFromStorage", ErrDimensionMismatch)
	}
	buf := make([]float64, len(storage))
	copy(buf, storage)

	return &Assignments{layout: l, storage: buf}, nil
}

// NewAssignmentsFromValues builds a store over vars and fills it from typed
// values flattened through reg. Variables missing from values keep their default.
// A value may also be given directly as []float64 storage, which bypasses reg.
//
// Errors:
//   - ErrUnknownVariable   if values names a variable not in vars.
//   - ErrUnregisteredType  if a typed value's type has no codec in reg.
//   - ErrDimensionMismatch if a raw []float64 has the wrong length.
func NewAssignmentsFromValues(vars []*Variable, values map[*Variable]any, reg *Registry) (*Assignments, error) {
	a, err := NewAssignments(vars)
	if err != nil {
		return nil, err
	}
	for v, val := range values {
		s, ok := a.layout.slots[v]
		if !ok {
			return nil, coreErrorf("NewAssignmentsFromValues", ErrUnknownVariable)
		}
		t := v.Type()
		dst := a.storage[s.offset : s.offset+t.StorageDim()]
		if raw, isRaw := val.([]float64); isRaw {
			if len(raw) != t.StorageDim() {
				return nil, coreErrorf("NewAssignmentsFromValues", ErrDimensionMismatch)
			}
			copy(dst, raw)
			continue
		}
		if err = reg.Flatten(t.Name(), val, dst); err != nil {
			return nil, coreErrorf("NewAssignmentsFromValues", err)
		}
	}

	return a, nil
}

// Layout returns the storage metadata.
func (a *Assignments) Layout() *Layout { return a.layout }

// Len returns the number of variables.
func (a *Assignments) Len() int { return a.layout.Len() }

// Has reports whether v has an entry.
func (a *Assignments) Has(v *Variable) bool { return a.layout.Has(v) }

// Storage returns a copy of the flat buffer.
func (a *Assignments) Storage() []float64 {
	out := make([]float64, len(a.storage))
	copy(out, a.storage)

	return out
}

// StorageView returns the flat buffer without copying. Callers must treat it as read-only.
func (a *Assignments) StorageView() []float64 { return a.storage }

// Value returns a copy of v's storage.
//
// Errors:
//   - ErrUnknownVariable if v is not in the store.
func (a *Assignments) Value(v *Variable) ([]float64, error) {
	s, ok := a.layout.slots[v]
	if !ok {
		return nil, coreErrorf("Value", ErrUnknownVariable)
	}
	out := make([]float64, v.Type().StorageDim())
	copy(out, a.storage[s.offset:])

	return out, nil
}

// TypedValue unflattens v's storage through reg (e.g. into a geometry.SE2).
func (a *Assignments) TypedValue(reg *Registry, v *Variable) (any, error) {
	raw, err := a.Value(v)
	if err != nil {
		return nil, err
	}
	val, err := reg.Unflatten(v.Type().Name(), raw)
	if err != nil {
		return nil, coreErrorf("TypedValue", err)
	}

	return val, nil
}

// StackedValues returns the storage of every variable of type t, in insertion order.
func (a *Assignments) StackedValues(t VariableType) [][]float64 {
	vars := a.layout.byType[t.Name()]
	out := make([][]float64, len(vars))
	for i, v := range vars {
		s := a.layout.slots[v]
		row := make([]float64, t.StorageDim())
		copy(row, a.storage[s.offset:])
		out[i] = row
	}

	return out
}

// TypedStackedValues is StackedValues unflattened through reg.
func (a *Assignments) TypedStackedValues(reg *Registry, t VariableType) ([]any, error) {
	rows := a.StackedValues(t)
	out := make([]any, len(rows))
	for i, row := range rows {
		val, err := reg.Unflatten(t.Name(), row)
		if err != nil {
			return nil, coreErrorf("TypedStackedValues", err)
		}
		out[i] = val
	}

	return out, nil
}

// WithValue returns a new store in which v holds value.
//
// Errors:
//   - ErrUnknownVariable   if v is not in the store.
//   - ErrDimensionMismatch if len(value) != StorageDim of v's type.
func (a *Assignments) WithValue(v *Variable, value []float64) (*Assignments, error) {
	s, ok := a.layout.slots[v]
	if !ok {
		return nil, coreErrorf("WithValue", ErrUnknownVariable)
	}
	if len(value) != v.Type().StorageDim() {
		return nil, coreErrorf("WithValue", ErrDimensionMismatch)
	}
	out := a.clone()
	copy(out.storage[s.offset:], value)

	return out, nil
}

// Retract applies a stacked tangent update, x_i ← x_i ⊕ delta_i for every
// variable, and returns the result as a new store.
//
// Errors:
//   - ErrDimensionMismatch if len(delta) != Layout().LocalDim().
//
// Complexity: O(total storage).
func (a *Assignments) Retract(delta []float64) (*Assignments, error) {
	if len(delta) != a.layout.localDim {
		return nil, coreErrorf("Retract", ErrDimensionMismatch)
	}
	out := &Assignments{layout: a.layout, storage: make([]float64, len(a.storage))}
	for _, v := range a.layout.vars {
		s := a.layout.slots[v]
		t := v.Type()
		sd, ld := t.StorageDim(), t.LocalDim()
		t.Retract(
			out.storage[s.offset:s.offset+sd],
			a.storage[s.offset:s.offset+sd],
			delta[s.localOffset:s.localOffset+ld],
		)
	}

	return out, nil
}

// LocalSubtract returns the stacked tangent difference a ⊖ b.
//
// Errors:
//   - ErrLayoutMismatch if b is not over the same variables in the same order.
func (a *Assignments) LocalSubtract(b *Assignments) ([]float64, error) {
	if !a.layout.sameVariables(b.layout) {
		return nil, coreErrorf("LocalSubtract", ErrLayoutMismatch)
	}
	out := make([]float64, a.layout.localDim)
	for _, v := range a.layout.vars {
		s := a.layout.slots[v]
		t := v.Type()
		sd, ld := t.StorageDim(), t.LocalDim()
		t.LocalSubtract(
			out[s.localOffset:s.localOffset+ld],
			a.storage[s.offset:s.offset+sd],
			b.storage[s.offset:s.offset+sd],
		)
	}

	return out, nil
}

// String implements fmt.Stringer with one line per variable.
func (a *Assignments) String() string {
	var sb strings.Builder
	sb.WriteString("Assignments{\n")
	for _, v := range a.layout.vars {
		s := a.layout.slots[v]
		fmt.Fprintf(&sb, "  %s: %v\n", v, a.storage[s.offset:s.offset+v.Type().StorageDim()])
	}
	sb.WriteString("}")

	return sb.String()
}

// clone returns a deep copy sharing the layout.
func (a *Assignments) clone() *Assignments {
	buf := make([]float64, len(a.storage))
	copy(buf, a.storage)

	return &Assignments{layout: a.layout, storage: buf}
}

// valuesOf returns read-only storage views of vars, in order.
func (a *Assignments) valuesOf(vars []*Variable) ([][]float64, error) {
	out := make([][]float64, len(vars))
	for i, v := range vars {
		s, ok := a.layout.slots[v]
		if !ok {
			return nil, ErrUnknownVariable
		}
		out[i] = a.storage[s.offset : s.offset+v.Type().StorageDim()]
	}

	return out, nil
}

// ValuesOf is the exported form of valuesOf used by batched evaluators.
// The returned slices alias the store and must not be modified.
func (a *Assignments) ValuesOf(vars []*Variable) ([][]float64, error) {
	out, err := a.valuesOf(vars)
	if err != nil {
		return nil, coreErrorf("ValuesOf", err)
	}

	return out, nil
}
