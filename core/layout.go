// SPDX-License-Identifier: MIT

package core

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// slot records where one variable lives in storage and tangent space.
type slot struct {
	order       int // insertion index
	offset      int // first storage scalar
	localOffset int // first tangent scalar
}

// Layout is the storage metadata of an assignment store: an ordered, unique
// set of variables with tightly packed, disjoint storage and tangent ranges.
//
// A Layout is immutable once built and is shared by every Assignments derived
// from the same variable set, so pointer equality is a cheap compatibility test.
type Layout struct {
	vars        []*Variable
	slots       map[*Variable]slot
	byType      map[string][]*Variable
	storageDim  int
	localDim    int
	fingerprint uint64
}

// NewLayout packs vars in the given order.
//
// Errors:
//   - ErrNilVariable       if an entry is nil.
//   - ErrDuplicateVariable if a variable appears twice.
//
// Complexity: O(V).
func NewLayout(vars []*Variable) (*Layout, error) {
	l := &Layout{
		vars:   make([]*Variable, 0, len(vars)),
		slots:  make(map[*Variable]slot, len(vars)),
		byType: make(map[string][]*Variable),
	}
	h := xxhash.New()
	for _, v := range vars {
		if v == nil {
			return nil, coreErrorf("NewLayout", ErrNilVariable)
		}
		if _, dup := l.slots[v]; dup {
			return nil, coreErrorf("NewLayout", ErrDuplicateVariable)
		}
		t := v.Type()
		l.slots[v] = slot{order: len(l.vars), offset: l.storageDim, localOffset: l.localDim}
		l.vars = append(l.vars, v)
		l.byType[t.Name()] = append(l.byType[t.Name()], v)
		l.storageDim += t.StorageDim()
		l.localDim += t.LocalDim()

		// Shape only: type tag and dimensions, never identities.
		_, _ = h.WriteString(t.Name())
		_, _ = h.WriteString(":" + strconv.Itoa(t.StorageDim()) + "/" + strconv.Itoa(t.LocalDim()) + ";")
	}
	l.fingerprint = h.Sum64()

	return l, nil
}

// Len returns the number of variables.
func (l *Layout) Len() int { return len(l.vars) }

// Variables returns the variables in insertion order (copy).
func (l *Layout) Variables() []*Variable {
	out := make([]*Variable, len(l.vars))
	copy(out, l.vars)

	return out
}

// VariablesOfType returns the variables whose type is named name, in insertion order.
func (l *Layout) VariablesOfType(name string) []*Variable {
	src := l.byType[name]
	out := make([]*Variable, len(src))
	copy(out, src)

	return out
}

// StorageDim returns the total number of storage scalars.
func (l *Layout) StorageDim() int { return l.storageDim }

// LocalDim returns the total tangent dimension.
func (l *Layout) LocalDim() int { return l.localDim }

// Has reports whether v belongs to the layout.
func (l *Layout) Has(v *Variable) bool {
	_, ok := l.slots[v]

	return ok
}

// Index returns the insertion index of v.
func (l *Layout) Index(v *Variable) (int, error) {
	s, ok := l.slots[v]
	if !ok {
		return 0, ErrUnknownVariable
	}

	return s.order, nil
}

// StorageOffset returns the first storage scalar of v.
func (l *Layout) StorageOffset(v *Variable) (int, error) {
	s, ok := l.slots[v]
	if !ok {
		return 0, ErrUnknownVariable
	}

	return s.offset, nil
}

// LocalOffset returns the first tangent scalar of v.
func (l *Layout) LocalOffset(v *Variable) (int, error) {
	s, ok := l.slots[v]
	if !ok {
		return 0, ErrUnknownVariable
	}

	return s.localOffset, nil
}

// sameVariables reports whether o is l or lists the same variables in the same order.
func (l *Layout) sameVariables(o *Layout) bool {
	if l == o {
		return true
	}
	if l.fingerprint != o.fingerprint || len(l.vars) != len(o.vars) {
		return false
	}
	for i, v := range l.vars {
		if o.vars[i] != v {
			return false
		}
	}

	return true
}

// Fingerprint hashes the sequence of (type, storage dim, local dim).
// Two layouts with equal fingerprints pack storage identically.
func (l *Layout) Fingerprint() uint64 { return l.fingerprint }
