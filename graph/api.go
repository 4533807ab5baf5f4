// File: api.go
// Role: Graph construction and ownership-transferring updates.

package graph

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/katalvlaran/factorgraph/core"
)

// New builds a graph from factors, keeping their order as handle order.
//
// Errors:
//   - ErrNilFactor, ErrDuplicateFactor.
//
// Complexity: O(Σ arity).
func New(factors ...core.Factor) (*Graph, error) {
	g := empty()
	if err := g.validateAdd(factors); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	for _, f := range factors {
		g.insert(f)
	}

	return g, nil
}

// WithFactors returns a graph holding g's factors followed by factors, and
// consumes g. On error g stays usable.
//
// Errors:
//   - ErrGraphConsumed, ErrNilFactor, ErrDuplicateFactor.
//
// Complexity: O(F + Σ arity of the new factors) for the index copy.
func (g *Graph) WithFactors(factors ...core.Factor) (*Graph, error) {
	if g.consumed.Load() {
		return nil, fmt.Errorf("WithFactors: %w", ErrGraphConsumed)
	}
	if err := g.validateAdd(factors); err != nil {
		return nil, fmt.Errorf("WithFactors: %w", err)
	}
	if !g.consumed.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("WithFactors: %w", ErrGraphConsumed)
	}

	next := g.clone()
	for _, f := range factors {
		next.insert(f)
	}

	return next, nil
}

// WithoutFactors returns a graph without the given factors, and consumes g.
// Remaining factors keep their relative order; handles are renumbered.
// On error g stays usable.
//
// Errors:
//   - ErrGraphConsumed, ErrNilFactor, ErrFactorNotFound (also for a factor listed twice).
//
// Complexity: O(Σ arity).
func (g *Graph) WithoutFactors(factors ...core.Factor) (*Graph, error) {
	if g.consumed.Load() {
		return nil, fmt.Errorf("WithoutFactors: %w", ErrGraphConsumed)
	}
	drop := roaring.New()
	for _, f := range factors {
		if f == nil {
			return nil, fmt.Errorf("WithoutFactors: %w", ErrNilFactor)
		}
		h, ok := g.handles[f]
		if !ok || !drop.CheckedAdd(h) {
			return nil, fmt.Errorf("WithoutFactors: %s: %w", f.Kind(), ErrFactorNotFound)
		}
	}
	if !g.consumed.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("WithoutFactors: %w", ErrGraphConsumed)
	}

	next := empty()
	for h, f := range g.factors {
		if !drop.Contains(uint32(h)) {
			next.insert(f)
		}
	}

	return next, nil
}

// Consumed reports whether g's ownership has been transferred.
func (g *Graph) Consumed() bool { return g.consumed.Load() }

func empty() *Graph {
	return &Graph{
		handles:    make(map[core.Factor]uint32),
		groups:     make(map[core.GroupKey]*roaring.Bitmap),
		byVariable: make(map[*core.Variable]*roaring.Bitmap),
	}
}

// validateAdd rejects nil factors and factors already present or repeated.
func (g *Graph) validateAdd(factors []core.Factor) error {
	seen := make(map[core.Factor]struct{}, len(factors))
	for _, f := range factors {
		if f == nil {
			return ErrNilFactor
		}
		if _, ok := g.handles[f]; ok {
			return fmt.Errorf("%s: %w", f.Kind(), ErrDuplicateFactor)
		}
		if _, ok := seen[f]; ok {
			return fmt.Errorf("%s: %w", f.Kind(), ErrDuplicateFactor)
		}
		seen[f] = struct{}{}
	}

	return nil
}

// insert appends f to the arena and both indices. f must be validated.
func (g *Graph) insert(f core.Factor) {
	h := uint32(len(g.factors))
	key := core.GroupKeyOf(f)
	g.factors = append(g.factors, f)
	g.handles[f] = h
	g.keys = append(g.keys, key)

	bm, ok := g.groups[key]
	if !ok {
		bm = roaring.New()
		g.groups[key] = bm
	}
	bm.Add(h)

	for _, v := range f.Variables() {
		set, seen := g.byVariable[v]
		if !seen {
			set = roaring.New()
			g.byVariable[v] = set
			g.variables = append(g.variables, v)
		}
		set.Add(h)
	}
}
