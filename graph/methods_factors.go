// File: methods_factors.go
// Role: Read-only queries over factors, groups and variables.

package graph

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/katalvlaran/factorgraph/core"
)

// Len returns the number of factors.
func (g *Graph) Len() int { return len(g.factors) }

// Has reports whether f is in the graph.
func (g *Graph) Has(f core.Factor) bool {
	_, ok := g.handles[f]

	return ok
}

// Factors returns every factor in handle order.
func (g *Graph) Factors() []core.Factor {
	return append([]core.Factor(nil), g.factors...)
}

// Groups returns the group keys sorted by Kind, Signature, then ErrorDim.
func (g *Graph) Groups() []core.GroupKey {
	keys := make([]core.GroupKey, 0, len(g.groups))
	for k := range g.groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Signature != b.Signature {
			return a.Signature < b.Signature
		}

		return a.ErrorDim < b.ErrorDim
	})

	return keys
}

// GroupOf returns the group key of f.
func (g *Graph) GroupOf(f core.Factor) (core.GroupKey, bool) {
	h, ok := g.handles[f]
	if !ok {
		return core.GroupKey{}, false
	}

	return g.keys[h], true
}

// FactorsInGroup returns the factors of key in handle order (nil if none).
func (g *Graph) FactorsInGroup(key core.GroupKey) []core.Factor {
	return g.collect(g.groups[key])
}

// FactorsOf returns the factors that reference v, in handle order (nil if none).
func (g *Graph) FactorsOf(v *core.Variable) []core.Factor {
	return g.collect(g.byVariable[v])
}

// Variables returns every referenced variable in first-appearance order.
func (g *Graph) Variables() []*core.Variable {
	return append([]*core.Variable(nil), g.variables...)
}

// NewAssignments returns default-initialized assignments over Variables().
func (g *Graph) NewAssignments() (*core.Assignments, error) {
	return core.NewAssignments(g.variables)
}

func (g *Graph) collect(bm *roaring.Bitmap) []core.Factor {
	if bm == nil || bm.IsEmpty() {
		return nil
	}
	out := make([]core.Factor, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, g.factors[it.Next()])
	}

	return out
}
