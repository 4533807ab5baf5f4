// File: methods_clone.go
// Role: Copy-on-write snapshot used by WithFactors.

package graph

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/katalvlaran/factorgraph/core"
)

// clone deep-copies the arena and both indices. Factors themselves are shared.
// Complexity: O(F + Σ bitmap sizes).
func (g *Graph) clone() *Graph {
	next := &Graph{
		factors:    append([]core.Factor(nil), g.factors...),
		handles:    make(map[core.Factor]uint32, len(g.handles)),
		keys:       append([]core.GroupKey(nil), g.keys...),
		groups:     make(map[core.GroupKey]*roaring.Bitmap, len(g.groups)),
		byVariable: make(map[*core.Variable]*roaring.Bitmap, len(g.byVariable)),
		variables:  append([]*core.Variable(nil), g.variables...),
	}
	for f, h := range g.handles {
		next.handles[f] = h
	}
	for k, bm := range g.groups {
		next.groups[k] = bm.Clone()
	}
	for v, bm := range g.byVariable {
		next.byVariable[v] = bm.Clone()
	}

	return next
}
