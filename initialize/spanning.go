// SPDX-License-Identifier: MIT

package initialize

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/factorgraph/bfs"
	"github.com/katalvlaran/factorgraph/core"
	"github.com/katalvlaran/factorgraph/factors"
	"github.com/katalvlaran/factorgraph/graph"
	"gonum.org/v1/gonum/floats"
)

// ErrNilInput is returned when the graph or assignments are nil.
var ErrNilInput = errors.New("initialize: nil graph or assignments")

// Options configures SpanningTree.
type Options struct {
	// Logger receives one Warn per component without a prior.
	Logger *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithLogger sets the logger; nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		o.Logger = l
	}
}

// SpanningTree returns a copy of init with every variable of g re-placed by
// composing Between measurements along a BFS tree per component.
// Variables of init not referenced by g keep their values.
//
// Errors:
//   - ErrNilInput if g or init is nil.
//   - core.ErrUnknownVariable if a variable of g is missing from init.
//
// Complexity: O(V + F·k) plus one Retract per variable.
func SpanningTree(g *graph.Graph, init *core.Assignments, opts ...Option) (*core.Assignments, error) {
	if g == nil || init == nil {
		return nil, ErrNilInput
	}
	o := Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	layout := init.Layout()
	storage := init.Storage()
	slot := func(v *core.Variable) ([]float64, error) {
		off, err := layout.StorageOffset(v)
		if err != nil {
			return nil, fmt.Errorf("SpanningTree: %s: %w", v, err)
		}

		return storage[off : off+v.Type().StorageDim()], nil
	}

	comps, err := bfs.Components(g)
	if err != nil {
		return nil, fmt.Errorf("SpanningTree: %w", err)
	}
	onlyBetween := bfs.WithFilterFactor(func(f core.Factor) bool {
		_, ok := f.(*factors.Between)

		return ok
	})

	for _, c := range comps {
		root, mean := anchor(g, c.Variables)
		if mean == nil {
			o.Logger.Warn("component without prior", "root", root.String(), "variables", len(c.Variables))
		}
		dst, err := slot(root)
		if err != nil {
			return nil, err
		}
		if mean != nil {
			copy(dst, mean)
		}

		tree, err := bfs.BFS(g, root, onlyBetween)
		if err != nil {
			return nil, fmt.Errorf("SpanningTree: %w", err)
		}
		for _, v := range tree.Order[1:] {
			parent := tree.Parent[v]
			b := tree.Via[v].(*factors.Between)
			delta := b.Delta()
			if b.Variable(0) != parent {
				floats.Scale(-1, delta)
			}
			from, err := slot(parent)
			if err != nil {
				return nil, err
			}
			to, err := slot(v)
			if err != nil {
				return nil, err
			}
			v.Type().Retract(to, from, delta)
		}
	}

	return core.NewAssignmentsFromStorage(layout, storage)
}

// anchor returns the first variable of vars touched by a Prior and its mean,
// or vars[0] and nil.
func anchor(g *graph.Graph, vars []*core.Variable) (*core.Variable, []float64) {
	for _, v := range vars {
		for _, f := range g.FactorsOf(v) {
			if p, ok := f.(*factors.Prior); ok {
				return v, p.Mean()
			}
		}
	}

	return vars[0], nil
}
