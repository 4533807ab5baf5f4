// Package bfs provides tunable options and error definitions
// for breadth-first search over a graph.Graph.
package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/factorgraph/core"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartVariableNotFound is returned when the start variable is not referenced by any factor.
	ErrStartVariableNotFound = errors.New("bfs: start variable not found")

	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Option configures BFS behavior via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation when BFS runs.
type Option func(*Options)

// Options holds parameters and callbacks to customize BFS execution.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called when visiting a variable. If it returns an error,
	// BFS aborts and propagates that error.
	OnVisit func(v *core.Variable, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	// A value of 0 explicitly disables any depth limit.
	MaxDepth int

	// FilterFactor skips every edge contributed by f when it returns false.
	FilterFactor func(f core.Factor) bool

	err error
}

// DefaultOptions returns Options with background context, no depth limit,
// no filtering and a no-op OnVisit.
func DefaultOptions() Options {
	return Options{
		Ctx:          context.Background(),
		OnVisit:      func(*core.Variable, int) error { return nil },
		FilterFactor: func(core.Factor) bool { return true },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the BFS.
func WithOnVisit(fn func(v *core.Variable, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the search at the given depth.
//
//	d > 0: limit to depth d
//	d == 0: explicit no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)

			return
		}
		o.MaxDepth = d
	}
}

// WithFilterFactor skips factors for which fn returns false.
func WithFilterFactor(fn func(f core.Factor) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.FilterFactor = fn
		}
	}
}

// Result holds the outcome of a BFS traversal.
type Result struct {
	Order  []*core.Variable
	Depth  map[*core.Variable]int
	Parent map[*core.Variable]*core.Variable
	Via    map[*core.Variable]core.Factor
}

// Reached reports whether v was visited.
func (r *Result) Reached(v *core.Variable) bool {
	_, ok := r.Depth[v]

	return ok
}

// PathTo reconstructs the variable path from the start to dest.
func (r *Result) PathTo(dest *core.Variable) ([]*core.Variable, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("bfs: no path to %s", dest)
	}
	path := []*core.Variable{}
	for cur := dest; cur != nil; cur = r.Parent[cur] {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
