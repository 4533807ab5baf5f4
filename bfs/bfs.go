// Package bfs provides breadth-first search over the variables of a graph.Graph,
// returning hop distances, parent links, discovering factors and visit order.
package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/factorgraph/core"
	"github.com/katalvlaran/factorgraph/graph"
)

// queueItem pairs a variable with its BFS depth.
type queueItem struct {
	v     *core.Variable
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph *graph.Graph
	opts  Options
	ctx   context.Context
	queue []queueItem
	res   *Result
}

// BFS runs breadth-first search on g starting from start.
// Returns ErrGraphNil, ErrStartVariableNotFound or ErrOptionViolation for
// invalid input, the context error on cancellation, or any OnVisit error.
func BFS(g *graph.Graph, start *core.Variable, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if start == nil || g.FactorsOf(start) == nil {
		return nil, ErrStartVariableNotFound
	}

	n := len(g.Variables())
	w := &walker{
		graph: g,
		opts:  o,
		ctx:   o.Ctx,
		queue: make([]queueItem, 0, n),
		res: &Result{
			Order:  make([]*core.Variable, 0, n),
			Depth:  make(map[*core.Variable]int, n),
			Parent: make(map[*core.Variable]*core.Variable, n),
			Via:    make(map[*core.Variable]core.Factor, n),
		},
	}
	w.enqueue(start, 0, nil, nil)

	return w.res, w.loop()
}

// enqueue marks v discovered at depth d and records how it was reached.
func (w *walker) enqueue(v *core.Variable, d int, parent *core.Variable, via core.Factor) {
	w.res.Depth[v] = d
	if parent != nil {
		w.res.Parent[v] = parent
		w.res.Via[v] = via
	}
	w.queue = append(w.queue, queueItem{v: v, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.v)
		if err := w.opts.OnVisit(item.v, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %s: %w", item.v, err)
		}
		w.enqueueNeighbors(item)
	}

	return nil
}

// enqueueNeighbors walks every unfiltered factor of item.v and enqueues
// each unseen co-variable within MaxDepth.
func (w *walker) enqueueNeighbors(item queueItem) {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return
	}
	for _, f := range w.graph.FactorsOf(item.v) {
		if !w.opts.FilterFactor(f) {
			continue
		}
		for _, nbr := range f.Variables() {
			if _, seen := w.res.Depth[nbr]; !seen {
				w.enqueue(nbr, next, item.v, f)
			}
		}
	}
}
