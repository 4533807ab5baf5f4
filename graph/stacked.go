// File: stacked.go
// Role: Preparation of a Graph against a Layout and batched evaluation.
// Concurrency:
//   - A Stacked is read-only after Prepare; evaluations allocate their own outputs.
//   - Work is split into per-group spans; each span writes disjoint residual
//     rows and Jacobian block slots.

package graph

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/katalvlaran/factorgraph/core"
	"github.com/katalvlaran/factorgraph/linear"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// Prepare fixes the evaluation plan of g over layout. g is not consumed.
//
// Errors:
//   - ErrGraphConsumed   if g was consumed.
//   - ErrUnknownVariable if a factor references a variable missing from layout.
//
// Complexity: O(Σ arity + G log G) for G groups.
func (g *Graph) Prepare(layout *core.Layout, opts ...PrepareOption) (*Stacked, error) {
	if g.consumed.Load() {
		return nil, fmt.Errorf("Prepare: %w", ErrGraphConsumed)
	}
	o := DefaultPrepareOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Stacked{layout: layout, workers: o.Workers}
	h := xxhash.New()
	_, _ = h.WriteString(strconv.FormatUint(layout.Fingerprint(), 16))

	for _, key := range g.Groups() {
		factors := g.FactorsInGroup(key)
		sg := stackedGroup{
			key:     key,
			factors: factors,
			storage: make([][]int, len(factors)),
			local:   make([][]int, len(factors)),
			rows:    make([]int, len(factors)),
			blocks:  make([]int, len(factors)),
		}
		_, _ = h.WriteString("|" + key.String() + "#" + strconv.Itoa(len(factors)))

		for i, f := range factors {
			vars := f.Variables()
			sg.storage[i] = make([]int, len(vars))
			sg.local[i] = make([]int, len(vars))
			for j, v := range vars {
				idx, err := layout.Index(v)
				if err != nil {
					return nil, fmt.Errorf("Prepare: %s: %v: %w", key, v, ErrUnknownVariable)
				}
				sg.storage[i][j], _ = layout.StorageOffset(v)
				sg.local[i][j], _ = layout.LocalOffset(v)
				_, _ = h.WriteString("," + strconv.Itoa(idx))
			}
			sg.rows[i] = s.rows
			sg.blocks[i] = s.nBlocks
			s.rows += f.ErrorDim()
			s.nBlocks += len(vars)
		}
		s.nFactors += len(factors)
		s.groups = append(s.groups, sg)
	}
	s.fingerprint = h.Sum64()
	s.spans = s.split()

	return s, nil
}

// Layout returns the layout the graph was prepared against.
func (s *Stacked) Layout() *core.Layout { return s.layout }

// Rows returns the total residual dimension.
func (s *Stacked) Rows() int { return s.rows }

// Len returns the number of factors.
func (s *Stacked) Len() int { return s.nFactors }

// Groups returns the group keys in evaluation order.
func (s *Stacked) Groups() []core.GroupKey {
	out := make([]core.GroupKey, len(s.groups))
	for i, sg := range s.groups {
		out[i] = sg.key
	}

	return out
}

// Fingerprint identifies the shape of the prepared graph: layout shape, group
// keys and sizes, and which layout slots every factor reads. Two graphs with
// equal fingerprints evaluate through identical plans.
func (s *Stacked) Fingerprint() uint64 { return s.fingerprint }

// ComputeResidual returns the stacked whitened residual r(x), groups in
// Groups() order and factors in insertion order within a group.
//
// Errors:
//   - ErrLayoutMismatch if a was not built over a compatible layout.
//
// Complexity: O(Σ cost(e_f)).
func (s *Stacked) ComputeResidual(a *core.Assignments) ([]float64, error) {
	if err := s.check(a); err != nil {
		return nil, fmt.Errorf("ComputeResidual: %w", err)
	}
	r := make([]float64, s.rows)
	storage := a.StorageView()
	err := s.forEach(func(sp span) error {
		sg := sp.sg
		if bf, ok := sg.factors[sp.lo].(core.BatchFactor); ok {
			n := sp.hi - sp.lo
			dst := make([][]float64, n)
			values := make([][][]float64, n)
			for k := 0; k < n; k++ {
				i := sp.lo + k
				dst[k] = r[sg.rows[i] : sg.rows[i]+sg.factors[i].ErrorDim()]
				values[k] = s.values(storage, sg, i)
			}
			bf.UnwhitenedErrorBatch(dst, sg.factors[sp.lo:sp.hi], values)
			for k, f := range sg.factors[sp.lo:sp.hi] {
				core.Whiten(f.Whitening(), dst[k])
			}

			return nil
		}
		for i := sp.lo; i < sp.hi; i++ {
			f := sg.factors[i]
			dst := r[sg.rows[i] : sg.rows[i]+f.ErrorDim()]
			f.UnwhitenedError(dst, s.values(storage, sg, i))
			core.Whiten(f.Whitening(), dst)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ComputeResidual: %w", err)
	}

	return r, nil
}

// Cost returns ½‖r(x)‖².
//
// Errors: those of ComputeResidual.
func (s *Stacked) Cost(a *core.Assignments) (float64, error) {
	r, err := s.ComputeResidual(a)
	if err != nil {
		return 0, err
	}

	return 0.5 * floats.Dot(r, r), nil
}

// Linearize returns the block Jacobian J of the whitened residual at a, in
// tangent coordinates, and the offset b = −r(x), so that
// r(x ⊕ Δ) ≈ J·Δ − b.
//
// Errors:
//   - ErrLayoutMismatch if a was not built over a compatible layout.
//
// Complexity: O(Σ cost(linearize f)).
func (s *Stacked) Linearize(a *core.Assignments) (*linear.BlockJacobian, []float64, error) {
	if err := s.check(a); err != nil {
		return nil, nil, fmt.Errorf("Linearize: %w", err)
	}
	b := make([]float64, s.rows)
	blocks := make([]linear.Block, s.nBlocks)
	storage := a.StorageView()
	err := s.forEach(func(sp span) error {
		sg := sp.sg
		for i := sp.lo; i < sp.hi; i++ {
			f := sg.factors[i]
			lin, err := core.Linearize(f, s.values(storage, sg, i))
			if err != nil {
				return fmt.Errorf("%s: %w", sg.key, err)
			}
			row := sg.rows[i]
			copy(b[row:row+f.ErrorDim()], lin.Offset())
			for j, col := range sg.local[i] {
				blocks[sg.blocks[i]+j] = linear.Block{Row: row, Col: col, A: lin.Block(j)}
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("Linearize: %w", err)
	}
	jac, err := linear.NewBlockJacobian(s.rows, s.layout.LocalDim(), blocks)
	if err != nil {
		return nil, nil, fmt.Errorf("Linearize: %w", err)
	}

	return jac, b, nil
}

// check accepts the prepared layout itself or one with the same variables in
// the same order.
func (s *Stacked) check(a *core.Assignments) error {
	l := a.Layout()
	if l == s.layout {
		return nil
	}
	if l.Fingerprint() != s.layout.Fingerprint() || l.Len() != s.layout.Len() {
		return ErrLayoutMismatch
	}
	mine, theirs := s.layout.Variables(), l.Variables()
	for i := range mine {
		if mine[i] != theirs[i] {
			return ErrLayoutMismatch
		}
	}

	return nil
}

// values slices the storage views of factor i of sg.
func (s *Stacked) values(storage []float64, sg *stackedGroup, i int) [][]float64 {
	f := sg.factors[i]
	vars := f.Variables()
	out := make([][]float64, len(vars))
	for j, v := range vars {
		off := sg.storage[i][j]
		out[j] = storage[off : off+v.Type().StorageDim()]
	}

	return out
}

// split cuts every group into spans of at most ceil(nFactors/workers)
// factors. With one worker each group is a single span.
func (s *Stacked) split() []span {
	chunk := s.nFactors
	if s.workers > 1 {
		chunk = (s.nFactors + s.workers - 1) / s.workers
	}
	var out []span
	for gi := range s.groups {
		sg := &s.groups[gi]
		for lo := 0; lo < len(sg.factors); lo += chunk {
			out = append(out, span{sg: sg, lo: lo, hi: min(lo+chunk, len(sg.factors))})
		}
	}

	return out
}

// forEach runs fn over every span, inline or on up to s.workers goroutines.
func (s *Stacked) forEach(fn func(sp span) error) error {
	if s.workers <= 1 || len(s.spans) < 2 {
		for _, sp := range s.spans {
			if err := fn(sp); err != nil {
				return err
			}
		}

		return nil
	}

	var eg errgroup.Group
	eg.SetLimit(s.workers)
	for _, sp := range s.spans {
		sp := sp
		eg.Go(func() error { return fn(sp) })
	}

	return eg.Wait()
}
