// File: types.go
// Role: Graph and Stacked declarations, sentinel errors, preparation options.

package graph

import (
	"errors"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/katalvlaran/factorgraph/core"
)

// Sentinel errors for graph construction and evaluation.
var (
	// ErrNilFactor indicates that a nil core.Factor was supplied.
	ErrNilFactor = errors.New("graph: factor is nil")

	// ErrDuplicateFactor indicates that a factor is already present.
	ErrDuplicateFactor = errors.New("graph: duplicate factor")

	// ErrFactorNotFound indicates removal of a factor that is not present.
	ErrFactorNotFound = errors.New("graph: factor not found")

	// ErrGraphConsumed indicates use of a graph whose ownership was transferred.
	ErrGraphConsumed = errors.New("graph: graph has been consumed")

	// ErrUnknownVariable indicates a factor variable missing from the layout.
	ErrUnknownVariable = errors.New("graph: factor references variable missing from layout")

	// ErrLayoutMismatch indicates an assignment store over a different layout.
	ErrLayoutMismatch = errors.New("graph: assignments do not match prepared layout")
)

// Graph is an immutable factor graph. See the package documentation for the
// ownership rules.
type Graph struct {
	factors    []core.Factor            // arena, handle = index
	handles    map[core.Factor]uint32   // factor → handle
	keys       []core.GroupKey          // handle → group key
	groups     map[core.GroupKey]*roaring.Bitmap
	byVariable map[*core.Variable]*roaring.Bitmap
	variables  []*core.Variable // first-appearance order
	consumed   atomic.Bool
}

// Stacked is a Graph prepared against a layout for batched evaluation.
type Stacked struct {
	layout      *core.Layout
	groups      []stackedGroup
	rows        int // total residual dimension
	nBlocks     int // total Jacobian blocks (Σ arity)
	nFactors    int
	fingerprint uint64
	workers     int
	spans       []span // evaluation work units, in group order
}

// span is a contiguous run [lo, hi) of factors within one group.
type span struct {
	sg     *stackedGroup
	lo, hi int
}

// stackedGroup is one GroupKey's batch with precomputed offsets.
type stackedGroup struct {
	key     core.GroupKey
	factors []core.Factor
	// per factor, per argument
	storage [][]int
	local   [][]int
	// per factor
	rows   []int // first residual row
	blocks []int // first Jacobian block slot
}

// PrepareOptions configures Prepare.
type PrepareOptions struct {
	// Workers is the number of concurrent evaluation chunks; ≤ 1 evaluates inline.
	Workers int
}

// PrepareOption configures PrepareOptions.
type PrepareOption func(*PrepareOptions)

// DefaultPrepareOptions returns inline (single-worker) evaluation.
func DefaultPrepareOptions() PrepareOptions {
	return PrepareOptions{Workers: 1}
}

// WithWorkers sets the number of concurrent evaluation chunks.
// Panics if n < 0.
func WithWorkers(n int) PrepareOption {
	return func(o *PrepareOptions) {
		if n < 0 {
			panic("graph: WithWorkers: n must be >= 0")
		}
		o.Workers = n
	}
}
