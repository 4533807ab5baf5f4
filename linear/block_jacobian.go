// SPDX-License-Identifier: MIT

package linear

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Block is one dense sub-matrix of a BlockJacobian, anchored at (Row, Col).
type Block struct {
	Row, Col int
	A        *mat.Dense
}

// BlockJacobian is a sparse matrix stored as a list of dense blocks.
// Overlapping blocks add up. The blocks are shared, never copied or mutated.
type BlockJacobian struct {
	rows, cols int
	blocks     []Block
}

// NewBlockJacobian builds a rows × cols operator from blocks.
//
// Errors:
//   - ErrBlockOutOfRange if a block is nil or does not fit.
//
// Complexity: O(len(blocks)).
func NewBlockJacobian(rows, cols int, blocks []Block) (*BlockJacobian, error) {
	for i, b := range blocks {
		if b.A == nil {
			return nil, fmt.Errorf("NewBlockJacobian: block %d: %w", i, ErrBlockOutOfRange)
		}
		r, c := b.A.Dims()
		if b.Row < 0 || b.Col < 0 || b.Row+r > rows || b.Col+c > cols {
			return nil, fmt.Errorf("NewBlockJacobian: block %d: %w", i, ErrBlockOutOfRange)
		}
	}
	owned := make([]Block, len(blocks))
	copy(owned, blocks)

	return &BlockJacobian{rows: rows, cols: cols, blocks: owned}, nil
}

// Rows returns the residual dimension.
func (j *BlockJacobian) Rows() int { return j.rows }

// Cols returns the tangent dimension.
func (j *BlockJacobian) Cols() int { return j.cols }

// Blocks returns a copy of the block list.
func (j *BlockJacobian) Blocks() []Block {
	out := make([]Block, len(j.blocks))
	copy(out, j.blocks)

	return out
}

// Apply writes J·x into dst.
// Complexity: O(nnz).
func (j *BlockJacobian) Apply(dst, x []float64) {
	for i := range dst {
		dst[i] = 0
	}
	for _, b := range j.blocks {
		r, c := b.A.Dims()
		xs := x[b.Col : b.Col+c]
		for row := 0; row < r; row++ {
			dst[b.Row+row] += floats.Dot(b.A.RawRowView(row), xs)
		}
	}
}

// ApplyTranspose writes Jᵀ·y into dst.
// Complexity: O(nnz).
func (j *BlockJacobian) ApplyTranspose(dst, y []float64) {
	for i := range dst {
		dst[i] = 0
	}
	for _, b := range j.blocks {
		r, c := b.A.Dims()
		out := dst[b.Col : b.Col+c]
		for row := 0; row < r; row++ {
			if s := y[b.Row+row]; s != 0 {
				floats.AddScaled(out, s, b.A.RawRowView(row))
			}
		}
	}
}

// ColumnSquaredNorms returns diag(JᵀJ).
func (j *BlockJacobian) ColumnSquaredNorms() []float64 {
	out := make([]float64, j.cols)
	for _, b := range j.blocks {
		r, c := b.A.Dims()
		for row := 0; row < r; row++ {
			for col, v := range b.A.RawRowView(row)[:c] {
				out[b.Col+col] += v * v
			}
		}
	}

	return out
}

// Dense materializes J. Intended for diagnostics and tests.
func (j *BlockJacobian) Dense() *mat.Dense {
	if j.rows == 0 || j.cols == 0 {
		return &mat.Dense{}
	}
	out := mat.NewDense(j.rows, j.cols, nil)
	for _, b := range j.blocks {
		r, c := b.A.Dims()
		for row := 0; row < r; row++ {
			for col := 0; col < c; col++ {
				out.Set(b.Row+row, b.Col+col, out.At(b.Row+row, b.Col+col)+b.A.At(row, col))
			}
		}
	}

	return out
}

var _ Operator = (*BlockJacobian)(nil)
