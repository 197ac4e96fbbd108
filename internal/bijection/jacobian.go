package bijection

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// BlockJacobian is a rank-3 array of shape (nBlocks, rows, cols)
// holding, for each of nBlocks independent diagonal blocks, a matrix of
// Jacobian log-magnitudes (signs assumed positive as constructed).
// Entries of -Inf represent a zero derivative (log of zero).
//
// It is the currency of the block autoregressive network: every layer
// returns one, and LogMatMulExp folds them into the network's overall
// log-determinant without ever exponentiating raw log-magnitudes into
// overflow.
type BlockJacobian struct {
	blocks     []*mat.Dense
	rows, cols int
}

// NewBlockJacobian creates a BlockJacobian from a flat slice laid out
// block-major: data[k*rows*cols : (k+1)*rows*cols] is block k in
// row-major order. The slice is copied.
func NewBlockJacobian(nBlocks, rows, cols int, data []float64) (*BlockJacobian, error) {
	if nBlocks <= 0 || rows <= 0 || cols <= 0 {
		return nil, &DimensionError{Op: "NewBlockJacobian", Want: 1, Got: min3(nBlocks, rows, cols)}
	}
	if len(data) != nBlocks*rows*cols {
		return nil, &DimensionError{Op: "NewBlockJacobian", Want: nBlocks * rows * cols, Got: len(data)}
	}
	j := emptyBlockJacobian(nBlocks, rows, cols)
	for k := 0; k < nBlocks; k++ {
		block := data[k*rows*cols : (k+1)*rows*cols]
		j.blocks[k] = mat.NewDense(rows, cols, append([]float64(nil), block...))
	}
	return j, nil
}

// ExpandDiagonal builds the block-diagonal representation of an
// elementwise map's Jacobian: given a flat vector of nBlocks*d per-unit
// log-derivatives, it places each value on the diagonal of its block
// and -Inf everywhere else.
func ExpandDiagonal(values []float64, nBlocks int) (*BlockJacobian, error) {
	if nBlocks <= 0 || len(values) == 0 || len(values)%nBlocks != 0 {
		return nil, &DimensionError{Op: "ExpandDiagonal", Want: nBlocks, Got: len(values)}
	}
	d := len(values) / nBlocks
	j := emptyBlockJacobian(nBlocks, d, d)
	for k := 0; k < nBlocks; k++ {
		block := j.blocks[k]
		for i := 0; i < d; i++ {
			block.Set(i, i, values[k*d+i])
		}
	}
	return j, nil
}

func emptyBlockJacobian(nBlocks, rows, cols int) *BlockJacobian {
	blocks := make([]*mat.Dense, nBlocks)
	for k := range blocks {
		data := make([]float64, rows*cols)
		for i := range data {
			data[i] = math.Inf(-1)
		}
		blocks[k] = mat.NewDense(rows, cols, data)
	}
	return &BlockJacobian{blocks: blocks, rows: rows, cols: cols}
}

// NBlocks returns the number of diagonal blocks.
func (j *BlockJacobian) NBlocks() int { return len(j.blocks) }

// BlockShape returns the (rows, cols) shape of each block.
func (j *BlockJacobian) BlockShape() (rows, cols int) { return j.rows, j.cols }

// At returns the log-magnitude at (block, row, col).
func (j *BlockJacobian) At(block, row, col int) float64 {
	return j.blocks[block].At(row, col)
}

// Sum returns the sum of every entry across all blocks. For the fully
// composed (nBlocks, 1, 1) result of an autoregressive network this is
// the scalar log-absolute-determinant.
func (j *BlockJacobian) Sum() float64 {
	var total float64
	for _, block := range j.blocks {
		total += mat.Sum(block)
	}
	return total
}

// LogMatMulExp computes, independently per block, the numerically
// stable equivalent of log(exp(A) @ exp(B)).
//
// The row-wise max of A and column-wise max of B are subtracted before
// exponentiation and added back after the log, so arbitrarily large
// log-magnitudes never overflow and very negative ones never collapse
// the whole product to zero. The shifts are plain constants here; there
// is no gradient to protect, which is the role the stop-gradient plays
// in autodiff frameworks using this algorithm.
//
// The operation is associative within floating-point tolerance, which
// is what allows a layer stack's Jacobians to be folded in either
// direction.
func LogMatMulExp(a, b *BlockJacobian) (*BlockJacobian, error) {
	if a.NBlocks() != b.NBlocks() {
		return nil, &DimensionError{Op: "LogMatMulExp blocks", Want: a.NBlocks(), Got: b.NBlocks()}
	}
	if a.cols != b.rows {
		return nil, &DimensionError{Op: "LogMatMulExp inner", Want: a.cols, Got: b.rows}
	}

	out := &BlockJacobian{blocks: make([]*mat.Dense, a.NBlocks()), rows: a.rows, cols: b.cols}
	rowShift := make([]float64, a.rows)
	colShift := make([]float64, b.cols)
	col := make([]float64, b.rows)

	for k := range a.blocks {
		ab, bb := a.blocks[k], b.blocks[k]
		for i := range rowShift {
			rowShift[i] = finiteShift(floats.Max(ab.RawRowView(i)))
		}
		for j := range colShift {
			mat.Col(col, j, bb)
			colShift[j] = finiteShift(floats.Max(col))
		}

		ea := mat.NewDense(a.rows, a.cols, nil)
		for i := 0; i < a.rows; i++ {
			for j := 0; j < a.cols; j++ {
				ea.Set(i, j, math.Exp(ab.At(i, j)-rowShift[i]))
			}
		}
		eb := mat.NewDense(b.rows, b.cols, nil)
		for i := 0; i < b.rows; i++ {
			for j := 0; j < b.cols; j++ {
				eb.Set(i, j, math.Exp(bb.At(i, j)-colShift[j]))
			}
		}

		var prod mat.Dense
		prod.Mul(ea, eb)

		res := mat.NewDense(a.rows, b.cols, nil)
		for i := 0; i < a.rows; i++ {
			for j := 0; j < b.cols; j++ {
				res.Set(i, j, math.Log(prod.At(i, j))+rowShift[i]+colShift[j])
			}
		}
		out.blocks[k] = res
	}
	return out, nil
}

// finiteShift keeps an all -Inf row/column from turning the shifted
// exponentials into NaN: shifting by zero leaves exp(-Inf) == 0 and
// the resulting entries stay -Inf, which is the correct log of zero.
func finiteShift(v float64) float64 {
	if math.IsInf(v, -1) {
		return 0
	}
	return v
}

func min3(a, b, c int) int {
	return min(a, min(b, c))
}
