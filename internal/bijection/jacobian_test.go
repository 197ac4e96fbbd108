package bijection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// naiveLogMatMulExp computes log(exp(A) @ exp(B)) directly, which is
// only valid when no entry is large enough to overflow.
func naiveLogMatMulExp(t *testing.T, a, b *BlockJacobian) *BlockJacobian {
	t.Helper()
	aRows, aCols := a.BlockShape()
	bRows, bCols := b.BlockShape()
	require.Equal(t, aCols, bRows)

	data := make([]float64, 0, a.NBlocks()*aRows*bCols)
	for k := 0; k < a.NBlocks(); k++ {
		ea := mat.NewDense(aRows, aCols, nil)
		for i := 0; i < aRows; i++ {
			for j := 0; j < aCols; j++ {
				ea.Set(i, j, math.Exp(a.At(k, i, j)))
			}
		}
		eb := mat.NewDense(bRows, bCols, nil)
		for i := 0; i < bRows; i++ {
			for j := 0; j < bCols; j++ {
				eb.Set(i, j, math.Exp(b.At(k, i, j)))
			}
		}
		var prod mat.Dense
		prod.Mul(ea, eb)
		for i := 0; i < aRows; i++ {
			for j := 0; j < bCols; j++ {
				data = append(data, math.Log(prod.At(i, j)))
			}
		}
	}
	out, err := NewBlockJacobian(a.NBlocks(), aRows, bCols, data)
	require.NoError(t, err)
	return out
}

func randomBlockJacobian(t *testing.T, rng *rand.Rand, nBlocks, rows, cols int, scale float64) *BlockJacobian {
	t.Helper()
	data := make([]float64, nBlocks*rows*cols)
	for i := range data {
		data[i] = (rng.Float64()*2 - 1) * scale
	}
	j, err := NewBlockJacobian(nBlocks, rows, cols, data)
	require.NoError(t, err)
	return j
}

func assertBlockJacobianInDelta(t *testing.T, want, got *BlockJacobian, delta float64) {
	t.Helper()
	require.Equal(t, want.NBlocks(), got.NBlocks())
	wr, wc := want.BlockShape()
	gr, gc := got.BlockShape()
	require.Equal(t, wr, gr)
	require.Equal(t, wc, gc)
	for k := 0; k < want.NBlocks(); k++ {
		for i := 0; i < wr; i++ {
			for j := 0; j < wc; j++ {
				assert.InDelta(t, want.At(k, i, j), got.At(k, i, j), delta,
					"entry (%d,%d,%d)", k, i, j)
			}
		}
	}
}

// TestExpandDiagonal checks per-unit log-derivatives land on block
// diagonals with -Inf elsewhere.
func TestExpandDiagonal(t *testing.T) {
	j, err := ExpandDiagonal([]float64{0.1, 0.2, 0.3, 0.4}, 2)
	require.NoError(t, err)

	require.Equal(t, 2, j.NBlocks())
	rows, cols := j.BlockShape()
	require.Equal(t, 2, rows)
	require.Equal(t, 2, cols)

	assert.Equal(t, 0.1, j.At(0, 0, 0))
	assert.Equal(t, 0.2, j.At(0, 1, 1))
	assert.Equal(t, 0.3, j.At(1, 0, 0))
	assert.Equal(t, 0.4, j.At(1, 1, 1))
	assert.True(t, math.IsInf(j.At(0, 0, 1), -1))
	assert.True(t, math.IsInf(j.At(0, 1, 0), -1))
	assert.True(t, math.IsInf(j.At(1, 0, 1), -1))
	assert.True(t, math.IsInf(j.At(1, 1, 0), -1))
}

// TestExpandDiagonalBadShape checks values not divisible into blocks
// are rejected.
func TestExpandDiagonalBadShape(t *testing.T) {
	_, err := ExpandDiagonal([]float64{1, 2, 3}, 2)
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = ExpandDiagonal([]float64{1, 2, 3}, 0)
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

// TestLogMatMulExpMatchesNaive checks the shifted algorithm agrees
// with the direct computation when values are small enough for the
// direct form to be exact.
func TestLogMatMulExpMatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := randomBlockJacobian(t, rng, 3, 4, 2, 1.0)
	b := randomBlockJacobian(t, rng, 3, 2, 5, 1.0)

	got, err := LogMatMulExp(a, b)
	require.NoError(t, err)
	assertBlockJacobianInDelta(t, naiveLogMatMulExp(t, a, b), got, 1e-10)
}

// TestLogMatMulExpAssociativity checks (A∘B)∘C == A∘(B∘C) within
// tolerance: log-domain matrix multiplication is associative.
func TestLogMatMulExpAssociativity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	a := randomBlockJacobian(t, rng, 2, 3, 3, 5.0)
	b := randomBlockJacobian(t, rng, 2, 3, 3, 5.0)
	c := randomBlockJacobian(t, rng, 2, 3, 3, 5.0)

	ab, err := LogMatMulExp(a, b)
	require.NoError(t, err)
	left, err := LogMatMulExp(ab, c)
	require.NoError(t, err)

	bc, err := LogMatMulExp(b, c)
	require.NoError(t, err)
	right, err := LogMatMulExp(a, bc)
	require.NoError(t, err)

	assertBlockJacobianInDelta(t, left, right, 1e-4)
}

// TestLogMatMulExpExtremeValues checks the shift trick where direct
// exponentiation would overflow float64 entirely.
func TestLogMatMulExpExtremeValues(t *testing.T) {
	a, err := NewBlockJacobian(1, 1, 1, []float64{1000})
	require.NoError(t, err)
	b, err := NewBlockJacobian(1, 1, 1, []float64{900})
	require.NoError(t, err)

	got, err := LogMatMulExp(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 1900, got.At(0, 0, 0), 1e-9)

	// Very negative values must not underflow to a spurious -Inf.
	a, err = NewBlockJacobian(1, 1, 1, []float64{-1000})
	require.NoError(t, err)
	b, err = NewBlockJacobian(1, 1, 1, []float64{-900})
	require.NoError(t, err)

	got, err = LogMatMulExp(a, b)
	require.NoError(t, err)
	assert.InDelta(t, -1900, got.At(0, 0, 0), 1e-9)
}

// TestLogMatMulExpNegInf checks -Inf entries (log of a zero
// derivative) compose to -Inf rather than NaN.
func TestLogMatMulExpNegInf(t *testing.T) {
	negInf := math.Inf(-1)
	a, err := NewBlockJacobian(1, 2, 2, []float64{negInf, negInf, 0.5, 0.25})
	require.NoError(t, err)
	b, err := NewBlockJacobian(1, 2, 2, []float64{0.1, negInf, 0.2, negInf})
	require.NoError(t, err)

	got, err := LogMatMulExp(a, b)
	require.NoError(t, err)

	// Row of zeros times anything stays zero.
	assert.True(t, math.IsInf(got.At(0, 0, 0), -1))
	assert.True(t, math.IsInf(got.At(0, 0, 1), -1))
	// Column of zeros in B zeroes the corresponding output column.
	assert.True(t, math.IsInf(got.At(0, 1, 1), -1))
	// The finite path: log(exp(0.5+0.1) + exp(0.25+0.2)).
	want := math.Log(math.Exp(0.6) + math.Exp(0.45))
	assert.InDelta(t, want, got.At(0, 1, 0), 1e-12)
	// No NaN anywhere.
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.False(t, math.IsNaN(got.At(0, i, j)))
		}
	}
}

// TestLogMatMulExpShapeMismatch checks incompatible operands are
// rejected.
func TestLogMatMulExpShapeMismatch(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := randomBlockJacobian(t, rng, 2, 2, 3, 1.0)
	b := randomBlockJacobian(t, rng, 2, 2, 3, 1.0)
	_, err := LogMatMulExp(a, b)
	require.ErrorIs(t, err, ErrDimensionMismatch)

	c := randomBlockJacobian(t, rng, 3, 3, 2, 1.0)
	_, err = LogMatMulExp(a, c)
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

// TestBlockJacobianSum checks Sum totals every entry across blocks.
func TestBlockJacobianSum(t *testing.T) {
	j, err := NewBlockJacobian(2, 1, 1, []float64{1.5, -0.5})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, j.Sum(), 1e-15)
}
