package bijection

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// blockAutoregressiveLinear is a masked linear layer mapping
// nBlocks*inBlock inputs (plus condDim conditioning inputs) to
// nBlocks*outBlock outputs with block lower-triangular structure:
// output block i depends on input blocks <= i plus the full condition
// vector, so the layer's Jacobian is block triangular.
//
// Diagonal-block weights are stored as logs and exponentiated on
// application, keeping the diagonal strictly positive; the layer's
// block Jacobian is therefore read off directly as the stored logs.
// Blocks above the diagonal are masked out and never read.
type blockAutoregressiveLinear struct {
	nBlocks  int
	inBlock  int
	outBlock int
	condDim  int

	// weight is (nBlocks*outBlock) x (nBlocks*inBlock); entries inside
	// diagonal blocks are log-weights, entries in strictly-lower blocks
	// are unconstrained weights, entries above the diagonal are unused.
	weight     *mat.Dense
	condWeight *mat.Dense // (nBlocks*outBlock) x condDim, nil when condDim == 0
	bias       []float64
}

func newBlockAutoregressiveLinear(rng *rand.Rand, nBlocks, inBlock, outBlock, condDim int) *blockAutoregressiveLinear {
	rows := nBlocks * outBlock
	cols := nBlocks * inBlock

	// Xavier/Glorot bound over the layer's full fan.
	bound := math.Sqrt(6.0 / float64(cols+condDim+rows))

	weight := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			weight.Set(i, j, uniform(rng, bound))
		}
	}

	var condWeight *mat.Dense
	if condDim > 0 {
		condWeight = mat.NewDense(rows, condDim, nil)
		for i := 0; i < rows; i++ {
			for k := 0; k < condDim; k++ {
				condWeight.Set(i, k, uniform(rng, bound))
			}
		}
	}

	return &blockAutoregressiveLinear{
		nBlocks:    nBlocks,
		inBlock:    inBlock,
		outBlock:   outBlock,
		condDim:    condDim,
		weight:     weight,
		condWeight: condWeight,
		bias:       make([]float64, rows),
	}
}

func (l *blockAutoregressiveLinear) inDim() int  { return l.nBlocks * l.inBlock }
func (l *blockAutoregressiveLinear) outDim() int { return l.nBlocks * l.outBlock }

// apply computes the masked affine map and its block Jacobian. cond is
// used only when the layer was constructed with condDim > 0.
func (l *blockAutoregressiveLinear) apply(x, cond []float64) ([]float64, *BlockJacobian, error) {
	if len(x) != l.inDim() {
		return nil, nil, &DimensionError{Op: "blockAutoregressiveLinear", Want: l.inDim(), Got: len(x)}
	}
	if len(cond) != l.condDim {
		return nil, nil, &DimensionError{Op: "blockAutoregressiveLinear condition", Want: l.condDim, Got: len(cond)}
	}

	out := make([]float64, l.outDim())
	jac := make([]float64, l.nBlocks*l.outBlock*l.inBlock)

	for bi := 0; bi < l.nBlocks; bi++ {
		for r := 0; r < l.outBlock; r++ {
			row := bi*l.outBlock + r
			acc := l.bias[row]

			// Strictly-lower blocks: unconstrained weights.
			for col := 0; col < bi*l.inBlock; col++ {
				acc += l.weight.At(row, col) * x[col]
			}

			// Diagonal block: exp of stored log-weight, so the
			// derivative's log-magnitude is the stored value itself.
			for c := 0; c < l.inBlock; c++ {
				col := bi*l.inBlock + c
				logW := l.weight.At(row, col)
				acc += math.Exp(logW) * x[col]
				jac[(bi*l.outBlock+r)*l.inBlock+c] = logW
			}

			for k := 0; k < l.condDim; k++ {
				acc += l.condWeight.At(row, k) * cond[k]
			}
			out[row] = acc
		}
	}

	blockJac, err := NewBlockJacobian(l.nBlocks, l.outBlock, l.inBlock, jac)
	if err != nil {
		return nil, nil, err
	}
	return out, blockJac, nil
}

func uniform(rng *rand.Rand, bound float64) float64 {
	if rng != nil {
		return (rng.Float64()*2 - 1) * bound
	}
	return (rand.Float64()*2 - 1) * bound
}
