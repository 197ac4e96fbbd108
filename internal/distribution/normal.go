package distribution

import (
	"github.com/born-ml/flow/internal/bijection"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// StandardNormal is the isotropic unit Gaussian N(0, I), the usual
// base distribution of a normalizing flow.
type StandardNormal struct {
	dim int
}

// NewStandardNormal creates a standard normal over vectors of the
// given dimension.
func NewStandardNormal(dim int) (*StandardNormal, error) {
	if dim <= 0 {
		return nil, &bijection.DimensionError{Op: "NewStandardNormal", Want: 1, Got: dim}
	}
	return &StandardNormal{dim: dim}, nil
}

// Dim returns the distribution's dimension.
func (n *StandardNormal) Dim() int { return n.dim }

// CondDim returns 0: the base distribution is unconditional.
func (n *StandardNormal) CondDim() int { return 0 }

// LogProb returns the log density of the unit Gaussian at x, the sum
// of per-dimension univariate log densities.
func (n *StandardNormal) LogProb(x, cond []float64) (float64, error) {
	if err := n.check("StandardNormal.LogProb", x, cond); err != nil {
		return 0, err
	}
	var logProb float64
	for _, v := range x {
		logProb += distuv.UnitNormal.LogProb(v)
	}
	return logProb, nil
}

// Sample draws one point from N(0, I).
func (n *StandardNormal) Sample(rng *rand.Rand, cond []float64) ([]float64, error) {
	if err := n.check("StandardNormal.Sample", nil, cond); err != nil {
		return nil, err
	}
	norm := distuv.UnitNormal
	if rng != nil {
		norm.Src = rng
	}
	x := make([]float64, n.dim)
	for i := range x {
		x[i] = norm.Rand()
	}
	return x, nil
}

func (n *StandardNormal) check(op string, x, cond []float64) error {
	if x != nil && len(x) != n.dim {
		return &bijection.DimensionError{Op: op, Want: n.dim, Got: len(x)}
	}
	if len(cond) != 0 {
		return &bijection.DimensionError{Op: op + " condition", Want: 0, Got: len(cond)}
	}
	return nil
}
