package bijection

import "math"

// Tanh is the elementwise hyperbolic-tangent bijection mapping the
// reals onto (-1, 1). Its analytic inverse is atanh, so unlike the
// block autoregressive network it supports both directions. The
// condition vector is ignored.
type Tanh struct {
	dim int
}

// NewTanh creates a Tanh bijection over vectors of the given dimension.
func NewTanh(dim int) *Tanh {
	return &Tanh{dim: dim}
}

// Dim returns the bijection's dimension.
func (t *Tanh) Dim() int { return t.dim }

// CondDim returns 0: tanh is unconditional.
func (t *Tanh) CondDim() int { return 0 }

// Transform applies tanh elementwise.
func (t *Tanh) Transform(x, cond []float64) ([]float64, error) {
	if err := checkArgs("Tanh.Transform", t, x, cond); err != nil {
		return nil, err
	}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = math.Tanh(v)
	}
	return y, nil
}

// TransformAndLogDet applies tanh elementwise; the logdet is
// Σ log(1 - tanh²(x_i)).
func (t *Tanh) TransformAndLogDet(x, cond []float64) ([]float64, float64, error) {
	if err := checkArgs("Tanh.TransformAndLogDet", t, x, cond); err != nil {
		return nil, 0, err
	}
	y := make([]float64, len(x))
	var logDet float64
	for i, v := range x {
		y[i] = math.Tanh(v)
		logDet += tanhLogGrad(v)
	}
	return y, logDet, nil
}

// Inverse applies atanh elementwise.
func (t *Tanh) Inverse(y, cond []float64) ([]float64, error) {
	if err := checkArgs("Tanh.Inverse", t, y, cond); err != nil {
		return nil, err
	}
	x := make([]float64, len(y))
	for i, v := range y {
		x[i] = math.Atanh(v)
	}
	return x, nil
}

// InverseAndLogDet applies atanh elementwise with the logdet of the
// inverse mapping, -Σ log(1 - tanh²(atanh(y_i))).
func (t *Tanh) InverseAndLogDet(y, cond []float64) ([]float64, float64, error) {
	if err := checkArgs("Tanh.InverseAndLogDet", t, y, cond); err != nil {
		return nil, 0, err
	}
	x := make([]float64, len(y))
	var logDet float64
	for i, v := range y {
		x[i] = math.Atanh(v)
		logDet -= tanhLogGrad(x[i])
	}
	return x, logDet, nil
}

// tanhLogGrad computes log(d tanh(x)/dx) = log(1 - tanh²(x)) without
// the catastrophic cancellation of the direct form for large |x|,
// using the identity 1 - tanh²(x) = 4 / (e^x + e^-x)² so that
// log(1 - tanh²(x)) = 2(log 2 - x - softplus(-2x)).
func tanhLogGrad(x float64) float64 {
	return 2 * (math.Ln2 - x - softplus(-2*x))
}

// softplus computes log(1 + e^x) without overflow for large x.
func softplus(x float64) float64 {
	if x > 0 {
		return x + math.Log1p(math.Exp(-x))
	}
	return math.Log1p(math.Exp(x))
}

// Activation is a block-aware elementwise activation usable inside a
// BlockAutoregressiveNetwork. Apply returns the transformed point
// together with the per-unit log-derivatives expanded into the
// block-diagonal Jacobian representation.
type Activation interface {
	Apply(x []float64, nBlocks int) ([]float64, *BlockJacobian, error)
}

// TanhActivation is the default block-aware activation: tanh with its
// per-unit log-derivative expanded via ExpandDiagonal.
type TanhActivation struct{}

// Apply computes tanh(x) and the block-diagonal log-Jacobian.
func (TanhActivation) Apply(x []float64, nBlocks int) ([]float64, *BlockJacobian, error) {
	out := make([]float64, len(x))
	logGrad := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Tanh(v)
		logGrad[i] = tanhLogGrad(v)
	}
	jac, err := ExpandDiagonal(logGrad, nBlocks)
	if err != nil {
		return nil, nil, err
	}
	return out, jac, nil
}
