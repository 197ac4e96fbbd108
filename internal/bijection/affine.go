package bijection

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Affine is the elementwise map y = loc + scale*x with strictly
// positive scale. Its Jacobian is diagonal, so the log-determinant is
// the sum of log-scales, independent of the point. The condition
// vector is ignored.
type Affine struct {
	loc      []float64
	scale    []float64
	logScale []float64
	logDet   float64
}

// NewAffine creates an elementwise affine bijection. loc and scale
// must have equal length and every scale entry must be positive.
func NewAffine(loc, scale []float64) (*Affine, error) {
	if len(loc) != len(scale) {
		return nil, &DimensionError{Op: "NewAffine", Want: len(loc), Got: len(scale)}
	}
	if len(loc) == 0 {
		return nil, &DimensionError{Op: "NewAffine", Want: 1, Got: 0}
	}
	logScale := make([]float64, len(scale))
	for i, s := range scale {
		if s <= 0 || math.IsInf(s, 1) || math.IsNaN(s) {
			return nil, fmt.Errorf("bijection: NewAffine: scale[%d] = %v, must be finite and positive", i, s)
		}
		logScale[i] = math.Log(s)
	}
	return &Affine{
		loc:      append([]float64(nil), loc...),
		scale:    append([]float64(nil), scale...),
		logScale: logScale,
		logDet:   floats.Sum(logScale),
	}, nil
}

// Dim returns the affine map's dimension.
func (a *Affine) Dim() int { return len(a.loc) }

// CondDim returns 0: the affine map is unconditional.
func (a *Affine) CondDim() int { return 0 }

// Transform computes loc + scale*x elementwise.
func (a *Affine) Transform(x, cond []float64) ([]float64, error) {
	if err := checkArgs("Affine.Transform", a, x, cond); err != nil {
		return nil, err
	}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = a.loc[i] + a.scale[i]*v
	}
	return y, nil
}

// TransformAndLogDet computes loc + scale*x and Σ log(scale).
func (a *Affine) TransformAndLogDet(x, cond []float64) ([]float64, float64, error) {
	y, err := a.Transform(x, cond)
	return y, a.logDet, err
}

// Inverse computes (y - loc) / scale elementwise.
func (a *Affine) Inverse(y, cond []float64) ([]float64, error) {
	if err := checkArgs("Affine.Inverse", a, y, cond); err != nil {
		return nil, err
	}
	x := make([]float64, len(y))
	for i, v := range y {
		x[i] = (v - a.loc[i]) / a.scale[i]
	}
	return x, nil
}

// InverseAndLogDet computes (y - loc) / scale and -Σ log(scale), the
// log-determinant of the inverse mapping.
func (a *Affine) InverseAndLogDet(y, cond []float64) ([]float64, float64, error) {
	x, err := a.Inverse(y, cond)
	return x, -a.logDet, err
}
