package bijection

// Invert wraps a bijection with its transform and inverse roles
// swapped. It is used to point a flow in the cheap direction: wrapping
// a network whose forward pass is tractable but whose inverse is not
// yields a bijection whose density-evaluation direction is the cheap
// one.
//
// Because every method's logdet follows the ∂out/∂in convention of its
// own mapping, Invert delegates method pairs verbatim: the reciprocal
// determinant of the inverted map (negated log-magnitude) is already
// what the wrapped bijection's InverseAndLogDet reports.
type Invert struct {
	inner Bijection
}

// NewInvert wraps b with transform and inverse roles swapped.
func NewInvert(b Bijection) *Invert {
	return &Invert{inner: b}
}

// Inner returns the wrapped bijection.
func (v *Invert) Inner() Bijection { return v.inner }

// Dim returns the wrapped bijection's dimension.
func (v *Invert) Dim() int { return v.inner.Dim() }

// CondDim returns the wrapped bijection's conditioning dimension.
func (v *Invert) CondDim() int { return v.inner.CondDim() }

// Transform applies the wrapped bijection's inverse.
func (v *Invert) Transform(x, cond []float64) ([]float64, error) {
	return v.inner.Inverse(x, cond)
}

// TransformAndLogDet applies the wrapped bijection's inverse together
// with the logdet of the inverse mapping.
func (v *Invert) TransformAndLogDet(x, cond []float64) ([]float64, float64, error) {
	return v.inner.InverseAndLogDet(x, cond)
}

// Inverse applies the wrapped bijection's forward transform.
func (v *Invert) Inverse(y, cond []float64) ([]float64, error) {
	return v.inner.Transform(y, cond)
}

// InverseAndLogDet applies the wrapped bijection's forward transform
// together with its logdet.
func (v *Invert) InverseAndLogDet(y, cond []float64) ([]float64, float64, error) {
	return v.inner.TransformAndLogDet(y, cond)
}
