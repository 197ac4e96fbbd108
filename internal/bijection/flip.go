package bijection

// Flip reverses the element order of a vector. It is its own inverse,
// always valid for any dimension, and volume-preserving (zero logdet).
// Flow constructors intertwine it between layers so that every
// dimension eventually conditions on every other.
type Flip struct {
	dim int
}

// NewFlip creates a Flip over vectors of the given dimension.
func NewFlip(dim int) *Flip {
	return &Flip{dim: dim}
}

// Dim returns the flip's dimension.
func (f *Flip) Dim() int { return f.dim }

// CondDim returns 0: flips are unconditional.
func (f *Flip) CondDim() int { return 0 }

// Transform reverses x.
func (f *Flip) Transform(x, cond []float64) ([]float64, error) {
	if err := checkArgs("Flip.Transform", f, x, cond); err != nil {
		return nil, err
	}
	return reverse(x), nil
}

// TransformAndLogDet reverses x; the logdet is exactly zero.
func (f *Flip) TransformAndLogDet(x, cond []float64) ([]float64, float64, error) {
	y, err := f.Transform(x, cond)
	return y, 0, err
}

// Inverse reverses y (Flip is an involution).
func (f *Flip) Inverse(y, cond []float64) ([]float64, error) {
	if err := checkArgs("Flip.Inverse", f, y, cond); err != nil {
		return nil, err
	}
	return reverse(y), nil
}

// InverseAndLogDet reverses y; the logdet is exactly zero.
func (f *Flip) InverseAndLogDet(y, cond []float64) ([]float64, float64, error) {
	x, err := f.Inverse(y, cond)
	return x, 0, err
}

func reverse(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[len(x)-1-i] = v
	}
	return out
}
