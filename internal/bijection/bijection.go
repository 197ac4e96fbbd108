// Package bijection implements invertible parametric transformations
// for building normalizing-flow density models.
//
// Every transform satisfies the Bijection interface: it maps a point to
// another point of the same dimension and exposes the log-absolute
// determinant of its Jacobian, which enables exact density evaluation
// under change-of-variables. Transforms compose structurally (Chain,
// Invert, Permute, Flip) and the package includes the block neural
// autoregressive network (BNAF) together with the log-domain block
// Jacobian algebra it needs.
//
// Design inspired by flow libraries in the JAX ecosystem but adapted
// for Go: errors instead of exceptions, explicit constructors instead
// of PRNG-key threading.
package bijection

// Bijection is the contract every flow transform implements.
//
// The logdet returned by TransformAndLogDet and InverseAndLogDet is
// always log|det(∂out/∂in)| of that method's own mapping. With this
// convention composition is uniform: Chain adds child logdets and
// Invert swaps method pairs without any sign fix-up (each concrete
// bijection carries the negation inside its own InverseAndLogDet).
//
// Instances are immutable after construction: new parameter values
// produce a new instance, never in-place mutation. All methods are
// pure and safe for concurrent use.
type Bijection interface {
	// Dim returns the input (and output) dimensionality.
	Dim() int

	// CondDim returns the dimensionality of the conditioning vector,
	// or 0 for unconditional bijections.
	CondDim() int

	// Transform maps x to the transformed point y.
	//
	// cond must have length CondDim(); pass nil (or an empty slice)
	// when CondDim() == 0.
	Transform(x, cond []float64) ([]float64, error)

	// TransformAndLogDet maps x to y and additionally returns
	// log|det(∂y/∂x)|. The point value is identical to Transform's.
	TransformAndLogDet(x, cond []float64) ([]float64, float64, error)

	// Inverse maps y back to x such that Transform(Inverse(y)) == y up
	// to floating-point tolerance. Bijections without a tractable
	// inverse return ErrUnsupportedOperation.
	Inverse(y, cond []float64) ([]float64, error)

	// InverseAndLogDet maps y back to x and returns log|det(∂x/∂y)|.
	InverseAndLogDet(y, cond []float64) ([]float64, float64, error)
}

// checkArgs validates a point and condition against a bijection's
// declared shape. Dimension disagreements are detected eagerly and
// never silently broadcast.
func checkArgs(op string, b Bijection, x, cond []float64) error {
	if len(x) != b.Dim() {
		return &DimensionError{Op: op, Want: b.Dim(), Got: len(x)}
	}
	if len(cond) != b.CondDim() {
		return &DimensionError{Op: op + " condition", Want: b.CondDim(), Got: len(cond)}
	}
	return nil
}
