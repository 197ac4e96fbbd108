package bijection

import "fmt"

// Chain composes an ordered sequence of bijections into one bijection.
//
// Transform runs children in sequence order, Inverse runs them in
// reverse order, and log-determinants accumulate by scalar addition
// (stages are sequential and independent, not block-parallel).
//
// Example:
//
//	perm, _ := bijection.NewPermute([]int{2, 0, 1})
//	aff, _ := bijection.NewAffine([]float64{0, 0, 0}, []float64{2, 2, 2})
//	chain, _ := bijection.NewChain(aff, perm)
type Chain struct {
	bijections []Bijection
	dim        int
	condDim    int
}

// NewChain creates a Chain from the given bijections, in application
// order. Every child must share the chain's dimension, and every
// conditional child must share the chain's conditioning dimension
// (unconditional children are always allowed; they simply never see
// the condition vector).
func NewChain(bijections ...Bijection) (*Chain, error) {
	if len(bijections) == 0 {
		return nil, fmt.Errorf("bijection: NewChain: at least one bijection required")
	}
	dim := bijections[0].Dim()
	condDim := 0
	for _, b := range bijections {
		if b.Dim() != dim {
			return nil, &DimensionError{Op: "NewChain", Want: dim, Got: b.Dim()}
		}
		if cd := b.CondDim(); cd != 0 {
			if condDim != 0 && cd != condDim {
				return nil, &DimensionError{Op: "NewChain condition", Want: condDim, Got: cd}
			}
			condDim = cd
		}
	}
	return &Chain{bijections: append([]Bijection(nil), bijections...), dim: dim, condDim: condDim}, nil
}

// Dim returns the dimension shared by all children.
func (c *Chain) Dim() int { return c.dim }

// CondDim returns the conditioning dimension shared by the conditional
// children, or 0 if the whole chain is unconditional.
func (c *Chain) CondDim() int { return c.condDim }

// Bijections returns the children in application order.
func (c *Chain) Bijections() []Bijection {
	return append([]Bijection(nil), c.bijections...)
}

// Transform applies the children in sequence order.
func (c *Chain) Transform(x, cond []float64) ([]float64, error) {
	if err := checkArgs("Chain.Transform", c, x, cond); err != nil {
		return nil, err
	}
	z := x
	for _, b := range c.bijections {
		var err error
		if z, err = b.Transform(z, childCond(b, cond)); err != nil {
			return nil, err
		}
	}
	return z, nil
}

// TransformAndLogDet applies the children in sequence order and sums
// their log-determinants.
func (c *Chain) TransformAndLogDet(x, cond []float64) ([]float64, float64, error) {
	if err := checkArgs("Chain.TransformAndLogDet", c, x, cond); err != nil {
		return nil, 0, err
	}
	z := x
	var logDet float64
	for _, b := range c.bijections {
		zi, ld, err := b.TransformAndLogDet(z, childCond(b, cond))
		if err != nil {
			return nil, 0, err
		}
		z = zi
		logDet += ld
	}
	return z, logDet, nil
}

// Inverse applies the children's inverses in reverse order.
func (c *Chain) Inverse(y, cond []float64) ([]float64, error) {
	if err := checkArgs("Chain.Inverse", c, y, cond); err != nil {
		return nil, err
	}
	z := y
	for i := len(c.bijections) - 1; i >= 0; i-- {
		b := c.bijections[i]
		var err error
		if z, err = b.Inverse(z, childCond(b, cond)); err != nil {
			return nil, err
		}
	}
	return z, nil
}

// InverseAndLogDet applies the children's inverses in reverse order and
// sums their log-determinants.
func (c *Chain) InverseAndLogDet(y, cond []float64) ([]float64, float64, error) {
	if err := checkArgs("Chain.InverseAndLogDet", c, y, cond); err != nil {
		return nil, 0, err
	}
	z := y
	var logDet float64
	for i := len(c.bijections) - 1; i >= 0; i-- {
		b := c.bijections[i]
		zi, ld, err := b.InverseAndLogDet(z, childCond(b, cond))
		if err != nil {
			return nil, 0, err
		}
		z = zi
		logDet += ld
	}
	return z, logDet, nil
}

// childCond routes the chain's condition vector to conditional children
// only; unconditional children receive the empty condition.
func childCond(b Bijection, cond []float64) []float64 {
	if b.CondDim() == 0 {
		return nil
	}
	return cond
}
