package bijection

import "fmt"

// Permute reorders the elements of a vector. The permutation array p
// gives the new order: output[i] = input[p[i]]. Pure reindexing
// preserves volume, so the log-determinant is identically zero. The
// condition vector is ignored.
type Permute struct {
	permutation []int
	inverse     []int
}

// NewPermute creates a permutation bijection. The index array must
// contain every index in [0, len(p)) exactly once, otherwise it
// returns ErrInvalidPermutation. The inverse permutation is derived
// once at construction.
func NewPermute(permutation []int) (*Permute, error) {
	dim := len(permutation)
	if dim == 0 {
		return nil, fmt.Errorf("%w: empty index array", ErrInvalidPermutation)
	}
	inverse := make([]int, dim)
	seen := make([]bool, dim)
	for i, p := range permutation {
		if p < 0 || p >= dim {
			return nil, fmt.Errorf("%w: index %d out of range [0, %d)", ErrInvalidPermutation, p, dim)
		}
		if seen[p] {
			return nil, fmt.Errorf("%w: index %d appears more than once", ErrInvalidPermutation, p)
		}
		seen[p] = true
		inverse[p] = i
	}
	return &Permute{
		permutation: append([]int(nil), permutation...),
		inverse:     inverse,
	}, nil
}

// Dim returns the permutation's dimension.
func (p *Permute) Dim() int { return len(p.permutation) }

// CondDim returns 0: permutations are unconditional.
func (p *Permute) CondDim() int { return 0 }

// Transform reorders x so that output[i] = x[p[i]].
func (p *Permute) Transform(x, cond []float64) ([]float64, error) {
	if err := checkArgs("Permute.Transform", p, x, cond); err != nil {
		return nil, err
	}
	return reindex(x, p.permutation), nil
}

// TransformAndLogDet reorders x; the logdet is exactly zero.
func (p *Permute) TransformAndLogDet(x, cond []float64) ([]float64, float64, error) {
	y, err := p.Transform(x, cond)
	return y, 0, err
}

// Inverse applies the inverse permutation.
func (p *Permute) Inverse(y, cond []float64) ([]float64, error) {
	if err := checkArgs("Permute.Inverse", p, y, cond); err != nil {
		return nil, err
	}
	return reindex(y, p.inverse), nil
}

// InverseAndLogDet applies the inverse permutation; the logdet is
// exactly zero.
func (p *Permute) InverseAndLogDet(y, cond []float64) ([]float64, float64, error) {
	x, err := p.Inverse(y, cond)
	return x, 0, err
}

func reindex(x []float64, idx []int) []float64 {
	out := make([]float64, len(x))
	for i, j := range idx {
		out[i] = x[j]
	}
	return out
}
