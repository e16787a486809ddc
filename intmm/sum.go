// sum.go
//
// Sum override for IntEng. A last-axis sum of a 2D integer matrix is the
// product of the matrix with a ones column, so it runs through the same
// kernel (and the same acceleration flag) as MatMul. Every other reduction
// goes to StdEng.

package intmm

import "gorgonia.org/tensor"

// resolveAxis mirrors tensor.resolveAxis (which is unexported) so that
// negative axes are supported consistently.
//
// For example, for dims=2 and axis=-1 this returns 1 (the last dim).
func resolveAxis(axis, dims int) int {
	res := axis % dims
	if (res < 0 && dims > 0) || (res > 0 && dims < 0) {
		return res + dims
	}
	return res
}

// Sum accelerates the pattern:
//   - a is *tensor.Dense with dtype Int64 or Int
//   - a has rank 2 and a row-major layout
//   - along has exactly one axis, the last dimension (axis=-1 or axis=1)
//
// The result is a new rank-1 tensor of length rows with a's dtype; a is not
// modified. For all other inputs it defers to StdEng.Sum.
func (e *IntEng) Sum(a tensor.Tensor, along ...int) (tensor.Tensor, error) {
	if len(along) != 1 {
		return e.StdEng.Sum(a, along...)
	}

	ad, ok := a.(*tensor.Dense)
	if !ok || !isIntDtype(ad.Dtype()) || ad.Dims() != 2 {
		return e.StdEng.Sum(a, along...)
	}

	axis := resolveAxis(along[0], ad.Dims())
	if axis != ad.Dims()-1 || !isRowMajorContiguous2D(ad) {
		return e.StdEng.Sum(a, axis)
	}

	shape := ad.Shape()
	rows, cols := shape[0], shape[1]

	data, ok := int64Data(ad, rows*cols)
	if !ok {
		return e.StdEng.Sum(a, axis)
	}

	ones := make([]int64, cols)
	for i := range ones {
		ones[i] = 1
	}

	sums, err := e.mul.Multiply(rows, cols, 1, data, ones)
	if err != nil {
		return nil, err
	}

	if ad.Dtype() == tensor.Int {
		out := make([]int, rows)
		for i, v := range sums {
			out[i] = int(v)
		}
		return tensor.New(tensor.WithShape(rows), tensor.WithBacking(out)), nil
	}
	return tensor.New(tensor.WithShape(rows), tensor.WithBacking(sums)), nil
}
