// matmul.go
//
// MatMul override for IntEng. Dense, 2D, row-major Int64 or Int tensors are
// multiplied by the package kernel. Anything else goes to StdEng.

package intmm

import (
	"fmt"

	"gorgonia.org/tensor"
)

// isRowMajorContiguous2D reports whether d is a 2D dense tensor with the
// standard row-major layout the kernel expects:
//
//	shape = [rows, cols]
//	strides = [cols, 1]
func isRowMajorContiguous2D(d *tensor.Dense) bool {
	if d.Dims() != 2 || d.RequiresIterator() {
		return false
	}
	shape := d.Shape()
	strides := d.Strides()
	if len(shape) != 2 || len(strides) != 2 {
		return false
	}
	rows, cols := shape[0], shape[1]
	return strides[1] == 1 && strides[0] == cols && rows > 0 && cols > 0
}

// isIntDtype reports whether dt is one of the integer dtypes the kernel
// handles.
func isIntDtype(dt tensor.Dtype) bool {
	return dt == tensor.Int64 || dt == tensor.Int
}

// int64Data returns the first n elements of d's backing as int64. Int
// backings are copied; Int64 backings are returned as-is.
func int64Data(d *tensor.Dense, n int) ([]int64, bool) {
	switch data := d.Data().(type) {
	case []int64:
		if len(data) < n {
			return nil, false
		}
		return data[:n], true
	case []int:
		if len(data) < n {
			return nil, false
		}
		out := make([]int64, n)
		for i, v := range data[:n] {
			out[i] = int64(v)
		}
		return out, true
	}
	return nil, false
}

// MatMul multiplies dense 2D row-major integer tensors with the package
// kernel, honoring the engine's acceleration flag. Shape mismatches are
// reported as errors wrapping ErrInvalidDimensions. For every other input
// (non-dense tensors, non-integer or mixed dtypes, other ranks or strides)
// it falls back to the embedded StdEng implementation.
func (e *IntEng) MatMul(a, b, prealloc tensor.Tensor) error {
	da, okA := a.(*tensor.Dense)
	db, okB := b.(*tensor.Dense)
	dc, okC := prealloc.(*tensor.Dense)
	if !okA || !okB || !okC {
		return e.StdEng.MatMul(a, b, prealloc)
	}

	dt := da.Dtype()
	if !isIntDtype(dt) || db.Dtype() != dt || dc.Dtype() != dt {
		return e.StdEng.MatMul(a, b, prealloc)
	}

	if !isRowMajorContiguous2D(da) || !isRowMajorContiguous2D(db) || !isRowMajorContiguous2D(dc) {
		return e.StdEng.MatMul(a, b, prealloc)
	}

	shapeA := da.Shape()
	shapeB := db.Shape()
	shapeC := dc.Shape()

	m, kA := shapeA[0], shapeA[1]
	kB, n := shapeB[0], shapeB[1]

	if kA != kB {
		return fmt.Errorf("intmm: MatMul shape mismatch: a=%v, b=%v (inner dims %d vs %d): %w", shapeA, shapeB, kA, kB, ErrInvalidDimensions)
	}
	if shapeC[0] != m || shapeC[1] != n {
		return fmt.Errorf("intmm: MatMul prealloc shape mismatch: expected [%d %d], got %v: %w", m, n, shapeC, ErrInvalidDimensions)
	}

	adata, okA := int64Data(da, m*kA)
	bdata, okB := int64Data(db, kB*n)
	if !okA || !okB {
		return fmt.Errorf("intmm: MatMul backing slice too small: expected at least %d, %d: %w", m*kA, kB*n, ErrInvalidDimensions)
	}

	switch cdata := dc.Data().(type) {
	case []int64:
		if len(cdata) < m*n {
			return fmt.Errorf("intmm: MatMul prealloc backing has %d elements, expected at least %d: %w", len(cdata), m*n, ErrInvalidDimensions)
		}
		return e.mul.MultiplyInto(cdata[:m*n], m, kA, n, adata, bdata)
	case []int:
		if len(cdata) < m*n {
			return fmt.Errorf("intmm: MatMul prealloc backing has %d elements, expected at least %d: %w", len(cdata), m*n, ErrInvalidDimensions)
		}
		out, err := e.mul.Multiply(m, kA, n, adata, bdata)
		if err != nil {
			return err
		}
		for i, v := range out {
			cdata[i] = int(v)
		}
		return nil
	}
	return e.StdEng.MatMul(a, b, prealloc)
}
