package intmm

import (
	"fmt"
	"unsafe"
)

// Multiplier computes integer matrix products, choosing between the naive
// and the blocked strategy according to its Selector.
type Multiplier struct {
	sel   *Selector
	tune  Tuning
	naive Strategy
	fast  Strategy // nil when the blocked strategy is not built in
}

// NewMultiplier returns a Multiplier bound to the default Selector unless
// WithSelector says otherwise.
func NewMultiplier(opts ...Option) *Multiplier {
	o := gatherOptions(opts)
	m := &Multiplier{
		sel:   o.selector,
		tune:  o.tuning,
		naive: naiveStrategy{},
	}
	if f, ok := registry[FastName]; ok {
		m.fast = f(o.tuning)
	}
	return m
}

var defaultMultiplier = NewMultiplier()

// Default returns the Multiplier behind the package level Multiply.
func Default() *Multiplier {
	return defaultMultiplier
}

// Selector returns the Selector m reads its flag from.
func (m *Multiplier) Selector() *Selector {
	return m.sel
}

// Tuning returns the tuning the blocked strategy was built with.
func (m *Multiplier) Tuning() Tuning {
	return m.tune
}

// Strategy returns the strategy the next product will use.
func (m *Multiplier) Strategy() Strategy {
	if m.fast != nil && m.sel.Enabled() {
		return m.fast
	}
	return m.naive
}

// Multiply returns the aRows x bCols product of the aRows x aCols matrix
// aGrid and the aCols x bCols matrix bGrid, both row-major. Arithmetic wraps
// around on int64 overflow. Inputs are not modified.
func (m *Multiplier) Multiply(aRows, aCols, bCols int, aGrid, bGrid []int64) ([]int64, error) {
	if err := validateOperands(aRows, aCols, bCols, len(aGrid), len(bGrid)); err != nil {
		return nil, err
	}
	dst := make([]int64, aRows*bCols)
	if err := m.Strategy().MulInto(dst, aGrid, bGrid, aRows, aCols, bCols); err != nil {
		return nil, err
	}
	return dst, nil
}

// MultiplyInto is Multiply writing into a caller-owned dst of length
// aRows*bCols. When dst shares memory with aGrid or bGrid the product is
// computed into a scratch grid first and then copied into dst.
func (m *Multiplier) MultiplyInto(dst []int64, aRows, aCols, bCols int, aGrid, bGrid []int64) error {
	if err := validateOperands(aRows, aCols, bCols, len(aGrid), len(bGrid)); err != nil {
		return err
	}
	if want := aRows * bCols; len(dst) != want {
		return fmt.Errorf("%w: dst has %d elements, want %d (%dx%d)", ErrInvalidDimensions, len(dst), want, aRows, bCols)
	}
	if overlaps(dst, aGrid) || overlaps(dst, bGrid) {
		out, err := m.Multiply(aRows, aCols, bCols, aGrid, bGrid)
		if err != nil {
			return err
		}
		copy(dst, out)
		return nil
	}
	return m.Strategy().MulInto(dst, aGrid, bGrid, aRows, aCols, bCols)
}

// overlaps reports whether x and y share any backing memory.
func overlaps(x, y []int64) bool {
	if len(x) == 0 || len(y) == 0 {
		return false
	}
	const size = unsafe.Sizeof(int64(0))
	x0 := uintptr(unsafe.Pointer(unsafe.SliceData(x)))
	y0 := uintptr(unsafe.Pointer(unsafe.SliceData(y)))
	return x0 < y0+uintptr(len(y))*size && y0 < x0+uintptr(len(x))*size
}

// MultiplyMatrix returns a*b.
func (m *Multiplier) MultiplyMatrix(a, b Matrix) (Matrix, error) {
	if a.Cols != b.Rows {
		return Matrix{}, fmt.Errorf("%w: %dx%d times %dx%d", ErrInvalidDimensions, a.Rows, a.Cols, b.Rows, b.Cols)
	}
	grid, err := m.Multiply(a.Rows, a.Cols, b.Cols, a.Grid, b.Grid)
	if err != nil {
		return Matrix{}, err
	}
	return Matrix{Rows: a.Rows, Cols: b.Cols, Grid: grid}, nil
}

// Multiply computes the product with the default Multiplier.
func Multiply(aRows, aCols, bCols int, aGrid, bGrid []int64) ([]int64, error) {
	return defaultMultiplier.Multiply(aRows, aCols, bCols, aGrid, bGrid)
}

func validateOperands(aRows, aCols, bCols, aLen, bLen int) error {
	if aRows < 0 || aCols < 0 || bCols < 0 {
		return fmt.Errorf("%w: negative dimension (aRows=%d, aCols=%d, bCols=%d)", ErrInvalidDimensions, aRows, aCols, bCols)
	}
	aSize, ok := gridSize(aRows, aCols)
	if !ok {
		return fmt.Errorf("%w: %dx%d overflows int", ErrInvalidDimensions, aRows, aCols)
	}
	if aLen != aSize {
		return fmt.Errorf("%w: aGrid has %d elements, want %d (%dx%d)", ErrInvalidDimensions, aLen, aSize, aRows, aCols)
	}
	bSize, ok := gridSize(aCols, bCols)
	if !ok {
		return fmt.Errorf("%w: %dx%d overflows int", ErrInvalidDimensions, aCols, bCols)
	}
	if bLen != bSize {
		return fmt.Errorf("%w: bGrid has %d elements, want %d (%dx%d)", ErrInvalidDimensions, bLen, bSize, aCols, bCols)
	}
	if _, ok := gridSize(aRows, bCols); !ok {
		return fmt.Errorf("%w: result %dx%d overflows int", ErrInvalidDimensions, aRows, bCols)
	}
	return nil
}

// gridSize returns rows*cols for non-negative operands, reporting false on
// overflow.
func gridSize(rows, cols int) (int, bool) {
	if rows == 0 || cols == 0 {
		return 0, true
	}
	size := rows * cols
	if size/cols != rows {
		return 0, false
	}
	return size, true
}
