package intmm

import (
	"fmt"
	"slices"
	"strings"
)

// Matrix is a dense row-major int64 matrix. The zero value is the empty 0x0
// matrix. Element (i, j) lives at Grid[i*Cols+j].
type Matrix struct {
	Rows int     `yaml:"rows"`
	Cols int     `yaml:"cols"`
	Grid []int64 `yaml:"grid,flow"`
}

// NewMatrix copies grid into a rows x cols Matrix.
func NewMatrix(rows, cols int, grid []int64) (Matrix, error) {
	m := Matrix{Rows: rows, Cols: cols, Grid: slices.Clone(grid)}
	if err := m.Validate(); err != nil {
		return Matrix{}, err
	}
	return m, nil
}

// Zeros returns a rows x cols Matrix of zeros.
func Zeros(rows, cols int) (Matrix, error) {
	size, ok := gridSize(rows, cols)
	if rows < 0 || cols < 0 || !ok {
		return Matrix{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	return Matrix{Rows: rows, Cols: cols, Grid: make([]int64, size)}, nil
}

// Identity returns the n x n identity matrix. It panics if n < 0.
func Identity(n int) Matrix {
	if n < 0 {
		panic("intmm: Identity requires n >= 0")
	}
	m := Matrix{Rows: n, Cols: n, Grid: make([]int64, n*n)}
	for i := 0; i < n; i++ {
		m.Grid[i*n+i] = 1
	}
	return m
}

// Validate checks that the dimensions are non-negative and match the grid.
func (m Matrix) Validate() error {
	if m.Rows < 0 || m.Cols < 0 {
		return fmt.Errorf("%w: negative shape %dx%d", ErrInvalidDimensions, m.Rows, m.Cols)
	}
	size, ok := gridSize(m.Rows, m.Cols)
	if !ok {
		return fmt.Errorf("%w: %dx%d overflows int", ErrInvalidDimensions, m.Rows, m.Cols)
	}
	if len(m.Grid) != size {
		return fmt.Errorf("%w: grid has %d elements, want %d (%dx%d)", ErrInvalidDimensions, len(m.Grid), size, m.Rows, m.Cols)
	}
	return nil
}

// At returns element (i, j). It panics when out of range.
func (m Matrix) At(i, j int) int64 {
	if i < 0 || i >= m.Rows || j < 0 || j >= m.Cols {
		panic(fmt.Sprintf("intmm: index (%d, %d) out of range for %dx%d", i, j, m.Rows, m.Cols))
	}
	return m.Grid[i*m.Cols+j]
}

// Equal reports whether m and o have the same shape and elements.
func (m Matrix) Equal(o Matrix) bool {
	return m.Rows == o.Rows && m.Cols == o.Cols && slices.Equal(m.Grid, o.Grid)
}

// Mul returns m*b using the default Multiplier.
func (m Matrix) Mul(b Matrix) (Matrix, error) {
	return defaultMultiplier.MultiplyMatrix(m, b)
}

func (m Matrix) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < m.Rows; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, m.Grid[i*m.Cols:(i+1)*m.Cols])
	}
	sb.WriteByte(']')
	return sb.String()
}
