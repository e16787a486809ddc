package intmm

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipliers returns one Multiplier per acceleration state available in
// this build, each bound to its own Selector.
func multipliers(t *testing.T, opts ...Option) map[string]*Multiplier {
	t.Helper()
	out := map[string]*Multiplier{
		"disabled": NewMultiplier(append(opts, WithSelector(NewSelector(false)))...),
	}
	if FastAvailable() {
		out["enabled"] = NewMultiplier(append(opts, WithSelector(NewSelector(true)))...)
	}
	return out
}

func TestMultiplyConcrete(t *testing.T) {
	for name, m := range multipliers(t) {
		t.Run(name, func(t *testing.T) {
			got, err := m.Multiply(2, 2, 2, []int64{1, 2, 3, 4}, []int64{5, 6, 7, 8})
			require.NoError(t, err)
			assert.Equal(t, []int64{19, 22, 43, 50}, got)
		})
	}
}

func TestMultiplyPackageLevel(t *testing.T) {
	got, err := Multiply(2, 3, 1, []int64{1, 2, 3, 4, 5, 6}, []int64{1, 0, -1})
	require.NoError(t, err)
	assert.Equal(t, []int64{-2, -2}, got)
}

func TestMultiplyStrategyFollowsSelector(t *testing.T) {
	sel := NewSelector(false)
	m := NewMultiplier(WithSelector(sel))
	assert.Equal(t, NaiveName, m.Strategy().Name())
	assert.Same(t, sel, m.Selector())

	if !FastAvailable() {
		require.ErrorIs(t, sel.Enable(true), ErrAccelerationUnsupported)
		assert.Equal(t, NaiveName, m.Strategy().Name())
		return
	}
	require.NoError(t, sel.Enable(true))
	assert.Equal(t, FastName, m.Strategy().Name())
	assert.True(t, m.Strategy().Accelerated())
}

func TestMultiplyEquivalenceAcrossStrategies(t *testing.T) {
	if !FastAvailable() {
		t.Skip("blocked strategy not built")
	}
	r := rand.New(rand.NewSource(7))
	shapes := [][3]int{
		{1, 1, 1}, {1, 7, 1}, {3, 1, 5}, {5, 3, 4}, {8, 8, 8},
		{17, 9, 13}, {33, 65, 31}, {64, 64, 64}, {70, 3, 129},
	}
	// Small block sizes and a zero threshold force tile edges and the
	// parallel path on modest shapes.
	tunings := [][]Option{
		nil,
		{WithBlockSize(4), WithWorkers(4), WithParallelThreshold(0)},
		{WithBlockSize(7), WithWorkers(3), WithParallelThreshold(0)},
		{WithBlockSize(1), WithWorkers(1)},
	}
	for ti, opts := range tunings {
		fast := NewMultiplier(append(opts, WithSelector(NewSelector(true)))...)
		naive := NewMultiplier(append(opts, WithSelector(NewSelector(false)))...)
		for _, s := range shapes {
			m, k, n := s[0], s[1], s[2]
			t.Run(fmt.Sprintf("tuning%d/%dx%dx%d", ti, m, k, n), func(t *testing.T) {
				for _, gen := range []func(int) []int64{
					func(sz int) []int64 { return randomGrid(r, sz, 1000) },
					func(sz int) []int64 { return extremeGrid(r, sz) },
				} {
					a, b := gen(m*k), gen(k*n)
					got, err := fast.Multiply(m, k, n, a, b)
					require.NoError(t, err)
					want, err := naive.Multiply(m, k, n, a, b)
					require.NoError(t, err)
					require.Equal(t, want, got)
					require.Equal(t, referenceProduct(a, b, m, k, n), got)
				}
			})
		}
	}
}

func TestMultiplyAssociativity(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for name, mul := range multipliers(t) {
		t.Run(name, func(t *testing.T) {
			for trial := 0; trial < 20; trial++ {
				m, k, l, n := 1+r.Intn(9), 1+r.Intn(9), 1+r.Intn(9), 1+r.Intn(9)
				a := randomGrid(r, m*k, 50)
				b := randomGrid(r, k*l, 50)
				c := randomGrid(r, l*n, 50)

				ab, err := mul.Multiply(m, k, l, a, b)
				require.NoError(t, err)
				left, err := mul.Multiply(m, l, n, ab, c)
				require.NoError(t, err)

				bc, err := mul.Multiply(k, l, n, b, c)
				require.NoError(t, err)
				right, err := mul.Multiply(m, k, n, a, bc)
				require.NoError(t, err)

				require.Equal(t, left, right, "trial %d (%d,%d,%d,%d)", trial, m, k, l, n)
			}
		})
	}
}

// Wraparound arithmetic keeps associativity even when every product
// overflows.
func TestMultiplyAssociativityUnderWraparound(t *testing.T) {
	r := rand.New(rand.NewSource(12))
	for name, mul := range multipliers(t) {
		t.Run(name, func(t *testing.T) {
			a, b, c := extremeGrid(r, 5*6), extremeGrid(r, 6*7), extremeGrid(r, 7*3)
			ab, err := mul.Multiply(5, 6, 7, a, b)
			require.NoError(t, err)
			left, err := mul.Multiply(5, 7, 3, ab, c)
			require.NoError(t, err)
			bc, err := mul.Multiply(6, 7, 3, b, c)
			require.NoError(t, err)
			right, err := mul.Multiply(5, 6, 3, a, bc)
			require.NoError(t, err)
			assert.Equal(t, left, right)
		})
	}
}

func TestMultiplyIdentity(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for name, mul := range multipliers(t) {
		t.Run(name, func(t *testing.T) {
			for _, n := range []int{1, 2, 5, 16, 67} {
				a := randomGrid(r, n*n, math.MaxInt32)
				id := Identity(n).Grid

				right, err := mul.Multiply(n, n, n, a, id)
				require.NoError(t, err)
				assert.Equal(t, a, right, "A*I, n=%d", n)

				left, err := mul.Multiply(n, n, n, id, a)
				require.NoError(t, err)
				assert.Equal(t, a, left, "I*A, n=%d", n)
			}
		})
	}
}

func TestMultiplyZeroDimensions(t *testing.T) {
	for name, mul := range multipliers(t) {
		t.Run(name, func(t *testing.T) {
			got, err := mul.Multiply(0, 3, 4, nil, make([]int64, 12))
			require.NoError(t, err)
			assert.Empty(t, got)

			got, err = mul.Multiply(3, 2, 0, make([]int64, 6), nil)
			require.NoError(t, err)
			assert.Empty(t, got)

			got, err = mul.Multiply(3, 0, 4, nil, []int64{})
			require.NoError(t, err)
			assert.Equal(t, make([]int64, 12), got)

			got, err = mul.Multiply(0, 0, 0, nil, nil)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestMultiplyInvalidDimensions(t *testing.T) {
	cases := []struct {
		name              string
		aRows, aCols, bCl int
		aLen, bLen        int
	}{
		{"ShortA", 2, 3, 2, 5, 6},
		{"LongA", 2, 3, 2, 7, 6},
		{"ShortB", 2, 3, 2, 6, 5},
		{"LongB", 2, 3, 2, 6, 7},
		{"NegativeRows", -1, 3, 2, 0, 6},
		{"NegativeInner", 2, -3, 2, 0, 0},
		{"NegativeCols", 2, 3, -2, 6, 0},
		{"ZeroInnerNonEmptyA", 2, 0, 2, 1, 0},
		{"OverflowingShape", math.MaxInt, 2, 1, 0, 2},
	}
	for name, mul := range multipliers(t) {
		for _, tc := range cases {
			t.Run(name+"/"+tc.name, func(t *testing.T) {
				got, err := mul.Multiply(tc.aRows, tc.aCols, tc.bCl, make([]int64, tc.aLen), make([]int64, tc.bLen))
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidDimensions), "got %v", err)
				assert.Nil(t, got)
			})
		}
	}
}

func TestMultiplyIntoLeavesDstOnError(t *testing.T) {
	for name, mul := range multipliers(t) {
		t.Run(name, func(t *testing.T) {
			dst := []int64{-9, -9, -9, -9}
			err := mul.MultiplyInto(dst, 2, 2, 2, []int64{1, 2, 3}, []int64{5, 6, 7, 8})
			require.ErrorIs(t, err, ErrInvalidDimensions)
			assert.Equal(t, []int64{-9, -9, -9, -9}, dst)

			err = mul.MultiplyInto(dst[:3], 2, 2, 2, []int64{1, 2, 3, 4}, []int64{5, 6, 7, 8})
			require.ErrorIs(t, err, ErrInvalidDimensions)
			assert.Equal(t, []int64{-9, -9, -9, -9}, dst)

			require.NoError(t, mul.MultiplyInto(dst, 2, 2, 2, []int64{1, 2, 3, 4}, []int64{5, 6, 7, 8}))
			assert.Equal(t, []int64{19, 22, 43, 50}, dst)
		})
	}
}

func TestMultiplyIntoAliasedDst(t *testing.T) {
	r := rand.New(rand.NewSource(8))
	const n = 70
	for name, mul := range multipliers(t, WithBlockSize(16), WithParallelThreshold(0)) {
		t.Run(name, func(t *testing.T) {
			a := []int64{1, 2, 3, 4}
			require.NoError(t, mul.MultiplyInto(a, 2, 2, 2, a, []int64{5, 6, 7, 8}))
			assert.Equal(t, []int64{19, 22, 43, 50}, a)

			sq := randomGrid(r, n*n, 50)
			want := referenceProduct(sq, sq, n, n, n)
			require.NoError(t, mul.MultiplyInto(sq, n, n, n, sq, sq))
			assert.Equal(t, want, sq)

			// dst overlapping only the tail of b.
			buf := []int64{1, 2, 3, 4, 5, 6}
			b := buf[:4]
			want = referenceProduct([]int64{1, 0, 0, 1}, b, 2, 2, 2)
			require.NoError(t, mul.MultiplyInto(buf[2:], 2, 2, 2, []int64{1, 0, 0, 1}, b))
			assert.Equal(t, want, buf[2:])
		})
	}
}

func TestOverlaps(t *testing.T) {
	buf := make([]int64, 8)
	assert.True(t, overlaps(buf, buf))
	assert.True(t, overlaps(buf[:4], buf[3:]))
	assert.False(t, overlaps(buf[:4], buf[4:]))
	assert.False(t, overlaps(buf[:0], buf))
	assert.False(t, overlaps(buf, make([]int64, 8)))
}

func TestMultiplyDoesNotMutateOperands(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	a, b := randomGrid(r, 40*30, 100), randomGrid(r, 30*20, 100)
	aCopy, bCopy := append([]int64(nil), a...), append([]int64(nil), b...)
	for name, mul := range multipliers(t, WithBlockSize(8), WithParallelThreshold(0)) {
		t.Run(name, func(t *testing.T) {
			_, err := mul.Multiply(40, 30, 20, a, b)
			require.NoError(t, err)
			assert.Equal(t, aCopy, a)
			assert.Equal(t, bCopy, b)
		})
	}
}

func TestMultiplyWraparound(t *testing.T) {
	for name, mul := range multipliers(t) {
		t.Run(name, func(t *testing.T) {
			got, err := mul.Multiply(1, 2, 1, []int64{math.MaxInt64, 1}, []int64{2, 2})
			require.NoError(t, err)
			// MaxInt64*2 wraps to -2; adding 2 gives 0.
			assert.Equal(t, []int64{0}, got)

			got, err = mul.Multiply(1, 1, 1, []int64{math.MinInt64}, []int64{-1})
			require.NoError(t, err)
			assert.Equal(t, []int64{math.MinInt64}, got)
		})
	}
}

func TestMultiplyFlagToggleBetweenCalls(t *testing.T) {
	r := rand.New(rand.NewSource(21))
	a, b := randomGrid(r, 37*41, 1<<20), randomGrid(r, 41*29, 1<<20)
	want := referenceProduct(a, b, 37, 41, 29)

	sel := NewSelector(false)
	mul := NewMultiplier(WithSelector(sel), WithBlockSize(16), WithParallelThreshold(0))
	for i := 0; i < 10; i++ {
		if err := sel.Enable(i%2 == 0); err != nil {
			require.ErrorIs(t, err, ErrAccelerationUnsupported)
		}
		got, err := mul.Multiply(37, 41, 29, a, b)
		require.NoError(t, err)
		require.Equal(t, want, got, "call %d (enabled=%v)", i, sel.Enabled())
	}
}

func TestMultiplyConcurrentWithToggling(t *testing.T) {
	r := rand.New(rand.NewSource(33))
	a, b := randomGrid(r, 24*24, 1000), randomGrid(r, 24*24, 1000)
	want := referenceProduct(a, b, 24, 24, 24)

	sel := NewSelector(true)
	mul := NewMultiplier(WithSelector(sel), WithBlockSize(8), WithParallelThreshold(0))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_ = sel.Enable(i%2 == 0)
		}
	}()

	errs := make(chan error, 8)
	for w := 0; w < 8; w++ {
		go func() {
			for i := 0; i < 20; i++ {
				got, err := mul.Multiply(24, 24, 24, a, b)
				if err != nil {
					errs <- err
					return
				}
				for j := range got {
					if got[j] != want[j] {
						errs <- fmt.Errorf("index %d: got %d, want %d", j, got[j], want[j])
						return
					}
				}
			}
			errs <- nil
		}()
	}
	for w := 0; w < 8; w++ {
		require.NoError(t, <-errs)
	}
	<-done
}

func TestMultiplyMatrix(t *testing.T) {
	a, err := NewMatrix(2, 3, []int64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	b, err := NewMatrix(3, 2, []int64{7, 8, 9, 10, 11, 12})
	require.NoError(t, err)

	c, err := Default().MultiplyMatrix(a, b)
	require.NoError(t, err)
	assert.Equal(t, Matrix{Rows: 2, Cols: 2, Grid: []int64{58, 64, 139, 154}}, c)

	_, err = Default().MultiplyMatrix(a, a)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

// --- Benchmarks ------------------------------------------------------------

func benchmarkMultiply(b *testing.B, size int, accelerated bool) {
	b.Helper()
	if accelerated && !FastAvailable() {
		b.Skip("blocked strategy not built")
	}
	r := rand.New(rand.NewSource(42))
	a := randomGrid(r, size*size, 1000)
	bb := randomGrid(r, size*size, 1000)
	mul := NewMultiplier(WithSelector(NewSelector(accelerated)))
	dst := make([]int64, size*size)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := mul.MultiplyInto(dst, size, size, size, a, bb); err != nil {
			b.Fatalf("MultiplyInto error: %v", err)
		}
	}
}

func BenchmarkNaiveMultiply_64x64(b *testing.B) { benchmarkMultiply(b, 64, false) }
func BenchmarkBlockedMultiply_64x64(b *testing.B) { benchmarkMultiply(b, 64, true) }
func BenchmarkNaiveMultiply_256x256(b *testing.B) { benchmarkMultiply(b, 256, false) }
func BenchmarkBlockedMultiply_256x256(b *testing.B) { benchmarkMultiply(b, 256, true) }
func BenchmarkNaiveMultiply_512x512(b *testing.B) { benchmarkMultiply(b, 512, false) }
func BenchmarkBlockedMultiply_512x512(b *testing.B) { benchmarkMultiply(b, 512, true) }
