package intmm

import (
	"math"
	"math/rand"
)

// randomGrid returns n values drawn uniformly from [-span, span].
func randomGrid(r *rand.Rand, n int, span int64) []int64 {
	g := make([]int64, n)
	for i := range g {
		g[i] = r.Int63n(2*span+1) - span
	}
	return g
}

// extremeGrid mixes values near the int64 limits so products wrap.
func extremeGrid(r *rand.Rand, n int) []int64 {
	pool := []int64{math.MaxInt64, math.MinInt64, math.MaxInt64 - 1, math.MinInt64 + 1, -1, 0, 1, 1 << 40, -(1 << 40)}
	g := make([]int64, n)
	for i := range g {
		if r.Intn(3) == 0 {
			g[i] = r.Int63() - r.Int63()
			continue
		}
		g[i] = pool[r.Intn(len(pool))]
	}
	return g
}

// referenceProduct is an independent i/k/j loop used as the oracle.
func referenceProduct(a, b []int64, m, k, n int) []int64 {
	c := make([]int64, m*n)
	for i := 0; i < m; i++ {
		for p := 0; p < k; p++ {
			av := a[i*k+p]
			for j := 0; j < n; j++ {
				c[i*n+j] += av * b[p*n+j]
			}
		}
	}
	return c
}

// withDefaultAcceleration sets the process-wide flag for the duration of fn.
func withDefaultAcceleration(flag bool, fn func()) {
	prev := AccelerationEnabled()
	if err := EnableAcceleration(flag); err != nil {
		panic(err)
	}
	defer func() { _ = EnableAcceleration(prev) }()
	fn()
}
