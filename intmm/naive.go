package intmm

// naiveStrategy is the reference i/j/k triple loop.
type naiveStrategy struct{}

func (naiveStrategy) Name() string      { return NaiveName }
func (naiveStrategy) Accelerated() bool { return false }

func (naiveStrategy) MulInto(dst, a, b []int64, m, k, n int) error {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum int64
			for p := 0; p < k; p++ {
				sum += a[i*k+p] * b[p*n+j]
			}
			dst[i*n+j] = sum
		}
	}
	return nil
}
