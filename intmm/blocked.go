package intmm

import "golang.org/x/sync/errgroup"

// blockedStrategy tiles the product into BlockSize x BlockSize blocks of
// rows, inner dimension and columns, and accumulates each output row with an
// unrolled axpy. Large products are split into row strips that run on a
// bounded goroutine group. Every output cell is owned by exactly one strip.
type blockedStrategy struct {
	tune Tuning
	axpy func(out, row []int64, av int64)
}

func newBlockedStrategy(t Tuning) Strategy {
	return &blockedStrategy{tune: t, axpy: axpyFor(microKernelWidth())}
}

func (s *blockedStrategy) Name() string      { return FastName }
func (s *blockedStrategy) Accelerated() bool { return true }

func (s *blockedStrategy) MulInto(dst, a, b []int64, m, k, n int) error {
	clear(dst)
	if m == 0 || n == 0 || k == 0 {
		return nil
	}

	strip := s.tune.BlockSize
	numStrips := (m + strip - 1) / strip
	if s.tune.Workers <= 1 || numStrips < 2 || productBelow(m*n, k, s.tune.ParallelThreshold) {
		s.mulRows(dst, a, b, 0, m, k, n)
		return nil
	}

	var g errgroup.Group
	g.SetLimit(s.tune.Workers)
	for i0 := 0; i0 < m; i0 += strip {
		i0 := i0
		i1 := min(i0+strip, m)
		g.Go(func() error {
			s.mulRows(dst, a, b, i0, i1, k, n)
			return nil
		})
	}
	return g.Wait()
}

// mulRows accumulates rows [i0, i1) of the product into dst, which must be
// zeroed for those rows.
func (s *blockedStrategy) mulRows(dst, a, b []int64, i0, i1, k, n int) {
	bs := s.tune.BlockSize
	for ii := i0; ii < i1; ii += bs {
		iEnd := min(ii+bs, i1)
		for pp := 0; pp < k; pp += bs {
			pEnd := min(pp+bs, k)
			for jj := 0; jj < n; jj += bs {
				jEnd := min(jj+bs, n)
				for i := ii; i < iEnd; i++ {
					out := dst[i*n+jj : i*n+jEnd]
					arow := a[i*k : i*k+k]
					for p := pp; p < pEnd; p++ {
						av := arow[p]
						if av == 0 {
							continue
						}
						s.axpy(out, b[p*n+jj:p*n+jEnd], av)
					}
				}
			}
		}
	}
}

// productBelow reports whether mn*k < threshold without forming mn*k, which
// may overflow int. mn and k are positive.
func productBelow(mn, k, threshold int) bool {
	q := threshold / k
	if threshold%k != 0 {
		q++
	}
	return mn < q
}

func axpyFor(width int) func(out, row []int64, av int64) {
	if width >= 8 {
		return axpy8
	}
	return axpy4
}

// axpy4 computes out += av*row, four lanes per iteration.
func axpy4(out, row []int64, av int64) {
	row = row[:len(out)]
	j := 0
	for ; j+4 <= len(out); j += 4 {
		out[j] += av * row[j]
		out[j+1] += av * row[j+1]
		out[j+2] += av * row[j+2]
		out[j+3] += av * row[j+3]
	}
	for ; j < len(out); j++ {
		out[j] += av * row[j]
	}
}

// axpy8 is axpy4 with eight lanes, used where the CPU has 256-bit or wider
// integer vectors.
func axpy8(out, row []int64, av int64) {
	row = row[:len(out)]
	j := 0
	for ; j+8 <= len(out); j += 8 {
		o := out[j : j+8 : j+8]
		r := row[j : j+8 : j+8]
		o[0] += av * r[0]
		o[1] += av * r[1]
		o[2] += av * r[2]
		o[3] += av * r[3]
		o[4] += av * r[4]
		o[5] += av * r[5]
		o[6] += av * r[6]
		o[7] += av * r[7]
	}
	for ; j < len(out); j++ {
		out[j] += av * row[j]
	}
}
