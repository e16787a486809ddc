// Package intmm multiplies dense int64 matrices and plugs that kernel into
// gorgonia's tensor package as an Engine.
//
// Two strategies compute the product:
//
//   - "naive": the reference i/j/k triple loop, always available.
//   - "blocked": a cache-tiled kernel with an unrolled inner loop that fans
//     large products out over row strips. It is compiled in unless the
//     intmm_noaccel build tag is set.
//
// A Selector decides which one a Multiplier uses. The process-wide default
// Selector starts enabled when the blocked strategy is built in. Both
// strategies produce bit-identical results: arithmetic is int64 with
// two's-complement wraparound, which makes every summation order equivalent.
//
// Basic use:
//
//	c, err := intmm.Multiply(2, 2, 2, []int64{1, 2, 3, 4}, []int64{5, 6, 7, 8})
//	// c == []int64{19, 22, 43, 50}
//
// With gorgonia tensors:
//
//	eng := intmm.NewIntEng()
//	a := tensor.New(tensor.WithShape(2, 2), tensor.WithBacking([]int64{1, 2, 3, 4}))
//	...
//	err := eng.MatMul(a, b, c)
package intmm
