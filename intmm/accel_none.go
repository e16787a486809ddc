//go:build intmm_noaccel

// accel_none.go
//
// Builds tagged intmm_noaccel carry only the naive strategy. Enable(true)
// reports ErrAccelerationUnsupported and every product runs the triple loop.

package intmm

func registerAccelerated(r map[string]strategyFactory) {
	_ = r
	// Nothing to register.
}
