//go:build !intmm_noaccel

// accel.go
//
// Default builds register the blocked strategy as the accelerated path.
// Build with -tags intmm_noaccel to compile it out.

package intmm

func registerAccelerated(r map[string]strategyFactory) {
	r[FastName] = newBlockedStrategy
}
