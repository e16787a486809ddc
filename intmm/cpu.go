package intmm

import (
	"runtime"
	"slices"

	"golang.org/x/sys/cpu"
)

// RuntimeInfo describes the build and the CPU the kernel runs on.
type RuntimeInfo struct {
	// Implementation is the strategy the default Multiplier uses right now.
	Implementation string
	// Features lists the CPU extensions relevant to the blocked kernel.
	Features []string
	// AccelerationBuilt reports whether the blocked strategy is compiled in.
	AccelerationBuilt bool
	// AccelerationEnabled is the default Selector's current value.
	AccelerationEnabled bool
	// MicroKernelWidth is the unroll width of the blocked inner loop.
	MicroKernelWidth int
	GOARCH           string
}

var cpuFeatures = detectCPUFeatures()

func detectCPUFeatures() []string {
	features := []string{}
	switch runtime.GOARCH {
	case "amd64", "386":
		if cpu.X86.HasSSE41 || cpu.X86.HasSSE42 {
			features = append(features, "SSE4")
		}
		if cpu.X86.HasAVX {
			features = append(features, "AVX")
		}
		if cpu.X86.HasAVX2 {
			features = append(features, "AVX2")
		}
		if cpu.X86.HasAVX512F {
			features = append(features, "AVX512F")
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			features = append(features, "ASIMD")
		}
		if cpu.ARM64.HasSVE {
			features = append(features, "SVE")
		}
	}
	return features
}

// microKernelWidth picks the axpy unroll width. Both widths give identical
// results; eight lanes only pay off with wide integer vector units.
func microKernelWidth() int {
	if cpu.X86.HasAVX2 || cpu.X86.HasAVX512F || cpu.ARM64.HasASIMD {
		return 8
	}
	return 4
}

// Info reports the runtime configuration of the default Multiplier.
func Info() RuntimeInfo {
	return RuntimeInfo{
		Implementation:      defaultMultiplier.Strategy().Name(),
		Features:            slices.Clone(cpuFeatures),
		AccelerationBuilt:   FastAvailable(),
		AccelerationEnabled: defaultSelector.Enabled(),
		MicroKernelWidth:    microKernelWidth(),
		GOARCH:              runtime.GOARCH,
	}
}
