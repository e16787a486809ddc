package intmm

import "runtime"

// Tuning defaults.
const (
	// DefaultBlockSize is the tile edge of the blocked kernel. Three 64x64
	// int64 tiles take 96KB, which fits a typical L2 slice.
	DefaultBlockSize = 64

	// DefaultParallelThreshold is the m*n*k product below which the blocked
	// kernel stays on the calling goroutine.
	DefaultParallelThreshold = 64 * 64 * 64
)

// Tuning holds the performance knobs of the blocked strategy. It never
// affects results.
type Tuning struct {
	Workers           int `yaml:"workers"`
	BlockSize         int `yaml:"block_size"`
	ParallelThreshold int `yaml:"parallel_threshold"`
}

// DefaultTuning returns GOMAXPROCS workers with the default block size and
// parallel threshold.
func DefaultTuning() Tuning {
	return Tuning{
		Workers:           runtime.GOMAXPROCS(0),
		BlockSize:         DefaultBlockSize,
		ParallelThreshold: DefaultParallelThreshold,
	}
}

// Option configures a Multiplier, an IntEng or a strategy built by Lookup.
// Constructors panic on nonsensical values, which are programmer errors.
type Option func(*options)

type options struct {
	selector *Selector
	tuning   Tuning
}

func gatherOptions(opts []Option) options {
	o := options{
		selector: defaultSelector,
		tuning:   DefaultTuning(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSelector makes the Multiplier read its acceleration flag from s
// instead of the process-wide default.
func WithSelector(s *Selector) Option {
	if s == nil {
		panic("intmm: WithSelector(nil)")
	}
	return func(o *options) { o.selector = s }
}

// WithWorkers bounds the number of row strips computed concurrently.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("intmm: WithWorkers requires n >= 1")
	}
	return func(o *options) { o.tuning.Workers = n }
}

// WithBlockSize sets the tile edge of the blocked kernel.
func WithBlockSize(n int) Option {
	if n < 1 {
		panic("intmm: WithBlockSize requires n >= 1")
	}
	return func(o *options) { o.tuning.BlockSize = n }
}

// WithParallelThreshold sets the m*n*k product at which the blocked kernel
// starts fanning out. Zero parallelizes everything with at least two strips.
func WithParallelThreshold(n int) Option {
	if n < 0 {
		panic("intmm: WithParallelThreshold requires n >= 0")
	}
	return func(o *options) { o.tuning.ParallelThreshold = n }
}

// WithTuning applies every positive field of t; zero fields keep their
// current value. Use WithParallelThreshold(0) to parallelize every product.
func WithTuning(t Tuning) Option {
	return func(o *options) {
		if t.Workers > 0 {
			o.tuning.Workers = t.Workers
		}
		if t.BlockSize > 0 {
			o.tuning.BlockSize = t.BlockSize
		}
		if t.ParallelThreshold > 0 {
			o.tuning.ParallelThreshold = t.ParallelThreshold
		}
	}
}
