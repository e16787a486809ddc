package intmm

import (
	"fmt"
	"sort"
)

// Registered strategy names.
const (
	NaiveName = "naive"
	FastName  = "blocked"
)

// Strategy computes dst = a*b for row-major int64 grids, where a is m x k,
// b is k x n and dst is m x n. Callers validate every length before calling,
// so implementations may index freely. dst is fully overwritten.
//
// Every Strategy must return bit-identical results for identical inputs.
type Strategy interface {
	Name() string
	Accelerated() bool
	MulInto(dst, a, b []int64, m, k, n int) error
}

type strategyFactory func(Tuning) Strategy

// registry is filled during package variable initialization so that the
// default Selector can consult it.
var registry = newRegistry()

func newRegistry() map[string]strategyFactory {
	r := map[string]strategyFactory{
		NaiveName: func(Tuning) Strategy { return naiveStrategy{} },
	}
	registerAccelerated(r)
	return r
}

// FastAvailable reports whether the blocked strategy was compiled in.
func FastAvailable() bool {
	_, ok := registry[FastName]
	return ok
}

// Strategies lists the registered strategy names in sorted order.
func Strategies() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup builds the named strategy with the tuning carried by opts.
func Lookup(name string, opts ...Option) (Strategy, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownStrategy, name, Strategies())
	}
	o := gatherOptions(opts)
	return f(o.tuning), nil
}
