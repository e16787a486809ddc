package intmm

import "errors"

var (
	// ErrInvalidDimensions is returned when a grid length does not match its
	// declared row/col counts, a dimension is negative, or a dimension product
	// overflows int. Nothing is computed when it is returned.
	ErrInvalidDimensions = errors.New("intmm: invalid dimensions")

	// ErrAccelerationUnsupported is returned by Enable(true) in builds that
	// were compiled without the fast strategy. The flag stays disabled.
	ErrAccelerationUnsupported = errors.New("intmm: acceleration unsupported in this build")

	// ErrUnknownStrategy is returned by Lookup for an unregistered name.
	ErrUnknownStrategy = errors.New("intmm: unknown strategy")
)
