package intmm

import "sync/atomic"

// Selector holds the acceleration flag. It is safe for concurrent use; a
// Multiplier reads it once per product.
type Selector struct {
	enabled   atomic.Bool
	supported bool
}

// NewSelector returns a Selector set to enabled when the build supports
// acceleration. In builds without the blocked strategy the flag starts, and
// stays, disabled.
func NewSelector(enabled bool) *Selector {
	s := &Selector{supported: FastAvailable()}
	s.enabled.Store(enabled && s.supported)
	return s
}

// Enabled reports whether products should take the accelerated path.
func (s *Selector) Enabled() bool {
	return s.enabled.Load()
}

// Enable sets the flag. Disabling always succeeds. Enabling in a build
// without the blocked strategy returns ErrAccelerationUnsupported and leaves
// the flag disabled.
func (s *Selector) Enable(flag bool) error {
	if flag && !s.supported {
		return ErrAccelerationUnsupported
	}
	s.enabled.Store(flag)
	return nil
}

// Supported reports whether Enable(true) can succeed.
func (s *Selector) Supported() bool {
	return s.supported
}

// defaultSelector starts enabled whenever acceleration is built in.
var defaultSelector = NewSelector(true)

// DefaultSelector returns the process-wide Selector used by the package
// level functions and by Multipliers built without WithSelector.
func DefaultSelector() *Selector {
	return defaultSelector
}

// AccelerationEnabled reports the process-wide acceleration flag.
func AccelerationEnabled() bool {
	return defaultSelector.Enabled()
}

// EnableAcceleration sets the process-wide acceleration flag.
func EnableAcceleration(flag bool) error {
	return defaultSelector.Enable(flag)
}
