package intersect

import "github.com/banshee-data/crosspath/internal/trajectory"

// DefaultEpsilon is the near-zero threshold for the algebraic
// determinant. The determinant is a difference of two gradients vy/vx;
// for integer velocities up to 1e6 the smallest genuine difference is
// about 1e-12, anything below is rounding noise.
const DefaultEpsilon = 1e-12

// DefaultHorizon is the fixed lookahead used by the parametric solver when
// neither WithHorizon nor WithWindow is given.
const DefaultHorizon = 1e12

// Option configures a solver built by New.
type Option func(*options)

type options struct {
	plane     trajectory.Plane
	epsilon   float64
	horizon   float64
	low       float64
	high      float64
	useWindow bool
}

func defaultOptions() options {
	return options{
		plane:   trajectory.PlaneXY,
		epsilon: DefaultEpsilon,
		horizon: DefaultHorizon,
	}
}

// WithPlane selects the projection plane (default PlaneXY).
func WithPlane(p trajectory.Plane) Option {
	return func(o *options) { o.plane = p }
}

// WithEpsilon overrides DefaultEpsilon for the algebraic solver.
// Non-positive values are ignored.
func WithEpsilon(eps float64) Option {
	return func(o *options) {
		if eps > 0 {
			o.epsilon = eps
		}
	}
}

// WithHorizon fixes the parametric lookahead and disables window-derived
// horizons. Non-positive values are ignored.
func WithHorizon(h float64) Option {
	return func(o *options) {
		if h > 0 {
			o.horizon = h
			o.useWindow = false
		}
	}
}

// WithWindow makes the parametric solver derive each trajectory's horizon
// from the inclusive test window [low, high].
func WithWindow(low, high float64) Option {
	return func(o *options) {
		o.low, o.high = low, high
		o.useWindow = true
	}
}
