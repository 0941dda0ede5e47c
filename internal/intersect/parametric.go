package intersect

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/crosspath/internal/trajectory"
)

// maxExactFloat is the largest magnitude for which every integer is
// representable in a float64.
const maxExactFloat = 1 << 53

// Parametric extrapolates each trajectory into a segment [P0, P0 + H*V]
// and intersects the two segments.
type Parametric struct {
	plane     trajectory.Plane
	horizon   float64
	low       float64
	high      float64
	useWindow bool
}

var _ Solver = (*Parametric)(nil)

func (s *Parametric) Name() string            { return KindParametric.String() }
func (s *Parametric) Kind() Kind              { return KindParametric }
func (s *Parametric) Plane() trajectory.Plane { return s.plane }

// Horizon returns the lookahead used for t. With a window configured it
// is derived from the window bounds, otherwise it is the fixed horizon.
func (s *Parametric) Horizon(t trajectory.Trajectory) float64 {
	if s.useWindow {
		return DeriveHorizon(t, s.plane, s.low, s.high)
	}
	return clampHorizon(math.Ceil(s.horizon), t, s.plane)
}

// Intersect implements Solver.
func (s *Parametric) Intersect(a, b trajectory.Trajectory) (Point, bool, error) {
	// Evaluate in a canonical order so swapping a and b gives a
	// bit-identical point.
	if less(b, a) {
		a, b = b, a
	}
	ra, err := a.Project(s.plane)
	if err != nil {
		return Point{}, false, err
	}
	rb, err := b.Project(s.plane)
	if err != nil {
		return Point{}, false, err
	}

	p1, d1 := ra.Origin, r2.Scale(s.Horizon(a), ra.Direction)
	p3, d2 := rb.Origin, r2.Scale(s.Horizon(b), rb.Direction)

	// d1 and d2 hold exact integers, so truly parallel directions give
	// equal rounded products and a denominator of exactly zero.
	denom := exactCross(d1, d2)
	if denom == 0 {
		return Point{}, false, nil
	}

	w := r2.Sub(p1, p3)
	ua := r2.Cross(d2, w) / denom
	ub := r2.Cross(d1, w) / denom
	if ua > 1 || ub > 1 {
		// Beyond at least one segment end.
		return Point{}, false, nil
	}

	p := r2.Add(p1, r2.Scale(ua, d1))
	if !forward(p, ra, a, s.plane) || !forward(p, rb, b, s.plane) {
		return Point{}, false, nil
	}
	return Point{X: p.X, Y: p.Y}, true, nil
}

// DeriveHorizon returns the latest time at which t can still be inside
// the square window [low, high]^2, rounded up to a whole number and
// clamped to at least 1. Any crossing inside the window happens no later
// than this.
func DeriveHorizon(t trajectory.Trajectory, plane trajectory.Plane, low, high float64) float64 {
	px, py := t.InPlanePosition(plane)
	vx, vy := t.InPlaneVelocity(plane)

	h := math.Inf(1)
	if vx != 0 {
		h = math.Min(h, axisReach(float64(px), float64(vx), low, high))
	}
	if vy != 0 {
		h = math.Min(h, axisReach(float64(py), float64(vy), low, high))
	}
	if math.IsInf(h, 1) {
		return 1
	}
	return clampHorizon(math.Ceil(h), t, plane)
}

func axisReach(p, v, low, high float64) float64 {
	return math.Max(math.Abs(low-p), math.Abs(high-p)) / math.Abs(v)
}

// clampHorizon keeps H*|v| within the exactly representable range.
func clampHorizon(h float64, t trajectory.Trajectory, plane trajectory.Plane) float64 {
	if h < 1 {
		h = 1
	}
	vx, vy := t.InPlaneVelocity(plane)
	vmax := math.Max(math.Abs(float64(vx)), math.Abs(float64(vy)))
	if vmax > 0 {
		if limit := math.Floor(maxExactFloat / vmax); h > limit {
			h = limit
		}
	}
	return h
}

// forward applies the sign test on the dominant in-plane velocity axis,
// which stays defined for vertical and horizontal paths.
func forward(p r2.Vec, r trajectory.Ray, t trajectory.Trajectory, plane trajectory.Plane) bool {
	vx, vy := t.InPlaneVelocity(plane)
	if abs64(vx) >= abs64(vy) {
		return ahead(p.X, r.Origin.X, vx)
	}
	return ahead(p.Y, r.Origin.Y, vy)
}

// exactCross is r2.Cross with each product rounded on its own. The
// conversions stop the compiler fusing the subtraction into an FMA.
func exactCross(p, q r2.Vec) float64 {
	return float64(p.X*q.Y) - float64(p.Y*q.X)
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// less orders trajectories by position then velocity.
func less(a, b trajectory.Trajectory) bool {
	pa := [6]int64{a.Position.X, a.Position.Y, a.Position.Z, a.Velocity.X, a.Velocity.Y, a.Velocity.Z}
	pb := [6]int64{b.Position.X, b.Position.Y, b.Position.Z, b.Velocity.X, b.Velocity.Y, b.Velocity.Z}
	for i := range pa {
		if pa[i] != pb[i] {
			return pa[i] < pb[i]
		}
	}
	return false
}
