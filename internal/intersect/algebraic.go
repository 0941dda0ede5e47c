package intersect

import (
	"math"

	"github.com/banshee-data/crosspath/internal/trajectory"
)

// Algebraic solves the implicit-line system with Cramer's rule.
//
// Each path y = m*x + q, with m = vy/vx, is rewritten as -m*x + y = q
// where q = y0 - m*x0. Vertical paths (vx == 0) have no such form.
type Algebraic struct {
	plane   trajectory.Plane
	epsilon float64
}

var _ Solver = (*Algebraic)(nil)

func (s *Algebraic) Name() string            { return KindAlgebraic.String() }
func (s *Algebraic) Kind() Kind              { return KindAlgebraic }
func (s *Algebraic) Plane() trajectory.Plane { return s.plane }
func (s *Algebraic) Epsilon() float64        { return s.epsilon }

// Intersect implements Solver.
func (s *Algebraic) Intersect(a, b trajectory.Trajectory) (Point, bool, error) {
	la, err := s.line(a)
	if err != nil {
		return Point{}, false, err
	}
	lb, err := s.line(b)
	if err != nil {
		return Point{}, false, err
	}

	//  [a1 b1] [x]   [c1]
	//  [a2 b2] [y] = [c2]   with b1 = b2 = 1
	a1, c1 := -la.gradient, la.intercept
	a2, c2 := -lb.gradient, lb.intercept
	const b1, b2 = 1.0, 1.0

	det := a1*b2 - b1*a2
	if !s.wellConditioned(det) {
		return Point{}, false, nil
	}

	// Rounding each product keeps the result independent of argument
	// order even where the compiler would otherwise emit an FMA.
	x := (float64(c1*b2) - float64(b1*c2)) / det
	y := (float64(a1*c2) - float64(c1*a2)) / det

	if !ahead(x, la.x0, la.vx) || !ahead(x, lb.x0, lb.vx) {
		return Point{}, false, nil
	}
	return Point{X: x, Y: y}, true, nil
}

type implicitLine struct {
	gradient  float64
	intercept float64
	x0        float64
	vx        int64
}

func (s *Algebraic) line(t trajectory.Trajectory) (implicitLine, error) {
	vx, vy := t.InPlaneVelocity(s.plane)
	switch {
	case vx == 0 && vy == 0:
		return implicitLine{}, &trajectory.DegenerateTrajectoryError{Index: -1, Trajectory: t, Plane: s.plane, Reason: trajectory.ReasonZeroVelocity}
	case vx == 0:
		return implicitLine{}, &trajectory.DegenerateTrajectoryError{Index: -1, Trajectory: t, Plane: s.plane, Reason: trajectory.ReasonZeroXVelocity}
	}
	px, py := t.InPlanePosition(s.plane)
	m := float64(vy) / float64(vx)
	return implicitLine{
		gradient:  m,
		intercept: float64(py) - m*float64(px),
		x0:        float64(px),
		vx:        vx,
	}, nil
}

// wellConditioned rejects NaN, infinite and near-zero determinants.
func (s *Algebraic) wellConditioned(det float64) bool {
	if math.IsNaN(det) || math.IsInf(det, 0) {
		return false
	}
	return math.Abs(det) > s.epsilon
}
