package intersect

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/banshee-data/crosspath/internal/trajectory"
)

// ErrUnknownSolver is returned for an unrecognised solver name or kind.
var ErrUnknownSolver = errors.New("unknown solver")

// Point is a crossing in the projection plane.
type Point struct {
	X float64
	Y float64
}

// Solver finds where the projected paths of a and b cross in the future.
// ok is false for parallel, collinear and past-only crossings. err is
// non-nil only when a trajectory violates the solver's preconditions.
type Solver interface {
	Name() string
	Kind() Kind
	Plane() trajectory.Plane
	Intersect(a, b trajectory.Trajectory) (p Point, ok bool, err error)
}

// Kind tags the solver strategy.
type Kind int

const (
	KindAlgebraic Kind = iota + 1
	KindParametric
)

func (k Kind) String() string {
	switch k {
	case KindAlgebraic:
		return "algebraic"
	case KindParametric:
		return "parametric"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// RequiresNonZeroX reports whether the strategy needs a finite gradient.
func (k Kind) RequiresNonZeroX() bool {
	return k == KindAlgebraic
}

// ParseKind maps "algebraic" or "parametric" to a Kind. The aliases "a"
// and "b" are accepted for the two variants.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "algebraic", "a", "cramer":
		return KindAlgebraic, nil
	case "parametric", "b", "segment":
		return KindParametric, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSolver, s)
}

// New builds the solver for kind.
func New(kind Kind, opts ...Option) (Solver, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	switch kind {
	case KindAlgebraic:
		return &Algebraic{plane: o.plane, epsilon: o.epsilon}, nil
	case KindParametric:
		return &Parametric{plane: o.plane, horizon: o.horizon, low: o.low, high: o.high, useWindow: o.useWindow}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownSolver, kind)
}

// Agree reports whether p and q match within tol, absolute or relative.
func Agree(p, q Point, tol float64) bool {
	return scalar.EqualWithinAbsOrRel(p.X, q.X, tol, tol) &&
		scalar.EqualWithinAbsOrRel(p.Y, q.Y, tol, tol)
}

// ahead reports whether coordinate v is reached at t >= 0 by a path
// starting at v0 moving with velocity component vel.
func ahead(v, v0 float64, vel int64) bool {
	d := v - v0
	switch {
	case vel > 0:
		return d >= 0
	case vel < 0:
		return d <= 0
	}
	return false
}
