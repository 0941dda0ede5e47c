package trajectory

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec3 is an integer 3-vector used for both positions and velocities.
type Vec3 struct {
	X int64
	Y int64
	Z int64
}

// Trajectory is a point moving from Position with constant Velocity.
// It has no mutating methods; copies are independent.
type Trajectory struct {
	Position Vec3
	Velocity Vec3
}

// New builds a Trajectory from a position and a velocity.
func New(pos, vel Vec3) Trajectory {
	return Trajectory{Position: pos, Velocity: vel}
}

// String renders the canonical "px, py, pz @ vx, vy, vz" form.
func (t Trajectory) String() string {
	p, v := t.Position, t.Velocity
	return fmt.Sprintf("%d, %d, %d @ %d, %d, %d", p.X, p.Y, p.Z, v.X, v.Y, v.Z)
}

// Ray is the 2-D parametric path P(t) = Origin + t*Direction.
type Ray struct {
	Origin    r2.Vec
	Direction r2.Vec
}

// At returns the point reached at time t.
func (r Ray) At(t float64) r2.Vec {
	return r2.Add(r.Origin, r2.Scale(t, r.Direction))
}

// Project drops the axis not in plane and returns the in-plane ray.
// A trajectory that does not move within the plane is rejected.
func (t Trajectory) Project(plane Plane) (Ray, error) {
	px, py := plane.pick(t.Position)
	vx, vy := plane.pick(t.Velocity)
	if vx == 0 && vy == 0 {
		return Ray{}, &DegenerateTrajectoryError{Index: -1, Trajectory: t, Plane: plane, Reason: ReasonZeroVelocity}
	}
	return Ray{
		Origin:    r2.Vec{X: float64(px), Y: float64(py)},
		Direction: r2.Vec{X: float64(vx), Y: float64(vy)},
	}, nil
}

// InPlaneVelocity returns the two velocity components kept by plane.
func (t Trajectory) InPlaneVelocity(plane Plane) (int64, int64) {
	return plane.pick(t.Velocity)
}

// InPlanePosition returns the two position components kept by plane.
func (t Trajectory) InPlanePosition(plane Plane) (int64, int64) {
	return plane.pick(t.Position)
}
