package trajectory

// Validate returns the first trajectory in set that cannot be projected
// onto plane. With requireNonZeroX, vertical in-plane paths are rejected
// too (the gradient-based solver needs a finite slope).
func Validate(set []Trajectory, plane Plane, requireNonZeroX bool) error {
	for i, t := range set {
		if reason, bad := degeneracy(t, plane, requireNonZeroX); bad {
			return &DegenerateTrajectoryError{Index: i, Trajectory: t, Plane: plane, Reason: reason}
		}
	}
	return nil
}

// Filter splits set into supported trajectories and the errors for the
// rejected ones. Input order is preserved in both outputs.
func Filter(set []Trajectory, plane Plane, requireNonZeroX bool) ([]Trajectory, []*DegenerateTrajectoryError) {
	kept := make([]Trajectory, 0, len(set))
	var rejected []*DegenerateTrajectoryError
	for i, t := range set {
		if reason, bad := degeneracy(t, plane, requireNonZeroX); bad {
			rejected = append(rejected, &DegenerateTrajectoryError{Index: i, Trajectory: t, Plane: plane, Reason: reason})
			continue
		}
		kept = append(kept, t)
	}
	return kept, rejected
}

func degeneracy(t Trajectory, plane Plane, requireNonZeroX bool) (DegenerateReason, bool) {
	vx, vy := plane.pick(t.Velocity)
	switch {
	case vx == 0 && vy == 0:
		return ReasonZeroVelocity, true
	case requireNonZeroX && vx == 0:
		return ReasonZeroXVelocity, true
	}
	return "", false
}
