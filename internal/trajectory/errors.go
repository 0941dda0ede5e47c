package trajectory

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned by ParseReader when no records were found.
var ErrEmptyInput = errors.New("no trajectories in input")

// DegenerateReason names the unsupported geometric case.
type DegenerateReason string

const (
	// ReasonZeroVelocity: the entity does not move within the plane.
	ReasonZeroVelocity DegenerateReason = "zero in-plane velocity"
	// ReasonZeroXVelocity: the path is vertical, so it has no finite
	// gradient and cannot be expressed as y = m*x + q.
	ReasonZeroXVelocity DegenerateReason = "zero x-component velocity"
)

// DegenerateTrajectoryError reports a trajectory a solver cannot handle.
// It is distinct from "no intersection": parallel or past-only pairs are
// normal outcomes, this is a precondition violation.
type DegenerateTrajectoryError struct {
	Index      int // position in the entity set, -1 when unknown
	Trajectory Trajectory
	Plane      Plane
	Reason     DegenerateReason
}

func (e *DegenerateTrajectoryError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("degenerate trajectory #%d (%s) in plane %s: %s", e.Index, e.Trajectory, e.Plane, e.Reason)
	}
	return fmt.Sprintf("degenerate trajectory (%s) in plane %s: %s", e.Trajectory, e.Plane, e.Reason)
}

// IsDegenerate reports whether err carries a DegenerateTrajectoryError.
func IsDegenerate(err error) bool {
	var de *DegenerateTrajectoryError
	return errors.As(err, &de)
}

// ParseError describes a record that does not resolve to two integer
// triples.
type ParseError struct {
	Line   int // 1-based line number, 0 when parsing a single string
	Text   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s (%q)", e.Line, msg, e.Text)
	}
	return fmt.Sprintf("%s (%q)", msg, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }
