// Package intersect computes the forward-time crossing point of two
// projected trajectories.
//
// Two interchangeable strategies implement Solver:
//
//   - Algebraic rewrites each path as an implicit line a*x + b*y = c from
//     its gradient vy/vx and solves the 2x2 system with Cramer's rule. It
//     is exact for well-conditioned input but has no representation for
//     vertical paths; those are rejected with a
//     trajectory.DegenerateTrajectoryError rather than silently skipped.
//   - Parametric bounds each path to a segment over a horizon H and solves
//     the two-segment formula. It handles vertical paths, but H must cover
//     every crossing of interest. By default H is derived per trajectory
//     from the test window so no crossing inside the window is missed.
//
// Both report a point only when it is reached at t >= 0 by both
// trajectories. Parallel, collinear and past-only crossings are reported
// as "no intersection" (ok == false, err == nil).
package intersect
