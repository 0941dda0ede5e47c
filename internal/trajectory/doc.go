// Package trajectory owns the entity data model: an integer start
// position plus a constant integer velocity, and its projection onto a
// fixed 2-D plane as a parametric ray.
//
// It also carries the text parsing contract used by drivers. The
// analysis packages only ever see []Trajectory; no file or reader access
// happens below this package.
package trajectory
