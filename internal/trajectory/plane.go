package trajectory

import (
	"fmt"
	"strings"
)

// Plane selects the two axes kept when projecting a trajectory.
type Plane int

const (
	PlaneXY Plane = iota // drop Z (default)
	PlaneXZ              // drop Y
	PlaneYZ              // drop X
)

// ParsePlane accepts "xy", "xz" or "yz" (case-insensitive). An empty
// string selects PlaneXY.
func ParsePlane(s string) (Plane, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xy":
		return PlaneXY, nil
	case "xz":
		return PlaneXZ, nil
	case "yz":
		return PlaneYZ, nil
	}
	return PlaneXY, fmt.Errorf("unknown projection plane %q (want xy, xz or yz)", s)
}

func (p Plane) String() string {
	switch p {
	case PlaneXY:
		return "xy"
	case PlaneXZ:
		return "xz"
	case PlaneYZ:
		return "yz"
	}
	return fmt.Sprintf("plane(%d)", int(p))
}

func (p Plane) pick(v Vec3) (int64, int64) {
	switch p {
	case PlaneXZ:
		return v.X, v.Z
	case PlaneYZ:
		return v.Y, v.Z
	default:
		return v.X, v.Y
	}
}
