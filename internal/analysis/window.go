package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/twpayne/go-geom"

	"github.com/banshee-data/crosspath/internal/intersect"
)

// ErrInvalidWindow is returned by NewWindow for unusable bounds.
var ErrInvalidWindow = errors.New("invalid window")

// Window is the inclusive square [Low, High] x [Low, High].
type Window struct {
	Low  float64
	High float64
}

// NewWindow validates and returns a Window.
func NewWindow(low, high float64) (Window, error) {
	if math.IsNaN(low) || math.IsNaN(high) {
		return Window{}, fmt.Errorf("%w: NaN bound", ErrInvalidWindow)
	}
	if low > high {
		return Window{}, fmt.Errorf("%w: low %g > high %g", ErrInvalidWindow, low, high)
	}
	return Window{Low: low, High: high}, nil
}

// Bounds returns the window as XY bounds.
func (w Window) Bounds() *geom.Bounds {
	return geom.NewBounds(geom.XY).Set(w.Low, w.Low, w.High, w.High)
}

// Contains reports whether p lies inside the window, bounds included.
func (w Window) Contains(p intersect.Point) bool {
	return inBounds(w.Bounds(), p)
}

func (w Window) String() string {
	return fmt.Sprintf("[%g, %g]", w.Low, w.High)
}

func inBounds(b *geom.Bounds, p intersect.Point) bool {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return false
	}
	return b.OverlapsPoint(geom.XY, geom.Coord{p.X, p.Y})
}
