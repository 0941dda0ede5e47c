package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/crosspath/internal/intersect"
	"github.com/banshee-data/crosspath/internal/trajectory"
)

// maxDisagreementSamples bounds Comparison.Samples.
const maxDisagreementSamples = 20

// Disagreement records one pair on which the two solvers differ.
type Disagreement struct {
	A, B   int
	First  *intersect.Point // nil when the solver found no crossing
	Second *intersect.Point
}

// Comparison is the cross-validation report for two solvers.
type Comparison struct {
	First, Second string
	Window        Window
	Pairs         int

	// CountFirst and CountSecond are the qualifying-pair counts over the
	// pairs both solvers could evaluate.
	CountFirst  int
	CountSecond int

	// Skipped counts pairs where either solver reported a degeneracy.
	Skipped int

	// Mismatched counts pairs that qualify under one solver only.
	Mismatched int

	// Compared counts pairs where both solvers found a crossing;
	// Deviating is how many of those differ by more than the tolerance.
	Compared  int
	Deviating int

	MaxRelDeviation  float64
	MeanRelDeviation float64

	Samples []Disagreement
}

// Agree reports whether the solvers are interchangeable on this input.
func (c *Comparison) Agree() bool {
	return c.CountFirst == c.CountSecond && c.Mismatched == 0 && c.Deviating == 0
}

// Compare evaluates every pair with both solvers and reports where they
// disagree. tol is the absolute-or-relative tolerance on coordinates.
func Compare(set []trajectory.Trajectory, w Window, first, second intersect.Solver, tol float64) *Comparison {
	b := w.Bounds()
	c := &Comparison{
		First:  first.Name(),
		Second: second.Name(),
		Window: w,
		Pairs:  PairCount(len(set)),
	}

	var deviations []float64
	for i, j := range Pairs(set) {
		p1, ok1, err1 := first.Intersect(set[i], set[j])
		p2, ok2, err2 := second.Intersect(set[i], set[j])
		if err1 != nil || err2 != nil {
			c.Skipped++
			continue
		}

		in1 := ok1 && inBounds(b, p1)
		in2 := ok2 && inBounds(b, p2)
		if in1 {
			c.CountFirst++
		}
		if in2 {
			c.CountSecond++
		}

		disagree := in1 != in2
		if disagree {
			c.Mismatched++
		}
		if ok1 && ok2 {
			c.Compared++
			dev := relDeviation(p1, p2)
			deviations = append(deviations, dev)
			c.MaxRelDeviation = math.Max(c.MaxRelDeviation, dev)
			if !intersect.Agree(p1, p2, tol) {
				c.Deviating++
				disagree = true
			}
		}

		if disagree && len(c.Samples) < maxDisagreementSamples {
			d := Disagreement{A: i, B: j}
			if ok1 {
				d.First = &p1
			}
			if ok2 {
				d.Second = &p2
			}
			c.Samples = append(c.Samples, d)
		}
	}

	if len(deviations) > 0 {
		c.MeanRelDeviation = stat.Mean(deviations, nil)
	}
	return c
}

func relDeviation(p, q intersect.Point) float64 {
	return math.Max(relDiff(p.X, q.X), relDiff(p.Y, q.Y))
}

func relDiff(a, b float64) float64 {
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale == 0 {
		return 0
	}
	return math.Abs(a-b) / scale
}
