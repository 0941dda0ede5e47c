package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/banshee-data/crosspath/internal/intersect"
	"github.com/banshee-data/crosspath/internal/monitoring"
	"github.com/banshee-data/crosspath/internal/trajectory"
)

// Options configures Analyze.
type Options struct {
	Window Window
	Solver intersect.Solver

	// Workers bounds CountParallel; 1 forces the sequential path and
	// <= 0 uses GOMAXPROCS.
	Workers int

	// CollectHits also returns every qualifying pair and its point.
	CollectHits bool

	// SkipDegenerate drops trajectories the solver cannot handle instead
	// of failing the run. Dropped entities are listed in Result.Rejected.
	SkipDegenerate bool
}

// Result summarises one analysis run.
type Result struct {
	Solver   string
	Plane    trajectory.Plane
	Window   Window
	Entities int
	Rejected []*trajectory.DegenerateTrajectoryError
	Pairs    int
	Count    int
	Hits     []Hit
	Duration time.Duration
}

// Analyze validates set against the solver's preconditions and counts
// the qualifying pairs.
func Analyze(ctx context.Context, set []trajectory.Trajectory, opts Options) (*Result, error) {
	if opts.Solver == nil {
		return nil, errors.New("analysis: nil solver")
	}
	if _, err := NewWindow(opts.Window.Low, opts.Window.High); err != nil {
		return nil, err
	}

	start := time.Now()
	s := opts.Solver
	plane := s.Plane()
	strict := s.Kind().RequiresNonZeroX()

	res := &Result{
		Solver:   s.Name(),
		Plane:    plane,
		Window:   opts.Window,
		Entities: len(set),
	}

	if opts.SkipDegenerate {
		kept, rejected := trajectory.Filter(set, plane, strict)
		for _, r := range rejected {
			monitoring.Debugf("skipping %v", r)
		}
		if len(rejected) > 0 {
			monitoring.Logf("%s solver: skipped %d of %d trajectories", s.Name(), len(rejected), len(set))
		}
		set = kept
		res.Rejected = rejected
	} else if err := trajectory.Validate(set, plane, strict); err != nil {
		return nil, fmt.Errorf("%s solver: %w", s.Name(), err)
	}
	res.Pairs = PairCount(len(set))

	var err error
	if opts.CollectHits {
		res.Hits, err = Collect(set, opts.Window, s)
		res.Count = len(res.Hits)
	} else if opts.Workers == 1 {
		res.Count, err = Count(set, opts.Window, s)
	} else {
		res.Count, err = CountParallel(ctx, set, opts.Window, s, opts.Workers)
	}
	if err != nil {
		return nil, err
	}

	res.Duration = time.Since(start)
	monitoring.Logf("%s solver: %d of %d pairs cross inside %s (%v)",
		res.Solver, res.Count, res.Pairs, res.Window, res.Duration)
	return res, nil
}
