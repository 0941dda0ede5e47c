package analysis

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/twpayne/go-geom"
	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/crosspath/internal/intersect"
	"github.com/banshee-data/crosspath/internal/trajectory"
)

// Hit is one qualifying pair and where the two paths cross.
type Hit struct {
	A     int
	B     int
	Point intersect.Point
}

// Count returns the number of pairs whose forward-time crossing lies in w.
func Count(set []trajectory.Trajectory, w Window, s intersect.Solver) (int, error) {
	b := w.Bounds()
	count := 0
	for i, j := range Pairs(set) {
		ok, _, err := qualifies(set, i, j, b, s)
		if err != nil {
			return 0, err
		}
		if ok {
			count++
		}
	}
	return count, nil
}

// Collect is the diagnostic form of Count: it returns every qualifying
// pair with its crossing point, in enumeration order.
func Collect(set []trajectory.Trajectory, w Window, s intersect.Solver) ([]Hit, error) {
	b := w.Bounds()
	var hits []Hit
	for i, j := range Pairs(set) {
		ok, p, err := qualifies(set, i, j, b, s)
		if err != nil {
			return nil, err
		}
		if ok {
			hits = append(hits, Hit{A: i, B: j, Point: p})
		}
	}
	return hits, nil
}

// CountParallel computes the same result as Count using up to workers
// goroutines; workers <= 0 means GOMAXPROCS. Each row i of the pair
// triangle is one task and writes only its own partial count. The first
// degeneracy error cancels the remaining rows.
func CountParallel(ctx context.Context, set []trajectory.Trajectory, w Window, s intersect.Solver, workers int) (int, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	b := w.Bounds()
	partial := make([]int, len(set))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < len(set)-1; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			n := 0
			for j := i + 1; j < len(set); j++ {
				ok, _, err := qualifies(set, i, j, b, s)
				if err != nil {
					return err
				}
				if ok {
					n++
				}
			}
			partial[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, n := range partial {
		total += n
	}
	return total, nil
}

func qualifies(set []trajectory.Trajectory, i, j int, b *geom.Bounds, s intersect.Solver) (bool, intersect.Point, error) {
	p, ok, err := s.Intersect(set[i], set[j])
	if err != nil {
		return false, intersect.Point{}, annotate(err, set, i, j)
	}
	if !ok || !inBounds(b, p) {
		return false, intersect.Point{}, nil
	}
	return true, p, nil
}

// annotate fills in the entity index of a degeneracy reported by a
// solver, which only sees the two trajectories.
func annotate(err error, set []trajectory.Trajectory, i, j int) error {
	var de *trajectory.DegenerateTrajectoryError
	if !errors.As(err, &de) || de.Index >= 0 {
		return err
	}
	idx := j
	if de.Trajectory == set[i] {
		idx = i
	}
	out := *de
	out.Index = idx
	return fmt.Errorf("pair (%d, %d): %w", i, j, &out)
}
