package intersect

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/crosspath/internal/trajectory"
)

func tr(px, py, pz, vx, vy, vz int64) trajectory.Trajectory {
	return trajectory.New(trajectory.Vec3{X: px, Y: py, Z: pz}, trajectory.Vec3{X: vx, Y: vy, Z: vz})
}

func bothSolvers(t *testing.T) []Solver {
	t.Helper()
	a, err := New(KindAlgebraic)
	require.NoError(t, err)
	b, err := New(KindParametric, WithWindow(-1e6, 1e6))
	require.NoError(t, err)
	return []Solver{a, b}
}

func TestIntersect_WorkedExamplePairs(t *testing.T) {
	t.Parallel()

	a := tr(19, 13, 30, -2, 1, -2)
	b := tr(18, 19, 22, -1, -1, -2)
	c := tr(20, 25, 34, -2, -2, -4)
	e := tr(20, 19, 15, 1, -5, -3)

	for _, s := range bothSolvers(t) {
		s := s
		t.Run(s.Name(), func(t *testing.T) {
			t.Parallel()

			p, ok, err := s.Intersect(a, b)
			require.NoError(t, err)
			require.True(t, ok)
			assert.InDelta(t, 14.333, p.X, 1e-3)
			assert.InDelta(t, 15.333, p.Y, 1e-3)

			p, ok, err = s.Intersect(a, c)
			require.NoError(t, err)
			require.True(t, ok)
			assert.InDelta(t, 11.667, p.X, 1e-3)
			assert.InDelta(t, 16.667, p.Y, 1e-3)

			// b and c move along parallel lines.
			_, ok, err = s.Intersect(b, c)
			require.NoError(t, err)
			assert.False(t, ok, "parallel paths must not intersect")

			// a and e crossed in a's past.
			_, ok, err = s.Intersect(a, e)
			require.NoError(t, err)
			assert.False(t, ok, "past crossing must be rejected")
		})
	}
}

func TestIntersect_Parallel(t *testing.T) {
	t.Parallel()
	pairs := [][2]trajectory.Trajectory{
		{tr(0, 0, 0, 1, 2, 0), tr(5, 0, 0, 3, 6, 0)},
		{tr(0, 0, 0, -3, 7, 0), tr(100, -40, 0, -6, 14, 0)},
		// Collinear: same line, both moving the same way.
		{tr(0, 0, 0, 1, 1, 0), tr(3, 3, 0, 2, 2, 0)},
		// Collinear, head-on.
		{tr(0, 0, 0, 1, 1, 0), tr(10, 10, 0, -1, -1, 0)},
	}
	for _, s := range bothSolvers(t) {
		for i, p := range pairs {
			_, ok, err := s.Intersect(p[0], p[1])
			require.NoError(t, err, "%s pair %d", s.Name(), i)
			assert.False(t, ok, "%s pair %d should be parallel", s.Name(), i)
		}
	}
}

func TestIntersect_PastOnly(t *testing.T) {
	t.Parallel()
	// The lines cross at the origin, but both start past it and move away.
	a := tr(5, 5, 0, 1, 1, 0)
	b := tr(5, -5, 0, 1, -1, 0)
	for _, s := range bothSolvers(t) {
		_, ok, err := s.Intersect(a, b)
		require.NoError(t, err)
		assert.False(t, ok, s.Name())
	}

	// Only one of them has passed the crossing.
	c := tr(-5, -5, 0, 1, 1, 0)
	for _, s := range bothSolvers(t) {
		_, ok, err := s.Intersect(c, b)
		require.NoError(t, err)
		assert.False(t, ok, s.Name())
	}
}

func TestIntersect_CrossingAtStartCounts(t *testing.T) {
	t.Parallel()
	// b starts exactly on a's path: t_b = 0.
	a := tr(0, 0, 0, 1, 1, 0)
	b := tr(4, 4, 0, 1, -1, 0)
	alg, err := New(KindAlgebraic)
	require.NoError(t, err)
	// A power-of-two horizon keeps the parametric arithmetic exact here.
	par, err := New(KindParametric, WithHorizon(8))
	require.NoError(t, err)
	for _, s := range []Solver{alg, par} {
		p, ok, err := s.Intersect(a, b)
		require.NoError(t, err)
		require.True(t, ok, s.Name())
		assert.InDelta(t, 4.0, p.X, 1e-9)
		assert.InDelta(t, 4.0, p.Y, 1e-9)
	}
}

func TestIntersect_Symmetry(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(1, 2))
	for _, s := range bothSolvers(t) {
		for i := 0; i < 500; i++ {
			a, b := randomTrajectory(rng), randomTrajectory(rng)
			p1, ok1, err1 := s.Intersect(a, b)
			p2, ok2, err2 := s.Intersect(b, a)
			require.NoError(t, err1)
			require.NoError(t, err2)
			require.Equal(t, ok1, ok2, "%s: %v / %v", s.Name(), a, b)
			if ok1 {
				assert.Equal(t, p1, p2, "%s: %v / %v", s.Name(), a, b)
			}
		}
	}
}

func TestIntersect_CrossValidation(t *testing.T) {
	t.Parallel()
	alg, err := New(KindAlgebraic)
	require.NoError(t, err)
	par, err := New(KindParametric, WithHorizon(1e12))
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(7, 11))
	compared := 0
	for i := 0; i < 2000; i++ {
		a, b := randomTrajectory(rng), randomTrajectory(rng)
		pa, okA, err := alg.Intersect(a, b)
		require.NoError(t, err)
		pb, okB, err := par.Intersect(a, b)
		require.NoError(t, err)
		require.Equal(t, okA, okB, "presence differs for %v / %v", a, b)
		if okA {
			compared++
			assert.True(t, Agree(pa, pb, 1e-6), "points differ for %v / %v: %+v vs %+v", a, b, pa, pb)
		}
	}
	assert.Greater(t, compared, 100, "too few forward crossings to be meaningful")
}

func TestAlgebraic_RejectsVertical(t *testing.T) {
	t.Parallel()
	s, err := New(KindAlgebraic)
	require.NoError(t, err)

	vertical := tr(3, 0, 0, 0, 1, 0)
	_, _, err = s.Intersect(tr(0, 0, 0, 1, 1, 0), vertical)
	var de *trajectory.DegenerateTrajectoryError
	require.True(t, errors.As(err, &de), "got %v", err)
	assert.Equal(t, trajectory.ReasonZeroXVelocity, de.Reason)

	_, _, err = s.Intersect(tr(0, 0, 0, 0, 0, 1), vertical)
	require.True(t, errors.As(err, &de))
	assert.Equal(t, trajectory.ReasonZeroVelocity, de.Reason)
}

func TestParametric_HandlesVertical(t *testing.T) {
	t.Parallel()
	s, err := New(KindParametric, WithWindow(0, 10))
	require.NoError(t, err)

	p, ok, err := s.Intersect(tr(0, 0, 0, 1, 1, 0), tr(3, 0, 0, 0, 1, 0))
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 3.0, p.X, 1e-9)
	assert.InDelta(t, 3.0, p.Y, 1e-9)

	// Vertical moving down, away from the crossing.
	_, ok, err = s.Intersect(tr(0, 0, 0, 1, 1, 0), tr(3, 0, 0, 0, -1, 0))
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = s.Intersect(tr(0, 0, 0, 1, 1, 0), tr(3, 0, 0, 0, 0, 9))
	assert.True(t, trajectory.IsDegenerate(err))
}

func TestParametric_ShortHorizonMissesCrossing(t *testing.T) {
	t.Parallel()
	a := tr(0, 0, 0, 1, 1, 0)
	b := tr(10, 0, 0, 0, 1, 0) // crosses a at (10, 10), t = 10

	short, err := New(KindParametric, WithHorizon(5))
	require.NoError(t, err)
	_, ok, err := short.Intersect(a, b)
	require.NoError(t, err)
	assert.False(t, ok, "crossing beyond the horizon must be missed")

	derived, err := New(KindParametric, WithWindow(0, 20))
	require.NoError(t, err)
	_, ok, err = derived.Intersect(a, b)
	require.NoError(t, err)
	assert.True(t, ok, "window-derived horizon must reach the crossing")
}

func TestAlgebraic_Epsilon(t *testing.T) {
	t.Parallel()
	// Gradients 1/1000 and 1/999 differ by about 1e-6.
	a := tr(0, 0, 0, 1000, 1, 0)
	b := tr(0, 10, 0, 999, 1, 0)

	def, err := New(KindAlgebraic)
	require.NoError(t, err)
	_, _, err = def.Intersect(a, b)
	require.NoError(t, err)

	coarse, err := New(KindAlgebraic, WithEpsilon(1e-3))
	require.NoError(t, err)
	_, ok, err := coarse.Intersect(a, b)
	require.NoError(t, err)
	assert.False(t, ok, "determinant below epsilon must be treated as parallel")
}

func TestDeriveHorizon(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		tr        trajectory.Trajectory
		low, high float64
		want      float64
	}{
		{"x bound tighter", tr(19, 13, 0, -2, 1, 0), 7, 27, 6},
		{"rounds up", tr(20, 25, 0, -2, -2, 0), 7, 27, 7},
		{"vertical uses y", tr(3, 0, 0, 0, 2, 0), 0, 10, 5},
		{"at least one", tr(5, 5, 0, 100, 100, 0), 0, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveHorizon(tt.tr, trajectory.PlaneXY, tt.low, tt.high))
		})
	}
}

func TestDeriveHorizon_ClampedToExactRange(t *testing.T) {
	t.Parallel()
	h := DeriveHorizon(tr(0, 0, 0, 1000, 1, 0), trajectory.PlaneXY, -1e300, 1e300)
	assert.LessOrEqual(t, h*1000, float64(maxExactFloat))
}

func TestParseKind(t *testing.T) {
	t.Parallel()
	k, err := ParseKind("Algebraic")
	require.NoError(t, err)
	assert.Equal(t, KindAlgebraic, k)
	assert.True(t, k.RequiresNonZeroX())

	k, err = ParseKind("parametric")
	require.NoError(t, err)
	assert.Equal(t, KindParametric, k)
	assert.False(t, k.RequiresNonZeroX())

	_, err = ParseKind("newton")
	assert.ErrorIs(t, err, ErrUnknownSolver)

	_, err = New(Kind(42))
	assert.ErrorIs(t, err, ErrUnknownSolver)
}

func TestPlaneOption(t *testing.T) {
	t.Parallel()
	// In XZ these two cross at (2, 2); in XY they are parallel.
	a := tr(0, 0, 0, 1, 0, 1)
	b := tr(4, 0, 0, -1, 0, 1)
	for _, kind := range []Kind{KindAlgebraic, KindParametric} {
		xy, err := New(kind)
		require.NoError(t, err)
		_, ok, err := xy.Intersect(a, b)
		require.NoError(t, err)
		assert.False(t, ok, kind.String())

		xz, err := New(kind, WithPlane(trajectory.PlaneXZ))
		require.NoError(t, err)
		assert.Equal(t, trajectory.PlaneXZ, xz.Plane())
		p, ok, err := xz.Intersect(a, b)
		require.NoError(t, err)
		require.True(t, ok, kind.String())
		assert.InDelta(t, 2.0, p.X, 1e-9)
		assert.InDelta(t, 2.0, p.Y, 1e-9)
	}
}

// randomTrajectory returns a trajectory with non-zero x and y velocity.
func randomTrajectory(rng *rand.Rand) trajectory.Trajectory {
	nz := func() int64 {
		v := rng.Int64N(199) - 99
		if v == 0 {
			v = 1
		}
		return v
	}
	return tr(rng.Int64N(2001)-1000, rng.Int64N(2001)-1000, rng.Int64N(2001)-1000, nz(), nz(), rng.Int64N(21)-10)
}
