package trajectory

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Trajectory
	}{
		{
			name: "example spacing",
			in:   "19, 13, 30 @ -2,  1, -2",
			want: New(Vec3{19, 13, 30}, Vec3{-2, 1, -2}),
		},
		{
			name: "no spaces",
			in:   "1,2,3@4,5,6",
			want: New(Vec3{1, 2, 3}, Vec3{4, 5, 6}),
		},
		{
			name: "large magnitudes",
			in:   "262130794315133, 305267994111063, 163273807102793 @ 57, -252, 150",
			want: New(Vec3{262130794315133, 305267994111063, 163273807102793}, Vec3{57, -252, 150}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.in)
			if err != nil {
				t.Fatalf("ParseLine(%q) error: %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseLine(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseLine_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing separator", "1, 2, 3 4, 5, 6"},
		{"short position", "1, 2 @ 4, 5, 6"},
		{"long velocity", "1, 2, 3 @ 4, 5, 6, 7"},
		{"not a number", "1, x, 3 @ 4, 5, 6"},
		{"float value", "1.5, 2, 3 @ 4, 5, 6"},
		{"overflow", "99999999999999999999, 2, 3 @ 4, 5, 6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.in)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("ParseLine(%q) error = %v, want *ParseError", tt.in, err)
			}
		})
	}
}

func TestParseLine_OverflowWrapsStrconv(t *testing.T) {
	_, err := ParseLine("99999999999999999999, 2, 3 @ 4, 5, 6")
	if !errors.Is(err, strconv.ErrRange) {
		t.Errorf("expected error to wrap strconv.ErrRange, got %v", err)
	}
}

func TestParseReader(t *testing.T) {
	input := `# worked example
19, 13, 30 @ -2, 1, -2

18, 19, 22 @ -1, -1, -2
`
	got, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseReader error: %v", err)
	}
	want := []Trajectory{
		New(Vec3{19, 13, 30}, Vec3{-2, 1, -2}),
		New(Vec3{18, 19, 22}, Vec3{-1, -1, -2}),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseReader mismatch (-want +got):\n%s", diff)
	}
}

func TestParseReader_ReportsLineNumber(t *testing.T) {
	input := "19, 13, 30 @ -2, 1, -2\n\nbad line\n"
	_, err := ParseReader(strings.NewReader(input))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Line != 3 {
		t.Errorf("ParseError.Line = %d, want 3", pe.Line)
	}
}

func TestParseReader_Empty(t *testing.T) {
	_, err := ParseReader(strings.NewReader("\n# nothing\n"))
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestString_RoundTrip(t *testing.T) {
	tr := New(Vec3{-1, 2, 3}, Vec3{4, -5, 0})
	if got := tr.String(); got != "-1, 2, 3 @ 4, -5, 0" {
		t.Errorf("String() = %q", got)
	}
	back, err := ParseLine(tr.String())
	if err != nil {
		t.Fatalf("ParseLine(String()) error: %v", err)
	}
	if back != tr {
		t.Errorf("round trip = %v, want %v", back, tr)
	}
}

func TestProject(t *testing.T) {
	tr := New(Vec3{1, 2, 3}, Vec3{4, 5, 6})

	tests := []struct {
		plane          Plane
		ox, oy, dx, dy float64
	}{
		{PlaneXY, 1, 2, 4, 5},
		{PlaneXZ, 1, 3, 4, 6},
		{PlaneYZ, 2, 3, 5, 6},
	}
	for _, tt := range tests {
		t.Run(tt.plane.String(), func(t *testing.T) {
			r, err := tr.Project(tt.plane)
			if err != nil {
				t.Fatalf("Project error: %v", err)
			}
			if r.Origin.X != tt.ox || r.Origin.Y != tt.oy || r.Direction.X != tt.dx || r.Direction.Y != tt.dy {
				t.Errorf("Project(%s) = %+v", tt.plane, r)
			}
			at := r.At(2)
			if at.X != tt.ox+2*tt.dx || at.Y != tt.oy+2*tt.dy {
				t.Errorf("At(2) = %+v", at)
			}
		})
	}
}

func TestProject_ZeroInPlaneVelocity(t *testing.T) {
	// Moves only along Z, so it is stationary in the XY plane.
	tr := New(Vec3{1, 2, 3}, Vec3{0, 0, 7})
	_, err := tr.Project(PlaneXY)
	var de *DegenerateTrajectoryError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DegenerateTrajectoryError, got %v", err)
	}
	if de.Reason != ReasonZeroVelocity {
		t.Errorf("Reason = %q", de.Reason)
	}
	if !IsDegenerate(err) {
		t.Error("IsDegenerate returned false")
	}

	if _, err := tr.Project(PlaneXZ); err != nil {
		t.Errorf("Project(xz) should succeed, got %v", err)
	}
}

func TestParsePlane(t *testing.T) {
	for _, s := range []string{"", "xy", "XY", " xz ", "yz"} {
		if _, err := ParsePlane(s); err != nil {
			t.Errorf("ParsePlane(%q) error: %v", s, err)
		}
	}
	if _, err := ParsePlane("zz"); err == nil {
		t.Error("ParsePlane(zz) should fail")
	}
}

func TestValidateAndFilter(t *testing.T) {
	set := []Trajectory{
		New(Vec3{0, 0, 0}, Vec3{1, 1, 0}),
		New(Vec3{0, 0, 0}, Vec3{0, 3, 0}), // vertical
		New(Vec3{0, 0, 0}, Vec3{0, 0, 5}), // stationary in XY
	}

	if err := Validate(set[:2], PlaneXY, false); err != nil {
		t.Errorf("Validate without x requirement: %v", err)
	}

	err := Validate(set, PlaneXY, true)
	var de *DegenerateTrajectoryError
	if !errors.As(err, &de) {
		t.Fatalf("expected degeneracy, got %v", err)
	}
	if de.Index != 1 || de.Reason != ReasonZeroXVelocity {
		t.Errorf("got index %d reason %q, want 1 %q", de.Index, de.Reason, ReasonZeroXVelocity)
	}

	kept, rejected := Filter(set, PlaneXY, false)
	if len(kept) != 2 || len(rejected) != 1 {
		t.Fatalf("Filter kept %d rejected %d, want 2 and 1", len(kept), len(rejected))
	}
	if rejected[0].Index != 2 || rejected[0].Reason != ReasonZeroVelocity {
		t.Errorf("unexpected rejection %+v", rejected[0])
	}
}

func TestFingerprint(t *testing.T) {
	a, err := ParseReader(strings.NewReader("19, 13, 30 @ -2, 1, -2\n18, 19, 22 @ -1, -1, -2\n"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseReader(strings.NewReader("# same entities\n19,13,30@-2,1,-2\n\n18, 19, 22 @ -1, -1, -2\n"))
	if err != nil {
		t.Fatal(err)
	}

	fa, fb := Fingerprint(a), Fingerprint(b)
	if fa != fb {
		t.Errorf("Fingerprint differs for equivalent inputs: %s vs %s", fa, fb)
	}
	if len(fa) != 16 {
		t.Errorf("Fingerprint length = %d, want 16", len(fa))
	}

	swapped := []Trajectory{a[1], a[0]}
	if Fingerprint(swapped) == fa {
		t.Error("Fingerprint should depend on entity order")
	}
}
