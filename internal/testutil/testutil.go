// Package testutil holds the worked-example fixture and small assertion
// helpers shared by the package tests.
package testutil

import (
	"strings"
	"testing"

	"github.com/banshee-data/crosspath/internal/trajectory"
)

// ExampleInput is the five-entity worked example. With the window
// [7, 27] exactly two pairs cross inside it.
const ExampleInput = `19, 13, 30 @ -2,  1, -2
18, 19, 22 @ -1, -1, -2
20, 25, 34 @ -2, -2, -4
12, 31, 28 @ -1, -2, -1
20, 19, 15 @  1, -5, -3
`

// ExampleWindowLow and ExampleWindowHigh bound the worked example window.
const (
	ExampleWindowLow  = 7
	ExampleWindowHigh = 27
)

// ExampleTrajectories parses ExampleInput.
func ExampleTrajectories(t *testing.T) []trajectory.Trajectory {
	t.Helper()
	set, err := trajectory.ParseReader(strings.NewReader(ExampleInput))
	AssertNoError(t, err)
	return set
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertCount checks a qualifying-pair count.
func AssertCount(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("count = %d, want %d", got, want)
	}
}
