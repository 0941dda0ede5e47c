package analysis

import (
	"iter"

	"github.com/banshee-data/crosspath/internal/trajectory"
)

// Pairs yields every unordered index pair (i, j) with i < j exactly once,
// row by row. The sequence is finite and deterministic for a given set
// length.
func Pairs(set []trajectory.Trajectory) iter.Seq2[int, int] {
	n := len(set)
	return func(yield func(int, int) bool) {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if !yield(i, j) {
					return
				}
			}
		}
	}
}

// PairCount returns n*(n-1)/2.
func PairCount(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}
