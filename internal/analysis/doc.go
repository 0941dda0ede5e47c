// Package analysis runs the pairwise crossing count over an entity set:
// every unordered pair is handed to an intersect.Solver, the resulting
// point is tested against an inclusive square Window, and qualifying
// pairs are summed.
//
// Per-pair evaluation is a pure function of the pair, so CountParallel
// fans rows of the pair triangle out to workers and sums their partial
// counts without any shared mutable state. Count and CountParallel give
// identical results for the same input.
//
// Dependency rule: no I/O and no SQL here. Reading input, recording runs
// and rendering reports belong to the driver and its helper packages.
package analysis
