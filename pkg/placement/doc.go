// Package placement combines the solver and the depth rule into a complete
// mounting plan for one shelf.
//
// [Compute] validates the geometry and spacing, solves the back and front
// positions independently (pipes need not be parallel), places the brackets
// along the shelf depth, runs the per-side clearance checks and derives the
// measurements a person needs at the drill: how far the bracket's outer edge
// and inner hole sit from the shelf edge.
//
// Plans are recomputed from scratch for every input change. The returned
// [Plan] is a value and is safe to share between goroutines.
package placement
