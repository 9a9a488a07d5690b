// Package solver decides how far each bracket is shifted off its pipe's
// centreline.
//
// A bracket is clamped to a pipe and screwed to the underside of the shelf
// through its outer hole column. Shifting the bracket outward (away from the
// shelf midline) moves that outer hole past the shelf edge and the nut on it
// away from the pipe. Competing lower bounds on the shift come from the
// button-head screw margin and the nut-to-pipe air gap; the upper bound is the
// bracket's own hole offset, past which the inner hole would cross the
// bracket centreline.
//
// The active lower bounds are chosen by a [Policy]. [PolicyStandard] uses both
// bounds; [PolicyNutOnly] keeps only the nut bound.
//
// Infeasible input is not an error: [Solve] always returns a [Result] and
// marks HasConflict when the minimum shift exceeds the maximum, clamping the
// shift to the maximum. Geometry and spacing must be validated by the caller
// (see package fixture); the solver performs no validation of its own.
//
//	in := solver.Input{Geometry: fixture.Default(), Spacing: 28.96875,
//	    Convention: fixture.ConventionCenter, NutClearance: units.ToInches(1)}
//	res := solver.Solve(in)
//	if res.HasConflict {
//	    // surface a warning; res.Shift is still usable
//	}
package solver
