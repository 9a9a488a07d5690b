// Package fixture describes the physical hardware of a pipe-mounted shelf.
//
// A [Geometry] holds the fixed dimensions of the shelf, the two support
// pipes, the clamp brackets and their fasteners. It is immutable for the
// duration of a session and validated once with [Geometry.Validate]; every
// downstream package assumes a validated geometry.
//
// A [Spacing] carries the user-driven part of the problem: the pipe-to-pipe
// distance at the front and back of the shelf, the convention that distance
// is measured in, and the required nut-to-pipe air gap.
//
// All lengths are in inches.
//
//	g := fixture.Default()
//	s := fixture.SharedSpacing(28.96875, fixture.ConventionCenter, g.NutGap.Target)
//	if err := errors.Join(g.Validate(), s.Validate()); err != nil {
//	    return err
//	}
package fixture
