package fixture

import (
	"math"

	errs "github.com/matzehuels/shelfmount/pkg/errors"
)

// Validate checks that every length is positive, that each hole centre lies
// inside the bracket, and that the left and right hole columns are symmetric.
// All problems are reported together as an INVALID_GEOMETRY validation error.
func (g Geometry) Validate() error {
	v := &errs.ValidationError{Code: errs.ErrCodeInvalidGeometry}

	v.Positive("shelf.width", g.Shelf.Width)
	v.Positive("shelf.depth", g.Shelf.Depth)
	v.Positive("shelf.thickness", g.Shelf.Thickness)

	v.Positive("pipe.diameter", g.Pipe.Diameter)
	v.Positive("pipe.length", g.Pipe.Length)
	v.NonNegative("pipe.overhang", g.Pipe.Overhang)

	b := g.Bracket
	v.Positive("bracket.width", b.Width)
	v.Positive("bracket.length", b.Length)
	v.Positive("bracket.thickness", b.Thickness)
	v.Positive("bracket.holes.left", b.Holes.Left)
	v.Positive("bracket.holes.right", b.Holes.Right)
	v.Positive("bracket.holes.top", b.Holes.Top)
	v.Positive("bracket.holes.bottom", b.Holes.Bottom)
	v.Positive("bracket.hole_diameter", b.HoleDiameter)
	v.Positive("bracket.edge_clearance", b.EdgeClearance)

	insideHalf := func(field string, inset, dim float64) {
		if inset > 0 && dim > 0 && inset >= dim/2 {
			v.Add(field, "inset %.5f must be less than half of %.5f", inset, dim)
		}
	}
	insideHalf("bracket.holes.left", b.Holes.Left, b.Width)
	insideHalf("bracket.holes.right", b.Holes.Right, b.Width)
	insideHalf("bracket.holes.top", b.Holes.Top, b.Length)
	insideHalf("bracket.holes.bottom", b.Holes.Bottom, b.Length)
	if math.Abs(b.Holes.Left-b.Holes.Right) > 1e-9 {
		v.Add("bracket.holes.right", "must equal holes.left (%.5f)", b.Holes.Left)
	}

	f := g.Fastener
	v.Positive("fastener.screw_head_diameter", f.ScrewHeadDiameter)
	v.Positive("fastener.screw_head_height", f.ScrewHeadHeight)
	v.Positive("fastener.nut_across_flats", f.NutAcrossFlats)
	v.Positive("fastener.nut_across_corners", f.NutAcrossCorners)
	v.Positive("fastener.nut_height", f.NutHeight)
	if f.NutAcrossFlats > 0 && f.NutAcrossCorners > 0 && f.NutAcrossCorners < f.NutAcrossFlats {
		v.Add("fastener.nut_across_corners", "must not be smaller than nut_across_flats")
	}

	v.Positive("nut_gap.target", g.NutGap.Target)
	v.Positive("nut_gap.minimum", g.NutGap.Minimum)

	return v.Err()
}

// Validate checks that both spacings are positive, the clearance is not
// negative and the convention is known.
func (s Spacing) Validate() error {
	v := &errs.ValidationError{Code: errs.ErrCodeInvalidSpacing}
	v.Positive("spacing.front", s.Front)
	v.Positive("spacing.back", s.Back)
	v.NonNegative("spacing.nut_clearance", s.NutClearance)
	switch s.Convention {
	case "", ConventionCenter, ConventionInner:
	default:
		v.Add("spacing.convention", "unknown convention %q", s.Convention)
	}
	return v.Err()
}
