package fixture

import "github.com/matzehuels/shelfmount/pkg/units"

// DefaultSpacing is the reference centre-to-centre pipe distance.
const DefaultSpacing = 28.96875

func mm(v float64) float64 { return units.ToInches(v) }

// Default returns the reference hardware: a 30 x 12 in shelf on 1.0743 in
// pipe with 38 x 60 mm brackets, M4 ISO 7380 button-head screws and M4 brass
// hex cap nuts.
func Default() Geometry {
	return Geometry{
		Shelf: Shelf{Width: 30, Depth: 12, Thickness: 1},
		Pipe:  Pipe{Diameter: 1.0743, Length: 13, Overhang: 0.5},
		Bracket: Bracket{
			Width:         mm(38),
			Length:        mm(60),
			Thickness:     mm(1.5),
			Holes:         HoleInsets{Left: mm(9), Right: mm(9), Top: mm(9), Bottom: mm(9)},
			HoleDiameter:  mm(4.5),
			EdgeClearance: 1.0 / 16,
		},
		Fastener: Fastener{
			ScrewHeadDiameter: mm(7.6),
			ScrewHeadHeight:   mm(2.2),
			NutAcrossFlats:    mm(4.9),
			NutAcrossCorners:  mm(7.9),
			NutHeight:         mm(9.3),
		},
		NutGap: NutGap{Target: mm(1), Minimum: mm(1)},
	}
}

// DefaultSpacingInput returns the reference spacing with the target nut gap.
func DefaultSpacingInput() Spacing {
	return SharedSpacing(DefaultSpacing, ConventionCenter, Default().NutGap.Target)
}
