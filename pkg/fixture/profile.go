package fixture

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// HoleCentres returns the four hole centres relative to the bracket centre,
// with X across the shelf and Y along its depth. The order is outer-top,
// inner-top, outer-bottom, inner-bottom for a bracket on the left pipe.
func (b Bracket) HoleCentres() []v2.Vec {
	x := b.HoleOffset()
	yTop := b.Length/2 - b.Holes.Top
	yBottom := -(b.Length/2 - b.Holes.Bottom)
	return []v2.Vec{
		{X: -x, Y: yTop},
		{X: x, Y: yTop},
		{X: -x, Y: yBottom},
		{X: x, Y: yBottom},
	}
}

// Profile returns the bracket plate outline minus its four holes as a 2D
// signed distance field centred on the origin.
func (b Bracket) Profile() (sdf.SDF2, error) {
	plate := sdf.Box2D(v2.Vec{X: b.Width, Y: b.Length}, 0)

	var holes []sdf.SDF2
	for _, c := range b.HoleCentres() {
		hole, err := sdf.Circle2D(b.HoleDiameter / 2)
		if err != nil {
			return nil, fmt.Errorf("bracket hole: %w", err)
		}
		holes = append(holes, sdf.Transform2D(hole, sdf.Translate2d(c)))
	}
	return sdf.Difference2D(plate, sdf.Union2D(holes...)), nil
}
