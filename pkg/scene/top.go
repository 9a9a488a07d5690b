package scene

import (
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/matzehuels/shelfmount/pkg/fixture"
	"github.com/matzehuels/shelfmount/pkg/placement"
	"github.com/matzehuels/shelfmount/pkg/solver"
	"github.com/matzehuels/shelfmount/pkg/units"
)

// socketRadius is the hex socket drawn in a button head.
var socketRadius = units.ToInches(1.5)

// Options adjust the drawing views.
type Options struct {
	// ShelfOpacity dims the shelf so the brackets beneath show through.
	// Zero means opaque.
	ShelfOpacity float64
}

// Top draws the shelf from above. Pipes run along the depth axis under the
// shelf; the shelf is drawn last so it covers the parts of the brackets that
// sit beneath it.
func Top(plan placement.Plan, opts Options) Scene {
	g := plan.Geometry
	r := g.Pipe.Radius()
	y0 := -g.Pipe.Overhang
	y1 := y0 + g.Pipe.Length

	sc := Scene{
		View:   ViewTop,
		Title:  "Top view",
		Styles: drawingStyles(opts.ShelfOpacity),
	}

	backX := plan.PipeX(fixture.Back, solver.Right)
	frontX := plan.PipeX(fixture.Front, solver.Right)
	sc.add(rectXYWH("pipe", -r, y0, g.Pipe.Diameter, g.Pipe.Length))
	if backX == frontX {
		sc.add(rectXYWH("pipe", backX-r, y0, g.Pipe.Diameter, g.Pipe.Length))
	} else {
		sc.add(polygon("pipe", []v2.Vec{
			{X: backX - r, Y: y0}, {X: backX + r, Y: y0},
			{X: frontX + r, Y: y1}, {X: frontX - r, Y: y1},
		}))
	}
	sc.add(line("centerline", 0, y0, 0, y1), line("centerline", backX, y0, frontX, y1))

	boxes := []sdf.Box2{
		{Min: v2.Vec{X: -r, Y: y0}, Max: v2.Vec{X: r, Y: y1}},
		{Min: v2.Vec{X: backX - r, Y: y0}, Max: v2.Vec{X: backX + r, Y: y1}},
		{Min: v2.Vec{X: frontX - r, Y: y0}, Max: v2.Vec{X: frontX + r, Y: y1}},
	}

	headR := g.Fastener.ScrewHeadDiameter / 2
	holeR := g.Bracket.HoleDiameter / 2
	for _, b := range plan.Brackets() {
		class := "bracket"
		if plan.At(b.Position).Result.HasConflict {
			class = "conflict"
		}
		sc.add(rect(class, b.Rect))
		for _, h := range b.Holes {
			sc.add(circle("hole", h, holeR))
		}
		for _, h := range b.OuterHoles() {
			sc.add(circle("head", h, headR), hexagon("socket", h, socketRadius))
		}
		boxes = append(boxes, b.Rect)
	}

	shelf := plan.ShelfRect()
	sc.add(rect("shelf", shelf))
	boxes = append(boxes, shelf)

	sc.Span = union(boxes...)
	sc.Reference = sc.Span.Min
	return sc
}
