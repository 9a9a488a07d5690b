package scene

import (
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/matzehuels/shelfmount/pkg/fixture"
	"github.com/matzehuels/shelfmount/pkg/placement"
	"github.com/matzehuels/shelfmount/pkg/solver"
)

// Front draws the front bracket pair as seen from the front edge of the shelf.
// Y grows downward from the top of the pipes: the bracket and screw heads sit
// above zero, the pipe sections and hex cap nuts below.
func Front(plan placement.Plan, opts Options) Scene {
	g := plan.Geometry
	pp := plan.Front
	r := g.Pipe.Radius()
	t := g.Bracket.Thickness

	sc := Scene{
		View:   ViewFront,
		Title:  "Front view",
		Styles: drawingStyles(opts.ShelfOpacity),
	}

	var boxes []sdf.Box2
	for _, side := range solver.Sides {
		x := plan.PipeX(fixture.Front, side)
		sc.add(circle("pipe", v2.Vec{X: x, Y: r}, r))
		sc.add(line("centerline", x, 0, x, g.Pipe.Diameter))
		boxes = append(boxes, sdf.Box2{Min: v2.Vec{X: x - r}, Max: v2.Vec{X: x + r, Y: g.Pipe.Diameter}})
	}

	class := "bracket"
	if pp.Result.HasConflict {
		class = "conflict"
	}
	head := g.Fastener
	for _, b := range plan.Brackets() {
		if b.Position != fixture.Front {
			continue
		}
		bracket := rectXYWH(class, b.Rect.Min.X, -t, g.Bracket.Width, t)
		sc.add(bracket)
		boxes = append(boxes, bracket.Rect)

		hole := b.OuterHoles()[0].X
		sc.add(rectXYWH("head", hole-head.ScrewHeadDiameter/2, -t-head.ScrewHeadHeight, head.ScrewHeadDiameter, head.ScrewHeadHeight))
		boxes = append(boxes, nut(&sc, hole, head))
	}

	shelf := plan.ShelfRect()
	sh := rectXYWH("shelf", shelf.Min.X, -t-g.Shelf.Thickness, g.Shelf.Width, g.Shelf.Thickness)
	sc.add(sh)
	boxes = append(boxes, sh.Rect)

	sc.Span = union(boxes...)
	sc.Reference = sc.Span.Min
	return sc
}

// nut draws a hex cap nut hanging from y = 0 under the hole at x: a hex body
// as tall as the across-flats size, then a domed cap.
func nut(sc *Scene, x float64, f fixture.Fastener) sdf.Box2 {
	w := f.NutAcrossCorners
	body := f.NutAcrossFlats
	dome := f.NutHeight - body
	left := x - w/2

	sc.add(rectXYWH("nut", left, 0, w, body))
	inset := w * 0.15
	sc.add(
		line("nut-detail", left+inset, 0, left+inset, body),
		line("nut-detail", left+w-inset, 0, left+w-inset, body),
	)
	if dome > 0 {
		sc.add(polygon("nut", domePoints(left, body, w, dome)))
		sc.add(circle("highlight", v2.Vec{X: x, Y: body + dome*0.6}, w*0.2))
	}
	return sdf.Box2{Min: v2.Vec{X: left}, Max: v2.Vec{X: left + w, Y: f.NutHeight}}
}

// domePoints approximates the acorn cap: straight sides for the first 30% of
// its height, then two quadratic curves meeting at the bottom centre.
func domePoints(left, top, w, h float64) []v2.Vec {
	const steps = 8
	shoulder := top + h*0.3
	bottom := top + h
	pts := []v2.Vec{{X: left, Y: top}, {X: left, Y: shoulder}}
	quad := func(p0, p1, p2 v2.Vec) {
		for i := 1; i <= steps; i++ {
			t := float64(i) / steps
			a, b, c := (1-t)*(1-t), 2*(1-t)*t, t*t
			pts = append(pts, v2.Vec{X: a*p0.X + b*p1.X + c*p2.X, Y: a*p0.Y + b*p1.Y + c*p2.Y})
		}
	}
	mid := v2.Vec{X: left + w/2, Y: bottom}
	quad(v2.Vec{X: left, Y: shoulder}, v2.Vec{X: left, Y: bottom}, mid)
	quad(mid, v2.Vec{X: left + w, Y: bottom}, v2.Vec{X: left + w, Y: shoulder})
	return append(pts, v2.Vec{X: left + w, Y: top})
}
