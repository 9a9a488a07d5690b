package scene

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/matzehuels/shelfmount/pkg/fixture"
	"github.com/matzehuels/shelfmount/pkg/placement"
	"github.com/matzehuels/shelfmount/pkg/units"
)

// Letter is the US letter page size in inches.
var Letter = v2.Vec{X: 8.5, Y: 11}

// Template draws a printable drilling template for the back corners of the
// shelf. The same sheet rotated 180° marks the front corners. label is
// printed in the title when not empty (typically a shelf number).
//
// Coordinates are page inches from the top-left corner.
func Template(plan placement.Plan, label string) Scene {
	g := plan.Geometry
	sc := Scene{
		View:   ViewTemplate,
		Title:  "Bracket Drilling Template",
		Page:   Letter,
		Span:   pageBox(Letter),
		Styles: templateStyles(),
	}
	if label != "" {
		sc.Title = fmt.Sprintf("Shelf %s Bracket Drilling Template", label)
	}
	cx := Letter.X / 2

	scaleSquare(&sc, Letter.X-1.8, Letter.Y-1.8, "info-text", `1" x 1" (verify scale)`, 8)

	sc.add(text("label", cx, 0.5, 14, AnchorMiddle, sc.Title))
	sc.add(text("label", cx, 0.5+pt(16), 11, AnchorMiddle, spacingCaption(plan.Spacing)))

	back := plan.Back
	m := back.Measurements
	corner(&sc, g.Bracket, false, cx-3.2, 1.6, m.BracketEdgeFromShelfEdge, plan.Depth.BackOffset)
	corner(&sc, g.Bracket, true, cx+3.2, 1.6, m.BracketEdgeFromShelfEdge, plan.Depth.BackOffset)

	y := 7.5
	info := []string{
		"Bracket outer edge from shelf edge: " + units.FormatWithFraction(m.BracketEdgeFromShelfEdge),
		"Inner drill hole from shelf edge: " + units.FormatWithFraction(m.InnerHoleFromShelfEdge),
	}
	if !plan.Spacing.Shared() {
		fm := plan.Front.Measurements
		info = append(info,
			"Front corners: bracket edge "+units.FormatWithFraction(fm.BracketEdgeFromShelfEdge)+
				", inner hole "+units.FormatWithFraction(fm.InnerHoleFromShelfEdge))
	}
	info = append(info, fmt.Sprintf(`Pipe Distance: %.5f" | Nut-Pipe Gap: %s`, plan.Spacing.Front, units.FormatMm(plan.Spacing.NutClearance, 2)))
	sc.add(text("label", cx, y, 11, AnchorMiddle, "Key Measurements"))
	for i, s := range info {
		sc.add(text("info-text", cx, y+pt(18+14*float64(i)), 8, AnchorMiddle, s))
	}
	for i, w := range plan.Warnings() {
		sc.add(text("warning-text", cx, y+pt(18+14*float64(len(info)+i)), 8, AnchorMiddle, "WARNING: "+w.Message))
	}

	y = 8.8
	steps := []string{
		"1. Print at 100% scale (no fit-to-page) - measure the 1\" square to verify",
		"2. Align corner mark with shelf corner, use LEFT for left corners, RIGHT for right corners",
		"3. Mark drill hole centers through the crosshairs",
		"4. Rotate paper 180° to mark front corners (same left/right orientation)",
	}
	sc.add(text("label", cx, y, 11, AnchorMiddle, "Instructions"))
	for i, s := range steps {
		sc.add(text("info-text", cx, y+pt(16+14*float64(i)), 8, AnchorMiddle, s))
	}
	return sc
}

func spacingCaption(s fixture.Spacing) string {
	if s.Shared() {
		return fmt.Sprintf("Pipe Distance: %g, %s", s.Front, units.FormatWithFraction(s.Front))
	}
	return fmt.Sprintf("Pipe Distance: front %s, back %s", units.FormatWithFraction(s.Front), units.FormatWithFraction(s.Back))
}

// corner draws one shelf corner at (x, y) with the bracket outline, its four
// drill holes and the edge dimension. Right corners are mirrored.
func corner(sc *Scene, b fixture.Bracket, right bool, x, y, edge, inset float64) {
	dir := 1.0
	name, anchor, labelX := "LEFT CORNER", AnchorStart, x+0.2
	if right {
		dir = -1
		name, anchor, labelX = "RIGHT CORNER", AnchorEnd, x-0.2
	}
	sc.add(text("label", labelX, y-pt(24), 11, anchor, name))

	board := math.Max(3, inset+b.Length+0.5)
	sc.add(
		line("corner-mark", x, y, x+dir*3, y),
		line("corner-mark", x, y, x, y+board),
	)

	outer := x - dir*edge
	inner := outer + dir*b.Width
	bx := math.Min(outer, inner)
	by := y + inset
	sc.add(rectXYWH("bracket", bx, by, b.Width, b.Length))

	for _, h := range []v2.Vec{
		{X: bx + b.Holes.Left, Y: by + b.Holes.Top},
		{X: bx + b.Width - b.Holes.Right, Y: by + b.Holes.Top},
		{X: bx + b.Holes.Left, Y: by + b.Length - b.Holes.Bottom},
		{X: bx + b.Width - b.Holes.Right, Y: by + b.Length - b.Holes.Bottom},
	} {
		drillHole(sc, h, b.HoleDiameter/2)
	}

	dimY := by + b.Length + pt(35)
	dimension(sc, x, dimY, outer, units.FormatWithFraction(edge))
}

// drillHole draws a hole outline with crosshairs reaching 6 pt past it.
func drillHole(sc *Scene, c v2.Vec, r float64) {
	l := r + pt(6)
	sc.add(
		circle("drill-hole", c, r),
		line("crosshair", c.X-l, c.Y, c.X+l, c.Y),
		line("crosshair", c.X, c.Y-l, c.X, c.Y+l),
	)
}

// dimension draws a horizontal dimension line with end ticks and a label.
func dimension(sc *Scene, x1, y, x2 float64, label string) {
	tick := pt(4)
	sc.add(
		line("dimension-line", x1, y, x2, y),
		line("dimension-line", x1, y-tick, x1, y+tick),
		line("dimension-line", x2, y-tick, x2, y+tick),
		text("dimension-text", (x1+x2)/2, y+pt(14), 9, AnchorMiddle, label),
	)
}

func scaleSquare(sc *Scene, x, y float64, class, caption string, size float64) {
	sc.add(
		rectXYWH("scale-box", x, y, 1, 1),
		text(class, x+0.5, y+1+pt(12), size, AnchorMiddle, caption),
	)
}

func pageBox(page v2.Vec) sdf.Box2 { return sdf.Box2{Max: page} }
