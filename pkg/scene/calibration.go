package scene

import (
	"fmt"
	"math"
	"strings"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/matzehuels/shelfmount/pkg/fixture"
	"github.com/matzehuels/shelfmount/pkg/units"
)

// CalibrationSteps are the hole offsets, in millimetres, marked around every
// nominal hole position on the calibration sheet.
var CalibrationSteps = []float64{-1.5, -1.0, -0.5, 0, 0.5, 1.0, 1.5}

const (
	blockWidth  = 3.45
	blockHeight = 3.3
)

// Calibration draws a letter-size sheet with four bracket outlines (blocks A
// to D). Around each nominal hole centre a 7x7 grid of crosshairs marks
// offsets of -1.5 to +1.5 mm so a real bracket laid on the outline shows
// where its holes actually are. The zero crosshair is drawn in red.
func Calibration(g fixture.Geometry) Scene {
	sc := Scene{
		View:   ViewCalibration,
		Title:  "Bracket Hole Calibration Sheet",
		Page:   Letter,
		Span:   pageBox(Letter),
		Styles: calibrationStyles(),
	}
	cx := Letter.X / 2

	scaleSquare(&sc, 0.75, Letter.Y-1.75, "instruction", `1" square`, 9)
	sc.add(
		text("title", cx, 0.6, 16, AnchorMiddle, sc.Title),
		text("subtitle", cx, 0.95, 10, AnchorMiddle, "Align bracket edges with the outlines below, then note which crosshair lines up with each hole"),
	)

	intro := []string{
		"Columns run from the nearest edge toward the center. Rows run from the nearest edge inward as well.",
		`Each step between crosshairs is 0.5mm (about 0.020") and represents the hole center moving toward (+) or away (-) from the bracket edge.`,
		"Count how many steps from the outermost crosshair to match a hole center, then use the legend to read the mm offset. Red crosshairs mark the current 0mm baseline.",
	}
	for i, s := range intro {
		sc.add(text("instruction", cx, 1.2+pt(12*float64(i)), 9, AnchorMiddle, s))
	}

	gapX, gapY := 0.35, 0.3
	startX := (Letter.X - (2*blockWidth + gapX)) / 2
	startY := 1.2
	for i, label := range []string{"A", "B", "C", "D"} {
		row, col := i/2, i%2
		x := startX + float64(col)*(blockWidth+gapX)
		y := startY + float64(row)*(blockHeight+gapY)
		calibrationBlock(&sc, g.Bracket, x, y, label)
	}

	legendY := startY + 2*blockHeight + gapY + 0.3
	legend(&sc, 0.7, legendY)
	notesTable(&sc, 0.7, legendY+1.2, Letter.X-1.4, 1.25)
	return sc
}

func calibrationBlock(sc *Scene, b fixture.Bracket, x, y float64, label string) {
	labelHeight := pt(18)
	bx := x + (blockWidth-b.Width)/2
	by := y + labelHeight + 0.4

	sc.add(
		rectXYWH("block", x, y, blockWidth, blockHeight),
		text("block-label", x+blockWidth/2, y+labelHeight, 12, AnchorMiddle, "Block "+label),
		rectXYWH("bracket", bx, by, b.Width, b.Length),
	)

	type hole struct {
		c        v2.Vec
		fromLeft bool
		fromTop  bool
	}
	holes := []hole{
		{v2.Vec{X: bx + b.Holes.Left, Y: by + b.Holes.Top}, true, true},
		{v2.Vec{X: bx + b.Width - b.Holes.Right, Y: by + b.Holes.Top}, false, true},
		{v2.Vec{X: bx + b.Holes.Left, Y: by + b.Length - b.Holes.Bottom}, true, false},
		{v2.Vec{X: bx + b.Width - b.Holes.Right, Y: by + b.Length - b.Holes.Bottom}, false, false},
	}
	cross := 0.04
	for _, h := range holes {
		for _, colMm := range CalibrationSteps {
			for _, rowMm := range CalibrationSteps {
				dx, dy := units.ToInches(colMm), units.ToInches(rowMm)
				if !h.fromLeft {
					dx = -dx
				}
				if !h.fromTop {
					dy = -dy
				}
				c := v2.Vec{X: h.c.X + dx, Y: h.c.Y + dy}
				class := "crosshair"
				if math.Abs(colMm) < 1e-6 && math.Abs(rowMm) < 1e-6 {
					class = "crosshair-0"
				}
				sc.add(
					line(class, c.X-cross, c.Y, c.X+cross, c.Y),
					line(class, c.X, c.Y-cross, c.X, c.Y+cross),
				)
			}
		}
	}
}

func legend(sc *Scene, x, y float64) {
	steps := make([]string, len(CalibrationSteps))
	for i, mm := range CalibrationSteps {
		steps[i] = fmt.Sprintf("%d=%.1fmm", i+1, mm)
	}
	sc.add(
		text("legend-label", x, y, 10, AnchorStart, "Legend"),
		text("legend-text", x, y+pt(16), 10, AnchorStart, "Column / Row index: "+strings.Join(steps, "   ")),
	)
	for i, s := range []string{
		"Count columns from the bracket edge toward the center. Column #1 is the outermost crosshair.",
		"Rows follow the same numbering. For bottom holes count row #1 starting closest to the bottom edge.",
		"Positive values move the hole inward toward the center of the bracket.",
	} {
		sc.add(text("instruction", x, y+pt(32+12*float64(i)), 9, AnchorStart, s))
	}
}

func notesTable(sc *Scene, x, y, w, h float64) {
	const rows = 5
	cols := []float64{0.15, 0.2, 0.2, 0.45}
	rowH := h / rows

	sc.add(rectXYWH("notes-table", x, y, w, h))
	for i := 1; i < rows; i++ {
		ly := y + float64(i)*rowH
		sc.add(line("notes-table", x, ly, x+w, ly))
	}
	off := x
	for _, c := range cols[:len(cols)-1] {
		off += w * c
		sc.add(line("notes-table", off, y, off, y+h))
	}

	off = x
	for i, hdr := range []string{"Hole", "Horizontal mm", "Vertical mm", "Notes"} {
		sc.add(text("notes-text", off+w*cols[i]/2, y+pt(12), 9, AnchorMiddle, hdr))
		off += w * cols[i]
	}
	for i, name := range []string{"Top Left", "Top Right", "Bottom Left", "Bottom Right"} {
		sc.add(text("notes-text", x+w*cols[0]/2, y+float64(i+1)*rowH+pt(12), 9, AnchorMiddle, name))
	}
}
