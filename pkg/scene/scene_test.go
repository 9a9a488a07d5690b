package scene

import (
	"math"
	"strings"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/matzehuels/shelfmount/pkg/fixture"
	"github.com/matzehuels/shelfmount/pkg/placement"
	"github.com/matzehuels/shelfmount/pkg/projection"
)

func testPlan(t *testing.T, s fixture.Spacing) placement.Plan {
	t.Helper()
	plan, err := placement.Compute(fixture.Default(), s, placement.Options{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return plan
}

func count(sc Scene, class string) int {
	n := 0
	for _, s := range sc.Shapes {
		if s.Class == class {
			n++
		}
	}
	return n
}

func TestTop(t *testing.T) {
	sc := Top(testPlan(t, fixture.DefaultSpacingInput()), Options{ShelfOpacity: 0.5})

	tests := []struct {
		class string
		want  int
	}{
		{"pipe", 2},
		{"centerline", 2},
		{"bracket", 4},
		{"hole", 16},
		{"head", 8},
		{"socket", 8},
		{"shelf", 1},
	}
	for _, tt := range tests {
		if got := count(sc, tt.class); got != tt.want {
			t.Errorf("%s: got %d shapes, want %d", tt.class, got, tt.want)
		}
	}
	if sc.Shapes[len(sc.Shapes)-1].Class != "shelf" {
		t.Error("shelf should be drawn last")
	}
	if sc.Styles["shelf"].Opacity != 0.5 {
		t.Errorf("shelf opacity = %v", sc.Styles["shelf"].Opacity)
	}
	for _, s := range sc.Shapes {
		if s.Kind == KindRect {
			if s.Rect.Min.X < sc.Span.Min.X-1e-9 || s.Rect.Max.X > sc.Span.Max.X+1e-9 {
				t.Errorf("%s rect %v outside span %v", s.Class, s.Rect, sc.Span)
			}
		}
	}
}

func TestTopNonParallelPipes(t *testing.T) {
	s := fixture.DefaultSpacingInput()
	s.Back = 29.2
	sc := Top(testPlan(t, s), Options{})
	polys := 0
	for _, sh := range sc.Shapes {
		if sh.Class == "pipe" && sh.Kind == KindPolygon {
			polys++
		}
	}
	if polys != 1 {
		t.Errorf("got %d slanted pipes, want 1", polys)
	}
}

func TestTopMarksConflict(t *testing.T) {
	s := fixture.DefaultSpacingInput()
	s.NutClearance = 0.5
	sc := Top(testPlan(t, s), Options{})
	if got := count(sc, "conflict"); got != 4 {
		t.Errorf("conflict brackets = %d, want 4", got)
	}
}

func TestFront(t *testing.T) {
	plan := testPlan(t, fixture.DefaultSpacingInput())
	sc := Front(plan, Options{})
	if got := count(sc, "pipe"); got != 2 {
		t.Errorf("pipes = %d", got)
	}
	if got := count(sc, "bracket"); got != 2 {
		t.Errorf("brackets = %d", got)
	}
	if got := count(sc, "head"); got != 2 {
		t.Errorf("heads = %d", got)
	}
	// hex body plus dome per nut
	if got := count(sc, "nut"); got != 4 {
		t.Errorf("nut shapes = %d", got)
	}

	g := plan.Geometry
	wantTop := -g.Bracket.Thickness - g.Shelf.Thickness
	if math.Abs(sc.Span.Min.Y-wantTop) > 1e-12 {
		t.Errorf("span top = %v, want %v", sc.Span.Min.Y, wantTop)
	}
	wantBottom := math.Max(g.Pipe.Diameter, g.Fastener.NutHeight)
	if math.Abs(sc.Span.Max.Y-wantBottom) > 1e-12 {
		t.Errorf("span bottom = %v, want %v", sc.Span.Max.Y, wantBottom)
	}
}

func TestDomePoints(t *testing.T) {
	pts := domePoints(0, 1, 2, 1)
	last := pts[len(pts)-1]
	if pts[0] != (v2.Vec{X: 0, Y: 1}) || last != (v2.Vec{X: 2, Y: 1}) {
		t.Errorf("dome ends %v %v", pts[0], last)
	}
	for _, p := range pts {
		if p.Y > 2+1e-12 || p.X < -1e-12 || p.X > 2+1e-12 {
			t.Errorf("dome point %v escapes its box", p)
		}
	}
}

func TestTemplate(t *testing.T) {
	plan := testPlan(t, fixture.DefaultSpacingInput())
	sc := Template(plan, "3")
	if !sc.IsPage() {
		t.Fatal("template should be a page")
	}
	if !strings.HasPrefix(sc.Title, "Shelf 3") {
		t.Errorf("title = %q", sc.Title)
	}
	if got := count(sc, "drill-hole"); got != 8 {
		t.Errorf("drill holes = %d", got)
	}
	if got := count(sc, "corner-mark"); got != 4 {
		t.Errorf("corner marks = %d", got)
	}
	if got := count(sc, "warning-text"); got != 0 {
		t.Errorf("unexpected warnings on a valid plan: %d", got)
	}

	// The right bracket outline mirrors the left one about the page centre.
	var brackets []Shape
	for _, s := range sc.Shapes {
		if s.Class == "bracket" {
			brackets = append(brackets, s)
		}
	}
	if len(brackets) != 2 {
		t.Fatalf("bracket outlines = %d", len(brackets))
	}
	l, r := brackets[0].Rect, brackets[1].Rect
	if math.Abs((l.Max.X+r.Min.X)/2-Letter.X/2) > 1e-9 {
		t.Errorf("outlines not mirrored: %v %v", l, r)
	}
	corner := Letter.X/2 - 3.2
	if got := corner - l.Min.X; math.Abs(got-plan.Back.Measurements.BracketEdgeFromShelfEdge) > 1e-9 {
		t.Errorf("left outline edge %v from corner, want %v", got, plan.Back.Measurements.BracketEdgeFromShelfEdge)
	}

	f, vp := sc.Layout(projection.Viewport{Width: 100, Height: 100, Padding: 10})
	if vp.Width != 612 || vp.Height != 792 || f.Scale != 72 {
		t.Errorf("page layout %v %+v", f, vp)
	}
}

func TestTemplateShowsWarnings(t *testing.T) {
	s := fixture.DefaultSpacingInput()
	s.NutClearance = 0.5
	sc := Template(testPlan(t, s), "")
	if count(sc, "warning-text") == 0 {
		t.Error("conflicting plan printed without warnings")
	}
	if sc.Title != "Bracket Drilling Template" {
		t.Errorf("title = %q", sc.Title)
	}
}

func TestCalibration(t *testing.T) {
	sc := Calibration(fixture.Default())
	if got := count(sc, "block"); got != 4 {
		t.Errorf("blocks = %d", got)
	}
	// 4 blocks x 4 holes x 2 lines
	if got := count(sc, "crosshair-0"); got != 32 {
		t.Errorf("zero crosshair lines = %d", got)
	}
	n := len(CalibrationSteps)
	if got := count(sc, "crosshair"); got != 4*4*(n*n-1)*2 {
		t.Errorf("crosshair lines = %d", got)
	}
	for _, s := range sc.Shapes {
		if s.Kind == KindRect && (s.Rect.Max.X > Letter.X || s.Rect.Max.Y > Letter.Y) {
			t.Errorf("%s rect %v runs off the page", s.Class, s.Rect)
		}
	}
}

func TestLayoutScreen(t *testing.T) {
	sc := Top(testPlan(t, fixture.DefaultSpacingInput()), Options{})
	limit := projection.Viewport{Width: 1200, Height: 800, Padding: 40}
	f, vp := sc.Layout(limit)
	if vp.Width > limit.Width+0.5 || vp.Height > limit.Height+0.5 {
		t.Errorf("canvas %+v exceeds %+v", vp, limit)
	}
	p := f.Point(sc.Reference)
	if math.Abs(p.X-40) > 1e-9 || math.Abs(p.Y-40) > 1e-9 {
		t.Errorf("reference maps to %v, want padding corner", p)
	}
}
