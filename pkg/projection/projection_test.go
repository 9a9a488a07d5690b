package projection

import (
	"math"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

func near(a, b v2.Vec) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestFitTakesSmallerScale(t *testing.T) {
	tests := []struct {
		name  string
		span  sdf.Box2
		vp    Viewport
		scale float64
	}{
		{"width bound", sdf.Box2{Max: v2.Vec{X: 30, Y: 12}}, Viewport{Width: 680, Height: 600, Padding: 40}, 20},
		{"height bound", sdf.Box2{Max: v2.Vec{X: 30, Y: 12}}, Viewport{Width: 2000, Height: 320, Padding: 40}, 20},
		{"zero height span", sdf.Box2{Max: v2.Vec{X: 10}}, Viewport{Width: 120, Height: 100, Padding: 10}, 10},
		{"degenerate", sdf.Box2{}, Viewport{Width: 100, Height: 100}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Fit(tt.span, tt.vp, tt.span.Min, tt.vp.Inner().Min)
			if math.Abs(f.Scale-tt.scale) > 1e-12 {
				t.Errorf("Scale = %v, want %v", f.Scale, tt.scale)
			}
		})
	}
}

func TestFitAnchorsReference(t *testing.T) {
	span := sdf.Box2{Min: v2.Vec{X: -1, Y: -0.5}, Max: v2.Vec{X: 29, Y: 12.5}}
	vp := Viewport{Width: 800, Height: 400, Padding: 40}
	ref := v2.Vec{X: -0.53715, Y: 0}
	anchor := v2.Vec{X: 40, Y: 40}

	f := Fit(span, vp, ref, anchor)
	if got := f.Point(ref); !near(got, anchor) {
		t.Errorf("Point(ref) = %v, want %v", got, anchor)
	}
	if got := f.Physical(f.Point(v2.Vec{X: 3, Y: 4})); !near(got, v2.Vec{X: 3, Y: 4}) {
		t.Errorf("round trip = %v", got)
	}
}

func TestFitCenteredStaysInside(t *testing.T) {
	span := sdf.Box2{Min: v2.Vec{X: -2, Y: -1}, Max: v2.Vec{X: 32, Y: 13}}
	vp := Viewport{Width: 900, Height: 300, Padding: 40}
	f := FitCentered(span, vp)
	r := f.Rect(span)
	in := vp.Inner()
	const eps = 1e-9
	if r.Min.X < in.Min.X-eps || r.Min.Y < in.Min.Y-eps || r.Max.X > in.Max.X+eps || r.Max.Y > in.Max.Y+eps {
		t.Errorf("projected span %v escapes viewport %v", r, in)
	}
	if c := r.Center(); !near(c, in.Center()) {
		t.Errorf("centre %v, want %v", c, in.Center())
	}
}

func TestFixedPrintScale(t *testing.T) {
	f := Fixed(PointsPerInch, v2.Vec{}, v2.Vec{X: 36, Y: 36})
	if got := f.Length(1); got != 72 {
		t.Errorf("Length(1) = %v", got)
	}
	if got := f.Point(v2.Vec{X: 1, Y: 2}); !near(got, v2.Vec{X: 108, Y: 180}) {
		t.Errorf("Point = %v", got)
	}
	if got := f.Size(v2.Vec{X: 8.5, Y: 11}); !near(got, v2.Vec{X: 612, Y: 792}) {
		t.Errorf("letter page = %v", got)
	}
}

func TestSnap(t *testing.T) {
	f := Fixed(10, v2.Vec{}, v2.Vec{X: 0.3, Y: 0.3}).WithSnap()
	x, y := f.XY(0.26, 0.24)
	if x != 3 || y != 3 {
		t.Errorf("snapped = (%v, %v), want (3, 3)", x, y)
	}
	if math.Abs(f.Length(0.26)-2.6) > 1e-12 {
		t.Errorf("lengths are not snapped: %v", f.Length(0.26))
	}
}

func TestScreenAndPrintAgree(t *testing.T) {
	// Two frames of different scale must place the same physical points in
	// the same relative positions.
	span := sdf.Box2{Max: v2.Vec{X: 30, Y: 12}}
	screen := Fit(span, Viewport{Width: 1200, Height: 600, Padding: 40}, span.Min, v2.Vec{X: 40, Y: 40})
	paper := Fixed(PointsPerInch, span.Min, v2.Vec{X: 36, Y: 36})

	a, b := v2.Vec{X: 1.25, Y: 3}, v2.Vec{X: 28.5, Y: 9.75}
	ds := screen.Point(b).Sub(screen.Point(a)).DivScalar(screen.Scale)
	dp := paper.Point(b).Sub(paper.Point(a)).DivScalar(paper.Scale)
	if !near(ds, dp) {
		t.Errorf("screen %v and paper %v disagree", ds, dp)
	}
}
