package projection

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// PointsPerInch is the PDF/SVG print unit.
const PointsPerInch = 72.0

// Viewport is an output surface in output units (pixels or points).
type Viewport struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding float64 `json:"padding"`
}

// Inner returns the drawable area inside the padding.
func (v Viewport) Inner() sdf.Box2 {
	return sdf.Box2{
		Min: v2.Vec{X: v.Padding, Y: v.Padding},
		Max: v2.Vec{X: v.Width - v.Padding, Y: v.Height - v.Padding},
	}
}

// Frame converts physical coordinates to output coordinates:
// out = Origin + p·Scale. With Snap set, points are rounded to whole output
// units, as a pixel canvas needs.
type Frame struct {
	Scale  float64 `json:"scale"`
	Origin v2.Vec  `json:"origin"`
	Snap   bool    `json:"snap,omitempty"`
}

// Fit returns the largest uniform scale at which span fits inside the padded
// viewport, with origin chosen so that the physical point ref maps to
// anchor. A degenerate span or viewport axis is ignored; if both are
// degenerate the scale is 1.
func Fit(span sdf.Box2, vp Viewport, ref, anchor v2.Vec) Frame {
	size := span.Size()
	inner := vp.Inner().Size()

	scale := math.Inf(1)
	if size.X > 0 && inner.X > 0 {
		scale = inner.X / size.X
	}
	if size.Y > 0 && inner.Y > 0 {
		scale = math.Min(scale, inner.Y/size.Y)
	}
	if math.IsInf(scale, 1) {
		scale = 1
	}
	return Fixed(scale, ref, anchor)
}

// FitCentered fits span into the viewport and centres it.
func FitCentered(span sdf.Box2, vp Viewport) Frame {
	return Fit(span, vp, span.Center(), vp.Inner().Center())
}

// Fixed returns a frame with the given scale mapping ref to anchor.
func Fixed(scale float64, ref, anchor v2.Vec) Frame {
	return Frame{Scale: scale, Origin: anchor.Sub(ref.MulScalar(scale))}
}

// WithSnap returns a copy of f that rounds points to whole output units.
func (f Frame) WithSnap() Frame {
	f.Snap = true
	return f
}

// Point maps a physical point to output coordinates.
func (f Frame) Point(p v2.Vec) v2.Vec {
	out := f.Origin.Add(p.MulScalar(f.Scale))
	if f.Snap {
		out = v2.Vec{X: math.Round(out.X), Y: math.Round(out.Y)}
	}
	return out
}

// XY is Point for separate coordinates.
func (f Frame) XY(x, y float64) (float64, float64) {
	p := f.Point(v2.Vec{X: x, Y: y})
	return p.X, p.Y
}

// Length maps a physical length to output units.
func (f Frame) Length(l float64) float64 {
	return l * f.Scale
}

// Size maps a physical extent to output units.
func (f Frame) Size(s v2.Vec) v2.Vec {
	return s.MulScalar(f.Scale)
}

// Rect maps a physical box to output coordinates.
func (f Frame) Rect(b sdf.Box2) sdf.Box2 {
	return sdf.Box2{Min: f.Point(b.Min), Max: f.Point(b.Max)}
}

// Physical maps an output point back to physical coordinates. It ignores
// Snap.
func (f Frame) Physical(p v2.Vec) v2.Vec {
	if f.Scale == 0 {
		return v2.Vec{}
	}
	return p.Sub(f.Origin).DivScalar(f.Scale)
}
