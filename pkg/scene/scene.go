package scene

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/matzehuels/shelfmount/pkg/projection"
)

// View names a scene builder.
type View string

const (
	ViewTop         View = "top"
	ViewFront       View = "front"
	ViewTemplate    View = "template"
	ViewCalibration View = "calibration"
)

// Views lists every view.
var Views = []View{ViewTop, ViewFront, ViewTemplate, ViewCalibration}

// Kind is the geometric type of a shape.
type Kind string

const (
	KindRect    Kind = "rect"
	KindCircle  Kind = "circle"
	KindLine    Kind = "line"
	KindPolygon Kind = "polygon"
	KindText    Kind = "text"
)

// Anchor aligns text horizontally.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Shape is one drawable element. Which fields are meaningful depends on Kind:
// Rect for rects, Center and Radius for circles, From and To for lines,
// Points for polygons and At, Text, Size and Anchor for text.
// Text Size is in output units (points), not inches.
type Shape struct {
	Kind   Kind     `json:"kind"`
	Class  string   `json:"class"`
	Rect   sdf.Box2 `json:"rect,omitempty"`
	Center v2.Vec   `json:"center,omitempty"`
	Radius float64  `json:"radius,omitempty"`
	From   v2.Vec   `json:"from,omitempty"`
	To     v2.Vec   `json:"to,omitempty"`
	Points []v2.Vec `json:"points,omitempty"`
	At     v2.Vec   `json:"at,omitempty"`
	Text   string   `json:"text,omitempty"`
	Size   float64  `json:"size,omitempty"`
	Anchor Anchor   `json:"anchor,omitempty"`
}

// Scene is a complete drawing in physical units.
type Scene struct {
	View      View     `json:"view"`
	Title     string   `json:"title"`
	Span      sdf.Box2 `json:"span"`
	Reference v2.Vec   `json:"reference"`
	// Page is the fixed page size in inches for print scenes, zero otherwise.
	Page   v2.Vec           `json:"page,omitempty"`
	Styles map[string]Style `json:"styles"`
	Shapes []Shape          `json:"shapes"`
}

// IsPage reports whether the scene is a fixed-size print page.
func (s Scene) IsPage() bool { return s.Page.X > 0 && s.Page.Y > 0 }

// Layout picks the frame for the scene and the canvas it needs.
//
// Screen scenes are fitted into bound (its Width and Height are upper bounds)
// with Reference anchored at the padding corner; the returned viewport is
// shrunk to the drawing. Page scenes ignore bound and use 72 points per inch.
func (s Scene) Layout(bound projection.Viewport) (projection.Frame, projection.Viewport) {
	if s.IsPage() {
		f := projection.Fixed(projection.PointsPerInch, v2.Vec{}, v2.Vec{})
		size := f.Size(s.Page)
		return f, projection.Viewport{Width: size.X, Height: size.Y}
	}
	anchor := v2.Vec{X: bound.Padding, Y: bound.Padding}
	f := projection.Fit(s.Span, bound, s.Reference, anchor)
	size := f.Size(s.Span.Size())
	vp := projection.Viewport{
		Width:   math.Round(size.X + 2*bound.Padding),
		Height:  math.Round(size.Y + 2*bound.Padding),
		Padding: bound.Padding,
	}
	return f, vp
}

func (s *Scene) add(shapes ...Shape) { s.Shapes = append(s.Shapes, shapes...) }

func rect(class string, r sdf.Box2) Shape { return Shape{Kind: KindRect, Class: class, Rect: r} }

func rectXYWH(class string, x, y, w, h float64) Shape {
	return rect(class, sdf.Box2{Min: v2.Vec{X: x, Y: y}, Max: v2.Vec{X: x + w, Y: y + h}})
}

func circle(class string, c v2.Vec, r float64) Shape {
	return Shape{Kind: KindCircle, Class: class, Center: c, Radius: r}
}

func line(class string, x1, y1, x2, y2 float64) Shape {
	return Shape{Kind: KindLine, Class: class, From: v2.Vec{X: x1, Y: y1}, To: v2.Vec{X: x2, Y: y2}}
}

func text(class string, x, y float64, size float64, anchor Anchor, s string) Shape {
	return Shape{Kind: KindText, Class: class, At: v2.Vec{X: x, Y: y}, Size: size, Anchor: anchor, Text: s}
}

func polygon(class string, pts []v2.Vec) Shape {
	return Shape{Kind: KindPolygon, Class: class, Points: pts}
}

// hexagon returns a regular hexagon with the given centre-to-vertex radius
// and one vertex pointing up.
func hexagon(class string, c v2.Vec, r float64) Shape {
	pts := make([]v2.Vec, 6)
	for i := range pts {
		a := math.Pi/3*float64(i) - math.Pi/2
		pts[i] = v2.Vec{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
	}
	return polygon(class, pts)
}

// union returns the smallest box containing every box.
func union(boxes ...sdf.Box2) sdf.Box2 {
	out := boxes[0]
	for _, b := range boxes[1:] {
		out = sdf.Box2{
			Min: v2.Vec{X: math.Min(out.Min.X, b.Min.X), Y: math.Min(out.Min.Y, b.Min.Y)},
			Max: v2.Vec{X: math.Max(out.Max.X, b.Max.X), Y: math.Max(out.Max.Y, b.Max.Y)},
		}
	}
	return out
}

// pt converts print points to inches.
func pt(v float64) float64 { return v / projection.PointsPerInch }
