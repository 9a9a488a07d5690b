package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"strconv"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	errs "github.com/matzehuels/shelfmount/pkg/errors"
	"github.com/matzehuels/shelfmount/pkg/projection"
	"github.com/matzehuels/shelfmount/pkg/scene"
)

// RasterFormat is the encoding produced by [RenderRaster].
type RasterFormat string

const (
	FormatPNG  RasterFormat = "png"
	FormatWebP RasterFormat = "webp"
)

// RasterFormats lists the supported canvas encodings.
var RasterFormats = []RasterFormat{FormatPNG, FormatWebP}

// circleSegments is the polygon resolution used for circles.
const circleSegments = 48

// CanvasOption configures the built-in rasterizer.
type CanvasOption func(*canvasRenderer)

type canvasRenderer struct {
	viewport    projection.Viewport
	scale       float64
	supersample int
}

// WithCanvasViewport bounds the canvas of screen scenes.
func WithCanvasViewport(vp projection.Viewport) CanvasOption {
	return func(r *canvasRenderer) { r.viewport = vp }
}

// WithPixelScale sets pixels per output unit (default 1). Page scenes are
// laid out in points, so 300.0/72 gives a 300 dpi page.
func WithPixelScale(s float64) CanvasOption {
	return func(r *canvasRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithSupersample sets the oversampling factor used for antialiasing
// (default 3).
func WithSupersample(n int) CanvasOption {
	return func(r *canvasRenderer) {
		if n > 0 {
			r.supersample = n
		}
	}
}

// RenderRaster rasterizes the scene without external tools. The scene is
// drawn at a multiple of the target size and downsampled with Catmull-Rom.
func RenderRaster(sc scene.Scene, format RasterFormat, opts ...CanvasOption) ([]byte, error) {
	if format != FormatPNG && format != FormatWebP {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported canvas format %q", format)
	}

	r := canvasRenderer{viewport: DefaultViewport, scale: 1, supersample: 3}
	for _, opt := range opts {
		opt(&r)
	}

	img, err := r.rasterize(sc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch format {
	case FormatWebP:
		err = nativewebp.Encode(&buf, img, nil)
	default:
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode %s", format)
	}
	return buf.Bytes(), nil
}

func (r canvasRenderer) rasterize(sc scene.Scene) (*image.RGBA, error) {
	f, vp := sc.Layout(r.viewport)
	w := int(math.Ceil(vp.Width * r.scale))
	h := int(math.Ceil(vp.Height * r.scale))
	if w <= 0 || h <= 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "empty canvas %dx%d", w, h)
	}

	k := r.scale * float64(r.supersample)
	c := &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, w*r.supersample, h*r.supersample)),
		frame: projection.Frame{Scale: f.Scale * k, Origin: f.Origin.MulScalar(k)},
		k:     k,
		faces: map[faceKey]font.Face{},
	}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(parseColor(scene.ColorBackground, 1)), image.Point{}, draw.Src)

	for _, s := range sc.Shapes {
		if err := c.shape(s, sc.Styles[s.Class]); err != nil {
			return nil, err
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), c.img, c.img.Bounds(), draw.Src, nil)
	return out, nil
}

type faceKey struct {
	bold, mono bool
	size       float64
}

// canvas draws shapes onto a supersampled image. k converts output units to
// supersampled pixels.
type canvas struct {
	img   *image.RGBA
	frame projection.Frame
	k     float64
	faces map[faceKey]font.Face
}

func (c *canvas) shape(s scene.Shape, st scene.Style) error {
	opacity := st.Opacity
	if opacity <= 0 {
		opacity = 1
	}

	if s.Kind == scene.KindText {
		if st.Fill == "" {
			return nil
		}
		return c.text(s, st, parseColor(st.Fill, opacity))
	}

	var pts []v2.Vec
	closed := true
	switch s.Kind {
	case scene.KindRect:
		b := c.frame.Rect(s.Rect)
		pts = []v2.Vec{b.Min, {X: b.Max.X, Y: b.Min.Y}, b.Max, {X: b.Min.X, Y: b.Max.Y}}
	case scene.KindCircle:
		pts = circlePoints(c.frame.Point(s.Center), c.frame.Length(s.Radius))
	case scene.KindPolygon:
		pts = make([]v2.Vec, len(s.Points))
		for i, p := range s.Points {
			pts[i] = c.frame.Point(p)
		}
	case scene.KindLine:
		pts = []v2.Vec{c.frame.Point(s.From), c.frame.Point(s.To)}
		closed = false
	}
	if len(pts) < 2 {
		return nil
	}

	if st.Fill != "" && closed {
		c.fill(pts, parseColor(st.Fill, opacity))
	}
	if st.Stroke != "" && st.StrokeWidth > 0 {
		if closed {
			pts = append(pts, pts[0])
		}
		dash := make([]float64, len(st.Dash))
		for i, d := range st.Dash {
			dash[i] = d * c.k
		}
		for _, seg := range dashed(pts, dash) {
			c.fill(segmentQuad(seg[0], seg[1], st.StrokeWidth*c.k), parseColor(st.Stroke, opacity))
		}
	}
	return nil
}

// fill paints the polygon pts. Only the clipped bounding box is rasterized.
func (c *canvas) fill(pts []v2.Vec, col color.Color) {
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo = v2.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y)}
		hi = v2.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y)}
	}
	box := image.Rect(int(math.Floor(lo.X)), int(math.Floor(lo.Y)), int(math.Ceil(hi.X))+1, int(math.Ceil(hi.Y))+1).
		Intersect(c.img.Bounds())
	if box.Empty() {
		return
	}

	z := vector.NewRasterizer(box.Dx(), box.Dy())
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	z.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	z.ClosePath()
	z.Draw(c.img, box, image.NewUniform(col), image.Point{})
}

func (c *canvas) text(s scene.Shape, st scene.Style, col color.Color) error {
	face, err := c.face(faceKey{bold: st.Bold, mono: st.Mono, size: s.Size * c.k})
	if err != nil {
		return err
	}
	p := c.frame.Point(s.At)
	width := font.MeasureString(face, s.Text)
	x := fixed.Int26_6(math.Round(p.X * 64))
	switch s.Anchor {
	case scene.AnchorMiddle:
		x -= width / 2
	case scene.AnchorEnd:
		x -= width
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: x, Y: fixed.Int26_6(math.Round(p.Y * 64))},
	}
	d.DrawString(s.Text)
	return nil
}

func (c *canvas) face(key faceKey) (font.Face, error) {
	if f, ok := c.faces[key]; ok {
		return f, nil
	}
	ttf := goregular.TTF
	switch {
	case key.mono:
		ttf = gomono.TTF
	case key.bold:
		ttf = gobold.TTF
	}
	fnt, err := opentype.Parse(ttf)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "parse font")
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "create font face")
	}
	c.faces[key] = face
	return face, nil
}

func circlePoints(center v2.Vec, r float64) []v2.Vec {
	pts := make([]v2.Vec, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = v2.Vec{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}
	}
	return pts
}

// segmentQuad is the rectangle covering a stroke of width w from a to b,
// extended by w/2 past both ends so consecutive segments meet at corners.
func segmentQuad(a, b v2.Vec, w float64) []v2.Vec {
	d := b.Sub(a)
	l := math.Hypot(d.X, d.Y)
	hw := w / 2
	if l == 0 {
		return []v2.Vec{
			{X: a.X - hw, Y: a.Y - hw}, {X: a.X + hw, Y: a.Y - hw},
			{X: a.X + hw, Y: a.Y + hw}, {X: a.X - hw, Y: a.Y + hw},
		}
	}
	u := d.DivScalar(l).MulScalar(hw)
	n := v2.Vec{X: -u.Y, Y: u.X}
	a, b = a.Sub(u), b.Add(u)
	return []v2.Vec{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
}

// dashed splits a polyline into the visible segments of a dash pattern. An
// empty pattern yields every segment.
func dashed(pts []v2.Vec, pattern []float64) [][2]v2.Vec {
	var out [][2]v2.Vec
	var total float64
	for _, p := range pattern {
		total += p
	}
	if total <= 0 {
		for i := 1; i < len(pts); i++ {
			out = append(out, [2]v2.Vec{pts[i-1], pts[i]})
		}
		return out
	}

	idx, left, on := 0, pattern[0], true
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		d := b.Sub(a)
		l := math.Hypot(d.X, d.Y)
		pos := 0.0
		for pos < l {
			step := math.Min(left, l-pos)
			if on {
				out = append(out, [2]v2.Vec{
					a.Add(d.MulScalar(pos / l)),
					a.Add(d.MulScalar((pos + step) / l)),
				})
			}
			pos += step
			left -= step
			if left <= 0 {
				idx = (idx + 1) % len(pattern)
				left, on = pattern[idx], !on
			}
		}
	}
	return out
}

// parseColor reads #rgb or #rrggbb. Anything else is black.
func parseColor(s string, opacity float64) color.NRGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	c := color.NRGBA{A: uint8(math.Round(255 * math.Min(1, math.Max(0, opacity))))}
	if len(s) != 6 {
		return c
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return c
	}
	c.R, c.G, c.B = uint8(v>>16), uint8(v>>8), uint8(v)
	return c
}
