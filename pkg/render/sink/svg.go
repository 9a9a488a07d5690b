package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/shelfmount/pkg/projection"
	"github.com/matzehuels/shelfmount/pkg/scene"
)

// DefaultViewport bounds screen scenes when no viewport is given. It matches
// the minimum canvas of the interactive view doubled.
var DefaultViewport = projection.Viewport{Width: 1200, Height: 600, Padding: 40}

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	viewport   projection.Viewport
	background string
	snap       bool
}

// WithViewport bounds the canvas of screen scenes. Page scenes ignore it.
func WithViewport(vp projection.Viewport) SVGOption {
	return func(r *svgRenderer) { r.viewport = vp }
}

// WithBackground fills the canvas before drawing.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithSnap rounds every projected point to whole output units.
func WithSnap() SVGOption { return func(r *svgRenderer) { r.snap = true } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{viewport: DefaultViewport, background: scene.ColorBackground}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws the scene as a standalone SVG document.
func RenderSVG(sc scene.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	f, vp := sc.Layout(r.viewport)
	if r.snap {
		f = f.WithSnap()
	}

	unit := ""
	if sc.IsPage() {
		unit = "pt"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s%s" height="%s%s">`+"\n",
		num(vp.Width), num(vp.Height), num(vp.Width), unit, num(vp.Height), unit)
	fmt.Fprintf(&buf, "  <title>%s</title>\n", escape(sc.Title))
	renderStyles(&buf, sc.Styles)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n", num(vp.Width), num(vp.Height), r.background)
	}
	for _, s := range sc.Shapes {
		renderShape(&buf, f, s)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderStyles(buf *bytes.Buffer, styles map[string]scene.Style) {
	classes := make([]string, 0, len(styles))
	for c := range styles {
		classes = append(classes, c)
	}
	slices.Sort(classes)

	buf.WriteString("  <style>\n")
	for _, c := range classes {
		fmt.Fprintf(buf, "    .%s { %s }\n", c, css(styles[c]))
	}
	buf.WriteString("  </style>\n")
}

// css renders a style as declarations. Text styles carry a fill; shape
// styles without one are drawn unfilled.
func css(s scene.Style) string {
	var d []string
	if s.Fill != "" {
		d = append(d, "fill: "+s.Fill)
	} else {
		d = append(d, "fill: none")
	}
	if s.Stroke != "" {
		d = append(d, "stroke: "+s.Stroke, "stroke-width: "+num(s.StrokeWidth))
	}
	if len(s.Dash) > 0 {
		parts := make([]string, len(s.Dash))
		for i, v := range s.Dash {
			parts[i] = num(v)
		}
		d = append(d, "stroke-dasharray: "+strings.Join(parts, " "))
	}
	if s.Opacity > 0 && s.Opacity < 1 {
		d = append(d, "opacity: "+num(s.Opacity))
	}
	if s.Mono {
		d = append(d, "font-family: monospace")
	} else {
		d = append(d, "font-family: sans-serif")
	}
	if s.Bold {
		d = append(d, "font-weight: bold")
	}
	return strings.Join(d, "; ") + ";"
}

func renderShape(buf *bytes.Buffer, f projection.Frame, s scene.Shape) {
	switch s.Kind {
	case scene.KindRect:
		r := f.Rect(s.Rect)
		fmt.Fprintf(buf, `  <rect class="%s" x="%s" y="%s" width="%s" height="%s"/>`+"\n",
			s.Class, num(r.Min.X), num(r.Min.Y), num(r.Max.X-r.Min.X), num(r.Max.Y-r.Min.Y))
	case scene.KindCircle:
		c := f.Point(s.Center)
		fmt.Fprintf(buf, `  <circle class="%s" cx="%s" cy="%s" r="%s"/>`+"\n",
			s.Class, num(c.X), num(c.Y), num(f.Length(s.Radius)))
	case scene.KindLine:
		a, b := f.Point(s.From), f.Point(s.To)
		fmt.Fprintf(buf, `  <line class="%s" x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
			s.Class, num(a.X), num(a.Y), num(b.X), num(b.Y))
	case scene.KindPolygon:
		pts := make([]string, len(s.Points))
		for i, p := range s.Points {
			q := f.Point(p)
			pts[i] = num(q.X) + "," + num(q.Y)
		}
		fmt.Fprintf(buf, `  <polygon class="%s" points="%s"/>`+"\n", s.Class, strings.Join(pts, " "))
	case scene.KindText:
		p := f.Point(s.At)
		anchor := s.Anchor
		if anchor == "" {
			anchor = scene.AnchorStart
		}
		fmt.Fprintf(buf, `  <text class="%s" x="%s" y="%s" font-size="%s" text-anchor="%s">%s</text>`+"\n",
			s.Class, num(p.X), num(p.Y), num(s.Size), anchor, escape(s.Text))
	}
}

// num formats a coordinate with at most three decimals.
func num(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
