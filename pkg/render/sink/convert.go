package sink

import (
	"context"

	"github.com/matzehuels/shelfmount/pkg/render"
	"github.com/matzehuels/shelfmount/pkg/scene"
)

// ConvertOption configures the rsvg-backed PDF and PNG sinks.
type ConvertOption func(*conversion)

type conversion struct {
	svg   []SVGOption
	scale float64
}

// WithSVG passes options through to the SVG that is converted.
func WithSVG(opts ...SVGOption) ConvertOption {
	return func(c *conversion) { c.svg = append(c.svg, opts...) }
}

// WithScale sets the PNG zoom factor. PDF output ignores it: pages keep
// their point size so they print at 100%.
func WithScale(s float64) ConvertOption {
	return func(c *conversion) {
		if s > 0 {
			c.scale = s
		}
	}
}

func newConversion(opts []ConvertOption) conversion {
	c := conversion{scale: 2}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// RenderPDF converts the scene's SVG with rsvg-convert. It returns an
// UNSUPPORTED error when rsvg-convert is not installed.
func RenderPDF(ctx context.Context, sc scene.Scene, opts ...ConvertOption) ([]byte, error) {
	c := newConversion(opts)
	return render.ToPDF(ctx, RenderSVG(sc, c.svg...))
}

// RenderPNG is RenderPDF for PNG at 2x unless [WithScale] says otherwise.
// [RenderRaster] needs no external tool.
func RenderPNG(ctx context.Context, sc scene.Scene, opts ...ConvertOption) ([]byte, error) {
	c := newConversion(opts)
	return render.ToPNG(ctx, RenderSVG(sc, c.svg...), c.scale)
}
