// Package render holds format conversion shared by the output sinks.
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(sc)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// When rsvg-convert is missing both return an UNSUPPORTED error; the native
// rasteriser in [sink] needs no external tools.
//
// [sink]: github.com/matzehuels/shelfmount/pkg/render/sink
package render
