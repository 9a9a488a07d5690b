// Package sink renders scenes and plans into output formats.
//
// # Overview
//
// A "sink" draws a [scene.Scene] through the projection frame the scene
// chooses for itself, or serialises a [placement.Plan]. This package
// provides:
//
//   - SVG: vector output for screens and print ([RenderSVG])
//   - PDF: print-ready output via rsvg-convert ([RenderPDF])
//   - PNG: raster output via rsvg-convert ([RenderPNG])
//   - Raster: a native rasteriser with PNG or WebP encoding ([RenderRaster])
//   - DXF: the bracket profile for CAD or laser cutting ([RenderDXF])
//   - JSON: the full plan with warnings and frame ([RenderJSON])
//
// # Coordinates
//
// Every sink maps physical inches to output units through the
// projection.Frame returned by [scene.Scene.Layout]. Page scenes
// (drilling template and calibration sheet) are fixed at 72 points per inch;
// screen scenes are fitted into the viewport given with [WithViewport].
//
//	sc := scene.Top(plan, scene.Options{})
//	svg := sink.RenderSVG(sc, sink.WithViewport(projection.Viewport{Width: 1200, Height: 700, Padding: 40}))
//	png, err := sink.RenderRaster(sc, sink.FormatPNG)
package sink
