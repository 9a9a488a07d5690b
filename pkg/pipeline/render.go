package pipeline

import (
	"context"
	"fmt"

	errs "github.com/matzehuels/shelfmount/pkg/errors"
	"github.com/matzehuels/shelfmount/pkg/placement"
	"github.com/matzehuels/shelfmount/pkg/projection"
	"github.com/matzehuels/shelfmount/pkg/render/sink"
	"github.com/matzehuels/shelfmount/pkg/scene"
)

// BuildScene returns the scene for the options' view.
func BuildScene(p placement.Plan, opts Options) (scene.Scene, error) {
	switch opts.View {
	case ViewTop, "":
		return scene.Top(p, scene.Options{ShelfOpacity: opts.ShelfOpacity}), nil
	case ViewFront:
		return scene.Front(p, scene.Options{ShelfOpacity: opts.ShelfOpacity}), nil
	case ViewTemplate:
		label := opts.Label
		if label == "" {
			label = p.Label
		}
		return scene.Template(p, label), nil
	case ViewCalibration:
		return scene.Calibration(p.Geometry), nil
	}
	return scene.Scene{}, ValidateView(opts.View)
}

// Viewport returns the drawing bounds for the options.
func (o *Options) Viewport() projection.Viewport {
	return projection.Viewport{Width: o.Width, Height: o.Height, Padding: o.Padding}
}

// Render produces one artifact per requested format. The scene is only
// built when a format needs it.
func Render(ctx context.Context, p placement.Plan, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	vp := opts.Viewport()

	var sc *scene.Scene
	getScene := func() (scene.Scene, error) {
		if sc == nil {
			s, err := BuildScene(p, opts)
			if err != nil {
				return scene.Scene{}, err
			}
			sc = &s
		}
		return *sc, nil
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, errs.Wrap(errs.ErrCodeTimeout, err, "render %s", format)
		}
		data, err := renderFormat(ctx, p, format, opts, vp, getScene)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, p placement.Plan, format string, opts Options, vp projection.Viewport, getScene func() (scene.Scene, error)) ([]byte, error) {
	if format == FormatDXF {
		return sink.RenderDXF(p.Geometry.Bracket)
	}
	sc, err := getScene()
	if err != nil {
		return nil, err
	}
	svgOpts := []sink.SVGOption{sink.WithViewport(vp)}

	switch format {
	case FormatSVG:
		return sink.RenderSVG(sc, svgOpts...), nil
	case FormatPDF:
		return sink.RenderPDF(ctx, sc, sink.WithSVG(svgOpts...))
	case FormatPNG:
		return sink.RenderPNG(ctx, sc, sink.WithSVG(svgOpts...), sink.WithScale(opts.Scale))
	case FormatCanvas, FormatWebP:
		rf := sink.FormatPNG
		if format == FormatWebP {
			rf = sink.FormatWebP
		}
		canvasOpts := []sink.CanvasOption{sink.WithCanvasViewport(vp)}
		if opts.Scale > 0 {
			canvasOpts = append(canvasOpts, sink.WithPixelScale(opts.Scale))
		}
		return sink.RenderRaster(sc, rf, canvasOpts...)
	case FormatJSON:
		return sink.RenderJSON(p, sink.WithJSONBrackets(), sink.WithJSONScene(sc, vp))
	}
	return nil, ValidateFormat(format)
}
