// Package pkg provides the libraries behind shelfmount.
//
// # Overview
//
// Shelfmount plans how to mount a shelf on two parallel (or nearly parallel)
// support pipes with flange brackets. Given the pipe spacing it shifts each
// bracket toward its pipe until the nut clears the pipe and the screw heads
// stay on the shelf, places the brackets along the shelf depth, and draws
// the result as views, a 1:1 drilling template and a bracket outline for CAD.
//
// # Architecture
//
// The data flow through shelfmount:
//
//	length expressions ("28 31/32", "736mm")
//	         ↓
//	    [units] (parse to inches)
//	         ↓
//	    [solver] + [depth] (shift bounds, clearance checks, depth offsets)
//	         ↓
//	    [placement] (one plan for the back and front positions)
//	         ↓
//	    [scene] + [projection] (renderer-neutral drawings)
//	         ↓
//	    [render/sink] (SVG, PDF, PNG, canvas, WebP, DXF, JSON)
//
// [pipeline] runs this sequence for the CLI, the TUI and [api], consulting
// the artifact [cache] on the way. [favorites] stores named spacing presets
// and [config] reads the hardware dimensions from a TOML file.
//
// # Quick Start
//
//	g := fixture.Default()
//	plan, _ := placement.Compute(g, fixture.DefaultSpacingInput(), placement.Options{})
//	svg := sink.RenderSVG(scene.Top(plan, scene.Options{ShelfOpacity: 0.5}))
//
// Or through the pipeline, with caching:
//
//	r := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, _ := r.Execute(ctx, g, pipeline.Options{
//	    Spacing: fixture.DefaultSpacingInput(),
//	    View:    pipeline.ViewTemplate,
//	    Formats: []string{pipeline.FormatPDF},
//	})
//
// [units]: https://pkg.go.dev/github.com/matzehuels/shelfmount/pkg/units
// [solver]: https://pkg.go.dev/github.com/matzehuels/shelfmount/pkg/solver
// [depth]: https://pkg.go.dev/github.com/matzehuels/shelfmount/pkg/depth
// [placement]: https://pkg.go.dev/github.com/matzehuels/shelfmount/pkg/placement
// [scene]: https://pkg.go.dev/github.com/matzehuels/shelfmount/pkg/scene
// [projection]: https://pkg.go.dev/github.com/matzehuels/shelfmount/pkg/projection
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/shelfmount/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/shelfmount/pkg/pipeline
// [api]: https://pkg.go.dev/github.com/matzehuels/shelfmount/pkg/api
// [cache]: https://pkg.go.dev/github.com/matzehuels/shelfmount/pkg/cache
// [favorites]: https://pkg.go.dev/github.com/matzehuels/shelfmount/pkg/favorites
// [config]: https://pkg.go.dev/github.com/matzehuels/shelfmount/pkg/config
package pkg
