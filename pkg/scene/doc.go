// Package scene turns a placement plan into renderer-neutral drawings.
//
// A [Scene] is a flat list of shapes (rectangles, circles, lines, polygons
// and text) in physical inches, each tagged with a style class. It also
// declares its physical span and the reference point that [Scene.Layout]
// anchors to the top-left of the padded viewport. Renderers in
// pkg/render/sink draw scenes through a projection.Frame and never compute
// positions of their own.
//
// Four builders are provided:
//
//   - [Top]: the shelf seen from above with pipes, brackets, holes and
//     button heads
//   - [Front]: the shelf seen from the front with pipe sections, brackets,
//     screw heads and hex cap nuts
//   - [Template]: a letter-size drilling template with corner marks, drill
//     crosshairs and key measurements
//   - [Calibration]: a letter-size sheet of crosshair grids for checking
//     where a bracket's holes really are
//
// Page scenes ([Template], [Calibration]) have a fixed page size and are laid
// out at 72 points per inch so that a print at 100% is true to scale.
package scene
