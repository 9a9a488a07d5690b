// Package projection maps physical shelf coordinates (inches) onto an output
// surface such as a screen canvas, an SVG document or a printed page.
//
// A [Frame] is a uniform scale plus an origin offset. Frames are built by
// [Fit], which fits a physical span into a padded viewport without
// distorting it, or by [Fixed], which uses a known scale such as 72 points
// per inch for print. Either way a chosen physical reference point lands on a
// chosen output anchor, so every renderer that goes through the same frame
// draws the same numbers in the same place.
//
// Frames are values: conversions never mutate the frame or their input.
package projection
