package sink

import (
	"os"
	"path/filepath"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	errs "github.com/matzehuels/shelfmount/pkg/errors"
	"github.com/matzehuels/shelfmount/pkg/fixture"
	"github.com/matzehuels/shelfmount/pkg/units"
)

// DXFOption configures bracket profile export.
type DXFOption func(*dxfRenderer)

type dxfRenderer struct {
	cells       int
	millimetres bool
}

// WithCells sets the marching squares resolution along the longest side
// (default 400).
func WithCells(n int) DXFOption {
	return func(r *dxfRenderer) {
		if n > 0 {
			r.cells = n
		}
	}
}

// WithMillimetres writes the profile in millimetres instead of inches.
func WithMillimetres() DXFOption {
	return func(r *dxfRenderer) { r.millimetres = true }
}

// RenderDXF traces the bracket plate minus its holes and returns it as DXF.
// The profile is centred on the origin.
func RenderDXF(b fixture.Bracket, opts ...DXFOption) ([]byte, error) {
	r := dxfRenderer{cells: 400}
	for _, opt := range opts {
		opt(&r)
	}

	profile, err := b.Profile()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidGeometry, err, "bracket profile")
	}
	if r.millimetres {
		k := units.MmPerInch
		profile = sdf.Transform2D(profile, sdf.Scale2d(v2.Vec{X: k, Y: k}))
	}

	dir, err := os.MkdirTemp("", "shelfmount-dxf-")
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "create temp dir")
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "bracket.dxf")
	render.ToDXF(profile, path, render.NewMarchingSquaresQuadtree(r.cells))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "read dxf")
	}
	return data, nil
}
