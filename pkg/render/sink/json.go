package sink

import (
	"encoding/json"

	"github.com/matzehuels/shelfmount/pkg/fixture"
	"github.com/matzehuels/shelfmount/pkg/placement"
	"github.com/matzehuels/shelfmount/pkg/projection"
	"github.com/matzehuels/shelfmount/pkg/scene"
	"github.com/matzehuels/shelfmount/pkg/units"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	brackets bool
	scene    *scene.Scene
	viewport projection.Viewport
}

// WithJSONBrackets includes the world geometry of all four brackets.
func WithJSONBrackets() JSONOption { return func(r *jsonRenderer) { r.brackets = true } }

// WithJSONScene includes a scene and the frame it is laid out with, so that
// a client can draw it without re-deriving the projection.
func WithJSONScene(sc scene.Scene, vp projection.Viewport) JSONOption {
	return func(r *jsonRenderer) { r.scene = &sc; r.viewport = vp }
}

type jsonOutput struct {
	Plan     placement.Plan              `json:"plan"`
	OK       bool                        `json:"ok"`
	Warnings []placement.Warning         `json:"warnings"`
	Display  map[fixture.Position]string `json:"display"`
	Brackets []placement.Bracket         `json:"brackets,omitempty"`
	Scene    *scene.Scene                `json:"scene,omitempty"`
	Frame    *projection.Frame           `json:"frame,omitempty"`
	Viewport *projection.Viewport        `json:"viewport,omitempty"`
}

// RenderJSON serialises a plan together with its warnings and a human
// readable shift for each position.
func RenderJSON(p placement.Plan, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{viewport: DefaultViewport}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Plan:     p,
		OK:       p.OK(),
		Warnings: p.Warnings(),
		Display:  map[fixture.Position]string{},
	}
	if out.Warnings == nil {
		out.Warnings = []placement.Warning{}
	}
	for _, pp := range p.Positions() {
		out.Display[pp.Position] = units.FormatWithFraction(pp.Result.Shift)
	}
	if r.brackets {
		out.Brackets = p.Brackets()
	}
	if r.scene != nil {
		f, vp := r.scene.Layout(r.viewport)
		out.Scene, out.Frame, out.Viewport = r.scene, &f, &vp
	}
	return json.MarshalIndent(out, "", "  ")
}
