package placement

import (
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/matzehuels/shelfmount/pkg/fixture"
	"github.com/matzehuels/shelfmount/pkg/solver"
)

// Bracket is one placed bracket in shelf coordinates: X runs across the shelf
// with the left pipe centre at 0, Y runs from the back edge toward the front.
type Bracket struct {
	Position fixture.Position `json:"position"`
	Side     solver.Side      `json:"side"`
	Rect     sdf.Box2         `json:"rect"`
	// Holes are ordered top-left, top-right, bottom-left, bottom-right.
	Holes []v2.Vec `json:"holes"`
}

// Center returns the bracket centre.
func (b Bracket) Center() v2.Vec { return b.Rect.Center() }

// OuterHoles returns the two holes nearer the shelf's side edge, which carry
// the button-head screws and the nuts.
func (b Bracket) OuterHoles() []v2.Vec {
	if b.Side == solver.Left {
		return []v2.Vec{b.Holes[0], b.Holes[2]}
	}
	return []v2.Vec{b.Holes[1], b.Holes[3]}
}

// InnerHoles returns the two holes nearer the shelf's midline.
func (b Bracket) InnerHoles() []v2.Vec {
	if b.Side == solver.Left {
		return []v2.Vec{b.Holes[1], b.Holes[3]}
	}
	return []v2.Vec{b.Holes[0], b.Holes[2]}
}

// PipeX returns the pipe centre for a side at a position.
func (p Plan) PipeX(pos fixture.Position, side solver.Side) float64 {
	if side == solver.Left {
		return 0
	}
	return p.At(pos).CenterToCenter
}

// ShelfRect returns the shelf outline, centred between the pipes. When front
// and back spacing differ the mean centre line is used.
func (p Plan) ShelfRect() sdf.Box2 {
	mid := (p.Back.CenterToCenter + p.Front.CenterToCenter) / 4
	w := p.Geometry.Shelf.Width
	return sdf.Box2{
		Min: v2.Vec{X: mid - w/2, Y: 0},
		Max: v2.Vec{X: mid + w/2, Y: p.Geometry.Shelf.Depth},
	}
}

// Brackets returns all four brackets: back-left, back-right, front-left,
// front-right.
func (p Plan) Brackets() []Bracket {
	b := p.Geometry.Bracket
	var out []Bracket
	for _, pp := range p.Positions() {
		for _, side := range solver.Sides {
			cx := p.PipeX(pp.Position, side)
			if side == solver.Left {
				cx -= pp.Result.Shift
			} else {
				cx += pp.Result.Shift
			}
			rect := sdf.Box2{
				Min: v2.Vec{X: cx - b.Width/2, Y: pp.Offset},
				Max: v2.Vec{X: cx + b.Width/2, Y: pp.Offset + b.Length},
			}
			out = append(out, Bracket{
				Position: pp.Position,
				Side:     side,
				Rect:     rect,
				Holes: []v2.Vec{
					{X: rect.Min.X + b.Holes.Left, Y: rect.Min.Y + b.Holes.Top},
					{X: rect.Max.X - b.Holes.Right, Y: rect.Min.Y + b.Holes.Top},
					{X: rect.Min.X + b.Holes.Left, Y: rect.Max.Y - b.Holes.Bottom},
					{X: rect.Max.X - b.Holes.Right, Y: rect.Max.Y - b.Holes.Bottom},
				},
			})
		}
	}
	return out
}
