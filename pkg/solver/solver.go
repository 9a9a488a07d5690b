package solver

import (
	"math"

	"github.com/matzehuels/shelfmount/pkg/fixture"
)

// Input is everything the solver needs for one depth position.
type Input struct {
	Geometry     fixture.Geometry
	Spacing      float64
	Convention   fixture.Convention
	NutClearance float64
	Policy       Policy
}

// CenterToCenter returns the pipe spacing as a centre-to-centre distance.
func (in Input) CenterToCenter() float64 {
	return fixture.CenterToCenter(in.Spacing, in.Convention, in.Geometry.Pipe.Diameter)
}

// ShelfOverhang is how far the shelf extends past each pipe centre.
func (in Input) ShelfOverhang() float64 {
	return (in.Geometry.Shelf.Width - in.CenterToCenter()) / 2
}

// InputFor builds the solver input for one position of a spacing record.
func InputFor(g fixture.Geometry, s fixture.Spacing, pos fixture.Position, p Policy) Input {
	return Input{
		Geometry:     g,
		Spacing:      s.At(pos),
		Convention:   s.Convention,
		NutClearance: s.NutClearance,
		Policy:       p,
	}
}

// BoundValue is one named lower bound and its value.
type BoundValue struct {
	Name  BoundName `json:"name"`
	Value float64   `json:"value"`
}

// Result is the outcome of one solve.
type Result struct {
	Shift       float64      `json:"shift"`
	MinShift    float64      `json:"min_shift"`
	MaxShift    float64      `json:"max_shift"`
	HasConflict bool         `json:"has_conflict"`
	Policy      string       `json:"policy"`
	Bounds      []BoundValue `json:"bounds"`
}

// Bound returns the value of the named bound and whether the policy used it.
func (r Result) Bound(name BoundName) (float64, bool) {
	for _, b := range r.Bounds {
		if b.Name == name {
			return b.Value, true
		}
	}
	return 0, false
}

// Solve computes the bracket shift. The zero Policy is treated as
// PolicyStandard.
func Solve(in Input) Result {
	p := in.Policy
	if len(p.Bounds) == 0 {
		p = PolicyStandard
	}

	res := Result{
		MaxShift: math.Max(0, in.Geometry.Bracket.HoleOffset()),
		MinShift: math.Inf(-1),
		Policy:   p.Name,
		Bounds:   make([]BoundValue, 0, len(p.Bounds)),
	}
	for _, name := range p.Bounds {
		fn, ok := boundFuncs[name]
		if !ok {
			continue
		}
		v := fn(in)
		res.Bounds = append(res.Bounds, BoundValue{Name: name, Value: v})
		if v > res.MinShift {
			res.MinShift = v
		}
	}
	if math.IsInf(res.MinShift, -1) {
		res.MinShift = 0
	}

	if res.MinShift > res.MaxShift {
		res.HasConflict = true
		res.Shift = res.MaxShift
	} else {
		res.Shift = math.Max(0, res.MinShift)
	}
	return res
}
