package placement

import (
	"github.com/matzehuels/shelfmount/pkg/depth"
	"github.com/matzehuels/shelfmount/pkg/fixture"
	"github.com/matzehuels/shelfmount/pkg/solver"
)

// Options tune how a plan is computed. The zero value uses the standard
// policy and golden depth placement.
type Options struct {
	Policy    solver.Policy
	DepthMode depth.Mode
	Label     string
}

// Measurements are the distances marked on the shelf before drilling.
type Measurements struct {
	// BracketEdgeFromShelfEdge is the distance from the shelf's side edge to
	// the bracket's outer edge; positive when the bracket sticks out.
	BracketEdgeFromShelfEdge float64 `json:"bracket_edge_from_shelf_edge"`
	// InnerHoleFromShelfEdge is the distance from the shelf's side edge
	// inward to the centre of the inner drill hole.
	InnerHoleFromShelfEdge float64 `json:"inner_hole_from_shelf_edge"`
}

// PositionPlan is the solved layout at one depth position.
type PositionPlan struct {
	Position       fixture.Position        `json:"position"`
	Spacing        float64                 `json:"spacing"`
	CenterToCenter float64                 `json:"center_to_center"`
	ShelfOverhang  float64                 `json:"shelf_overhang"`
	Offset         float64                 `json:"offset"`
	Result         solver.Result           `json:"result"`
	Nut            []solver.ClearanceCheck `json:"nut"`
	ButtonHead     []solver.ClearanceCheck `json:"button_head"`
	Measurements   Measurements            `json:"measurements"`
}

// OK reports whether the position solved without conflict and every
// clearance check passed.
func (p PositionPlan) OK() bool {
	if p.Result.HasConflict {
		return false
	}
	for _, c := range p.Nut {
		if !c.IsOk {
			return false
		}
	}
	for _, c := range p.ButtonHead {
		if !c.IsOk {
			return false
		}
	}
	return true
}

// Plan is the complete mounting layout.
type Plan struct {
	Label    string           `json:"label,omitempty"`
	Geometry fixture.Geometry `json:"geometry"`
	Spacing  fixture.Spacing  `json:"spacing"`
	Policy   string           `json:"policy"`
	Depth    depth.Placement  `json:"depth"`
	Back     PositionPlan     `json:"back"`
	Front    PositionPlan     `json:"front"`
}

// At returns the plan for one position.
func (p Plan) At(pos fixture.Position) PositionPlan {
	if pos == fixture.Back {
		return p.Back
	}
	return p.Front
}

// Positions returns the back and front plans in that order.
func (p Plan) Positions() []PositionPlan {
	return []PositionPlan{p.Back, p.Front}
}

// HasConflict reports whether either position is infeasible.
func (p Plan) HasConflict() bool {
	return p.Back.Result.HasConflict || p.Front.Result.HasConflict
}

// OK reports whether the plan needs no warnings at all.
func (p Plan) OK() bool {
	return len(p.Warnings()) == 0
}

// Compute validates its input and builds the plan. Validation failures are
// returned as errors; geometric infeasibility is reported through the plan.
func Compute(g fixture.Geometry, s fixture.Spacing, opts Options) (Plan, error) {
	if err := g.Validate(); err != nil {
		return Plan{}, err
	}
	if err := s.Validate(); err != nil {
		return Plan{}, err
	}
	if s.Convention == "" {
		s.Convention = fixture.ConventionCenter
	}
	policy := opts.Policy
	if len(policy.Bounds) == 0 {
		policy = solver.PolicyStandard
	}

	plan := Plan{
		Label:    opts.Label,
		Geometry: g,
		Spacing:  s,
		Policy:   policy.Name,
		Depth:    depth.Place(g.Shelf.Depth, g.Bracket.Length, opts.DepthMode),
	}
	plan.Back = solvePosition(g, s, fixture.Back, policy, plan.Depth.BackOffset, nil)
	if s.Shared() {
		plan.Front = solvePosition(g, s, fixture.Front, policy, plan.Depth.FrontOffset, &plan.Back.Result)
	} else {
		plan.Front = solvePosition(g, s, fixture.Front, policy, plan.Depth.FrontOffset, nil)
	}
	return plan, nil
}

func solvePosition(g fixture.Geometry, s fixture.Spacing, pos fixture.Position, policy solver.Policy, offset float64, shared *solver.Result) PositionPlan {
	in := solver.InputFor(g, s, pos, policy)

	var res solver.Result
	if shared != nil {
		res = *shared
	} else {
		res = solver.Solve(in)
	}

	pp := PositionPlan{
		Position:       pos,
		Spacing:        in.Spacing,
		CenterToCenter: in.CenterToCenter(),
		ShelfOverhang:  in.ShelfOverhang(),
		Offset:         offset,
		Result:         res,
	}
	for _, side := range solver.Sides {
		pp.Nut = append(pp.Nut, solver.NutToPipeClearance(side, res.Shift, in))
		if hasBound(policy, solver.BoundButtonHead) {
			pp.ButtonHead = append(pp.ButtonHead, solver.ButtonHeadClearance(side, res.Shift, in))
		}
	}

	h := g.Bracket.HoleOffset()
	pp.Measurements = Measurements{
		BracketEdgeFromShelfEdge: res.Shift + g.Bracket.Width/2 - pp.ShelfOverhang,
		InnerHoleFromShelfEdge:   pp.ShelfOverhang - res.Shift + h,
	}
	return pp
}

func hasBound(p solver.Policy, name solver.BoundName) bool {
	for _, b := range p.Bounds {
		if b == name {
			return true
		}
	}
	return false
}
