package placement

import (
	"fmt"

	"github.com/matzehuels/shelfmount/pkg/fixture"
	"github.com/matzehuels/shelfmount/pkg/solver"
	"github.com/matzehuels/shelfmount/pkg/units"
)

// WarningKind classifies a plan warning.
type WarningKind string

const (
	WarnConflict       WarningKind = "conflict"
	WarnNutClearance   WarningKind = "nut_clearance"
	WarnHeadClearance  WarningKind = "button_head_clearance"
	WarnDepth          WarningKind = "depth"
	WarnNutGapTooSmall WarningKind = "nut_gap_below_minimum"
)

// Warning is one problem a user has to see. Position and Side are empty when
// they do not apply.
type Warning struct {
	Kind     WarningKind      `json:"kind"`
	Position fixture.Position `json:"position,omitempty"`
	Side     solver.Side      `json:"side,omitempty"`
	Value    float64          `json:"value"`
	Message  string           `json:"message"`
}

func (w Warning) String() string { return w.Message }

// Warnings lists every conflict and failed check in the plan. Positions that
// share one solve are reported once.
func (p Plan) Warnings() []Warning {
	var out []Warning

	if p.Depth.Warning {
		out = append(out, Warning{
			Kind:    WarnDepth,
			Value:   p.Depth.Free,
			Message: fmt.Sprintf("brackets do not fit the shelf depth (free span %s)", units.FormatInches(p.Depth.Free, false)),
		})
	}
	if p.Spacing.NutClearance < p.Geometry.NutGap.Minimum-solver.Epsilon {
		out = append(out, Warning{
			Kind:  WarnNutGapTooSmall,
			Value: p.Spacing.NutClearance,
			Message: fmt.Sprintf("nut gap %s is below the %s minimum",
				units.FormatMm(p.Spacing.NutClearance, 2), units.FormatMm(p.Geometry.NutGap.Minimum, 2)),
		})
	}

	positions := p.Positions()
	if p.Spacing.Shared() {
		positions = positions[1:]
	}
	for _, pp := range positions {
		pos := pp.Position
		if p.Spacing.Shared() {
			pos = ""
		}
		r := pp.Result
		if r.HasConflict {
			out = append(out, Warning{
				Kind:     WarnConflict,
				Position: pos,
				Value:    r.MinShift - r.MaxShift,
				Message: fmt.Sprintf("%srequired shift %s exceeds the maximum %s; inner holes will sit too close to the bracket centre",
					prefix(pos), units.FormatInches(r.MinShift, false), units.FormatInches(r.MaxShift, false)),
			})
		}
		for _, c := range pp.Nut {
			if !c.IsOk {
				out = append(out, Warning{
					Kind: WarnNutClearance, Position: pos, Side: c.Side, Value: c.Clearance,
					Message: fmt.Sprintf("%s%s nut gap %s is short of the required %s",
						prefix(pos), c.Side, units.FormatMm(c.Gap, 2), units.FormatMm(c.Required, 2)),
				})
			}
		}
		for _, c := range pp.ButtonHead {
			if !c.IsOk {
				out = append(out, Warning{
					Kind: WarnHeadClearance, Position: pos, Side: c.Side, Value: c.Clearance,
					Message: fmt.Sprintf("%s%s screw head clears the shelf edge by %s, needs %s",
						prefix(pos), c.Side, units.FormatInches(c.Gap, false), units.FormatInches(c.Required, false)),
				})
			}
		}
	}
	return out
}

func prefix(pos fixture.Position) string {
	if pos == "" {
		return ""
	}
	return string(pos) + ": "
}
