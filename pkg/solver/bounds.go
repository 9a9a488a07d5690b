package solver

import (
	"fmt"
	"math"
	"strings"
)

// BoundName identifies one lower bound on the shift.
type BoundName string

const (
	// BoundButtonHead keeps the screw head in the outer hole inside the
	// shelf edge by at least the bracket edge clearance.
	BoundButtonHead BoundName = "button_head"
	// BoundNut keeps the nut on the outer hole off the pipe by at least the
	// required air gap.
	BoundNut BoundName = "nut"
)

// BoundFunc computes one lower bound from normalised input.
type BoundFunc func(in Input) float64

var boundFuncs = map[BoundName]BoundFunc{
	BoundButtonHead: ButtonHeadBound,
	BoundNut:        NutBound,
}

// ButtonHeadBound is the shift at which the screw head in the outer hole sits
// exactly EdgeClearance inside the shelf edge. It is negative when the bound
// is already met at zero shift.
func ButtonHeadBound(in Input) float64 {
	g := in.Geometry
	return in.ShelfOverhang() - g.Bracket.HoleOffset() + g.Fastener.ScrewHeadDiameter/2 + g.Bracket.EdgeClearance
}

// NutBound is the shift at which the nut's inner flat sits exactly
// NutClearance away from the pipe surface, clamped at zero.
func NutBound(in Input) float64 {
	g := in.Geometry
	return math.Max(0, g.Pipe.Radius()-g.Bracket.HoleOffset()+g.Fastener.NutAcrossFlats/2+in.NutClearance)
}

// Policy is an ordered set of lower bounds combined with max.
type Policy struct {
	Name   string
	Bounds []BoundName
}

var (
	// PolicyStandard applies the button-head and nut bounds.
	PolicyStandard = Policy{Name: "standard", Bounds: []BoundName{BoundButtonHead, BoundNut}}
	// PolicyNutOnly drops the button-head bound, for hardware whose screw
	// heads are recessed or otherwise unconstrained by the shelf edge.
	PolicyNutOnly = Policy{Name: "nut-only", Bounds: []BoundName{BoundNut}}
)

// Policies lists the built-in policies.
var Policies = []Policy{PolicyStandard, PolicyNutOnly}

// PolicyByName looks up a built-in policy. An empty name selects
// PolicyStandard.
func PolicyByName(name string) (Policy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return PolicyStandard, nil
	}
	for _, p := range Policies {
		if p.Name == n {
			return p, nil
		}
	}
	return Policy{}, fmt.Errorf("unknown policy %q", name)
}

// PolicyNames returns the names of the built-in policies.
func PolicyNames() []string {
	names := make([]string, len(Policies))
	for i, p := range Policies {
		names[i] = p.Name
	}
	return names
}
