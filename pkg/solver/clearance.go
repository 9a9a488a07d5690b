package solver

// Epsilon absorbs floating-point noise when a clearance is exactly zero.
const Epsilon = 1e-9

// Side selects the left or right pipe.
type Side string

const (
	Left  Side = "left"
	Right Side = "right"
)

// Sides lists both sides, left first.
var Sides = []Side{Left, Right}

// ClearanceCheck reports the air gap between a piece of hardware and the
// feature it must stay clear of.
//
// Gap is signed: negative means overlap. Clearance is Gap minus Required, also
// signed, and IsOk holds when Clearance is non-negative.
type ClearanceCheck struct {
	Side      Side    `json:"side"`
	Gap       float64 `json:"gap"`
	Required  float64 `json:"required"`
	Clearance float64 `json:"clearance"`
	IsOk      bool    `json:"is_ok"`
}

func newCheck(side Side, gap, required float64) ClearanceCheck {
	c := gap - required
	return ClearanceCheck{Side: side, Gap: gap, Required: required, Clearance: c, IsOk: c >= -Epsilon}
}

// NutToPipeClearance places the nut on the outer hole of the bracket on the
// given side, shifted by shift, and measures the gap between its inner flat
// and the pipe's outer surface.
//
// Coordinates run across the shelf with the left pipe centre at 0 and the
// right pipe centre at the centre-to-centre spacing.
func NutToPipeClearance(side Side, shift float64, in Input) ClearanceCheck {
	g := in.Geometry
	c2c := in.CenterToCenter()
	r := g.Pipe.Radius()
	h := g.Bracket.HoleOffset()
	nut := g.Fastener.NutAcrossFlats / 2

	var gap float64
	if side == Left {
		bracket := -shift
		hole := bracket - h
		nutInner := hole + nut
		pipeOuter := -r
		gap = pipeOuter - nutInner
	} else {
		bracket := c2c + shift
		hole := bracket + h
		nutInner := hole - nut
		pipeOuter := c2c + r
		gap = nutInner - pipeOuter
	}
	return newCheck(side, gap, in.NutClearance)
}

// ButtonHeadClearance measures how far the edge of the screw head in the
// outer hole sits outside the shelf edge on the given side, against the
// bracket edge clearance.
func ButtonHeadClearance(side Side, shift float64, in Input) ClearanceCheck {
	g := in.Geometry
	c2c := in.CenterToCenter()
	overhang := in.ShelfOverhang()
	h := g.Bracket.HoleOffset()
	head := g.Fastener.ScrewHeadDiameter / 2

	var gap float64
	if side == Left {
		shelfEdge := -overhang
		headInner := -shift - h + head
		gap = shelfEdge - headInner
	} else {
		shelfEdge := c2c + overhang
		headInner := c2c + shift + h - head
		gap = headInner - shelfEdge
	}
	return newCheck(side, gap, g.Bracket.EdgeClearance)
}
