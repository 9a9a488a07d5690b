package fixture

import (
	"fmt"
	"strings"

	"github.com/matzehuels/shelfmount/pkg/units"
)

// Shelf is the board being mounted. Width runs between the pipes, Depth runs
// front to back and Thickness is the board height seen in the front view.
type Shelf struct {
	Width     float64 `json:"width" toml:"width"`
	Depth     float64 `json:"depth" toml:"depth"`
	Thickness float64 `json:"thickness" toml:"thickness"`
}

// Pipe is one of the two vertical supports. Overhang is how far the pipe is
// drawn beyond the shelf on each side in the top view.
type Pipe struct {
	Diameter float64 `json:"diameter" toml:"diameter"`
	Length   float64 `json:"length" toml:"length"`
	Overhang float64 `json:"overhang" toml:"overhang"`
}

// Radius returns half the pipe diameter.
func (p Pipe) Radius() float64 { return p.Diameter / 2 }

// HoleInsets are the distances from each bracket edge to the centre of the
// nearest hole column or row.
type HoleInsets struct {
	Left   float64 `json:"left" toml:"left"`
	Right  float64 `json:"right" toml:"right"`
	Top    float64 `json:"top" toml:"top"`
	Bottom float64 `json:"bottom" toml:"bottom"`
}

// Bracket is a flat clamp plate with four holes. Width runs across the shelf,
// Length runs along the shelf depth.
type Bracket struct {
	Width         float64    `json:"width" toml:"width"`
	Length        float64    `json:"length" toml:"length"`
	Thickness     float64    `json:"thickness" toml:"thickness"`
	Holes         HoleInsets `json:"holes" toml:"holes"`
	HoleDiameter  float64    `json:"hole_diameter" toml:"hole_diameter"`
	EdgeClearance float64    `json:"edge_clearance" toml:"edge_clearance"`
}

// HoleOffset is the distance from the bracket centre to its outer hole column.
func (b Bracket) HoleOffset() float64 { return b.Width/2 - b.Holes.Left }

// Fastener holds the screw head and hex cap nut dimensions.
type Fastener struct {
	ScrewHeadDiameter float64 `json:"screw_head_diameter" toml:"screw_head_diameter"`
	ScrewHeadHeight   float64 `json:"screw_head_height" toml:"screw_head_height"`
	NutAcrossFlats    float64 `json:"nut_across_flats" toml:"nut_across_flats"`
	NutAcrossCorners  float64 `json:"nut_across_corners" toml:"nut_across_corners"`
	NutHeight         float64 `json:"nut_height" toml:"nut_height"`
}

// NutGap is the preferred and smallest acceptable nut-to-pipe air gap.
type NutGap struct {
	Target  float64 `json:"target" toml:"target"`
	Minimum float64 `json:"minimum" toml:"minimum"`
}

// Geometry is the complete hardware description.
type Geometry struct {
	Shelf    Shelf    `json:"shelf" toml:"shelf"`
	Pipe     Pipe     `json:"pipe" toml:"pipe"`
	Bracket  Bracket  `json:"bracket" toml:"bracket"`
	Fastener Fastener `json:"fastener" toml:"fastener"`
	NutGap   NutGap   `json:"nut_gap" toml:"nut_gap"`
}

// Convention says how a pipe spacing was measured.
type Convention string

const (
	// ConventionCenter measures between pipe centres.
	ConventionCenter Convention = "center"
	// ConventionInner measures between the facing inner pipe surfaces.
	ConventionInner Convention = "inner"
)

// Conventions lists the accepted spacing conventions.
var Conventions = []Convention{ConventionCenter, ConventionInner}

// ParseConvention parses a convention name case-insensitively. An empty name
// selects ConventionCenter.
func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "center", "centre", "c2c":
		return ConventionCenter, nil
	case "inner", "inside":
		return ConventionInner, nil
	}
	return "", fmt.Errorf("unknown spacing convention %q (want center or inner)", s)
}

// Position selects one of the two depth positions on the shelf.
type Position string

const (
	// Back is the bracket pair nearest the wall.
	Back Position = "back"
	// Front is the bracket pair nearest the viewer.
	Front Position = "front"
)

// Positions lists both depth positions, back first.
var Positions = []Position{Back, Front}

// Spacing is the live, user-editable input. Front and Back are equal for
// parallel pipes.
type Spacing struct {
	Front        float64    `json:"front" toml:"front" bson:"front"`
	Back         float64    `json:"back" toml:"back" bson:"back"`
	Convention   Convention `json:"convention" toml:"convention" bson:"convention"`
	NutClearance float64    `json:"nut_clearance" toml:"nut_clearance" bson:"nut_clearance"`
}

// SharedSpacing returns a Spacing with one distance for both positions.
func SharedSpacing(distance float64, conv Convention, nutClearance float64) Spacing {
	return Spacing{Front: distance, Back: distance, Convention: conv, NutClearance: nutClearance}
}

// At returns the spacing at the given position.
func (s Spacing) At(p Position) float64 {
	if p == Back {
		return s.Back
	}
	return s.Front
}

// Shared reports whether front and back spacing are the same.
func (s Spacing) Shared() bool { return s.Front == s.Back }

// CenterToCenter converts a spacing measured in the given convention to a
// centre-to-centre distance.
func CenterToCenter(spacing float64, conv Convention, pipeDiameter float64) float64 {
	if conv == ConventionInner {
		return spacing + pipeDiameter
	}
	return spacing
}

// String renders the spacing for logs and status lines.
func (s Spacing) String() string {
	conv := s.Convention
	if conv == "" {
		conv = ConventionCenter
	}
	if s.Shared() {
		return fmt.Sprintf("%s %s, nut gap %s", units.FormatWithFraction(s.Front), conv, units.FormatMm(s.NutClearance, 2))
	}
	return fmt.Sprintf("front %s back %s %s, nut gap %s",
		units.FormatWithFraction(s.Front), units.FormatWithFraction(s.Back), conv, units.FormatMm(s.NutClearance, 2))
}
