// Package depth positions the front and back brackets along the shelf depth.
//
// In golden mode the space left after both brackets is split so that each
// edge inset relates to the gap between the brackets as 1 to φ (the
// "double golden ratio" picture-hanging rule). Flush mode puts both
// brackets against the shelf edges.
package depth

import (
	"fmt"
	"math"
	"strings"
)

// Phi is the golden ratio.
var Phi = (1 + math.Sqrt(5)) / 2

// Mode selects the placement rule.
type Mode string

const (
	ModeGolden Mode = "golden"
	ModeFlush  Mode = "flush"
)

// ParseMode parses a mode name. An empty name selects ModeGolden.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeGolden:
		return ModeGolden, nil
	case ModeFlush:
		return ModeFlush, nil
	}
	return "", fmt.Errorf("unknown depth mode %q (want golden or flush)", s)
}

// Placement is the depth layout of both brackets.
//
// Offsets are measured from the back edge of the shelf to the back edge of
// each bracket. When Free > 0, 2·Inset + Gap + 2·L equals the shelf depth.
type Placement struct {
	Free        float64 `json:"free"`
	Inset       float64 `json:"inset"`
	Gap         float64 `json:"gap"`
	BackOffset  float64 `json:"back_offset"`
	FrontOffset float64 `json:"front_offset"`
	Warning     bool    `json:"warning"`
}

// Place computes the depth layout for a shelf of depth d and brackets of
// length l. When the brackets do not fit (free span ≤ 0) the inset is zero
// and Warning is set.
func Place(d, l float64, mode Mode) Placement {
	p := Placement{Free: d - 2*l}
	if p.Free <= 0 {
		p.Warning = true
	} else if mode != ModeFlush {
		inset := p.Free / (2 * (1 + Phi))
		if !math.IsNaN(inset) && !math.IsInf(inset, 0) && inset > 0 {
			p.Inset = inset
		}
	}
	p.Gap = p.Free - 2*p.Inset
	p.BackOffset = p.Inset
	p.FrontOffset = d - p.Inset - l
	return p
}
