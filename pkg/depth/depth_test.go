package depth

import (
	"math"
	"testing"
)

func TestPlaceGolden(t *testing.T) {
	const d, l = 12.0, 2.3622
	p := Place(d, l, ModeGolden)

	want := (d - 2*l) / (2 * (1 + Phi))
	if math.Abs(p.Inset-want) > 1e-12 {
		t.Errorf("Inset = %v, want %v", p.Inset, want)
	}
	if got := 2*p.Inset + p.Gap + 2*l; math.Abs(got-d) > 1e-12 {
		t.Errorf("2*inset + gap + 2L = %v, want %v", got, d)
	}
	if math.Abs(p.Gap/p.Inset-2*Phi) > 1e-9 {
		t.Errorf("gap/inset = %v, want 2φ", p.Gap/p.Inset)
	}
	if p.Gap <= p.Inset {
		t.Errorf("gap %v should exceed inset %v", p.Gap, p.Inset)
	}
	if p.BackOffset != p.Inset || math.Abs(p.FrontOffset-(d-p.Inset-l)) > 1e-12 {
		t.Errorf("offsets back %v front %v", p.BackOffset, p.FrontOffset)
	}
	if p.Warning {
		t.Error("unexpected warning")
	}
}

func TestPlaceNoRoom(t *testing.T) {
	tests := []struct {
		name string
		d, l float64
	}{
		{"exact fit", 4, 2},
		{"overlap", 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Place(tt.d, tt.l, ModeGolden)
			if p.Inset != 0 || !p.Warning {
				t.Errorf("Place(%v, %v) = %+v, want zero inset with warning", tt.d, tt.l, p)
			}
		})
	}
}

func TestPlaceFlush(t *testing.T) {
	p := Place(12, 2, ModeFlush)
	if p.Inset != 0 || p.Gap != 8 || p.FrontOffset != 10 || p.Warning {
		t.Errorf("flush placement = %+v", p)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeGolden, "Golden": ModeGolden, "flush": ModeFlush} {
		if got, err := ParseMode(in); err != nil || got != want {
			t.Errorf("ParseMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseMode("thirds"); err == nil {
		t.Error("ParseMode accepted an unknown mode")
	}
}
