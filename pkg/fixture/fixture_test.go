package fixture

import (
	"errors"
	"math"
	"strings"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	errs "github.com/matzehuels/shelfmount/pkg/errors"
)

func TestDefaultValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if err := DefaultSpacingInput().Validate(); err != nil {
		t.Fatalf("DefaultSpacingInput().Validate() = %v", err)
	}
}

func TestDefaultValues(t *testing.T) {
	g := Default()
	if math.Abs(g.Bracket.Width-1.49606) > 1e-5 {
		t.Errorf("bracket width = %v", g.Bracket.Width)
	}
	if math.Abs(g.Bracket.HoleOffset()-0.39370) > 1e-5 {
		t.Errorf("hole offset = %v", g.Bracket.HoleOffset())
	}
	if g.Pipe.Radius() != 1.0743/2 {
		t.Errorf("pipe radius = %v", g.Pipe.Radius())
	}
}

func TestGeometryValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Geometry)
		field  string
	}{
		{"zero shelf width", func(g *Geometry) { g.Shelf.Width = 0 }, "shelf.width"},
		{"negative pipe", func(g *Geometry) { g.Pipe.Diameter = -1 }, "pipe.diameter"},
		{"NaN thickness", func(g *Geometry) { g.Bracket.Thickness = math.NaN() }, "bracket.thickness"},
		{"left inset too big", func(g *Geometry) { g.Bracket.Holes.Left = g.Bracket.Width / 2; g.Bracket.Holes.Right = g.Bracket.Width / 2 }, "bracket.holes.left"},
		{"top inset too big", func(g *Geometry) { g.Bracket.Holes.Top = g.Bracket.Length }, "bracket.holes.top"},
		{"asymmetric columns", func(g *Geometry) { g.Bracket.Holes.Right = g.Bracket.Holes.Left / 2 }, "bracket.holes.right"},
		{"corners below flats", func(g *Geometry) { g.Fastener.NutAcrossCorners = g.Fastener.NutAcrossFlats / 2 }, "fastener.nut_across_corners"},
		{"zero gap minimum", func(g *Geometry) { g.NutGap.Minimum = 0 }, "nut_gap.minimum"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Default()
			tt.mutate(&g)
			err := g.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errs.Is(err, errs.ErrCodeInvalidGeometry) {
				t.Errorf("code = %q", errs.GetCode(err))
			}
			var ve *errs.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error %T is not a ValidationError", err)
			}
			found := false
			for _, f := range ve.Fields {
				if f.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("fields %v do not include %s", ve.Fields, tt.field)
			}
		})
	}
}

func TestGeometryValidateReportsAll(t *testing.T) {
	var g Geometry
	var ve *errs.ValidationError
	if !errors.As(g.Validate(), &ve) {
		t.Fatal("zero geometry should be invalid")
	}
	if len(ve.Fields) < 20 {
		t.Errorf("got %d field errors, want every length reported", len(ve.Fields))
	}
}

func TestSpacingValidate(t *testing.T) {
	tests := []struct {
		name    string
		spacing Spacing
		wantErr bool
	}{
		{"shared", SharedSpacing(28, ConventionCenter, 0), false},
		{"independent", Spacing{Front: 28, Back: 29, Convention: ConventionInner, NutClearance: 0.04}, false},
		{"zero", SharedSpacing(0, ConventionCenter, 0), true},
		{"negative clearance", SharedSpacing(28, ConventionCenter, -0.1), true},
		{"bad convention", Spacing{Front: 1, Back: 1, Convention: "edge"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spacing.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errs.Is(err, errs.ErrCodeInvalidSpacing) {
				t.Errorf("code = %q", errs.GetCode(err))
			}
		})
	}
}

func TestSpacingAt(t *testing.T) {
	s := Spacing{Front: 28, Back: 29}
	if s.At(Front) != 28 || s.At(Back) != 29 {
		t.Errorf("At: front %v back %v", s.At(Front), s.At(Back))
	}
	if s.Shared() {
		t.Error("Shared() = true for different spacings")
	}
	if !strings.Contains(s.String(), "front") {
		t.Errorf("String() = %q", s.String())
	}
}

func TestCenterToCenter(t *testing.T) {
	if got := CenterToCenter(28, ConventionInner, 1.0743); got != 29.0743 {
		t.Errorf("inner: %v", got)
	}
	if got := CenterToCenter(28, ConventionCenter, 1.0743); got != 28 {
		t.Errorf("center: %v", got)
	}
}

func TestParseConvention(t *testing.T) {
	for in, want := range map[string]Convention{"": ConventionCenter, "Center": ConventionCenter, "inner": ConventionInner} {
		got, err := ParseConvention(in)
		if err != nil || got != want {
			t.Errorf("ParseConvention(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseConvention("outer"); err == nil {
		t.Error("ParseConvention(outer) should fail")
	}
}

func TestBracketProfile(t *testing.T) {
	b := Default().Bracket
	p, err := b.Profile()
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if d := p.Evaluate(v2.Vec{}); d >= 0 {
		t.Errorf("centre should be inside the plate, distance %v", d)
	}
	for _, c := range b.HoleCentres() {
		if d := p.Evaluate(c); d <= 0 {
			t.Errorf("hole centre %v should be outside the profile, distance %v", c, d)
		}
	}
	if d := p.Evaluate(v2.Vec{X: b.Width}); d <= 0 {
		t.Errorf("point beyond the plate should be outside, distance %v", d)
	}
}
