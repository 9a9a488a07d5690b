package config

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	errs "github.com/matzehuels/shelfmount/pkg/errors"
	"github.com/matzehuels/shelfmount/pkg/fixture"
)

const tol = 1e-9

func TestDefaultMatchesFixture(t *testing.T) {
	cfg := Default()
	if got, want := cfg.Geometry(), fixture.Default(); got != want {
		t.Errorf("Geometry() = %+v, want %+v", got, want)
	}
	s, err := cfg.Spacing()
	if err != nil {
		t.Fatalf("Spacing: %v", err)
	}
	if s != fixture.DefaultSpacingInput() {
		t.Errorf("Spacing() = %+v, want %+v", s, fixture.DefaultSpacingInput())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestDecode(t *testing.T) {
	src := `
[shelf]
width = 36
depth = "11-7/8"

[bracket]
width = 40
hole_diameter = "4.5mm"
edge_clearance = "1/8"

[layout]
spacing = "28-31/32"
back_spacing = "29in"
convention = "inner"
nut_clearance = 0
policy = "nut-only"
depth_mode = "flush"

[cache]
backend = "none"
ttl = "1h"

[storage]
backend = "redis"
[storage.redis]
addr = "redis:6379"
`
	cfg, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	g := cfg.Geometry()
	checks := []struct {
		name      string
		got, want float64
	}{
		{"shelf.width", g.Shelf.Width, 36},
		{"shelf.depth", g.Shelf.Depth, 11.875},
		{"shelf.thickness (default)", g.Shelf.Thickness, 1},
		{"bracket.width", g.Bracket.Width, 40 / 25.4},
		{"bracket.hole_diameter", g.Bracket.HoleDiameter, 4.5 / 25.4},
		{"bracket.edge_clearance", g.Bracket.EdgeClearance, 0.125},
		{"bracket.length (default)", g.Bracket.Length, 60 / 25.4},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > tol {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	s, err := cfg.Spacing()
	if err != nil {
		t.Fatalf("Spacing: %v", err)
	}
	want := fixture.Spacing{Front: 28.96875, Back: 29, Convention: fixture.ConventionInner, NutClearance: 0}
	if s != want {
		t.Errorf("Spacing() = %+v, want %+v", s, want)
	}
	if p, _ := cfg.Policy(); p.Name != "nut-only" {
		t.Errorf("Policy = %q", p.Name)
	}
	if cfg.Cache.Backend != "none" || cfg.Cache.TTL != time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Storage.Backend != "redis" || cfg.Storage.Redis.Addr != "redis:6379" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
}

func TestDecodeUndecoded(t *testing.T) {
	cfg, err := Decode(strings.NewReader("[shelf]\nwidht = 30\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(cfg.Undecoded) != 1 || cfg.Undecoded[0] != "shelf.widht" {
		t.Errorf("Undecoded = %v", cfg.Undecoded)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errs.Code
	}{
		{"syntax", "[shelf\n", errs.ErrCodeInvalidConfig},
		{"bad length", "[shelf]\nwidth = \"3//4\"\n", errs.ErrCodeInvalidConfig},
		{"zero width", "[shelf]\nwidth = 0\n", errs.ErrCodeInvalidGeometry},
		{"negative spacing", "[layout]\nspacing = -1\n", errs.ErrCodeInvalidSpacing},
		{"convention", "[layout]\nconvention = \"outer\"\n", errs.ErrCodeInvalidSpacing},
		{"policy", "[layout]\npolicy = \"loose\"\n", errs.ErrCodeInvalidPolicy},
		{"depth mode", "[layout]\ndepth_mode = \"silver\"\n", errs.ErrCodeInvalidConfig},
		{"opacity", "[display]\nshelf_opacity = 2\n", errs.ErrCodeInvalidConfig},
		{"denominator", "[display]\nmax_denominator = 10\n", errs.ErrCodeInvalidConfig},
		{"cache backend", "[cache]\nbackend = \"memcached\"\n", errs.ErrCodeInvalidConfig},
		{"storage backend", "[storage]\nbackend = \"sqlite\"\n", errs.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			if !errs.Is(err, tt.code) {
				t.Errorf("Decode = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), `width = "38mm"`) {
		t.Errorf("bracket width not written in mm:\n%s", buf.String())
	}

	cfg, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, want := cfg.Geometry(), fixture.Default()
	if math.Abs(got.Bracket.Width-want.Bracket.Width) > tol || math.Abs(got.Pipe.Diameter-want.Pipe.Diameter) > tol {
		t.Errorf("round trip geometry = %+v, want %+v", got, want)
	}
	if len(cfg.Undecoded) != 0 {
		t.Errorf("round trip left undecoded keys: %v", cfg.Undecoded)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing default path", func(t *testing.T) {
		t.Setenv(EnvConfig, "")
		t.Setenv("XDG_CONFIG_HOME", dir)
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.Path != "" {
			t.Errorf("Path = %q, want empty for defaults", cfg.Path)
		}
	})

	t.Run("missing explicit path", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "nope.toml")); !errs.Is(err, errs.ErrCodeInvalidConfig) {
			t.Errorf("Load = %v, want INVALID_CONFIG", err)
		}
	})

	t.Run("env path", func(t *testing.T) {
		path := filepath.Join(dir, "env.toml")
		if err := os.WriteFile(path, []byte("[pipe]\ndiameter = \"1in\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Setenv(EnvConfig, path)
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.Path != path || cfg.Geometry().Pipe.Diameter != 1 {
			t.Errorf("Load = %q, %v", cfg.Path, cfg.Geometry().Pipe.Diameter)
		}
	})

	t.Run("write file", func(t *testing.T) {
		path := filepath.Join(dir, "sub", "config.toml")
		if err := Default().WriteFile(path); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := Load(path); err != nil {
			t.Errorf("Load written file: %v", err)
		}
	})
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv(EnvConfig, "")

	if dir, _ := CacheDir(); dir != filepath.Join("/tmp/xdg-cache", AppName) {
		t.Errorf("CacheDir = %q", dir)
	}
	if p, _ := DefaultPath(); p != filepath.Join("/tmp/xdg-config", AppName, "config.toml") {
		t.Errorf("DefaultPath = %q", p)
	}

	t.Setenv("XDG_CACHE_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if dir, _ := CacheDir(); dir != filepath.Join(home, ".cache", AppName) {
		t.Errorf("CacheDir default = %q", dir)
	}
}

func TestLengthText(t *testing.T) {
	var in Inches
	if err := in.UnmarshalText([]byte("760mm")); err != nil || math.Abs(float64(in)-760/25.4) > tol {
		t.Errorf("Inches(760mm) = %v, %v", in, err)
	}
	var mm Millimetres
	if err := mm.UnmarshalText([]byte("1/16in")); err != nil || float64(mm) != 0.0625 {
		t.Errorf("Millimetres(1/16in) = %v, %v", mm, err)
	}
	if b, _ := Millimetres(7.9 / 25.4).MarshalText(); string(b) != "7.9mm" {
		t.Errorf("MarshalText = %s, want 7.9mm", b)
	}
	if b, _ := Inches(28.96875).MarshalText(); string(b) != "28.96875" {
		t.Errorf("MarshalText = %s", b)
	}
}
