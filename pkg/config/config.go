// Package config loads the shelfmount configuration file.
//
// The file is TOML. Every length accepts a length expression with an
// optional unit suffix; hardware dimensions default to millimetres and
// shelf and pipe dimensions to inches:
//
//	[shelf]
//	width = 30
//	depth = "12in"
//
//	[bracket]
//	width = 38          # mm
//	hole_diameter = "4.5mm"
//
//	[layout]
//	spacing = "28-31/32"
//	convention = "center"
//
// Keys that are absent keep the values of [Default], so an empty file
// describes the reference hardware.
package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/shelfmount/pkg/cache"
	"github.com/matzehuels/shelfmount/pkg/depth"
	errs "github.com/matzehuels/shelfmount/pkg/errors"
	"github.com/matzehuels/shelfmount/pkg/favorites"
	"github.com/matzehuels/shelfmount/pkg/fixture"
	"github.com/matzehuels/shelfmount/pkg/solver"
)

// Config is the whole configuration file.
type Config struct {
	Shelf    Shelf            `toml:"shelf"`
	Pipe     Pipe             `toml:"pipe"`
	Bracket  Bracket          `toml:"bracket"`
	Fastener Fastener         `toml:"fastener"`
	NutGap   NutGap           `toml:"nut_gap"`
	Layout   Layout           `toml:"layout"`
	Display  Display          `toml:"display"`
	Storage  favorites.Config `toml:"storage"`
	Cache    Cache            `toml:"cache"`
	Server   Server           `toml:"server"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
	// Undecoded lists keys in the file that matched no field.
	Undecoded []string `toml:"-"`
}

type Shelf struct {
	Width     Inches `toml:"width"`
	Depth     Inches `toml:"depth"`
	Thickness Inches `toml:"thickness"`
}

type Pipe struct {
	Diameter Inches `toml:"diameter"`
	Length   Inches `toml:"length"`
	Overhang Inches `toml:"overhang"`
}

type Bracket struct {
	Width         Millimetres `toml:"width"`
	Length        Millimetres `toml:"length"`
	Thickness     Millimetres `toml:"thickness"`
	HoleLeft      Millimetres `toml:"hole_left"`
	HoleRight     Millimetres `toml:"hole_right"`
	HoleTop       Millimetres `toml:"hole_top"`
	HoleBottom    Millimetres `toml:"hole_bottom"`
	HoleDiameter  Millimetres `toml:"hole_diameter"`
	EdgeClearance Inches      `toml:"edge_clearance"`
}

type Fastener struct {
	ScrewHeadDiameter Millimetres `toml:"screw_head_diameter"`
	ScrewHeadHeight   Millimetres `toml:"screw_head_height"`
	NutAcrossFlats    Millimetres `toml:"nut_across_flats"`
	NutAcrossCorners  Millimetres `toml:"nut_across_corners"`
	NutHeight         Millimetres `toml:"nut_height"`
}

type NutGap struct {
	Target  Millimetres `toml:"target"`
	Minimum Millimetres `toml:"minimum"`
}

// Layout holds the starting inputs for a session.
type Layout struct {
	Spacing Inches `toml:"spacing"`
	// BackSpacing is the back spacing for non-parallel pipes; zero means the
	// same as Spacing.
	BackSpacing Inches `toml:"back_spacing,omitempty"`
	Convention  string `toml:"convention"`
	// NutClearance defaults to the nut gap target when unset.
	NutClearance *Millimetres `toml:"nut_clearance,omitempty"`
	Policy       string       `toml:"policy"`
	DepthMode    string       `toml:"depth_mode"`
	Label        string       `toml:"label,omitempty"`
}

// Display controls rendering.
type Display struct {
	ShelfOpacity   float64 `toml:"shelf_opacity"`
	Width          float64 `toml:"width"`
	Height         float64 `toml:"height"`
	Padding        float64 `toml:"padding"`
	MaxDenominator int     `toml:"max_denominator"`
}

// Cache selects where rendered artifacts are kept. Backend is file, redis
// or none.
type Cache struct {
	Backend string            `toml:"backend"`
	Dir     string            `toml:"dir,omitempty"`
	TTL     time.Duration     `toml:"ttl"`
	Redis   cache.RedisConfig `toml:"redis"`
}

type Server struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
}

// Default returns the configuration of the reference hardware.
func Default() Config {
	g := fixture.Default()
	return Config{
		Shelf: Shelf{Width: Inches(g.Shelf.Width), Depth: Inches(g.Shelf.Depth), Thickness: Inches(g.Shelf.Thickness)},
		Pipe:  Pipe{Diameter: Inches(g.Pipe.Diameter), Length: Inches(g.Pipe.Length), Overhang: Inches(g.Pipe.Overhang)},
		Bracket: Bracket{
			Width:         Millimetres(g.Bracket.Width),
			Length:        Millimetres(g.Bracket.Length),
			Thickness:     Millimetres(g.Bracket.Thickness),
			HoleLeft:      Millimetres(g.Bracket.Holes.Left),
			HoleRight:     Millimetres(g.Bracket.Holes.Right),
			HoleTop:       Millimetres(g.Bracket.Holes.Top),
			HoleBottom:    Millimetres(g.Bracket.Holes.Bottom),
			HoleDiameter:  Millimetres(g.Bracket.HoleDiameter),
			EdgeClearance: Inches(g.Bracket.EdgeClearance),
		},
		Fastener: Fastener{
			ScrewHeadDiameter: Millimetres(g.Fastener.ScrewHeadDiameter),
			ScrewHeadHeight:   Millimetres(g.Fastener.ScrewHeadHeight),
			NutAcrossFlats:    Millimetres(g.Fastener.NutAcrossFlats),
			NutAcrossCorners:  Millimetres(g.Fastener.NutAcrossCorners),
			NutHeight:         Millimetres(g.Fastener.NutHeight),
		},
		NutGap: NutGap{Target: Millimetres(g.NutGap.Target), Minimum: Millimetres(g.NutGap.Minimum)},
		Layout: Layout{
			Spacing:    Inches(fixture.DefaultSpacing),
			Convention: string(fixture.ConventionCenter),
			Policy:     solver.PolicyStandard.Name,
			DepthMode:  string(depth.ModeGolden),
		},
		Display: Display{ShelfOpacity: 0.5, Width: 1200, Height: 600, Padding: 40, MaxDenominator: 32},
		Storage: favorites.Config{Backend: favorites.BackendFile},
		Cache:   Cache{Backend: "file", TTL: cache.DefaultTTL},
		Server:  Server{Addr: ":8080", ReadTimeout: 30 * time.Second, WriteTimeout: 60 * time.Second},
	}
}

// Load reads path on top of [Default]. An empty path means [DefaultPath];
// a missing file at the default location yields the defaults, while a
// missing explicit path is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
		explicit = os.Getenv(EnvConfig) != ""
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "open config")
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "%s", path)
	}
	cfg.Path = path
	return cfg, nil
}

// Decode reads TOML from r on top of [Default] and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config")
	}
	for _, k := range md.Undecoded() {
		cfg.Undecoded = append(cfg.Undecoded, k.String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write encodes cfg as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// WriteFile writes cfg to path, creating parent directories.
func (c Config) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "create config dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "create config")
	}
	if err := c.Write(f); err != nil {
		f.Close()
		return errs.Wrap(errs.ErrCodeInternal, err, "write config")
	}
	return f.Close()
}

// Geometry converts the hardware sections.
func (c Config) Geometry() fixture.Geometry {
	return fixture.Geometry{
		Shelf: fixture.Shelf{Width: float64(c.Shelf.Width), Depth: float64(c.Shelf.Depth), Thickness: float64(c.Shelf.Thickness)},
		Pipe:  fixture.Pipe{Diameter: float64(c.Pipe.Diameter), Length: float64(c.Pipe.Length), Overhang: float64(c.Pipe.Overhang)},
		Bracket: fixture.Bracket{
			Width:     float64(c.Bracket.Width),
			Length:    float64(c.Bracket.Length),
			Thickness: float64(c.Bracket.Thickness),
			Holes: fixture.HoleInsets{
				Left:   float64(c.Bracket.HoleLeft),
				Right:  float64(c.Bracket.HoleRight),
				Top:    float64(c.Bracket.HoleTop),
				Bottom: float64(c.Bracket.HoleBottom),
			},
			HoleDiameter:  float64(c.Bracket.HoleDiameter),
			EdgeClearance: float64(c.Bracket.EdgeClearance),
		},
		Fastener: fixture.Fastener{
			ScrewHeadDiameter: float64(c.Fastener.ScrewHeadDiameter),
			ScrewHeadHeight:   float64(c.Fastener.ScrewHeadHeight),
			NutAcrossFlats:    float64(c.Fastener.NutAcrossFlats),
			NutAcrossCorners:  float64(c.Fastener.NutAcrossCorners),
			NutHeight:         float64(c.Fastener.NutHeight),
		},
		NutGap: fixture.NutGap{Target: float64(c.NutGap.Target), Minimum: float64(c.NutGap.Minimum)},
	}
}

// Spacing returns the starting spacing from the layout section.
func (c Config) Spacing() (fixture.Spacing, error) {
	conv, err := fixture.ParseConvention(c.Layout.Convention)
	if err != nil {
		return fixture.Spacing{}, errs.Wrap(errs.ErrCodeInvalidSpacing, err, "layout.convention")
	}
	clearance := float64(c.NutGap.Target)
	if c.Layout.NutClearance != nil {
		clearance = float64(*c.Layout.NutClearance)
	}
	s := fixture.SharedSpacing(float64(c.Layout.Spacing), conv, clearance)
	if c.Layout.BackSpacing != 0 {
		s.Back = float64(c.Layout.BackSpacing)
	}
	return s, nil
}

// Policy resolves the layout policy name.
func (c Config) Policy() (solver.Policy, error) {
	p, err := solver.PolicyByName(c.Layout.Policy)
	if err != nil {
		return solver.Policy{}, errs.Wrap(errs.ErrCodeInvalidPolicy, err, "layout.policy")
	}
	return p, nil
}

// DepthMode resolves the layout depth mode.
func (c Config) DepthMode() (depth.Mode, error) {
	m, err := depth.ParseMode(c.Layout.DepthMode)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInvalidConfig, err, "layout.depth_mode")
	}
	return m, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Geometry().Validate(); err != nil {
		return err
	}
	s, err := c.Spacing()
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if _, err := c.DepthMode(); err != nil {
		return err
	}

	v := &errs.ValidationError{Code: errs.ErrCodeInvalidConfig}
	if c.Display.ShelfOpacity < 0 || c.Display.ShelfOpacity > 1 {
		v.Add("display.shelf_opacity", "must be between 0 and 1 (got %g)", c.Display.ShelfOpacity)
	}
	v.Positive("display.width", c.Display.Width)
	v.Positive("display.height", c.Display.Height)
	v.NonNegative("display.padding", c.Display.Padding)
	if d := c.Display.MaxDenominator; d < 1 || d&(d-1) != 0 {
		v.Add("display.max_denominator", "must be a power of two (got %d)", d)
	}
	switch c.Cache.Backend {
	case "", "file", "redis", "none":
	default:
		v.Add("cache.backend", "unknown backend %q (want file, redis or none)", c.Cache.Backend)
	}
	switch c.Storage.Backend {
	case "", favorites.BackendFile, favorites.BackendRedis, favorites.BackendMongo:
	default:
		v.Add("storage.backend", "unknown backend %q (want file, redis or mongo)", c.Storage.Backend)
	}
	return v.Err()
}
