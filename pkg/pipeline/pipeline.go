// Package pipeline runs the solve → scene → render sequence shared by the
// CLI, the TUI and the HTTP API.
//
// Solving is cheap and always recomputed from the inputs. Rendered
// artifacts are cached, keyed by a hash of the solved plan and of the
// render options that change the output bytes.
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, geometry, pipeline.Options{
//	    Spacing: spacing,
//	    View:    pipeline.ViewTemplate,
//	    Formats: []string{pipeline.FormatPDF},
//	})
//	if err != nil {
//	    return err
//	}
//	pdf := result.Artifacts[pipeline.FormatPDF]
//
// Stages can be run on their own with [Runner.Solve] and [Runner.Render].
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shelfmount/pkg/cache"
	"github.com/matzehuels/shelfmount/pkg/depth"
	errs "github.com/matzehuels/shelfmount/pkg/errors"
	"github.com/matzehuels/shelfmount/pkg/fixture"
	"github.com/matzehuels/shelfmount/pkg/placement"
	"github.com/matzehuels/shelfmount/pkg/scene"
	"github.com/matzehuels/shelfmount/pkg/solver"
)

// Defaults shared by the CLI, the TUI and the API.
const (
	DefaultWidth        = 1200.0
	DefaultHeight       = 600.0
	DefaultPadding      = 40.0
	DefaultShelfOpacity = 0.5
	DefaultView         = ViewTop
)

// Output formats.
const (
	FormatSVG    = "svg"
	FormatPDF    = "pdf"
	FormatPNG    = "png"    // rsvg-convert
	FormatCanvas = "canvas" // native rasteriser, PNG encoded
	FormatWebP   = "webp"   // native rasteriser, WebP encoded
	FormatDXF    = "dxf"    // bracket profile, independent of the view
	FormatJSON   = "json"
)

// Formats lists every output format.
var Formats = []string{FormatSVG, FormatPDF, FormatPNG, FormatCanvas, FormatWebP, FormatDXF, FormatJSON}

// View names, re-exported for callers that only import pipeline.
const (
	ViewTop         = string(scene.ViewTop)
	ViewFront       = string(scene.ViewFront)
	ViewTemplate    = string(scene.ViewTemplate)
	ViewCalibration = string(scene.ViewCalibration)
)

// Options configures one pipeline run. It doubles as the JSON body of the
// API's render endpoint.
type Options struct {
	Spacing   fixture.Spacing `json:"spacing"`
	Policy    string          `json:"policy,omitempty"`
	DepthMode string          `json:"depth_mode,omitempty"`
	Label     string          `json:"label,omitempty"`

	View         string   `json:"view,omitempty"`
	Formats      []string `json:"formats,omitempty"`
	Width        float64  `json:"width,omitempty"`
	Height       float64  `json:"height,omitempty"`
	Padding      float64  `json:"padding,omitempty"`
	ShelfOpacity float64  `json:"shelf_opacity,omitempty"`
	// Scale is the pixel scale for png (default 2) and the canvas formats
	// (default 1).
	Scale float64 `json:"scale,omitempty"`

	// Refresh bypasses cached artifacts.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result is the output of [Runner.Execute].
type Result struct {
	Plan      placement.Plan
	PlanHash  string
	Warnings  []placement.Warning
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds timings.
type Stats struct {
	SolveTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo reports how many artifacts came from the cache.
type CacheInfo struct {
	Hits      int
	RenderHit bool // every requested artifact was cached
}

// ValidateFormat checks a single format name.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateView checks a view name.
func ValidateView(view string) error {
	for _, v := range scene.Views {
		if string(v) == view {
			return nil
		}
	}
	return errs.New(errs.ErrCodeInvalidView, "invalid view %q (must be one of: top, front, template, calibration)", view)
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Spacing.Validate(); err != nil {
		return err
	}
	if _, err := o.policy(); err != nil {
		return err
	}
	if _, err := o.depthMode(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateView(o.View); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.ShelfOpacity < 0 || o.ShelfOpacity > 1 {
		return errs.New(errs.ErrCodeInvalidInput, "shelf_opacity must be between 0 and 1 (got %g)", o.ShelfOpacity)
	}
	if o.Width < 0 || o.Height < 0 || o.Padding < 0 || o.Scale < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "width, height, padding and scale must not be negative")
	}
	o.validated = true
	return nil
}

// SetRenderDefaults fills in zero render options.
func (o *Options) SetRenderDefaults() {
	if o.View == "" {
		o.View = DefaultView
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.ShelfOpacity == 0 {
		o.ShelfOpacity = DefaultShelfOpacity
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

func (o *Options) policy() (solver.Policy, error) {
	p, err := solver.PolicyByName(o.Policy)
	if err != nil {
		return solver.Policy{}, errs.Wrap(errs.ErrCodeInvalidPolicy, err, "policy")
	}
	return p, nil
}

func (o *Options) depthMode() (depth.Mode, error) {
	m, err := depth.ParseMode(o.DepthMode)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInvalidInput, err, "depth_mode")
	}
	return m, nil
}

// PlacementOptions converts the solve options.
func (o *Options) PlacementOptions() (placement.Options, error) {
	p, err := o.policy()
	if err != nil {
		return placement.Options{}, err
	}
	m, err := o.depthMode()
	if err != nil {
		return placement.Options{}, err
	}
	return placement.Options{Policy: p, DepthMode: m, Label: o.Label}, nil
}

// ArtifactKeyOpts returns the cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Scale: o.Scale}
	if format == FormatDXF {
		return k
	}
	k.View = o.View
	k.Label = o.Label
	k.Width, k.Height, k.Padding = o.Width, o.Height, o.Padding
	k.ShelfOpacity = o.ShelfOpacity
	return k
}

// Extension returns the file extension for a format.
func Extension(format string) string {
	if format == FormatCanvas {
		return "png"
	}
	return format
}

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	case FormatPNG, FormatCanvas:
		return "image/png"
	case FormatWebP:
		return "image/webp"
	case FormatDXF:
		return "image/vnd.dxf"
	case FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}
