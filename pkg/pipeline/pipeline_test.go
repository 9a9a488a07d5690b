package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/shelfmount/pkg/cache"
	errs "github.com/matzehuels/shelfmount/pkg/errors"
	"github.com/matzehuels/shelfmount/pkg/fixture"
	"github.com/matzehuels/shelfmount/pkg/observability"
	"github.com/matzehuels/shelfmount/pkg/units"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"canvas", false},
		{"webp", false},
		{"dxf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errs.Is(err, errs.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errs.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateView(t *testing.T) {
	for _, v := range []string{"top", "front", "template", "calibration"} {
		if err := ValidateView(v); err != nil {
			t.Errorf("ValidateView(%q) = %v", v, err)
		}
	}
	if err := ValidateView("side"); !errs.Is(err, errs.ErrCodeInvalidView) {
		t.Errorf("ValidateView(side) = %v, want INVALID_VIEW", err)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Spacing: fixture.DefaultSpacingInput()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() = %v", err)
	}
	if opts.View != ViewTop {
		t.Errorf("View = %q, want top", opts.View)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight || opts.Padding != DefaultPadding {
		t.Errorf("viewport = %v×%v+%v", opts.Width, opts.Height, opts.Padding)
	}
	if opts.ShelfOpacity != DefaultShelfOpacity {
		t.Errorf("ShelfOpacity = %v", opts.ShelfOpacity)
	}
	if opts.Logger == nil {
		t.Error("Logger not set")
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	good := fixture.DefaultSpacingInput()
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"bad spacing", Options{Spacing: fixture.Spacing{Front: -1, Back: 1}}, errs.ErrCodeInvalidSpacing},
		{"bad policy", Options{Spacing: good, Policy: "loose"}, errs.ErrCodeInvalidPolicy},
		{"bad depth mode", Options{Spacing: good, DepthMode: "centre"}, errs.ErrCodeInvalidInput},
		{"bad view", Options{Spacing: good, View: "side"}, errs.ErrCodeInvalidView},
		{"bad format", Options{Spacing: good, Formats: []string{"gif"}}, errs.ErrCodeInvalidFormat},
		{"opacity", Options{Spacing: good, ShelfOpacity: 1.5}, errs.ErrCodeInvalidInput},
		{"negative width", Options{Spacing: good, Width: -10}, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errs.Is(err, tt.code) {
				t.Errorf("code = %s, want %s (%v)", errs.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{View: ViewFront, Width: 800, Label: "x"}
	if k := opts.ArtifactKeyOpts(FormatDXF); k.View != "" || k.Width != 0 || k.Label != "" {
		t.Errorf("dxf key depends on view options: %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatSVG); k.View != ViewFront || k.Width != 800 {
		t.Errorf("svg key = %+v", k)
	}
}

func TestExtensionAndContentType(t *testing.T) {
	if Extension(FormatCanvas) != "png" || Extension(FormatWebP) != "webp" {
		t.Error("unexpected extension")
	}
	if ContentType(FormatSVG) != "image/svg+xml" || ContentType(FormatCanvas) != "image/png" {
		t.Error("unexpected content type")
	}
	if ContentType("bogus") != "application/octet-stream" {
		t.Error("unknown format should be octet-stream")
	}
}

func TestParseSpacing(t *testing.T) {
	base := fixture.DefaultSpacingInput()

	t.Run("front sets both", func(t *testing.T) {
		s, err := ParseSpacing(SpacingInput{Front: "29 1/2"}, base)
		if err != nil {
			t.Fatal(err)
		}
		if s.Front != 29.5 || s.Back != 29.5 {
			t.Errorf("spacing = %+v", s)
		}
		if s.NutClearance != base.NutClearance {
			t.Errorf("nut clearance changed: %v", s.NutClearance)
		}
	})

	t.Run("split and millimetres", func(t *testing.T) {
		s, err := ParseSpacing(SpacingInput{Front: "29", Back: "762mm", Convention: "inner", NutClearance: "2"}, base)
		if err != nil {
			t.Fatal(err)
		}
		if s.Front != 29 || !units.ApproxEqual(s.Back, 30, 1e-9) {
			t.Errorf("spacing = %+v", s)
		}
		if s.Convention != fixture.ConventionInner {
			t.Errorf("convention = %q", s.Convention)
		}
		if !units.ApproxEqual(s.NutClearance, units.ToInches(2), 1e-12) {
			t.Errorf("nut clearance = %v", s.NutClearance)
		}
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			in   SpacingInput
			code errs.Code
		}{
			{SpacingInput{Front: "abc"}, errs.ErrCodeUnparseableLength},
			{SpacingInput{Back: "1//2"}, errs.ErrCodeUnparseableLength},
			{SpacingInput{Convention: "outer"}, errs.ErrCodeInvalidSpacing},
			{SpacingInput{Front: "-3"}, errs.ErrCodeInvalidSpacing},
		}
		for _, tt := range tests {
			_, err := ParseSpacing(tt.in, base)
			if !errs.Is(err, tt.code) {
				t.Errorf("ParseSpacing(%+v) = %v, want %s", tt.in, err, tt.code)
			}
		}
	})
}

type countingHooks struct {
	observability.NoopCacheHooks
	observability.NoopPipelineHooks
	mu      sync.Mutex
	hits    int
	misses  int
	sets    int
	solves  int
	renders int
}

func (h *countingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *countingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *countingHooks) OnCacheSet(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sets++
}

func (h *countingHooks) OnSolveComplete(context.Context, bool, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.solves++
}

func (h *countingHooks) OnRenderComplete(context.Context, string, []string, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renders++
}

func TestRunnerExecute(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetCacheHooks(hooks)
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{
		Spacing: fixture.DefaultSpacingInput(),
		Formats: []string{FormatSVG, FormatJSON},
	}
	ctx := context.Background()

	first, err := runner.Execute(ctx, fixture.Default(), opts)
	if err != nil {
		t.Fatalf("Execute() = %v", err)
	}
	if !bytes.HasPrefix(first.Artifacts[FormatSVG], []byte("<svg")) {
		t.Errorf("svg artifact = %.40q", first.Artifacts[FormatSVG])
	}
	var decoded struct {
		OK bool `json:"ok"`
	}
	if err := json.Unmarshal(first.Artifacts[FormatJSON], &decoded); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if decoded.OK != first.Plan.OK() {
		t.Errorf("json ok = %v, plan ok = %v", decoded.OK, first.Plan.OK())
	}
	if first.CacheInfo.RenderHit || first.CacheInfo.Hits != 0 {
		t.Errorf("first run cache info = %+v", first.CacheInfo)
	}
	if first.PlanHash == "" {
		t.Error("empty plan hash")
	}

	second, err := runner.Execute(ctx, fixture.Default(), opts)
	if err != nil {
		t.Fatalf("Execute() second = %v", err)
	}
	if !second.CacheInfo.RenderHit || second.CacheInfo.Hits != 2 {
		t.Errorf("second run cache info = %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}
	if second.PlanHash != first.PlanHash {
		t.Error("plan hash not stable")
	}

	opts.Refresh = true
	third, err := runner.Execute(ctx, fixture.Default(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.Hits != 0 {
		t.Errorf("refresh served %d artifacts from cache", third.CacheInfo.Hits)
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if hooks.solves != 3 || hooks.renders != 3 {
		t.Errorf("solves = %d renders = %d, want 3 and 3", hooks.solves, hooks.renders)
	}
	if hooks.hits != 2 || hooks.misses != 2 || hooks.sets != 4 {
		t.Errorf("hits = %d misses = %d sets = %d", hooks.hits, hooks.misses, hooks.sets)
	}
}

func TestRunnerPartialCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	ctx := context.Background()

	opts := Options{Spacing: fixture.DefaultSpacingInput(), View: ViewFront}
	if _, err := runner.Execute(ctx, fixture.Default(), opts); err != nil {
		t.Fatal(err)
	}
	opts.Formats = []string{FormatSVG, FormatJSON}
	res, err := runner.Execute(ctx, fixture.Default(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.Hits != 1 || res.CacheInfo.RenderHit {
		t.Errorf("cache info = %+v, want one hit", res.CacheInfo)
	}
	if len(res.Artifacts) != 2 {
		t.Errorf("artifacts = %d, want 2", len(res.Artifacts))
	}
}

func TestRunnerViewsChangeKey(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	ctx := context.Background()
	plan, err := runner.Solve(ctx, fixture.Default(), Options{Spacing: fixture.DefaultSpacingInput()})
	if err != nil {
		t.Fatal(err)
	}
	for _, view := range []string{ViewTop, ViewFront, ViewTemplate, ViewCalibration} {
		t.Run(view, func(t *testing.T) {
			out, err := runner.Render(ctx, plan, Options{View: view})
			if err != nil {
				t.Fatalf("Render(%s) = %v", view, err)
			}
			if len(out[FormatSVG]) == 0 {
				t.Errorf("empty %s svg", view)
			}
		})
	}
}

func TestRenderCancelled(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	plan, err := runner.Solve(context.Background(), fixture.Default(), Options{Spacing: fixture.DefaultSpacingInput()})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Render(ctx, plan, Options{}); !errs.Is(err, errs.ErrCodeTimeout) {
		t.Errorf("Render(cancelled) = %v, want TIMEOUT", err)
	}
}
