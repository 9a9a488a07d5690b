package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shelfmount/pkg/cache"
	errs "github.com/matzehuels/shelfmount/pkg/errors"
	"github.com/matzehuels/shelfmount/pkg/fixture"
	"github.com/matzehuels/shelfmount/pkg/observability"
	"github.com/matzehuels/shelfmount/pkg/placement"
)

// Runner executes the pipeline with artifact caching. It holds no per-run
// state and is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner. A nil keyer means [cache.DefaultKeyer], a nil
// cache disables caching and a nil logger means log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.DefaultTTL,
	}
}

// Execute solves the placement for g and renders every requested format.
func (r *Runner) Execute(ctx context.Context, g fixture.Geometry, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	solveStart := time.Now()
	plan, err := r.Solve(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Plan = plan
	result.Warnings = plan.Warnings()
	result.Stats.SolveTime = time.Since(solveStart)

	opts.Logger.Info("solved placement",
		"spacing", plan.Spacing,
		"back", plan.Back.Result.Shift,
		"front", plan.Front.Result.Shift,
		"conflict", plan.HasConflict(),
		"duration", result.Stats.SolveTime)
	for _, w := range result.Warnings {
		opts.Logger.Warn(w.Message, "kind", w.Kind)
	}

	renderStart := time.Now()
	artifacts, info, hash, err := r.RenderWithCacheInfo(ctx, plan, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo = info
	result.PlanHash = hash
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"view", opts.View,
		"formats", opts.Formats,
		"cached", info.Hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Solve computes the placement plan. It is never cached.
func (r *Runner) Solve(ctx context.Context, g fixture.Geometry, opts Options) (placement.Plan, error) {
	hooks := observability.Pipeline()
	hooks.OnSolveStart(ctx, opts.Spacing.String())
	start := time.Now()

	popts, err := opts.PlacementOptions()
	if err != nil {
		hooks.OnSolveComplete(ctx, false, time.Since(start), err)
		return placement.Plan{}, err
	}
	plan, err := placement.Compute(g, opts.Spacing, popts)
	hooks.OnSolveComplete(ctx, err == nil && plan.HasConflict(), time.Since(start), err)
	return plan, err
}

// RenderWithCacheInfo renders the plan, serving each format from the cache
// where possible. It also returns the plan hash the keys were derived from.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p placement.Plan, opts Options) (map[string][]byte, CacheInfo, string, error) {
	r.applyLogger(&opts)
	opts.SetRenderDefaults()

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.View, opts.Formats)
	start := time.Now()

	artifacts, info, hash, err := r.render(ctx, p, opts)
	hooks.OnRenderComplete(ctx, opts.View, opts.Formats, time.Since(start), err)
	return artifacts, info, hash, err
}

// Render is RenderWithCacheInfo without the cache details.
func (r *Runner) Render(ctx context.Context, p placement.Plan, opts Options) (map[string][]byte, error) {
	artifacts, _, _, err := r.RenderWithCacheInfo(ctx, p, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, p placement.Plan, opts Options) (map[string][]byte, CacheInfo, string, error) {
	var info CacheInfo

	planData, err := json.Marshal(p)
	if err != nil {
		return nil, info, "", errs.Wrap(errs.ErrCodeInternal, err, "serialize plan for cache key")
	}
	planHash := r.Keyer.PlanHash(planData)
	cacheHooks := observability.Cache()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if opts.Refresh {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Debug("cache read failed", "format", format, "err", err)
		}
		if err == nil && hit {
			cacheHooks.OnCacheHit(ctx, "artifact:"+format)
			artifacts[format] = data
			info.Hits++
			continue
		}
		cacheHooks.OnCacheMiss(ctx, "artifact:"+format)
		missing = append(missing, format)
	}
	info.RenderHit = len(missing) == 0
	if info.RenderHit {
		return artifacts, info, planHash, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, p, renderOpts)
	if err != nil {
		return nil, info, planHash, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			opts.Logger.Debug("cache write failed", "format", format, "err", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, "artifact:"+format, len(data))
	}
	return artifacts, info, planHash, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		if err := r.Cache.Close(); err != nil {
			return fmt.Errorf("close cache: %w", err)
		}
	}
	return nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.DefaultTTL
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
