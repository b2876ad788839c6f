package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/webpaste/pkg/cache"
	"github.com/matzehuels/webpaste/pkg/observability"
	"github.com/matzehuels/webpaste/pkg/transform"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it so caching and hooks behave the same.
//
// The Runner holds no per-call state: every Clean builds its own tree, so
// multiple goroutines can share one Runner.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Logger: logger,
	}
}

// cachedResult is the cache payload for a clean.
type cachedResult struct {
	HTML  string                 `json:"html"`
	Rules []transform.RuleResult `json:"rules"`
}

// Clean runs the complete parse → apply → render pipeline with caching.
func (r *Runner) Clean(ctx context.Context, fragment string, opts Options) (result *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hooks := observability.Transform()
	start := time.Now()
	hooks.OnCleanStart(ctx, len(fragment))
	defer func() {
		out := 0
		if result != nil {
			out = len(result.HTML)
		}
		hooks.OnCleanComplete(ctx, len(fragment), out, time.Since(start), err)
	}()

	rules := opts.Rules()
	key := cache.CleanKey(fragment, ruleNames(rules))

	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, key); ok {
			result = &Result{
				HTML:     cached.HTML,
				Report:   &transform.Report{Rules: cached.Rules},
				CacheHit: true,
			}
			result.Stats = Stats{
				InputBytes:  len(fragment),
				OutputBytes: len(cached.HTML),
				Total:       time.Since(start),
			}
			r.Logger.Debug("cache hit", "bytes", len(fragment))
			return result, nil
		}
	}

	result = &Result{Stats: Stats{InputBytes: len(fragment)}}

	// Stage 1: Parse
	parseStart := time.Now()
	root, err := Parse(fragment, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Stats.ParseTime = time.Since(parseStart)

	// Stage 2: Apply
	applyStart := time.Now()
	report, err := Apply(ctx, root, opts)
	if err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}
	result.Report = report
	result.Stats.ApplyTime = time.Since(applyStart)

	// Stage 3: Render
	renderStart := time.Now()
	out, err := Render(root)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.HTML = out
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.OutputBytes = len(out)
	result.Stats.Total = time.Since(start)

	r.Logger.Debug("cleaned fragment",
		"in", result.Stats.InputBytes,
		"out", result.Stats.OutputBytes,
		"matches", report.Total(),
		"duration", result.Stats.Total)

	r.store(ctx, key, cachedResult{HTML: out, Rules: report.Rules}, opts.CacheTTL)
	return result, nil
}

// lookup reads a cached result. Cache errors and undecodable entries are
// treated as misses.
func (r *Runner) lookup(ctx context.Context, key string) (cachedResult, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		hooks.OnCacheError(ctx, "get", err)
		r.Logger.Warn("cache read failed", "err", err)
		return cachedResult{}, false
	}
	if !hit {
		hooks.OnCacheMiss(ctx, cacheKeyType)
		return cachedResult{}, false
	}

	var cached cachedResult
	if err := json.Unmarshal(data, &cached); err != nil {
		hooks.OnCacheMiss(ctx, cacheKeyType)
		r.Logger.Warn("dropping bad cache entry", "err", err)
		_ = r.Cache.Delete(ctx, key)
		return cachedResult{}, false
	}
	hooks.OnCacheHit(ctx, cacheKeyType)
	return cached, true
}

// store writes a result to the cache. Failures are logged and ignored.
func (r *Runner) store(ctx context.Context, key string, res cachedResult, ttl time.Duration) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		observability.Cache().OnCacheError(ctx, "set", err)
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
