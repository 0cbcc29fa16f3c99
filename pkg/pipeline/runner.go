package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/skillgraph/pkg/cache"
	"github.com/matzehuels/skillgraph/pkg/graph"
	"github.com/matzehuels/skillgraph/pkg/observability"
	"github.com/matzehuels/skillgraph/pkg/topology"
)

// Cache key types reported to the cache hooks.
const (
	keyTypeSnapshot = "snapshot"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL overrides the default lifetime of cached entries when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	g, err := Load(opts)
	if err != nil {
		return nil, err
	}
	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, fmt.Errorf("hash graph: %w", err)
	}
	result := &Result{GraphHash: cache.Hash(graphData)}

	snap, stats, hit, err := r.LayoutWithCacheInfo(ctx, g, result.GraphHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Snapshot = snap
	result.Stats = stats
	_, result.Stats.Dropped = g.Sanitize()
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"category", snap.Category.Title(),
		"nodes", stats.NodeCount,
		"links", stats.LinkCount,
		"cached", hit,
		"duration", stats.LayoutTime)

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, snap, result.GraphHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo returns the settled snapshot for g, from the cache
// when possible, and whether it was a cache hit.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, g graph.Graph, graphHash string, opts Options) (graph.Snapshot, Stats, bool, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return graph.Snapshot{}, Stats{}, false, err
	}
	key := r.Keyer.SnapshotKey(graphHash, opts.SnapshotKeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		start := time.Now()
		if data, ok := r.get(ctx, key); ok {
			if snap, err := graph.UnmarshalSnapshot(data); err == nil {
				hooks.OnCacheHit(ctx, keyTypeSnapshot)
				stats := snapshotStats(snap)
				stats.LayoutTime = time.Since(start)
				return snap, stats, true, nil
			}
			r.Logger.Debug("discarding unreadable cached snapshot", "key", key)
		}
		hooks.OnCacheMiss(ctx, keyTypeSnapshot)
	}

	snap, stats, err := Simulate(ctx, g, opts)
	if err != nil {
		return graph.Snapshot{}, Stats{}, false, err
	}
	if !stats.Settled {
		return snap, stats, false, nil
	}

	if data, err := graph.MarshalSnapshot(snap); err == nil {
		r.set(ctx, key, keyTypeSnapshot, data, r.ttl(cache.SnapshotTTL))
	}
	return snap, stats, false, nil
}

// RenderWithCacheInfo renders every requested format, reusing cached
// artifacts, and reports whether all of them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, snap graph.Snapshot, graphHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
			if data, ok := r.get(ctx, key); ok {
				hooks.OnCacheHit(ctx, keyTypeArtifact)
				artifacts[format] = data
				continue
			}
			hooks.OnCacheMiss(ctx, keyTypeArtifact)
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	sub := opts
	sub.Formats = missing
	rendered, err := Render(ctx, snap, sub)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
		r.set(ctx, key, keyTypeArtifact, data, r.ttl(cache.ArtifactTTL))
	}
	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// get reads key, treating backend errors as misses.
func (r *Runner) get(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "key", key, "error", err)
		return nil, false
	}
	return data, hit
}

// set writes key. A failed write only costs a recomputation next time.
func (r *Runner) set(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// snapshotStats recomputes the structural counts of a cached snapshot.
func snapshotStats(snap graph.Snapshot) Stats {
	s := snap.Store()
	return Stats{
		NodeCount:  s.Len(),
		LinkCount:  len(s.Links),
		Components: len(topology.Components(s)),
		Settled:    true,
	}
}
