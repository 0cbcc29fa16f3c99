package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/skillgraph/pkg/observability"
)

// logHooks routes library events into the CLI logger at debug level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l.WithPrefix("hooks")}
}

// Engine events

func (h *logHooks) OnMount(id string, width, height float64) {
	h.logger.Debug("engine mounted", "engine", short(id), "width", width, "height", height)
}

func (h *logHooks) OnRelayout(id, category string, nodes, links, dropped, components int, d time.Duration) {
	if category == "" {
		category = "all"
	}
	h.logger.Debug("relayout",
		"engine", short(id),
		"category", category,
		"nodes", nodes,
		"links", links,
		"components", components,
		"duration", d.Round(time.Microsecond))
	if dropped > 0 {
		h.logger.Debug("dropped dangling edges", "engine", short(id), "count", dropped)
	}
}

func (h *logHooks) OnResize(id string, width, height float64) {
	h.logger.Debug("resize", "engine", short(id), "width", width, "height", height)
}

func (h *logHooks) OnSettle(id string, ticks int, alpha float64) {
	h.logger.Debug("settled", "engine", short(id), "ticks", ticks, "alpha", alpha)
}

func (h *logHooks) OnUnmount(id string) {
	h.logger.Debug("engine unmounted", "engine", short(id))
}

// Pipeline events

func (h *logHooks) OnLayoutStart(_ context.Context, category string, nodeCount int) {
	h.logger.Debug("layout start", "category", category, "nodes", nodeCount)
}

func (h *logHooks) OnLayoutComplete(_ context.Context, ticks int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "ticks", ticks, "error", err)
		return
	}
	h.logger.Debug("layout complete", "ticks", ticks, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "error", err)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "duration", d.Round(time.Millisecond))
}

// Cache events

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

// short abbreviates an engine ID for log lines.
func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

var (
	_ observability.EngineHooks   = (*logHooks)(nil)
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
)
