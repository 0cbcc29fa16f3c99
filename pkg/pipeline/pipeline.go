// Package pipeline renders the skill graph without a display.
//
// It runs the same engine the interactive view uses on a synthetic clock:
// the engine is mounted, given a viewport, and ticked until the simulation
// has settled and the zoom-to-fit has finished. The resulting snapshot is
// then drawn by one or more sinks.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: the embedded catalog, or a graph JSON file
//  2. Layout: filter, place and simulate to a settled [graph.Snapshot]
//  3. Render: draw the snapshot in each requested format
//
// Snapshots and artifacts are cached, keyed by a hash of the graph and of
// everything that affects the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Category: "cloud",
//	    Formats:  []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/skillgraph/pkg/cache"
	"github.com/matzehuels/skillgraph/pkg/engine"
	"github.com/matzehuels/skillgraph/pkg/errors"
	"github.com/matzehuels/skillgraph/pkg/graph"
	"github.com/matzehuels/skillgraph/pkg/layout"
	"github.com/matzehuels/skillgraph/pkg/physics"
	"github.com/matzehuels/skillgraph/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default surface width in pixels.
	DefaultWidth = 1200.0

	// DefaultHeight is the default surface height in pixels.
	DefaultHeight = 800.0

	// DefaultTheme is the default color scheme for headless output.
	DefaultTheme = "light"

	// DefaultMaxTicks bounds the synthetic run. A default run settles in a
	// few hundred ticks.
	DefaultMaxTicks = 5000
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a headless render.
type Options struct {
	// Load options. Graph, when non-nil, replaces the embedded catalog.
	Graph     *graph.Graph `json:"-"`
	InputPath string       `json:"input,omitempty"`

	// Layout options
	Category string  `json:"category,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	MaxTicks int     `json:"max_ticks,omitempty"`
	Refresh  bool    `json:"refresh,omitempty"` // bypass cached entries

	// Render options
	Formats []string `json:"formats,omitempty"`
	Theme   string   `json:"theme,omitempty"`

	// Tuning. Zero values use package defaults.
	Layout  layout.Config  `json:"-"`
	Physics physics.Config `json:"-"`
	Render  render.Config  `json:"-"`
	Engine  engine.Config  `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	category graph.Category
	theme    render.Theme
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// GraphHash is the content hash of the loaded graph.
	GraphHash string

	// Snapshot is the settled state that was rendered.
	Snapshot graph.Snapshot

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LinkCount  int
	Dropped    int
	Components int
	Ticks      int
	Settled    bool
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // snapshot came from cache
	RenderHit bool // every artifact came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills zero fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.MaxTicks == 0 {
		o.MaxTicks = DefaultMaxTicks
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	o.Layout.SetDefaults()
	o.Physics.SetDefaults()
	o.Render.SetDefaults()
	o.Engine.SetDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks every user-facing field.
func (o *Options) Validate() error {
	o.SetDefaults()
	c, err := errors.ValidateCategory(o.Category)
	if err != nil {
		return err
	}
	o.category = c
	if err := errors.ValidateViewport(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Theme == "auto" {
		return errors.New(errors.ErrCodeInvalidTheme, "theme auto needs a terminal; use dark or light")
	}
	if err := errors.ValidateTheme(o.Theme); err != nil {
		return err
	}
	o.theme, _ = render.ParseTheme(o.Theme)
	if o.InputPath != "" {
		if err := errors.ValidatePath(o.InputPath); err != nil {
			return err
		}
	}
	return nil
}

// Viewport returns the requested surface size.
func (o *Options) Viewport() graph.Viewport {
	return graph.Viewport{Width: o.Width, Height: o.Height}
}

// SnapshotKeyOpts returns cache key options for the layout stage.
func (o *Options) SnapshotKeyOpts() cache.SnapshotKeyOpts {
	return cache.SnapshotKeyOpts{
		Category:   string(o.category),
		Width:      o.Width,
		Height:     o.Height,
		TuningHash: tuningHash(o.Layout, o.Physics, o.Engine),
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		SnapshotKeyOpts: o.SnapshotKeyOpts(),
		Format:          format,
		Theme:           o.theme.String(),
		RenderHash:      tuningHash(o.Render),
	}
}
