package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/skillgraph/pkg/buildinfo"
	"github.com/matzehuels/skillgraph/pkg/cache"
	"github.com/matzehuels/skillgraph/pkg/config"
	"github.com/matzehuels/skillgraph/pkg/errors"
	"github.com/matzehuels/skillgraph/pkg/observability"
	"github.com/matzehuels/skillgraph/pkg/pipeline"
	"github.com/matzehuels/skillgraph/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and cache scoping.
	appName = "skillgraph"

	// cachePrefix scopes keys in shared backends such as Redis.
	cachePrefix = appName + ":v1:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	stderr io.Writer

	configPath string
	verbose    bool
	cfg        *config.Config

	// darkBackground reports the terminal background; replaced in tests.
	darkBackground func() bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:         newLogger(w, level),
		stderr:         w,
		cfg:            config.Default(),
		darkBackground: lipgloss.HasDarkBackground,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Skillgraph draws a skill map as a force-directed graph",
		Long: `Skillgraph lays out a catalog of skills as a force-directed graph, grouped
by category and linked by relationship. Browse it interactively in the
terminal or render it to SVG, PNG, PDF, DOT or JSON.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.Path()+")")

	root.AddCommand(c.viewCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup runs before every command: it applies --verbose, loads the config
// file and routes library hooks into the logger.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
	}
	cfg, err := config.Load(c.configPath)
	if errors.Is(err, errors.ErrCodeFileNotFound) && cmd.Annotations[annotationConfigOptional] == "true" {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("loaded config", "path", c.resolvedConfigPath())

	hooks := newLogHooks(c.Logger)
	observability.SetEngineHooks(hooks)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)

	cmd.SetContext(withLogger(contextOf(cmd), c.Logger))
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func (c *CLI) resolvedConfigPath() string {
	if c.configPath != "" {
		return c.configPath
	}
	return config.Path()
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ch, cache.NewScopedKeyer(nil, cachePrefix), c.Logger)
	r.TTL = c.cfg.Cache.TTL
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	ch, err := cache.Open(ctx, c.cacheOptions())
	if err != nil {
		if c.cfg.Cache.Backend == config.BackendRedis {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "connect to redis cache")
		}
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return ch, nil
}

func (c *CLI) cacheOptions() cache.Options {
	dir := c.cfg.Cache.Dir
	if dir == "" {
		dir = cache.DefaultDir()
	}
	return cache.Options{
		Backend:  c.cfg.Cache.Backend,
		Dir:      dir,
		RedisURL: c.cfg.Cache.RedisURL,
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// resolveTheme turns a --theme value into a concrete theme. "auto" asks the
// terminal for its background color.
func (c *CLI) resolveTheme(s string) (render.Theme, error) {
	if s == "" {
		s = c.cfg.View.Theme
	}
	if err := errors.ValidateTheme(s); err != nil {
		return render.Light, err
	}
	if s == "auto" {
		if c.darkBackground() {
			return render.Dark, nil
		}
		return render.Light, nil
	}
	return render.ParseTheme(s)
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, strings.ToLower(f))
		}
	}
	return out
}
