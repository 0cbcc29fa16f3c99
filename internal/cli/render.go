package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/skillgraph/pkg/errors"
	"github.com/matzehuels/skillgraph/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file, base path for several formats, or "-" for stdout
	formats  []string // svg, png, pdf, json, dot
	input    string   // graph JSON file; empty uses the embedded catalog
	category string   // category filter; empty shows everything
	theme    string   // auto, dark or light
	width    float64  // viewport width in pixels
	height   float64  // viewport height in pixels
	noCache  bool     // disable the artifact cache
	refresh  bool     // ignore cached entries but store new ones
}

// renderCommand creates the render command for headless output.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the skill graph to SVG, PNG, PDF, DOT or JSON",
		Example: `  skillgraph render
  skillgraph render -f svg,png --category cloud -o cloud
  skillgraph render -f json -o - | jq '.nodes | length'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := errors.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if opts.output == "-" && len(opts.formats) != 1 {
				return errors.New(errors.ErrCodeInvalidInput, "stdout output needs exactly one format")
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (several), or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "graph JSON file (default: embedded catalog)")
	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "show one category and its direct links")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "color theme: auto, dark, light (default from config)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "surface width in pixels (default from config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "surface height in pixels (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runRender runs the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, stdout io.Writer, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	theme, err := c.resolveTheme(opts.theme)
	if err != nil {
		return err
	}
	category := opts.category
	if category == "" {
		category = c.cfg.View.Category
	}
	width, height := opts.width, opts.height
	if width == 0 {
		width = c.cfg.View.Width
	}
	if height == 0 {
		height = c.cfg.View.Height
	}

	prog := newProgress(logger)
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if opts.output != "-" {
		spinner = newSpinner(ctx, c.stderr, "Laying out graph...")
		spinner.Start()
	}

	result, err := runner.Execute(ctx, pipeline.Options{
		InputPath: opts.input,
		Category:  category,
		Width:     width,
		Height:    height,
		Refresh:   opts.refresh,
		Formats:   opts.formats,
		Theme:     theme.String(),
		Layout:    c.cfg.Layout,
		Physics:   c.cfg.Physics,
		Render:    c.cfg.Render,
		Engine:    c.cfg.Engine,
		Logger:    logger,
	})
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	if !result.Stats.Settled {
		logger.Warn("layout stopped before settling", "ticks", result.Stats.Ticks)
	}

	if opts.output == "-" {
		_, err := stdout.Write(result.Artifacts[opts.formats[0]])
		return err
	}

	paths := outputPaths(opts.output, category, opts.formats)
	for _, format := range opts.formats {
		if err := writeFile(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}

	prog.done("render complete")
	printSuccess(stdout, "Rendered %d file(s)", len(opts.formats))
	printStats(stdout, result.Stats.NodeCount, result.Stats.LinkCount, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	for _, format := range opts.formats {
		printFile(stdout, paths[format])
	}
	if !slices.Contains(opts.formats, pipeline.FormatSVG) {
		return nil
	}
	printNextStep(stdout, "Browse interactively", appName+" view")
	return nil
}

// outputPaths maps each format to a file name. A single format with an
// explicit output uses it verbatim; otherwise the output, minus any known
// format extension, is a base path and each format appends its extension.
func outputPaths(output, category string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, category)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath strips a known format extension from output, or derives a name
// from the category when output is empty.
func basePath(output, category string) string {
	if output == "" {
		if category == "" {
			return appName
		}
		return appName + "-" + strings.ToLower(category)
	}
	ext := filepath.Ext(output)
	if errors.ValidateFormats([]string{strings.TrimPrefix(ext, ".")}) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
