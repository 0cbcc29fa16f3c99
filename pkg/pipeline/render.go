package pipeline

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/skillgraph/pkg/errors"
	"github.com/matzehuels/skillgraph/pkg/graph"
	"github.com/matzehuels/skillgraph/pkg/observability"
	"github.com/matzehuels/skillgraph/pkg/render"
	"github.com/matzehuels/skillgraph/pkg/render/dot"
	"github.com/matzehuels/skillgraph/pkg/render/svg"
)

// pngScale is the rasterization scale for PNG output.
const pngScale = 2.0

// Frame draws snap with the requested theme and render tuning.
func Frame(snap graph.Snapshot, opts Options) render.Frame {
	return render.Build(snap.Store(), snap.Viewport, snap.Camera, opts.theme, opts.Render)
}

// Render draws snap in every format of opts.Formats. Formats are rendered
// concurrently; the first failure cancels the rest.
func Render(ctx context.Context, snap graph.Snapshot, opts Options) (map[string][]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	snap.Theme = opts.theme.String()
	f := Frame(snap, opts)
	svgData := svg.Render(f, svg.WithFont(opts.Render.FontFamily), svg.WithTitle(title(snap)))

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := renderFormat(gctx, format, f, snap, svgData)
			if err != nil {
				return err
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, format string, f render.Frame, snap graph.Snapshot, svgData []byte) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data = svgData
	case FormatPNG:
		if render.HasConverter() {
			data, err = render.ToPNG(ctx, svgData, pngScale)
		} else {
			data, err = dot.RenderPNG(ctx, dot.ToDOT(f))
		}
	case FormatPDF:
		if !render.HasConverter() {
			return nil, errors.New(errors.ErrCodeUnsupported, "pdf output requires rsvg-convert (install librsvg)")
		}
		data, err = render.ToPDF(ctx, svgData)
	case FormatDOT:
		data = []byte(dot.ToDOT(f))
	case FormatJSON:
		data, err = graph.MarshalSnapshot(snap)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return data, nil
}

func title(snap graph.Snapshot) string {
	if snap.Category == "" {
		return "Skills"
	}
	return snap.Category.Title() + " skills"
}
