package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netcanvas/pkg/cache"
	"github.com/matzehuels/netcanvas/pkg/canvas"
	"github.com/matzehuels/netcanvas/pkg/errors"
	"github.com/matzehuels/netcanvas/pkg/interact"
	"github.com/matzehuels/netcanvas/pkg/viz"
)

const (
	formatPNG  = "png"
	formatSVG  = "svg"
	formatDOT  = "dot"
	formatJSON = "json"
)

var renderFormats = []string{formatPNG, formatSVG}

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output  string
	formats []string
	events  string
	noCache bool
	viz     vizSettings
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		flags      vizFlags
		opts       renderOpts
	)

	cmd := &cobra.Command{
		Use:   "render [dataset.json]",
		Short: "Render a network frame to PNG or SVG",
		Long: `Render a network frame to PNG or SVG.

The dataset is loaded, an optional event script is replayed against the
visualization (clicks, brushes, wheel zoom), and the resulting frame is
written in each requested format. An event script is a JSON array:

  [{"type": "click", "x": 120, "y": 80}, {"type": "wheel", "x": 400, "y": 300, "delta": -250}]

Frames are cached locally by dataset, options and script.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, formatPNG)
			if err := errors.ValidateFormats(opts.formats, renderFormats); err != nil {
				return err
			}
			s, err := c.resolveViz(cmd, &flags)
			if err != nil {
				return err
			}
			opts.viz = s
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), svg (comma-separated)")
	cmd.Flags().StringVarP(&opts.events, "events", "e", "", "JSON event script to replay before rendering")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	ds, err := loadDataset(ctx, input, c.settings().Styles)
	if err != nil {
		return err
	}
	events, script, err := loadScript(opts.events)
	if err != nil {
		return err
	}

	store, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	keyer := newKeyer()
	keyOpts := cache.FrameKeyOpts{
		Width:     opts.viz.Width,
		Height:    opts.viz.Height,
		Brush:     opts.viz.Options.Brush,
		Tooltips:  opts.viz.Options.Tooltips,
		Zoom:      opts.viz.Options.Zoom,
		Tolerance: opts.viz.Tolerance,
		Styles:    stylesKey(c.settings().Styles),
	}
	if len(script) > 0 {
		keyOpts.ScriptHash = cache.Hash(script)
	}
	datasetHash := cache.Hash(ds.data)

	var fr *frameRenderer
	defer func() {
		if fr != nil {
			fr.close()
		}
	}()

	allCached := true
	base := basePath(opts.output, input, renderFormats)
	for _, format := range opts.formats {
		keyOpts.Format = format
		key := keyer.FrameKey(datasetHash, keyOpts)

		data, hit, err := store.Get(ctx, key)
		if err != nil {
			logger.Warn("cache read failed", "key", key, "err", err)
		}
		if !hit {
			allCached = false
			if fr == nil {
				if fr, err = replay(ctx, ds, events, opts.viz); err != nil {
					return err
				}
			}
			if data, err = fr.encode(format); err != nil {
				return err
			}
			if err := store.Set(ctx, key, data, cacheTTL); err != nil {
				logger.Warn("cache write failed", "key", key, "err", err)
			}
		} else {
			logger.Debugf("Frame %s served from cache", format)
		}

		path := outputPath(opts.output, base, format, len(opts.formats))
		if err := writeOutput(path, data); err != nil {
			return err
		}
		printFile(path)
	}

	printStats(ds.net.NodeCount(), ds.net.LinkCount(), allCached)
	prog.done(fmt.Sprintf("Rendered %s", input))
	return nil
}

// frameRenderer holds a visualization after its event script ran.
type frameRenderer struct {
	graph  *viz.Graph
	raster *canvas.Raster
	width  float64
	height float64
}

func replay(ctx context.Context, ds *dataset, events []interact.Event, s vizSettings) (*frameRenderer, error) {
	g, raster, err := newGraph(ctx, ds.net, s)
	if err != nil {
		return nil, err
	}

	if len(events) > 0 {
		sp := newSpinner(ctx, fmt.Sprintf("Replaying %d events", len(events)))
		sp.Start()
		defer sp.Stop()
	}
	for i, ev := range events {
		if err := ctx.Err(); err != nil {
			g.Destroy()
			return nil, err
		}
		if err := g.Handle(ev); err != nil {
			g.Destroy()
			return nil, errors.Wrap(errors.GetCode(err), err, "event %d", i)
		}
	}

	state := g.Snapshot()
	loggerFromContext(ctx).Debug("replayed events",
		"count", len(events),
		"selected", len(state.Selection),
		"zoom", state.Transform.K)
	return &frameRenderer{graph: g, raster: raster, width: s.Width, height: s.Height}, nil
}

func (f *frameRenderer) encode(format string) ([]byte, error) {
	switch format {
	case formatPNG:
		var buf bytes.Buffer
		if err := f.raster.EncodePNG(&buf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
		}
		return buf.Bytes(), nil
	case formatSVG:
		svg := canvas.NewSVG(f.width, f.height)
		f.graph.RenderTo(svg)
		return svg.Bytes(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown frame format: %s", format)
	}
}

func (f *frameRenderer) close() { f.graph.Destroy() }

// outputPath picks the file for one format. An explicit output is used as
// is when a single format was requested.
func outputPath(output, base, format string, count int) string {
	if output != "" && count == 1 {
		return output
	}
	return base + "." + format
}

func writeOutput(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
