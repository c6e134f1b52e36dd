package cli

import (
	"bytes"
	"context"
	"math"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netcanvas/pkg/canvas"
	"github.com/matzehuels/netcanvas/pkg/errors"
	"github.com/matzehuels/netcanvas/pkg/interact"
	nio "github.com/matzehuels/netcanvas/pkg/io"
	"github.com/matzehuels/netcanvas/pkg/network"
	"github.com/matzehuels/netcanvas/pkg/viz"
)

// dataset is a loaded network together with its source bytes, which key
// the cache.
type dataset struct {
	path string
	data []byte
	net  *network.Network
}

func loadDataset(ctx context.Context, path string, styles network.Styles) (*dataset, error) {
	logger := loggerFromContext(ctx)

	data, err := nio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	net, err := nio.ReadJSON(bytes.NewReader(data), styles)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Loaded %s: %d nodes, %d links", path, net.NodeCount(), net.LinkCount())
	return &dataset{path: path, data: data, net: net}, nil
}

// loadScript reads an event script. An empty path yields no events.
func loadScript(path string) ([]interact.Event, []byte, error) {
	if path == "" {
		return nil, nil, nil
	}
	data, err := nio.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	events, err := interact.ReadScript(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	return events, data, nil
}

// vizFlags are the visualization flags shared by render, serve and inspect.
// Unset flags fall back to the config file.
type vizFlags struct {
	width, height float64
	tolerance     float64
	brush         bool
	tooltips      bool
	zoom          bool
}

func (f *vizFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", 0, "canvas width in pixels (default from config)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "canvas height in pixels (default from config)")
	cmd.Flags().Float64Var(&f.tolerance, "tolerance", 0, "click hit tolerance in pixels (default from config)")
	cmd.Flags().BoolVar(&f.brush, "brush", true, "enable brush selection")
	cmd.Flags().BoolVar(&f.tooltips, "tooltips", true, "show tooltips for the highlighted node")
	cmd.Flags().BoolVar(&f.zoom, "zoom", true, "enable wheel zoom and drag pan")
}

// vizSettings is the effective visualization setup after merging flags
// over the config file.
type vizSettings struct {
	Width, Height float64
	Tolerance     float64
	Options       viz.Options
}

func (c *CLI) resolveViz(cmd *cobra.Command, f *vizFlags) (vizSettings, error) {
	cfg := c.settings()
	s := vizSettings{
		Width:     cfg.Canvas.Width,
		Height:    cfg.Canvas.Height,
		Tolerance: cfg.Hit.Tolerance,
		Options:   cfg.Options,
	}
	flags := cmd.Flags()
	if flags.Changed("width") {
		s.Width = f.width
	}
	if flags.Changed("height") {
		s.Height = f.height
	}
	if flags.Changed("tolerance") {
		s.Tolerance = f.tolerance
	}
	if flags.Changed("brush") {
		s.Options.Brush = f.brush
	}
	if flags.Changed("tooltips") {
		s.Options.Tooltips = f.tooltips
	}
	if flags.Changed("zoom") {
		s.Options.Zoom = f.zoom
	}
	if err := errors.ValidateDimensions(s.Width, s.Height); err != nil {
		return s, err
	}
	if s.Tolerance < 0 || math.IsNaN(s.Tolerance) {
		return s, errors.New(errors.ErrCodeInvalidInput, "tolerance must be non-negative, got %v", s.Tolerance)
	}
	return s, nil
}

// pixels returns the canvas size rounded to whole pixels.
func (s vizSettings) pixels() (int, int) {
	return int(math.Round(s.Width)), int(math.Round(s.Height))
}

// newGraph builds and initializes a visualization on a raster surface.
func newGraph(ctx context.Context, net *network.Network, s vizSettings) (*viz.Graph, *canvas.Raster, error) {
	w, h := s.pixels()
	raster := canvas.NewRaster(w, h)
	g := viz.New(net, raster,
		viz.WithOptions(s.Options),
		viz.WithLogger(loggerFromContext(ctx)),
		viz.WithHitTester(interact.NearestPoint{Tolerance: s.Tolerance}),
	)
	if err := g.Init(); err != nil {
		return nil, nil, err
	}
	return g, raster, nil
}
