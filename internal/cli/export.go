package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netcanvas/pkg/cache"
	"github.com/matzehuels/netcanvas/pkg/errors"
	nio "github.com/matzehuels/netcanvas/pkg/io"
	"github.com/matzehuels/netcanvas/pkg/network"
	"github.com/matzehuels/netcanvas/pkg/render/nodelink"
)

var exportFormats = []string{formatDOT, formatSVG, formatJSON}

type exportOpts struct {
	output  string
	formats []string
	labels  bool
	noCache bool
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		formatsStr string
		opts       exportOpts
	)

	cmd := &cobra.Command{
		Use:   "export [dataset.json]",
		Short: "Export a network as Graphviz DOT, SVG or normalized JSON",
		Long: `Export a network as Graphviz DOT, SVG or normalized JSON.

DOT and SVG exports pin every node at its dataset position; Graphviz only
routes the edges. The JSON export is the normalized network (typed node
and link records with resolved colors), which render, serve and inspect
accept as input as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, formatDOT)
			if err := errors.ValidateFormats(opts.formats, exportFormats); err != nil {
				return err
			}
			return c.runExport(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): dot (default), svg, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label nodes in DOT/SVG output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input string, opts exportOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	cfg := c.settings()

	ds, err := loadDataset(ctx, input, cfg.Styles)
	if err != nil {
		return err
	}

	store, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	keyer := newKeyer()
	datasetHash := cache.Hash(ds.data)
	dotOpts := nodelink.Options{Width: cfg.Canvas.Width, Height: cfg.Canvas.Height, Labels: opts.labels}

	allCached := true
	base := basePath(opts.output, input, exportFormats)
	for _, format := range opts.formats {
		key := keyer.ExportKey(datasetHash, cache.ExportKeyOpts{
			Format: fmt.Sprintf("%s/labels=%t", format, opts.labels),
			Styles: stylesKey(cfg.Styles),
		})

		data, hit, err := store.Get(ctx, key)
		if err != nil {
			logger.Warn("cache read failed", "key", key, "err", err)
		}
		if !hit {
			allCached = false
			if data, err = exportNetwork(ds.net, format, dotOpts); err != nil {
				return err
			}
			if err := store.Set(ctx, key, data, cacheTTL); err != nil {
				logger.Warn("cache write failed", "key", key, "err", err)
			}
		}

		path := outputPath(opts.output, base, format, len(opts.formats))
		if err := writeOutput(path, data); err != nil {
			return err
		}
		printFile(path)
	}

	printStats(ds.net.NodeCount(), ds.net.LinkCount(), allCached)
	prog.done(fmt.Sprintf("Exported %s", input))
	return nil
}

func exportNetwork(net *network.Network, format string, opts nodelink.Options) ([]byte, error) {
	switch format {
	case formatDOT:
		return []byte(nodelink.ToDOT(net, opts)), nil
	case formatSVG:
		return nodelink.RenderSVG(nodelink.ToDOT(net, opts))
	case formatJSON:
		var buf bytes.Buffer
		if err := nio.WriteJSON(net, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown export format: %s", format)
	}
}
