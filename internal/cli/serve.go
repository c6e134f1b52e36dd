package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netcanvas/internal/server"
	"github.com/matzehuels/netcanvas/pkg/errors"
	"github.com/matzehuels/netcanvas/pkg/metrics"
	"github.com/matzehuels/netcanvas/pkg/watch"
)

type serveOpts struct {
	addr    string
	ttl     time.Duration
	watch   bool
	metrics bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags vizFlags
		opts  serveOpts
	)

	cmd := &cobra.Command{
		Use:   "serve [dataset.json]",
		Short: "Serve live visualizations over HTTP",
		Long: `Serve live visualizations of a network over HTTP.

Each client session owns its own visualization. Post event arrays to
/sessions/{id}/events and fetch /sessions/{id}/frame.png to see the result.
Idle sessions expire after --session-ttl. With --watch the dataset is
reloaded whenever it changes on disk; sessions created afterwards see the
new network. Prometheus metrics are served on /metrics unless disabled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.resolveViz(cmd, &flags)
			if err != nil {
				return err
			}
			cfg := c.settings()
			if !cmd.Flags().Changed("addr") {
				opts.addr = cfg.Server.Addr
			}
			if !cmd.Flags().Changed("session-ttl") {
				opts.ttl = cfg.Server.SessionTTL.Duration
			}
			if !cmd.Flags().Changed("metrics") {
				opts.metrics = cfg.Server.Metrics
			}
			return c.runServe(cmd.Context(), args[0], opts, s)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config)")
	cmd.Flags().DurationVar(&opts.ttl, "session-ttl", 0, "idle session lifetime (default from config)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "reload the dataset when it changes")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", true, "serve Prometheus metrics on /metrics")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, input string, opts serveOpts, s vizSettings) error {
	styles := c.settings().Styles
	ds, err := loadDataset(ctx, input, styles)
	if err != nil {
		return err
	}
	logger := loggerFromContext(ctx)

	var reg *metrics.Registry
	if opts.metrics {
		reg = metrics.NewRegistry()
		reg.Install()
	}

	w, h := s.pixels()
	srv := server.New(ds.net, server.Config{
		Addr:       opts.addr,
		Width:      w,
		Height:     h,
		Options:    s.Options,
		Tolerance:  s.Tolerance,
		SessionTTL: opts.ttl,
		Logger:     logger,
		Metrics:    reg,
	})

	if opts.watch {
		fw, err := watch.New(input, watch.WithLogger(logger))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "watch %s", input)
		}
		go func() {
			_ = fw.Run(ctx, func(path string) { c.reload(ctx, srv, path) })
		}()
		printDetail("watching %s for changes", input)
	}

	printInfo("Serving %s on %s", input, opts.addr)
	printStats(ds.net.NodeCount(), ds.net.LinkCount(), false)
	printNextStep("Create a session", fmt.Sprintf("curl -X POST http://%s/sessions", displayAddr(opts.addr)))

	if err := srv.Run(ctx); err != nil {
		return err
	}
	printSuccess("Server stopped")
	return nil
}

// reload swaps in the dataset at path, keeping the old network when the
// new file does not load.
func (c *CLI) reload(ctx context.Context, srv *server.Server, path string) {
	logger := loggerFromContext(ctx)
	ds, err := loadDataset(ctx, path, c.settings().Styles)
	if err != nil {
		logger.Warn("reload failed, keeping previous network", "path", path, "error", err)
		return
	}
	srv.SetNetwork(ds.net)
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
