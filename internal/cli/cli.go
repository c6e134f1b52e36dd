// Package cli implements the netcanvas command-line interface.
//
// The commands load a dataset, drive a visualization headlessly or over
// HTTP, and write frames or node-link exports:
//   - render: replay an event script and write PNG/SVG frames
//   - export: write the network as Graphviz DOT, SVG or normalized JSON
//   - serve: expose live sessions over HTTP
//   - inspect: explore the network in an interactive terminal UI
//   - cache, config: manage the frame cache and the config file
//
// All commands support --verbose (-v) for debug-level logging and
// --config to point at a TOML config file.
package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netcanvas/pkg/buildinfo"
	"github.com/matzehuels/netcanvas/pkg/cache"
	"github.com/matzehuels/netcanvas/pkg/config"
	"github.com/matzehuels/netcanvas/pkg/network"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "netcanvas"

	// cacheTTL is how long rendered frames and exports stay cached.
	cacheTTL = 7 * 24 * time.Hour
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

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "netcanvas draws interactive directed networks",
		Long:         `netcanvas renders directed, weighted networks with pre-computed node positions, and replays pointer interaction (hover, click, brush selection, zoom) against them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file once. Flags applied by commands
// override its values.
func (c *CLI) loadConfig() error {
	if c.cfg != nil {
		return nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Logger.Debug("config loaded", "path", c.configFile())
	c.cfg = cfg
	return nil
}

// settings returns the loaded config, or the defaults before PersistentPreRunE ran.
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		return config.Default()
	}
	return c.cfg
}

// =============================================================================
// Cache
// =============================================================================

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(cache.DefaultDir())
}

// newKeyer scopes cache keys to the running build.
func newKeyer() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
}

// stylesKey renders node styles for use in cache keys.
func stylesKey(s network.Styles) string {
	return fmt.Sprintf("%s/%s/%g", s.Color, s.Stroke, s.Size)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s, fallback string) []string {
	if s == "" {
		return []string{fallback}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. A known format
// extension on output is stripped as well.
func basePath(output, input string, known []string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	for _, f := range known {
		if ext == "."+f {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}
