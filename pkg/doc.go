// Package pkg provides the libraries behind netcanvas, an interactive
// canvas for directed networks with supplied node positions.
//
// # Architecture
//
// A dataset flows through the packages in this order:
//
//	raw JSON dataset
//	     ↓
//	[io] + [network] (decode, validate, resolve colors and sizes)
//	     ↓
//	[scale] (data domains and pixel scales, computed once)
//	     ↓
//	[viz] (composition root owning the interaction state)
//	     ↓                         ↑
//	[render] → [canvas]       [interact] (events → selection, highlight, zoom)
//	     ↓
//	[overlay] (tooltip of the highlighted node)
//
// # Main Packages
//
// [network] - Typed nodes and links, color parsing and dataset
// normalization.
//
// [scale] - Linear data-to-pixel scales and the pan/zoom transform.
//
// [adjacency] - Directional neighbor lookup used for highlight fading.
//
// [state] - Selection and highlight, the interaction state of one
// visualization.
//
// [interact] - The event state machine: click, modifier brushing, drag
// panning and wheel zoom.
//
// [render] - The per-frame draw algorithm and its style rules.
//
// [canvas] - Drawing surfaces: PNG raster, SVG and an op recorder.
//
// [overlay] - Tooltip presentation.
//
// [viz] - Wires everything into one visualization with a serialized event
// entry point.
//
// # Infrastructure
//
// [config] - TOML configuration. [cache] - rendered frame cache.
// [session] - live visualizations for the HTTP server. [observability] -
// optional hooks for metrics. [errors] - coded errors shared by every layer.
//
// [io]: github.com/matzehuels/netcanvas/pkg/io
// [network]: github.com/matzehuels/netcanvas/pkg/network
// [scale]: github.com/matzehuels/netcanvas/pkg/scale
// [adjacency]: github.com/matzehuels/netcanvas/pkg/adjacency
// [state]: github.com/matzehuels/netcanvas/pkg/state
// [interact]: github.com/matzehuels/netcanvas/pkg/interact
// [render]: github.com/matzehuels/netcanvas/pkg/render
// [canvas]: github.com/matzehuels/netcanvas/pkg/canvas
// [overlay]: github.com/matzehuels/netcanvas/pkg/overlay
// [viz]: github.com/matzehuels/netcanvas/pkg/viz
// [config]: github.com/matzehuels/netcanvas/pkg/config
// [cache]: github.com/matzehuels/netcanvas/pkg/cache
// [session]: github.com/matzehuels/netcanvas/pkg/session
// [observability]: github.com/matzehuels/netcanvas/pkg/observability
// [errors]: github.com/matzehuels/netcanvas/pkg/errors
package pkg
