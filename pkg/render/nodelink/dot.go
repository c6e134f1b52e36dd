package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/netcanvas/pkg/errors"
	"github.com/matzehuels/netcanvas/pkg/network"
	"github.com/matzehuels/netcanvas/pkg/render"
	"github.com/matzehuels/netcanvas/pkg/scale"
)

// Options configures node-link diagram generation.
type Options struct {
	// Width and Height are the drawing size in points. Zero uses 800x600.
	Width, Height float64
	// Labels adds each node's display label next to it.
	Labels bool
}

const (
	defaultWidth  = 800
	defaultHeight = 600
	pointsPerInch = 72
)

// ToDOT converts a network to Graphviz DOT with every node pinned at its
// data position, mapped onto the drawing size with the same scales the
// canvas uses.
func ToDOT(net *network.Network, opts Options) string {
	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		w, h = defaultWidth, defaultHeight
	}
	x, y := scale.CreateScales(scale.ComputeDomains(net.Nodes), w, h)
	linkColor := render.LinkColor(net.Colored)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	fmt.Fprintf(&buf, "  inputscale=%d;\n", pointsPerInch)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, label=\"\", fontsize=10];\n")
	fmt.Fprintf(&buf, "  edge [color=%q, arrowsize=0.6];\n", linkColor.Hex())
	buf.WriteString("\n")

	for _, n := range net.Nodes {
		attrs := fmtAttrs(n, x.Map(n.X), h-y.Map(n.Y), opts.Labels)
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.Index, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, l := range net.Links {
		fmt.Fprintf(&buf, "  n%d -> n%d [penwidth=%s];\n", l.Source, l.Target, fmtFloat(math.Sqrt(l.Weight)))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n network.Node, px, py float64, labels bool) []string {
	diameter := 2 * n.Size / pointsPerInch
	attrs := []string{
		fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(px), fmtFloat(py)),
		fmt.Sprintf("width=%s", fmtFloat(diameter)),
		fmt.Sprintf("height=%s", fmtFloat(diameter)),
		fmt.Sprintf("fillcolor=%q", n.Fill.Hex()),
		fmt.Sprintf("color=%q", n.Stroke.Hex()),
	}
	if labels {
		attrs = append(attrs, fmt.Sprintf("xlabel=%q", n.DisplayLabel()))
	}
	return attrs
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using the Graphviz neato engine,
// which keeps pinned node positions.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element with one whose
// width and height match its viewBox, so the SVG scales cleanly.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
