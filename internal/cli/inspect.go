package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netcanvas/pkg/canvas"
	"github.com/matzehuels/netcanvas/pkg/interact"
	"github.com/matzehuels/netcanvas/pkg/network"
	"github.com/matzehuels/netcanvas/pkg/viz"
)

const (
	panStep   = 20.0
	zoomDelta = 500.0 // wheel delta of one zoom step, a factor of two
)

var (
	listSelectedStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	listHighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle       = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle    = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

type inspectKeyMap struct {
	Down     key.Binding
	Up       key.Binding
	Click    key.Binding
	Toggle   key.Binding
	Clear    key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	PanUp    key.Binding
	PanDown  key.Binding
	PanLeft  key.Binding
	PanRight key.Binding
	Write    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var inspectKeys = inspectKeyMap{
	Down: key.NewBinding(
		key.WithKeys("j", "tab"),
		key.WithHelp("j", "down"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "shift+tab"),
		key.WithHelp("k", "up"),
	),
	Click: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("⏎", "click"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "space"),
		key.WithHelp("␣", "toggle"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "zoom out"),
	),
	PanUp: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "pan up"),
	),
	PanDown: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "pan down"),
	),
	PanLeft: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "pan left"),
	),
	PanRight: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "pan right"),
	),
	Write: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "write png"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more keys"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

func (k inspectKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Click, k.Toggle, k.Clear, k.Write, k.Help, k.Quit}
}

func (k inspectKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.Click, k.Toggle, k.Clear},
		{k.ZoomIn, k.ZoomOut, k.PanUp, k.PanDown, k.PanLeft, k.PanRight},
		{k.Write, k.Help, k.Quit},
	}
}

// inspectCommand creates the interactive inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags  vizFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "inspect [dataset.json]",
		Short: "Explore a network interactively in the terminal",
		Long: `Explore a network interactively in the terminal.

Nodes are listed in a table. Keys act on the live visualization as a
pointer would:

  j/k      move the cursor
  enter    click the node (highlight it)
  space    shift-click the node (toggle it in the selection)
  c        click empty space (clear highlight and selection)
  +/-      zoom in/out about the canvas center
  arrows   pan
  w        write the current frame to PNG
  ?        show all keys
  q        quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.resolveViz(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), args[0], output, s)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG file written by the w key (default <dataset>.png)")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input, output string, s vizSettings) error {
	ds, err := loadDataset(ctx, input, c.settings().Styles)
	if err != nil {
		return err
	}
	g, raster, err := newGraph(ctx, ds.net, s)
	if err != nil {
		return err
	}
	defer g.Destroy()

	if output == "" {
		output = basePath("", input, nil) + "." + formatPNG
	}

	m := newInspectModel(g, raster, input, output)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	state := g.Snapshot()
	if fm, ok := final.(inspectModel); ok && fm.written > 0 {
		printSuccess("Wrote %d frame(s)", fm.written)
		printFile(output)
	}
	printKeyValue("Selected", formatSelection(state.Selection))
	printKeyValue("Zoom", fmt.Sprintf("%.2f×", state.Transform.K))
	return nil
}

// inspectModel is the bubbletea model of the inspect command.
type inspectModel struct {
	graph  *viz.Graph
	raster *canvas.Raster
	nodes  []network.Node
	in     []int
	out    []int
	title  string
	output string

	keys inspectKeyMap
	help help.Model

	cursor  int
	offset  int
	height  int
	state   viz.State
	status  string
	written int
}

func newInspectModel(g *viz.Graph, raster *canvas.Raster, title, output string) inspectModel {
	net := g.Network()
	m := inspectModel{
		graph:  g,
		raster: raster,
		nodes:  net.Nodes,
		in:     make([]int, len(net.Nodes)),
		out:    make([]int, len(net.Nodes)),
		title:  title,
		output: output,
		keys:   inspectKeys,
		help:   help.New(),
		height: 15,
		state:  g.Snapshot(),
	}
	for _, l := range net.Links {
		m.out[l.Source]++
		m.in[l.Target]++
	}
	return m
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Down):
			m.move(1)
		case key.Matches(msg, m.keys.Up):
			m.move(-1)
		case key.Matches(msg, m.keys.Click):
			m.clickNode(false)
		case key.Matches(msg, m.keys.Toggle):
			m.clickNode(true)
		case key.Matches(msg, m.keys.Clear):
			m.handle("cleared", interact.Event{Type: interact.Click, X: -1e6, Y: -1e6})
		case key.Matches(msg, m.keys.ZoomIn):
			m.zoom(-zoomDelta)
		case key.Matches(msg, m.keys.ZoomOut):
			m.zoom(zoomDelta)
		case key.Matches(msg, m.keys.PanUp):
			m.pan(0, -panStep)
		case key.Matches(msg, m.keys.PanDown):
			m.pan(0, panStep)
		case key.Matches(msg, m.keys.PanLeft):
			m.pan(-panStep, 0)
		case key.Matches(msg, m.keys.PanRight):
			m.pan(panStep, 0)
		case key.Matches(msg, m.keys.Write):
			m.write()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-10, 5)
		m.help.Width = msg.Width
		m.move(0)
	}
	return m, nil
}

func (m *inspectModel) move(d int) {
	if len(m.nodes) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+d, 0), len(m.nodes)-1)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// clickNode clicks the cursor node at its current pixel position.
func (m *inspectModel) clickNode(modifier bool) {
	if len(m.nodes) == 0 {
		return
	}
	n := m.nodes[m.cursor]
	x, y := m.graph.Scales()
	px, py := x.Map(n.X), y.Map(n.Y)

	if !modifier {
		m.handle("clicked "+n.DisplayLabel(), interact.Event{Type: interact.Click, X: px, Y: py})
		return
	}
	if !m.graph.Options().Brush {
		m.status = "brush selection is disabled"
		return
	}
	m.handle("toggled "+n.DisplayLabel(),
		interact.Event{Type: interact.KeyDown, Shift: true},
		interact.Event{Type: interact.Click, X: px, Y: py},
		interact.Event{Type: interact.KeyUp},
	)
}

func (m *inspectModel) zoom(delta float64) {
	if !m.graph.Options().Zoom {
		m.status = "zoom is disabled"
		return
	}
	w, h := m.graph.Surface().Size()
	m.handle("zoomed", interact.Event{Type: interact.Wheel, X: w / 2, Y: h / 2, Delta: delta})
}

func (m *inspectModel) pan(dx, dy float64) {
	if !m.graph.Options().Zoom {
		m.status = "zoom is disabled"
		return
	}
	m.graph.SetTransform(m.state.Transform.Pan(dx, dy))
	m.state = m.graph.Snapshot()
	m.status = "panned"
}

func (m *inspectModel) handle(status string, events ...interact.Event) {
	if err := m.graph.HandleAll(events); err != nil {
		m.status = err.Error()
		return
	}
	m.state = m.graph.Snapshot()
	m.status = status
}

func (m *inspectModel) write() {
	f, err := os.Create(m.output)
	if err != nil {
		m.status = err.Error()
		return
	}
	defer f.Close()
	if err := m.raster.EncodePNG(f); err != nil {
		m.status = err.Error()
		return
	}
	m.written++
	m.status = "wrote " + m.output
}

func (m inspectModel) highlighted(i int) bool {
	return m.state.Highlight != nil && *m.state.Highlight == i
}

func (m inspectModel) selected(i int) bool {
	return slices.Contains(m.state.Selection, i)
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("netcanvas · " + m.title))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.nodes))
	rows := make([][]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		n := m.nodes[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		mark := ""
		switch {
		case m.highlighted(i):
			mark = "◆"
		case m.selected(i):
			mark = "●"
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(n.Index),
			n.DisplayLabel(),
			strconv.FormatFloat(n.X, 'g', 6, 64),
			strconv.FormatFloat(n.Y, 'g', 6, 64),
			strconv.FormatFloat(n.Size, 'g', 4, 64),
			strconv.Itoa(m.out[i]),
			strconv.Itoa(m.in[i]),
			mark,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Label", "X", "Y", "Size", "Out", "In", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			i := m.offset + row
			switch {
			case m.highlighted(i):
				return listHighlightStyle
			case m.selected(i):
				return listSelectedStyle
			case i == m.cursor:
				return lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	highlight := "—"
	if m.state.Highlight != nil {
		highlight = strconv.Itoa(*m.state.Highlight)
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  selected %d · highlight %s · zoom %.2f× · %s",
		m.cursor+1, len(m.nodes), len(m.state.Selection), highlight, m.state.Transform.K, m.state.Mode)))
	if m.status != "" {
		b.WriteString("\n  ")
		b.WriteString(StyleValue.Render(m.status))
	}

	return b.String()
}

// formatSelection renders node indices as "1, 4, 7" or "none".
func formatSelection(sel []int) string {
	if len(sel) == 0 {
		return "none"
	}
	parts := make([]string, len(sel))
	for i, s := range sel {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ", ")
}
