package canvas

import (
	"image/color"
	"slices"
)

// OpKind names a recorded drawing command.
type OpKind string

const (
	OpClear  OpKind = "clear"
	OpBegin  OpKind = "begin"
	OpMove   OpKind = "move"
	OpLine   OpKind = "line"
	OpArc    OpKind = "arc"
	OpFill   OpKind = "fill"
	OpStroke OpKind = "stroke"
	OpLabel  OpKind = "label"
)

// Op is one recorded command. Fill and Stroke carry the color and line
// width in effect when they were issued.
type Op struct {
	Kind  OpKind
	Args  []float64
	Color color.NRGBA
	Width float64
	Join  LineJoin
	Text  string
}

// Recorder is a [Context] that logs every command. Clear starts a new log,
// so after a redraw Ops describes exactly one frame.
type Recorder struct {
	W, H float64
	Ops  []Op

	fill, stroke color.NRGBA
	lineW        float64
	join         LineJoin
}

// NewRecorder returns a recorder reporting the given surface size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{W: width, H: height, lineW: 1}
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

func (r *Recorder) Clear() {
	r.Ops = append(r.Ops[:0], Op{Kind: OpClear})
}

func (r *Recorder) SetStrokeColor(c color.NRGBA) { r.stroke = c }
func (r *Recorder) SetFillColor(c color.NRGBA)   { r.fill = c }
func (r *Recorder) SetLineWidth(w float64)       { r.lineW = w }
func (r *Recorder) SetLineJoin(j LineJoin)       { r.join = j }

func (r *Recorder) BeginPath()          { r.add(Op{Kind: OpBegin}) }
func (r *Recorder) MoveTo(x, y float64) { r.add(Op{Kind: OpMove, Args: []float64{x, y}}) }
func (r *Recorder) LineTo(x, y float64) { r.add(Op{Kind: OpLine, Args: []float64{x, y}}) }
func (r *Recorder) Arc(x, y, rad float64) {
	r.add(Op{Kind: OpArc, Args: []float64{x, y, rad}})
}

func (r *Recorder) Fill() { r.add(Op{Kind: OpFill, Color: r.fill}) }
func (r *Recorder) Stroke() {
	r.add(Op{Kind: OpStroke, Color: r.stroke, Width: r.lineW, Join: r.join})
}

func (r *Recorder) DrawLabel(l Label) {
	r.add(Op{Kind: OpLabel, Args: []float64{l.Left, l.Top, l.Width, l.Height}, Color: l.Background, Text: l.Text})
}

func (r *Recorder) add(op Op) { r.Ops = append(r.Ops, op) }

// Filter returns the recorded ops of the given kind in order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Snapshot returns a deep copy of the current log.
func (r *Recorder) Snapshot() []Op {
	out := make([]Op, len(r.Ops))
	for i, op := range r.Ops {
		op.Args = slices.Clone(op.Args)
		out[i] = op
	}
	return out
}

// EqualOps reports whether two logs are identical.
func EqualOps(a, b []Op) bool {
	return slices.EqualFunc(a, b, func(x, y Op) bool {
		return x.Kind == y.Kind && x.Color == y.Color && x.Width == y.Width &&
			x.Join == y.Join && x.Text == y.Text && slices.Equal(x.Args, y.Args)
	})
}

var (
	_ Context = (*Recorder)(nil)
	_ Labeler = (*Recorder)(nil)
)
