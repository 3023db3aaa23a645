package legend

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/plotkit/pkg/errors"
	"github.com/matzehuels/plotkit/pkg/figure"
	"github.com/matzehuels/plotkit/pkg/reflow"
)

// Entry is one legend item.
type Entry struct {
	Label  string
	Thumbs []plot.Thumbnailer
}

// Legend is a multi-column legend drawn on a whole figure canvas.
type Legend struct {
	Entries []Entry
	Options
}

// New returns a legend for entries.
func New(entries []Entry, opts ...Option) (*Legend, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := errors.ValidateColumns(o.Columns); err != nil {
		return nil, err
	}
	return &Legend{Entries: entries, Options: o}, nil
}

// Horizontal places a legend on fig whose entries read left to right, then
// top to bottom. When handles and labels are both nil they are taken from
// the figure's first axes. The legend is added to the figure and returned.
func Horizontal(fig *figure.Figure, handles []plot.Thumbnailer, labels []string, opts ...Option) (*Legend, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if handles == nil && labels == nil {
		handles, labels = fig.HandlesLabels()
	}

	hs, ls, err := reflow.Legend(handles, labels, o.Columns)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, len(hs))
	for i := range hs {
		entries[i] = Entry{Label: ls[i], Thumbs: []plot.Thumbnailer{hs[i]}}
	}

	lg := &Legend{Entries: entries, Options: o}
	fig.AddArtist(lg)
	return lg, nil
}

// ColumnSizes returns how many entries each column holds. A legend never
// has more columns than entries.
func (l *Legend) ColumnSizes() []int {
	ncol := max(min(l.Columns, len(l.Entries)), 1)
	rows, large := len(l.Entries)/ncol, len(l.Entries)%ncol
	sizes := make([]int, ncol)
	for c := range sizes {
		sizes[c] = rows
		if c < large {
			sizes[c]++
		}
	}
	return sizes
}

// Grid returns the entries split into columns, each filled top to bottom.
func (l *Legend) Grid() [][]Entry {
	sizes := l.ColumnSizes()
	cols := make([][]Entry, len(sizes))
	i := 0
	for c, n := range sizes {
		cols[c] = l.Entries[i : i+n]
		i += n
	}
	return cols
}

// ReadingOrder returns the labels as they appear reading each row left to
// right, from the top row down.
func (l *Legend) ReadingOrder() []string {
	cols := l.Grid()
	out := make([]string, 0, len(l.Entries))
	for r := 0; len(out) < len(l.Entries); r++ {
		for _, col := range cols {
			if r < len(col) {
				out = append(out, col[r].Label)
			}
		}
	}
	return out
}

func (l *Legend) textStyle() draw.TextStyle {
	return draw.TextStyle{
		Color:   l.TextColor,
		Font:    font.From(plot.DefaultFont, l.FontSize),
		Handler: plot.DefaultTextHandler,
		XAlign:  draw.XLeft,
		YAlign:  draw.YCenter,
	}
}

type metrics struct {
	rowHeight vg.Length
	titleH    vg.Length
	colWidths []vg.Length
	rows      int
	width     vg.Length
	height    vg.Length
}

func (l *Legend) measure() metrics {
	sty := l.textStyle()
	m := metrics{rowHeight: sty.Height("Xg")}
	cols := l.Grid()

	var entriesW vg.Length
	visible := 0
	for _, col := range cols {
		if len(col) == 0 {
			m.colWidths = append(m.colWidths, 0)
			continue
		}
		var labelW vg.Length
		for _, e := range col {
			labelW = max(labelW, sty.Width(e.Label))
		}
		w := l.ThumbnailWidth + l.HandleTextPad + labelW
		m.colWidths = append(m.colWidths, w)
		entriesW += w
		m.rows = max(m.rows, len(col))
		visible++
	}
	if visible > 1 {
		entriesW += vg.Length(visible-1) * l.ColumnSpacing
	}

	entriesH := vg.Length(m.rows) * m.rowHeight
	if m.rows > 1 {
		entriesH += vg.Length(m.rows-1) * l.RowSpacing
	}

	if l.Title != "" {
		m.titleH = sty.Height(l.Title) + l.RowSpacing
		entriesW = max(entriesW, sty.Width(l.Title))
	}

	m.width = entriesW + 2*l.Padding
	m.height = entriesH + m.titleH + 2*l.Padding
	return m
}

// Size returns the width and height of the legend box.
func (l *Legend) Size() (w, h vg.Length) {
	m := l.measure()
	return m.width, m.height
}

// Rectangle returns the legend box on the figure canvas c.
func (l *Legend) Rectangle(c draw.Canvas) vg.Rectangle {
	w, h := l.Size()
	ax, ay := l.Loc.align()

	var pin vg.Point
	if l.Anchor != nil {
		pin = figure.Point(c, l.Anchor.X, l.Anchor.Y)
	} else {
		// Inset from the matching corner or edge of the figure.
		pin = figure.Point(c, ax, ay)
		pin.X += vg.Length(1-2*ax) * l.BorderPad
		pin.Y += vg.Length(1-2*ay) * l.BorderPad
	}
	minPt := vg.Point{X: pin.X - vg.Length(ax)*w, Y: pin.Y - vg.Length(ay)*h}
	return vg.Rectangle{Min: minPt, Max: vg.Point{X: minPt.X + w, Y: minPt.Y + h}}
}

// Draw implements figure.Artist.
func (l *Legend) Draw(c draw.Canvas) {
	if len(l.Entries) == 0 && l.Title == "" {
		return
	}
	m := l.measure()
	box := l.Rectangle(c)

	if l.Frame {
		corners := []vg.Point{box.Min, {X: box.Max.X, Y: box.Min.Y}, box.Max, {X: box.Min.X, Y: box.Max.Y}}
		if l.FaceColor != nil {
			c.FillPolygon(l.FaceColor, corners)
		}
		if l.EdgeColor != nil {
			c.StrokeLines(draw.LineStyle{Color: l.EdgeColor, Width: vg.Points(0.8)}, append(corners, corners[0]))
		}
	}

	sty := l.textStyle()
	top := box.Max.Y - l.Padding
	if l.Title != "" {
		tsty := sty
		tsty.XAlign = draw.XCenter
		tsty.YAlign = draw.YTop
		c.FillText(tsty, vg.Point{X: (box.Min.X + box.Max.X) / 2, Y: top}, l.Title)
		top -= m.titleH
	}

	x := box.Min.X + l.Padding
	for ci, col := range l.Grid() {
		if len(col) == 0 {
			continue
		}
		for ri, e := range col {
			y := top - vg.Length(ri)*(m.rowHeight+l.RowSpacing) - m.rowHeight/2
			icon := draw.Canvas{
				Canvas: c.Canvas,
				Rectangle: vg.Rectangle{
					Min: vg.Point{X: x, Y: y - m.rowHeight/2},
					Max: vg.Point{X: x + l.ThumbnailWidth, Y: y + m.rowHeight/2},
				},
			}
			for _, t := range e.Thumbs {
				t.Thumbnail(&icon)
			}
			c.FillText(sty, vg.Point{X: x + l.ThumbnailWidth + l.HandleTextPad, Y: y}, e.Label)
		}
		x += m.colWidths[ci] + l.ColumnSpacing
	}
}
