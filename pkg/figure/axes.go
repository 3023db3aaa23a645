package figure

import (
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Axes is a single plot placed on a figure.
type Axes struct {
	Plot *plot.Plot
	Rect Rect

	// Equal keeps one data unit the same length on both axes by shrinking
	// the drawing area around its center.
	Equal bool

	handles []plot.Thumbnailer
	labels  []string
}

func newAxes(r Rect) *Axes {
	return &Axes{Plot: plot.New(), Rect: r}
}

// Add adds p to the plot. When label is not empty and p can draw a legend
// thumbnail, p is recorded as a legend handle with that label.
func (a *Axes) Add(label string, p plot.Plotter) {
	a.Plot.Add(p)
	if label == "" {
		return
	}
	if t, ok := p.(plot.Thumbnailer); ok {
		a.AddHandle(label, t)
	}
}

// AddHandle records a legend handle without adding anything to the plot.
// Several thumbnailers are drawn on top of each other as one handle.
func (a *Axes) AddHandle(label string, thumbs ...plot.Thumbnailer) {
	if len(thumbs) == 0 {
		return
	}
	var h plot.Thumbnailer = thumbs[0]
	if len(thumbs) > 1 {
		h = Thumbs(thumbs)
	}
	a.handles = append(a.handles, h)
	a.labels = append(a.labels, label)
}

// HandlesLabels returns the recorded legend handles and their labels.
func (a *Axes) HandlesLabels() ([]plot.Thumbnailer, []string) {
	return slices.Clone(a.handles), slices.Clone(a.labels)
}

// Legend adds the recorded handles to the plot's own legend.
func (a *Axes) Legend() {
	for i, h := range a.handles {
		a.Plot.Legend.Add(a.labels[i], h)
	}
}

// Title sets the plot title.
func (a *Axes) Title(s string) { a.Plot.Title.Text = s }

// XLabel sets the x axis label.
func (a *Axes) XLabel(s string) { a.Plot.X.Label.Text = s }

// YLabel sets the y axis label.
func (a *Axes) YLabel(s string) { a.Plot.Y.Label.Text = s }

func (a *Axes) draw(c draw.Canvas) {
	sub := a.Rect.Region(c)
	if a.Equal {
		sub = equalAspect(sub, a.Plot)
	}
	a.Plot.Draw(sub)
}

// equalAspect shrinks c so its aspect ratio matches the data ranges of p.
func equalAspect(c draw.Canvas, p *plot.Plot) draw.Canvas {
	dx := p.X.Max - p.X.Min
	dy := p.Y.Max - p.Y.Min
	if dx <= 0 || dy <= 0 {
		return c
	}
	w := c.Max.X - c.Min.X
	h := c.Max.Y - c.Min.Y
	scale := min(float64(w)/dx, float64(h)/dy)
	nw, nh := vg.Length(dx*scale), vg.Length(dy*scale)
	cx, cy := (c.Min.X+c.Max.X)/2, (c.Min.Y+c.Max.Y)/2
	c.Rectangle = vg.Rectangle{
		Min: vg.Point{X: cx - nw/2, Y: cy - nh/2},
		Max: vg.Point{X: cx + nw/2, Y: cy + nh/2},
	}
	return c
}

// Thumbs draws several thumbnails as a single legend handle.
type Thumbs []plot.Thumbnailer

// Thumbnail implements plot.Thumbnailer.
func (ts Thumbs) Thumbnail(c *draw.Canvas) {
	for _, t := range ts {
		t.Thumbnail(c)
	}
}
