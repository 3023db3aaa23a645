package charts

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/plotkit/pkg/errors"
	"github.com/matzehuels/plotkit/pkg/figure"
	"github.com/matzehuels/plotkit/pkg/tally"
)

// Pie draws a pie chart centered on the data origin. Wedges are laid out
// counter-clockwise starting at StartAngle.
type Pie struct {
	Values []float64
	Labels []string
	Colors []color.Color

	// Explode offsets each wedge along its bisector, as a fraction of
	// the radius.
	Explode []float64

	// StartAngle is in degrees counter-clockwise from the positive x axis.
	StartAngle float64

	// AutoPct, when set, is a printf format applied to each wedge's
	// percentage to label the wedge, for example "%1.1f%%".
	AutoPct string

	Radius        float64
	LabelDistance float64
	PctDistance   float64

	LineStyle draw.LineStyle
	TextStyle draw.TextStyle
}

// Wedge is one slice of a pie. Angles are in degrees.
type Wedge struct {
	Label          string
	Fraction       float64
	Theta1, Theta2 float64
	Color          color.Color
	Offset         float64
	LineStyle      draw.LineStyle
}

// Thumbnail implements plot.Thumbnailer.
func (w Wedge) Thumbnail(c *draw.Canvas) {
	pts := rectPolygon(c.Rectangle)
	c.FillPolygon(w.Color, pts)
	if w.LineStyle.Width > 0 {
		c.StrokeLines(w.LineStyle, append(pts, pts[0]))
	}
}

// NewPie returns a pie of values. Values must be non-negative with a
// positive sum.
func NewPie(values []float64, labels []string) (*Pie, error) {
	if len(values) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "pie needs at least one value")
	}
	if labels != nil {
		if err := errors.ValidateSameLength("values", len(values), "labels", len(labels)); err != nil {
			return nil, err
		}
	}
	var sum float64
	for _, v := range values {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "pie values must be finite and non-negative, got %g", v)
		}
		sum += v
	}
	if sum == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "pie values sum to zero")
	}
	return &Pie{
		Values:        slices.Clone(values),
		Labels:        slices.Clone(labels),
		Radius:        1,
		LabelDistance: 1.1,
		PctDistance:   0.6,
		LineStyle:     draw.LineStyle{Color: color.White, Width: vg.Points(1)},
		TextStyle: draw.TextStyle{
			Color:   color.Black,
			Font:    font.From(plot.DefaultFont, 10),
			Handler: plot.DefaultTextHandler,
		},
	}, nil
}

// Wedges returns the wedges in drawing order.
func (p *Pie) Wedges() []Wedge {
	var sum float64
	for _, v := range p.Values {
		sum += v
	}
	out := make([]Wedge, len(p.Values))
	theta := p.StartAngle
	for i, v := range p.Values {
		frac := v / sum
		w := Wedge{
			Fraction:  frac,
			Theta1:    theta,
			Theta2:    theta + 360*frac,
			Color:     plotutil.Color(i),
			LineStyle: p.LineStyle,
		}
		if i < len(p.Labels) {
			w.Label = p.Labels[i]
		}
		if i < len(p.Colors) && p.Colors[i] != nil {
			w.Color = p.Colors[i]
		}
		if i < len(p.Explode) {
			w.Offset = p.Explode[i]
		}
		out[i] = w
		theta = w.Theta2
	}
	return out
}

// Texts returns the label drawn outside each wedge.
func (p *Pie) Texts() []string {
	out := make([]string, len(p.Values))
	copy(out, p.Labels)
	return out
}

// AutoTexts returns the percentage label drawn inside each wedge, or nil
// when AutoPct is not set.
func (p *Pie) AutoTexts() []string {
	if p.AutoPct == "" {
		return nil
	}
	ws := p.Wedges()
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = fmt.Sprintf(p.AutoPct, 100*w.Fraction)
	}
	return out
}

// Plot implements plot.Plotter.
func (p *Pie) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	at := func(r, deg float64, off vg.Point) vg.Point {
		rad := deg * math.Pi / 180
		return vg.Point{
			X: trX(r*math.Cos(rad)) + off.X,
			Y: trY(r*math.Sin(rad)) + off.Y,
		}
	}

	autos := p.AutoTexts()
	for i, w := range p.Wedges() {
		mid := (w.Theta1 + w.Theta2) / 2
		o := at(w.Offset*p.Radius, mid, vg.Point{})
		origin := at(0, 0, vg.Point{})
		off := vg.Point{X: o.X - origin.X, Y: o.Y - origin.Y}

		// One vertex per degree keeps the arc smooth at any size.
		steps := max(int(math.Ceil(w.Theta2-w.Theta1)), 1)
		poly := make([]vg.Point, 0, steps+2)
		if w.Fraction < 1 {
			poly = append(poly, at(0, 0, off))
		}
		for s := range steps + 1 {
			poly = append(poly, at(p.Radius, w.Theta1+(w.Theta2-w.Theta1)*float64(s)/float64(steps), off))
		}
		c.FillPolygon(w.Color, c.ClipPolygonXY(poly))
		if w.LineStyle.Width > 0 {
			c.StrokeLines(w.LineStyle, c.ClipLinesXY(append(poly, poly[0]))...)
		}

		if w.Label != "" {
			sty := p.TextStyle
			sty.YAlign = draw.YCenter
			sty.XAlign = draw.XLeft
			if math.Cos(mid*math.Pi/180) < 0 {
				sty.XAlign = draw.XRight
			}
			c.FillText(sty, at(p.LabelDistance*p.Radius, mid, off), w.Label)
		}
		if autos != nil {
			sty := p.TextStyle
			sty.XAlign, sty.YAlign = draw.XCenter, draw.YCenter
			c.FillText(sty, at(p.PctDistance*p.Radius, mid, off), autos[i])
		}
	}
}

// DataRange implements plot.DataRanger. The range leaves room for the
// outer labels and exploded wedges.
func (p *Pie) DataRange() (xmin, xmax, ymin, ymax float64) {
	ext := p.Radius * (max(p.LabelDistance, 1) + 0.15)
	if len(p.Explode) > 0 {
		ext += p.Radius * max(slices.Max(p.Explode), 0)
	}
	return -ext, ext, -ext, ext
}

// PieOptions configures PieFromTally.
type PieOptions struct {
	AutoPct    string
	StartAngle float64
	// Reverse lays the wedges out least common first.
	Reverse bool
}

// ExplodeOffset is the offset applied to exploded wedges.
const ExplodeOffset = 0.1

// PieFromTally adds a pie of the tally's counts to ax, one wedge per key in
// most-common order. Keys listed in explode are pulled out of the pie.
// Each wedge is registered as a legend handle.
func PieFromTally(ax *figure.Axes, t *tally.Tally, explode []string, opts PieOptions) (*Pie, error) {
	items := t.MostCommon(0)
	if len(items) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot draw a pie of an empty tally")
	}
	if opts.Reverse {
		slices.Reverse(items)
	}

	values := make([]float64, len(items))
	labels := make([]string, len(items))
	offsets := make([]float64, len(items))
	for i, it := range items {
		values[i] = float64(it.Count)
		labels[i] = it.Key
		if slices.Contains(explode, it.Key) {
			offsets[i] = ExplodeOffset
		}
	}

	pie, err := NewPie(values, labels)
	if err != nil {
		return nil, err
	}
	pie.Explode = offsets
	pie.StartAngle = opts.StartAngle
	pie.AutoPct = opts.AutoPct

	ax.Plot.Add(pie)
	ax.Plot.HideAxes()
	ax.Equal = true
	for _, w := range pie.Wedges() {
		ax.AddHandle(w.Label, w)
	}
	return pie, nil
}
