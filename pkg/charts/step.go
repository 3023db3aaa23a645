package charts

import (
	"image/color"
	"slices"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/plotkit/pkg/errors"
)

// Orientation is the direction in which bars grow.
type Orientation int

const (
	// Vertical bars grow along +y.
	Vertical Orientation = iota
	// Horizontal bars grow along +x.
	Horizontal
)

// ParseOrientation accepts "v", "vertical", "h" and "horizontal".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(s) {
	case "v", "vertical":
		return Vertical, nil
	case "h", "horizontal":
		return Horizontal, nil
	}
	return Vertical, errors.New(errors.ErrCodeInvalidOrientation, "orientation must be in {'h', 'v'} not %q", s)
}

// String returns "v" or "h".
func (o Orientation) String() string {
	if o == Horizontal {
		return "h"
	}
	return "v"
}

// FilledStep draws a histogram as a stepped, filled patch between the
// bottoms and the values.
type FilledStep struct {
	// Edges holds the left edge of each bin and the right edge of the
	// last one.
	Edges   []float64
	Values  []float64
	Bottoms []float64

	Orientation Orientation
	FillColor   color.Color
	LineStyle   draw.LineStyle

	// Hatch is a pattern of hatch characters, see ValidateHatch.
	Hatch        string
	HatchStyle   draw.LineStyle
	HatchSpacing vg.Length
}

// NewFilledStep returns a stepped patch for len(edges)-1 bins. bottoms may
// be nil (zero), a single value used for every bin, or one value per bin.
func NewFilledStep(edges, values, bottoms []float64, o Orientation) (*FilledStep, error) {
	if o != Vertical && o != Horizontal {
		return nil, errors.New(errors.ErrCodeInvalidOrientation, "orientation must be in {'h', 'v'} not %d", o)
	}
	if len(values) == 0 || len(edges)-1 != len(values) {
		return nil, errors.New(errors.ErrCodeLengthMismatch,
			"must provide one more bin edge than value not: len(edges): %d len(values): %d", len(edges), len(values))
	}
	b, err := broadcast(bottoms, len(values))
	if err != nil {
		return nil, err
	}
	return &FilledStep{
		Edges:       slices.Clone(edges),
		Values:      slices.Clone(values),
		Bottoms:     b,
		Orientation: o,
		FillColor:   color.Gray{Y: 128},
		HatchStyle:  draw.LineStyle{Color: color.Black, Width: vg.Points(0.5)},
	}, nil
}

func broadcast(v []float64, n int) ([]float64, error) {
	switch len(v) {
	case 0:
		return make([]float64, n), nil
	case 1:
		out := make([]float64, n)
		for i := range out {
			out[i] = v[0]
		}
		return out, nil
	case n:
		return slices.Clone(v), nil
	}
	return nil, errors.New(errors.ErrCodeLengthMismatch, "bottoms must have 1 or %d values, got %d", n, len(v))
}

// bins returns each bin as a data rectangle, with x along the bin axis
// and y along the value axis.
func (fs *FilledStep) bins() []vg.Rectangle {
	out := make([]vg.Rectangle, len(fs.Values))
	for i, v := range fs.Values {
		lo, hi := fs.Bottoms[i], v
		if lo > hi {
			lo, hi = hi, lo
		}
		out[i] = vg.Rectangle{
			Min: vg.Point{X: vg.Length(fs.Edges[i]), Y: vg.Length(lo)},
			Max: vg.Point{X: vg.Length(fs.Edges[i+1]), Y: vg.Length(hi)},
		}
	}
	return out
}

// Outline returns the closed step outline in data coordinates: the tops
// from left to right, then the bottoms from right to left.
func (fs *FilledStep) Outline() [][2]float64 {
	n := len(fs.Values)
	pts := make([][2]float64, 0, 4*n)
	for i := range n {
		pts = append(pts, fs.point(fs.Edges[i], fs.Values[i]), fs.point(fs.Edges[i+1], fs.Values[i]))
	}
	for i := n - 1; i >= 0; i-- {
		pts = append(pts, fs.point(fs.Edges[i+1], fs.Bottoms[i]), fs.point(fs.Edges[i], fs.Bottoms[i]))
	}
	return pts
}

func (fs *FilledStep) point(edge, value float64) [2]float64 {
	if fs.Orientation == Horizontal {
		return [2]float64{value, edge}
	}
	return [2]float64{edge, value}
}

// Plot implements plot.Plotter.
func (fs *FilledStep) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	toCanvas := func(x, y float64) vg.Point {
		pt := fs.point(x, y)
		return vg.Point{X: trX(pt[0]), Y: trY(pt[1])}
	}

	outline := fs.Outline()
	poly := make([]vg.Point, len(outline))
	for i, pt := range outline {
		poly[i] = vg.Point{X: trX(pt[0]), Y: trY(pt[1])}
	}
	if fs.FillColor != nil {
		c.FillPolygon(fs.FillColor, c.ClipPolygonXY(poly))
	}

	if fs.Hatch != "" {
		for _, b := range fs.bins() {
			a := toCanvas(float64(b.Min.X), float64(b.Min.Y))
			z := toCanvas(float64(b.Max.X), float64(b.Max.Y))
			r := vg.Rectangle{
				Min: vg.Point{X: max(min(a.X, z.X), c.Min.X), Y: max(min(a.Y, z.Y), c.Min.Y)},
				Max: vg.Point{X: min(max(a.X, z.X), c.Max.X), Y: min(max(a.Y, z.Y), c.Max.Y)},
			}
			drawHatch(c, r, fs.Hatch, fs.HatchStyle, fs.HatchSpacing)
		}
	}

	if fs.LineStyle.Width > 0 {
		c.StrokeLines(fs.LineStyle, c.ClipLinesXY(append(poly, poly[0]))...)
	}
}

// DataRange implements plot.DataRanger.
func (fs *FilledStep) DataRange() (xmin, xmax, ymin, ymax float64) {
	emin, emax := slices.Min(fs.Edges), slices.Max(fs.Edges)
	vmin := min(slices.Min(fs.Values), slices.Min(fs.Bottoms))
	vmax := max(slices.Max(fs.Values), slices.Max(fs.Bottoms))
	if fs.Orientation == Horizontal {
		return vmin, vmax, emin, emax
	}
	return emin, emax, vmin, vmax
}

// Thumbnail implements plot.Thumbnailer.
func (fs *FilledStep) Thumbnail(c *draw.Canvas) {
	r := c.Rectangle
	if fs.FillColor != nil {
		c.FillPolygon(fs.FillColor, rectPolygon(r))
	}
	drawHatch(*c, r, fs.Hatch, fs.HatchStyle, fs.HatchSpacing/2)
	if fs.LineStyle.Width > 0 {
		pts := rectPolygon(r)
		c.StrokeLines(fs.LineStyle, append(pts, pts[0]))
	}
}
