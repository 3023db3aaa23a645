package figure

import (
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/plotkit/pkg/errors"
)

// Rect is an area of a figure in figure fractions, with the origin at the
// bottom left.
type Rect struct {
	Left, Bottom  float64
	Width, Height float64
}

// Right returns the right edge of r.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Top returns the top edge of r.
func (r Rect) Top() float64 { return r.Bottom + r.Height }

// Validate checks that r has a positive size and lies within the figure.
func (r Rect) Validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{{"left", r.Left}, {"bottom", r.Bottom}, {"width", r.Width}, {"height", r.Height}} {
		if err := errors.ValidateFraction(v.name, v.val); err != nil {
			return err
		}
	}
	if r.Width == 0 || r.Height == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "axes rectangle has no area (%gx%g)", r.Width, r.Height)
	}
	const eps = 1e-9
	if r.Right() > 1+eps || r.Top() > 1+eps {
		return errors.New(errors.ErrCodeInvalidInput, "axes rectangle extends past the figure (right %g, top %g)", r.Right(), r.Top())
	}
	return nil
}

// Region returns the part of c covered by r.
func (r Rect) Region(c draw.Canvas) draw.Canvas {
	w := c.Max.X - c.Min.X
	h := c.Max.Y - c.Min.Y
	sub := c
	sub.Rectangle = vg.Rectangle{
		Min: vg.Point{X: c.Min.X + vg.Length(r.Left)*w, Y: c.Min.Y + vg.Length(r.Bottom)*h},
		Max: vg.Point{X: c.Min.X + vg.Length(r.Right())*w, Y: c.Min.Y + vg.Length(r.Top())*h},
	}
	return sub
}

// Point converts a point in figure fractions to canvas coordinates.
func Point(c draw.Canvas, x, y float64) vg.Point {
	return vg.Point{
		X: c.Min.X + vg.Length(x)*(c.Max.X-c.Min.X),
		Y: c.Min.Y + vg.Length(y)*(c.Max.Y-c.Min.Y),
	}
}

// Margins are the distances from the page edges to the axes, in figure
// fractions.
type Margins struct {
	Left, Bottom, Right, Top float64
}

// DefaultMargins leave room for tick labels on the left and a title on top.
var DefaultMargins = Margins{Left: 0.2, Bottom: 0.14, Right: 0.025, Top: 0.13}

// Rect returns the axes rectangle left inside the margins.
func (m Margins) Rect() (Rect, error) {
	r := Rect{Left: m.Left, Bottom: m.Bottom, Width: 1 - m.Left - m.Right, Height: 1 - m.Top - m.Bottom}
	for _, v := range []struct {
		name string
		val  float64
	}{{"left margin", m.Left}, {"bottom margin", m.Bottom}, {"right margin", m.Right}, {"top margin", m.Top}} {
		if err := errors.ValidateFraction(v.name, v.val); err != nil {
			return Rect{}, err
		}
	}
	if r.Width <= 0 || r.Height <= 0 {
		return Rect{}, errors.New(errors.ErrCodeInvalidInput, "margins leave no room for axes (%+v)", m)
	}
	return r, nil
}
