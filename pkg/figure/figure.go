package figure

import (
	"fmt"
	"image/color"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/plotkit/pkg/errors"
)

// DefaultDPI is the resolution used for raster output when none is set.
const DefaultDPI = 100

// Artist is drawn on the whole figure canvas after the axes.
type Artist interface {
	Draw(c draw.Canvas)
}

// Figure is a page holding axes and figure-level artists.
type Figure struct {
	Width, Height vg.Length
	DPI           float64
	FaceColor     color.Color
	EdgeColor     color.Color
	EdgeWidth     vg.Length

	axes    []*Axes
	artists []Artist
}

// Option configures a Figure.
type Option func(*Figure)

// WithDPI sets the raster resolution.
func WithDPI(dpi float64) Option { return func(f *Figure) { f.DPI = dpi } }

// WithFaceColor sets the page background.
func WithFaceColor(c color.Color) Option { return func(f *Figure) { f.FaceColor = c } }

// WithEdgeColor sets the color of the page border.
func WithEdgeColor(c color.Color) Option { return func(f *Figure) { f.EdgeColor = c } }

// New creates an empty figure. The page is white with a white border
// unless configured otherwise.
func New(size PageSize, opts ...Option) *Figure {
	f := &Figure{
		Width:     size.Width,
		Height:    size.Height,
		DPI:       DefaultDPI,
		FaceColor: color.White,
		EdgeColor: color.White,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns a figure with a single axes placed inside the given
// margins.
func Create(size PageSize, m Margins, opts ...Option) (*Figure, *Axes, error) {
	r, err := m.Rect()
	if err != nil {
		return nil, nil, err
	}
	f := New(size, opts...)
	ax, err := f.AddAxes(r)
	if err != nil {
		return nil, nil, err
	}
	return f, ax, nil
}

// AddAxes adds a new axes covering r.
func (f *Figure) AddAxes(r Rect) (*Axes, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	ax := newAxes(r)
	f.axes = append(f.axes, ax)
	return ax, nil
}

// Subplots adds a rows x cols grid of axes and returns them in row-major
// order starting at the top left. pad is the gap between cells and around
// the grid, in figure fractions.
func (f *Figure) Subplots(rows, cols int, pad float64) ([]*Axes, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "subplot grid must be at least 1x1, got %dx%d", rows, cols)
	}
	if err := errors.ValidateFraction("pad", pad); err != nil {
		return nil, err
	}
	w := (1 - pad*float64(cols+1)) / float64(cols)
	h := (1 - pad*float64(rows+1)) / float64(rows)
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "padding %g leaves no room for a %dx%d grid", pad, rows, cols)
	}

	out := make([]*Axes, 0, rows*cols)
	for r := range rows {
		for c := range cols {
			rect := Rect{
				Left:   pad + float64(c)*(w+pad),
				Bottom: 1 - float64(r+1)*(h+pad),
				Width:  w,
				Height: h,
			}
			ax, err := f.AddAxes(rect)
			if err != nil {
				return nil, fmt.Errorf("subplot %d,%d: %w", r, c, err)
			}
			out = append(out, ax)
		}
	}
	return out, nil
}

// TrimAxes removes every axes after the first n.
func (f *Figure) TrimAxes(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(f.axes) {
		f.axes = f.axes[:n:n]
	}
}

// RemoveAxes removes ax from the figure and reports whether it was present.
func (f *Figure) RemoveAxes(ax *Axes) bool {
	i := slices.Index(f.axes, ax)
	if i < 0 {
		return false
	}
	f.axes = slices.Delete(f.axes, i, i+1)
	return true
}

// Axes returns the figure's axes in the order they were added.
func (f *Figure) Axes() []*Axes { return slices.Clone(f.axes) }

// AddArtist adds a figure-level artist.
func (f *Figure) AddArtist(a Artist) { f.artists = append(f.artists, a) }

// Artists returns the figure-level artists.
func (f *Figure) Artists() []Artist { return slices.Clone(f.artists) }

// HandlesLabels returns the legend handles and labels of the first axes.
func (f *Figure) HandlesLabels() ([]plot.Thumbnailer, []string) {
	if len(f.axes) == 0 {
		return nil, nil
	}
	return f.axes[0].HandlesLabels()
}

// Draw draws the figure onto c, which is treated as the whole page.
func (f *Figure) Draw(c draw.Canvas) {
	corners := []vg.Point{
		c.Min,
		{X: c.Max.X, Y: c.Min.Y},
		c.Max,
		{X: c.Min.X, Y: c.Max.Y},
	}
	if f.FaceColor != nil {
		c.FillPolygon(f.FaceColor, corners)
	}
	for _, ax := range f.axes {
		ax.draw(c)
	}
	for _, a := range f.artists {
		a.Draw(c)
	}
	if f.EdgeColor != nil && f.EdgeWidth > 0 {
		sty := draw.LineStyle{Color: f.EdgeColor, Width: f.EdgeWidth}
		c.StrokeLines(sty, append(corners, corners[0]))
	}
}
