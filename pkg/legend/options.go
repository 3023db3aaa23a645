package legend

import (
	"image/color"

	"gonum.org/v1/plot/vg"
)

// Anchor is a point in figure fractions.
type Anchor struct {
	X, Y float64
}

// Options control legend layout and styling.
type Options struct {
	Columns int
	Loc     Location

	// Anchor pins the Loc point of the legend box to a point of the figure.
	// When nil the box is placed in the Loc corner of the figure, inset by
	// BorderPad.
	Anchor *Anchor

	Title     string
	FontSize  vg.Length
	TextColor color.Color

	Frame     bool
	FaceColor color.Color
	EdgeColor color.Color

	Padding        vg.Length // between frame and entries
	BorderPad      vg.Length // between figure edge and frame
	ColumnSpacing  vg.Length
	RowSpacing     vg.Length
	ThumbnailWidth vg.Length
	HandleTextPad  vg.Length
}

// DefaultOptions returns a single-column framed legend in the upper right.
func DefaultOptions() Options {
	return Options{
		Columns:        1,
		Loc:            UpperRight,
		FontSize:       vg.Points(10),
		TextColor:      color.Black,
		Frame:          true,
		FaceColor:      color.White,
		EdgeColor:      color.Gray{Y: 0x80},
		Padding:        vg.Points(4),
		BorderPad:      vg.Points(5),
		ColumnSpacing:  vg.Points(16),
		RowSpacing:     vg.Points(3),
		ThumbnailWidth: vg.Points(20),
		HandleTextPad:  vg.Points(6),
	}
}

// Option modifies Options.
type Option func(*Options)

// WithColumns sets the number of columns.
func WithColumns(n int) Option { return func(o *Options) { o.Columns = n } }

// WithLoc sets the legend location.
func WithLoc(l Location) Option { return func(o *Options) { o.Loc = l } }

// WithAnchor pins the legend to a point given in figure fractions.
func WithAnchor(x, y float64) Option {
	return func(o *Options) { o.Anchor = &Anchor{X: x, Y: y} }
}

// WithTitle sets a title drawn above the entries.
func WithTitle(s string) Option { return func(o *Options) { o.Title = s } }

// WithFontSize sets the label font size.
func WithFontSize(size vg.Length) Option { return func(o *Options) { o.FontSize = size } }

// WithTextColor sets the label color.
func WithTextColor(c color.Color) Option { return func(o *Options) { o.TextColor = c } }

// WithFrame turns the frame and background on or off.
func WithFrame(on bool) Option { return func(o *Options) { o.Frame = on } }

// WithFaceColor sets the legend background.
func WithFaceColor(c color.Color) Option { return func(o *Options) { o.FaceColor = c } }

// WithEdgeColor sets the frame color.
func WithEdgeColor(c color.Color) Option { return func(o *Options) { o.EdgeColor = c } }

// WithOptions replaces all options at once, e.g. with values loaded from a
// config file. Options given after it still apply.
func WithOptions(opts Options) Option { return func(o *Options) { *o = opts } }
