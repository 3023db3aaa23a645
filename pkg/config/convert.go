package config

import (
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/plotkit/pkg/errors"
	"github.com/matzehuels/plotkit/pkg/figure"
	"github.com/matzehuels/plotkit/pkg/legend"
	"github.com/matzehuels/plotkit/pkg/sink"
)

// DefaultPageSize is used when the config names no page.
var DefaultPageSize = figure.Inches(6.4, 4.8)

// PageSize returns the configured figure size. Width and height take
// precedence over a named page.
func (c *Config) PageSize() (figure.PageSize, error) {
	f := c.Figure
	size := DefaultPageSize
	switch {
	case f.Width > 0 || f.Height > 0:
		if f.Width <= 0 || f.Height <= 0 {
			return figure.PageSize{}, errors.New(errors.ErrCodeInvalidConfig, "figure width and height must both be positive, got %gx%g", f.Width, f.Height)
		}
		size = figure.Inches(f.Width, f.Height)
	case f.Page != "":
		ps, err := figure.PageSizeByName(f.Page)
		if err != nil {
			return figure.PageSize{}, err
		}
		size = ps
	}

	o, err := sink.ParseOrientation(f.Orientation)
	if err != nil {
		return figure.PageSize{}, err
	}
	if f.Orientation == "" {
		return size, nil
	}
	if o == sink.Landscape {
		return size.Landscape(), nil
	}
	return size.Portrait(), nil
}

// HasPageSize reports whether the config sets the figure size.
func (c *Config) HasPageSize() bool {
	f := c.Figure
	return f.Page != "" || f.Width > 0 || f.Height > 0 || f.Orientation != ""
}

// Margins returns the configured axes margins, or figure.DefaultMargins.
func (c *Config) Margins() (figure.Margins, error) {
	m := c.Figure.Margins
	if m == nil {
		return figure.DefaultMargins, nil
	}
	out := figure.Margins{Left: m.Left, Bottom: m.Bottom, Right: m.Right, Top: m.Top}
	if _, err := out.Rect(); err != nil {
		return figure.Margins{}, err
	}
	return out, nil
}

// FigureOptions returns the figure options set in the config.
func (c *Config) FigureOptions() ([]figure.Option, error) {
	var opts []figure.Option
	if c.Figure.DPI != 0 {
		if err := errors.ValidateDPI(c.Figure.DPI); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid figure dpi")
		}
		opts = append(opts, figure.WithDPI(c.Figure.DPI))
	}
	face, err := ParseColor(c.Figure.FaceColor)
	if err != nil {
		return nil, err
	}
	if face != nil {
		opts = append(opts, figure.WithFaceColor(face))
	}
	edge, err := ParseColor(c.Figure.EdgeColor)
	if err != nil {
		return nil, err
	}
	if edge != nil {
		opts = append(opts, figure.WithEdgeColor(edge))
	}
	return opts, nil
}

// ApplyFigure applies the figure settings to an existing figure.
func (c *Config) ApplyFigure(fig *figure.Figure) error {
	opts, err := c.FigureOptions()
	if err != nil {
		return err
	}
	for _, opt := range opts {
		opt(fig)
	}
	if c.HasPageSize() {
		size, err := c.PageSize()
		if err != nil {
			return err
		}
		fig.Width, fig.Height = size.Width, size.Height
	}
	return nil
}

// LegendOptions returns the legend options set in the config.
func (c *Config) LegendOptions() ([]legend.Option, error) {
	l := c.Legend
	if err := errors.ValidateColumns(l.NCol); err != nil {
		return nil, err
	}
	opts := []legend.Option{legend.WithColumns(l.NCol)}

	if l.Loc != "" {
		loc, err := legend.ParseLocation(l.Loc)
		if err != nil {
			return nil, err
		}
		opts = append(opts, legend.WithLoc(loc))
	}
	switch len(l.Anchor) {
	case 0:
	case 2:
		opts = append(opts, legend.WithAnchor(l.Anchor[0], l.Anchor[1]))
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "legend anchor must be [x, y], got %d values", len(l.Anchor))
	}
	if l.FontSize < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "legend fontsize must not be negative, got %g", l.FontSize)
	}
	if l.FontSize > 0 {
		opts = append(opts, legend.WithFontSize(vg.Points(l.FontSize)))
	}
	if l.Frame != nil {
		opts = append(opts, legend.WithFrame(*l.Frame))
	}
	if l.Title != "" {
		opts = append(opts, legend.WithTitle(l.Title))
	}
	return opts, nil
}

// SaveOptions returns the save options set in the config, including the
// output format.
func (c *Config) SaveOptions() ([]sink.SaveOption, error) {
	s := c.Save
	var opts []sink.SaveOption
	if s.Format != "" {
		f, err := sink.NormalizeFormat(s.Format)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sink.WithFormat(f))
	}
	if s.DPI != 0 {
		if err := errors.ValidateDPI(s.DPI); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid save dpi")
		}
		opts = append(opts, sink.WithDPI(s.DPI))
	}
	if s.Transparent {
		opts = append(opts, sink.WithTransparent(true))
	}
	if s.Orientation != "" {
		o, err := sink.ParseOrientation(s.Orientation)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sink.WithOrientation(o))
	}
	return opts, nil
}
