package sink

import (
	"bytes"
	"image/color"
	"io"
	"math"
	"os"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/matzehuels/plotkit/pkg/errors"
	"github.com/matzehuels/plotkit/pkg/figure"
)

// Render draws fig in the given format and returns the encoded bytes.
func Render(fig *figure.Figure, format string, opts ...SaveOption) ([]byte, error) {
	format, err := NormalizeFormat(format)
	if err != nil {
		return nil, err
	}
	cfg := newSaveConfig(opts...)

	restore := applyColors(fig, cfg)
	defer restore()

	cw, dc := newCanvas(fig, format, cfg)

	var buf bytes.Buffer
	if err := drawTo(fig, dc, cw, &buf); err != nil {
		return nil, err
	}
	if format != FormatSVG {
		return buf.Bytes(), nil
	}

	var clean bytes.Buffer
	if err := CleanWriter(&clean, buf.String()); err != nil {
		return nil, err
	}
	return clean.Bytes(), nil
}

// drawTo draws fig and encodes it. Panics raised by the backend while
// drawing, such as a missing font, are returned as render errors.
func drawTo(fig *figure.Figure, dc draw.Canvas, cw io.WriterTo, w io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.ErrCodeRender, "draw figure: %v", r)
		}
	}()
	fig.Draw(dc)
	if _, err := cw.WriteTo(w); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "encode figure")
	}
	return nil
}

// Save writes fig to w in the given format.
func Save(fig *figure.Figure, w io.Writer, format string, opts ...SaveOption) error {
	data, err := Render(fig, format, opts...)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", format)
	}
	return nil
}

// SaveFile writes fig to path. The format comes from WithFormat or, when
// absent, from the file extension. The name is used verbatim.
func SaveFile(fig *figure.Figure, path string, opts ...SaveOption) error {
	format := newSaveConfig(opts...).format
	if format == "" {
		f, err := FormatFromPath(path)
		if err != nil {
			return err
		}
		format = f
	}
	data, err := Render(fig, format, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

// SaveSVG writes fig to w as a cleaned-up SVG document.
func SaveSVG(fig *figure.Figure, w io.Writer, opts ...SaveOption) error {
	return Save(fig, w, FormatSVG, opts...)
}

// SaveSVGFile writes fig to path as a cleaned-up SVG document regardless
// of the file extension.
func SaveSVGFile(fig *figure.Figure, path string, opts ...SaveOption) error {
	return SaveFile(fig, path, append(opts, WithFormat(FormatSVG))...)
}

func newCanvas(fig *figure.Figure, format string, cfg saveConfig) (vg.CanvasWriterTo, draw.Canvas) {
	w, h := fig.Width, fig.Height

	dpi := cfg.dpi
	if dpi <= 0 {
		dpi = fig.DPI
	}
	if dpi <= 0 {
		dpi = figure.DefaultDPI
	}

	var cw vg.CanvasWriterTo
	switch format {
	case FormatSVG:
		cw = vgsvg.New(w, h)
	case FormatPNG, FormatJPEG, FormatTIFF:
		var img *vgimg.Canvas
		res := int(math.Round(dpi))
		if cfg.transparent && format != FormatJPEG {
			img = vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(res), vgimg.UseBackgroundColor(color.Transparent))
		} else {
			img = vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(res))
		}
		switch format {
		case FormatPNG:
			cw = vgimg.PngCanvas{Canvas: img}
		case FormatJPEG:
			cw = vgimg.JpegCanvas{Canvas: img}
		default:
			cw = vgimg.TiffCanvas{Canvas: img}
		}
	case FormatPDF:
		cw = vgpdf.New(w, h)
	case FormatEPS:
		if cfg.orientation == Landscape {
			c := vgeps.New(h, w)
			// Rotate the page a quarter turn so the figure's x axis runs up.
			c.Translate(vg.Point{X: h})
			c.Rotate(math.Pi / 2)
			return c, draw.Canvas{Canvas: c, Rectangle: vg.Rectangle{Max: vg.Point{X: w, Y: h}}}
		}
		cw = vgeps.New(w, h)
	}
	return cw, draw.New(cw)
}

// applyColors applies the color options to fig and returns a function
// restoring the previous state.
func applyColors(fig *figure.Figure, cfg saveConfig) func() {
	face, edge := fig.FaceColor, fig.EdgeColor
	axes := fig.Axes()
	backgrounds := make([]color.Color, len(axes))
	for i, ax := range axes {
		backgrounds[i] = ax.Plot.BackgroundColor
	}

	if cfg.face != nil {
		fig.FaceColor = cfg.face
	} else if cfg.transparent {
		fig.FaceColor = color.Transparent
	}
	if cfg.edge != nil {
		fig.EdgeColor = cfg.edge
	} else if cfg.transparent {
		fig.EdgeColor = color.Transparent
	}
	if cfg.transparent {
		for _, ax := range axes {
			ax.Plot.BackgroundColor = color.Transparent
		}
	}

	return func() {
		fig.FaceColor, fig.EdgeColor = face, edge
		for i, ax := range axes {
			ax.Plot.BackgroundColor = backgrounds[i]
		}
	}
}
