package sink

import (
	"image/color"
	"path/filepath"
	"strings"

	"github.com/matzehuels/plotkit/pkg/errors"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJPEG = "jpg"
	FormatTIFF = "tiff"
	FormatPDF  = "pdf"
	FormatEPS  = "eps"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJPEG: true,
	FormatTIFF: true,
	FormatPDF:  true,
	FormatEPS:  true,
}

var formatAliases = map[string]string{
	"jpeg": FormatJPEG,
	"tif":  FormatTIFF,
}

// NormalizeFormat lower-cases f and resolves aliases such as "jpeg" and
// "tif". It fails for unsupported formats.
func NormalizeFormat(f string) (string, error) {
	f = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(f), "."))
	if alias, ok := formatAliases[f]; ok {
		f = alias
	}
	if !ValidFormats[f] {
		return "", errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be svg, png, jpg, tiff, pdf or eps)", f)
	}
	return f, nil
}

// FormatFromPath infers the output format from the extension of path.
func FormatFromPath(path string) (string, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer format of %q: no extension", path)
	}
	return NormalizeFormat(ext)
}

// Orientation of the page. Only EPS output honors it.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

// ParseOrientation parses "portrait" or "landscape".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "portrait":
		return Portrait, nil
	case "landscape":
		return Landscape, nil
	}
	return Portrait, errors.New(errors.ErrCodeInvalidOrientation, "orientation must be portrait or landscape, not %q", s)
}

// String returns the orientation name.
func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// SaveOption configures a save.
type SaveOption func(*saveConfig)

type saveConfig struct {
	format      string
	dpi         float64
	face        color.Color
	edge        color.Color
	transparent bool
	orientation Orientation
}

// WithFormat sets the output format instead of inferring it from a path.
func WithFormat(f string) SaveOption { return func(c *saveConfig) { c.format = f } }

// WithDPI sets the raster resolution. Zero uses the figure's DPI.
func WithDPI(dpi float64) SaveOption { return func(c *saveConfig) { c.dpi = dpi } }

// WithFaceColor overrides the page color. Nil keeps the figure's color.
func WithFaceColor(clr color.Color) SaveOption { return func(c *saveConfig) { c.face = clr } }

// WithEdgeColor overrides the page border color. Nil keeps the figure's color.
func WithEdgeColor(clr color.Color) SaveOption { return func(c *saveConfig) { c.edge = clr } }

// WithTransparent makes the axes backgrounds transparent, and the page too
// unless a face color is given.
func WithTransparent(on bool) SaveOption { return func(c *saveConfig) { c.transparent = on } }

// WithOrientation sets the page orientation for EPS output.
func WithOrientation(o Orientation) SaveOption { return func(c *saveConfig) { c.orientation = o } }

func newSaveConfig(opts ...SaveOption) saveConfig {
	var c saveConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
