package figure

import (
	"strings"

	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/plotkit/pkg/errors"
)

// PageSize is the physical size of a figure.
type PageSize struct {
	Width  vg.Length
	Height vg.Length
}

// Standard page sizes, in portrait orientation.
var (
	A3      = PageSize{297 * vg.Millimeter, 420 * vg.Millimeter}
	A4      = PageSize{210 * vg.Millimeter, 297 * vg.Millimeter}
	A5      = PageSize{148 * vg.Millimeter, 210 * vg.Millimeter}
	Letter  = PageSize{8.5 * vg.Inch, 11 * vg.Inch}
	Legal   = PageSize{8.5 * vg.Inch, 14 * vg.Inch}
	Tabloid = PageSize{11 * vg.Inch, 17 * vg.Inch}
)

var pageSizes = map[string]PageSize{
	"a3":      A3,
	"a4":      A4,
	"a5":      A5,
	"letter":  Letter,
	"legal":   Legal,
	"tabloid": Tabloid,
}

// Inches returns a page size given in inches.
func Inches(w, h float64) PageSize {
	return PageSize{vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch}
}

// PageSizeByName looks up a standard page size, ignoring case.
func PageSizeByName(name string) (PageSize, error) {
	ps, ok := pageSizes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return PageSize{}, errors.New(errors.ErrCodeInvalidInput, "unknown page size %q", name)
	}
	return ps, nil
}

// Landscape returns p with the longer side horizontal.
func (p PageSize) Landscape() PageSize {
	if p.Width < p.Height {
		return PageSize{p.Height, p.Width}
	}
	return p
}

// Portrait returns p with the longer side vertical.
func (p PageSize) Portrait() PageSize {
	if p.Width > p.Height {
		return PageSize{p.Height, p.Width}
	}
	return p
}

// InInches returns the width and height in inches.
func (p PageSize) InInches() (w, h float64) {
	return float64(p.Width / vg.Inch), float64(p.Height / vg.Inch)
}
