package charts

import (
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/plotkit/pkg/errors"
)

// hatchChars are the supported hatch pattern characters. Repeating a
// character makes its pattern denser.
const hatchChars = `/\|-+x*.o`

// DefaultHatchSpacing is the gap between hatch lines for a single
// pattern character.
const DefaultHatchSpacing = vg.Length(6)

// ValidateHatch checks that every character of pattern is a hatch
// character.
func ValidateHatch(pattern string) error {
	for _, r := range pattern {
		if !strings.ContainsRune(hatchChars, r) {
			return errors.New(errors.ErrCodeInvalidInput, "invalid hatch character %q in %q (use any of %s)", r, pattern, hatchChars)
		}
	}
	return nil
}

// hatch is a parsed hatch pattern: the density of each primitive.
type hatch struct {
	diag, anti, vert, horiz int
	dots, rings, stars      int
}

func parseHatch(pattern string) hatch {
	var h hatch
	for _, r := range pattern {
		switch r {
		case '/':
			h.diag++
		case '\\':
			h.anti++
		case '|':
			h.vert++
		case '-':
			h.horiz++
		case '+':
			h.vert++
			h.horiz++
		case 'x':
			h.diag++
			h.anti++
		case '*':
			h.stars++
		case '.':
			h.dots++
		case 'o':
			h.rings++
		}
	}
	return h
}

// drawHatch strokes the pattern inside r. Lines are placed on a grid
// anchored at the canvas origin so that adjacent rectangles line up.
func drawHatch(c draw.Canvas, r vg.Rectangle, pattern string, sty draw.LineStyle, spacing vg.Length) {
	if pattern == "" || r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y {
		return
	}
	if spacing <= 0 {
		spacing = DefaultHatchSpacing
	}
	h := parseHatch(pattern)

	var lines [][]vg.Point
	if h.vert > 0 {
		s := spacing / vg.Length(h.vert)
		for x := ceilTo(r.Min.X, s); x <= r.Max.X; x += s {
			lines = append(lines, []vg.Point{{X: x, Y: r.Min.Y}, {X: x, Y: r.Max.Y}})
		}
	}
	if h.horiz > 0 {
		s := spacing / vg.Length(h.horiz)
		for y := ceilTo(r.Min.Y, s); y <= r.Max.Y; y += s {
			lines = append(lines, []vg.Point{{X: r.Min.X, Y: y}, {X: r.Max.X, Y: y}})
		}
	}
	if h.diag > 0 {
		// Lines x - y = k.
		s := spacing / vg.Length(h.diag)
		for k := ceilTo(r.Min.X-r.Max.Y, s); k <= r.Max.X-r.Min.Y; k += s {
			p0 := vg.Point{X: r.Min.Y + k, Y: r.Min.Y}
			p1 := vg.Point{X: r.Max.Y + k, Y: r.Max.Y}
			if q0, q1, ok := clipSegment(p0, p1, r); ok {
				lines = append(lines, []vg.Point{q0, q1})
			}
		}
	}
	if h.anti > 0 {
		// Lines x + y = k.
		s := spacing / vg.Length(h.anti)
		for k := ceilTo(r.Min.X+r.Min.Y, s); k <= r.Max.X+r.Max.Y; k += s {
			p0 := vg.Point{X: k - r.Min.Y, Y: r.Min.Y}
			p1 := vg.Point{X: k - r.Max.Y, Y: r.Max.Y}
			if q0, q1, ok := clipSegment(p0, p1, r); ok {
				lines = append(lines, []vg.Point{q0, q1})
			}
		}
	}
	if len(lines) > 0 {
		c.StrokeLines(sty, lines...)
	}

	glyphs := []struct {
		n     int
		shape []draw.GlyphDrawer
	}{
		{h.dots, []draw.GlyphDrawer{draw.CircleGlyph{}}},
		{h.rings, []draw.GlyphDrawer{draw.RingGlyph{}}},
		{h.stars, []draw.GlyphDrawer{draw.PlusGlyph{}, draw.CrossGlyph{}}},
	}
	for _, g := range glyphs {
		if g.n == 0 {
			continue
		}
		s := spacing * 1.5 / vg.Length(g.n)
		gs := draw.GlyphStyle{Color: sty.Color, Radius: s / 5}
		for row, y := 0, ceilTo(r.Min.Y+s/2, s); y <= r.Max.Y-gs.Radius; row, y = row+1, y+s {
			// Stagger alternate rows.
			x0 := ceilTo(r.Min.X+gs.Radius, s)
			if row%2 == 1 {
				x0 += s / 2
			}
			for x := x0; x <= r.Max.X-gs.Radius; x += s {
				for _, shape := range g.shape {
					gs.Shape = shape
					c.DrawGlyphNoClip(gs, vg.Point{X: x, Y: y})
				}
			}
		}
	}
}

// ceilTo rounds v up to a multiple of step.
func ceilTo(v, step vg.Length) vg.Length {
	return vg.Length(math.Ceil(float64(v/step))) * step
}

// clipSegment clips the segment p0-p1 to r using the Liang-Barsky
// algorithm. ok is false when no part of the segment lies inside r.
func clipSegment(p0, p1 vg.Point, r vg.Rectangle) (q0, q1 vg.Point, ok bool) {
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	t0, t1 := 0.0, 1.0
	for _, e := range [4]struct{ p, q vg.Length }{
		{-dx, p0.X - r.Min.X},
		{dx, r.Max.X - p0.X},
		{-dy, p0.Y - r.Min.Y},
		{dy, r.Max.Y - p0.Y},
	} {
		if e.p == 0 {
			if e.q < 0 {
				return q0, q1, false
			}
			continue
		}
		t := float64(e.q / e.p)
		if e.p < 0 {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
		if t0 > t1 {
			return q0, q1, false
		}
	}
	q0 = vg.Point{X: p0.X + vg.Length(t0)*dx, Y: p0.Y + vg.Length(t0)*dy}
	q1 = vg.Point{X: p0.X + vg.Length(t1)*dx, Y: p0.Y + vg.Length(t1)*dy}
	return q0, q1, true
}

// rectPolygon returns the corners of r counter-clockwise.
func rectPolygon(r vg.Rectangle) []vg.Point {
	return []vg.Point{r.Min, {X: r.Max.X, Y: r.Min.Y}, r.Max, {X: r.Min.X, Y: r.Max.Y}}
}

// darken scales the RGB channels of c by f.
func darken(c color.Color, f float64) color.Color {
	if c == nil {
		return color.Black
	}
	r, g, b, a := c.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * f),
		G: uint16(float64(g) * f),
		B: uint16(float64(b) * f),
		A: uint16(a),
	}
}
