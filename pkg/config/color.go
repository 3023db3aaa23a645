package config

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/plotkit/pkg/errors"
)

var namedColors = map[string]color.Color{
	"none":        color.Transparent,
	"transparent": color.Transparent,
	"white":       color.White,
	"black":       color.Black,
	"grey":        color.Gray{Y: 0x80},
	"gray":        color.Gray{Y: 0x80},
	"darkgrey":    color.RGBA{R: 0xa9, G: 0xa9, B: 0xa9, A: 0xff},
	"darkgray":    color.RGBA{R: 0xa9, G: 0xa9, B: 0xa9, A: 0xff},
	"lightgrey":   color.RGBA{R: 0xd3, G: 0xd3, B: 0xd3, A: 0xff},
	"lightgray":   color.RGBA{R: 0xd3, G: 0xd3, B: 0xd3, A: 0xff},
	"red":         color.RGBA{R: 0xff, A: 0xff},
	"green":       color.RGBA{G: 0x80, A: 0xff},
	"blue":        color.RGBA{B: 0xff, A: 0xff},
}

// ParseColor parses a color name or a #rgb, #rrggbb or #rrggbbaa hex
// string. The empty string yields nil.
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, nil
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown color %q", s)
	}

	alpha := uint64(0xff)
	hex := s
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid alpha in color %q", s)
		}
		alpha, hex = a, s[:7]
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha)}, nil
}
