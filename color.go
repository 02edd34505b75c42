package iconview

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

// Transparent is the fully transparent colour, used as "no colour".
var Transparent = color.NRGBA{}

// ParseColor parses a colour written as #rgb, #rrggbb, #rrggbbaa, an SVG/CSS
// colour name, or one of "", "none", "transparent" (all meaning Transparent).
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "none", "transparent":
		return Transparent, nil
	}
	if strings.HasPrefix(s, "#") {
		if len(s) == 9 {
			a, err := strconv.ParseUint(s[7:], 16, 8)
			if err != nil {
				return Transparent, errors.Wrapf(err, "parse alpha of %q", s)
			}
			c, err := parseHex(s[:7])
			if err != nil {
				return Transparent, err
			}
			c.A = uint8(a)
			return c, nil
		}
		return parseHex(s)
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return Transparent, errors.Errorf("unknown color %q", s)
}

func parseHex(s string) (color.NRGBA, error) {
	if len(s) != 4 && len(s) != 7 {
		return Transparent, errors.Errorf("malformed hex color %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Transparent, errors.Wrapf(err, "parse color %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// HexColor formats the colour channels as a lower-case #rrggbb string,
// ignoring alpha.
func HexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// FormatColor is the inverse of ParseColor: "none" for a transparent colour,
// #rrggbb for an opaque one and #rrggbbaa otherwise.
func FormatColor(c color.NRGBA) string {
	switch c.A {
	case 0:
		return "none"
	case 0xff:
		return HexColor(c)
	}
	return fmt.Sprintf("%s%02x", HexColor(c), c.A)
}
