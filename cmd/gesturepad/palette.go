package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/crazy3lf/colorconv"
)

type palette struct {
	marker       color.NRGBA
	pressed      color.NRGBA
	cancelled    color.NRGBA
	navigation   color.NRGBA
	manipulation color.NRGBA
}

func newPalette(marker string) (p palette, err error) {
	p.marker, err = parseHexColor(marker)
	if err != nil {
		return
	}
	p.pressed, err = lighten(p.marker, 40)
	if err != nil {
		return
	}
	p.cancelled = mustParseHexColor("#9b2226")
	p.navigation = mustParseHexColor("#263859")
	p.manipulation = mustParseHexColor("#6b778d")
	return
}

// parseHexColor parses colors of the form #rrggbb.
func parseHexColor(s string) (color.NRGBA, error) {
	digits := strings.TrimPrefix(s, "#")
	r, g, b, err := colorconv.HexToRGB(digits)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("can't parse color %s: %w", s, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func mustParseHexColor(s string) color.NRGBA {
	c, err := parseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// lighten raises the HSV value of c by pct percent.
func lighten(c color.NRGBA, pct float64) (color.NRGBA, error) {
	h, s, v := colorconv.RGBToHSV(c.R, c.G, c.B)
	v += v * (pct / 100)
	if v > 1 {
		v = 1
	}
	r, g, b, err := colorconv.HSVToRGB(h, s, v)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("can't convert color back from HSV to RGB: %w", err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: c.A}, nil
}
