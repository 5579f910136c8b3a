package common

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", s)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(h[start:start+2], 16, 8)
		return uint8(v), err
	}

	var c [4]uint8
	c[3] = 255
	for i := 0; i < len(h)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color format: %s", s)
		}
		c[i] = v
	}
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}, nil
}

// HexColor is ParseHexColor that falls back to magenta so bad data stays visible.
func HexColor(s string) color.NRGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		return color.NRGBA{R: 0xff, B: 0xff, A: 0xff}
	}
	return c
}
