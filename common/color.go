package common

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor parses a "#rrggbb" or "#rgb" color into RGB components in [0, 1].
func ParseHexColor(hex string) ([3]float32, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return [3]float32{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}, nil
}

// MustHexColor is ParseHexColor for compile-time color literals. It panics on malformed input.
func MustHexColor(hex string) [3]float32 {
	rgb, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return rgb
}

// RGBA extends an RGB triple with the given alpha.
func RGBA(rgb [3]float32, alpha float32) [4]float32 {
	return [4]float32{rgb[0], rgb[1], rgb[2], alpha}
}
