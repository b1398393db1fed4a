package orrery

import (
	"fmt"

	icolor "github.com/gogpu/orrery/internal/color"
)

// Color is a linear RGBA color with float32 components. Shading works in
// [0,1]; larger values saturate when written to the framebuffer.
type Color = icolor.ColorF32

// Common colors.
var (
	Black = icolor.Black
	White = icolor.White
)

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) Color {
	return icolor.RGB(r, g, b)
}

// Gray creates an opaque gray from an 8-bit level.
func Gray(level uint8) Color {
	return icolor.U8ToF32(icolor.Gray(level))
}

// ParseHex parses "#RGB", "#RRGGBB" or "#RRGGBBAA" (the '#' is optional).
func ParseHex(s string) (Color, error) {
	c, ok := icolor.Hex(s)
	if !ok {
		return Color{}, fmt.Errorf("orrery: invalid hex color %q", s)
	}
	return icolor.U8ToF32(c), nil
}
