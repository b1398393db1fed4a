// Package color provides the float and 8-bit color types used by the
// shading, framebuffer and bloom stages.
package color

// ColorF32 represents a color with float32 components.
// Shading works in [0,1] but intermediate values may exceed 1; they are
// saturated when converted to ColorU8.
type ColorF32 struct {
	R, G, B, A float32
}

// ColorU8 represents a color with uint8 components in [0,255].
type ColorU8 struct {
	R, G, B, A uint8
}

// Rec. 709 luma weights.
const (
	LumaR = 0.2126
	LumaG = 0.7152
	LumaB = 0.0722
)

// Common colors.
var (
	Black = ColorF32{0, 0, 0, 1}
	White = ColorF32{1, 1, 1, 1}
)

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) ColorF32 {
	return ColorF32{R: r, G: g, B: b, A: 1}
}

// Gray creates an opaque gray from an 8-bit level.
func Gray(level uint8) ColorU8 {
	return ColorU8{R: level, G: level, B: level, A: 255}
}

// Add returns the component-wise sum. Alpha is kept from c.
func (c ColorF32) Add(o ColorF32) ColorF32 {
	return ColorF32{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B, A: c.A}
}

// Mul returns the component-wise product. Alpha is kept from c.
func (c ColorF32) Mul(o ColorF32) ColorF32 {
	return ColorF32{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B, A: c.A}
}

// Scale multiplies RGB by s. Alpha is unchanged.
func (c ColorF32) Scale(s float32) ColorF32 {
	return ColorF32{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}

// Lerp blends from c toward o by t. t is clamped to [0,1].
func (c ColorF32) Lerp(o ColorF32, t float32) ColorF32 {
	t = Clamp01(t)
	return ColorF32{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// Luminance returns the Rec. 709 relative luminance of the RGB components.
func (c ColorF32) Luminance() float32 {
	return LumaR*c.R + LumaG*c.G + LumaB*c.B
}

// Luminance returns the Rec. 709 relative luminance in [0,1].
func (c ColorU8) Luminance() float32 {
	return Luminance8(c.R, c.G, c.B)
}

// Luminance8 returns the Rec. 709 relative luminance of 8-bit components.
func Luminance8(r, g, b uint8) float32 {
	return (LumaR*float32(r) + LumaG*float32(g) + LumaB*float32(b)) / 255.0
}

// Clamp01 clamps v to [0,1].
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Hex parses a color from a hex string.
// Supports formats: "RGB", "RRGGBB", "RRGGBBAA", with or without a leading '#'.
// The second result is false for malformed input.
func Hex(hex string) (ColorU8, bool) {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint32
	a := uint32(255)
	ok := true

	switch len(hex) {
	case 3:
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 6:
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b)
	case 8:
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) &&
			parseHex(hex[4:6], &b) && parseHex(hex[6:8], &a)
	default:
		return ColorU8{A: 255}, false
	}
	if !ok {
		return ColorU8{A: 255}, false
	}

	return ColorU8{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, true
}

func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}
