package shader

import "github.com/gogpu/orrery/internal/color"

// stop is one threshold band: values below upTo take color c.
type stop struct {
	upTo float32
	c    color.ColorF32
}

// palette maps a scalar to a discrete color by threshold bands. The last
// stop catches everything above the previous thresholds.
type palette []stop

func (p palette) at(v float32) color.ColorF32 {
	for _, s := range p[:len(p)-1] {
		if v < s.upTo {
			return s.c
		}
	}
	return p[len(p)-1].c
}

var (
	terranPalette = palette{
		{-0.25, color.RGB(0.02, 0.08, 0.30)},
		{0.00, color.RGB(0.05, 0.22, 0.50)},
		{0.05, color.RGB(0.76, 0.70, 0.48)},
		{0.25, color.RGB(0.18, 0.48, 0.16)},
		{0.40, color.RGB(0.10, 0.32, 0.10)},
		{0.55, color.RGB(0.42, 0.36, 0.30)},
		{1.00, color.RGB(0.76, 0.78, 0.80)},
	}
	desertPalette = palette{
		{-0.30, color.RGB(0.55, 0.30, 0.14)},
		{-0.05, color.RGB(0.72, 0.45, 0.22)},
		{0.20, color.RGB(0.84, 0.62, 0.36)},
		{0.45, color.RGB(0.90, 0.74, 0.50)},
		{1.00, color.RGB(0.62, 0.40, 0.26)},
	}
	volcanicPalette = palette{
		{-0.30, color.RGB(0.08, 0.06, 0.06)},
		{0.10, color.RGB(0.16, 0.12, 0.11)},
		{0.35, color.RGB(0.28, 0.20, 0.17)},
		{1.00, color.RGB(0.38, 0.32, 0.30)},
	}
	frozenPalette = palette{
		{-0.20, color.RGB(0.38, 0.52, 0.66)},
		{0.10, color.RGB(0.58, 0.70, 0.80)},
		{0.35, color.RGB(0.70, 0.78, 0.86)},
		{1.00, color.RGB(0.80, 0.84, 0.88)},
	}
	lunarPalette = palette{
		{-0.40, color.RGB(0.22, 0.22, 0.23)},
		{-0.10, color.RGB(0.38, 0.38, 0.39)},
		{0.25, color.RGB(0.52, 0.52, 0.53)},
		{1.00, color.RGB(0.64, 0.64, 0.65)},
	}
	jovianPalette = palette{
		{-0.6, color.RGB(0.55, 0.36, 0.22)},
		{-0.2, color.RGB(0.80, 0.66, 0.50)},
		{0.2, color.RGB(0.90, 0.82, 0.68)},
		{0.6, color.RGB(0.68, 0.46, 0.30)},
		{1.0, color.RGB(0.86, 0.74, 0.58)},
	}
	saturnianPalette = palette{
		{-0.5, color.RGB(0.78, 0.70, 0.50)},
		{0.0, color.RGB(0.88, 0.80, 0.60)},
		{0.5, color.RGB(0.82, 0.74, 0.54)},
		{1.0, color.RGB(0.92, 0.86, 0.68)},
	}
	neptunianPalette = palette{
		{-0.5, color.RGB(0.10, 0.20, 0.60)},
		{0.0, color.RGB(0.18, 0.32, 0.75)},
		{0.5, color.RGB(0.26, 0.44, 0.85)},
		{1.0, color.RGB(0.16, 0.28, 0.70)},
	}
)

var (
	cloudWhite = color.RGB(0.92, 0.93, 0.95)
	ashGray    = color.RGB(0.30, 0.28, 0.27)
	lavaRed    = color.RGB(0.95, 0.32, 0.05)
	iceCap     = color.RGB(0.86, 0.90, 0.94)

	// Stellar colors. Both have luminance above EmissiveLuminance, so any
	// blend between them does too.
	stellarCore = color.RGB(1.00, 0.82, 0.40)
	stellarHot  = color.RGB(1.00, 0.96, 0.80)
)
