package orrery

import (
	icolor "github.com/gogpu/orrery/internal/color"
	"github.com/gogpu/orrery/internal/filter"
)

// Bloom defaults.
const (
	// DefaultBloomThreshold is the Rec. 709 luminance a pixel must exceed
	// to glow.
	DefaultBloomThreshold float32 = 0.8
	// DefaultBloomRadius is the blur half-width in pixels.
	DefaultBloomRadius = 6
	// DefaultBloomStrength scales the glow before it is added back.
	DefaultBloomStrength float32 = 1
)

// Bloom spreads the light of over-bright pixels into their surroundings.
//
// It reads only the color buffer of a finished frame. The glow is kept as
// float32 RGB between the passes and is only quantized when added back,
// saturating at 255. A frame with no pixel above Threshold is left
// untouched.
type Bloom struct {
	// Threshold is the luminance, in [0,1], a pixel must exceed.
	Threshold float32
	// Radius is the Gaussian half-width in pixels.
	Radius int
	// Strength scales the glow.
	Strength float32

	glow *filter.Plane
	blur filter.BlurFilter
}

// NewBloom creates a bloom pass with the default parameters.
func NewBloom() *Bloom {
	return &Bloom{
		Threshold: DefaultBloomThreshold,
		Radius:    DefaultBloomRadius,
		Strength:  DefaultBloomStrength,
	}
}

func (b *Bloom) plane(w, h int) *filter.Plane {
	if b.glow == nil || b.glow.Width != w || b.glow.Height != h {
		b.glow = filter.NewPlane(w, h)
	}
	return b.glow
}

// BrightPass copies every pixel whose luminance exceeds Threshold into the
// glow buffer and zeroes the rest. It returns the number of bright pixels.
func (b *Bloom) BrightPass(fb *Framebuffer) int {
	glow := b.plane(fb.width, fb.height)
	pix := fb.pix
	n := 0
	for i, j := 0, 0; i < len(pix); i, j = i+4, j+3 {
		r, g, bl := pix[i], pix[i+1], pix[i+2]
		if icolor.Luminance8(r, g, bl) > b.Threshold {
			glow.Pix[j+0] = float32(r) / 255
			glow.Pix[j+1] = float32(g) / 255
			glow.Pix[j+2] = float32(bl) / 255
			n++
			continue
		}
		glow.Pix[j+0], glow.Pix[j+1], glow.Pix[j+2] = 0, 0, 0
	}
	return n
}

// Blur smooths the glow buffer in place.
func (b *Bloom) Blur() {
	if b.glow == nil {
		return
	}
	b.blur.Radius = b.Radius
	b.blur.Apply(b.glow, b.glow)
}

// Composite adds Strength times the glow buffer onto fb, saturating each
// channel.
func (b *Bloom) Composite(fb *Framebuffer) {
	glow := b.glow
	if glow == nil || glow.Width != fb.width || glow.Height != fb.height {
		return
	}
	s := b.Strength * 255
	pix := fb.pix
	for i, j := 0, 0; i < len(pix); i, j = i+4, j+3 {
		pix[i+0] = icolor.AddSat(pix[i+0], glow.Pix[j+0]*s)
		pix[i+1] = icolor.AddSat(pix[i+1], glow.Pix[j+1]*s)
		pix[i+2] = icolor.AddSat(pix[i+2], glow.Pix[j+2]*s)
	}
}

// Apply runs the bright pass, the blur and the composite. It returns the
// number of bright pixels; when that is zero fb is not modified.
func (b *Bloom) Apply(fb *Framebuffer) int {
	n := b.BrightPass(fb)
	if n == 0 {
		return 0
	}
	b.Blur()
	b.Composite(fb)
	return n
}

// GlowLuminance returns the summed Rec. 709 luminance of the glow buffer.
func (b *Bloom) GlowLuminance() float64 {
	if b.glow == nil {
		return 0
	}
	r, g, bl := b.glow.Sum()
	return icolor.LumaR*r + icolor.LumaG*g + icolor.LumaB*bl
}
