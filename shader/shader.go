// Package shader turns rasterized fragments into colors.
//
// [Shade] is a pure function of a [Fragment] and the draw call's [Uniforms]:
// identical inputs always give identical colors, which keeps animation
// stable frame to frame. The [Variant] in the uniforms selects the surface
// look. Each variant carries exactly the noise fields it samples.
//
// Lit variants map surface noise through a banded palette, optionally
// blend a cloud layer and latitudinal stripes, then apply a Lambert term
// max(0, n·l). An optional ambient floor brightens the night side. Their luminance never exceeds
// [MaxSurfaceLuminance], so only the emissive [Stellar] variant, which is
// always above [EmissiveLuminance], feeds the bloom bright pass.
package shader

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/orrery/internal/color"
	"github.com/gogpu/orrery/noise"
	"github.com/gogpu/orrery/transform"
)

// Lighting and glow constants.
const (
	// MaxSurfaceLuminance caps the luminance of lit variants so they stay
	// below the default bloom threshold.
	MaxSurfaceLuminance float32 = 0.78
	// EmissiveLuminance is the minimum luminance the stellar variant emits.
	EmissiveLuminance float32 = 0.82
	// DefaultSpin is the axial rotation in radians per frame.
	DefaultSpin float32 = 0.01
)

// DefaultLight is the direction toward the light used when a draw call
// does not set one.
var DefaultLight = mgl32.Vec3{0.5773503, 0.5773503, 0.5773503}

// Fragment is one covered pixel produced by the rasterizer.
type Fragment struct {
	// X, Y are pixel coordinates.
	X, Y int
	// Depth is the screen-space depth in [0,1].
	Depth float32
	// Normal is the interpolated world-space normal. It is not normalized.
	Normal mgl32.Vec3
	// Position is the interpolated object-space position.
	Position mgl32.Vec3
}

// Uniforms is the per-draw-call parameter bundle.
//
// Between draws of one frame only Model and Variant (and the per-body
// Noise, Light and Spin) change; View, Projection and Viewport are shared.
type Uniforms struct {
	transform.Set

	// Time is the frame counter. It only increases.
	Time uint64
	// Spin is the axial rotation rate in radians per frame.
	Spin float32
	// Noise holds the surface, cloud and band fields of the body.
	Noise noise.Set
	// Variant selects the surface look. A nil Variant shades flat gray.
	Variant Variant
	// Light is the world-space direction toward the light. The zero vector
	// means DefaultLight.
	Light mgl32.Vec3
	// Ambient is the fraction of the surface color visible on the night
	// side, clamped to [0,1]. Zero leaves the night side black.
	Ambient float32
}

// Use selects the variant of the given kind over u.Noise.
func (u *Uniforms) Use(k Kind) {
	u.Variant = Select(k, u.Noise)
}

// Shade computes the color of one fragment.
func Shade(f *Fragment, u *Uniforms) color.ColorF32 {
	p := spun(f.Position, u.angle())
	if u.Variant == nil {
		return lit(color.RGB(0.5, 0.5, 0.5), f, u)
	}
	return u.Variant.shade(f, u, p)
}

func (u *Uniforms) angle() float32 {
	return float32(u.Time) * u.Spin
}

func (u *Uniforms) light() mgl32.Vec3 {
	if u.Light == (mgl32.Vec3{}) {
		return DefaultLight
	}
	return u.Light.Normalize()
}

// spun rotates p about +Y by -angle, which makes the surface appear to
// rotate by +angle.
func spun(p mgl32.Vec3, angle float32) mgl32.Vec3 {
	if angle == 0 {
		return p
	}
	s, c := math32.Sincos(angle)
	return mgl32.Vec3{c*p[0] - s*p[2], p[1], s*p[0] + c*p[2]}
}

// lit applies the Lambert term and the luminance cap.
func lit(c color.ColorF32, f *Fragment, u *Uniforms) color.ColorF32 {
	n := f.Normal
	var diffuse float32
	if l := n.Len(); l > 0 {
		diffuse = max(0, n.Dot(u.light())/l)
	}
	a := min(max(u.Ambient, 0), 1)
	c = c.Scale(a + (1-a)*diffuse)
	if lum := c.Luminance(); lum > MaxSurfaceLuminance {
		c = c.Scale(MaxSurfaceLuminance / lum)
	}
	c.A = 1
	return c
}

func eval(f noise.Field, p mgl32.Vec3) float32 {
	if f == nil {
		return 0
	}
	return f.Eval(p[0], p[1], p[2])
}

// latitude returns the vertical component of the unit normal.
func latitude(f *Fragment) float32 {
	l := f.Normal.Len()
	if l == 0 {
		return 0
	}
	return f.Normal[1] / l
}
