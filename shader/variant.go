package shader

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/orrery/internal/color"
	"github.com/gogpu/orrery/noise"
)

// Variant is a shading variant. The set of variants is closed: the
// implementations are the exported structs of this package, one per Kind.
type Variant interface {
	// Kind returns the variant's kind.
	Kind() Kind

	shade(f *Fragment, u *Uniforms, p mgl32.Vec3) color.ColorF32
}

// Select builds the variant for k, taking from set the fields it samples.
// It returns nil for an invalid kind.
func Select(k Kind, set noise.Set) Variant {
	switch k {
	case KindTerran:
		return Terran{Surface: set.Surface, Cloud: set.Cloud}
	case KindDesert:
		return Desert{Surface: set.Surface}
	case KindVolcanic:
		return Volcanic{Surface: set.Surface, Cloud: set.Cloud}
	case KindFrozen:
		return Frozen{Surface: set.Surface, Cloud: set.Cloud}
	case KindLunar:
		return Lunar{Surface: set.Surface}
	case KindJovian:
		return Jovian{Surface: set.Surface, Band: set.Band}
	case KindSaturnian:
		return Saturnian{Surface: set.Surface, Band: set.Band}
	case KindNeptunian:
		return Neptunian{Surface: set.Surface, Band: set.Band, Cloud: set.Cloud}
	case KindStellar:
		return Stellar{Surface: set.Surface}
	}
	return nil
}

// cloudCover blends tint over c where the cloud field exceeds threshold.
// Coverage ramps from 0 at the threshold up to maxAlpha.
func cloudCover(c, tint color.ColorF32, field noise.Field, p mgl32.Vec3, threshold, maxAlpha float32) color.ColorF32 {
	v := eval(field, p)
	if v <= threshold {
		return c
	}
	a := (v - threshold) / (1 - threshold) * 2
	return c.Lerp(tint, min(a, 1)*maxAlpha)
}

// stripes returns a band coordinate in [-1,1] that varies with latitude and
// is wobbled by the band field.
func stripes(lat float32, field noise.Field, p mgl32.Vec3, freq, wobble float32) float32 {
	return math32.Sin(lat*freq + eval(field, p)*wobble)
}

// Terran is an ocean world with continents, ice caps and clouds.
type Terran struct {
	Surface noise.Field
	Cloud   noise.Field
}

// Kind implements Variant.
func (Terran) Kind() Kind { return KindTerran }

func (v Terran) shade(f *Fragment, u *Uniforms, p mgl32.Vec3) color.ColorF32 {
	h := eval(v.Surface, p)
	c := terranPalette.at(h)
	if math32.Abs(latitude(f)) > 0.88-0.1*h {
		c = iceCap
	}
	c = cloudCover(c, cloudWhite, v.Cloud, spun(p, u.angle()*0.3), 0.15, 0.85)
	return lit(c, f, u)
}

// Desert is a dry world of dunes and mesas.
type Desert struct {
	Surface noise.Field
}

// Kind implements Variant.
func (Desert) Kind() Kind { return KindDesert }

func (v Desert) shade(f *Fragment, u *Uniforms, p mgl32.Vec3) color.ColorF32 {
	h := eval(v.Surface, p)
	// Dune ripples.
	h += 0.08 * math32.Sin(p[1]*40+h*6)
	return lit(desertPalette.at(h), f, u)
}

// Volcanic is dark basalt cut by glowing lava seams under ash clouds.
type Volcanic struct {
	Surface noise.Field
	Cloud   noise.Field
}

// Kind implements Variant.
func (Volcanic) Kind() Kind { return KindVolcanic }

func (v Volcanic) shade(f *Fragment, u *Uniforms, p mgl32.Vec3) color.ColorF32 {
	h := eval(v.Surface, p)
	c := volcanicPalette.at(h)
	if math32.Abs(h) < 0.04 {
		c = lavaRed
	}
	c = cloudCover(c, ashGray, v.Cloud, p, 0.35, 0.6)
	return lit(c, f, u)
}

// Frozen is an ice world with crevasses and thin haze.
type Frozen struct {
	Surface noise.Field
	Cloud   noise.Field
}

// Kind implements Variant.
func (Frozen) Kind() Kind { return KindFrozen }

func (v Frozen) shade(f *Fragment, u *Uniforms, p mgl32.Vec3) color.ColorF32 {
	c := frozenPalette.at(eval(v.Surface, p))
	c = cloudCover(c, cloudWhite, v.Cloud, spun(p, u.angle()*0.5), 0.3, 0.5)
	return lit(c, f, u)
}

// Lunar is a gray cratered rock.
type Lunar struct {
	Surface noise.Field
}

// Kind implements Variant.
func (Lunar) Kind() Kind { return KindLunar }

func (v Lunar) shade(f *Fragment, u *Uniforms, p mgl32.Vec3) color.ColorF32 {
	h := eval(v.Surface, p)
	c := lunarPalette.at(h)
	// Crater rims: a thin bright ring around low basins.
	if h > -0.45 && h < -0.40 {
		c = lunarPalette.at(1)
	}
	return lit(c, f, u)
}

// Jovian is a gas giant with turbulent latitudinal bands.
type Jovian struct {
	Surface noise.Field
	Band    noise.Field
}

// Kind implements Variant.
func (Jovian) Kind() Kind { return KindJovian }

func (v Jovian) shade(f *Fragment, u *Uniforms, p mgl32.Vec3) color.ColorF32 {
	s := stripes(latitude(f), v.Band, p, 14, 1.2)
	c := jovianPalette.at(s + 0.25*eval(v.Surface, p))
	return lit(c, f, u)
}

// Saturnian is a pale gas giant with soft, regular bands.
type Saturnian struct {
	Surface noise.Field
	Band    noise.Field
}

// Kind implements Variant.
func (Saturnian) Kind() Kind { return KindSaturnian }

func (v Saturnian) shade(f *Fragment, u *Uniforms, p mgl32.Vec3) color.ColorF32 {
	s := stripes(latitude(f), v.Band, p, 9, 0.4)
	c := saturnianPalette.at(s + 0.15*eval(v.Surface, p))
	// Brightness ripple between bands.
	c = c.Scale(0.92 + 0.08*s)
	return lit(c, f, u)
}

// Neptunian is an ice giant with faint bands and bright cloud streaks.
type Neptunian struct {
	Surface noise.Field
	Band    noise.Field
	Cloud   noise.Field
}

// Kind implements Variant.
func (Neptunian) Kind() Kind { return KindNeptunian }

func (v Neptunian) shade(f *Fragment, u *Uniforms, p mgl32.Vec3) color.ColorF32 {
	lat := latitude(f)
	c := neptunianPalette.at(stripes(lat, v.Band, p, 6, 0.8) + 0.2*eval(v.Surface, p))
	// Streaks are stretched along longitude by squashing y.
	streak := mgl32.Vec3{p[0] * 0.5, p[1] * 4, p[2] * 0.5}
	c = cloudCover(c, cloudWhite, v.Cloud, streak, 0.45, 0.7)
	return lit(c, f, u)
}

// Stellar is the emissive variant. It ignores lighting and always emits
// at least EmissiveLuminance.
type Stellar struct {
	Surface noise.Field
}

// Kind implements Variant.
func (Stellar) Kind() Kind { return KindStellar }

func (v Stellar) shade(_ *Fragment, _ *Uniforms, p mgl32.Vec3) color.ColorF32 {
	t := 0.5 + 0.5*eval(v.Surface, p.Mul(2))
	if !(t >= 0) {
		t = 0
	}
	return stellarCore.Lerp(stellarHot, t)
}
