package orrery

import (
	"github.com/gogpu/orrery/scene"
	"github.com/gogpu/orrery/transform"
)

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := orrery.NewRenderer(800, 600,
//	    orrery.WithBackground(orrery.Gray(20)),
//	    orrery.WithStarfield(300, 7),
//	)
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	background Color
	bloom      bool
	threshold  float32
	radius     int
	strength   float32
	stars      int
	starSeed   int64
	rings      bool
	fov        float32
	near, far  float32
	cull       bool
	ambient    float32
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		background: Black,
		bloom:      true,
		threshold:  DefaultBloomThreshold,
		radius:     DefaultBloomRadius,
		strength:   DefaultBloomStrength,
		rings:      true,
		fov:        transform.DefaultFieldOfView,
		near:       transform.DefaultNear,
		far:        transform.DefaultFar,
	}
}

// newBloom returns the bloom pass o asks for, or nil when bloom is off.
func (o *options) newBloom() *Bloom {
	if !o.bloom {
		return nil
	}
	return &Bloom{Threshold: o.threshold, Radius: o.radius, Strength: o.strength}
}

// WithBackground sets the color every frame is cleared to.
func WithBackground(c Color) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithBloom enables the bloom pass with explicit parameters. Zero or
// negative values keep the defaults.
func WithBloom(threshold float32, radius int, strength float32) Option {
	return func(o *options) {
		o.bloom = true
		if threshold > 0 {
			o.threshold = threshold
		}
		if radius > 0 {
			o.radius = radius
		}
		if strength > 0 {
			o.strength = strength
		}
	}
}

// WithoutBloom disables the bloom pass.
func WithoutBloom() Option {
	return func(o *options) {
		o.bloom = false
	}
}

// WithStarfield draws count background stars placed from seed.
func WithStarfield(count int, seed int64) Option {
	return func(o *options) {
		o.stars = max(count, 0)
		o.starSeed = seed
	}
}

// WithOrbitRings toggles the orbit lines of bodies that request one.
// Rings are on by default.
func WithOrbitRings(on bool) Option {
	return func(o *options) {
		o.rings = on
	}
}

// WithFieldOfView sets the vertical field of view in degrees.
func WithFieldOfView(degrees float32) Option {
	return func(o *options) {
		if degrees > 0 && degrees < 180 {
			o.fov = degrees
		}
	}
}

// WithClipPlanes sets the near and far clip distances. Invalid pairs are
// ignored.
func WithClipPlanes(near, far float32) Option {
	return func(o *options) {
		if near > 0 && far > near {
			o.near, o.far = near, far
		}
	}
}

// WithCulling enables back-face culling in the rasterizer.
func WithCulling(on bool) Option {
	return func(o *options) {
		o.cull = on
	}
}

// WithAmbient sets the fraction of a lit body's color visible on its
// night side. The default of 0 is pure Lambert shading.
func WithAmbient(fraction float32) Option {
	return func(o *options) {
		o.ambient = min(max(fraction, 0), 1)
	}
}

// SceneOptions returns the options a scene file asks for: background,
// starfield, ambient and bloom settings.
func SceneOptions(s *scene.Scene) []Option {
	opts := []Option{
		WithStarfield(s.Stars.Count, s.Stars.Seed),
		WithAmbient(s.Ambient),
	}
	if bg, err := ParseHex(s.Background); err == nil {
		opts = append(opts, WithBackground(bg))
	}
	if s.Bloom.Disabled {
		opts = append(opts, WithoutBloom())
	} else {
		opts = append(opts, WithBloom(s.Bloom.Threshold, s.Bloom.Radius, s.Bloom.Strength))
	}
	return opts
}
