// Package noise provides the scalar noise fields sampled by the shaders.
//
// A [Field] is a pure function from a 3D coordinate to a value in [-1,1].
// Fields are immutable after construction and safe to share between draw
// calls and goroutines.
package noise

import (
	"github.com/chewxy/math32"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Field is a bounded, deterministic 3D scalar field.
type Field interface {
	// Eval returns the field value at (x, y, z), in [-1,1].
	Eval(x, y, z float32) float32
}

// Constant is a Field with the same value everywhere.
type Constant float32

// Eval implements Field.
func (c Constant) Eval(_, _, _ float32) float32 {
	return float32(c)
}

// Type selects how octaves of a Fractal are combined.
type Type uint8

const (
	// FBM sums signed octaves (fractional Brownian motion).
	FBM Type = iota
	// Ridged folds each octave to 1-|n|, giving sharp crests.
	Ridged
	// Billow folds each octave to |n|, giving rounded puffs.
	Billow
)

// Fractal layers octaves of OpenSimplex noise.
type Fractal struct {
	src        opensimplex.Noise32
	typ        Type
	frequency  float32
	octaves    int
	lacunarity float32
	gain       float32
	norm       float32
}

// Option configures a Fractal.
type Option func(*Fractal)

// WithFrequency sets the base frequency. Default 1.
func WithFrequency(f float32) Option {
	return func(n *Fractal) { n.frequency = f }
}

// WithOctaves sets the number of layered octaves, at least 1. Default 4.
func WithOctaves(o int) Option {
	return func(n *Fractal) { n.octaves = max(o, 1) }
}

// WithLacunarity sets the frequency multiplier between octaves. Default 2.
func WithLacunarity(l float32) Option {
	return func(n *Fractal) { n.lacunarity = l }
}

// WithGain sets the amplitude multiplier between octaves. Default 0.5.
func WithGain(g float32) Option {
	return func(n *Fractal) { n.gain = g }
}

// WithType sets the octave combination. Default FBM.
func WithType(t Type) Option {
	return func(n *Fractal) { n.typ = t }
}

// NewFractal creates a fractal field from a seed.
func NewFractal(seed int64, opts ...Option) *Fractal {
	n := &Fractal{
		src:        opensimplex.New32(seed),
		typ:        FBM,
		frequency:  1,
		octaves:    4,
		lacunarity: 2,
		gain:       0.5,
	}
	for _, opt := range opts {
		opt(n)
	}

	var sum, amp float32 = 0, 1
	for range n.octaves {
		sum += amp
		amp *= n.gain
	}
	if sum > 0 {
		n.norm = 1 / sum
	}
	return n
}

// Eval implements Field.
func (n *Fractal) Eval(x, y, z float32) float32 {
	freq := n.frequency
	amp := float32(1)
	var sum float32

	for range n.octaves {
		v := n.src.Eval3(x*freq, y*freq, z*freq)
		switch n.typ {
		case Ridged:
			v = 1 - 2*math32.Abs(v)
		case Billow:
			v = 2*math32.Abs(v) - 1
		}
		sum += v * amp
		freq *= n.lacunarity
		amp *= n.gain
	}
	return clamp(sum*n.norm, -1, 1)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
