// Package scene describes what is drawn each frame: the central emissive
// body, the orbiting bodies, the camera, the starfield and the bloom
// settings.
//
// A Scene is usually loaded from YAML with [Load] and can be reloaded on
// change with [Watch]. [Default] reproduces the classic six-planet system.
package scene

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/orrery/noise"
	"github.com/gogpu/orrery/shader"
	"github.com/gogpu/orrery/transform"
)

// Sentinel errors returned by Validate.
var (
	ErrNoBodies      = errors.New("scene: no bodies")
	ErrUnknownShader = errors.New("scene: unknown shader")
)

// Body is one sphere in the scene.
type Body struct {
	Name string `yaml:"name"`
	// Shader names the shading variant, for example "terran" or "stellar".
	Shader string `yaml:"shader"`
	// Distance is the orbit radius around the origin.
	Distance float32 `yaml:"distance,omitempty"`
	// Scale is the sphere radius.
	Scale float32 `yaml:"scale"`
	// Speed is the orbital angular speed in radians per frame.
	Speed float32 `yaml:"speed,omitempty"`
	// Phase is the orbital angle at frame 0.
	Phase float32 `yaml:"phase,omitempty"`
	// Spin is the axial rotation in radians per frame.
	Spin float32 `yaml:"spin,omitempty"`
	// Seed drives the body's noise fields.
	Seed int64 `yaml:"seed"`
	// Ring draws the orbit as a line.
	Ring bool `yaml:"ring,omitempty"`

	kind  shader.Kind
	noise *noise.Set
}

// Angle returns the orbital angle at the given frame.
func (b *Body) Angle(time uint64) float32 {
	return float32(time)*b.Speed + b.Phase
}

// Translation returns the body's position at the given frame: a circle of
// radius Distance in the XZ plane.
func (b *Body) Translation(time uint64) mgl32.Vec3 {
	if b.Distance == 0 {
		return mgl32.Vec3{}
	}
	s, c := math32.Sincos(b.Angle(time))
	return mgl32.Vec3{b.Distance * c, 0, b.Distance * s}
}

// Model returns the body's model matrix at the given frame.
func (b *Body) Model(time uint64) mgl32.Mat4 {
	return transform.Model(b.Translation(time), b.Scale, mgl32.Vec3{})
}

// Kind returns the resolved shading variant. It is valid after Validate.
func (b *Body) Kind() shader.Kind {
	return b.kind
}

// Noise returns the body's noise fields. Bodies with the same seed share
// them, including across scene reloads.
func (b *Body) Noise() noise.Set {
	if b.noise == nil {
		set := noise.ForSeed(b.Seed)
		b.noise = &set
	}
	return *b.noise
}

// Variant returns the shading variant over the body's noise fields.
func (b *Body) Variant() shader.Variant {
	return shader.Select(b.kind, b.Noise())
}

func (b *Body) resolve() error {
	k, err := shader.ParseKind(b.Shader)
	if err != nil {
		return fmt.Errorf("%w: %q for body %q", ErrUnknownShader, b.Shader, b.Name)
	}
	b.kind = k
	if !(b.Scale > 0) {
		return fmt.Errorf("scene: body %q: scale must be positive, got %v", b.Name, b.Scale)
	}
	return nil
}

// Camera is the initial eye placement.
type Camera struct {
	Eye    mgl32.Vec3 `yaml:"eye"`
	Center mgl32.Vec3 `yaml:"center"`
	Up     mgl32.Vec3 `yaml:"up"`
}

// Stars configures the background starfield.
type Stars struct {
	Count int   `yaml:"count"`
	Seed  int64 `yaml:"seed"`
}

// Bloom configures the glow pass. Zero values take the renderer defaults.
type Bloom struct {
	Disabled  bool    `yaml:"disabled,omitempty"`
	Threshold float32 `yaml:"threshold,omitempty"`
	Radius    int     `yaml:"radius,omitempty"`
	Strength  float32 `yaml:"strength,omitempty"`
}

// Scene is a complete frame description.
type Scene struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Background is a hex color such as "#141414".
	Background string `yaml:"background"`
	// Mesh is the path of the sphere mesh file, relative to the working
	// directory.
	Mesh string `yaml:"mesh,omitempty"`

	Camera  Camera `yaml:"camera"`
	Sun     *Body  `yaml:"sun,omitempty"`
	Planets []Body `yaml:"planets"`
	Stars   Stars  `yaml:"stars"`
	Bloom   Bloom  `yaml:"bloom"`
	// Ambient lifts the night side of lit bodies. Zero keeps it black.
	Ambient float32 `yaml:"ambient,omitempty"`
}

// Bodies returns the sun, if any, followed by the planets.
func (s *Scene) Bodies() []*Body {
	out := make([]*Body, 0, len(s.Planets)+1)
	if s.Sun != nil {
		out = append(out, s.Sun)
	}
	for i := range s.Planets {
		out = append(out, &s.Planets[i])
	}
	return out
}

// Default returns the classic system: a stellar body of scale 1.5 at the
// origin and six planets at distances 3 to 13, seen from (15,10,10) on a
// 600×600 frame with a gray-20 background.
func Default() *Scene {
	scales := [...]float32{0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	distances := [...]float32{3, 5, 7, 9, 11, 13}
	speeds := [...]float32{0.02, 0.015, 0.01, 0.008, 0.006, 0.004}
	kinds := [...]shader.Kind{
		shader.KindVolcanic,
		shader.KindDesert,
		shader.KindTerran,
		shader.KindFrozen,
		shader.KindJovian,
		shader.KindNeptunian,
	}

	s := &Scene{
		Width:      600,
		Height:     600,
		Background: "#141414",
		Camera: Camera{
			Eye:    mgl32.Vec3{15, 10, 10},
			Center: mgl32.Vec3{0, 0, 0},
			Up:     mgl32.Vec3{0, 1, 0},
		},
		Sun: &Body{
			Name:   "sun",
			Shader: shader.KindStellar.String(),
			Scale:  1.5,
			Spin:   0.004,
			Seed:   1,
		},
		Stars: Stars{Count: 400, Seed: 7},
	}
	for i := range scales {
		s.Planets = append(s.Planets, Body{
			Name:     kinds[i].String(),
			Shader:   kinds[i].String(),
			Distance: distances[i],
			Scale:    scales[i],
			Speed:    speeds[i],
			Spin:     shader.DefaultSpin,
			Seed:     int64(i + 2),
			Ring:     true,
		})
	}
	if err := s.Validate(); err != nil {
		panic(err) // the literal above is valid
	}
	return s
}
