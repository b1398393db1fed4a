package scene

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/orrery/internal/color"
)

// DefaultSize is the frame width and height used when a scene omits them.
const DefaultSize = 600

// Load reads and validates a YAML scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: reading %s: %w", path, err)
	}
	s, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a YAML scene, fills in defaults and validates it. The noise
// fields of every body are built before it returns.
func Parse(r io.Reader) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	for _, b := range s.Bodies() {
		b.Noise()
	}
	return &s, nil
}

func (s *Scene) applyDefaults() {
	if s.Width == 0 {
		s.Width = DefaultSize
	}
	if s.Height == 0 {
		s.Height = DefaultSize
	}
	if s.Background == "" {
		s.Background = "#141414"
	}
	if s.Camera.Eye == s.Camera.Center {
		s.Camera.Eye = mgl32.Vec3{15, 10, 10}
	}
	if s.Camera.Up == (mgl32.Vec3{}) {
		s.Camera.Up = mgl32.Vec3{0, 1, 0}
	}
	for i, b := range s.Bodies() {
		if b.Name == "" {
			b.Name = fmt.Sprintf("body%d", i)
		}
	}
}

// Validate checks the scene and resolves every body's shader.
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("scene: invalid size %dx%d", s.Width, s.Height)
	}
	if _, ok := color.Hex(s.Background); !ok {
		return fmt.Errorf("scene: invalid background color %q", s.Background)
	}
	bodies := s.Bodies()
	if len(bodies) == 0 {
		return ErrNoBodies
	}
	for _, b := range bodies {
		if err := b.resolve(); err != nil {
			return err
		}
	}
	if s.Stars.Count < 0 {
		return fmt.Errorf("scene: negative star count %d", s.Stars.Count)
	}
	if s.Bloom.Radius < 0 {
		return fmt.Errorf("scene: negative bloom radius %d", s.Bloom.Radius)
	}
	return nil
}

// Marshal encodes the scene as YAML.
func (s *Scene) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("scene: encoding: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("scene: encoding: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the scene as YAML to path.
func (s *Scene) Save(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644) //nolint:gosec // scene files are not secret
}
