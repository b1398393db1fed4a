package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}

func TestOrbitPreservesDistance(t *testing.T) {
	c := New(mgl32.Vec3{15, 10, 10}, mgl32.Vec3{})
	want := c.Distance()
	for range 40 {
		c.Orbit(math32.Pi/20, 0)
	}
	if got := c.Distance(); !near(got, want, 1e-3) {
		t.Errorf("Distance after orbit = %v, want %v", got, want)
	}
}

func TestOrbitFullTurn(t *testing.T) {
	start := mgl32.Vec3{15, 10, 10}
	c := New(start, mgl32.Vec3{})
	for range 40 {
		c.Orbit(math32.Pi/20, 0)
	}
	if !c.Eye.ApproxEqualThreshold(start, 1e-3) {
		t.Errorf("Eye after 2π orbit = %v, want %v", c.Eye, start)
	}
}

func TestOrbitPitchClamp(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{})
	c.Orbit(0, math32.Pi)
	_, _, p := c.spherical()
	if !near(p, MaxPitch, 1e-4) {
		t.Errorf("pitch = %v, want %v", p, MaxPitch)
	}
	if c.Eye.Y() <= 0 {
		t.Errorf("Eye.Y = %v, want positive", c.Eye.Y())
	}
}

func TestZoom(t *testing.T) {
	tests := []struct {
		name  string
		delta float32
		want  float32
	}{
		{"in", 0.75, 9.25},
		{"out", -0.75, 10.75},
		{"clamped", 100, MinDistance},
		{"zero", 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{})
			c.Zoom(tt.delta)
			if got := c.Distance(); !near(got, tt.want, 1e-4) {
				t.Errorf("Distance = %v, want %v", got, tt.want)
			}
			if c.Eye.X() != 0 || c.Eye.Y() != 0 {
				t.Errorf("Eye left the view axis: %v", c.Eye)
			}
		})
	}
}

func TestMoveCenter(t *testing.T) {
	c := New(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{})
	c.MoveCenter(mgl32.Vec3{1, 0, -1})
	if c.Eye != (mgl32.Vec3{2, 2, 2}) {
		t.Errorf("Eye = %v", c.Eye)
	}
	if c.Center != (mgl32.Vec3{1, 0, -1}) {
		t.Errorf("Center = %v", c.Center)
	}
}

func TestPanKeepsDirection(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{})
	before := c.Center.Sub(c.Eye)
	c.Pan(2, 1)
	after := c.Center.Sub(c.Eye)
	if !before.ApproxEqualThreshold(after, 1e-5) {
		t.Errorf("view direction changed: %v -> %v", before, after)
	}
	// Looking down -Z with up +Y, right is +X.
	if !c.Center.ApproxEqualThreshold(mgl32.Vec3{2, 1, 0}, 1e-5) {
		t.Errorf("Center = %v, want (2,1,0)", c.Center)
	}
}
