// Package camera holds the eye/center/up state the view matrix is built from
// and the orbit, zoom and pan operations that input handlers drive.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Limits applied by Orbit and Zoom.
const (
	// MaxPitch keeps the eye off the poles, where the look-at basis
	// degenerates because forward becomes parallel to up.
	MaxPitch = 89 * math32.Pi / 180
	// MinDistance is the closest the eye may get to the center.
	MinDistance float32 = 0.5
)

// Camera is a look-at camera.
type Camera struct {
	Eye    mgl32.Vec3
	Center mgl32.Vec3
	Up     mgl32.Vec3
}

// New returns a camera at eye looking at center with up +Y.
func New(eye, center mgl32.Vec3) *Camera {
	return &Camera{Eye: eye, Center: center, Up: mgl32.Vec3{0, 1, 0}}
}

// Distance returns |eye - center|.
func (c *Camera) Distance() float32 {
	return c.Eye.Sub(c.Center).Len()
}

// spherical returns the eye offset from center as (radius, yaw, pitch),
// yaw measured about +Y from +Z and pitch from the XZ plane.
func (c *Camera) spherical() (r, yaw, pitch float32) {
	d := c.Eye.Sub(c.Center)
	r = d.Len()
	if r == 0 {
		return 0, 0, 0
	}
	yaw = math32.Atan2(d.X(), d.Z())
	pitch = math32.Asin(clamp(d.Y()/r, -1, 1))
	return r, yaw, pitch
}

func (c *Camera) setSpherical(r, yaw, pitch float32) {
	sy, cy := math32.Sincos(yaw)
	sp, cp := math32.Sincos(pitch)
	c.Eye = c.Center.Add(mgl32.Vec3{r * cp * sy, r * sp, r * cp * cy})
}

// Orbit rotates the eye around the center by yaw radians about +Y and pitch
// radians toward +Y. The distance to the center is preserved and pitch is
// clamped to ±MaxPitch.
func (c *Camera) Orbit(yaw, pitch float32) {
	r, y, p := c.spherical()
	if r == 0 {
		return
	}
	c.setSpherical(r, y+yaw, clamp(p+pitch, -MaxPitch, MaxPitch))
}

// Zoom moves the eye delta units toward the center; negative deltas move
// away. The distance never drops under MinDistance.
func (c *Camera) Zoom(delta float32) {
	d := c.Eye.Sub(c.Center)
	r := d.Len()
	if r == 0 {
		return
	}
	nr := max(r-delta, MinDistance)
	c.Eye = c.Center.Add(d.Mul(nr / r))
}

// MoveCenter translates both the eye and the center by delta.
func (c *Camera) MoveCenter(delta mgl32.Vec3) {
	c.Eye = c.Eye.Add(delta)
	c.Center = c.Center.Add(delta)
}

// Pan moves the camera in its own screen plane: right units along the view
// right vector and up units along the true up.
func (c *Camera) Pan(right, up float32) {
	fwd := c.Center.Sub(c.Eye)
	if fwd.Len() == 0 {
		return
	}
	fwd = fwd.Normalize()
	r := fwd.Cross(c.Up)
	if r.Len() == 0 {
		return
	}
	r = r.Normalize()
	u := r.Cross(fwd)
	c.MoveCenter(r.Mul(right).Add(u.Mul(up)))
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
