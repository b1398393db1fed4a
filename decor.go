package orrery

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/orrery/transform"
)

// Decoration constants.
const (
	// starDistance places stars just inside the far plane, as a fraction
	// of it, so every body occludes them.
	starDistance = 0.9
	// maxStarIntensity keeps white stars below the bloom threshold.
	maxStarIntensity = 0.7
	// ringSegments is the number of line segments per orbit ring.
	ringSegments = 128
)

var ringColor = RGB(0.28, 0.28, 0.32)

// star is a fixed direction on the sky.
type star struct {
	dir       mgl32.Vec3
	intensity float32
}

// makeStars places count stars uniformly over the sphere. The same seed
// always gives the same sky.
func makeStars(count int, seed int64) []star {
	if count <= 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15)) //nolint:gosec // decorative
	stars := make([]star, count)
	for i := range stars {
		z := 2*rng.Float32() - 1
		s, c := math32.Sincos(2 * math32.Pi * rng.Float32())
		r := math32.Sqrt(max(0, 1-z*z))
		stars[i] = star{
			dir:       mgl32.Vec3{r * c, r * s, z},
			intensity: 0.25 + (maxStarIntensity-0.25)*rng.Float32(),
		}
	}
	return stars
}

// project carries a world-space point to the screen. ok is false when the
// point is behind the camera or outside the depth range.
func (r *Renderer) project(vp mgl32.Mat4, p mgl32.Vec3) (transform.ScreenVertex, bool) {
	sv, ok := transform.Project(vp, r.viewport, p)
	if !ok || !(sv.Depth >= 0 && sv.Depth <= 1) {
		return sv, false
	}
	return sv, true
}

// DrawStarfield draws the background stars around the current eye. Stars
// move with the view direction but not with the eye position. It returns
// the number of stars drawn.
func (r *Renderer) DrawStarfield() int {
	if len(r.stars) == 0 {
		return 0
	}
	vp := r.projection.Mul4(r.view)
	dist := r.opts.far * starDistance
	w, h := float32(r.fb.width), float32(r.fb.height)

	r.fb.SetCurrentColor(White)
	drawn := 0
	for _, s := range r.stars {
		sv, ok := r.project(vp, r.eye.Add(s.dir.Mul(dist)))
		if !ok || sv.X < 0 || sv.Y < 0 || sv.X >= w || sv.Y >= h {
			continue
		}
		if r.fb.Point(int(sv.X), int(sv.Y), s.intensity, sv.Depth) {
			drawn++
		}
	}
	r.stats.Stars += drawn
	return drawn
}

// DrawOrbit draws a circle of the given radius in the XZ plane around the
// origin. Segments with an endpoint behind the camera are skipped. It
// returns the number of pixels written.
func (r *Renderer) DrawOrbit(radius float32) int {
	if !(radius > 0) {
		return 0
	}
	vp := r.projection.Mul4(r.view)
	r.fb.SetCurrentColor(ringColor)

	point := func(i int) (ScreenPoint, bool) {
		s, c := math32.Sincos(2 * math32.Pi * float32(i) / ringSegments)
		sv, ok := r.project(vp, mgl32.Vec3{radius * c, 0, radius * s})
		if !ok {
			return ScreenPoint{}, false
		}
		return ScreenPoint{X: int(math32.Floor(sv.X + 0.5)), Y: int(math32.Floor(sv.Y + 0.5)), Depth: sv.Depth}, true
	}

	written := 0
	prev, prevOK := point(0)
	for i := 1; i <= ringSegments; i++ {
		cur, ok := point(i)
		if ok && prevOK {
			written += r.fb.Line(prev, cur)
		}
		prev, prevOK = cur, ok
	}
	r.stats.RingPixels += written
	return written
}
