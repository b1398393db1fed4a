package transform

import "github.com/go-gl/mathgl/mgl32"

// Set bundles the four matrices of one draw call.
type Set struct {
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Viewport   mgl32.Mat4
}

// MVP returns projection · view · model.
func (s *Set) MVP() mgl32.Mat4 {
	return s.Projection.Mul4(s.View).Mul4(s.Model)
}

// ScreenVertex is a vertex after the perspective divide and viewport.
type ScreenVertex struct {
	// X, Y are pixel coordinates, Depth is in [0,1] for visible points.
	X, Y, Depth float32
	// InvW is 1/clip.w, used for perspective-correct interpolation.
	InvW float32
}

// Project carries an object-space position through clip space, the
// perspective divide and the viewport. ok is false when clip.w <= 0: the
// point is on or behind the camera plane and must not be divided.
func Project(mvp, viewport mgl32.Mat4, p mgl32.Vec3) (v ScreenVertex, ok bool) {
	clip := mvp.Mul4x1(p.Vec4(1))
	return ToScreen(clip, viewport)
}

// ToScreen performs the perspective divide and viewport mapping of a clip
// position. ok is false when clip.w <= 0 (or w is NaN).
func ToScreen(clip mgl32.Vec4, viewport mgl32.Mat4) (v ScreenVertex, ok bool) {
	w := clip.W()
	if !(w > 0) {
		return ScreenVertex{}, false
	}
	invW := 1 / w
	ndc := mgl32.Vec4{clip.X() * invW, clip.Y() * invW, clip.Z() * invW, 1}
	s := viewport.Mul4x1(ndc)
	return ScreenVertex{X: s.X(), Y: s.Y(), Depth: s.Z(), InvW: invW}, true
}

// Clip returns projection · view · model · p.
func (s *Set) Clip(p mgl32.Vec3) mgl32.Vec4 {
	return s.MVP().Mul4x1(p.Vec4(1))
}
