// Package transform builds the model, view, projection and viewport matrices
// consumed by every draw call, and runs vertices through them.
//
// Conventions follow OpenGL: right-handed world space, camera looking down
// -Z, clip space with w = -z_eye and NDC in [-1,1]³. The viewport flips Y so
// that screen Y grows downward and maps NDC depth to [0,1].
package transform

import "github.com/go-gl/mathgl/mgl32"

// Projection defaults. They are fixed so that renders are reproducible.
const (
	// DefaultFieldOfView is the vertical field of view in degrees.
	DefaultFieldOfView float32 = 45
	// DefaultNear is the distance to the near clip plane.
	DefaultNear float32 = 0.1
	// DefaultFar is the distance to the far clip plane.
	DefaultFar float32 = 100
)

// Model composes scale, rotation and translation, applied to object-space
// vertices in that order. rotation holds Euler angles in radians, applied
// X first, then Y, then Z.
func Model(translation mgl32.Vec3, scale float32, rotation mgl32.Vec3) mgl32.Mat4 {
	rot := mgl32.HomogRotate3DZ(rotation.Z()).
		Mul4(mgl32.HomogRotate3DY(rotation.Y())).
		Mul4(mgl32.HomogRotate3DX(rotation.X()))

	return mgl32.Translate3D(translation.X(), translation.Y(), translation.Z()).
		Mul4(rot).
		Mul4(mgl32.Scale3D(scale, scale, scale))
}

// View builds a look-at matrix: forward = normalize(center-eye),
// right = normalize(forward × up), true up = right × forward, followed by a
// translation by -eye.
func View(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, center, up)
}

// Perspective returns the projection for a viewport of the given size using
// DefaultFieldOfView, DefaultNear and DefaultFar.
func Perspective(width, height float32) mgl32.Mat4 {
	return PerspectiveFOV(DefaultFieldOfView, Aspect(width, height), DefaultNear, DefaultFar)
}

// PerspectiveFOV returns a perspective projection with a vertical field of
// view in degrees.
func PerspectiveFOV(fovDegrees, aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fovDegrees), aspect, near, far)
}

// Aspect returns width/height, or 1 for a degenerate height.
func Aspect(width, height float32) float32 {
	if height <= 0 || width <= 0 {
		return 1
	}
	return width / height
}

// Viewport maps NDC [-1,1]² to pixel coordinates [0,width)×[0,height) with Y
// flipped, and NDC depth [-1,1] to [0,1].
func Viewport(width, height float32) mgl32.Mat4 {
	hw, hh := width/2, height/2
	return mgl32.Mat4{
		hw, 0, 0, 0,
		0, -hh, 0, 0,
		0, 0, 0.5, 0,
		hw, hh, 0.5, 1,
	}
}

// NormalMatrix returns the inverse-transpose of the upper 3×3 of model, which
// carries object-space normals into world space.
func NormalMatrix(model mgl32.Mat4) mgl32.Mat3 {
	return model.Mat3().Inv().Transpose()
}
