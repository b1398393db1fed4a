package mesh

import (
	"errors"
	"fmt"
)

// Sentinel errors for mesh package.
var (
	// ErrEmptyMesh is returned when a mesh source contains no triangles.
	ErrEmptyMesh = errors.New("mesh: no triangles")

	// ErrSyntax is returned when the OBJ decoder rejects the input.
	ErrSyntax = errors.New("mesh: malformed OBJ")

	// ErrBadFace is returned for faces with fewer than three corners or
	// with indices that do not resolve to a declared element.
	ErrBadFace = errors.New("mesh: bad face")
)

// ParseError reports the face a mesh could not be built from.
type ParseError struct {
	// Object is the OBJ object or group name.
	Object string
	// Face is the 1-based face number within Object.
	Face int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mesh: object %q face %d: %v", e.Object, e.Face, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
