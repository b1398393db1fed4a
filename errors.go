package orrery

import "errors"

// ErrInvalidSize is returned when a framebuffer or renderer is created with
// a non-positive width or height.
var ErrInvalidSize = errors.New("orrery: width and height must be positive")
