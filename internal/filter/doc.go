// Package filter provides the image-space filters used by the bloom pass.
//
// Images are stored as [Plane] values: row-major float32 RGB triples that
// are never quantized, so repeated filtering does not lose energy to
// rounding. The blur is a separable Gaussian: one horizontal and one
// vertical pass over a pooled scratch plane.
package filter
