package orrery

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	icolor "github.com/gogpu/orrery/internal/color"
)

// ScreenPoint is a pixel position with a depth, used by Line.
type ScreenPoint struct {
	X, Y  int
	Depth float32
}

// Framebuffer owns the color and depth buffers of one frame.
//
// Colors are stored as 8-bit RGBA in the layout of image.RGBA, depth as
// float32 with +Inf meaning nothing has been drawn. Every write is bounds
// checked: pixels outside the buffer are silently dropped.
//
// A Framebuffer is not safe for concurrent use.
type Framebuffer struct {
	width  int
	height int
	pix    []uint8   // RGBA, 4 bytes per pixel
	depth  []float32 // one per pixel

	background icolor.ColorU8
	current    icolor.ColorU8
}

// NewFramebuffer creates a framebuffer cleared to black.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	fb := &Framebuffer{
		width:      width,
		height:     height,
		pix:        make([]uint8, width*height*4),
		depth:      make([]float32, width*height),
		background: icolor.ColorU8{A: 255},
		current:    icolor.ColorU8{R: 255, G: 255, B: 255, A: 255},
	}
	fb.Clear()
	return fb, nil
}

// Width returns the width in pixels.
func (fb *Framebuffer) Width() int {
	return fb.width
}

// Height returns the height in pixels.
func (fb *Framebuffer) Height() int {
	return fb.height
}

// SetBackground sets the color Clear fills with.
func (fb *Framebuffer) SetBackground(c Color) {
	fb.background = icolor.F32ToU8(c)
	fb.background.A = 255
}

// Background returns the clear color.
func (fb *Framebuffer) Background() Color {
	return icolor.U8ToF32(fb.background)
}

// SetCurrentColor sets the color used by Point and Line.
func (fb *Framebuffer) SetCurrentColor(c Color) {
	fb.current = icolor.F32ToU8(c)
	fb.current.A = 255
}

// Clear resets every pixel to the background color and every depth to +Inf.
func (fb *Framebuffer) Clear() {
	bg := fb.background
	if len(fb.pix) >= 4 {
		fb.pix[0], fb.pix[1], fb.pix[2], fb.pix[3] = bg.R, bg.G, bg.B, bg.A
		// Doubling copy fills the rest from the first pixel.
		for n := 4; n < len(fb.pix); n *= 2 {
			copy(fb.pix[n:], fb.pix[:n])
		}
	}
	inf := float32(math.Inf(1))
	for i := range fb.depth {
		fb.depth[i] = inf
	}
}

func (fb *Framebuffer) inBounds(x, y int) bool {
	return x >= 0 && x < fb.width && y >= 0 && y < fb.height
}

// Commit writes c at (x, y) if depth is strictly less than the stored depth
// and reports whether the pixel was written. NaN depths never win.
func (fb *Framebuffer) Commit(x, y int, depth float32, c Color) bool {
	if !fb.inBounds(x, y) {
		return false
	}
	i := y*fb.width + x
	if !(depth < fb.depth[i]) {
		return false
	}
	fb.depth[i] = depth
	fb.store(i*4, icolor.F32ToU8(c))
	return true
}

func (fb *Framebuffer) store(off int, c icolor.ColorU8) {
	fb.pix[off+0] = c.R
	fb.pix[off+1] = c.G
	fb.pix[off+2] = c.B
	fb.pix[off+3] = 255
}

// Point writes the current color scaled by intensity at (x, y), subject to
// the depth test.
func (fb *Framebuffer) Point(x, y int, intensity, depth float32) bool {
	c := icolor.U8ToF32(fb.current).Scale(icolor.Clamp01(intensity))
	return fb.Commit(x, y, depth, c)
}

// Line draws a one-pixel line from p0 to p1 in the current color with
// Bresenham's algorithm. The segment is first clipped to the buffer, so
// only visible pixels are stepped. Depth is interpolated along the line
// and each pixel is depth tested. It returns the number of pixels written.
func (fb *Framebuffer) Line(p0, p1 ScreenPoint) int {
	c := icolor.U8ToF32(fb.current)
	p0, p1, ok := fb.clipLine(p0, p1)
	if !ok {
		return 0
	}
	x0, y0, x1, y1 := p0.X, p0.Y, p1.X, p1.Y

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	steps := max(dx, -dy)

	written := 0
	err := dx + dy
	for step := 0; ; step++ {
		z := p0.Depth
		if steps > 0 {
			t := float32(step) / float32(steps)
			z += (p1.Depth - p0.Depth) * t
		}
		if fb.Commit(x0, y0, z, c) {
			written++
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
	return written
}

// clipLine clips the segment to the pixel rectangle with the
// Liang-Barsky test and moves the endpoint depths along with it. It
// reports false when no part of the segment is inside.
func (fb *Framebuffer) clipLine(p0, p1 ScreenPoint) (ScreenPoint, ScreenPoint, bool) {
	x0, y0 := float64(p0.X), float64(p0.Y)
	dx, dy := float64(p1.X-p0.X), float64(p1.Y-p0.Y)
	xmax, ymax := float64(fb.width-1), float64(fb.height-1)

	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{
		{-dx, x0},
		{dx, xmax - x0},
		{-dy, y0},
		{dy, ymax - y0},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return p0, p1, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return p0, p1, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return p0, p1, false
			}
			t1 = min(t1, r)
		}
	}
	if t0 == 0 && t1 == 1 {
		return p0, p1, true
	}

	at := func(t float64) ScreenPoint {
		return ScreenPoint{
			X:     int(math.Round(x0 + t*dx)),
			Y:     int(math.Round(y0 + t*dy)),
			Depth: p0.Depth + float32(t)*(p1.Depth-p0.Depth),
		}
	}
	return at(t0), at(t1), true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// RGBAAt returns the stored color at (x, y), or transparent black outside
// the buffer.
func (fb *Framebuffer) RGBAAt(x, y int) color.RGBA {
	if !fb.inBounds(x, y) {
		return color.RGBA{}
	}
	i := (y*fb.width + x) * 4
	return color.RGBA{R: fb.pix[i], G: fb.pix[i+1], B: fb.pix[i+2], A: fb.pix[i+3]}
}

// DepthAt returns the stored depth at (x, y), or +Inf outside the buffer.
func (fb *Framebuffer) DepthAt(x, y int) float32 {
	if !fb.inBounds(x, y) {
		return float32(math.Inf(1))
	}
	return fb.depth[y*fb.width+x]
}

// Pix returns the color buffer: width*height RGBA quadruplets, row-major.
// The slice aliases the framebuffer.
func (fb *Framebuffer) Pix() []uint8 {
	return fb.pix
}

// Image returns an image.RGBA sharing the color buffer.
func (fb *Framebuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    fb.pix,
		Stride: fb.width * 4,
		Rect:   image.Rect(0, 0, fb.width, fb.height),
	}
}

// Snapshot returns a copy of the color buffer as an image.RGBA.
func (fb *Framebuffer) Snapshot() *image.RGBA {
	return fb.CopyTo(nil)
}

// CopyTo copies the color buffer into dst and returns it. A nil dst, or one
// of another size, is replaced by a new image.
func (fb *Framebuffer) CopyTo(dst *image.RGBA) *image.RGBA {
	if dst == nil || dst.Rect != image.Rect(0, 0, fb.width, fb.height) || dst.Stride != fb.width*4 {
		dst = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	}
	copy(dst.Pix, fb.pix)
	return dst
}

// SavePNG saves the color buffer to a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, fb.Image()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
