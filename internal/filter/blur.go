package filter

import "sync"

// Plane is a row-major buffer of float32 RGB triples.
type Plane struct {
	Width  int
	Height int
	Pix    []float32 // 3 floats per pixel
}

// NewPlane allocates a zeroed plane.
func NewPlane(width, height int) *Plane {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Plane{Width: width, Height: height, Pix: make([]float32, width*height*3)}
}

// Zero resets every component to 0.
func (p *Plane) Zero() {
	clear(p.Pix)
}

// Sum returns the per-channel totals over the whole plane.
func (p *Plane) Sum() (r, g, b float64) {
	for i := 0; i < len(p.Pix); i += 3 {
		r += float64(p.Pix[i+0])
		g += float64(p.Pix[i+1])
		b += float64(p.Pix[i+2])
	}
	return r, g, b
}

// BlurFilter applies a separable Gaussian blur.
// The two 1D passes cost O(w*h*r) instead of O(w*h*r²) for a 2D window.
type BlurFilter struct {
	// Radius is the kernel half-width in pixels.
	Radius int
}

// NewBlurFilter creates a blur filter with the given radius.
func NewBlurFilter(radius int) *BlurFilter {
	return &BlurFilter{Radius: radius}
}

// Apply blurs src into dst. src and dst must have equal dimensions and may
// be the same plane. Samples beyond the border mirror the pixels inside it.
func (f *BlurFilter) Apply(src, dst *Plane) {
	if src == nil || dst == nil || src.Width != dst.Width || src.Height != dst.Height {
		return
	}
	if src.Width == 0 || src.Height == 0 {
		return
	}
	if f.Radius <= 0 {
		if src != dst {
			copy(dst.Pix, src.Pix)
		}
		return
	}

	kernel := CachedGaussianKernel(f.Radius)
	temp := getTempBuffer(len(src.Pix))
	defer putTempBuffer(temp)

	blurHorizontal(src.Pix, temp, src.Width, src.Height, kernel)
	blurVertical(temp, dst.Pix, src.Width, src.Height, kernel)
}

// reflect mirrors i into [0, n) about the pixel edges (half-sample
// symmetric). With a symmetric kernel each source pixel then spreads a
// total weight of exactly one, so the blur keeps energy at the borders.
func reflect(i, n int) int {
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		} else {
			i = 2*n - i - 1
		}
	}
	return i
}

// blurHorizontal convolves each row of src with kernel into dst.
func blurHorizontal(src, dst []float32, width, height int, kernel []float32) {
	half := len(kernel) / 2

	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			var r, g, b float32
			for k, weight := range kernel {
				i := (row + reflect(x+k-half, width)) * 3
				r += src[i+0] * weight
				g += src[i+1] * weight
				b += src[i+2] * weight
			}
			o := (row + x) * 3
			dst[o+0] = r
			dst[o+1] = g
			dst[o+2] = b
		}
	}
}

// blurVertical convolves each column of src with kernel into dst.
func blurVertical(src, dst []float32, width, height int, kernel []float32) {
	half := len(kernel) / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var r, g, b float32
			for k, weight := range kernel {
				i := (reflect(y+k-half, height)*width + x) * 3
				r += src[i+0] * weight
				g += src[i+1] * weight
				b += src[i+2] * weight
			}
			o := (y*width + x) * 3
			dst[o+0] = r
			dst[o+1] = g
			dst[o+2] = b
		}
	}
}

// floatBuffer wraps a slice for sync.Pool.
type floatBuffer struct {
	data []float32
}

var tempBufferPool = sync.Pool{
	New: func() any {
		return &floatBuffer{data: make([]float32, 640*640*3)}
	},
}

// getTempBuffer retrieves a scratch slice of exactly size elements.
// Every element is overwritten by the horizontal pass, so it is not cleared.
func getTempBuffer(size int) []float32 {
	wrapper := tempBufferPool.Get().(*floatBuffer)
	if len(wrapper.data) < size {
		tempBufferPool.Put(wrapper)
		return make([]float32, size)
	}
	return wrapper.data[:size]
}

// putTempBuffer returns a scratch slice to the pool.
func putTempBuffer(buf []float32) {
	if cap(buf) <= 4096*4096*3 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}
