// Package framepool recycles RGBA frame copies between the render loop and
// the goroutines that encode them.
package framepool

import (
	"image"
	"sync"
)

// Pool keeps released frames grouped by size.
//
// All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[image.Point][]*image.RGBA
	maxSize int
}

// New creates a pool retaining at most maxPerSize frames of each size.
// Zero means unlimited.
func New(maxPerSize int) *Pool {
	return &Pool{
		buckets: make(map[image.Point][]*image.RGBA),
		maxSize: maxPerSize,
	}
}

// Get returns a width×height frame. Reused frames are not cleared; callers
// overwrite every pixel.
func (p *Pool) Get(width, height int) *image.RGBA {
	key := image.Pt(width, height)

	p.mu.Lock()
	if bucket := p.buckets[key]; len(bucket) > 0 {
		img := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()
		return img
	}
	p.mu.Unlock()

	return image.NewRGBA(image.Rect(0, 0, width, height))
}

// Put releases img for reuse. Frames beyond the per-size limit are dropped.
func (p *Pool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	key := img.Rect.Size()

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, img)
}

// Len returns the number of idle frames of the given size.
func (p *Pool) Len(width, height int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[image.Pt(width, height)])
}
