package filter

import (
	"math"
	"testing"
)

func TestBlurFilterZeroRadiusCopies(t *testing.T) {
	src := spotPlane(8, 8, 4, 4, 1)
	dst := NewPlane(8, 8)

	NewBlurFilter(0).Apply(src, dst)

	for i := range src.Pix {
		if dst.Pix[i] != src.Pix[i] {
			t.Fatalf("Pix[%d] = %v, want %v", i, dst.Pix[i], src.Pix[i])
		}
	}
}

func TestBlurFilterMismatchedPlanes(t *testing.T) {
	f := NewBlurFilter(3)

	// Should not panic.
	f.Apply(nil, nil)
	f.Apply(NewPlane(4, 4), nil)
	f.Apply(NewPlane(4, 4), NewPlane(5, 4))
	f.Apply(NewPlane(0, 0), NewPlane(0, 0))
}

func TestBlurFilterSpreadsSpot(t *testing.T) {
	src := spotPlane(21, 21, 10, 10, 100)
	dst := NewPlane(21, 21)

	NewBlurFilter(3).Apply(src, dst)

	center := dst.Pix[(10*21+10)*3]
	neighbor := dst.Pix[(10*21+11)*3]
	far := dst.Pix[(0*21+0)*3]

	if center >= 100 || center <= 0 {
		t.Errorf("center = %v, want in (0, 100)", center)
	}
	if neighbor <= 0 || neighbor >= center {
		t.Errorf("neighbor = %v, want in (0, %v)", neighbor, center)
	}
	if far != 0 {
		t.Errorf("pixel outside kernel reach = %v, want 0", far)
	}
}

// An interior spot keeps its energy because the kernel sums to one.
func TestBlurFilterPreservesEnergy(t *testing.T) {
	src := spotPlane(64, 64, 32, 30, 255)
	src.Pix[(20*64+40)*3+1] = 80

	dst := NewPlane(64, 64)
	NewBlurFilter(6).Apply(src, dst)

	sr, sg, sb := src.Sum()
	dr, dg, db := dst.Sum()
	for _, c := range []struct {
		name     string
		src, dst float64
	}{{"r", sr, dr}, {"g", sg, dg}, {"b", sb, db}} {
		if math.Abs(c.src-c.dst) > c.src*1e-4+1e-3 {
			t.Errorf("%s energy = %v, want %v", c.name, c.dst, c.src)
		}
	}
}

func TestBlurFilterPreservesEnergyAtBorders(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		x, y   int
		radius int
	}{
		{"left edge", 64, 64, 0, 32, 6},
		{"bottom edge", 64, 64, 30, 63, 6},
		{"corner", 64, 64, 0, 0, 6},
		{"far corner", 64, 64, 63, 63, 6},
		{"kernel wider than plane", 5, 3, 1, 2, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := spotPlane(tt.w, tt.h, tt.x, tt.y, 1)
			dst := NewPlane(tt.w, tt.h)
			NewBlurFilter(tt.radius).Apply(src, dst)
			r, g, b := dst.Sum()
			for _, v := range []float64{r, g, b} {
				if math.Abs(v-1) > 1e-4 {
					t.Errorf("energy = %v, want 1", v)
				}
			}
		})
	}
}

func TestReflect(t *testing.T) {
	tests := []struct{ i, n, want int }{
		{0, 4, 0}, {3, 4, 3}, {-1, 4, 0}, {-2, 4, 1}, {4, 4, 3}, {5, 4, 2},
		{-1, 1, 0}, {2, 1, 0}, {-9, 3, 2},
	}
	for _, tt := range tests {
		if got := reflect(tt.i, tt.n); got != tt.want {
			t.Errorf("reflect(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestBlurFilterInPlace(t *testing.T) {
	p := spotPlane(16, 16, 8, 8, 10)
	want := NewPlane(16, 16)
	NewBlurFilter(2).Apply(p, want)

	NewBlurFilter(2).Apply(p, p)
	for i := range p.Pix {
		if math.Abs(float64(p.Pix[i]-want.Pix[i])) > 1e-6 {
			t.Fatalf("in-place Pix[%d] = %v, want %v", i, p.Pix[i], want.Pix[i])
		}
	}
}

func TestBlurFilterUniformUnchanged(t *testing.T) {
	p := NewPlane(10, 6)
	for i := range p.Pix {
		p.Pix[i] = 42
	}
	NewBlurFilter(4).Apply(p, p)
	for i, v := range p.Pix {
		if math.Abs(float64(v-42)) > 1e-3 {
			t.Fatalf("Pix[%d] = %v, want 42", i, v)
		}
	}
}

func BenchmarkBlurFilter(b *testing.B) {
	src := spotPlane(600, 600, 300, 300, 255)
	dst := NewPlane(600, 600)
	f := NewBlurFilter(6)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Apply(src, dst)
	}
}
