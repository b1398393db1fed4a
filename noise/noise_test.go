package noise

import (
	"testing"
)

func TestFractalBounded(t *testing.T) {
	for _, typ := range []Type{FBM, Ridged, Billow} {
		f := NewFractal(42, WithType(typ), WithOctaves(6), WithFrequency(3))
		for i := range 2000 {
			x := float32(i%37) * 0.173
			y := float32(i%91) * 0.057
			z := float32(i) * 0.0131
			if v := f.Eval(x, y, z); v < -1 || v > 1 {
				t.Fatalf("type %d Eval(%v,%v,%v) = %v, out of [-1,1]", typ, x, y, z, v)
			}
		}
	}
}

func TestFractalDeterministic(t *testing.T) {
	a := NewFractal(7)
	b := NewFractal(7)
	for i := range 100 {
		p := float32(i) * 0.37
		if a.Eval(p, -p, p*0.5) != b.Eval(p, -p, p*0.5) {
			t.Fatalf("same seed diverged at %v", p)
		}
	}
}

func TestFractalSeedsDiffer(t *testing.T) {
	a := NewFractal(1)
	b := NewFractal(2)
	diff := 0
	for i := range 50 {
		p := float32(i)*0.61 + 0.3
		if a.Eval(p, p, p) != b.Eval(p, p, p) {
			diff++
		}
	}
	if diff == 0 {
		t.Error("different seeds produced identical fields")
	}
}

func TestFractalVaries(t *testing.T) {
	f := NewFractal(3, WithFrequency(2))
	first := f.Eval(0.1, 0.2, 0.3)
	for i := 1; i < 50; i++ {
		p := float32(i) * 0.29
		if f.Eval(p, 0.2, 0.3) != first {
			return
		}
	}
	t.Error("field is constant")
}

func TestWithOctavesFloor(t *testing.T) {
	f := NewFractal(1, WithOctaves(0))
	if f.octaves != 1 {
		t.Errorf("octaves = %d, want 1", f.octaves)
	}
}

func TestConstant(t *testing.T) {
	if got := Constant(0.25).Eval(9, 9, 9); got != 0.25 {
		t.Errorf("Constant.Eval = %v, want 0.25", got)
	}
}

func TestNewSetIndependent(t *testing.T) {
	s := NewSet(11)
	if s.Surface == nil || s.Cloud == nil || s.Band == nil {
		t.Fatal("NewSet left a field nil")
	}
	p := [3]float32{0.4, -0.2, 0.7}
	sv := s.Surface.Eval(p[0], p[1], p[2])
	cv := s.Cloud.Eval(p[0], p[1], p[2])
	bv := s.Band.Eval(p[0], p[1], p[2])
	if sv == cv && cv == bv {
		t.Error("surface, cloud and band fields coincide")
	}
}

func TestForSeedShared(t *testing.T) {
	a, b := ForSeed(99), ForSeed(99)
	if a.Surface != b.Surface || a.Cloud != b.Cloud || a.Band != b.Band {
		t.Error("ForSeed built a second set for the same seed")
	}
	if ForSeed(100).Surface == a.Surface {
		t.Error("different seeds share a field")
	}
}
