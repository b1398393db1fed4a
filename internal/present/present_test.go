package present

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/orrery"
	"github.com/gogpu/orrery/camera"
	"github.com/gogpu/orrery/mesh"
	"github.com/gogpu/orrery/scene"
)

func newViewer(t *testing.T, size int, cfg Config) *Viewer {
	t.Helper()
	sc := scene.Default()
	sc.Width, sc.Height = size, size
	r, err := orrery.NewRenderer(size, size, orrery.SceneOptions(sc)...)
	if err != nil {
		t.Fatal(err)
	}
	cam := camera.New(sc.Camera.Eye, sc.Camera.Center)
	return New(r, sc, mesh.Sphere(6, 10), cam, nil, cfg)
}

func TestHeldActions(t *testing.T) {
	held := map[ebiten.Key]bool{ebiten.KeyArrowLeft: true, ebiten.KeyW: true}
	got := heldActions(func(k ebiten.Key) bool { return held[k] })
	if len(got) != 2 || got[0] != OrbitLeft || got[1] != ZoomIn {
		t.Errorf("heldActions = %v, want [OrbitLeft ZoomIn]", got)
	}
	if got := heldActions(func(ebiten.Key) bool { return false }); len(got) != 0 {
		t.Errorf("no keys held: got %v", got)
	}
}

func TestApplyOrbitKeepsDistance(t *testing.T) {
	cam := camera.New(mgl32.Vec3{15, 10, 10}, mgl32.Vec3{})
	d := cam.Distance()
	for _, a := range []Action{OrbitLeft, OrbitRight, OrbitUp, OrbitDown} {
		Apply(cam, a)
		if math32.Abs(cam.Distance()-d) > 1e-3 {
			t.Errorf("after %v distance = %v, want %v", a, cam.Distance(), d)
		}
	}
}

func TestApplyZoom(t *testing.T) {
	cam := camera.New(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{})
	Apply(cam, ZoomIn)
	if got := cam.Distance(); math32.Abs(got-9.25) > 1e-4 {
		t.Errorf("zoom in: distance = %v, want 9.25", got)
	}
	Apply(cam, ZoomOut)
	Apply(cam, ZoomOut)
	if got := cam.Distance(); math32.Abs(got-10.75) > 1e-4 {
		t.Errorf("zoom out: distance = %v, want 10.75", got)
	}
}

func TestApplyMoveShiftsCenter(t *testing.T) {
	cam := camera.New(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{})
	Apply(cam, MoveRight)
	if cam.Center.X() <= 0 {
		t.Errorf("MoveRight: center = %v, want positive X", cam.Center)
	}
	if got := cam.Distance(); math32.Abs(got-10) > 1e-4 {
		t.Errorf("MoveRight changed distance to %v", got)
	}
	Apply(cam, MoveUp)
	if cam.Center.Y() <= 0 {
		t.Errorf("MoveUp: center = %v, want positive Y", cam.Center)
	}
}

func TestStepAdvancesFrame(t *testing.T) {
	v := newViewer(t, 32, Config{Start: 5})
	stats := v.Step()
	if v.Frame() != 6 {
		t.Errorf("Frame() = %d, want 6", v.Frame())
	}
	if stats.Written == 0 {
		t.Error("Step wrote no fragments")
	}
	v.paused = true
	v.Step()
	if v.Frame() != 6 {
		t.Errorf("paused Frame() = %d, want 6", v.Frame())
	}
}

func TestReloadKeepsLatest(t *testing.T) {
	v := newViewer(t, 32, Config{})
	a, b := scene.Default(), scene.Default()
	a.Width, a.Height = 32, 32
	b.Width, b.Height = 40, 24
	b.Background = "#203040"
	b.Bloom.Disabled = true
	b.Stars.Count = 0
	v.Reload(a)
	v.Reload(b)

	s := <-v.reload
	if s != b {
		t.Fatal("pending scene is not the latest")
	}
	v.applyScene(s)
	if w, h := v.Layout(0, 0); w != 40 || h != 24 {
		t.Errorf("Layout after reload = %dx%d, want 40x24", w, h)
	}
	if v.scene != b {
		t.Error("scene not replaced")
	}
	want, err := orrery.ParseHex("#203040")
	if err != nil {
		t.Fatal(err)
	}
	if got := v.r.Framebuffer().Background(); got != want {
		t.Errorf("background after reload = %v, want %v", got, want)
	}
	if v.r.Bloom() != nil {
		t.Error("bloom still enabled after reload disabled it")
	}
	if s := v.Step(); s.Stars != 0 {
		t.Errorf("Stars = %d after reload removed the starfield", s.Stars)
	}
}

func TestScreenshot(t *testing.T) {
	dir := t.TempDir()
	v := newViewer(t, 16, Config{ScreenshotDir: dir, Start: 3})
	v.paused = true
	v.Step()
	path, err := v.Screenshot()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "orrery_00003.png"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error(err)
	}
}

func TestNewDefaults(t *testing.T) {
	v := newViewer(t, 16, Config{HUD: true})
	if v.cfg.Scale != 1 || v.cfg.Title != "orrery" {
		t.Errorf("cfg = %+v", v.cfg)
	}
	if v.showHUD {
		t.Error("HUD enabled without an overlay")
	}
}
