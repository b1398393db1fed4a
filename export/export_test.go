package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/orrery"
	"github.com/gogpu/orrery/camera"
	"github.com/gogpu/orrery/mesh"
	"github.com/gogpu/orrery/scene"
)

type fixture struct {
	r     *orrery.Renderer
	scene *scene.Scene
	mesh  *mesh.Mesh
	cam   *camera.Camera
}

func newFixture(t *testing.T, size int) fixture {
	t.Helper()
	sc := scene.Default()
	r, err := orrery.NewRenderer(size, size, orrery.SceneOptions(sc)...)
	if err != nil {
		t.Fatal(err)
	}
	return fixture{r: r, scene: sc, mesh: mesh.Sphere(8, 12), cam: camera.New(sc.Camera.Eye, sc.Camera.Center)}
}

func decode(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decoding %s: %v", path, err)
	}
	return img
}

func TestRunWritesFrames(t *testing.T) {
	fx := newFixture(t, 48)
	dir := filepath.Join(t.TempDir(), "out")

	paths, err := Run(context.Background(), fx.r, fx.scene, fx.mesh, fx.cam, Options{
		Dir:    dir,
		Frames: 3,
		Start:  10,
		Step:   5,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"frame_00010.png", "frame_00015.png", "frame_00020.png"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v", paths)
	}
	for i, p := range paths {
		if filepath.Base(p) != want[i] {
			t.Errorf("path %d = %s, want %s", i, filepath.Base(p), want[i])
		}
		if b := decode(t, p).Bounds(); b.Dx() != 48 || b.Dy() != 48 {
			t.Errorf("%s bounds = %v", p, b)
		}
	}
}

func TestRunScaledJPEG(t *testing.T) {
	fx := newFixture(t, 20)
	paths, err := Run(context.Background(), fx.r, fx.scene, fx.mesh, fx.cam, Options{
		Dir:     t.TempDir(),
		Frames:  1,
		Scale:   3,
		Format:  JPEG,
		Workers: 1,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasSuffix(paths[0], ".jpg") {
		t.Errorf("path = %s, want .jpg", paths[0])
	}
	if b := decode(t, paths[0]).Bounds(); b.Dx() != 60 || b.Dy() != 60 {
		t.Errorf("bounds = %v, want 60x60", b)
	}
}

func TestRunCanceled(t *testing.T) {
	fx := newFixture(t, 16)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	paths, err := Run(ctx, fx.r, fx.scene, fx.mesh, fx.cam, Options{Dir: t.TempDir(), Frames: 5})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(paths) != 0 {
		t.Errorf("wrote %d frames after cancel", len(paths))
	}
}

func TestRunNoFrames(t *testing.T) {
	fx := newFixture(t, 16)
	if _, err := Run(context.Background(), fx.r, fx.scene, fx.mesh, fx.cam, Options{Dir: t.TempDir()}); !errors.Is(err, ErrNoFrames) {
		t.Errorf("err = %v, want ErrNoFrames", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"png", PNG, true},
		{"JPG", JPEG, true},
		{"jpeg", JPEG, true},
		{"gif", PNG, false},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err == nil) != tt.ok || (tt.ok && got != tt.want) {
			t.Errorf("ParseFormat(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestRunLogsSummary(t *testing.T) {
	fx := newFixture(t, 24)
	var buf bytes.Buffer
	_, err := Run(context.Background(), fx.r, fx.scene, fx.mesh, fx.cam, Options{
		Dir:    t.TempDir(),
		Frames: 2,
		Logger: slog.New(slog.NewTextHandler(&buf, nil)),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"msg=\"export finished\"", "frames=2", "written="} {
		if !strings.Contains(out, want) {
			t.Errorf("summary %q lacks %s", out, want)
		}
	}
	if strings.Contains(out, "fragments=") {
		t.Errorf("summary %q still uses the fragments key", out)
	}
}
