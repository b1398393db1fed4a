// Package present shows rendered frames in a desktop window and maps
// keyboard input onto the camera.
package present

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"math"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/gogpu/orrery"
	"github.com/gogpu/orrery/camera"
	"github.com/gogpu/orrery/hud"
	"github.com/gogpu/orrery/mesh"
	"github.com/gogpu/orrery/scene"
)

// Camera steps applied per tick while a key is held.
const (
	OrbitStep = math.Pi / 20
	ZoomStep  = 0.75
	MoveStep  = 0.25
)

// TicksPerSecond is the animation rate. One tick advances the scene by one
// frame.
const TicksPerSecond = 60

// Config controls a Viewer.
type Config struct {
	Title string
	// Scale multiplies the window size. Values below 1 mean 1.
	Scale int
	// ScreenshotDir receives screenshots taken with P. Empty means the
	// working directory.
	ScreenshotDir string
	// HUD shows the statistics overlay at startup.
	HUD bool
	// Start is the frame number of the first tick.
	Start  uint64
	Logger *slog.Logger
}

// Viewer is an ebiten.Game that renders a scene every tick.
type Viewer struct {
	cfg    Config
	logger *slog.Logger

	r     *orrery.Renderer
	scene *scene.Scene
	mesh  *mesh.Mesh
	cam   *camera.Camera
	hud   *hud.Overlay

	frame   uint64
	paused  bool
	showHUD bool
	stats   orrery.FrameStats
	window  *ebiten.Image
	reload  chan *scene.Scene

	clipboardOnce sync.Once
	clipboardOK   bool
}

// New creates a viewer. The overlay is optional; a nil overlay disables the
// H key.
func New(r *orrery.Renderer, s *scene.Scene, m *mesh.Mesh, cam *camera.Camera, overlay *hud.Overlay, cfg Config) *Viewer {
	if cfg.Scale < 1 {
		cfg.Scale = 1
	}
	if cfg.Title == "" {
		cfg.Title = "orrery"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = orrery.Logger()
	}
	return &Viewer{
		cfg:     cfg,
		logger:  logger,
		r:       r,
		scene:   s,
		mesh:    m,
		cam:     cam,
		hud:     overlay,
		frame:   cfg.Start,
		showHUD: cfg.HUD && overlay != nil,
		reload:  make(chan *scene.Scene, 1),
	}
}

// Reload replaces the scene before the next tick. It is safe to call from
// any goroutine. A pending scene that was not picked up yet is dropped.
func (v *Viewer) Reload(s *scene.Scene) {
	for {
		select {
		case v.reload <- s:
			return
		default:
		}
		select {
		case <-v.reload:
		default:
		}
	}
}

// Run opens the window and blocks until it is closed or Escape is pressed.
func (v *Viewer) Run() error {
	fb := v.r.Framebuffer()
	ebiten.SetWindowSize(fb.Width()*v.cfg.Scale, fb.Height()*v.cfg.Scale)
	ebiten.SetWindowTitle(v.cfg.Title)
	ebiten.SetTPS(TicksPerSecond)
	ebiten.SetVsyncEnabled(true)
	if err := ebiten.RunGame(v); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

// Frame returns the frame number of the next tick.
func (v *Viewer) Frame() uint64 {
	return v.frame
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	select {
	case s := <-v.reload:
		v.applyScene(s)
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	for _, a := range heldActions(ebiten.IsKeyPressed) {
		Apply(v.cam, a)
	}
	v.handleToggles()

	v.Step()
	return nil
}

// Step renders one frame and advances the animation unless paused.
func (v *Viewer) Step() orrery.FrameStats {
	v.stats = v.r.RenderScene(v.scene, v.mesh, v.cam, v.frame)
	if v.showHUD && v.hud != nil {
		v.hud.Draw(v.r.Framebuffer().Image(), hud.Info{
			Frame:    v.frame,
			FPS:      ebiten.ActualFPS(),
			Distance: v.cam.Distance(),
			Stats:    v.stats,
			Title:    v.cfg.Title,
		})
	}
	if !v.paused {
		v.frame++
	}
	return v.stats
}

func (v *Viewer) handleToggles() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) && v.hud != nil {
		v.showHUD = !v.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if path, err := v.Screenshot(); err != nil {
			v.logger.Warn("screenshot failed", "err", err)
		} else {
			v.logger.Info("screenshot saved", "path", path)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := v.CopyToClipboard(); err != nil {
			v.logger.Warn("copy to clipboard failed", "err", err)
		}
	}
}

func (v *Viewer) applyScene(s *scene.Scene) {
	fb := v.r.Framebuffer()
	if s.Width != fb.Width() || s.Height != fb.Height() {
		if err := v.r.Resize(s.Width, s.Height); err != nil {
			v.logger.Warn("scene reload: keeping previous size", "err", err)
			return
		}
		v.window = nil
		ebiten.SetWindowSize(s.Width*v.cfg.Scale, s.Height*v.cfg.Scale)
	}
	v.r.ApplyScene(s)
	v.scene = s
	v.logger.Debug("scene applied", "bodies", len(s.Bodies()), "width", s.Width, "height", s.Height)
}

// Screenshot writes the current frame as PNG into the screenshot
// directory and returns its path.
func (v *Viewer) Screenshot() (string, error) {
	dir := v.cfg.ScreenshotDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, fmt.Sprintf("orrery_%05d.png", v.frame))
	if err := v.r.Framebuffer().SavePNG(path); err != nil {
		return "", err
	}
	return path, nil
}

var errClipboardUnavailable = errors.New("present: clipboard unavailable")

// CopyToClipboard places the current frame on the system clipboard as a
// PNG image.
func (v *Viewer) CopyToClipboard() error {
	v.clipboardOnce.Do(func() {
		v.clipboardOK = clipboard.Init() == nil
	})
	if !v.clipboardOK {
		return errClipboardUnavailable
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, v.r.Framebuffer().Snapshot()); err != nil {
		return fmt.Errorf("present: encoding frame: %w", err)
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	return nil
}

// Draw implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	fb := v.r.Framebuffer()
	if v.window == nil {
		v.window = ebiten.NewImage(fb.Width(), fb.Height())
	}
	v.window.WritePixels(fb.Pix())
	screen.DrawImage(v.window, nil)
}

// Layout implements ebiten.Game.
func (v *Viewer) Layout(_, _ int) (int, int) {
	fb := v.r.Framebuffer()
	return fb.Width(), fb.Height()
}

// Action is a camera movement bound to a held key.
type Action int

// Camera actions.
const (
	OrbitLeft Action = iota
	OrbitRight
	OrbitUp
	OrbitDown
	ZoomIn
	ZoomOut
	MoveLeft
	MoveRight
	MoveDown
	MoveUp
)

var bindings = []struct {
	key    ebiten.Key
	action Action
}{
	{ebiten.KeyArrowLeft, OrbitLeft},
	{ebiten.KeyArrowRight, OrbitRight},
	{ebiten.KeyArrowUp, OrbitUp},
	{ebiten.KeyArrowDown, OrbitDown},
	{ebiten.KeyW, ZoomIn},
	{ebiten.KeyS, ZoomOut},
	{ebiten.KeyA, MoveLeft},
	{ebiten.KeyD, MoveRight},
	{ebiten.KeyQ, MoveDown},
	{ebiten.KeyE, MoveUp},
}

func heldActions(pressed func(ebiten.Key) bool) []Action {
	var out []Action
	for _, b := range bindings {
		if pressed(b.key) {
			out = append(out, b.action)
		}
	}
	return out
}

// Apply moves cam by one step of a. Move actions pan in the view plane.
func Apply(cam *camera.Camera, a Action) {
	switch a {
	case OrbitLeft:
		cam.Orbit(-OrbitStep, 0)
	case OrbitRight:
		cam.Orbit(OrbitStep, 0)
	case OrbitUp:
		cam.Orbit(0, OrbitStep)
	case OrbitDown:
		cam.Orbit(0, -OrbitStep)
	case ZoomIn:
		cam.Zoom(ZoomStep)
	case ZoomOut:
		cam.Zoom(-ZoomStep)
	case MoveLeft:
		cam.Pan(-MoveStep, 0)
	case MoveRight:
		cam.Pan(MoveStep, 0)
	case MoveDown:
		cam.Pan(0, -MoveStep)
	case MoveUp:
		cam.Pan(0, MoveStep)
	}
}
