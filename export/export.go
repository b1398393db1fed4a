// Package export renders frame sequences headless and writes them as image
// files.
//
// Rendering stays on the calling goroutine; finished frames are copied and
// handed to a worker pool that upscales and encodes them.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/orrery"
	"github.com/gogpu/orrery/camera"
	"github.com/gogpu/orrery/internal/framepool"
	"github.com/gogpu/orrery/internal/parallel"
	"github.com/gogpu/orrery/mesh"
	"github.com/gogpu/orrery/scene"
)

// Format is an output image format.
type Format int

// Supported formats.
const (
	PNG Format = iota
	JPEG
)

// ErrNoFrames is returned when Options.Frames is not positive.
var ErrNoFrames = errors.New("export: frame count must be positive")

// String returns the file extension of the format, without the dot.
func (f Format) String() string {
	if f == JPEG {
		return "jpg"
	}
	return "png"
}

// ParseFormat resolves "png", "jpg" or "jpeg".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	}
	return PNG, fmt.Errorf("export: unknown format %q", s)
}

// Options controls an export run.
type Options struct {
	// Dir is the output directory. It is created if missing.
	Dir string
	// Frames is the number of images to write.
	Frames int
	// Start is the frame number of the first image.
	Start uint64
	// Step is the number of frames between images. Zero means 1.
	Step uint64
	// Scale upscales each image by an integer factor with nearest-neighbor
	// sampling. Values below 2 keep the rendered size.
	Scale int
	// Smooth uses linear instead of nearest-neighbor upscaling.
	Smooth bool
	// Format selects PNG or JPEG.
	Format Format
	// Quality is the JPEG quality, 1 to 100. Zero means 90.
	Quality int
	// Workers is the number of encoding goroutines. Zero means GOMAXPROCS.
	Workers int
	// Progress shows a progress bar when stdout is a terminal.
	Progress bool
	// Logger receives lifecycle messages. Nil means orrery.Logger().
	Logger *slog.Logger
}

// Run renders opts.Frames frames of s and writes them to opts.Dir. It
// returns the written paths in frame order. Run stops early, returning
// ctx.Err(), when ctx is canceled.
func Run(ctx context.Context, r *orrery.Renderer, s *scene.Scene, m *mesh.Mesh, cam *camera.Camera, opts Options) ([]string, error) {
	if opts.Frames <= 0 {
		return nil, ErrNoFrames
	}
	if opts.Step == 0 {
		opts.Step = 1
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = 90
	}
	logger := opts.Logger
	if logger == nil {
		logger = orrery.Logger()
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil { //nolint:gosec // output directory is user-chosen
		return nil, fmt.Errorf("export: %w", err)
	}

	enc := imgio.PNGEncoder()
	if opts.Format == JPEG {
		enc = imgio.JPEGEncoder(opts.Quality)
	}
	filter := transform.NearestNeighbor
	if opts.Smooth {
		filter = transform.Linear
	}

	var bar *progressbar.ProgressBar
	if opts.Progress && term.IsTerminal(int(os.Stdout.Fd())) {
		bar = progressbar.Default(int64(opts.Frames), "rendering")
		defer func() { _ = bar.Close() }()
	}

	pool := parallel.NewWorkerPool(opts.Workers)
	defer pool.Close()
	frames := framepool.New(pool.Workers() + 1)

	start := time.Now()
	var written int
	paths := make([]string, 0, opts.Frames)
	for i := range opts.Frames {
		if err := ctx.Err(); err != nil {
			_ = pool.Wait()
			return paths, err
		}

		frame := opts.Start + uint64(i)*opts.Step
		stats := r.RenderScene(s, m, cam, frame)
		written += stats.Written
		fb := r.Framebuffer()
		img := fb.CopyTo(frames.Get(fb.Width(), fb.Height()))
		path := filepath.Join(opts.Dir, fmt.Sprintf("frame_%05d.%s", frame, opts.Format))
		paths = append(paths, path)

		logger.Debug("export: frame rendered", "frame", frame, "written", stats.Written, "duration", stats.Duration)

		pool.Submit(func() error {
			defer frames.Put(img)
			var out image.Image = img
			if opts.Scale > 1 {
				b := img.Bounds()
				out = transform.Resize(img, b.Dx()*opts.Scale, b.Dy()*opts.Scale, filter)
			}
			if err := imgio.Save(path, out, enc); err != nil {
				return fmt.Errorf("export: writing %s: %w", path, err)
			}
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}

	if err := pool.Wait(); err != nil {
		return paths, err
	}
	p := message.NewPrinter(language.English)
	logger.Info("export finished",
		"frames", opts.Frames,
		"written", p.Sprintf("%d", written),
		"dir", opts.Dir,
		"format", opts.Format.String(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return paths, nil
}
