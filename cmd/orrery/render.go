package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/gogpu/orrery"
	"github.com/gogpu/orrery/export"
)

func renderCmd(args []string) error {
	var sf sceneFlags
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	sf.register(fs)
	var (
		out     = fs.String("out", "frames", "output directory")
		frames  = fs.Int("frames", 60, "number of frames")
		start   = fs.Uint64("start", 0, "first frame number")
		step    = fs.Uint64("step", 1, "frames between images")
		format  = fs.String("format", "png", "image format: png or jpeg")
		quality = fs.Int("quality", 90, "JPEG quality")
		scale   = fs.Int("scale", 1, "integer upscale factor")
		smooth  = fs.Bool("smooth", false, "linear instead of nearest-neighbor upscaling")
		workers = fs.Int("workers", 0, "encoder goroutines (0: one per CPU)")
		quiet   = fs.Bool("q", false, "hide the progress bar")
	)
	_ = fs.Parse(args)

	f, err := export.ParseFormat(*format)
	if err != nil {
		return err
	}
	sc, m, cam, logger, err := sf.setup()
	if err != nil {
		return err
	}
	r, err := orrery.NewRenderer(sc.Width, sc.Height, orrery.SceneOptions(sc)...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err = export.Run(ctx, r, sc, m, cam, export.Options{
		Dir:      *out,
		Frames:   *frames,
		Start:    *start,
		Step:     *step,
		Scale:    *scale,
		Smooth:   *smooth,
		Format:   f,
		Quality:  *quality,
		Workers:  *workers,
		Progress: !*quiet,
		Logger:   logger,
	})
	return err
}
