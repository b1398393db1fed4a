package main

import (
	"context"
	"errors"
	"flag"

	"github.com/gogpu/orrery"
	"github.com/gogpu/orrery/hud"
	"github.com/gogpu/orrery/internal/present"
	"github.com/gogpu/orrery/scene"
)

func runCmd(args []string) error {
	var sf sceneFlags
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	sf.register(fs)
	scale := fs.Int("scale", 1, "window scale factor")
	showHUD := fs.Bool("hud", false, "show the statistics overlay (toggle with H)")
	watch := fs.Bool("watch", false, "reload the scene file when it changes")
	shots := fs.String("screenshots", ".", "directory for screenshots taken with P")
	_ = fs.Parse(args)

	sc, m, cam, logger, err := sf.setup()
	if err != nil {
		return err
	}

	r, err := orrery.NewRenderer(sc.Width, sc.Height, orrery.SceneOptions(sc)...)
	if err != nil {
		return err
	}
	overlay, err := hud.New(hud.DefaultSize)
	if err != nil {
		return err
	}
	defer func() { _ = overlay.Close() }()

	v := present.New(r, sc, m, cam, overlay, present.Config{
		Title:         "orrery",
		Scale:         *scale,
		ScreenshotDir: *shots,
		HUD:           *showHUD,
		Logger:        logger,
	})

	if *watch {
		if sf.scene == "" {
			return errors.New("-watch needs -scene")
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := scene.Watch(ctx, sf.scene, logger, v.Reload); err != nil {
				logger.Warn("scene watcher stopped", "err", err)
			}
		}()
	}

	return v.Run()
}
