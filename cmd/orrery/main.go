// Command orrery renders a small solar system on the CPU.
//
// Usage:
//
//	orrery run     [-scene file] [-mesh file] [-scale n] [-hud] [-watch] [-v]
//	orrery render  [-scene file] [-mesh file] [-out dir] [-frames n] ...
//	orrery sphere  [-o file] [-stacks n] [-slices n]
//	orrery scene   [-o file]
//
// run opens a window; render writes a frame sequence without one. sphere
// and scene write a UV sphere mesh and the default scene so a first run
// needs no external assets.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/orrery"
	"github.com/gogpu/orrery/camera"
	"github.com/gogpu/orrery/mesh"
	"github.com/gogpu/orrery/scene"
)

// defaultMesh is used when neither -mesh nor the scene names one.
const defaultMesh = "sphere.obj"

type command struct {
	name  string
	usage string
	run   func(args []string) error
}

var commands = []command{
	{"run", "open a window and animate the scene", runCmd},
	{"render", "render a frame sequence to image files", renderCmd},
	{"sphere", "write a UV sphere mesh as OBJ", sphereCmd},
	{"scene", "write the default scene as YAML", sceneCmd},
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("orrery: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	name := os.Args[1]
	for _, c := range commands {
		if c.name == name {
			if err := c.run(os.Args[2:]); err != nil {
				log.Fatal(err)
			}
			return
		}
	}
	if name == "-h" || name == "-help" || name == "help" {
		usage()
		return
	}
	fmt.Fprintf(os.Stderr, "orrery: unknown command %q\n", name)
	usage()
	os.Exit(2)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: orrery <command> [flags]")
	fmt.Fprintln(os.Stderr)
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-8s %s\n", c.name, c.usage)
	}
}

// sceneFlags are shared by run and render.
type sceneFlags struct {
	scene   string
	mesh    string
	verbose bool
}

func (f *sceneFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.scene, "scene", "", "scene YAML file (default: built-in scene)")
	fs.StringVar(&f.mesh, "mesh", "", "sphere mesh OBJ file (default: scene mesh or "+defaultMesh+")")
	fs.BoolVar(&f.verbose, "v", false, "log per-frame statistics")
}

// setup installs the logger and loads the scene, mesh and camera. A mesh
// that cannot be loaded is an error; nothing is rendered without one.
func (f *sceneFlags) setup() (*scene.Scene, *mesh.Mesh, *camera.Camera, *slog.Logger, error) {
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	orrery.SetLogger(logger)

	sc := scene.Default()
	if f.scene != "" {
		var err error
		if sc, err = scene.Load(f.scene); err != nil {
			return nil, nil, nil, nil, err
		}
	}

	path := f.mesh
	if path == "" {
		path = sc.Mesh
	}
	if path == "" {
		path = defaultMesh
	}
	m, err := mesh.Load(path)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("%w (run \"orrery sphere -o %s\" to create one)", err, path)
	}
	logger.Info("mesh loaded", "path", path, "triangles", m.Triangles())

	cam := camera.New(sc.Camera.Eye, sc.Camera.Center)
	if sc.Camera.Up.Len() > 0 {
		cam.Up = sc.Camera.Up
	}
	return sc, m, cam, logger, nil
}
