package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/orrery/mesh"
	"github.com/gogpu/orrery/scene"
)

func sphereCmd(args []string) error {
	fs := flag.NewFlagSet("sphere", flag.ExitOnError)
	out := fs.String("o", defaultMesh, "output file (- for stdout)")
	stacks := fs.Int("stacks", 24, "latitude divisions")
	slices := fs.Int("slices", 48, "longitude divisions")
	_ = fs.Parse(args)

	return writeTo(*out, func(w io.Writer) error {
		return mesh.Sphere(*stacks, *slices).WriteOBJ(w)
	})
}

func sceneCmd(args []string) error {
	fs := flag.NewFlagSet("scene", flag.ExitOnError)
	out := fs.String("o", "-", "output file (- for stdout)")
	_ = fs.Parse(args)

	data, err := scene.Default().Marshal()
	if err != nil {
		return err
	}
	return writeTo(*out, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func writeTo(path string, fn func(io.Writer) error) error {
	if path == "-" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path) //nolint:gosec // user-chosen output path
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := fn(w); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
