package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/pixelplatformer/config"
	"github.com/milk9111/pixelplatformer/level"
	"github.com/milk9111/pixelplatformer/preview"
	"github.com/milk9111/pixelplatformer/sim"
)

const usage = `usage: leveltool <command> [flags] <files>

commands:
  validate    check level files and print warnings
  thumb       write a PNG preview of a level
  import-tmx  convert a Tiled map to level JSON
  simulate    play a level headless with scripted input
`

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "validate":
		err = runValidate(args)
	case "thumb":
		err = runThumb(args)
	case "import-tmx":
		err = runImportTMX(args)
	case "simulate":
		err = runSimulate(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	strict := fs.Bool("strict", false, "treat warnings as failures")
	fs.Parse(args)

	failed := 0
	for _, p := range fs.Args() {
		l, err := level.LoadFile(p)
		if err != nil {
			fmt.Printf("%s: %v\n", p, err)
			failed++
			continue
		}
		warnings := level.Validate(l)
		for _, w := range warnings {
			fmt.Printf("%s: %s\n", p, w)
		}
		if len(warnings) == 0 {
			fmt.Printf("%s: ok (%dx%d)\n", p, l.Grid.Width(), l.Grid.Height())
		} else if *strict {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("leveltool: %d of %d files failed", failed, fs.NArg())
	}
	return nil
}

func runThumb(args []string) error {
	fs := flag.NewFlagSet("thumb", flag.ExitOnError)
	out := fs.String("o", "", "output PNG (default <level>.png)")
	cell := fs.Int("cell", preview.DefaultOptions.Cell, "pixels per tile")
	lines := fs.Bool("grid", false, "draw grid lines")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("leveltool: thumb takes one level file")
	}

	p := fs.Arg(0)
	l, err := level.LoadFile(p)
	if err != nil {
		return err
	}
	dst := *out
	if dst == "" {
		dst = strings.TrimSuffix(p, filepath.Ext(p)) + ".png"
	}
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := preview.WritePNG(f, l, preview.Options{Cell: *cell, GridLines: *lines}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %s", dst)
	return nil
}

func runImportTMX(args []string) error {
	fs := flag.NewFlagSet("import-tmx", flag.ExitOnError)
	out := fs.String("o", "", "output JSON (default <map>.json)")
	name := fs.String("name", "", "level name (default the map file name)")
	order := fs.Int("order", 0, "level order")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("leveltool: import-tmx takes one .tmx file")
	}

	p := fs.Arg(0)
	l, err := level.LoadTMX(os.DirFS(filepath.Dir(p)), filepath.Base(p))
	if err != nil {
		return err
	}
	if *name != "" {
		l.Name = *name
	}
	l.Order = *order
	for _, w := range level.Validate(l) {
		log.Printf("%s: %s", p, w)
	}
	b, err := level.Encode(l)
	if err != nil {
		return err
	}
	dst := *out
	if dst == "" {
		dst = strings.TrimSuffix(p, filepath.Ext(p)) + ".json"
	}
	if err := os.WriteFile(dst, b, 0o644); err != nil {
		return err
	}
	log.Printf("wrote %s", dst)
	return nil
}

func runSimulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	script := fs.String("script", "right*600", "input script, e.g. \"right*60 right+jump*10 idle*30\"")
	tuningPath := fs.String("tuning", "", "tuning YAML (default built-in)")
	seed := fs.Int64("seed", 1, "particle seed")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("leveltool: simulate takes one level file")
	}

	l, err := level.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	steps, err := sim.ParseScript(*script)
	if err != nil {
		return err
	}
	tuning, err := config.LoadTuning(*tuningPath)
	if err != nil {
		return err
	}
	res, err := sim.Run([]level.Level{l}, steps, sim.Options{Tuning: tuning, Seed: *seed})
	if err != nil {
		return err
	}

	fmt.Printf("frames:    %d\n", res.Frames)
	fmt.Printf("state:     %s\n", res.State)
	fmt.Printf("deaths:    %d\n", res.Deaths)
	fmt.Printf("position:  (%.1f, %.1f)\n", res.X, res.Y)
	if res.Completed {
		fmt.Printf("completed: %.2fs\n", res.Seconds)
	}
	return nil
}
