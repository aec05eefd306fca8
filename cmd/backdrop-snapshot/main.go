// Command backdrop-snapshot renders the hero background offline to a WebP or
// PNG image, optionally replaying a JSON script first.
//
//	backdrop-snapshot -width 1280 -height 720 -dark -time 4 -out hero.webp
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phanxgames/backdrop"
	"github.com/phanxgames/backdrop/raster"
)

type options struct {
	width, height float64
	ratio         float64
	dark          bool
	seconds       float64
	fps           float64
	seed          uint64
	noFade        bool
	supersample   int
	script        string
	out           string
	format        string
	dir           string
}

func main() {
	var o options
	flag.Float64Var(&o.width, "width", 1280, "Viewport width in CSS pixels")
	flag.Float64Var(&o.height, "height", 720, "Viewport height in CSS pixels")
	flag.Float64Var(&o.ratio, "ratio", 1, "Device pixel ratio (capped at 2)")
	flag.BoolVar(&o.dark, "dark", false, "Render the dark theme")
	flag.Float64Var(&o.seconds, "time", 3, "Simulated seconds before the final capture")
	flag.Float64Var(&o.fps, "fps", 60, "Simulated frames per second")
	flag.Uint64Var(&o.seed, "seed", 1, "Particle seed (0 = random)")
	flag.BoolVar(&o.noFade, "no-fade", false, "Disable the intro fade")
	flag.IntVar(&o.supersample, "ss", 2, "Supersampling factor")
	flag.StringVar(&o.script, "script", "", "JSON script to replay")
	flag.StringVar(&o.out, "out", "hero.webp", "Output image")
	flag.StringVar(&o.format, "format", "", "Image format: webp or png (default: from -out)")
	flag.StringVar(&o.dir, "dir", "snapshots", "Directory for script snapshot steps")
	flag.Parse()

	if err := run(o); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(o options) error {
	name := o.format
	if name == "" {
		name = filepath.Ext(o.out)
	}
	format, err := raster.ParseFormat(name)
	if err != nil {
		return err
	}
	if o.fps <= 0 {
		return fmt.Errorf("fps must be positive, got %v", o.fps)
	}

	var script *backdrop.Script
	if o.script != "" {
		data, err := os.ReadFile(o.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		if script, err = backdrop.LoadScript(data); err != nil {
			return err
		}
	}

	cfg := backdrop.DefaultConfig()
	cfg.Seed = o.seed
	if o.noFade {
		cfg.FadeIn = 0
	}
	vp := backdrop.Viewport{Width: o.width, Height: o.height, PixelRatio: o.ratio}
	h, err := raster.NewHeadless(cfg, vp, o.dark, o.supersample)
	if err != nil {
		return err
	}
	defer h.Close()

	var pending []string
	targets := h.Targets(func(label string) { pending = append(pending, label) })
	dt := 1 / o.fps
	frames := int(o.seconds * o.fps)
	for i := 0; i < frames || (script != nil && !script.Done()); i++ {
		if script != nil && !script.Done() {
			script.Step(targets)
		}
		h.Step(dt)
		for _, label := range pending {
			path := filepath.Join(o.dir, fmt.Sprintf("%05d_%s.%s", i, backdrop.SanitizeLabel(label), format))
			if err := h.Capture(path, format); err != nil {
				return fmt.Errorf("snapshot %q: %w", label, err)
			}
			fmt.Printf("snapshot: %s\n", path)
		}
		pending = pending[:0]
	}

	if err := h.Capture(o.out, format); err != nil {
		return err
	}
	w, hh := h.Engine.Binding().PixelSize()
	fmt.Printf("wrote %s (%dx%d, %d frames)\n", o.out, w, hh, h.Engine.Ticks())
	return nil
}
