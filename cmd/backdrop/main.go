// Command backdrop opens a window with the hero background. Press T to toggle
// the theme and Esc to quit.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/phanxgames/backdrop"
	"github.com/phanxgames/backdrop/window"
)

func main() {
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	dark := flag.Bool("dark", false, "Start in dark mode")
	fps := flag.Bool("fps", false, "Show the FPS overlay")
	debug := flag.Bool("debug", false, "Log lifecycle and frame stats to stderr")
	scriptPath := flag.String("script", "", "JSON script to replay")
	exit := flag.Bool("exit", false, "Close the window when the script finishes")
	shots := flag.String("screenshots", "screenshots", "Directory for script snapshot steps")
	flag.Parse()

	cfg := backdrop.DefaultConfig()
	cfg.Debug = *debug
	rc := window.RunConfig{
		Title:         "backdrop",
		Width:         *width,
		Height:        *height,
		Dark:          *dark,
		ShowFPS:       *fps,
		ExitWhenDone:  *exit,
		ScreenshotDir: *shots,
	}
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("read script: %v", err)
		}
		if rc.Script, err = backdrop.LoadScript(data); err != nil {
			log.Fatal(err)
		}
	}
	if err := window.Run(cfg, rc); err != nil {
		log.Fatal(err)
	}
}
