// Command backdrop-term animates the hero background in the terminal. Move
// the mouse to steer the particles, press t to toggle the theme and q to quit.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/phanxgames/backdrop"
	"github.com/phanxgames/backdrop/raster"
	"github.com/phanxgames/backdrop/term"
)

func main() {
	dark := flag.Bool("dark", false, "Start in dark mode")
	ss := flag.Int("ss", 2, "Supersampling factor")
	scriptPath := flag.String("script", "", "JSON script to replay")
	exit := flag.Bool("exit", false, "Quit when the script finishes")
	dir := flag.String("dir", "snapshots", "Directory for script snapshot steps")
	debug := flag.Bool("debug", false, "Log lifecycle and frame stats to stderr")
	flag.Parse()

	cfg := backdrop.DefaultConfig()
	cfg.Debug = *debug
	shots := &snapshotWriter{dir: *dir}
	rc := term.RunConfig{
		Dark:         *dark,
		Supersample:  *ss,
		ExitWhenDone: *exit,
		Snapshot:     shots.write,
	}
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: read script: %v\n", err)
			os.Exit(1)
		}
		if rc.Script, err = backdrop.LoadScript(data); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := term.Run(ctx, cfg, rc)
	// The screen is finalized here, so snapshot failures can be printed.
	failed := shots.report(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// snapshotWriter saves script snapshots as PNG files and keeps the errors
// until the terminal has been restored.
type snapshotWriter struct {
	dir  string
	errs []error
}

func (s *snapshotWriter) write(label string, t *term.Target) {
	path := filepath.Join(s.dir, backdrop.SanitizeLabel(label)+".png")
	if err := raster.WriteFile(path, t.Canvas().Image(), raster.FormatPNG); err != nil {
		s.errs = append(s.errs, fmt.Errorf("snapshot %q: %w", label, err))
	}
}

// report prints the collected errors to w and returns how many there were.
func (s *snapshotWriter) report(w io.Writer) int {
	for _, err := range s.errs {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	return len(s.errs)
}
