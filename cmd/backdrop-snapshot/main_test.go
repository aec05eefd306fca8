package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/phanxgames/backdrop/raster"
)

func testOptions(t *testing.T) options {
	dir := t.TempDir()
	return options{
		width: 64, height: 36, ratio: 1,
		seconds: 0.5, fps: 30, seed: 1, supersample: 1,
		out: filepath.Join(dir, "hero.png"),
		dir: filepath.Join(dir, "shots"),
	}
}

func TestRunWritesImage(t *testing.T) {
	o := testOptions(t)
	if err := run(o); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(o.out); err != nil {
		t.Fatal(err)
	}
}

func TestRunScriptSnapshots(t *testing.T) {
	o := testOptions(t)
	o.seconds = 0
	o.format = "webp"
	o.out = filepath.Join(filepath.Dir(o.out), "hero.webp")
	o.script = filepath.Join(t.TempDir(), "script.json")
	script := `{"steps": [
		{"action": "theme", "dark": true},
		{"action": "snapshot", "label": "dark mode"},
		{"action": "wait", "frames": 2},
		{"action": "snapshot", "label": "later"}
	]}`
	if err := os.WriteFile(o.script, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run(o); err != nil {
		t.Fatal(err)
	}
	shots, err := filepath.Glob(filepath.Join(o.dir, "*.webp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(shots) != 2 {
		t.Errorf("snapshots = %v, want 2", shots)
	}
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	o := testOptions(t)
	o.out = filepath.Join(t.TempDir(), "hero.gif")
	if err := run(o); !errors.Is(err, raster.ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}
