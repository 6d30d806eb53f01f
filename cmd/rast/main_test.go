package main

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/taigrr/rast/internal/config"
	"github.com/taigrr/rast/pkg/imageio"
	"github.com/taigrr/rast/pkg/math3d"
	"github.com/taigrr/rast/pkg/render"
)

const triangleOBJ = `v -1 -1 0
v 1 -1 0
v 0 1 0
f 1 2 3
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	model := filepath.Join(dir, "tri.obj")
	if err := os.WriteFile(model, []byte(triangleOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Model.Path = model
	cfg.Output.Path = filepath.Join(dir, "out.png")
	cfg.Output.Width = 64
	cfg.Output.Height = 64
	cfg.Render.Mode = config.ModeFlat
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return cfg
}

func nopLogger() *zap.Logger { return zap.NewNop() }

func countColor(fb *render.Framebuffer, c render.Color) int {
	n := 0
	for y := range fb.Height() {
		for x := range fb.Width() {
			if fb.Pixel(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestSceneRenderFlat(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Flip = false

	sc, err := loadScene(cfg, nopLogger())
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}

	fb, stats := sc.render(0)
	if stats.FacesDrawn != 1 {
		t.Errorf("stats = %+v, want 1 face drawn", stats)
	}
	if got := fb.Pixel(32, 32); got != render.ColorWhite {
		t.Errorf("center pixel = %v, want white", got)
	}
	if n := countColor(fb, render.ColorWhite); n < 100 {
		t.Errorf("only %d pixels drawn", n)
	}
}

func TestSceneFlip(t *testing.T) {
	cfg := testConfig(t)

	cfg.Output.Flip = false
	sc, err := loadScene(cfg, nopLogger())
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}
	plain, _ := sc.render(0)

	sc.flip = true
	flipped, _ := sc.render(0)

	plain.FlipVertical()
	for y := range plain.Height() {
		for x := range plain.Width() {
			if plain.Pixel(x, y) != flipped.Pixel(x, y) {
				t.Fatalf("pixel (%d,%d) differs after flip", x, y)
			}
		}
	}
}

func TestSceneModes(t *testing.T) {
	for _, mode := range []string{config.ModeTextured, config.ModeFlat, config.ModeWireframe} {
		t.Run(mode, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Render.Mode = mode

			sc, err := loadScene(cfg, nopLogger())
			if err != nil {
				t.Fatalf("loadScene: %v", err)
			}
			if mode == config.ModeTextured && sc.texture == nil {
				t.Fatal("textured scene has no texture")
			}

			fb, _ := sc.render(0)
			if n := countColor(fb, render.ColorBlack); n == fb.Width()*fb.Height() {
				t.Error("frame is empty")
			}
		})
	}
}

func TestLoadSceneErrors(t *testing.T) {
	cfg := testConfig(t)
	cfg.Model.Path = filepath.Join(t.TempDir(), "model.stl")
	if _, err := loadScene(cfg, nopLogger()); err == nil {
		t.Error("expected error for unsupported model format")
	}

	cfg = testConfig(t)
	cfg.Render.Mode = config.ModeTextured
	cfg.Model.Texture = filepath.Join(t.TempDir(), "missing.png")
	if _, err := loadScene(cfg, nopLogger()); err == nil {
		t.Error("expected error for missing texture")
	}
}

func TestRotatedMesh(t *testing.T) {
	cfg := testConfig(t)
	sc, err := loadScene(cfg, nopLogger())
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}

	rm := rotatedMesh{MeshRenderer: sc.mesh, m: math3d.RotateY(math.Pi)}
	orig, _ := sc.mesh.Triangle(0)
	rot, _ := rm.Triangle(0)

	// Half a turn about Y negates X and Z
	for i := range 3 {
		if math.Abs(rot[i].X+orig[i].X) > 1e-9 || math.Abs(rot[i].Y-orig[i].Y) > 1e-9 {
			t.Errorf("vertex %d: %v rotated to %v", i, orig[i], rot[i])
		}
	}

	// Turned away from the light, so the face is culled
	_, stats := sc.render(math.Pi)
	if stats.FacesCulled != 1 {
		t.Errorf("stats = %+v, want the face culled", stats)
	}
}

func TestYawSchedule(t *testing.T) {
	yaws := yawSchedule(96, 24, 4.0, 1.0)

	if yaws[0] != 0 {
		t.Errorf("first yaw = %v, want 0", yaws[0])
	}
	for i := 1; i < len(yaws); i++ {
		if yaws[i] < yaws[i-1] {
			t.Fatalf("yaw decreased at frame %d: %v < %v", i, yaws[i], yaws[i-1])
		}
	}
	if last := yaws[len(yaws)-1]; math.Abs(last-2*math.Pi) > 0.01 {
		t.Errorf("last yaw = %v, want close to a full turn", last)
	}
}

func TestFramePath(t *testing.T) {
	tests := []struct {
		path      string
		i, frames int
		want      string
	}{
		{"out.png", 7, 36, "out_007.png"},
		{"frames/spin.tga", 0, 1, "frames/spin_000.tga"},
		{"big.bmp", 42, 5000, "big_0042.bmp"},
	}
	for _, tc := range tests {
		if got := framePath(tc.path, tc.i, tc.frames); got != tc.want {
			t.Errorf("framePath(%q, %d, %d) = %q, want %q", tc.path, tc.i, tc.frames, got, tc.want)
		}
	}
}

func TestPreviewSize(t *testing.T) {
	tests := []struct {
		w, h, cols, rows int
		wantW, wantH     int
	}{
		{40, 40, 80, 24, 40, 40},
		{800, 800, 80, 24, 48, 48},
		{800, 400, 80, 50, 80, 40},
	}
	for _, tc := range tests {
		w, h := previewSize(tc.w, tc.h, tc.cols, tc.rows)
		if w != tc.wantW || h != tc.wantH {
			t.Errorf("previewSize(%d,%d,%d,%d) = %dx%d, want %dx%d",
				tc.w, tc.h, tc.cols, tc.rows, w, h, tc.wantW, tc.wantH)
		}
	}
}

func TestRenderTurntable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Turntable.Frames = 4
	cfg.Turntable.Workers = 2

	sc, err := loadScene(cfg, nopLogger())
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}

	first, err := renderTurntable(context.Background(), sc, cfg, imageio.PNG)
	if err != nil {
		t.Fatalf("renderTurntable: %v", err)
	}
	for i := range 4 {
		path := framePath(cfg.Output.Path, i, 4)
		if _, err := imageio.Load(path); err != nil {
			t.Errorf("frame %d: %v", i, err)
		}
	}

	// Only the first frame is returned; it is the unrotated view
	if first == nil {
		t.Fatal("first frame is nil")
	}
	want, _ := sc.render(0)
	for y := range want.Height() {
		for x := range want.Width() {
			if got, w := first.Pixel(x, y), want.Pixel(x, y); got != w {
				t.Fatalf("first frame pixel (%d,%d) = %v, want %v", x, y, got, w)
			}
		}
	}
}

func TestRenderTurntableCancelled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Turntable.Frames = 8
	cfg.Turntable.Workers = 1

	sc, err := loadScene(cfg, nopLogger())
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderTurntable(ctx, sc, cfg, imageio.PNG); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestOutputFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Path = "frame.tga"
	if f, err := outputFormat(cfg); err != nil || f != imageio.TGA {
		t.Errorf("got %q, %v", f, err)
	}

	cfg.Output.Format = "bmp"
	if f, err := outputFormat(cfg); err != nil || f != imageio.BMP {
		t.Errorf("got %q, %v", f, err)
	}
}
