package main

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/harmonica"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/rast/internal/config"
	"github.com/taigrr/rast/internal/logger"
	"github.com/taigrr/rast/pkg/imageio"
	"github.com/taigrr/rast/pkg/render"
)

// yawSchedule returns one yaw angle per frame, easing from 0 toward a full
// turn with a damped spring stepped at fps.
func yawSchedule(frames, fps int, frequency, damping float64) []float64 {
	spring := harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)

	yaws := make([]float64, frames)
	var pos, vel float64
	for i := range yaws {
		yaws[i] = pos
		pos, vel = spring.Update(pos, vel, 2*math.Pi)
	}
	return yaws
}

// framePath inserts a zero-padded frame number before the extension:
// out.png becomes out_007.png.
func framePath(path string, i, frames int) string {
	ext := filepath.Ext(path)
	digits := max(3, len(fmt.Sprint(frames-1)))
	return fmt.Sprintf("%s_%0*d%s", strings.TrimSuffix(path, ext), digits, i, ext)
}

// renderTurntable renders and saves every frame, at most cfg.Turntable.Workers
// at a time, and returns the first frame. Each frame owns its framebuffer and
// z-buffer, which is released once the frame is saved.
func renderTurntable(ctx context.Context, sc *scene, cfg *config.Config, format imageio.Format) (*render.Framebuffer, error) {
	tt := cfg.Turntable
	yaws := yawSchedule(tt.Frames, tt.FPS, tt.Frequency, tt.Damping)
	var first *render.Framebuffer

	log := logger.Named("turntable")
	log.Info("rendering turntable", zap.Int("frames", tt.Frames), zap.Int("workers", tt.Workers))
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(tt.Workers)

	for i, yaw := range yaws {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			fb, stats := sc.render(yaw)
			if i == 0 {
				first = fb
			}

			path := framePath(cfg.Output.Path, i, tt.Frames)
			if err := imageio.Save(path, fb.ToImage(), format); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			log.Debug("wrote frame",
				zap.String("path", path),
				zap.Float64("yaw", yaw),
				zap.Int("drawn", stats.FacesDrawn),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info("turntable done", zap.Duration("elapsed", time.Since(start)))
	return first, nil
}
