// rast - offline software rasterizer
// Renders OBJ and GLB models to image files with flat, textured or
// wireframe shading, optionally as a turntable animation.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/taigrr/rast/internal/config"
	"github.com/taigrr/rast/internal/logger"
	"github.com/taigrr/rast/pkg/imageio"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rast - offline software rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: rast [options] <model.obj|model.glb>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Model.Path == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("render failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if path := config.SaveConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		logger.Info("saved config", zap.String("path", path))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	start := time.Now()
	sc, err := loadScene(cfg, logger.Named("scene"))
	if err != nil {
		return err
	}
	logger.Info("loaded model",
		zap.String("model", filepath.Base(cfg.Model.Path)),
		zap.Int("vertices", sc.mesh.VertexCount()),
		zap.Int("triangles", sc.mesh.TriangleCount()),
		zap.Int("groups", len(sc.mesh.Groups)),
		zap.Duration("elapsed", time.Since(start)),
	)

	format, err := outputFormat(cfg)
	if err != nil {
		return err
	}

	if cfg.Turntable.Frames > 0 {
		first, err := renderTurntable(ctx, sc, cfg, format)
		if err != nil {
			return err
		}
		if cfg.Preview {
			return preview(ctx, first)
		}
		return nil
	}

	start = time.Now()
	frame, stats := sc.render(0)
	logger.Info("rendered frame",
		zap.Int("drawn", stats.FacesDrawn),
		zap.Int("culled", stats.FacesCulled),
		zap.Duration("elapsed", time.Since(start)),
	)

	if err := imageio.Save(cfg.Output.Path, frame.ToImage(), format); err != nil {
		return fmt.Errorf("save frame: %w", err)
	}
	logger.Info("wrote image", zap.String("path", cfg.Output.Path))

	if cfg.Preview {
		return preview(ctx, frame)
	}
	return nil
}

// outputFormat resolves the configured format, falling back to the output
// file extension.
func outputFormat(cfg *config.Config) (imageio.Format, error) {
	if cfg.Output.Format != "" {
		return imageio.ParseFormat(cfg.Output.Format)
	}
	return imageio.FormatFromPath(cfg.Output.Path)
}
