package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/taigrr/rast/internal/config"
	"github.com/taigrr/rast/internal/logger"
	"github.com/taigrr/rast/pkg/imageio"
	"github.com/taigrr/rast/pkg/math3d"
	"github.com/taigrr/rast/pkg/models"
	"github.com/taigrr/rast/pkg/render"
)

// scene is everything a frame needs. It is read-only once loaded, so
// frames can render concurrently.
type scene struct {
	mesh    *models.Mesh
	texture *render.Framebuffer

	width, height int
	format        render.Format
	mode          string
	depthMode     render.DepthMode
	depth         float64
	flip          bool

	color      render.Color
	background render.Color
	light      math3d.Vec3

	eye, center, up math3d.Vec3
}

// loadScene loads the mesh and texture named by cfg and resolves the
// render settings. cfg must already be validated.
func loadScene(cfg *config.Config, log *zap.Logger) (*scene, error) {
	mesh, embedded, err := loadMesh(cfg.Model.Path)
	if err != nil {
		return nil, err
	}
	mesh.NormalizeToUnit()

	sc := &scene{
		mesh:   mesh,
		width:  cfg.Output.Width,
		height: cfg.Output.Height,
		format: render.FormatRGB,
		mode:   cfg.Render.Mode,
		depth:  cfg.Render.Depth,
		flip:   cfg.Output.Flip,
		light:  vec3(cfg.Light.Direction),
		eye:    vec3(cfg.Camera.Eye),
		center: vec3(cfg.Camera.Center),
		up:     vec3(cfg.Camera.Up),
	}
	if cfg.Render.RGBA {
		sc.format = render.FormatRGBA
	}
	if cfg.Model.ZBuffer == config.ZBufferPerGroup {
		sc.depthMode = render.DepthPerGroup
	}

	// Colors were checked by Validate
	c, _ := config.ParseColor(cfg.Render.Color)
	sc.color = render.RGB(c[0], c[1], c[2])
	bg, _ := config.ParseColor(cfg.Render.Background)
	sc.background = render.RGB(bg[0], bg[1], bg[2])

	if sc.mode == config.ModeTextured {
		sc.texture, err = loadTexture(cfg.Model.Texture, embedded, log)
		if err != nil {
			return nil, err
		}
	}
	return sc, nil
}

// loadMesh picks a loader by file extension.
func loadMesh(path string) (*models.Mesh, *render.Framebuffer, error) {
	log := logger.Named("models")

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		loader := models.NewOBJLoader()
		loader.Logger = log
		mesh, err := loader.Load(path)
		if err != nil {
			return nil, nil, fmt.Errorf("load model: %w", err)
		}
		return mesh, nil, nil

	case ".glb", ".gltf":
		loader := models.NewGLTFLoader()
		loader.Logger = log
		mesh, img, err := loader.Load(path)
		if err != nil {
			return nil, nil, fmt.Errorf("load model: %w", err)
		}
		if img == nil {
			return mesh, nil, nil
		}
		return mesh, render.FromImage(img), nil

	default:
		return nil, nil, fmt.Errorf("unsupported model format: %s (use .obj, .glb or .gltf)", ext)
	}
}

// loadTexture prefers an explicit texture file, then the model's embedded
// texture, then a checkerboard.
func loadTexture(path string, embedded *render.Framebuffer, log *zap.Logger) (*render.Framebuffer, error) {
	var tex *render.Framebuffer
	switch {
	case path != "":
		img, err := imageio.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load texture: %w", err)
		}
		tex = render.FromImage(img)
		log.Info("using texture", zap.String("path", path), zap.Int("width", tex.Width()), zap.Int("height", tex.Height()))

	case embedded != nil:
		tex = embedded
		log.Info("using embedded texture", zap.Int("width", tex.Width()), zap.Int("height", tex.Height()))

	default:
		log.Info("no texture, using checkerboard")
		return render.NewChecker(64, 64, 8, render.RGB(200, 200, 200), render.RGB(100, 100, 100)), nil
	}

	// Sampling mirrors u, so mirror the image to map u=0 to its left edge
	tex.FlipHorizontal()
	return tex, nil
}

// render draws one frame with the model turned yaw radians about the Y
// axis. The returned framebuffer is ready to encode.
func (s *scene) render(yaw float64) (*render.Framebuffer, render.Stats) {
	fb := render.NewFramebuffer(s.width, s.height, s.format)
	fb.Clear(s.background)

	cam := render.NewCamera(s.width, s.height)
	cam.LookAt(s.eye, s.center, s.up)
	cam.SetViewport(0, 0, s.width, s.height, s.depth)

	r := render.NewRasterizer(cam, fb)
	r.Light = s.light
	r.DepthMode = s.depthMode

	var mesh render.MeshRenderer = s.mesh
	if yaw != 0 {
		mesh = rotatedMesh{MeshRenderer: s.mesh, m: math3d.RotateY(yaw)}
	}

	switch s.mode {
	case config.ModeWireframe:
		r.DrawMeshWireframe(mesh, s.color)
	case config.ModeFlat:
		r.DrawMeshFlat(mesh, s.color)
	default:
		r.DrawMeshTextured(mesh, s.texture)
	}

	if s.flip {
		fb.FlipVertical()
	}
	return fb, r.Stats
}

// rotatedMesh transforms positions on the fly so frames can share one mesh.
type rotatedMesh struct {
	render.MeshRenderer
	m math3d.Mat4
}

func (r rotatedMesh) Triangle(i int) ([3]math3d.Vec3, [3]math3d.Vec2) {
	pos, uv := r.MeshRenderer.Triangle(i)
	for j := range pos {
		pos[j] = r.m.MulPoint(pos[j])
	}
	return pos, uv
}

func vec3(a [3]float64) math3d.Vec3 {
	return math3d.V3(a[0], a[1], a[2])
}
