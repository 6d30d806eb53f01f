package render

import (
	"github.com/taigrr/rast/pkg/math3d"
	"github.com/taigrr/rast/pkg/shading"
)

// MeshRenderer is the view of a mesh the rasterizer needs. It is satisfied
// by models.Mesh and keeps this package free of the loaders.
type MeshRenderer interface {
	TriangleCount() int
	// Triangle returns the world-space positions and texture coordinates
	// of face i. UVs are zero when the mesh has none.
	Triangle(i int) (pos [3]math3d.Vec3, uv [3]math3d.Vec2)
	// Group returns the surface group face i belongs to.
	Group(i int) int
	HasUV() bool
}

// DepthMode selects how the z-buffer is shared across a mesh.
type DepthMode int

const (
	DepthShared   DepthMode = iota // One z-buffer for the whole pass
	DepthPerGroup                  // Reset the z-buffer when the surface group changes
)

// Stats counts faces handled by the mesh passes.
type Stats struct {
	FacesDrawn  int // Faces handed to a fill routine
	FacesCulled int // Faces turned away from the light
}

// Rasterizer drives the fill routines over whole meshes against one
// framebuffer and one z-buffer. It is not safe for concurrent use.
type Rasterizer struct {
	camera    *Camera
	fb        Surface
	zbuffer   ZBuffer
	Light     math3d.Vec3 // Direction the light travels
	DepthMode DepthMode
	Stats     Stats
}

// NewRasterizer creates a rasterizer with a cleared z-buffer sized to fb.
func NewRasterizer(camera *Camera, fb Surface) *Rasterizer {
	return &Rasterizer{
		camera:  camera,
		fb:      fb,
		zbuffer: NewZBuffer(fb.Width(), fb.Height()),
		Light:   shading.DefaultLight,
	}
}

// Camera returns the camera used to project meshes.
func (r *Rasterizer) Camera() *Camera {
	return r.camera
}

// ZBuffer exposes the depth buffer.
func (r *Rasterizer) ZBuffer() ZBuffer {
	return r.zbuffer
}

// ClearDepth clears the z-buffer (call before each frame).
func (r *Rasterizer) ClearDepth() {
	r.zbuffer.Clear()
}

// ResetStats zeroes the face counters.
func (r *Rasterizer) ResetStats() {
	r.Stats = Stats{}
}

// DrawTriangle fills a screen-space triangle with a solid color.
func (r *Rasterizer) DrawTriangle(t [3]math3d.Vec3, c Color) {
	Triangle(t, r.zbuffer, r.fb, c)
}

// DrawTriangleTextured fills a screen-space triangle from a texture.
func (r *Rasterizer) DrawTriangleTextured(t [3]math3d.Vec3, uv [3]math3d.Vec2, tex Texels, intensity float64) {
	TriangleTexture(t, uv, r.zbuffer, r.fb, tex, intensity)
}

// DrawMeshFlat renders every face lit toward the camera in color scaled by
// its face intensity.
func (r *Rasterizer) DrawMeshFlat(mesh MeshRenderer, color Color) {
	r.eachLitFace(mesh, func(screen [3]math3d.Vec3, _ [3]math3d.Vec2, intensity float64) {
		r.DrawTriangle(screen, color.Scale(intensity))
	})
}

// DrawMeshTextured renders every lit face with texture mapping. Meshes
// without UVs fall back to flat white.
func (r *Rasterizer) DrawMeshTextured(mesh MeshRenderer, tex Texels) {
	if !mesh.HasUV() {
		r.DrawMeshFlat(mesh, ColorWhite)
		return
	}
	r.eachLitFace(mesh, func(screen [3]math3d.Vec3, uv [3]math3d.Vec2, intensity float64) {
		r.DrawTriangleTextured(screen, uv, tex, intensity)
	})
}

// eachLitFace projects each face, computes its intensity from world-space
// geometry and calls draw for faces turned toward the light.
func (r *Rasterizer) eachLitFace(mesh MeshRenderer, draw func(screen [3]math3d.Vec3, uv [3]math3d.Vec2, intensity float64)) {
	group := -1
	for i := range mesh.TriangleCount() {
		if r.DepthMode == DepthPerGroup {
			if g := mesh.Group(i); g != group {
				r.ClearDepth()
				group = g
			}
		}

		world, uv := mesh.Triangle(i)
		intensity := shading.FaceIntensity(world, r.Light)
		if intensity <= 0 {
			r.Stats.FacesCulled++
			continue
		}

		r.Stats.FacesDrawn++
		draw(r.camera.ProjectTriangle(world), uv, intensity)
	}
}
