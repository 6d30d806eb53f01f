package render

import (
	"github.com/taigrr/rast/pkg/math3d"
)

// Camera projects world-space points to screen space. The screen origin is
// the bottom-left pixel and depth grows toward the viewer. Eye must differ
// from Center and must not be parallel to Up.
type Camera struct {
	Eye    math3d.Vec3 // Camera position
	Center math3d.Vec3 // Point the camera looks at
	Up     math3d.Vec3 // Approximate up direction

	// Viewport rectangle in pixels and depth range
	X, Y, Width, Height int
	Depth               float64

	// Cached transform (computed on demand)
	matrix math3d.Mat4
	dirty  bool
}

// NewCamera creates a camera at (0,0,3) looking at the origin, with a
// viewport covering a width × height surface and depth range [0, 255].
func NewCamera(width, height int) *Camera {
	return &Camera{
		Eye:    math3d.V3(0, 0, 3),
		Center: math3d.V3(0, 0, 0),
		Up:     math3d.V3(0, 1, 0),
		Width:  width,
		Height: height,
		Depth:  255,
		dirty:  true,
	}
}

// LookAt sets the eye, target and up vector.
func (c *Camera) LookAt(eye, center, up math3d.Vec3) {
	c.Eye = eye
	c.Center = center
	c.Up = up
	c.dirty = true
}

// SetViewport sets the screen rectangle and depth range.
func (c *Camera) SetViewport(x, y, width, height int, depth float64) {
	c.X, c.Y = x, y
	c.Width, c.Height = width, height
	c.Depth = depth
	c.dirty = true
}

// Matrix returns Viewport * Projection * ModelView.
func (c *Camera) Matrix() math3d.Mat4 {
	if c.dirty {
		c.computeMatrix()
		c.dirty = false
	}
	return c.matrix
}

func (c *Camera) computeMatrix() {
	mv := math3d.ModelView(c.Eye, c.Center, c.Up)

	proj := math3d.Projection(-1 / c.Eye.Sub(c.Center).Len())
	vp := math3d.Viewport(c.X, c.Y, c.Width, c.Height, c.Depth)

	c.matrix = vp.Mul(proj).Mul(mv)
}

// Project transforms a world-space point to screen coordinates.
func (c *Camera) Project(v math3d.Vec3) math3d.Vec3 {
	return c.Matrix().MulPoint(v)
}

// ProjectTriangle projects all three vertices.
func (c *Camera) ProjectTriangle(t [3]math3d.Vec3) [3]math3d.Vec3 {
	m := c.Matrix()
	return [3]math3d.Vec3{m.MulPoint(t[0]), m.MulPoint(t[1]), m.MulPoint(t[2])}
}
