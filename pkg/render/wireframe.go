package render

import (
	"github.com/taigrr/rast/pkg/math3d"
)

// DrawLine draws a 2D segment in screen space.
func (r *Rasterizer) DrawLine(p0, p1 math3d.Point2, c Color) {
	Line(p0, p1, r.fb, c)
}

// DrawMeshWireframe projects every face and draws its three edges. Depth
// and lighting are ignored.
func (r *Rasterizer) DrawMeshWireframe(mesh MeshRenderer, c Color) {
	for i := range mesh.TriangleCount() {
		world, _ := mesh.Triangle(i)
		screen := r.camera.ProjectTriangle(world)

		for j := range 3 {
			a := screen[j].XY().Point()
			b := screen[(j+1)%3].XY().Point()
			r.DrawLine(a, b, c)
		}
		r.Stats.FacesDrawn++
	}
}
