package render

import (
	"math"

	"github.com/taigrr/rast/pkg/math3d"
)

// Triangles whose doubled screen-space area falls below this are degenerate.
const degenerateArea = 1e-2

// outside is returned for degenerate triangles; its negative weight makes
// every containment test fail.
var outside = math3d.V3(-1, 1, 1)

// Barycentric returns the weights (alpha, beta, gamma) of p with respect to
// the triangle a, b, c, so that p = alpha*a + beta*b + gamma*c. The weights
// sum to 1. For a degenerate triangle it returns a triple with a negative
// component.
func Barycentric(a, b, c, p math3d.Vec2) math3d.Vec3 {
	s := math3d.V3(c.X-a.X, b.X-a.X, a.X-p.X).Cross(math3d.V3(c.Y-a.Y, b.Y-a.Y, a.Y-p.Y))
	if math.Abs(s.Z) < degenerateArea {
		return outside
	}
	return math3d.V3(1-(s.X+s.Y)/s.Z, s.Y/s.Z, s.X/s.Z)
}

// Barycentric3 is the 3D form of Barycentric. It projects p onto the plane
// of a, b, c and solves with the edge-vector dot products. For coplanar
// inputs it agrees with Barycentric on every containment decision.
func Barycentric3(a, b, c, p math3d.Vec3) math3d.Vec3 {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := p.Sub(a)

	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)

	// d00*d11 - d01² is |v0 × v1|², the squared doubled area
	denom := d00*d11 - d01*d01
	if denom < degenerateArea*degenerateArea {
		return outside
	}
	beta := (d11*d20 - d01*d21) / denom
	gamma := (d00*d21 - d01*d20) / denom
	return math3d.V3(1-beta-gamma, beta, gamma)
}

// inside reports whether all weights are non-negative.
func inside(bc math3d.Vec3) bool {
	return bc.X >= 0 && bc.Y >= 0 && bc.Z >= 0
}
