// Package shading computes per-face lighting for a single directional light.
package shading

import (
	"math"

	"github.com/taigrr/rast/pkg/math3d"
)

// DefaultLight points from the viewer into the screen.
var DefaultLight = math3d.V3(0, 0, -1)

// FaceNormal returns the unit normal of the triangle v0, v1, v2, oriented
// so that a counter-clockwise face seen from +Z points toward -Z, the
// direction DefaultLight travels. Degenerate faces yield NaN components.
func FaceNormal(v0, v1, v2 math3d.Vec3) math3d.Vec3 {
	return v2.Sub(v0).Cross(v1.Sub(v0)).Normalize()
}

// Intensity returns the Lambert term n · light for a unit normal and a
// unit light direction. Values at or below zero mean the face is turned
// away from the light.
func Intensity(normal, light math3d.Vec3) float64 {
	return normal.Dot(light)
}

// FaceIntensity combines FaceNormal and Intensity. The light direction is
// normalized here; NaN results (degenerate faces) come back as 0.
func FaceIntensity(t [3]math3d.Vec3, light math3d.Vec3) float64 {
	i := Intensity(FaceNormal(t[0], t[1], t[2]), light.Normalize())
	if math.IsNaN(i) {
		return 0
	}
	return i
}
