package render

import (
	"slices"

	"github.com/taigrr/rast/pkg/math3d"
)

// BoundingBox returns the inclusive pixel rectangle enclosing t0, t1, t2,
// clamped to [0, clamp.X] × [0, clamp.Y]. X and Y extents are found
// independently. Both corners always lie inside the clamp range; a triangle
// entirely off-screen collapses onto the nearest edge, where the
// barycentric test rejects it.
func BoundingBox(t0, t1, t2, clamp math3d.Point2) (lo, hi math3d.Point2) {
	xs := []int{t0.X, t1.X, t2.X}
	ys := []int{t0.Y, t1.Y, t2.Y}
	slices.Sort(xs)
	slices.Sort(ys)

	lo = math3d.P2(clampInt(xs[0], 0, clamp.X), clampInt(ys[0], 0, clamp.Y))
	hi = math3d.P2(clampInt(xs[2], 0, clamp.X), clampInt(ys[2], 0, clamp.Y))
	return lo, hi
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
