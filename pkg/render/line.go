package render

import "github.com/taigrr/rast/pkg/math3d"

// Line draws the 8-connected approximation of the segment from p0 to p1
// using integer Bresenham stepping along the major axis. Iteration always
// runs from the lower to the higher major-axis coordinate, so Line(a, b) and
// Line(b, a) set the same pixels. The pixel at the far end of the major axis
// is not drawn. No clipping is performed.
func Line(p0, p1 math3d.Point2, dst Surface, c Color) {
	x0, y0, x1, y1 := p0.X, p0.Y, p1.X, p1.Y

	// Walk the longer axis
	steep := false
	if abs(x0-x1) < abs(y0-y1) {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
		steep = true
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	derror2 := abs(y1-y0) * 2
	ystep := 1
	if y1 < y0 {
		ystep = -1
	}

	error2 := 0
	y := y0
	for x := x0; x < x1; x++ {
		if steep {
			dst.SetPixel(y, x, c)
		} else {
			dst.SetPixel(x, y, c)
		}
		error2 += derror2
		if error2 > dx {
			y += ystep
			error2 -= dx * 2
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
