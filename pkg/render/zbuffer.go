package render

import "math"

// DepthCleared is the value a cleared z-buffer holds. Any finite depth
// beats it.
const DepthCleared = -math.MaxFloat64

// ZBuffer holds one depth per pixel, row-major, indexed x + y*width.
// Larger values are nearer to the viewer.
type ZBuffer []float64

// NewZBuffer allocates a cleared z-buffer for a width × height surface.
func NewZBuffer(width, height int) ZBuffer {
	z := make(ZBuffer, width*height)
	z.Clear()
	return z
}

// Clear resets every slot to DepthCleared.
func (z ZBuffer) Clear() {
	// Use copy-doubling for faster clearing
	n := len(z)
	if n == 0 {
		return
	}
	z[0] = DepthCleared
	for i := 1; i < n; i *= 2 {
		copy(z[i:], z[:i])
	}
}
