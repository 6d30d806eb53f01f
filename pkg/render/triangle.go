package render

import (
	"fmt"

	"github.com/taigrr/rast/pkg/math3d"
)

// shader computes the color of a fragment that passed the depth test.
type shader func(bc math3d.Vec3) Color

// Triangle fills the screen-space triangle t with a solid color. A pixel is
// written only when the interpolated depth is strictly greater than the
// z-buffer value there; ties keep the earlier fragment.
//
// It panics if len(zbuf) != dst.Width()*dst.Height().
func Triangle(t [3]math3d.Vec3, zbuf ZBuffer, dst Surface, c Color) {
	fill(t, zbuf, dst, func(math3d.Vec3) Color { return c })
}

// TriangleTexture fills the screen-space triangle t with texels from tex.
// UVs are interpolated with the barycentric weights, mirrored to (1,1)-uv,
// and sampled nearest-neighbour at (u*width, v*height). The sampled R, G
// and B channels are multiplied by intensity (saturating at 255); alpha is
// passed through.
//
// It panics if len(zbuf) != dst.Width()*dst.Height() or tex is empty.
func TriangleTexture(t [3]math3d.Vec3, uv [3]math3d.Vec2, zbuf ZBuffer, dst Surface, tex Texels, intensity float64) {
	tw, th := tex.Width(), tex.Height()
	if tw <= 0 || th <= 0 {
		panic(fmt.Sprintf("render: empty texture (%dx%d)", tw, th))
	}

	fill(t, zbuf, dst, func(bc math3d.Vec3) Color {
		st := uv[0].Scale(bc.X).Add(uv[1].Scale(bc.Y)).Add(uv[2].Scale(bc.Z))
		st = math3d.V2(1, 1).Sub(st)

		// u=0 and v=0 land one past the last texel after the flip
		x := clampInt(int(st.X*float64(tw)), 0, tw-1)
		y := clampInt(int(st.Y*float64(th)), 0, th-1)
		return tex.Pixel(x, y).Scale(intensity)
	})
}

// fill walks the clamped bounding box of t, depth-tests every covered pixel
// and writes the shaded color of those that pass.
func fill(t [3]math3d.Vec3, zbuf ZBuffer, dst Surface, shade shader) {
	width, height := dst.Width(), dst.Height()
	if len(zbuf) != width*height {
		panic(fmt.Sprintf("render: z-buffer has %d slots, want %dx%d=%d", len(zbuf), width, height, width*height))
	}
	if width == 0 || height == 0 {
		return
	}

	a, b, c := t[0].XY(), t[1].XY(), t[2].XY()
	lo, hi := BoundingBox(a.Point(), b.Point(), c.Point(), math3d.P2(width-1, height-1))

	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			bc := Barycentric(a, b, c, math3d.V2(float64(x), float64(y)))
			if !inside(bc) {
				continue
			}

			// Interpolate depth
			z := bc.X*t[0].Z + bc.Y*t[1].Z + bc.Z*t[2].Z

			// Z-buffer test
			idx := x + y*width
			if z <= zbuf[idx] {
				continue
			}

			zbuf[idx] = z
			dst.SetPixel(x, y, shade(bc))
		}
	}
}
