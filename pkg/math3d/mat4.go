package math3d

import "math"

// Mat4 is a 4x4 matrix stored in column-major order: element (row, col)
// lives at index row+col*4.
//
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation by v.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// ScaleUniform returns a uniform scale by s.
func ScaleUniform(s float64) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = s, s, s
	return m
}

// RotateY returns a rotation of angle radians around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// ModelView builds a view matrix that puts center at the origin and aligns
// the camera's -Z axis with the direction from eye to center.
func ModelView(eye, center, up Vec3) Mat4 {
	z := eye.Sub(center).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x)

	return Mat4{
		x.X, y.X, z.X, 0,
		x.Y, y.Y, z.Y, 0,
		x.Z, y.Z, z.Z, 0,
		-x.Dot(center), -y.Dot(center), -z.Dot(center), 1,
	}
}

// Projection returns the one-parameter perspective matrix w = 1 + coeff*z.
// With coeff = -1/distance, points closer to the eye get a smaller W and
// spread further from the screen centre after the divide.
func Projection(coeff float64) Mat4 {
	m := Identity()
	m[11] = coeff
	return m
}

// Viewport maps normalized device coordinates [-1,1]^3 onto the screen
// rectangle [x, x+w] × [y, y+h] and the depth range [0, depth].
func Viewport(x, y, w, h int, depth float64) Mat4 {
	m := Identity()
	m[0] = float64(w) / 2
	m[5] = float64(h) / 2
	m[10] = depth / 2
	m[12] = float64(x) + float64(w)/2
	m[13] = float64(y) + float64(h)/2
	m[14] = depth / 2
	return m
}

// Mul returns the matrix product a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row+k*4] * b[k+col*4]
			}
			m[row+col*4] = sum
		}
	}
	return m
}

// MulVec4 transforms a homogeneous vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// MulPoint transforms v as a point (w=1) and divides by the resulting W.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return m.MulVec4(Point4(v)).Divide()
}

// MulDir transforms v as a direction (w=0, translation ignored).
func (m Mat4) MulDir(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	return m[row+col*4]
}
