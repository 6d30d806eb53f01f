package math3d

// Point2 is an integer pixel coordinate.
type Point2 struct {
	X, Y int
}

// P2 creates a new Point2.
func P2(x, y int) Point2 {
	return Point2{x, y}
}

// Add returns a + b.
func (a Point2) Add(b Point2) Point2 {
	return Point2{a.X + b.X, a.Y + b.Y}
}

// Sub returns a - b.
func (a Point2) Sub(b Point2) Point2 {
	return Point2{a.X - b.X, a.Y - b.Y}
}

// Scale multiplies both components by s.
func (a Point2) Scale(s int) Point2 {
	return Point2{a.X * s, a.Y * s}
}

// Dot returns the dot product a · b.
func (a Point2) Dot(b Point2) int {
	return a.X*b.X + a.Y*b.Y
}

// Vec2 converts to floating point.
func (a Point2) Vec2() Vec2 {
	return Vec2{float64(a.X), float64(a.Y)}
}

// Point3 is an integer 3D coordinate.
type Point3 struct {
	X, Y, Z int
}

// P3 creates a new Point3.
func P3(x, y, z int) Point3 {
	return Point3{x, y, z}
}

// Add returns a + b.
func (a Point3) Add(b Point3) Point3 {
	return Point3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns a - b.
func (a Point3) Sub(b Point3) Point3 {
	return Point3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Scale multiplies every component by s.
func (a Point3) Scale(s int) Point3 {
	return Point3{a.X * s, a.Y * s, a.Z * s}
}

// Dot returns the dot product a · b.
func (a Point3) Dot(b Point3) int {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
func (a Point3) Cross(b Point3) Point3 {
	return Point3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// XY drops the Z component.
func (a Point3) XY() Point2 {
	return Point2{a.X, a.Y}
}

// Vec3 converts to floating point.
func (a Point3) Vec3() Vec3 {
	return Vec3{float64(a.X), float64(a.Y), float64(a.Z)}
}
