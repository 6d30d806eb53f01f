package render

import (
	"math"
	"math/rand"
	"testing"

	"github.com/taigrr/rast/pkg/math3d"
)

const tolerance = 1e-4

func nearVec3(a, b math3d.Vec3) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func randomVec2(rng *rand.Rand) math3d.Vec2 {
	return math3d.V2(rng.Float64()*200-50, rng.Float64()*200-50)
}

func doubledArea(a, b, c math3d.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}

func TestBarycentric(t *testing.T) {
	a := math3d.V2(0, 0)
	b := math3d.V2(1, 0)
	c := math3d.V2(0, 1)

	tests := []struct {
		name     string
		p        math3d.Vec2
		expected math3d.Vec3
	}{
		{"vertex 0", a, math3d.V3(1, 0, 0)},
		{"vertex 1", b, math3d.V3(0, 1, 0)},
		{"vertex 2", c, math3d.V3(0, 0, 1)},
		{"centroid", math3d.V2(1.0/3, 1.0/3), math3d.V3(1.0/3, 1.0/3, 1.0/3)},
		{"edge midpoint", math3d.V2(0.5, 0), math3d.V3(0.5, 0.5, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bc := Barycentric(a, b, c, tc.p)
			if !nearVec3(bc, tc.expected) {
				t.Errorf("Barycentric(%v) = %v, want %v", tc.p, bc, tc.expected)
			}
		})
	}

	t.Run("outside triangle", func(t *testing.T) {
		bc := Barycentric(a, b, c, math3d.V2(-1, -1))
		if inside(bc) {
			t.Errorf("point outside triangle got weights %v", bc)
		}
	})
}

func TestBarycentricPartitionOfUnity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for range 1000 {
		a, b, c := randomVec2(rng), randomVec2(rng), randomVec2(rng)
		if math.Abs(doubledArea(a, b, c)) < 1 {
			continue
		}
		p := randomVec2(rng)

		bc := Barycentric(a, b, c, p)
		if sum := bc.X + bc.Y + bc.Z; math.Abs(sum-1) > tolerance {
			t.Fatalf("weights %v for %v in (%v,%v,%v) sum to %v", bc, p, a, b, c, sum)
		}

		// The weights reconstruct the query point
		q := a.Scale(bc.X).Add(b.Scale(bc.Y)).Add(c.Scale(bc.Z))
		if math.Abs(q.X-p.X) > 1e-6 || math.Abs(q.Y-p.Y) > 1e-6 {
			t.Fatalf("weights %v reconstruct %v, want %v", bc, q, p)
		}
	}
}

func TestBarycentricVerticesAndCentroid(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for range 200 {
		v := [3]math3d.Vec2{randomVec2(rng), randomVec2(rng), randomVec2(rng)}
		if math.Abs(doubledArea(v[0], v[1], v[2])) < 1 {
			continue
		}

		units := [3]math3d.Vec3{math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1)}
		for i := range 3 {
			if bc := Barycentric(v[0], v[1], v[2], v[i]); !nearVec3(bc, units[i]) {
				t.Fatalf("vertex %d of %v: weights %v, want %v", i, v, bc, units[i])
			}
		}

		centroid := v[0].Add(v[1]).Add(v[2]).Scale(1.0 / 3)
		third := math3d.V3(1.0/3, 1.0/3, 1.0/3)
		if bc := Barycentric(v[0], v[1], v[2], centroid); !nearVec3(bc, third) {
			t.Fatalf("centroid of %v: weights %v, want %v", v, bc, third)
		}
	}
}

func TestBarycentricDegenerate(t *testing.T) {
	a := math3d.V2(0, 0)
	b := math3d.V2(1, 1)
	c := math3d.V2(2, 2)

	queries := []math3d.Vec2{a, b, c, math3d.V2(1, 0), math3d.V2(0.5, 0.5), math3d.V2(-3, 7)}
	for _, p := range queries {
		bc := Barycentric(a, b, c, p)
		if inside(bc) {
			t.Errorf("collinear triangle gave weights %v for %v", bc, p)
		}
		bc3 := Barycentric3(math3d.V3(0, 0, 0), math3d.V3(1, 1, 0), math3d.V3(2, 2, 0), math3d.V3(p.X, p.Y, 0))
		if inside(bc3) {
			t.Errorf("Barycentric3: collinear triangle gave weights %v for %v", bc3, p)
		}
	}

	// Coincident vertices
	if bc := Barycentric(a, a, a, a); inside(bc) {
		t.Errorf("point triangle gave weights %v", bc)
	}
}

func TestBarycentric3Consistency(t *testing.T) {
	lift := func(v math3d.Vec2) math3d.Vec3 { return math3d.V3(v.X, v.Y, 0) }

	rng := rand.New(rand.NewSource(5))
	for range 1000 {
		a, b, c := randomVec2(rng), randomVec2(rng), randomVec2(rng)
		if math.Abs(doubledArea(a, b, c)) < 100 {
			continue
		}
		p := randomVec2(rng)

		bc2 := Barycentric(a, b, c, p)
		bc3 := Barycentric3(lift(a), lift(b), lift(c), lift(p))
		if !nearVec3(bc2, bc3) {
			t.Fatalf("2D weights %v and 3D weights %v differ for %v", bc2, bc3, p)
		}
		if math.Abs(bc2.X) < tolerance || math.Abs(bc2.Y) < tolerance || math.Abs(bc2.Z) < tolerance {
			continue // on an edge; rounding may go either way
		}
		if inside(bc2) != inside(bc3) {
			t.Fatalf("containment differs for %v: 2D %v, 3D %v", p, bc2, bc3)
		}
	}
}

func TestBoundingBox(t *testing.T) {
	tests := []struct {
		name       string
		t0, t1, t2 math3d.Point2
		clamp      math3d.Point2
		lo, hi     math3d.Point2
	}{
		{
			name: "clamped both sides",
			t0:   math3d.P2(-5, -5), t1: math3d.P2(500, 500), t2: math3d.P2(10, 10),
			clamp: math3d.P2(99, 99),
			lo:    math3d.P2(0, 0), hi: math3d.P2(99, 99),
		},
		{
			name: "inside",
			t0:   math3d.P2(10, 40), t1: math3d.P2(30, 5), t2: math3d.P2(20, 25),
			clamp: math3d.P2(99, 99),
			lo:    math3d.P2(10, 5), hi: math3d.P2(30, 40),
		},
		{
			name: "axes independent",
			t0:   math3d.P2(1, 9), t1: math3d.P2(9, 1), t2: math3d.P2(5, 5),
			clamp: math3d.P2(99, 99),
			lo:    math3d.P2(1, 1), hi: math3d.P2(9, 9),
		},
		{
			name: "entirely off-screen",
			t0:   math3d.P2(-50, -50), t1: math3d.P2(-10, -40), t2: math3d.P2(-30, -5),
			clamp: math3d.P2(99, 49),
			lo:    math3d.P2(0, 0), hi: math3d.P2(0, 0),
		},
		{
			name: "past the far corner",
			t0:   math3d.P2(150, 60), t1: math3d.P2(200, 70), t2: math3d.P2(120, 90),
			clamp: math3d.P2(99, 49),
			lo:    math3d.P2(99, 49), hi: math3d.P2(99, 49),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi := BoundingBox(tc.t0, tc.t1, tc.t2, tc.clamp)
			if lo != tc.lo || hi != tc.hi {
				t.Errorf("BoundingBox = (%v,%v), want (%v,%v)", lo, hi, tc.lo, tc.hi)
			}
		})
	}
}

func TestBoundingBoxAlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	clamp := math3d.P2(63, 31)
	for range 1000 {
		pt := func() math3d.Point2 { return math3d.P2(rng.Intn(400)-200, rng.Intn(400)-200) }
		lo, hi := BoundingBox(pt(), pt(), pt(), clamp)
		for _, p := range []math3d.Point2{lo, hi} {
			if p.X < 0 || p.X > clamp.X || p.Y < 0 || p.Y > clamp.Y {
				t.Fatalf("corner %v outside [0,%d]x[0,%d]", p, clamp.X, clamp.Y)
			}
		}
	}
}
