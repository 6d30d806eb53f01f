package render

import (
	"math/rand"
	"testing"

	"github.com/taigrr/rast/pkg/math3d"
)

// recorder is a Surface that remembers which pixels were written.
type recorder struct {
	w, h int
	set  map[math3d.Point2]Color
}

func newRecorder(w, h int) *recorder {
	return &recorder{w: w, h: h, set: make(map[math3d.Point2]Color)}
}

func (r *recorder) Width() int  { return r.w }
func (r *recorder) Height() int { return r.h }
func (r *recorder) Pixel(x, y int) Color {
	return r.set[math3d.P2(x, y)]
}
func (r *recorder) SetPixel(x, y int, c Color) {
	r.set[math3d.P2(x, y)] = c
}

func samePixels(a, b map[math3d.Point2]Color) bool {
	if len(a) != len(b) {
		return false
	}
	for p := range a {
		if _, ok := b[p]; !ok {
			return false
		}
	}
	return true
}

func TestLineHorizontal(t *testing.T) {
	rec := newRecorder(20, 20)
	Line(math3d.P2(0, 0), math3d.P2(10, 0), rec, ColorWhite)

	if len(rec.set) != 10 {
		t.Fatalf("got %d pixels, want 10", len(rec.set))
	}
	for x := range 10 {
		if _, ok := rec.set[math3d.P2(x, 0)]; !ok {
			t.Errorf("pixel (%d,0) not set", x)
		}
	}
	if _, ok := rec.set[math3d.P2(10, 0)]; ok {
		t.Error("far endpoint (10,0) should not be drawn")
	}
}

func TestLineShapes(t *testing.T) {
	tests := []struct {
		name   string
		p0, p1 math3d.Point2
		want   []math3d.Point2
	}{
		{"vertical", math3d.P2(2, 0), math3d.P2(2, 4), []math3d.Point2{math3d.P2(2, 0), math3d.P2(2, 1), math3d.P2(2, 2), math3d.P2(2, 3)}},
		{"diagonal", math3d.P2(0, 0), math3d.P2(3, 3), []math3d.Point2{math3d.P2(0, 0), math3d.P2(1, 1), math3d.P2(2, 2)}},
		{"descending", math3d.P2(0, 3), math3d.P2(3, 0), []math3d.Point2{math3d.P2(0, 3), math3d.P2(1, 2), math3d.P2(2, 1)}},
		{"shallow", math3d.P2(0, 0), math3d.P2(4, 2), []math3d.Point2{math3d.P2(0, 0), math3d.P2(1, 0), math3d.P2(2, 1), math3d.P2(3, 1)}},
		{"reversed", math3d.P2(10, 0), math3d.P2(7, 0), []math3d.Point2{math3d.P2(7, 0), math3d.P2(8, 0), math3d.P2(9, 0)}},
		{"point", math3d.P2(5, 5), math3d.P2(5, 5), nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := newRecorder(20, 20)
			Line(tc.p0, tc.p1, rec, ColorWhite)

			if len(rec.set) != len(tc.want) {
				t.Fatalf("got %d pixels %v, want %v", len(rec.set), rec.set, tc.want)
			}
			for _, p := range tc.want {
				if _, ok := rec.set[p]; !ok {
					t.Errorf("pixel %v not set", p)
				}
			}
		})
	}
}

func TestLineSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for range 500 {
		p0 := math3d.P2(rng.Intn(64)-8, rng.Intn(64)-8)
		p1 := math3d.P2(rng.Intn(64)-8, rng.Intn(64)-8)

		fwd := newRecorder(64, 64)
		back := newRecorder(64, 64)
		Line(p0, p1, fwd, ColorWhite)
		Line(p1, p0, back, ColorWhite)

		if !samePixels(fwd.set, back.set) {
			t.Fatalf("Line(%v,%v) and Line(%v,%v) differ", p0, p1, p1, p0)
		}
	}
}

func TestLineConnected(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for range 200 {
		p0 := math3d.P2(rng.Intn(50), rng.Intn(50))
		p1 := math3d.P2(rng.Intn(50), rng.Intn(50))

		rec := newRecorder(50, 50)
		Line(p0, p1, rec, ColorWhite)

		want := max(abs(p1.X-p0.X), abs(p1.Y-p0.Y))
		if len(rec.set) != want {
			t.Fatalf("Line(%v,%v) set %d pixels, want %d", p0, p1, len(rec.set), want)
		}
		for p := range rec.set {
			if p == p0 || p == p1 || len(rec.set) == 1 {
				continue
			}
			neighbours := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					if _, ok := rec.set[math3d.P2(p.X+dx, p.Y+dy)]; ok {
						neighbours++
					}
				}
			}
			if neighbours == 0 {
				t.Fatalf("Line(%v,%v): pixel %v is isolated", p0, p1, p)
			}
		}
	}
}

func TestLineOnFramebufferIgnoresOutOfRange(t *testing.T) {
	fb := NewFramebuffer(10, 10, FormatRGB)
	Line(math3d.P2(-5, 5), math3d.P2(15, 5), fb, ColorRed)

	for x := range 10 {
		if got := fb.Pixel(x, 5); got != ColorRed {
			t.Errorf("pixel (%d,5) = %v, want red", x, got)
		}
	}
}
