package geom

import (
	"math"
	"testing"
)

func rect(w, h float64) []Point {
	return []Point{{0, 0}, {w, 0}, {w, h}, {0, h}}
}

func TestSignedAreaRectangle(t *testing.T) {
	area := SignedArea(rect(2000, 1000))
	if math.Abs(area-2e6) > 1 {
		t.Errorf("expected +2e6 for CCW rectangle, got %f", area)
	}

	// Reversed winding flips the sign, not the magnitude.
	reversed := []Point{{0, 1000}, {2000, 1000}, {2000, 0}, {0, 0}}
	if got := SignedArea(reversed); math.Abs(got+2e6) > 1 {
		t.Errorf("expected -2e6 for CW rectangle, got %f", got)
	}
}

func TestSignedAreaDegenerate(t *testing.T) {
	if got := SignedArea(nil); got != 0 {
		t.Errorf("expected 0 for empty ring, got %f", got)
	}
	if got := SignedArea([]Point{{0, 0}, {100, 100}}); got != 0 {
		t.Errorf("expected 0 for 2-point ring, got %f", got)
	}
}

func TestAreaWithHole(t *testing.T) {
	poly := Polygon{
		Outer: rect(2000, 1000),
		Holes: [][]Point{{{800, 400}, {1200, 400}, {1200, 600}, {800, 600}}},
	}
	want := 2e6 - 400*200
	if got := Area(poly); math.Abs(got-want) > 1 {
		t.Errorf("expected %f, got %f", want, got)
	}
}

func TestAreaClampsOversizedHoles(t *testing.T) {
	// An oversized hole is a caller bug; the area clamps to zero rather
	// than going negative.
	poly := Polygon{
		Outer: rect(100, 100),
		Holes: [][]Point{rect(2000, 1000)},
	}
	if got := Area(poly); got != 0 {
		t.Errorf("expected clamped 0, got %f", got)
	}
}

func TestAreaRotationInvariance(t *testing.T) {
	poly := Polygon{
		Outer: []Point{{0, 0}, {2000, 0}, {2000, 1000}, {1500, 1400}, {0, 1000}},
		Holes: [][]Point{{{500, 300}, {900, 300}, {900, 700}, {500, 700}}},
	}
	base := Area(poly)
	for _, deg := range []float64{17, 45, 90, 133, 270, 360} {
		rotated := RotatePolygon(poly, deg*math.Pi/180)
		if got := Area(rotated); math.Abs(got-base) > 1 {
			t.Errorf("area changed under %v deg rotation: %f vs %f", deg, got, base)
		}
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	p := Rotate(Point{X: 100, Y: 0}, math.Pi/2)
	if math.Abs(p.X) > 1e-9 || math.Abs(p.Y-100) > 1e-9 {
		t.Errorf("expected (0, 100), got (%f, %f)", p.X, p.Y)
	}
}

func TestBoundingBox(t *testing.T) {
	min, max := BoundingBox([]Point{{5, -3}, {-2, 10}, {7, 4}})
	if min.X != -2 || min.Y != -3 || max.X != 7 || max.Y != 10 {
		t.Errorf("unexpected bbox: min (%f, %f) max (%f, %f)", min.X, min.Y, max.X, max.Y)
	}
}

func TestBoundingBoxEmpty(t *testing.T) {
	min, max := BoundingBox(nil)
	if !math.IsInf(min.X, 1) || !math.IsInf(max.X, -1) {
		t.Errorf("expected infinite corners on empty input, got %v %v", min, max)
	}
}

func TestContains(t *testing.T) {
	poly := Polygon{
		Outer: rect(2000, 1000),
		Holes: [][]Point{{{800, 400}, {1200, 400}, {1200, 600}, {800, 600}}},
	}

	if !Contains(Point{X: 100, Y: 100}, poly) {
		t.Error("interior point should be inside")
	}
	if Contains(Point{X: 1000, Y: 500}, poly) {
		t.Error("point inside a hole should be outside the polygon")
	}
	if Contains(Point{X: -10, Y: 500}, poly) {
		t.Error("exterior point should be outside")
	}
	if Contains(Point{X: 100, Y: 100}, Polygon{Outer: []Point{{0, 0}, {1, 1}}}) {
		t.Error("degenerate polygon contains nothing")
	}
}

func TestPointSegmentDistance(t *testing.T) {
	a, b := Point{0, 0}, Point{100, 0}

	if d := PointSegmentDistance(Point{50, 30}, a, b); math.Abs(d-30) > 1e-9 {
		t.Errorf("expected 30, got %f", d)
	}
	// Beyond the segment end the distance is to the endpoint.
	if d := PointSegmentDistance(Point{130, 40}, a, b); math.Abs(d-50) > 1e-9 {
		t.Errorf("expected 50, got %f", d)
	}
	// Zero-length segment degrades to point distance.
	if d := PointSegmentDistance(Point{3, 4}, a, a); math.Abs(d-5) > 1e-9 {
		t.Errorf("expected 5, got %f", d)
	}
}

func TestSegmentLengthAndMidpoint(t *testing.T) {
	s := LineSegment{X1: 0, Y1: 0, X2: 300, Y2: 400}
	if got := s.Length(); math.Abs(got-500) > 1e-9 {
		t.Errorf("expected 500, got %f", got)
	}
	mid := s.Midpoint()
	if mid.X != 150 || mid.Y != 200 {
		t.Errorf("expected (150, 200), got (%f, %f)", mid.X, mid.Y)
	}
}
