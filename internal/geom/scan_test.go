package geom

import (
	"math"
	"testing"
)

func TestScanIntersectionsRectangle(t *testing.T) {
	ring := rect(2000, 1000)

	xs := ScanIntersections(ring, 500)
	if len(xs) != 2 || xs[0] != 0 || xs[1] != 2000 {
		t.Fatalf("expected [0 2000], got %v", xs)
	}

	if xs := ScanIntersections(ring, -1); len(xs) != 0 {
		t.Errorf("expected no crossings below the rectangle, got %v", xs)
	}
	if xs := ScanIntersections(ring, 1001); len(xs) != 0 {
		t.Errorf("expected no crossings above the rectangle, got %v", xs)
	}
}

func TestScanIntersectionsHalfOpen(t *testing.T) {
	// A scanline exactly through the shared vertex of a diamond must count
	// each touching edge once, not twice.
	diamond := []Point{{0, 500}, {500, 0}, {1000, 500}, {500, 1000}}
	xs := ScanIntersections(diamond, 500)
	if len(xs) != 2 {
		t.Fatalf("expected 2 crossings through vertex level, got %v", xs)
	}

	// The bottom edge level of a rectangle is included, the top excluded.
	ring := rect(2000, 1000)
	if xs := ScanIntersections(ring, 0); len(xs) != 2 {
		t.Errorf("expected bottom edge level included, got %v", xs)
	}
	if xs := ScanIntersections(ring, 1000); len(xs) != 0 {
		t.Errorf("expected top edge level excluded, got %v", xs)
	}
}

func TestScanIntersectionsSorted(t *testing.T) {
	// Concave outline: two spans on one scanline, crossings must come back
	// sorted regardless of edge order.
	ring := []Point{
		{0, 0}, {2000, 0}, {2000, 1000}, {1200, 1000},
		{1200, 400}, {800, 400}, {800, 1000}, {0, 1000},
	}
	xs := ScanIntersections(ring, 700)
	want := []float64{0, 800, 1200, 2000}
	if len(xs) != len(want) {
		t.Fatalf("expected %v, got %v", want, xs)
	}
	for i := range want {
		if math.Abs(xs[i]-want[i]) > Epsilon {
			t.Fatalf("expected %v, got %v", want, xs)
		}
	}
}

func TestSpanConservation(t *testing.T) {
	poly := Polygon{Outer: rect(2000, 1000)}
	for _, y := range []float64{1, 250, 500, 750, 999} {
		if got := SpanLengthAt(poly, y); math.Abs(got-2000) > Epsilon {
			t.Errorf("span at y=%v: expected 2000, got %f", y, got)
		}
	}
	for _, y := range []float64{-100, 1000.5, 2000} {
		if got := SpanLengthAt(poly, y); got != 0 {
			t.Errorf("span at y=%v: expected 0, got %f", y, got)
		}
	}
}

func TestSpanLengthSubtractsHoles(t *testing.T) {
	poly := Polygon{
		Outer: rect(2000, 1000),
		Holes: [][]Point{{{800, 400}, {1200, 400}, {1200, 600}, {800, 600}}},
	}
	if got := SpanLengthAt(poly, 500); math.Abs(got-1600) > Epsilon {
		t.Errorf("expected 1600 through the hole, got %f", got)
	}
	if got := SpanLengthAt(poly, 100); math.Abs(got-2000) > Epsilon {
		t.Errorf("expected 2000 below the hole, got %f", got)
	}
}

func TestSpanLengthDegenerate(t *testing.T) {
	if got := SpanLengthAt(Polygon{}, 0); got != 0 {
		t.Errorf("expected 0 for empty polygon, got %f", got)
	}
	if got := SpanLengthAt(Polygon{Outer: []Point{{0, 0}}}, 0); got != 0 {
		t.Errorf("expected 0 for single point, got %f", got)
	}
}

func TestSubtractInterval(t *testing.T) {
	cases := []struct {
		name         string
		s, e, hs, he float64
		want         [][2]float64
	}{
		{"hole inside", 0, 1000, 400, 600, [][2]float64{{0, 400}, {600, 1000}}},
		{"hole covers all", 0, 1000, -100, 1100, nil},
		{"hole clips start", 0, 1000, -100, 300, [][2]float64{{300, 1000}}},
		{"hole clips end", 0, 1000, 700, 1100, [][2]float64{{0, 700}}},
		{"hole disjoint left", 0, 1000, -500, -200, [][2]float64{{0, 1000}}},
		{"hole disjoint right", 0, 1000, 1200, 1500, [][2]float64{{0, 1000}}},
	}
	for _, tc := range cases {
		got := SubtractInterval(tc.s, tc.e, tc.hs, tc.he)
		if len(got) != len(tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
			continue
		}
		for i := range tc.want {
			if math.Abs(got[i][0]-tc.want[i][0]) > Epsilon || math.Abs(got[i][1]-tc.want[i][1]) > Epsilon {
				t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
			}
		}
	}
}
