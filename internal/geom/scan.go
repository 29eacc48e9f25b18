package geom

import (
	"math"
	"sort"
)

// ScanIntersections returns the sorted x-coordinates where the horizontal
// line at y crosses the edges of a ring. The test is half-open on
// [min(ay,by), max(ay,by)) so a scanline passing exactly through a vertex is
// counted once, and horizontal edges contribute no crossing at all.
func ScanIntersections(ring []Point, y float64) []float64 {
	if len(ring) < 2 {
		return nil
	}
	var xs []float64
	for i, a := range ring {
		b := ring[(i+1)%len(ring)]
		if a.Y == b.Y {
			continue
		}
		lo, hi := a.Y, b.Y
		if lo > hi {
			lo, hi = hi, lo
		}
		if y < lo || y >= hi {
			continue
		}
		t := (y - a.Y) / (b.Y - a.Y)
		xs = append(xs, a.X+t*(b.X-a.X))
	}
	sort.Float64s(xs)
	return xs
}

// SpanLengthAt returns the total interior width of the polygon along the
// horizontal line at y: the summed outer crossing pairs minus the summed
// hole crossing pairs, floored at 0. This is the single shared "board length
// needed on this row" primitive; board-usage accounting and cut-plan row
// sizing both go through it so the two can never disagree.
func SpanLengthAt(poly Polygon, y float64) float64 {
	span := pairSum(ScanIntersections(poly.Outer, y))
	for _, hole := range poly.Holes {
		span -= pairSum(ScanIntersections(hole, y))
	}
	if span < 0 {
		return 0
	}
	return span
}

func pairSum(xs []float64) float64 {
	var sum float64
	for i := 0; i+1 < len(xs); i += 2 {
		sum += xs[i+1] - xs[i]
	}
	return sum
}

// Contains reports whether p lies inside the polygon using a standard
// ray-casting parity test against the outer ring. A point inside any hole is
// reclassified as outside.
func Contains(p Point, poly Polygon) bool {
	if !ringContains(p, poly.Outer) {
		return false
	}
	for _, hole := range poly.Holes {
		if ringContains(p, hole) {
			return false
		}
	}
	return true
}

func ringContains(p Point, ring []Point) bool {
	if len(ring) < 3 {
		return false
	}
	inside := false
	for i, a := range ring {
		b := ring[(i+1)%len(ring)]
		if (a.Y > p.Y) == (b.Y > p.Y) {
			continue
		}
		x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
		if p.X < x {
			inside = !inside
		}
	}
	return inside
}

// SubtractInterval removes [hs, he] from [s, e], yielding up to two
// surviving sub-intervals. Used to punch hole crossings out of clipped
// grid-line segments.
func SubtractInterval(s, e, hs, he float64) [][2]float64 {
	var out [][2]float64
	if hs-s > Epsilon {
		out = append(out, [2]float64{s, math.Min(e, hs)})
	}
	if e-he > Epsilon {
		out = append(out, [2]float64{math.Max(s, he), e})
	}
	return out
}
