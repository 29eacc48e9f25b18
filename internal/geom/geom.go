// Package geom provides the 2D polygon primitives the quantity engine is
// built on: signed area, bounding boxes, rotation, point containment and
// horizontal scanline queries against a polygon with holes.
//
// All coordinates are millimeters. Polygons are implicitly closed: the last
// point connects back to the first. Winding order is not assumed anywhere;
// area functions work on signed-area magnitude. Degenerate input (fewer than
// 3 points) yields zero or empty results, never an error.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the shared tolerance (mm) for comparisons against zero-width
// features. Every scanline and span computation must use this same constant,
// otherwise board-usage and cut-plan totals can silently disagree.
const Epsilon = 1e-3

// Point represents a 2D coordinate in mm.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LineSegment is a straight segment between two points, used for bearers,
// joists and rim members.
type LineSegment struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Length returns the segment length in mm.
func (s LineSegment) Length() float64 {
	return math.Hypot(s.X2-s.X1, s.Y2-s.Y1)
}

// Midpoint returns the segment center.
func (s LineSegment) Midpoint() Point {
	return Point{X: (s.X1 + s.X2) / 2, Y: (s.Y1 + s.Y2) / 2}
}

// Polygon is a closed outer ring with optional hole rings. Holes are assumed
// to lie fully inside the outer ring and not touch each other; callers
// guarantee this, the package does not enforce it.
type Polygon struct {
	Outer []Point   `json:"outer"`
	Holes [][]Point `json:"holes,omitempty"`
}

// Rotate rotates p about the origin by the given angle in radians.
// Callers pre/post-translate as needed.
func Rotate(p Point, radians float64) Point {
	v := mgl64.Rotate2D(radians).Mul2x1(mgl64.Vec2{p.X, p.Y})
	return Point{X: v.X(), Y: v.Y()}
}

// RotateRing rotates every point of a ring about the origin.
func RotateRing(ring []Point, radians float64) []Point {
	if len(ring) == 0 {
		return nil
	}
	rot := mgl64.Rotate2D(radians)
	out := make([]Point, len(ring))
	for i, p := range ring {
		v := rot.Mul2x1(mgl64.Vec2{p.X, p.Y})
		out[i] = Point{X: v.X(), Y: v.Y()}
	}
	return out
}

// RotatePolygon rotates the outer ring and every hole about the origin.
func RotatePolygon(poly Polygon, radians float64) Polygon {
	out := Polygon{Outer: RotateRing(poly.Outer, radians)}
	for _, hole := range poly.Holes {
		out.Holes = append(out.Holes, RotateRing(hole, radians))
	}
	return out
}

// SignedArea computes the shoelace area of a ring. Positive for
// counter-clockwise winding in a y-up coordinate system. Returns 0 for
// fewer than 3 points.
func SignedArea(ring []Point) float64 {
	if len(ring) < 3 {
		return 0
	}
	var sum float64
	for i, a := range ring {
		b := ring[(i+1)%len(ring)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Area returns the polygon area in sq mm: the outer ring magnitude minus the
// magnitude of every hole, clamped to >= 0 (holes can never make the deck
// negative; oversized holes are a caller bug, not an error here).
func Area(poly Polygon) float64 {
	area := math.Abs(SignedArea(poly.Outer))
	for _, hole := range poly.Holes {
		area -= math.Abs(SignedArea(hole))
	}
	if area < 0 {
		return 0
	}
	return area
}

// BoundingBox returns the min and max corners of a ring. An empty ring
// yields +Inf/-Inf corners; callers must guard len(ring) > 0 before
// trusting the result.
func BoundingBox(ring []Point) (min, max Point) {
	min = Point{X: math.Inf(1), Y: math.Inf(1)}
	max = Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range ring {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// PointSegmentDistance returns the distance from p to the segment (a, b).
// A zero-length segment degrades to point distance rather than dividing
// by zero.
func PointSegmentDistance(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq < Epsilon*Epsilon {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}
