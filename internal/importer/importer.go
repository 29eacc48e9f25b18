// Package importer reads deck floor plans from DXF drawings. Each closed
// shape (LWPOLYLINE or chain of connected LINE entities) becomes a polygon
// ring; the largest ring is the deck outline, every other ring is a cutout.
package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/deckcalc/internal/geom"
)

// chainToleranceMm is the maximum endpoint distance for two LINE entities to
// count as connected when chaining loose segments into rings.
const chainToleranceMm = 0.01

// Result holds the outcome of a floor-plan import.
type Result struct {
	Polygon  geom.Polygon
	Warnings []string
}

// segment is a loose LINE entity awaiting chaining.
type segment struct {
	start geom.Point
	end   geom.Point
}

// ImportFloorPlan reads the deck polygon from a DXF file. The ring with the
// largest area becomes the outer outline; all other closed rings become
// holes. Arcs, circles and splines are not floor-plan geometry and are
// skipped with a warning.
func ImportFloorPlan(path string) (Result, error) {
	result := Result{}

	drawing, err := dxf.Open(path)
	if err != nil {
		return result, fmt.Errorf("cannot open DXF file: %w", err)
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		return result, fmt.Errorf("DXF file contains no entities")
	}

	var rings [][]geom.Point
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			ring := lwPolylineToRing(e)
			if len(ring) >= 3 {
				rings = append(rings, ring)
			} else {
				result.Warnings = append(result.Warnings,
					"skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: geom.Point{X: e.Start[0], Y: e.Start[1]},
				end:   geom.Point{X: e.End[0], Y: e.End[1]},
			})

		default:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("skipped unsupported entity %T", ent))
		}
	}

	for _, ring := range chainSegments(segments, chainToleranceMm) {
		if len(ring) >= 3 {
			rings = append(rings, ring)
		}
	}

	if len(rings) == 0 {
		return result, fmt.Errorf("no closed shapes found in DXF file")
	}

	// Largest ring is the deck outline, the rest are cutouts.
	outerIdx := 0
	outerArea := 0.0
	for i, ring := range rings {
		if a := math.Abs(geom.SignedArea(ring)); a > outerArea {
			outerArea = a
			outerIdx = i
		}
	}
	if outerArea < geom.Epsilon {
		return result, fmt.Errorf("all shapes in DXF file are degenerate")
	}

	result.Polygon.Outer = rings[outerIdx]
	for i, ring := range rings {
		if i == outerIdx {
			continue
		}
		if math.Abs(geom.SignedArea(ring)) < geom.Epsilon {
			result.Warnings = append(result.Warnings, "skipped degenerate cutout")
			continue
		}
		result.Polygon.Holes = append(result.Polygon.Holes, ring)
	}

	return result, nil
}

// lwPolylineToRing converts an LWPOLYLINE to a plain vertex ring. Bulges
// (arc segments) are flattened to their vertices; deck outlines are drawn
// with straight edges.
func lwPolylineToRing(lw *entity.LwPolyline) []geom.Point {
	ring := make([]geom.Point, 0, len(lw.Vertices))
	for _, v := range lw.Vertices {
		ring = append(ring, geom.Point{X: v[0], Y: v[1]})
	}
	return ring
}

// chainSegments connects loose segments into closed rings. A ring closes
// when the chain returns within tolerance of its starting point; chains that
// never close are dropped.
func chainSegments(segs []segment, tolerance float64) [][]geom.Point {
	used := make([]bool, len(segs))
	var rings [][]geom.Point

	for start := range segs {
		if used[start] {
			continue
		}
		used[start] = true
		ring := []geom.Point{segs[start].start}
		current := segs[start].end

		for {
			if samePoint(current, ring[0], tolerance) {
				rings = append(rings, ring)
				break
			}
			next := -1
			flipped := false
			for i, s := range segs {
				if used[i] {
					continue
				}
				if samePoint(s.start, current, tolerance) {
					next = i
					break
				}
				if samePoint(s.end, current, tolerance) {
					next = i
					flipped = true
					break
				}
			}
			if next < 0 {
				break // Open chain, not a ring
			}
			used[next] = true
			ring = append(ring, current)
			if flipped {
				current = segs[next].start
			} else {
				current = segs[next].end
			}
		}
	}
	return rings
}

func samePoint(a, b geom.Point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}
