package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/deckcalc/internal/geom"
)

// footingSupportRadiusMm is how far a bearer endpoint may sit from an outer
// edge while still counting as support for that edge. Edges with no bearer
// endpoint this close get their own sampled footings.
const footingSupportRadiusMm = 10.0

// PlaceFootings derives the deduplicated pile/footing points for a plan.
//
// Candidates are collected in a fixed order: both endpoints of every bearer,
// then spacing-interval samples along every unsupported non-ledger outer
// edge. Deduplication keys on coordinates rounded to the nearest mm, first
// occurrence wins, and candidates on ledger-edge corners are removed (the
// ledger bolts to the structure, those corners never need a footing). The
// whole sequence is pure: identical input yields the identical point list in
// the identical order.
func PlaceFootings(poly geom.Polygon, bearers []geom.LineSegment, ledgerEdges map[int]bool, spacingMm float64) []geom.Point {
	var candidates []geom.Point
	for _, b := range bearers {
		candidates = append(candidates,
			geom.Point{X: b.X1, Y: b.Y1},
			geom.Point{X: b.X2, Y: b.Y2},
		)
	}

	n := len(poly.Outer)
	for i := 0; i < n; i++ {
		if ledgerEdges[i] {
			continue
		}
		a := poly.Outer[i]
		b := poly.Outer[(i+1)%n]
		if edgeSupported(a, b, bearers) {
			continue
		}
		candidates = append(candidates, sampleEdge(a, b, spacingMm)...)
	}

	ledgerCorners := make(map[string]bool)
	for i := range ledgerEdges {
		if i < 0 || i >= n {
			continue
		}
		ledgerCorners[pointKey(poly.Outer[i])] = true
		ledgerCorners[pointKey(poly.Outer[(i+1)%n])] = true
	}

	seen := make(map[string]bool, len(candidates))
	var piles []geom.Point
	for _, c := range candidates {
		key := pointKey(c)
		if seen[key] || ledgerCorners[key] {
			continue
		}
		seen[key] = true
		piles = append(piles, c)
	}
	return piles
}

// edgeSupported reports whether any bearer endpoint lies within the support
// radius of the edge (a, b).
func edgeSupported(a, b geom.Point, bearers []geom.LineSegment) bool {
	for _, seg := range bearers {
		for _, p := range []geom.Point{{X: seg.X1, Y: seg.Y1}, {X: seg.X2, Y: seg.Y2}} {
			if geom.PointSegmentDistance(p, a, b) <= footingSupportRadiusMm {
				return true
			}
		}
	}
	return false
}

// sampleEdge returns points along (a, b) at most spacingMm apart, including
// both endpoints.
func sampleEdge(a, b geom.Point, spacingMm float64) []geom.Point {
	length := math.Hypot(b.X-a.X, b.Y-a.Y)
	if length <= geom.Epsilon {
		return []geom.Point{a}
	}
	steps := 1
	if spacingMm > 0 {
		steps = int(math.Ceil(length / spacingMm))
	}
	points := make([]geom.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		points = append(points, geom.Point{
			X: a.X + t*(b.X-a.X),
			Y: a.Y + t*(b.Y-a.Y),
		})
	}
	return points
}

// pointKey buckets a point to the nearest mm for deduplication.
func pointKey(p geom.Point) string {
	return fmt.Sprintf("%d:%d", int(math.Round(p.X)), int(math.Round(p.Y)))
}
