package engine

import (
	"math"

	"github.com/piwi3910/deckcalc/internal/geom"
)

// Axis selects the direction of generated grid lines.
type Axis string

const (
	AxisX Axis = "x" // Vertical lines: joists, perpendicular to the decking
	AxisY Axis = "y" // Horizontal lines: bearers, parallel to the decking
)

// SpacingMode selects how grid line positions are distributed over the
// bounding range.
type SpacingMode string

const (
	// SpacingCentered places floor(range/spacing) lines at the exact given
	// spacing, centered about the bbox midpoint. No gap exceeds the spacing
	// and the pattern stays visually centered.
	SpacingCentered SpacingMode = "centered"
	// SpacingMaxSpan places ceil(range/spacing)-1 interior lines at the
	// uniform spacing range/numSpans, so members align flush with both outer
	// edges and no span ever exceeds the rated maximum.
	SpacingMaxSpan SpacingMode = "maxspan"
)

// ledgerClearanceMm is how close a bearer centerpoint may sit to a ledger
// edge before the ledger is considered to physically replace it.
const ledgerClearanceMm = 5.0

// GridLines produces parallel line segments at the given spacing, clipped to
// the polygon interior and punched out by its holes. The polygon is expected
// to already be rotated so the decking direction aligns with the X axis.
func GridLines(poly geom.Polygon, spacingMm float64, axis Axis, mode SpacingMode) []geom.LineSegment {
	if len(poly.Outer) < 3 || spacingMm <= 0 {
		return nil
	}

	// Work in a frame where grid lines are horizontal scanlines.
	work := poly
	if axis == AxisX {
		work = swapXY(poly)
	}

	min, max := geom.BoundingBox(work.Outer)
	span := max.Y - min.Y
	if span <= geom.Epsilon {
		return nil
	}

	var positions []float64
	switch mode {
	case SpacingMaxSpan:
		numSpans := int(math.Ceil(span / spacingMm))
		step := span / float64(numSpans)
		for i := 1; i < numSpans; i++ {
			positions = append(positions, min.Y+float64(i)*step)
		}
	default:
		numLines := int(math.Floor(span / spacingMm))
		mid := (min.Y + max.Y) / 2
		start := mid - float64(numLines-1)/2*spacingMm
		for i := 0; i < numLines; i++ {
			positions = append(positions, start+float64(i)*spacingMm)
		}
	}

	var segments []geom.LineSegment
	for _, y := range positions {
		for _, iv := range clipAtY(work, y) {
			seg := geom.LineSegment{X1: iv[0], Y1: y, X2: iv[1], Y2: y}
			if axis == AxisX {
				seg = geom.LineSegment{X1: seg.Y1, Y1: seg.X1, X2: seg.Y2, Y2: seg.X2}
			}
			segments = append(segments, seg)
		}
	}
	return segments
}

// clipAtY intersects the horizontal line at y with the polygon interior and
// subtracts every hole crossing, returning the surviving [start, end]
// intervals in ascending order.
func clipAtY(poly geom.Polygon, y float64) [][2]float64 {
	xs := geom.ScanIntersections(poly.Outer, y)
	var intervals [][2]float64
	for i := 0; i+1 < len(xs); i += 2 {
		if xs[i+1]-xs[i] > geom.Epsilon {
			intervals = append(intervals, [2]float64{xs[i], xs[i+1]})
		}
	}
	for _, hole := range poly.Holes {
		hx := geom.ScanIntersections(hole, y)
		for i := 0; i+1 < len(hx); i += 2 {
			var next [][2]float64
			for _, iv := range intervals {
				next = append(next, geom.SubtractInterval(iv[0], iv[1], hx[i], hx[i+1])...)
			}
			intervals = next
		}
	}
	return intervals
}

func swapXY(poly geom.Polygon) geom.Polygon {
	out := geom.Polygon{Outer: swapRing(poly.Outer)}
	for _, hole := range poly.Holes {
		out.Holes = append(out.Holes, swapRing(hole))
	}
	return out
}

func swapRing(ring []geom.Point) []geom.Point {
	out := make([]geom.Point, len(ring))
	for i, p := range ring {
		out[i] = geom.Point{X: p.Y, Y: p.X}
	}
	return out
}

// RimJoists synthesizes one perimeter joist per outer edge that is not
// attached to a ledger. Ledger edges get no rim member; their length is
// accounted separately as ledger.
func RimJoists(poly geom.Polygon, ledgerEdges map[int]bool) []geom.LineSegment {
	n := len(poly.Outer)
	if n < 3 {
		return nil
	}
	var rims []geom.LineSegment
	for i := 0; i < n; i++ {
		if ledgerEdges[i] {
			continue
		}
		a := poly.Outer[i]
		b := poly.Outer[(i+1)%n]
		rims = append(rims, geom.LineSegment{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y})
	}
	return rims
}

// FilterLedgerBearers drops bearers whose centerpoint lies within the ledger
// clearance of any ledger edge; the ledger physically replaces them.
func FilterLedgerBearers(bearers []geom.LineSegment, poly geom.Polygon, ledgerEdges map[int]bool) []geom.LineSegment {
	if len(ledgerEdges) == 0 {
		return bearers
	}
	n := len(poly.Outer)
	var kept []geom.LineSegment
	for _, bearer := range bearers {
		mid := bearer.Midpoint()
		replaced := false
		for i := range ledgerEdges {
			if i < 0 || i >= n {
				continue
			}
			a := poly.Outer[i]
			b := poly.Outer[(i+1)%n]
			if geom.PointSegmentDistance(mid, a, b) <= ledgerClearanceMm {
				replaced = true
				break
			}
		}
		if !replaced {
			kept = append(kept, bearer)
		}
	}
	return kept
}

// LedgerLength sums the lengths of the ledger-flagged outer edges.
func LedgerLength(poly geom.Polygon, ledgerEdges map[int]bool) float64 {
	n := len(poly.Outer)
	var total float64
	for i := range ledgerEdges {
		if i < 0 || i >= n {
			continue
		}
		a := poly.Outer[i]
		b := poly.Outer[(i+1)%n]
		total += math.Hypot(b.X-a.X, b.Y-a.Y)
	}
	return total
}
