// Package engine derives material quantities from a deck plan: board usage,
// substructure grid, footing placement, fastener counts and, in pro mode, an
// exact cutting plan. Everything is pure computation over value types; the
// engine never errors, degenerate input degrades to zero/empty output.
package engine

import (
	"math"

	"github.com/piwi3910/deckcalc/internal/geom"
	"github.com/piwi3910/deckcalc/internal/model"
)

// Engine runs quantity calculations under one ruleset. The stairs
// sub-calculator is consumed as an opaque function; when nil, plans with a
// stairs block simply produce no stairs quantities.
type Engine struct {
	Rules  model.Ruleset
	Stairs model.StairsFunc
}

func New(rules model.Ruleset) *Engine {
	return &Engine{Rules: rules}
}

// Compute produces the full material takeoff for one plan. The polygon is
// rotated so the decking direction aligns with the X axis, all derivation
// runs in that frame, and the output layout is rotated back so downstream
// consumers only ever see the plan's own coordinates.
func (e *Engine) Compute(plan model.Plan, product model.Product, fastening model.FasteningMode) model.Quantities {
	q := model.Quantities{
		Fasteners: model.FastenerQuantities{Mode: fastening},
		Boards:    model.BoardQuantities{StockLengthMm: product.StockLengthMm},
	}
	if len(plan.Polygon.Outer) < 3 {
		return q
	}

	theta := -plan.DirectionDeg * math.Pi / 180
	rotated := geom.RotatePolygon(plan.Polygon, theta)
	ledger := plan.LedgerEdgeSet()

	// Area breakdown. Area is rotation invariant, so the original polygon
	// serves directly.
	gross := math.Abs(geom.SignedArea(plan.Polygon.Outer))
	q.Area.GrossM2 = gross / 1e6
	q.Area.DeckM2 = geom.Area(plan.Polygon) / 1e6
	q.Area.CutoutsM2 = q.Area.GrossM2 - q.Area.DeckM2

	// Board usage from the shared row scan. Per-row spans are rounded to the
	// mm exactly as the cut planner rounds them, so the two totals agree.
	rows := boardRows(rotated, plan.BoardWidthMm+product.GapMm)
	for _, row := range rows {
		q.Boards.UsedLengthMm += math.Round(row.spanMm)
	}
	q.Boards.LossRate = e.lossRate(plan)
	if product.StockLengthMm > 0 {
		q.Boards.Pieces = int(math.Ceil(q.Boards.UsedLengthMm / product.StockLengthMm * (1 + q.Boards.LossRate)))
	}

	// Substructure. Bearers run with the decking and are held to the rated
	// maximum span (flush distribution); joists run across it, centered.
	bearers := GridLines(rotated, e.Rules.BearerSpacingMm, AxisY, SpacingMaxSpan)
	bearers = FilterLedgerBearers(bearers, rotated, ledger)
	joists := GridLines(rotated, e.Rules.JoistSpacingMm, AxisX, SpacingCentered)
	rims := RimJoists(rotated, ledger)

	q.Substructure.BearerLengthMm = totalLength(bearers)
	q.Substructure.JoistLengthMm = totalLength(joists)
	q.Substructure.RimJoistLengthMm = totalLength(rims)
	if o := plan.Overrides; o != nil {
		if o.BearerLengthMm > 0 {
			q.Substructure.BearerLengthMm = o.BearerLengthMm
		}
		if o.JoistLengthMm > 0 {
			q.Substructure.JoistLengthMm = o.JoistLengthMm
		}
	}

	// Footings. One anchor per pile.
	piles := PlaceFootings(rotated, bearers, ledger, e.Rules.FootingSpacingMm)
	q.FootingQty = len(piles)
	q.AnchorQty = len(piles)

	// Fasteners: every board course crosses every distinct joist position.
	q.Fasteners.Qty = len(rows) * uniqueJoistPositions(joists)
	if fastening == model.FasteningScrew {
		q.Fasteners.Qty *= e.Rules.ScrewsPerIntersection
	}

	if len(ledger) > 0 {
		ledgerLen := LedgerLength(rotated, ledger)
		bolts := 2
		if e.Rules.AnchorSpacingMm > 0 {
			bolts = int(math.Ceil(ledgerLen/e.Rules.AnchorSpacingMm)) + 1
			if bolts < 2 {
				bolts = 2
			}
		}
		q.Ledger = &model.LedgerQuantities{
			LengthM:        ledgerLen / 1000,
			AnchorBoltsQty: bolts,
		}
	}

	if plan.DeckHeightMm > 0 {
		q.Posts = &model.PostQuantities{
			Qty:      q.FootingQty,
			LengthMm: plan.DeckHeightMm,
		}
	}

	if plan.Stairs != nil && e.Stairs != nil {
		q.Stairs = e.Stairs(plan, product, e.Rules, fastening)
	}

	// Everything derived in the rotated frame goes back through the inverse
	// rotation before it becomes output.
	q.Layout = &model.StructureLayout{
		Piles:   rotatePoints(piles, -theta),
		Bearers: rotateSegments(bearers, -theta),
		Joists:  rotateSegments(append(append([]geom.LineSegment{}, joists...), rims...), -theta),
	}

	if e.Rules.Mode == model.ModePro {
		cp := BuildCutPlan(rotated, plan.BoardWidthMm, product.GapMm, product.StockLengthMm, e.Rules.KerfMm)
		q.CutPlan = &cp
	}

	return q
}

// lossRate returns 0 in pro mode; in consumer mode it is the capped linear
// model over extra vertices and cutouts.
func (e *Engine) lossRate(plan model.Plan) float64 {
	if e.Rules.Mode == model.ModePro {
		return 0
	}
	extraVertices := float64(len(plan.Polygon.Outer) - 4)
	if extraVertices < 0 {
		extraVertices = 0
	}
	rate := e.Rules.Loss.Base +
		extraVertices*e.Rules.Loss.VertexFactor +
		float64(len(plan.Polygon.Holes))*e.Rules.Loss.CutoutFactor
	if rate < 0 {
		return 0
	}
	return math.Min(e.Rules.Loss.Cap, rate)
}

// uniqueJoistPositions counts distinct joist X coordinates, bucketed to
// 0.1 mm so near-equal positions from hole clipping dedupe.
func uniqueJoistPositions(joists []geom.LineSegment) int {
	seen := make(map[int64]bool, len(joists))
	for _, j := range joists {
		seen[int64(math.Round(j.X1*10))] = true
	}
	return len(seen)
}

func totalLength(segments []geom.LineSegment) float64 {
	var total float64
	for _, s := range segments {
		total += s.Length()
	}
	return total
}

func rotatePoints(points []geom.Point, radians float64) []geom.Point {
	out := make([]geom.Point, len(points))
	for i, p := range points {
		out[i] = geom.Rotate(p, radians)
	}
	return out
}

func rotateSegments(segments []geom.LineSegment, radians float64) []geom.LineSegment {
	out := make([]geom.LineSegment, len(segments))
	for i, s := range segments {
		a := geom.Rotate(geom.Point{X: s.X1, Y: s.Y1}, radians)
		b := geom.Rotate(geom.Point{X: s.X2, Y: s.Y2}, radians)
		out[i] = geom.LineSegment{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
	}
	return out
}
