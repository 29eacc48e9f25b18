package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/deckcalc/internal/geom"
	"github.com/piwi3910/deckcalc/internal/model"
)

// scrapThresholdMm is the smallest leftover worth returning to the offcut
// pool. Anything at or below this is unusable scrap and is dropped silently.
const scrapThresholdMm = 50.0

// boardRow is one horizontal board course of the rotated plan.
type boardRow struct {
	index  int     // Scan step index, stable across usage and cut planning
	y      float64 // Scanline height (mm)
	spanMm float64 // Required board length on this course
}

// boardRows scans the rotated polygon at board pitch and returns every
// course that needs material. Board-usage accounting and the cut planner
// both consume this, so their row sets are identical by construction.
func boardRows(poly geom.Polygon, pitchMm float64) []boardRow {
	if len(poly.Outer) < 3 || pitchMm <= 0 {
		return nil
	}
	min, max := geom.BoundingBox(poly.Outer)
	var rows []boardRow
	index := 0
	for y := min.Y + geom.Epsilon; y < max.Y-geom.Epsilon; y += pitchMm {
		if span := geom.SpanLengthAt(poly, y); span > 0 {
			rows = append(rows, boardRow{index: index, y: y, spanMm: span})
		}
		index++
	}
	return rows
}

// poolOffcut is a reusable remnant in the planner's pool, tagged with the
// colour group of the board it was cut from.
type poolOffcut struct {
	lengthMm float64
	group    string
}

// cutPlanner carries the state threaded through one plan: the offcut pool
// and the monotonic colour-group sequence. One planner per invocation; the
// pool is never shared across plans.
type cutPlanner struct {
	stockLenMm float64
	kerfMm     float64
	pool       []poolOffcut
	groupSeq   int
}

// BuildCutPlan solves the pro-mode cutting plan for an already-rotated
// polygon: a 1-D best-fit bin packing per board course, reusing offcuts
// across courses in strict scan order.
//
// The heuristic is deliberately greedy and online: rows are processed in
// order, no backtracking, ties between equal-length offcuts resolve to the
// first in ascending sort order. Changing any of that changes which boards
// get purchased, so the packing order is part of the observable behavior.
func BuildCutPlan(poly geom.Polygon, boardWidthMm, gapMm, stockLenMm, kerfMm float64) model.CutPlan {
	plan := model.CutPlan{StockLengthMm: stockLenMm}
	if stockLenMm <= 0 {
		return plan
	}
	p := &cutPlanner{stockLenMm: stockLenMm, kerfMm: kerfMm}
	for _, row := range boardRows(poly, boardWidthMm+gapMm) {
		plan.Rows = append(plan.Rows, p.packRow(row))
	}
	for _, o := range p.pool {
		plan.Offcuts = append(plan.Offcuts, o.lengthMm)
	}
	return plan
}

// packRow cuts one course: repeatedly take the largest chunk that fits a
// stock board, preferring the smallest pool offcut that can supply it.
func (p *cutPlanner) packRow(row boardRow) model.CutRow {
	out := model.CutRow{
		RowIndex:      row.index,
		RequiredLenMm: math.Round(row.spanMm),
	}
	remaining := out.RequiredLenMm
	lastStockLeftover := -1.0
	for remaining > 0 {
		chunk := math.Min(remaining, p.stockLenMm)
		if idx := p.bestFit(chunk); idx >= 0 {
			src := p.pool[idx]
			p.pool = append(p.pool[:idx], p.pool[idx+1:]...)
			out.Pieces = append(out.Pieces, model.CutPiece{
				Source:     model.SourceOffcut,
				ColorGroup: src.group,
				LengthMm:   chunk,
			})
			p.stash(src.lengthMm-chunk-p.kerfMm, src.group)
			lastStockLeftover = -1
		} else {
			p.groupSeq++
			group := fmt.Sprintf("G%d", p.groupSeq)
			out.Pieces = append(out.Pieces, model.CutPiece{
				Source:     model.SourceStock,
				ColorGroup: group,
				LengthMm:   chunk,
			})
			leftover := p.stockLenMm - chunk - p.kerfMm
			p.stash(leftover, group)
			lastStockLeftover = math.Max(0, leftover)
		}
		remaining -= chunk
	}
	if lastStockLeftover >= 0 {
		out.OffcutMm = lastStockLeftover
	}
	return out
}

// bestFit returns the pool index of the smallest offcut that can supply a
// chunk of the given length, or -1. The sort is stable so equal-length
// offcuts keep their pool order.
func (p *cutPlanner) bestFit(chunkMm float64) int {
	order := make([]int, len(p.pool))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return p.pool[order[a]].lengthMm < p.pool[order[b]].lengthMm
	})
	for _, idx := range order {
		if p.pool[idx].lengthMm+geom.Epsilon >= chunkMm {
			return idx
		}
	}
	return -1
}

// stash returns a leftover to the pool unless it is scrap.
func (p *cutPlanner) stash(lengthMm float64, group string) {
	if lengthMm > scrapThresholdMm {
		p.pool = append(p.pool, poolOffcut{lengthMm: lengthMm, group: group})
	}
}
