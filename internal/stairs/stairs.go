// Package stairs is the default implementation of the stairs sub-calculator.
// The quantity engine consumes it through model.StairsFunc and treats it as
// opaque; callers can substitute their own.
package stairs

import (
	"math"

	"github.com/piwi3910/deckcalc/internal/model"
)

const (
	defaultTargetRiseMm = 180.0 // Comfortable riser height
	treadRunMm          = 250.0 // Horizontal going per step
	treadDepthMm        = 280.0 // Tread surface depth including nosing
	stringerIntervalMm  = 900.0 // Max unsupported tread width
)

// Calculate sizes a straight flight from the deck surface to grade. Returns
// nil when the plan has no stairs block or no height to descend.
func Calculate(plan model.Plan, product model.Product, rules model.Ruleset, fastening model.FasteningMode) *model.StairsQuantities {
	if plan.Stairs == nil || plan.DeckHeightMm <= 0 || plan.Stairs.WidthMm <= 0 {
		return nil
	}
	s := plan.Stairs

	targetRise := s.TargetRiseMm
	if targetRise <= 0 {
		targetRise = defaultTargetRiseMm
	}
	steps := int(math.Ceil(plan.DeckHeightMm / targetRise))
	if steps < 1 {
		steps = 1
	}
	rise := plan.DeckHeightMm / float64(steps)

	// Tread boards: enough decking strips to cover the tread depth.
	pitch := plan.BoardWidthMm + product.GapMm
	boardsPerTread := 1
	if pitch > 0 {
		boardsPerTread = int(math.Ceil(treadDepthMm / pitch))
	}

	stringers := int(math.Ceil(s.WidthMm/stringerIntervalMm)) + 1
	if stringers < 2 {
		stringers = 2
	}
	run := float64(steps) * treadRunMm
	stringerLen := math.Hypot(plan.DeckHeightMm, run)

	out := &model.StairsQuantities{
		StepCount:        steps,
		RiseMm:           rise,
		TreadBoardsQty:   steps * boardsPerTread,
		TreadLengthMm:    s.WidthMm,
		StringerQty:      stringers,
		StringerLengthMm: stringerLen,
	}
	if s.WithRisers {
		out.RiserQty = steps
	}

	out.FastenerQty = out.TreadBoardsQty * stringers
	if fastening == model.FasteningScrew {
		out.FastenerQty *= rules.ScrewsPerIntersection
	}
	return out
}
