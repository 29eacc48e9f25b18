// Package model defines the plain value types exchanged between the deck
// quantity engine, its exporters and the calling UI: the input plan, product
// and ruleset records and the output quantity and cut-plan records.
package model

import (
	"github.com/google/uuid"

	"github.com/piwi3910/deckcalc/internal/geom"
)

// Mode selects the calculation profile.
type Mode string

const (
	ModeConsumer Mode = "consumer" // Loss-rate based board estimate
	ModePro      Mode = "pro"      // Exact cutting plan with offcut reuse
)

// FasteningMode selects how boards attach to the joists.
type FasteningMode string

const (
	FasteningClip  FasteningMode = "clip"  // One hidden clip per board/joist intersection
	FasteningScrew FasteningMode = "screw" // ScrewsPerIntersection screws per intersection
)

// SubstructureOverrides optionally replaces the computed bearer/joist length
// totals, for plans where the substructure is ordered separately.
type SubstructureOverrides struct {
	BearerLengthMm float64 `json:"bearer_length_mm,omitempty"`
	JoistLengthMm  float64 `json:"joist_length_mm,omitempty"`
}

// StairsPlan describes an optional flight of stairs off the deck edge.
type StairsPlan struct {
	WidthMm      float64 `json:"width_mm"`                 // Stair width (mm)
	TargetRiseMm float64 `json:"target_rise_mm,omitempty"` // Preferred riser height, 0 = default
	WithRisers   bool    `json:"with_risers"`              // Closed risers between treads
}

// Plan is the user-drawn deck plan: the floor polygon plus layout choices.
type Plan struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Polygon      geom.Polygon           `json:"polygon"`        // mm coordinates
	BoardWidthMm float64                `json:"board_width_mm"` // Selected decking board width
	DirectionDeg float64                `json:"direction_deg"`  // Decking direction in degrees
	DeckHeightMm float64                `json:"deck_height_mm,omitempty"`
	LedgerEdges  []int                  `json:"ledger_edges,omitempty"` // Outer edge indices fixed to a wall
	Overrides    *SubstructureOverrides `json:"overrides,omitempty"`
	Stairs       *StairsPlan            `json:"stairs,omitempty"`
}

// NewPlan creates an empty named plan with a short unique id.
func NewPlan(name string) Plan {
	return Plan{
		ID:   uuid.New().String()[:8],
		Name: name,
	}
}

// LedgerEdgeSet returns the ledger edge indices as a set for lookup.
func (p Plan) LedgerEdgeSet() map[int]bool {
	set := make(map[int]bool, len(p.LedgerEdges))
	for _, i := range p.LedgerEdges {
		set[i] = true
	}
	return set
}

// Product describes the decking board product being quoted.
type Product struct {
	Name           string    `json:"name"`
	StockLengthMm  float64   `json:"stock_length_mm"` // Purchasable board length
	WidthOptionsMm []float64 `json:"width_options_mm"`
	GapMm          float64   `json:"gap_mm"`       // Gap between boards
	ThicknessMm    float64   `json:"thickness_mm"` // Unused by the engine, carried for exports
}

// LossModel are the coefficients of the consumer-mode loss-rate estimate.
type LossModel struct {
	Base         float64 `json:"base"`          // Loss rate for a plain rectangle
	VertexFactor float64 `json:"vertex_factor"` // Added per vertex beyond 4
	CutoutFactor float64 `json:"cutout_factor"` // Added per hole
	Cap          float64 `json:"cap"`           // Upper bound on the total rate
}

// Ruleset holds the spacing rules and mode configuration for a computation.
type Ruleset struct {
	Mode                  Mode      `json:"mode"`
	BearerSpacingMm       float64   `json:"bearer_spacing_mm"`  // Rated maximum bearer span
	JoistSpacingMm        float64   `json:"joist_spacing_mm"`   // Joist center distance
	AnchorSpacingMm       float64   `json:"anchor_spacing_mm"`  // Ledger anchor bolt interval
	FootingSpacingMm      float64   `json:"footing_spacing_mm"` // Perimeter footing interval
	ScrewsPerIntersection int       `json:"screws_per_intersection"`
	Loss                  LossModel `json:"loss"`
	KerfMm                float64   `json:"kerf_mm,omitempty"` // Saw kerf, pro mode only
}

// DefaultProduct returns a typical 3 m decking board product.
func DefaultProduct() Product {
	return Product{
		Name:           "Decking board",
		StockLengthMm:  3000,
		WidthOptionsMm: []float64{90, 120, 140},
		GapMm:          5,
		ThicknessMm:    28,
	}
}

// DefaultRuleset returns consumer-mode rules with common residential spacing.
func DefaultRuleset() Ruleset {
	return Ruleset{
		Mode:                  ModeConsumer,
		BearerSpacingMm:       1800,
		JoistSpacingMm:        450,
		AnchorSpacingMm:       600,
		FootingSpacingMm:      1500,
		ScrewsPerIntersection: 2,
		Loss: LossModel{
			Base:         0.05,
			VertexFactor: 0.01,
			CutoutFactor: 0.02,
			Cap:          0.20,
		},
		KerfMm: 3,
	}
}

// Project ties a plan and its configuration together for save/load.
type Project struct {
	Name      string        `json:"name"`
	Plan      Plan          `json:"plan"`
	Product   Product       `json:"product"`
	Rules     Ruleset       `json:"rules"`
	Fastening FasteningMode `json:"fastening"`
	Result    *Quantities   `json:"result,omitempty"`
}

// NewProject returns a project with default product and rules.
func NewProject(name string) Project {
	return Project{
		Name:      name,
		Plan:      NewPlan(name),
		Product:   DefaultProduct(),
		Rules:     DefaultRuleset(),
		Fastening: FasteningScrew,
	}
}
