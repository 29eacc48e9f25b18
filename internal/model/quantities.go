package model

import "github.com/piwi3910/deckcalc/internal/geom"

// AreaBreakdown is the deck surface area split into gross outline area and
// hole cutouts, in square meters.
type AreaBreakdown struct {
	GrossM2   float64 `json:"gross_m2"`
	CutoutsM2 float64 `json:"cutouts_m2"`
	DeckM2    float64 `json:"deck_m2"` // Gross minus cutouts
}

// BoardQuantities is the decking board purchase estimate.
type BoardQuantities struct {
	Pieces        int     `json:"pieces"`          // Stock boards to buy
	UsedLengthMm  float64 `json:"used_length_mm"`  // Total board length laid on the deck
	StockLengthMm float64 `json:"stock_length_mm"` // Length of one purchased board
	LossRate      float64 `json:"loss_rate"`       // Applied loss rate (0 in pro mode)
}

// SubstructureQuantities are the total member lengths to order.
type SubstructureQuantities struct {
	BearerLengthMm   float64 `json:"bearer_length_mm"`
	JoistLengthMm    float64 `json:"joist_length_mm"`
	RimJoistLengthMm float64 `json:"rim_joist_length_mm"`
}

// FastenerQuantities is the clip or screw count for the deck surface.
type FastenerQuantities struct {
	Mode FasteningMode `json:"mode"`
	Qty  int           `json:"qty"`
}

// LedgerQuantities covers the wall-attached edges.
type LedgerQuantities struct {
	LengthM        float64 `json:"length_m"`
	AnchorBoltsQty int     `json:"anchor_bolts_qty"`
}

// PostQuantities covers the posts between footings and bearers on an
// elevated deck.
type PostQuantities struct {
	Qty      int     `json:"qty"`
	LengthMm float64 `json:"length_mm"` // Per post
}

// StairsQuantities is the output block of the stairs sub-calculator,
// merged verbatim into Quantities.
type StairsQuantities struct {
	StepCount        int     `json:"step_count"`
	RiseMm           float64 `json:"rise_mm"` // Actual riser height
	TreadBoardsQty   int     `json:"tread_boards_qty"`
	TreadLengthMm    float64 `json:"tread_length_mm"` // Per tread board
	StringerQty      int     `json:"stringer_qty"`
	StringerLengthMm float64 `json:"stringer_length_mm"`
	RiserQty         int     `json:"riser_qty,omitempty"`
	FastenerQty      int     `json:"fastener_qty"`
}

// StructureLayout holds the derived substructure geometry in the plan's
// original, unrotated coordinates for downstream visualization.
type StructureLayout struct {
	Piles   []geom.Point       `json:"piles"`
	Bearers []geom.LineSegment `json:"bearers"`
	Joists  []geom.LineSegment `json:"joists"`
}

// PieceSource tells whether a cut piece came from a fresh stock board or a
// reused offcut.
type PieceSource string

const (
	SourceStock  PieceSource = "stock"
	SourceOffcut PieceSource = "offcut"
)

// CutPiece is one cut within a row of the cutting plan.
type CutPiece struct {
	Source     PieceSource `json:"source"`
	ColorGroup string      `json:"color_group"` // One id per physical board purchased
	LengthMm   float64     `json:"length_mm"`
}

// CutRow is the cutting solution for one board row of the deck.
type CutRow struct {
	RowIndex      int        `json:"row_index"`
	RequiredLenMm float64    `json:"required_len_mm"`
	Pieces        []CutPiece `json:"pieces"`
	OffcutMm      float64    `json:"offcut_mm"` // Trailing leftover, for visualization only
}

// CutPlan is the full pro-mode cutting plan.
type CutPlan struct {
	StockLengthMm float64   `json:"stock_length_mm"`
	Rows          []CutRow  `json:"rows"`
	Offcuts       []float64 `json:"offcuts"` // Residual pool after the last row
}

// BoardsPurchased returns the number of fresh stock boards the plan cuts.
func (cp CutPlan) BoardsPurchased() int {
	groups := make(map[string]bool)
	for _, row := range cp.Rows {
		for _, p := range row.Pieces {
			if p.Source == SourceStock {
				groups[p.ColorGroup] = true
			}
		}
	}
	return len(groups)
}

// Quantities is the full material takeoff for one plan computation.
type Quantities struct {
	Area         AreaBreakdown          `json:"area"`
	Boards       BoardQuantities        `json:"boards"`
	Substructure SubstructureQuantities `json:"substructure"`
	FootingQty   int                    `json:"footing_qty"`
	AnchorQty    int                    `json:"anchor_qty"`
	Fasteners    FastenerQuantities     `json:"fasteners"`
	Ledger       *LedgerQuantities      `json:"ledger,omitempty"`
	Posts        *PostQuantities        `json:"posts,omitempty"`
	Stairs       *StairsQuantities      `json:"stairs,omitempty"`
	Layout       *StructureLayout       `json:"layout,omitempty"`
	CutPlan      *CutPlan               `json:"cut_plan,omitempty"`
}

// StairsFunc is the boundary to the stairs sub-calculator. The engine treats
// it as opaque: a nil function or a nil result simply leaves Quantities.Stairs
// unset.
type StairsFunc func(plan Plan, product Product, rules Ruleset, fastening FasteningMode) *StairsQuantities
