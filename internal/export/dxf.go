package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/deckcalc/internal/geom"
	"github.com/piwi3910/deckcalc/internal/model"
)

// pileMarkerRadiusMm is the circle radius used to mark footing piles.
const pileMarkerRadiusMm = 75.0

// LayoutDXF writes the structure layout as a DXF drawing with one layer per
// member kind (outline, bearers, joists, piles), in the plan's own mm
// coordinates, for import into CAD.
func LayoutDXF(path string, plan model.Plan, layout model.StructureLayout) error {
	if len(plan.Polygon.Outer) < 3 {
		return fmt.Errorf("plan polygon has no drawable outline")
	}

	d := dxf.NewDrawing()

	d.AddLayer("OUTLINE", dxf.DefaultColor, dxf.DefaultLineType, true)
	drawRing(d, plan.Polygon.Outer)
	for _, hole := range plan.Polygon.Holes {
		drawRing(d, hole)
	}

	d.AddLayer("BEARERS", color.Red, table.LT_CONTINUOUS, true)
	drawSegments(d, layout.Bearers)

	d.AddLayer("JOISTS", color.Green, table.LT_CONTINUOUS, true)
	drawSegments(d, layout.Joists)

	d.AddLayer("PILES", color.Blue, table.LT_CONTINUOUS, true)
	for _, p := range layout.Piles {
		d.Circle(p.X, p.Y, 0.0, pileMarkerRadiusMm)
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF: %w", err)
	}
	return nil
}

func drawRing(d *drawing.Drawing, ring []geom.Point) {
	for i, a := range ring {
		b := ring[(i+1)%len(ring)]
		d.Line(a.X, a.Y, 0.0, b.X, b.Y, 0.0)
	}
}

func drawSegments(d *drawing.Drawing, segments []geom.LineSegment) {
	for _, s := range segments {
		d.Line(s.X1, s.Y1, 0.0, s.X2, s.Y2, 0.0)
	}
}
