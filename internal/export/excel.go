package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/deckcalc/internal/model"
)

// BillOfMaterials writes the computed quantities as an Excel workbook: a
// quantities sheet with one line per material, and a cut-plan sheet when the
// computation produced one.
func BillOfMaterials(path string, project model.Project) error {
	q := project.Result
	if q == nil {
		return fmt.Errorf("project has no computed result")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Quantities"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to set up workbook: %w", err)
	}

	headers := []string{"Item", "Quantity", "Unit", "Detail"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	type line struct {
		item   string
		qty    float64
		unit   string
		detail string
	}
	lines := []line{
		{"Deck area", q.Area.DeckM2, "m2", fmt.Sprintf("gross %.2f m2, cutouts %.2f m2", q.Area.GrossM2, q.Area.CutoutsM2)},
		{"Decking boards", float64(q.Boards.Pieces), "pcs", fmt.Sprintf("%.0f mm stock, %.1f m laid, loss %.0f%%", q.Boards.StockLengthMm, q.Boards.UsedLengthMm/1000, q.Boards.LossRate*100)},
		{"Bearers", q.Substructure.BearerLengthMm / 1000, "m", ""},
		{"Joists", q.Substructure.JoistLengthMm / 1000, "m", ""},
		{"Rim joists", q.Substructure.RimJoistLengthMm / 1000, "m", ""},
		{"Footings", float64(q.FootingQty), "pcs", ""},
		{"Post anchors", float64(q.AnchorQty), "pcs", ""},
		{"Fasteners", float64(q.Fasteners.Qty), "pcs", string(q.Fasteners.Mode)},
	}
	if q.Ledger != nil {
		lines = append(lines,
			line{"Ledger", q.Ledger.LengthM, "m", ""},
			line{"Ledger anchor bolts", float64(q.Ledger.AnchorBoltsQty), "pcs", ""},
		)
	}
	if q.Posts != nil {
		lines = append(lines, line{"Posts", float64(q.Posts.Qty), "pcs", fmt.Sprintf("%.0f mm each", q.Posts.LengthMm)})
	}
	if q.Stairs != nil {
		lines = append(lines,
			line{"Stair treads", float64(q.Stairs.TreadBoardsQty), "pcs", fmt.Sprintf("%.0f mm each", q.Stairs.TreadLengthMm)},
			line{"Stair stringers", float64(q.Stairs.StringerQty), "pcs", fmt.Sprintf("%.0f mm each", q.Stairs.StringerLengthMm)},
			line{"Stair fasteners", float64(q.Stairs.FastenerQty), "pcs", ""},
		)
		if q.Stairs.RiserQty > 0 {
			lines = append(lines, line{"Stair risers", float64(q.Stairs.RiserQty), "pcs", ""})
		}
	}

	for i, l := range lines {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), l.item)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), l.qty)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), l.unit)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), l.detail)
	}
	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "D", "D", 44)

	if q.CutPlan != nil {
		if err := writeCutPlanSheet(f, *q.CutPlan); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeCutPlanSheet(f *excelize.File, plan model.CutPlan) error {
	const sheet = "Cut plan"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to add cut plan sheet: %w", err)
	}

	headers := []string{"Course", "Required (mm)", "Board", "Source", "Cut (mm)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range plan.Rows {
		for _, p := range r.Pieces {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.RowIndex)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.RequiredLenMm)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.ColorGroup)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), string(p.Source))
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), p.LengthMm)
			row++
		}
	}
	return nil
}
