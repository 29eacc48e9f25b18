// Package export writes deck computation results to the formats the quoting
// workflow consumes: a cut-plan PDF, QR-coded board labels, a bill-of-
// materials workbook and a structure-layout DXF.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/deckcalc/internal/model"
)

// groupColor represents an RGB color for one purchased board.
type groupColor struct {
	R, G, B int
}

// groupColors is the palette cycled over colour groups; matches the scheme
// used by the cut-plan visualization.
var groupColors = []groupColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	rowBarHeight = 6.0
	rowGap       = 3.0
)

var usableRowsHeight float64 = pageHeight - marginTop - headerHeight - marginBottom

var rowsPerPage = int(usableRowsHeight / (rowBarHeight + rowGap))

// CutPlanPDF renders the pro-mode cutting plan: one bar per board course,
// each cut piece filled with its colour group, followed by a summary page.
func CutPlanPDF(path string, plan model.CutPlan, planName string) error {
	if len(plan.Rows) == 0 {
		return fmt.Errorf("no cut rows to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	colors := assignGroupColors(plan)
	scale := (pageWidth - marginLeft - marginRight - 30) / plan.StockLengthMm

	for i, row := range plan.Rows {
		if i%rowsPerPage == 0 {
			pdf.AddPage()
			renderCutPlanHeader(pdf, plan, planName)
		}
		y := marginTop + headerHeight + float64(i%rowsPerPage)*(rowBarHeight+rowGap)
		renderCutRow(pdf, row, scale, y, colors)
	}

	pdf.AddPage()
	renderCutPlanSummary(pdf, plan, planName)

	return pdf.OutputFileAndClose(path)
}

func renderCutPlanHeader(pdf *fpdf.Fpdf, plan model.CutPlan, planName string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Cutting plan: %s (stock %.0f mm)", planName, plan.StockLengthMm)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")
}

func renderCutRow(pdf *fpdf.Fpdf, row model.CutRow, scale, y float64, colors map[string]groupColor) {
	// Row index and required length on the left
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(25, rowBarHeight, fmt.Sprintf("#%d  %.0f mm", row.RowIndex, row.RequiredLenMm), "", 0, "L", false, 0, "")

	x := marginLeft + 28
	for _, piece := range row.Pieces {
		w := piece.LengthMm * scale
		col := colors[piece.ColorGroup]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		style := "FD"
		if piece.Source == model.SourceOffcut {
			// Offcut pieces get an outline-only style so reuse stands out.
			style = "D"
			pdf.SetDrawColor(col.R, col.G, col.B)
			pdf.SetLineWidth(0.5)
		}
		pdf.Rect(x, y, w, rowBarHeight, style)

		if w > 12 {
			pdf.SetFont("Helvetica", "", labelFontSize(w))
			label := fmt.Sprintf("%s %.0f", piece.ColorGroup, piece.LengthMm)
			labelW := pdf.GetStringWidth(label)
			if labelW < w-1 {
				pdf.SetXY(x+(w-labelW)/2, y+1)
				pdf.CellFormat(labelW, rowBarHeight-2, label, "", 0, "C", false, 0, "")
			}
		}
		x += w
	}

	if row.OffcutMm > 0 {
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(120, 120, 120)
		pdf.SetXY(x+1, y)
		pdf.CellFormat(20, rowBarHeight, fmt.Sprintf("+%.0f", row.OffcutMm), "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
}

func renderCutPlanSummary(pdf *fpdf.Fpdf, plan model.CutPlan, planName string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Summary", "", 1, "L", false, 0, "")

	var required, offcutTotal float64
	reused := 0
	for _, row := range plan.Rows {
		required += row.RequiredLenMm
		for _, p := range row.Pieces {
			if p.Source == model.SourceOffcut {
				reused++
			}
		}
	}
	for _, o := range plan.Offcuts {
		offcutTotal += o
	}

	lines := []string{
		fmt.Sprintf("Plan: %s", planName),
		fmt.Sprintf("Boards to purchase: %d x %.0f mm", plan.BoardsPurchased(), plan.StockLengthMm),
		fmt.Sprintf("Board courses: %d", len(plan.Rows)),
		fmt.Sprintf("Required length: %.1f m", required/1000),
		fmt.Sprintf("Offcut pieces reused: %d", reused),
		fmt.Sprintf("Residual offcut stock: %d pieces, %.1f m", len(plan.Offcuts), offcutTotal/1000),
	}

	pdf.SetFont("Helvetica", "", 10)
	y := marginTop + headerHeight + 4
	for _, line := range lines {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 6, line, "", 1, "L", false, 0, "")
		y += 7
	}
}

// assignGroupColors maps colour groups to palette entries in first-seen
// order so a board keeps its color across every row it appears in.
func assignGroupColors(plan model.CutPlan) map[string]groupColor {
	colors := make(map[string]groupColor)
	next := 0
	for _, row := range plan.Rows {
		for _, p := range row.Pieces {
			if _, ok := colors[p.ColorGroup]; !ok {
				colors[p.ColorGroup] = groupColors[next%len(groupColors)]
				next++
			}
		}
	}
	return colors
}

// labelFontSize scales a font size to the available bar width.
func labelFontSize(w float64) float64 {
	return math.Max(5, math.Min(8, w/6))
}
