package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/deckcalc/internal/model"
)

// BoardLabel holds the data encoded into one purchased board's QR code: the
// colour group and every cut taken from that board, in cutting order.
type BoardLabel struct {
	Group         string    `json:"group"`
	StockLengthMm float64   `json:"stock_length_mm"`
	Cuts          []float64 `json:"cuts_mm"`
	Rows          []int     `json:"rows"` // Board course index of each cut
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10
// rows per page). Each label cell is approximately 66.7mm x 25.4mm on US
// Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// BoardLabels generates a PDF of QR-coded labels, one per physical board the
// cut plan purchases. Each label lists the board's cuts and carries the same
// data as JSON in a QR code, so the board can be marked up at the saw.
func BoardLabels(path string, plan model.CutPlan) error {
	labels := CollectBoardLabels(plan)
	if len(labels) == 0 {
		return fmt.Errorf("no boards to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderBoardLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %s: %w", label.Group, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderBoardLabel draws a single label at the given position.
func renderBoardLabel(pdf *fpdf.Fpdf, x, y float64, label BoardLabel) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(label)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s", label.Group)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Board id
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	title := fmt.Sprintf("Board %s (%.0f mm)", label.Group, label.StockLengthMm)
	pdf.CellFormat(textW, 4.5, title, "", 1, "L", false, 0, "")

	// Cut list, truncated to the label
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	cuts := ""
	for i, c := range label.Cuts {
		if i > 0 {
			cuts += " | "
		}
		cuts += fmt.Sprintf("%.0f", c)
	}
	if pdf.GetStringWidth(cuts) > textW {
		for len(cuts) > 0 && pdf.GetStringWidth(cuts+"...") > textW {
			cuts = cuts[:len(cuts)-1]
		}
		cuts += "..."
	}
	pdf.CellFormat(textW, 3.5, cuts, "", 1, "L", false, 0, "")

	// Course info
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("%d cuts", len(label.Cuts)), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectBoardLabels extracts one label per purchased board from a cut plan,
// in colour-group order, for use in testing or alternative formats.
func CollectBoardLabels(plan model.CutPlan) []BoardLabel {
	index := make(map[string]int)
	var labels []BoardLabel
	for _, row := range plan.Rows {
		for _, p := range row.Pieces {
			i, ok := index[p.ColorGroup]
			if !ok {
				if p.Source != model.SourceStock {
					continue // Offcut from a board already labelled
				}
				index[p.ColorGroup] = len(labels)
				labels = append(labels, BoardLabel{
					Group:         p.ColorGroup,
					StockLengthMm: plan.StockLengthMm,
				})
				i = len(labels) - 1
			}
			labels[i].Cuts = append(labels[i].Cuts, p.LengthMm)
			labels[i].Rows = append(labels[i].Rows, row.RowIndex)
		}
	}
	return labels
}
