package report

import (
	"bytes"
	"fmt"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/report"
	"github.com/jung-kurt/gofpdf"
)

// Column widths on an A4 portrait page with 15mm side margins.
var pdfColumnWidths = [5]float64{32, 37, 37, 37, 37}

const (
	pdfMargin     = 15.0
	pdfRowHeight  = 7.0
	pdfLineHeight = 6.0
)

func renderPDF(doc report.Document) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, 10, pdfMargin)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, section := range doc.Sections {
		pdf.AddPage()

		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, tr(doc.Title), "", 1, "C", false, 0, "")
		pdf.Ln(2)

		pdf.SetFont("Arial", "", 10)
		for _, line := range section.Header {
			pdf.CellFormat(0, pdfLineHeight, tr(fmt.Sprintf("%s: %s", line.Label, line.Value)), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)

		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(30, 30, 30)
		pdf.SetTextColor(255, 255, 255)
		for i, col := range doc.Columns {
			pdf.CellFormat(pdfColumnWidths[i], pdfRowHeight, tr(col), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, row := range section.Rows {
			for i, cell := range row.Cells {
				pdf.CellFormat(pdfColumnWidths[i], pdfRowHeight, tr(cell), "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf, nil
}
