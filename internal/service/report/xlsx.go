package report

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

func renderXLSX(doc report.Document) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close workbook", "error", err)
		}
	}()

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create title style: %w", err)
	}

	headStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1E1E1E"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	bodyStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create body style: %w", err)
	}

	keepDefault := false
	for i, section := range doc.Sections {
		sheet := section.SheetName
		if strings.EqualFold(sheet, defaultSheet) {
			keepDefault = true
		}

		idx, err := f.NewSheet(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to create sheet %q: %w", sheet, err)
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}

		if err := writeSection(f, sheet, doc, section, titleStyle, headStyle, bodyStyle); err != nil {
			return nil, err
		}
	}

	if !keepDefault && len(doc.Sections) > 0 {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return nil, fmt.Errorf("failed to delete default sheet: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf, nil
}

func writeSection(f *excelize.File, sheet string, doc report.Document, section report.Section, titleStyle, headStyle, bodyStyle int) error {
	if err := f.SetColWidth(sheet, "A", "A", 16); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "E", 22); err != nil {
		return err
	}

	row := 1
	if err := f.MergeCell(sheet, cell(1, row), cell(len(doc.Columns), row)); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell(1, row), doc.Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cell(1, row), cell(1, row), titleStyle); err != nil {
		return err
	}

	row += 2
	for _, line := range section.Header {
		if err := f.SetCellValue(sheet, cell(1, row), line.Label); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell(2, row), line.Value); err != nil {
			return err
		}
		row++
	}

	row++
	for i, col := range doc.Columns {
		if err := f.SetCellValue(sheet, cell(i+1, row), col); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, cell(1, row), cell(len(doc.Columns), row), headStyle); err != nil {
		return err
	}

	first := row + 1
	for _, r := range section.Rows {
		row++
		for i, value := range r.Cells {
			if err := f.SetCellValue(sheet, cell(i+1, row), value); err != nil {
				return err
			}
		}
	}
	if row >= first {
		if err := f.SetCellStyle(sheet, cell(1, first), cell(len(doc.Columns), row), bodyStyle); err != nil {
			return err
		}
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
