package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XlsxExtractor reads OOXML spreadsheets. Each sheet emits a boundary
// marker followed by its non-empty rows, cells joined by the separator.
type XlsxExtractor struct{}

func (e *XlsxExtractor) Extract(_ context.Context, _ string, data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("xlsx: open workbook: %w", err)
	}
	defer f.Close()

	var parts []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}

		lines := []string{fmt.Sprintf("--- Sheet: %s ---", sheet)}
		for _, row := range rows {
			if !rowHasContent(row) {
				continue
			}
			lines = append(lines, strings.Join(row, cellSeparator))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}

	return strings.Join(parts, "\n\n"), nil
}

func rowHasContent(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}
