// =============================================================================
// R2 Troubleshooter - XLSX Summary Reader
// =============================================================================
//
// Some sequencing cores hand the trimming summary over as an Excel workbook
// rather than a CSV export. This module reads such a workbook into the same
// Table the CSV parser produces, so the converter does not care which format
// the summary arrived in.
//
// SHEET LAYOUT (Expected):
//
//   | Column A | Column B         | Column C       | ... | Column G        |
//   |----------|------------------|----------------|-----|-----------------|
//   | Sample   | Input Read Pairs | Both Surviving | ... | Percent Removed |
//   | S1       | 1,200            | 1000           | ... | 10.0            |
//
//   Column order does not matter; columns are matched by header name.
//
// RULES:
//   - The first non-empty row is the header row.
//   - Fully blank rows are skipped.
//   - Cell values are read as displayed (excelize formatted values).
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/r2-troubleshooter/internal/types"
	"github.com/xuri/excelize/v2"
)

// IsWorkbook reports whether path names an .xlsx workbook.
func IsWorkbook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads the summary sheet of an XLSX workbook.
//
// PARAMETERS:
//   - workbookPath: The path to the .xlsx file.
//   - sheet:        The worksheet name; "" selects the first sheet.
//
// RETURNS:
//   - The parsed table.
//   - An error if the workbook or the sheet cannot be read.
func Parse(workbookPath, sheet string) (*types.Table, error) {
	f, err := excelize.OpenFile(workbookPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	table := &types.Table{SourceFile: workbookPath}

	for _, row := range rows {
		if isRowEmpty(row) {
			continue
		}

		if table.Headers == nil {
			table.Headers = row
			table.Records = []types.Record{}
			continue
		}

		record := make(types.Record, len(table.Headers))
		for i, header := range table.Headers {
			if i >= len(row) {
				break
			}
			record[header] = row[i]
		}
		table.Records = append(table.Records, record)
	}

	return table, nil
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
