// =============================================================================
// R2 Troubleshooter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser / xlsxparser (produce a Table)
//   - converter              (turns Records into Rows)
//   - tsvwriter              (renders Rows)
//   - validation             (checks Table headers)
//
// =============================================================================

package types

// =============================================================================
// INPUT TYPES
// =============================================================================

// Record is one row of the input summary table, keyed by column name.
type Record map[string]string

// Get returns the value stored under name, or "" when the column is absent.
func (r Record) Get(name string) string {
	return r[name]
}

// Table is a parsed input summary.
type Table struct {
	// Headers contains the column names in file order.
	Headers []string

	// Records contains one entry per data row, in file order.
	Records []Record

	// SourceFile is the path the table was read from.
	SourceFile string
}

// =============================================================================
// OUTPUT TYPES
// =============================================================================

// RowWidth is the number of fields in every output row.
const RowWidth = 11

// Row is one line of the output table.
type Row [RowWidth]string
