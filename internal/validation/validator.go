// =============================================================================
// R2 Troubleshooter - Column Check
// =============================================================================
//
// The summary table is not validated for content; the only check is whether
// the columns the converter reads are present in the header.
//
// SEVERITY:
//   - Default: a missing column is a warning. Every row gets an empty field
//     in that position and the run continues.
//   - Strict:  a missing column is fatal and nothing is written.
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ginjaninja78/r2-troubleshooter/internal/types"
)

// ErrMissingColumns is returned in strict mode when expected columns are absent.
var ErrMissingColumns = errors.New("missing expected columns")

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// Report describes the column check for one input table.
type Report struct {
	// SourceFile is the table the report refers to.
	SourceFile string

	// RowCount is the number of data rows in the table.
	RowCount int

	// Missing lists the expected columns absent from the header, in the
	// order they were expected.
	Missing []string
}

// OK reports whether every expected column was found.
func (r *Report) OK() bool {
	return len(r.Missing) == 0
}

// Err returns an error wrapping ErrMissingColumns, or nil when r is OK.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("%w in %s: %s", ErrMissingColumns, r.SourceFile, quoteJoin(r.Missing))
}

// =============================================================================
// VALIDATOR
// =============================================================================

// CheckColumns returns the entries of expected that do not appear in headers.
// Matching is exact, as is the converter's lookup.
func CheckColumns(headers, expected []string) []string {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}

	var missing []string
	for _, name := range expected {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Validate checks table against the expected columns.
func Validate(table *types.Table, expected []string) *Report {
	return &Report{
		SourceFile: table.SourceFile,
		RowCount:   len(table.Records),
		Missing:    CheckColumns(table.Headers, expected),
	}
}

func quoteJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
