// =============================================================================
// R2 Troubleshooter - TSV Writer Module
// =============================================================================
//
// This module renders output rows as a MultiQC custom-content table. MultiQC
// picks the file up by its "_mqc.tsv" suffix and reads the "#" comment lines
// as section metadata.
//
// DOCUMENT STRUCTURE:
//
//   # id: r2_troubleshooter                      <- metadata comment lines
//   # section_name: ...
//   # description: ...
//   # plot_type: table
//   # file_format: tsv
//   Sample<TAB>has_R1<TAB>...<TAB>note           <- column header
//   S1<TAB>true<TAB>...<TAB>ok                   <- one line per row
//
//   Rows are joined by "\n". The document ends with "\n" only when at least
//   one row was written; with no rows it is exactly Header.
//
// =============================================================================

package tsvwriter

import (
	"bytes"
	"strings"

	"github.com/ginjaninja78/r2-troubleshooter/internal/types"
	"github.com/ginjaninja78/r2-troubleshooter/pkg/utils"
)

// Header is the fixed preamble of every output document.
const Header = "# id: r2_troubleshooter\n" +
	"# section_name: R2 Troubleshooter — pairing & trimming summary\n" +
	"# description: Derived from Trimmomatic run summary (qc_summary.csv). Rows show pairs + drop stats; SKIP/ERROR should be added by log-aware tools if needed.\n" +
	"# plot_type: table\n" +
	"# file_format: tsv\n" +
	"Sample\thas_R1\thas_R2\tinput_pairs\tboth_surviving\tforward_only\treverse_only\tdropped\tremoved_pct\tstatus\tnote\n"

// =============================================================================
// GENERATION FUNCTIONS
// =============================================================================

// Generate renders the full document for rows.
func Generate(rows []types.Row) []byte {
	var buf bytes.Buffer
	buf.WriteString(Header)

	for i, row := range rows {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Join(row[:], "\t"))
	}
	if len(rows) > 0 {
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}

// Write renders rows and writes them to path, creating missing parent
// directories. The file is replaced atomically.
func Write(path string, rows []types.Row) error {
	if err := utils.EnsureParentDir(path); err != nil {
		return err
	}
	return utils.WriteFileAtomic(path, Generate(rows), 0o644)
}
