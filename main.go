// =============================================================================
// R2 Troubleshooter - Main Entry Point
// =============================================================================
//
// r2table turns the Trimmomatic trimming summary into a MultiQC
// custom-content table and can run MultiQC afterwards.
//
// USAGE:
//   r2table              - Convert results/qc_summary.csv
//   r2table validate     - Check the input columns without writing
//   r2table version      - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Readers, converter, writer, MultiQC runner
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/r2-troubleshooter/cmd"
)

func main() {
	cmd.Execute()
}
