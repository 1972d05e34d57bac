// =============================================================================
// R2 Troubleshooter - Validate Command
// =============================================================================
//
// This file defines the 'validate' command. It reads the input summary the
// same way a conversion would and reports the row count and any expected
// columns that are missing. Nothing is written.
//
// COMMAND USAGE:
//   r2table validate [--csv path] [--config file]
//
// EXIT STATUS:
//   0 when every expected column is present, 1 otherwise.
//
// =============================================================================

package cmd

import (
	"github.com/ginjaninja78/r2-troubleshooter/internal/converter"
	"github.com/ginjaninja78/r2-troubleshooter/internal/validation"
	"github.com/spf13/cobra"
)

// newValidateCmd builds the 'validate' command.
func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the input summary without writing output",
		Long: `Read the input summary, count its rows and report any of the expected
columns (Sample, Input Read Pairs, Both Surviving, Forward Only,
Reverse Only, Dropped, Percent Removed) that are missing from its header.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			table, err := converter.LoadTable(cfg.InputPath, cfg.CSVSettings)
			if err != nil {
				return err
			}

			report := validation.Validate(table, converter.SourceColumns())
			out := cmd.OutOrStdout()

			if report.OK() {
				successColor.Fprintf(out, "✓ %s: %d rows, all expected columns present\n", cfg.InputPath, report.RowCount)
				return nil
			}

			warnColor.Fprintf(out, "✗ %s: %d rows, %d expected column(s) missing\n", cfg.InputPath, report.RowCount, len(report.Missing))
			for _, name := range report.Missing {
				warnColor.Fprintf(out, "  - %s\n", name)
			}
			return report.Err()
		},
	}
}
