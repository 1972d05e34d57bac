// =============================================================================
// R2 Troubleshooter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Running the root
// command converts the trimming summary into the MultiQC table and, when
// asked, renders the MultiQC report.
//
// COBRA CLI STRUCTURE:
//   rootCmd (r2table)            convert qc_summary.csv -> *_mqc.tsv
//   ├── validateCmd (r2table validate)
//   └── versionCmd  (r2table version)
//
// CONFIGURATION:
//   Flags override the YAML file given by --config, which overrides the
//   built-in defaults. A missing default config file is ignored.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/ginjaninja78/r2-troubleshooter/internal/config"
	"github.com/ginjaninja78/r2-troubleshooter/internal/converter"
	"github.com/ginjaninja78/r2-troubleshooter/internal/logging"
	"github.com/ginjaninja78/r2-troubleshooter/internal/multiqc"
	"github.com/spf13/cobra"
)

// defaultConfigFile is read when present; --config makes it mandatory.
const defaultConfigFile = "r2table.yaml"

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
)

// =============================================================================
// OPTIONS
// =============================================================================

// options holds the raw flag values shared by all commands.
type options struct {
	cfgFile string
	verbose bool
	strict  bool

	inputPath  string
	outputPath string

	runMultiQC         bool
	multiqcOutDir      string
	multiqcName        string
	multiqcAnalysisDir string
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "r2table",
		Short: "Build the R2 Troubleshooter MultiQC table from a trimming summary",
		Long: `r2table converts the Trimmomatic run summary (qc_summary.csv) into a
tab-separated MultiQC custom-content table, then optionally runs MultiQC.

Numeric columns have thousands separators removed. Missing input columns
produce empty fields and a warning (or an error with --strict).

Example Usage:
  r2table                                   # convert with default paths
  r2table --csv qc.csv --out qc_mqc.tsv     # explicit paths
  r2table --run-multiqc                     # convert, then render the report
  r2table validate --csv qc.csv             # check columns without writing`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts)
		},
	}

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.cfgFile, "config", defaultConfigFile, "Path to the YAML configuration file")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output for debugging")
	pf.StringVar(&opts.inputPath, "csv", config.DefaultInputPath, "Input trimming summary (.csv, .csv.gz, .xlsx or - for stdin)")
	pf.BoolVar(&opts.strict, "strict", false, "Fail when expected input columns are missing")

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================

	f := rootCmd.Flags()
	f.StringVar(&opts.outputPath, "out", config.DefaultOutputPath, "Output MultiQC table")
	f.BoolVar(&opts.runMultiQC, "run-multiqc", false, "Run MultiQC after writing the table")
	f.StringVar(&opts.multiqcOutDir, "multiqc-outdir", config.DefaultMultiQCOutDir, "MultiQC output directory")
	f.StringVar(&opts.multiqcName, "multiqc-name", config.DefaultMultiQCName, "MultiQC report file name")
	f.StringVar(&opts.multiqcAnalysisDir, "multiqc-analysis-dir", config.DefaultMultiQCAnalysis, "Directory MultiQC scans for inputs")

	rootCmd.AddCommand(newValidateCmd(opts), newVersionCmd())

	return rootCmd
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// CONVERSION
// =============================================================================

// runConvert writes the table and optionally runs MultiQC.
func runConvert(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger := logging.New(cmd.ErrOrStderr(), opts.verbose)
	out := cmd.OutOrStdout()

	result, err := converter.New(cfg, logger).Run()
	if err != nil {
		return err
	}

	successColor.Fprintf(out, "✓ %s -> %s (%d rows)\n", result.InputFile, result.OutputFile, result.Rows)
	for _, name := range result.MissingColumns {
		warnColor.Fprintf(out, "  ! column %q not found; written as empty\n", name)
	}

	outcome := multiqc.NewRunner(cfg.MultiQC, logger).MaybeRun(cfg.MultiQC.Enabled, cfg.MultiQC.OutDir, cfg.MultiQC.Name)
	printOutcome(out, outcome)

	return nil
}

func printOutcome(out io.Writer, outcome multiqc.Outcome) {
	switch outcome.Status {
	case multiqc.Ran, multiqc.ExitedNonZero:
		fmt.Fprintf(out, "MultiQC report: %s\n", outcome.ReportPath)
	case multiqc.NotFound:
		warnColor.Fprintln(out, multiqc.InstallHint)
	case multiqc.Failed:
		warnColor.Fprintf(out, "MultiQC could not run: %v\n", outcome.Err)
	}
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// loadConfig reads the YAML file and applies the flags the user set.
func loadConfig(cmd *cobra.Command, opts *options) (*config.MainConfig, error) {
	flags := cmd.Flags()

	cfg, err := config.LoadMainConfig(opts.cfgFile, flags.Changed("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Subcommands do not carry every root flag, so look each one up.
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	if changed("csv") {
		cfg.InputPath = opts.inputPath
	}
	if changed("strict") {
		cfg.Strict = opts.strict
	}
	if changed("out") {
		cfg.OutputPath = opts.outputPath
	}
	if changed("run-multiqc") {
		cfg.MultiQC.Enabled = opts.runMultiQC
	}
	if changed("multiqc-outdir") {
		cfg.MultiQC.OutDir = opts.multiqcOutDir
	}
	if changed("multiqc-name") {
		cfg.MultiQC.Name = opts.multiqcName
	}
	if changed("multiqc-analysis-dir") {
		cfg.MultiQC.AnalysisDir = opts.multiqcAnalysisDir
	}

	return cfg, nil
}
