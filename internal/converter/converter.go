// =============================================================================
// R2 Troubleshooter - Converter Module
// =============================================================================
//
// This module contains the conversion pipeline. It turns the trimming summary
// (qc_summary.csv) into the MultiQC custom-content table.
//
// CONVERSION PIPELINE:
//   1. Create the output directory
//   2. Read the input table (CSV or XLSX)
//   3. Check the header for the expected columns
//   4. Build one output row per input record (see transformer.go)
//   5. Write the document atomically
//
// FAILURE MODES:
//   - Steps 1, 2 and 5 are fatal and returned to the caller.
//   - Step 3 only logs warnings, unless strict mode is on.
//   - Nothing is written unless every step before 5 succeeded.
//
// =============================================================================

package converter

import (
	"fmt"
	"time"

	"github.com/ginjaninja78/r2-troubleshooter/internal/config"
	"github.com/ginjaninja78/r2-troubleshooter/internal/csvparser"
	"github.com/ginjaninja78/r2-troubleshooter/internal/logging"
	"github.com/ginjaninja78/r2-troubleshooter/internal/tsvwriter"
	"github.com/ginjaninja78/r2-troubleshooter/internal/types"
	"github.com/ginjaninja78/r2-troubleshooter/internal/validation"
	"github.com/ginjaninja78/r2-troubleshooter/internal/xlsxparser"
	"github.com/ginjaninja78/r2-troubleshooter/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one conversion.
type Result struct {
	// InputFile is the summary table that was read.
	InputFile string

	// OutputFile is the TSV table that was written.
	OutputFile string

	// Rows is the number of data rows written.
	Rows int

	// MissingColumns lists expected input columns absent from the header.
	// Their output fields are empty in every row.
	MissingColumns []string

	// ProcessingTime is the time taken by the conversion.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter converts one summary table.
type Converter struct {
	inputPath  string
	outputPath string
	settings   config.CSVSettings
	strict     bool
	logger     logging.Logger
}

// New creates a Converter from the configuration. A nil logger discards output.
func New(cfg *config.MainConfig, logger logging.Logger) *Converter {
	return &Converter{
		inputPath:  cfg.InputPath,
		outputPath: cfg.OutputPath,
		settings:   cfg.CSVSettings,
		strict:     cfg.Strict,
		logger:     logging.OrDiscard(logger),
	}
}

// Convert reads inputPath and writes the table to outputPath using default
// settings.
func Convert(inputPath, outputPath string) (*Result, error) {
	cfg := config.Default()
	cfg.InputPath = inputPath
	cfg.OutputPath = outputPath
	return New(cfg, nil).Run()
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline.
func (c *Converter) Run() (*Result, error) {
	startTime := time.Now()

	if err := utils.EnsureParentDir(c.outputPath); err != nil {
		return nil, fmt.Errorf("failed to prepare output: %w", err)
	}

	c.logger.Debug("reading summary", "path", c.inputPath)

	table, err := LoadTable(c.inputPath, c.settings)
	if err != nil {
		return nil, err
	}

	report := validation.Validate(table, SourceColumns())
	for _, name := range report.Missing {
		c.logger.Warn("expected column missing; field will be empty", "column", name, "path", c.inputPath)
	}
	if c.strict {
		if err := report.Err(); err != nil {
			return nil, err
		}
	}

	rows := BuildRows(table.Records)
	c.logger.Debug("built rows", "rows", len(rows))

	if err := tsvwriter.Write(c.outputPath, rows); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}

	result := &Result{
		InputFile:      c.inputPath,
		OutputFile:     c.outputPath,
		Rows:           len(rows),
		MissingColumns: report.Missing,
		ProcessingTime: time.Since(startTime),
	}

	c.logger.Info("wrote table", "path", c.outputPath, "rows", result.Rows)

	return result, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// LoadTable reads the summary at path, choosing the reader by extension.
func LoadTable(path string, settings config.CSVSettings) (*types.Table, error) {
	var (
		table *types.Table
		err   error
	)
	if xlsxparser.IsWorkbook(path) {
		table, err = xlsxparser.Parse(path, settings.Sheet)
	} else {
		table, err = csvparser.Parse(path, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return table, nil
}
