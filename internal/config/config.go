// =============================================================================
// R2 Troubleshooter - Configuration Module
// =============================================================================
//
// This module is responsible for loading the optional YAML configuration file.
// Every setting has a built-in default, so the tool runs without any file at
// all; the file only exists to pin paths for a pipeline.
//
// PRECEDENCE (lowest to highest):
//   1. Built-in defaults (applyMainConfigDefaults)
//   2. Values from the YAML file
//   3. Command-line flags that were explicitly set (applied in cmd/)
//
// EXAMPLE FILE:
//   csv: results/qc_summary.csv
//   out: results/multiqc_cc/r2_troubleshooter_mqc.tsv
//   strict: false
//   csv_settings:
//     delimiter: ","
//     encoding: UTF-8
//   multiqc:
//     enabled: true
//     outdir: results/multiqc
//     name: r2_troubleshooter_multiqc.html
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	DefaultInputPath         = "results/qc_summary.csv"
	DefaultOutputPath        = "results/multiqc_cc/r2_troubleshooter_mqc.tsv"
	DefaultMultiQCOutDir     = "results/multiqc"
	DefaultMultiQCName       = "r2_troubleshooter_multiqc.html"
	DefaultMultiQCAnalysis   = "results"
	DefaultMultiQCExecutable = "multiqc"
	DefaultDelimiter         = ","
	DefaultEncoding          = "UTF-8"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the application configuration.
type MainConfig struct {
	// InputPath is the summary table to convert (.csv, .csv.gz, .xlsx or "-").
	InputPath string `yaml:"csv"`

	// OutputPath is where the TSV table is written.
	// Missing parent directories are created.
	OutputPath string `yaml:"out"`

	// Strict turns missing expected columns into a fatal error.
	// Default: false (missing columns become empty fields)
	Strict bool `yaml:"strict"`

	// CSVSettings contains settings for parsing the input file.
	CSVSettings CSVSettings `yaml:"csv_settings"`

	// MultiQC controls the optional report invocation.
	MultiQC MultiQCSettings `yaml:"multiqc"`
}

// =============================================================================
// CSV SETTINGS STRUCTURE
// =============================================================================

// CSVSettings contains settings for parsing the input table.
type CSVSettings struct {
	// Delimiter is the character used to separate fields in the CSV.
	// Common values: "," (comma), "|" (pipe), "\t" or "tab" (tab)
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Encoding is the character encoding of the CSV file.
	// Any IANA charset name is accepted, e.g. "ISO-8859-1", "Windows-1252".
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`

	// Sheet is the worksheet to read when the input is an .xlsx workbook.
	// Default: "" (first sheet)
	Sheet string `yaml:"sheet"`
}

// =============================================================================
// MULTIQC SETTINGS STRUCTURE
// =============================================================================

// MultiQCSettings controls the optional MultiQC run.
type MultiQCSettings struct {
	// Enabled triggers the report run after a successful conversion.
	Enabled bool `yaml:"enabled"`

	// OutDir is passed to MultiQC as -o.
	OutDir string `yaml:"outdir"`

	// Name is passed to MultiQC as -n.
	Name string `yaml:"name"`

	// AnalysisDir is the directory MultiQC scans for inputs.
	// Default: "results"
	AnalysisDir string `yaml:"analysis_dir"`

	// Executable is the program name or path looked up on PATH.
	// Default: "multiqc"
	Executable string `yaml:"executable"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	var config MainConfig
	applyMainConfigDefaults(&config)
	return &config
}

// LoadMainConfig loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//   - required:   When false, a missing file yields the defaults.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read or parsed.
func LoadMainConfig(configPath string, required bool) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputPath == "" {
		config.InputPath = DefaultInputPath
	}
	if config.OutputPath == "" {
		config.OutputPath = DefaultOutputPath
	}
	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = DefaultDelimiter
	}
	if config.CSVSettings.Encoding == "" {
		config.CSVSettings.Encoding = DefaultEncoding
	}
	if config.MultiQC.OutDir == "" {
		config.MultiQC.OutDir = DefaultMultiQCOutDir
	}
	if config.MultiQC.Name == "" {
		config.MultiQC.Name = DefaultMultiQCName
	}
	if config.MultiQC.AnalysisDir == "" {
		config.MultiQC.AnalysisDir = DefaultMultiQCAnalysis
	}
	if config.MultiQC.Executable == "" {
		config.MultiQC.Executable = DefaultMultiQCExecutable
	}
}

// validateMainConfig validates the configuration.
func validateMainConfig(config *MainConfig) error {
	switch config.CSVSettings.Delimiter {
	case "\\t", "tab", "TAB", "pipe", "PIPE", "semicolon":
	default:
		if len([]rune(config.CSVSettings.Delimiter)) != 1 {
			return fmt.Errorf("csv_settings.delimiter must be a single character, got %q", config.CSVSettings.Delimiter)
		}
	}
	return nil
}
