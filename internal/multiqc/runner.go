// =============================================================================
// R2 Troubleshooter - MultiQC Runner
// =============================================================================
//
// This module optionally renders the MultiQC report after the table has been
// written. MultiQC is an external collaborator: its absence or failure never
// fails the run, it only changes the returned Status.
//
// COMMAND LINE:
//   multiqc <analysis_dir> -o <outdir> -n <name>
//
//   Standard output and standard error are discarded. The call waits for the
//   process to exit; there is no timeout.
//
// =============================================================================

package multiqc

import (
	"errors"
	"os/exec"
	"path/filepath"

	"github.com/ginjaninja78/r2-troubleshooter/internal/config"
	"github.com/ginjaninja78/r2-troubleshooter/internal/logging"
	"github.com/ginjaninja78/r2-troubleshooter/pkg/utils"
)

// InstallHint is shown when the executable cannot be found.
const InstallHint = "multiqc not found; install with `pip install multiqc`"

// =============================================================================
// STATUS
// =============================================================================

// Status is the outcome of MaybeRun.
type Status int

const (
	// Skipped means the report was not requested.
	Skipped Status = iota
	// Ran means the tool exited with status 0.
	Ran
	// ExitedNonZero means the tool ran and failed; the failure is ignored.
	ExitedNonZero
	// NotFound means the executable is not on PATH.
	NotFound
	// Failed means the output directory could not be created or the
	// process could not be started.
	Failed
)

func (s Status) String() string {
	switch s {
	case Skipped:
		return "skipped"
	case Ran:
		return "ran"
	case ExitedNonZero:
		return "exited-non-zero"
	case NotFound:
		return "not-found"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome describes one MaybeRun call.
type Outcome struct {
	Status Status

	// ReportPath is where MultiQC was asked to write the report.
	ReportPath string

	// Err is the underlying cause for NotFound, ExitedNonZero and Failed.
	Err error
}

// Started reports whether the tool was actually executed.
func (o Outcome) Started() bool {
	return o.Status == Ran || o.Status == ExitedNonZero
}

// =============================================================================
// RUNNER
// =============================================================================

// Runner invokes MultiQC.
type Runner struct {
	// Executable is the program name looked up on PATH, or a path.
	Executable string

	// AnalysisDir is the directory MultiQC scans.
	AnalysisDir string

	logger logging.Logger
}

// NewRunner builds a Runner from the MultiQC settings.
// A nil logger discards output.
func NewRunner(settings config.MultiQCSettings, logger logging.Logger) *Runner {
	return &Runner{
		Executable:  settings.Executable,
		AnalysisDir: settings.AnalysisDir,
		logger:      logging.OrDiscard(logger),
	}
}

// MaybeRun renders the report into outDir/name when enabled is true.
func (r *Runner) MaybeRun(enabled bool, outDir, name string) Outcome {
	if !enabled {
		return Outcome{Status: Skipped}
	}

	outcome := Outcome{ReportPath: filepath.Join(outDir, name)}

	if err := utils.EnsureDir(outDir); err != nil {
		r.logger.Warn("cannot create report directory", "dir", outDir, "err", err)
		outcome.Status = Failed
		outcome.Err = err
		return outcome
	}

	path, err := exec.LookPath(r.Executable)
	if err != nil {
		r.logger.Warn("report tool not found", "executable", r.Executable, "err", err)
		outcome.Status = NotFound
		outcome.Err = err
		return outcome
	}

	// Nil Stdout and Stderr connect the child to the null device.
	cmd := exec.Command(path, r.AnalysisDir, "-o", outDir, "-n", name)
	r.logger.Debug("running report tool", "args", cmd.Args)

	err = cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		outcome.Status = Ran
	case errors.As(err, &exitErr):
		r.logger.Warn("report tool exited with an error; ignoring", "exit_code", exitErr.ExitCode())
		outcome.Status = ExitedNonZero
		outcome.Err = err
	default:
		r.logger.Warn("report tool could not be started", "err", err)
		outcome.Status = Failed
		outcome.Err = err
	}

	return outcome
}
