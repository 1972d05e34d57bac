package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/ginjaninja78/r2-troubleshooter/internal/multiqc"
	"github.com/ginjaninja78/r2-troubleshooter/internal/tsvwriter"
	"github.com/ginjaninja78/r2-troubleshooter/internal/validation"
)

const summary = "Sample,Input Read Pairs,Both Surviving,Forward Only,Reverse Only,Dropped,Percent Removed\n" +
	"S1,\"1,200\",1000,50,30,120,10.0\n"

func init() {
	color.NoColor = true
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRootConverts(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "qc_summary.csv", summary)
	out := filepath.Join(dir, "multiqc_cc", "r2_troubleshooter_mqc.tsv")

	stdout, err := run(t, "--csv", in, "--out", out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "(1 rows)") {
		t.Fatalf("unexpected stdout: %q", stdout)
	}
	if strings.Contains(stdout, "MultiQC") {
		t.Fatalf("MultiQC must not run without --run-multiqc: %q", stdout)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := tsvwriter.Header + "S1\ttrue\ttrue\t1200\t1000\t50\t30\t120\t10.0\tRUN\tok\n"
	if string(got) != want {
		t.Fatalf("unexpected document:\n got %q\nwant %q", got, want)
	}
}

func TestRootMissingInputFails(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "--csv", filepath.Join(dir, "missing.csv"), "--out", filepath.Join(dir, "out.tsv"))
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestRootMissingColumn(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "qc.csv", "Sample,Dropped\nS1,1\n")
	out := filepath.Join(dir, "out.tsv")

	t.Run("lenient by default", func(t *testing.T) {
		stdout, err := run(t, "--csv", in, "--out", out)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, `column "Percent Removed" not found`) {
			t.Fatalf("expected missing column notice, got %q", stdout)
		}
	})

	t.Run("strict fails", func(t *testing.T) {
		_, err := run(t, "--csv", in, "--out", filepath.Join(dir, "strict.tsv"), "--strict")
		if !errors.Is(err, validation.ErrMissingColumns) {
			t.Fatalf("expected ErrMissingColumns, got %v", err)
		}
	})
}

func TestRootMultiQCNotFoundIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "qc.csv", summary)
	cfg := writeFile(t, dir, "r2table.yaml", "multiqc:\n  executable: r2table-no-such-multiqc\n")

	stdout, err := run(t,
		"--config", cfg,
		"--csv", in,
		"--out", filepath.Join(dir, "out.tsv"),
		"--run-multiqc",
		"--multiqc-outdir", filepath.Join(dir, "multiqc"),
	)
	if err != nil {
		t.Fatalf("missing MultiQC must not fail the run: %v", err)
	}
	if !strings.Contains(stdout, multiqc.InstallHint) {
		t.Fatalf("expected install hint, got %q", stdout)
	}
}

func TestRootConfigFile(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "qc.csv", summary)
	fromConfig := filepath.Join(dir, "from_config.tsv")
	fromFlag := filepath.Join(dir, "from_flag.tsv")
	cfg := writeFile(t, dir, "r2table.yaml", "csv: "+in+"\nout: "+fromConfig+"\n")

	if _, err := run(t, "--config", cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(fromConfig); err != nil {
		t.Fatalf("expected output at config path: %v", err)
	}

	if _, err := run(t, "--config", cfg, "--out", fromFlag); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(fromFlag); err != nil {
		t.Fatalf("flag should override config path: %v", err)
	}
}

func TestRootExplicitConfigMustExist(t *testing.T) {
	if _, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	t.Run("complete header", func(t *testing.T) {
		in := writeFile(t, dir, "ok.csv", summary)
		stdout, err := run(t, "validate", "--csv", in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "1 rows, all expected columns present") {
			t.Fatalf("unexpected stdout: %q", stdout)
		}
	})

	t.Run("missing columns fail", func(t *testing.T) {
		in := writeFile(t, dir, "partial.csv", "Sample\nS1\nS2\n")
		stdout, err := run(t, "validate", "--csv", in)
		if !errors.Is(err, validation.ErrMissingColumns) {
			t.Fatalf("expected ErrMissingColumns, got %v", err)
		}
		if !strings.Contains(stdout, "2 rows, 6 expected column(s) missing") {
			t.Fatalf("unexpected stdout: %q", stdout)
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("read dir: %v", err)
		}
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".tsv") {
				t.Fatalf("validate must not write output, found %s", e.Name())
			}
		}
	})
}

func TestVersion(t *testing.T) {
	stdout, err := run(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "Version:    "+Version) {
		t.Fatalf("unexpected stdout: %q", stdout)
	}
}
