package validation

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ginjaninja78/r2-troubleshooter/internal/types"
)

var expected = []string{"Sample", "Dropped", "Percent Removed"}

func TestCheckColumns(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    []string
	}{
		{name: "all present", headers: []string{"Percent Removed", "Sample", "Dropped", "Extra"}, want: nil},
		{name: "one missing", headers: []string{"Sample", "Dropped"}, want: []string{"Percent Removed"}},
		{name: "case sensitive", headers: []string{"sample", "Dropped", "Percent Removed"}, want: []string{"Sample"}},
		{name: "no header", headers: nil, want: expected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckColumns(tt.headers, expected)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("CheckColumns() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("complete table", func(t *testing.T) {
		table := &types.Table{
			Headers:    expected,
			Records:    []types.Record{{"Sample": "S1"}, {"Sample": "S2"}},
			SourceFile: "qc.csv",
		}
		report := Validate(table, expected)
		if !report.OK() || report.Err() != nil {
			t.Fatalf("expected OK report, got %+v", report)
		}
		if report.RowCount != 2 {
			t.Fatalf("expected 2 rows, got %d", report.RowCount)
		}
	})

	t.Run("missing columns produce a sentinel error", func(t *testing.T) {
		table := &types.Table{Headers: []string{"Sample"}, SourceFile: "qc.csv"}
		report := Validate(table, expected)
		err := report.Err()
		if !errors.Is(err, ErrMissingColumns) {
			t.Fatalf("expected ErrMissingColumns, got %v", err)
		}
		if !strings.Contains(err.Error(), `"Percent Removed"`) || !strings.Contains(err.Error(), "qc.csv") {
			t.Fatalf("error lacks context: %v", err)
		}
	})
}
