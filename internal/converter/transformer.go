// =============================================================================
// R2 Troubleshooter - Column Layout
// =============================================================================
//
// This file declares how every output column is derived from an input record.
// The layout is data, not code: each column is either copied from an input
// column, copied and cleaned, or filled with a constant.
//
// OUTPUT LAYOUT:
//   | Output column  | Source column    | Kind        |
//   |----------------|------------------|-------------|
//   | Sample         | Sample           | passthrough |
//   | has_R1         |                  | "true"      |
//   | has_R2         |                  | "true"      |
//   | input_pairs    | Input Read Pairs | cleaned     |
//   | both_surviving | Both Surviving   | cleaned     |
//   | forward_only   | Forward Only     | cleaned     |
//   | reverse_only   | Reverse Only     | cleaned     |
//   | dropped        | Dropped          | cleaned     |
//   | removed_pct    | Percent Removed  | cleaned     |
//   | status         |                  | "RUN"       |
//   | note           |                  | "ok"        |
//
// =============================================================================

package converter

import (
	"strings"

	"github.com/ginjaninja78/r2-troubleshooter/internal/types"
)

// Kind says how a column value is produced.
type Kind int

const (
	// Passthrough copies the source value unchanged.
	Passthrough Kind = iota
	// Cleaned copies the source value through Clean.
	Cleaned
	// Constant ignores the record and emits Column.Value.
	Constant
)

// Column describes one output column.
type Column struct {
	// Name is the header written to the output table.
	Name string

	// Source is the input column read for Passthrough and Cleaned kinds.
	Source string

	// Kind selects how the value is derived.
	Kind Kind

	// Value is the literal emitted for Constant columns.
	Value string
}

// Columns is the fixed output layout.
var Columns = [types.RowWidth]Column{
	{Name: "Sample", Source: "Sample", Kind: Passthrough},
	{Name: "has_R1", Kind: Constant, Value: "true"},
	{Name: "has_R2", Kind: Constant, Value: "true"},
	{Name: "input_pairs", Source: "Input Read Pairs", Kind: Cleaned},
	{Name: "both_surviving", Source: "Both Surviving", Kind: Cleaned},
	{Name: "forward_only", Source: "Forward Only", Kind: Cleaned},
	{Name: "reverse_only", Source: "Reverse Only", Kind: Cleaned},
	{Name: "dropped", Source: "Dropped", Kind: Cleaned},
	{Name: "removed_pct", Source: "Percent Removed", Kind: Cleaned},
	{Name: "status", Kind: Constant, Value: "RUN"},
	{Name: "note", Kind: Constant, Value: "ok"},
}

// SourceColumns returns the input columns the layout reads, in layout order.
func SourceColumns() []string {
	var sources []string
	for _, col := range Columns {
		if col.Kind != Constant {
			sources = append(sources, col.Source)
		}
	}
	return sources
}

// Clean removes every comma and strips surrounding whitespace, so "1,200"
// becomes "1200". The result is otherwise left as text.
//
// Commas go first: trimming first would leave ", 5" as " 5", which a
// second pass changes again.
func Clean(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
}

// BuildRow derives one output row from an input record.
func BuildRow(rec types.Record) types.Row {
	var row types.Row
	for i, col := range Columns {
		switch col.Kind {
		case Passthrough:
			row[i] = rec.Get(col.Source)
		case Cleaned:
			row[i] = Clean(rec.Get(col.Source))
		case Constant:
			row[i] = col.Value
		}
	}
	return row
}

// BuildRows derives one output row per record, preserving order.
func BuildRows(records []types.Record) []types.Row {
	rows := make([]types.Row, len(records))
	for i, rec := range records {
		rows[i] = BuildRow(rec)
	}
	return rows
}
