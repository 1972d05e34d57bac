// =============================================================================
// R2 Troubleshooter - CSV Parser Module
// =============================================================================
//
// This module is responsible for reading the trimming summary exported by the
// QC pipeline (qc_summary.csv). It handles:
//   - Different delimiters (comma, pipe, tab, etc.)
//   - Compressed inputs (.gz, .xz, .zst, .bz2) and "-" for stdin
//   - Non-UTF-8 encodings and a leading UTF-8 byte order mark
//   - Rejecting UTF-8 input that contains invalid byte sequences
//   - Quoted fields, including quoted thousands separators ("1,200")
//
// PARSING RULES:
//   - The first non-blank line is the header; it names the columns.
//   - Blank lines are skipped.
//   - Values and header names are kept verbatim (no trimming).
//   - A row shorter than the header leaves the trailing columns absent.
//   - Cells beyond the header width are ignored.
//   - An empty file is a table with no headers and no records.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/r2-troubleshooter/internal/config"
	"github.com/ginjaninja78/r2-troubleshooter/internal/types"
	"github.com/shenwei356/xopen"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidUTF8 is returned when UTF-8 input contains invalid byte sequences.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a delimited summary file and returns the parsed table.
//
// PARAMETERS:
//   - filePath: The path to the file, or "-" for stdin.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - The parsed table.
//   - An error if the file cannot be opened, decoded or parsed.
func Parse(filePath string, settings config.CSVSettings) (*types.Table, error) {
	file, err := xopen.Ropen(filePath)
	if err != nil {
		if errors.Is(err, xopen.ErrNoContent) {
			return &types.Table{SourceFile: filePath}, nil
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	table, err := ParseReader(file, settings)
	if err != nil {
		return nil, err
	}
	table.SourceFile = filePath

	return table, nil
}

// ParseReader reads a delimited summary from r.
func ParseReader(r io.Reader, settings config.CSVSettings) (*types.Table, error) {
	decoded, err := decodeReader(r, settings.Encoding)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(decoded)
	configureReader(csvReader, settings)

	headers, err := csvReader.Read()
	if err == io.EOF {
		return &types.Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	if err := checkUTF8(csvReader, headers); err != nil {
		return nil, err
	}

	table := &types.Table{
		Headers: headers,
		Records: []types.Record{},
	}

	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(table.Records)+1, err)
		}
		if err := checkUTF8(csvReader, row); err != nil {
			return nil, err
		}
		table.Records = append(table.Records, toRecord(headers, row))
	}

	return table, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	switch settings.Delimiter {
	case "\\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if r := []rune(settings.Delimiter); len(r) > 0 {
			reader.Comma = r[0]
		} else {
			reader.Comma = ','
		}
	}

	// Allow rows that are shorter or longer than the header.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = true
}

// decodeReader wraps r so it yields UTF-8 in the configured encoding.
// UTF-8 input is passed through byte for byte after the BOM is removed.
func decodeReader(r io.Reader, name string) (io.Reader, error) {
	if name == "" || strings.EqualFold(name, "UTF-8") || strings.EqualFold(name, "UTF8") {
		return stripBOM(r), nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	if enc == unicode.UTF8 {
		return stripBOM(r), nil
	}

	return transform.NewReader(r, enc.NewDecoder()), nil
}

// stripBOM drops a leading UTF-8 byte order mark.
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}

// checkUTF8 rejects a record holding a field that is not valid UTF-8.
func checkUTF8(reader *csv.Reader, fields []string) error {
	for i, field := range fields {
		if !utf8.ValidString(field) {
			line, col := reader.FieldPos(i)
			return fmt.Errorf("%w at line %d, column %d: %q", ErrInvalidUTF8, line, col, field)
		}
	}
	return nil
}

// toRecord maps a raw row onto the header names.
func toRecord(headers, row []string) types.Record {
	record := make(types.Record, len(headers))
	for i, header := range headers {
		if i >= len(row) {
			break
		}
		record[header] = row[i]
	}
	return record
}
