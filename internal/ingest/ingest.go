// Package ingest parses raw tabular uploads into normalized rows ready for
// the generation pipeline.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrEmptyDataset means the input held a header but no usable rows.
	ErrEmptyDataset = errors.New("dataset contains no rows")
	// ErrMissingHeader means the input had no header line at all.
	ErrMissingHeader = errors.New("dataset is missing a header row")
)

// ParseError wraps a CSV decoding failure with enough context for callers
// to report it as a bad upload rather than a server fault.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse tabular input: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Row maps normalized header names to trimmed cell values.
type Row map[string]string

// Report carries non-fatal observations about dataset quality.
type Report struct {
	EmptyColumns   []string `json:"emptyColumns"`
	LowDensityRows []int    `json:"lowDensityRows"`
}

// Dataset is the parsed result handed to the generation orchestrator.
type Dataset struct {
	Headers []string
	Rows    []Row
	Report  Report
}

// Parse reads CSV text and returns normalized rows and headers plus an
// advisory quality report. Header names are trimmed and lower-cased before
// becoming row keys; every cell is trimmed; rows with no populated field at
// all are dropped. Semantic validation is left to the template validator.
func Parse(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if len(records) == 0 {
		return nil, ErrMissingHeader
	}

	columns := normalizeHeaders(records[0])
	if len(columns) == 0 {
		return nil, ErrMissingHeader
	}
	headers := make([]string, 0, len(columns))
	for _, col := range columns {
		headers = append(headers, col.name)
	}

	rows := make([]Row, 0, len(records)-1)
	lowDensity := []int{}
	populated := make(map[string]bool, len(headers))

	for _, record := range records[1:] {
		row := make(Row, len(headers))
		filled := 0
		for _, col := range columns {
			value := ""
			if col.index < len(record) {
				value = strings.TrimSpace(record[col.index])
			}
			row[col.name] = value
			if value != "" {
				filled++
				populated[col.name] = true
			}
		}
		if filled == 0 {
			continue
		}
		if filled*2 < len(headers) {
			// Row index is 1-based and counted after empty-row drops,
			// matching what a user sees in the summary.
			lowDensity = append(lowDensity, len(rows)+1)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}

	emptyColumns := []string{}
	for _, header := range headers {
		if !populated[header] {
			emptyColumns = append(emptyColumns, header)
		}
	}

	return &Dataset{
		Headers: headers,
		Rows:    rows,
		Report: Report{
			EmptyColumns:   emptyColumns,
			LowDensityRows: lowDensity,
		},
	}, nil
}

// column pairs a normalized header name with its position in the source
// record, so blank header cells can be skipped without shifting values.
type column struct {
	name  string
	index int
}

func normalizeHeaders(raw []string) []column {
	columns := make([]column, 0, len(raw))
	for i, h := range raw {
		normalized := strings.ToLower(strings.TrimSpace(h))
		if normalized == "" {
			continue
		}
		columns = append(columns, column{name: normalized, index: i})
	}
	return columns
}
