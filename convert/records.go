package convert

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/elaadnl/openadr3-go/model"
)

// recordHeader is the column order of the CSV representation.
var recordHeader = []string{ColStart, ColDuration, ColRandomizeStart, ColType, ColValues}

const valueSeparator = ";"

// IntervalsFromRecords converts CSV records into event intervals. The
// first record is the header and names the columns; unknown columns are
// ignored. Cells in the values column hold one or more payload values
// separated by semicolons, each coerced to number, bool, or string in
// that order. Empty cells mean the column is absent for that row.
func IntervalsFromRecords(records [][]string) ([]model.Interval, error) {
	if len(records) == 0 {
		return nil, errors.New("records are empty, expected a header record")
	}
	header := records[0]

	rows := make([]Row, 0, len(records)-1)
	var errs []error
	for i, record := range records[1:] {
		row, err := rowFromRecord(header, record)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i+1, err))
			continue
		}
		rows = append(rows, row)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return IntervalsFromRows(rows)
}

func rowFromRecord(header, record []string) (Row, error) {
	if len(record) != len(header) {
		return nil, fmt.Errorf("record has %d fields, header has %d", len(record), len(header))
	}
	row := Row{}
	for i, col := range header {
		cell := record[i]
		if cell == "" {
			continue
		}
		switch col {
		case ColStart, ColDuration, ColRandomizeStart, ColType:
			row[col] = cell
		case ColValues:
			parts := strings.Split(cell, valueSeparator)
			values := make([]any, len(parts))
			for j, part := range parts {
				values[j] = coerceCell(strings.TrimSpace(part))
			}
			row[col] = values
		}
	}
	return row, nil
}

// coerceCell interprets a CSV cell as the most specific value type it
// parses as. Numbers win over bools so "1" stays numeric.
func coerceCell(cell string) any {
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(cell); err == nil {
		return b
	}
	return cell
}

// RecordsFromIntervals flattens event intervals into CSV records with a
// leading header, one record per payload. Multiple payload values are
// joined with semicolons.
func RecordsFromIntervals(intervals []model.Interval) [][]string {
	rows := RowsFromIntervals(intervals)
	records := make([][]string, 0, len(rows)+1)
	records = append(records, recordHeader)
	for _, row := range rows {
		records = append(records, recordFromRow(row))
	}
	return records
}

func recordFromRow(row Row) []string {
	record := make([]string, len(recordHeader))
	for i, col := range recordHeader {
		raw, ok := row[col]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case time.Time:
			record[i] = v.Format(time.RFC3339)
		case model.Duration:
			record[i] = v.String()
		case string:
			record[i] = v
		case []model.Value:
			parts := make([]string, len(v))
			for j, val := range v {
				parts[j] = val.String()
			}
			record[i] = strings.Join(parts, valueSeparator)
		}
	}
	return record
}

// ReadIntervalsCSV reads CSV from r and converts it into event intervals.
func ReadIntervalsCSV(r io.Reader) ([]model.Interval, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return IntervalsFromRecords(records)
}

// WriteIntervalsCSV writes event intervals to w as CSV.
func WriteIntervalsCSV(w io.Writer, intervals []model.Interval) error {
	if err := csv.NewWriter(w).WriteAll(RecordsFromIntervals(intervals)); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
