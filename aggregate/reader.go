// SPDX-License-Identifier: MIT

package aggregate

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// CSV column names understood by ReadCSV. Column order is free.
const (
	ColumnSource      = "source"
	ColumnTarget      = "target"
	ColumnKind        = "kind"
	ColumnSubject     = "subject"
	ColumnSubjectKind = "subject_kind"
)

// ErrMissingColumn indicates a CSV header without a required column.
var ErrMissingColumn = errors.New("aggregate: missing required column")

// ReadCSV reads records from a CSV stream whose first row is a header.
// source, target and kind are required columns; subject and subject_kind are optional.
// Rows are returned as-is: validation happens in Filter / the Aggregator.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("ReadCSV: header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{ColumnSource, ColumnTarget, ColumnKind} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("ReadCSV: %q: %w", required, ErrMissingColumn)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadCSV: line %d: %w", line, err)
		}
		out = append(out, Record{
			Source:      field(row, ColumnSource),
			Target:      field(row, ColumnTarget),
			Kind:        Kind(field(row, ColumnKind)),
			Subject:     field(row, ColumnSubject),
			SubjectKind: SubjectKind(field(row, ColumnSubjectKind)),
		})
	}

	return out, nil
}

// ReadJSON reads a JSON array of records.
func ReadJSON(r io.Reader) ([]Record, error) {
	var out []Record
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("ReadJSON: %w", err)
	}

	return out, nil
}
