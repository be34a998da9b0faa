// Package export writes report rows as CSV and PDF downloads.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"susu-dashboard/internal/core/domain"
)

// ErrNoData is returned when there is nothing to export
var ErrNoData = errors.New("no data to export")

// Field is one named value of a record; order is preserved
type Field struct {
	Key   string
	Value any
}

// Record is one exported row
type Record []Field

// ReportRecords converts report rows into export records
func ReportRecords(rows []domain.ReportRow) []Record {
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, Record{
			{"id", r.ID},
			{"type", string(r.Type)},
			{"date", r.Date},
			{"user", r.User},
			{"amount", r.Amount},
		})
	}
	return out
}

// WriteCSV writes records with a header taken from the first record's keys.
// Each value is JSON-encoded, so strings are quoted and escaped while numbers
// stay bare; a missing or nil value is written as "". Rows are separated by
// a single newline with none after the last row.
func WriteCSV(w io.Writer, records []Record) error {
	if len(records) == 0 {
		return ErrNoData
	}

	headers := make([]string, len(records[0]))
	for i, f := range records[0] {
		headers[i] = f.Key
	}

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(headers, ","))
	for _, rec := range records {
		cells := make([]string, len(headers))
		for i, key := range headers {
			cell, err := encodeCell(rec.lookup(key))
			if err != nil {
				return err
			}
			cells[i] = cell
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

func (r Record) lookup(key string) any {
	for _, f := range r {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

func encodeCell(v any) (string, error) {
	if v == nil {
		return `""`, nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
