package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// row is one CSV record keyed by header name.
type row map[string]string

// readRows parses a headered CSV stream. Blank lines are skipped and short
// rows leave their missing columns empty.
func readRows(r io.Reader) ([]string, []row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrEmptyHeader
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var rows []row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read line %d: %w", line, err)
		}
		if blank(rec) {
			continue
		}
		rw := make(row, len(header))
		for i, name := range header {
			if i < len(rec) {
				rw[name] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, rw)
	}
	return header, rows, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// coerce converts a raw cell the way the source files are typed: empty is
// nil, numeric text is float64, anything else stays a string.
func coerce(v string) any {
	if v == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}

func (r row) str(keys ...string) string {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != "" {
			return v
		}
	}
	return ""
}

func (r row) number(keys ...string) (float64, bool) {
	v := r.str(keys...)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func (r row) num(keys ...string) float64 {
	f, _ := r.number(keys...)
	return f
}

// integer truncates numeric cells such as "12.0"; non-numeric cells read as 0.
func (r row) integer(keys ...string) int {
	return int(r.num(keys...))
}

// flag accepts true/false spellings and numeric cells (non-zero is true).
func (r row) flag(keys ...string) bool {
	v := r.str(keys...)
	if v == "" {
		return false
	}
	if b, err := strconv.ParseBool(strings.ToLower(v)); err == nil {
		return b
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f != 0
	}
	switch strings.ToLower(v) {
	case "yes", "y", "success", "successful":
		return true
	}
	return false
}
