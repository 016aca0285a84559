package repository

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"BrentLens/internal/domain/models"
	xutil "BrentLens/pkg/util"
)

// TableSpec locates one dataset table and names its columns.
// Path is used by the csv source, Table and OrderBy by clickhouse.
type TableSpec struct {
	Name        string
	Path        string
	Table       string
	OrderBy     string
	DateColumn  string
	ValueColumn string
}

// Tables groups the three dataset tables.
type Tables struct {
	Prices       TableSpec
	Events       TableSpec
	ChangePoints TableSpec
}

var ErrMissingColumn = errors.New("missing column")

// DecodeError pinpoints the value that could not be decoded.
// Row is 1-based over data rows, not counting the header.
type DecodeError struct {
	Table  string
	Row    int
	Column string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("%s: column %q: %v", e.Table, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: row %d: column %q: %v", e.Table, e.Row, e.Column, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// rawTable is a header plus string rows, whatever the backing store.
type rawTable struct {
	name   string
	header []string
	rows   [][]string
}

func (t *rawTable) index(column string) (int, error) {
	for i, h := range t.header {
		if h == column {
			return i, nil
		}
	}
	return -1, &DecodeError{Table: t.name, Column: column, Err: ErrMissingColumn}
}

func (t *rawTable) cell(row []string, rowNum, idx int, column string) (string, error) {
	if idx >= len(row) {
		return "", &DecodeError{Table: t.name, Row: rowNum, Column: column, Err: errors.New("missing value")}
	}
	return row[idx], nil
}

func (t *rawTable) date(row []string, rowNum, idx int, column string) (models.Date, error) {
	s, err := t.cell(row, rowNum, idx, column)
	if err != nil {
		return models.Date{}, err
	}
	tm, err := xutil.ParseDate(s)
	if err != nil {
		return models.Date{}, &DecodeError{Table: t.name, Row: rowNum, Column: column, Err: err}
	}
	return models.DateOf(tm), nil
}

func decodePrices(t *rawTable, spec TableSpec) ([]models.PriceRecord, error) {
	di, err := t.index(spec.DateColumn)
	if err != nil {
		return nil, err
	}
	pi, err := t.index(spec.ValueColumn)
	if err != nil {
		return nil, err
	}
	out := make([]models.PriceRecord, 0, len(t.rows))
	for i, row := range t.rows {
		n := i + 1
		d, err := t.date(row, n, di, spec.DateColumn)
		if err != nil {
			return nil, err
		}
		s, err := t.cell(row, n, pi, spec.ValueColumn)
		if err != nil {
			return nil, err
		}
		p, err := parsePrice(s)
		if err != nil {
			return nil, &DecodeError{Table: t.name, Row: n, Column: spec.ValueColumn, Err: err}
		}
		out = append(out, models.PriceRecord{Date: d, Price: p})
	}
	return out, nil
}

func decodeEvents(t *rawTable, spec TableSpec) ([]models.EventRecord, error) {
	di, err := t.index(spec.DateColumn)
	if err != nil {
		return nil, err
	}
	vi, err := t.index(spec.ValueColumn)
	if err != nil {
		return nil, err
	}
	out := make([]models.EventRecord, 0, len(t.rows))
	for i, row := range t.rows {
		n := i + 1
		d, err := t.date(row, n, di, spec.DateColumn)
		if err != nil {
			return nil, err
		}
		desc, err := t.cell(row, n, vi, spec.ValueColumn)
		if err != nil {
			return nil, err
		}
		out = append(out, models.EventRecord{Date: d, Description: desc})
	}
	return out, nil
}

func decodeChangePoints(t *rawTable, spec TableSpec) ([]models.ChangePoint, error) {
	di, err := t.index(spec.DateColumn)
	if err != nil {
		return nil, err
	}
	out := make([]models.ChangePoint, 0, len(t.rows))
	for i, row := range t.rows {
		d, err := t.date(row, i+1, di, spec.DateColumn)
		if err != nil {
			return nil, err
		}
		out = append(out, models.ChangePoint{Date: d})
	}
	return out, nil
}

func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty price")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite price %q", s)
	}
	return v, nil
}
