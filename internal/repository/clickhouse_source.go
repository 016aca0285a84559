package repository

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"BrentLens/internal/domain/models"
	pkgch "BrentLens/pkg/clickhouse"
	applogger "BrentLens/pkg/logger"
)

// StringQuerier runs a query and returns column names plus string rows.
type StringQuerier interface {
	QueryStrings(ctx context.Context, query string, args ...any) ([]string, [][]string, error)
}

// ClickHouseSource loads the dataset tables from ClickHouse. Every column is
// read through toString so dates go through the same mixed-format parser as csv.
type ClickHouseSource struct {
	q      StringQuerier
	closer interface{ Close() error }
	tables Tables
	l      *applogger.Logger
}

func NewClickHouseSource(ch *pkgch.Client, tables Tables) *ClickHouseSource {
	return &ClickHouseSource{q: ch, closer: ch, tables: tables, l: applogger.Nop()}
}

// NewClickHouseSourceWith uses an arbitrary querier; the source does not own it.
func NewClickHouseSourceWith(q StringQuerier, tables Tables) *ClickHouseSource {
	return &ClickHouseSource{q: q, tables: tables, l: applogger.Nop()}
}

// SetLogger injects a structured logger.
func (s *ClickHouseSource) SetLogger(l *applogger.Logger) { s.l = l }

func (s *ClickHouseSource) Name() string { return "clickhouse" }

func (s *ClickHouseSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *ClickHouseSource) LoadPrices(ctx context.Context) ([]models.PriceRecord, error) {
	spec := s.tables.Prices
	t, err := s.read(ctx, spec, spec.DateColumn, spec.ValueColumn)
	if err != nil {
		return nil, err
	}
	return decodePrices(t, spec)
}

func (s *ClickHouseSource) LoadEvents(ctx context.Context) ([]models.EventRecord, error) {
	spec := s.tables.Events
	t, err := s.read(ctx, spec, spec.DateColumn, spec.ValueColumn)
	if err != nil {
		return nil, err
	}
	return decodeEvents(t, spec)
}

func (s *ClickHouseSource) LoadChangePoints(ctx context.Context) ([]models.ChangePoint, error) {
	spec := s.tables.ChangePoints
	t, err := s.read(ctx, spec, spec.DateColumn)
	if err != nil {
		return nil, err
	}
	return decodeChangePoints(t, spec)
}

func (s *ClickHouseSource) read(ctx context.Context, spec TableSpec, columns ...string) (*rawTable, error) {
	start := time.Now()
	q, err := selectQuery(spec, columns...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Name, err)
	}
	_, rows, err := s.q.QueryStrings(ctx, q)
	if err != nil {
		s.l.Error("clickhouse load query error",
			applogger.String("table", spec.Table),
			applogger.Error(err),
		)
		return nil, fmt.Errorf("%s: %w", spec.Name, err)
	}
	s.l.Debug("clickhouse table read",
		applogger.String("table", spec.Table),
		applogger.Int("rows", len(rows)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	// columns come back in select order, so the configured names form the header
	return &rawTable{name: spec.Name, header: columns, rows: rows}, nil
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

func quoteIdent(name string) (string, error) {
	if !identRe.MatchString(name) {
		return "", fmt.Errorf("invalid identifier %q", name)
	}
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = "`" + p + "`"
	}
	return strings.Join(parts, "."), nil
}

func selectQuery(spec TableSpec, columns ...string) (string, error) {
	table, err := quoteIdent(spec.Table)
	if err != nil {
		return "", err
	}
	exprs := make([]string, 0, len(columns))
	for _, c := range columns {
		qc, err := quoteIdent(c)
		if err != nil {
			return "", err
		}
		exprs = append(exprs, fmt.Sprintf("toString(%s)", qc))
	}
	q := fmt.Sprintf("SELECT %s FROM %s", strings.Join(exprs, ", "), table)
	if spec.OrderBy != "" {
		ob, err := quoteIdent(spec.OrderBy)
		if err != nil {
			return "", err
		}
		q += " ORDER BY " + ob + " ASC"
	}
	return q, nil
}
