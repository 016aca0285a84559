package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"BrentLens/internal/domain/models"
	applogger "BrentLens/pkg/logger"
)

// CSVSource reads the dataset tables from delimited files.
type CSVSource struct {
	tables    Tables
	delimiter rune
	l         *applogger.Logger
}

func NewCSVSource(tables Tables) *CSVSource {
	return &CSVSource{tables: tables, delimiter: ',', l: applogger.Nop()}
}

// SetLogger injects a structured logger.
func (s *CSVSource) SetLogger(l *applogger.Logger) { s.l = l }

// SetDelimiter overrides the field separator (default ',').
func (s *CSVSource) SetDelimiter(r rune) { s.delimiter = r }

func (s *CSVSource) Name() string { return "csv" }

func (s *CSVSource) Close() error { return nil }

func (s *CSVSource) LoadPrices(ctx context.Context) ([]models.PriceRecord, error) {
	t, err := s.read(ctx, s.tables.Prices)
	if err != nil {
		return nil, err
	}
	return decodePrices(t, s.tables.Prices)
}

func (s *CSVSource) LoadEvents(ctx context.Context) ([]models.EventRecord, error) {
	t, err := s.read(ctx, s.tables.Events)
	if err != nil {
		return nil, err
	}
	return decodeEvents(t, s.tables.Events)
}

func (s *CSVSource) LoadChangePoints(ctx context.Context) ([]models.ChangePoint, error) {
	t, err := s.read(ctx, s.tables.ChangePoints)
	if err != nil {
		return nil, err
	}
	return decodeChangePoints(t, s.tables.ChangePoints)
}

func (s *CSVSource) read(ctx context.Context, spec TableSpec) (*rawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(spec.Path)
	if err != nil {
		s.l.Error("csv open error", applogger.String("table", spec.Name), applogger.String("path", spec.Path), applogger.Error(err))
		return nil, fmt.Errorf("%s: open %s: %w", spec.Name, spec.Path, err)
	}
	defer f.Close()

	t, err := readTable(f, spec.Name, s.delimiter)
	if err != nil {
		return nil, fmt.Errorf("%s: read %s: %w", spec.Name, spec.Path, err)
	}
	s.l.Debug("csv table read",
		applogger.String("table", spec.Name),
		applogger.String("path", spec.Path),
		applogger.Int("rows", len(t.rows)),
	)
	return t, nil
}

func readTable(r io.Reader, name string, delimiter rune) (*rawTable, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("missing header row")
	}
	if err != nil {
		return nil, err
	}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = strings.TrimSpace(h)
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return &rawTable{name: name, header: header, rows: rows}, nil
}
