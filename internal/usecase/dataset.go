package usecase

import (
	"context"
	"fmt"
	"time"

	"BrentLens/internal/domain/models"
	domrepo "BrentLens/internal/domain/repository"
	applogger "BrentLens/pkg/logger"
)

// Dataset holds the three tables, loaded once and never mutated.
// Accessors hand out copies so the shared state stays read-only.
type Dataset struct {
	prices       []models.PriceRecord
	events       []models.EventRecord
	changePoints []models.ChangePoint
	loadedAt     time.Time
}

// NewDataset builds a Dataset from already decoded tables.
func NewDataset(prices []models.PriceRecord, events []models.EventRecord, cps []models.ChangePoint) *Dataset {
	return &Dataset{
		prices:       clone(prices),
		events:       clone(events),
		changePoints: clone(cps),
		loadedAt:     time.Now(),
	}
}

// LoadDataset reads every table from src. Any failure aborts the whole load.
func LoadDataset(ctx context.Context, src domrepo.Source, m domrepo.Metrics, l *applogger.Logger) (*Dataset, error) {
	start := time.Now()

	prices, err := src.LoadPrices(ctx)
	if err != nil {
		m.RecordError("load_prices")
		return nil, fmt.Errorf("load prices: %w", err)
	}
	events, err := src.LoadEvents(ctx)
	if err != nil {
		m.RecordError("load_events")
		return nil, fmt.Errorf("load events: %w", err)
	}
	cps, err := src.LoadChangePoints(ctx)
	if err != nil {
		m.RecordError("load_change_points")
		return nil, fmt.Errorf("load change points: %w", err)
	}

	took := time.Since(start)
	m.RecordRowsLoaded("prices", len(prices))
	m.RecordRowsLoaded("events", len(events))
	m.RecordRowsLoaded("change_points", len(cps))
	m.RecordLoadDuration(src.Name(), took.Seconds())

	l.Info("dataset loaded",
		applogger.String("source", src.Name()),
		applogger.Int("prices", len(prices)),
		applogger.Int("events", len(events)),
		applogger.Int("change_points", len(cps)),
		applogger.Duration("duration_ms", took),
	)

	return NewDataset(prices, events, cps), nil
}

func (d *Dataset) Prices() []models.PriceRecord { return clone(d.prices) }

func (d *Dataset) Events() []models.EventRecord { return clone(d.events) }

func (d *Dataset) ChangePoints() []models.ChangePoint { return clone(d.changePoints) }

// Counts returns the row count of each table.
func (d *Dataset) Counts() (prices, events, changePoints int) {
	return len(d.prices), len(d.events), len(d.changePoints)
}

func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// clone never returns nil so empty tables encode as [].
func clone[T any](xs []T) []T {
	out := make([]T, len(xs))
	copy(out, xs)
	return out
}
