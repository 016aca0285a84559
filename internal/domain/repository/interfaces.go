package repository

import (
	"context"

	"BrentLens/internal/domain/models"
)

// Source loads the three dataset tables. Each call returns rows in source order.
type Source interface {
	LoadPrices(ctx context.Context) ([]models.PriceRecord, error)
	LoadEvents(ctx context.Context) ([]models.EventRecord, error)
	LoadChangePoints(ctx context.Context) ([]models.ChangePoint, error)
	Name() string
	Close() error
}

type Metrics interface {
	RecordRowsLoaded(table string, rows int)
	RecordLoadDuration(source string, seconds float64)
	RecordMatches(matched, unmatched int)
	RecordError(kind string)
}
