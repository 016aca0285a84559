package usecase

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"BrentLens/internal/domain/models"
	domsvc "BrentLens/internal/domain/service"
	applogger "BrentLens/pkg/logger"
	"BrentLens/pkg/metrics"
)

type fakeSource struct {
	prices    []models.PriceRecord
	events    []models.EventRecord
	cps       []models.ChangePoint
	eventsErr error
	calls     int
}

func (f *fakeSource) LoadPrices(context.Context) ([]models.PriceRecord, error) {
	f.calls++
	return f.prices, nil
}

func (f *fakeSource) LoadEvents(context.Context) ([]models.EventRecord, error) {
	f.calls++
	return f.events, f.eventsErr
}

func (f *fakeSource) LoadChangePoints(context.Context) ([]models.ChangePoint, error) {
	f.calls++
	return f.cps, nil
}

func (f *fakeSource) Name() string { return "fake" }
func (f *fakeSource) Close() error { return nil }

type countingMetrics struct {
	metrics.Nop
	matched, unmatched int
	rows               map[string]int
	errs               []string
}

func (c *countingMetrics) RecordMatches(m, u int) { c.matched += m; c.unmatched += u }
func (c *countingMetrics) RecordRowsLoaded(table string, n int) {
	if c.rows == nil {
		c.rows = map[string]int{}
	}
	c.rows[table] = n
}
func (c *countingMetrics) RecordError(kind string) { c.errs = append(c.errs, kind) }

func sampleSource() *fakeSource {
	return &fakeSource{
		prices: []models.PriceRecord{
			{Date: models.NewDate(2020, 1, 2), Price: 1},
			{Date: models.NewDate(2020, 1, 1), Price: 2},
			{Date: models.NewDate(2020, 1, 3), Price: 3},
		},
		events: []models.EventRecord{
			{Date: models.NewDate(2020, 1, 1), Description: "A"},
			{Date: models.NewDate(2020, 3, 1), Description: "B"},
		},
		cps: []models.ChangePoint{
			{Date: models.NewDate(2020, 2, 1)},
			{Date: models.NewDate(2010, 1, 1)},
			{Date: models.NewDate(2020, 2, 1)},
		},
	}
}

func TestLoadDatasetLoadsOnce(t *testing.T) {
	src := sampleSource()
	m := &countingMetrics{}
	ds, err := LoadDataset(context.Background(), src, m, applogger.Nop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if src.calls != 3 {
		t.Fatalf("expected each table read once, got %d calls", src.calls)
	}
	p, e, c := ds.Counts()
	if p != 3 || e != 2 || c != 3 {
		t.Fatalf("unexpected counts %d %d %d", p, e, c)
	}
	if m.rows["prices"] != 3 || m.rows["change_points"] != 3 {
		t.Fatalf("row gauges not recorded: %v", m.rows)
	}
}

func TestLoadDatasetAllOrNothing(t *testing.T) {
	src := sampleSource()
	src.eventsErr = errors.New("bad date")
	m := &countingMetrics{}
	ds, err := LoadDataset(context.Background(), src, m, applogger.Nop())
	if err == nil || ds != nil {
		t.Fatalf("expected failure without dataset, got %v %v", ds, err)
	}
	if !errors.Is(err, src.eventsErr) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if len(m.errs) != 1 || m.errs[0] != "load_events" {
		t.Fatalf("unexpected error metrics %v", m.errs)
	}
}

func TestDatasetIsImmutable(t *testing.T) {
	src := sampleSource()
	ds := NewDataset(src.prices, src.events, src.cps)
	src.prices[0].Price = 999
	got := ds.Prices()
	if got[0].Price != 1 {
		t.Fatalf("dataset must copy its input")
	}
	got[0].Price = 42
	if ds.Prices()[0].Price != 1 {
		t.Fatalf("dataset must hand out copies")
	}
}

func TestQueryServiceListsInSourceOrder(t *testing.T) {
	src := sampleSource()
	svc := NewQueryService(NewDataset(src.prices, src.events, src.cps), domsvc.DefaultWindowDays, metrics.Nop{})
	if !reflect.DeepEqual(svc.ListPrices(), src.prices) {
		t.Fatalf("prices must keep source order")
	}
	if !reflect.DeepEqual(svc.ListEvents(), src.events) {
		t.Fatalf("events must keep source order")
	}
}

func TestQueryServiceChangePointMatches(t *testing.T) {
	src := sampleSource()
	m := &countingMetrics{}
	svc := NewQueryService(NewDataset(src.prices, src.events, src.cps), domsvc.DefaultWindowDays, m)

	got := svc.ListChangePointMatches()
	if len(got) != len(src.cps) {
		t.Fatalf("expected %d results, got %d", len(src.cps), len(got))
	}
	for i := range got {
		if got[i].ChangePoint != src.cps[i].Date {
			t.Fatalf("result %d out of order", i)
		}
	}
	if got[0].EventDescription != "A" || got[0].EventDate.String() != "2020-01-01" {
		t.Fatalf("expected first-in-table event A, got %+v", got[0])
	}
	if got[1].Matched() || got[1].EventDescription != domsvc.NoMatchDescription {
		t.Fatalf("expected no match for 2010, got %+v", got[1])
	}
	if m.matched != 2 || m.unmatched != 1 {
		t.Fatalf("unexpected match metrics %d/%d", m.matched, m.unmatched)
	}

	again := svc.ListChangePointMatches()
	if !reflect.DeepEqual(got, again) {
		t.Fatalf("repeated calls must return identical results")
	}
}

func TestQueryServiceEmptyDataset(t *testing.T) {
	svc := NewQueryService(NewDataset(nil, nil, nil), 180, metrics.Nop{})
	if svc.ListPrices() == nil || svc.ListEvents() == nil || svc.ListChangePointMatches() == nil {
		t.Fatalf("empty tables must give empty non-nil slices")
	}
	s := svc.Summary()
	if s.DataPoints != 0 || s.FirstDate != nil || s.Average != 0 {
		t.Fatalf("unexpected empty summary %+v", s)
	}
}

func TestQueryServiceSummary(t *testing.T) {
	src := sampleSource()
	s := NewQueryService(NewDataset(src.prices, src.events, src.cps), 180, metrics.Nop{}).Summary()
	if s.DataPoints != 3 || s.Events != 2 || s.ChangePoints != 3 {
		t.Fatalf("unexpected counts %+v", s)
	}
	if s.Average != 2 {
		t.Fatalf("expected average 2, got %v", s.Average)
	}
	if math.Abs(s.Volatility-math.Sqrt(2.0/3.0)) > 1e-12 {
		t.Fatalf("unexpected volatility %v", s.Volatility)
	}
	if s.Min != 1 || s.Max != 3 {
		t.Fatalf("unexpected range %v..%v", s.Min, s.Max)
	}
	if s.FirstDate.String() != "2020-01-01" || s.LastDate.String() != "2020-01-03" {
		t.Fatalf("unexpected date span %v..%v", s.FirstDate, s.LastDate)
	}
}
