package usecase

import (
	"math"

	"BrentLens/internal/domain/models"
	domrepo "BrentLens/internal/domain/repository"
	domsvc "BrentLens/internal/domain/service"
)

// QueryService answers the read endpoints from a loaded Dataset.
type QueryService struct {
	ds         *Dataset
	windowDays int
	metrics    domrepo.Metrics
}

func NewQueryService(ds *Dataset, windowDays int, m domrepo.Metrics) *QueryService {
	return &QueryService{ds: ds, windowDays: windowDays, metrics: m}
}

// WindowDays is the matching half-width in days.
func (s *QueryService) WindowDays() int { return s.windowDays }

func (s *QueryService) ListPrices() []models.PriceRecord { return s.ds.Prices() }

func (s *QueryService) ListEvents() []models.EventRecord { return s.ds.Events() }

// ListChangePointMatches runs the matcher over the loaded change-points in table order.
func (s *QueryService) ListChangePointMatches() []models.MatchResult {
	res := domsvc.MatchEvents(domsvc.ChangePointDates(s.ds.ChangePoints()), s.ds.Events(), s.windowDays)
	matched := 0
	for _, r := range res {
		if r.Matched() {
			matched++
		}
	}
	s.metrics.RecordMatches(matched, len(res)-matched)
	return res
}

// Summary computes the dashboard key indicators over the whole price table.
// Volatility is the population standard deviation of prices.
func (s *QueryService) Summary() models.PriceSummary {
	prices := s.ds.Prices()
	_, events, cps := s.ds.Counts()
	out := models.PriceSummary{
		DataPoints:   len(prices),
		ChangePoints: cps,
		Events:       events,
	}
	if len(prices) == 0 {
		return out
	}

	first, last := prices[0].Date, prices[0].Date
	lo, hi := prices[0].Price, prices[0].Price
	var sum float64
	for _, p := range prices {
		sum += p.Price
		lo = math.Min(lo, p.Price)
		hi = math.Max(hi, p.Price)
		if p.Date.Before(first.Time) {
			first = p.Date
		}
		if p.Date.After(last.Time) {
			last = p.Date
		}
	}
	mean := sum / float64(len(prices))
	var sq float64
	for _, p := range prices {
		sq += (p.Price - mean) * (p.Price - mean)
	}

	out.Average = mean
	out.Volatility = math.Sqrt(sq / float64(len(prices)))
	out.Min, out.Max = lo, hi
	out.FirstDate, out.LastDate = &first, &last
	return out
}
