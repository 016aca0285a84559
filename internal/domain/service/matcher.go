package service

import (
	"sort"

	"BrentLens/internal/domain/models"
)

const (
	// DefaultWindowDays is the half-width of the matching window.
	DefaultWindowDays = 180
	// NoMatchDescription is reported for change-points with no event in range.
	NoMatchDescription = "No matching event found"
)

// MatchEvents pairs every change-point with the first event, in table order,
// whose date lies in [d-windowDays, d+windowDays]. The first hit wins even when a
// later event is closer in time; sort events with SortEventsByDate beforehand
// to favour the earliest candidate instead.
func MatchEvents(changePoints []models.Date, events []models.EventRecord, windowDays int) []models.MatchResult {
	out := make([]models.MatchResult, 0, len(changePoints))
	for _, cp := range changePoints {
		out = append(out, matchOne(cp, events, windowDays))
	}
	return out
}

func matchOne(cp models.Date, events []models.EventRecord, windowDays int) models.MatchResult {
	lo, hi := cp.AddDays(-windowDays), cp.AddDays(windowDays)
	for i := range events {
		if events[i].Date.Within(lo, hi) {
			d := events[i].Date
			return models.MatchResult{
				ChangePoint:      cp,
				EventDate:        &d,
				EventDescription: events[i].Description,
			}
		}
	}
	return models.MatchResult{ChangePoint: cp, EventDescription: NoMatchDescription}
}

// SortEventsByDate returns a date-ordered copy; equal dates keep table order.
func SortEventsByDate(events []models.EventRecord) []models.EventRecord {
	sorted := make([]models.EventRecord, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date.Time)
	})
	return sorted
}

// ChangePointDates extracts the dates in order.
func ChangePointDates(cps []models.ChangePoint) []models.Date {
	out := make([]models.Date, 0, len(cps))
	for _, cp := range cps {
		out = append(out, cp.Date)
	}
	return out
}
