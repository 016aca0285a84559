package service

import (
	"testing"
	"time"

	"BrentLens/internal/domain/models"
)

func ev(y, m, d int, desc string) models.EventRecord {
	return models.EventRecord{Date: models.NewDate(y, time.Month(m), d), Description: desc}
}

func TestMatchEventsFirstHitInTableOrder(t *testing.T) {
	events := []models.EventRecord{ev(2020, 1, 1, "A"), ev(2020, 3, 1, "B")}
	got := MatchEvents([]models.Date{models.NewDate(2020, 2, 1)}, events, DefaultWindowDays)
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if !got[0].Matched() || got[0].EventDate.String() != "2020-01-01" || got[0].EventDescription != "A" {
		t.Fatalf("unexpected match %+v", got[0])
	}
}

func TestMatchEventsFirstHitBeatsNearest(t *testing.T) {
	// "far" is 150 days away but listed first; "near" is the same day.
	cp := models.NewDate(2020, 6, 1)
	events := []models.EventRecord{
		{Date: cp.AddDays(-150), Description: "far"},
		{Date: cp, Description: "near"},
	}
	got := MatchEvents([]models.Date{cp}, events, DefaultWindowDays)
	if got[0].EventDescription != "far" {
		t.Fatalf("expected first-hit policy to pick far, got %q", got[0].EventDescription)
	}

	// presorting changes the winner to the earliest candidate
	reversed := []models.EventRecord{events[1], events[0]}
	got = MatchEvents([]models.Date{cp}, reversed, DefaultWindowDays)
	if got[0].EventDescription != "near" {
		t.Fatalf("expected table order to decide, got %q", got[0].EventDescription)
	}
	got = MatchEvents([]models.Date{cp}, SortEventsByDate(reversed), DefaultWindowDays)
	if got[0].EventDescription != "far" {
		t.Fatalf("expected sorted events to put far first, got %q", got[0].EventDescription)
	}
}

func TestMatchEventsNoEvents(t *testing.T) {
	got := MatchEvents([]models.Date{models.NewDate(2021, 5, 5)}, nil, DefaultWindowDays)
	if got[0].Matched() {
		t.Fatalf("expected no match")
	}
	if got[0].EventDescription != NoMatchDescription {
		t.Fatalf("unexpected description %q", got[0].EventDescription)
	}
	if got[0].ChangePoint.String() != "2021-05-05" {
		t.Fatalf("unexpected change point %v", got[0].ChangePoint)
	}
}

func TestMatchEventsWindowBoundaries(t *testing.T) {
	cp := models.NewDate(2020, 2, 1)
	inside := []models.EventRecord{{Date: cp.AddDays(180), Description: "edge"}}
	if got := MatchEvents([]models.Date{cp}, inside, 180); !got[0].Matched() {
		t.Fatalf("event exactly on upper bound must match")
	}
	lower := []models.EventRecord{{Date: cp.AddDays(-180), Description: "edge"}}
	if got := MatchEvents([]models.Date{cp}, lower, 180); !got[0].Matched() {
		t.Fatalf("event exactly on lower bound must match")
	}
	outside := []models.EventRecord{{Date: cp.AddDays(181), Description: "late"}}
	if got := MatchEvents([]models.Date{cp}, outside, 180); got[0].Matched() {
		t.Fatalf("event past the window must not match")
	}
}

func TestMatchEventsZeroWindowSameDayOnly(t *testing.T) {
	cp := models.NewDate(2020, 2, 1)
	events := []models.EventRecord{
		{Date: cp.AddDays(-1), Description: "before"},
		{Date: cp.AddDays(1), Description: "after"},
	}
	if got := MatchEvents([]models.Date{cp}, events, 0); got[0].Matched() {
		t.Fatalf("window 0 must ignore neighbouring days, got %+v", got[0])
	}
	events = append(events, models.EventRecord{Date: cp, Description: "same"})
	got := MatchEvents([]models.Date{cp}, events, 0)
	if got[0].EventDescription != "same" {
		t.Fatalf("expected same-day match, got %+v", got[0])
	}
}

func TestMatchEventsNegativeWindowNeverMatches(t *testing.T) {
	cp := models.NewDate(2020, 2, 1)
	got := MatchEvents([]models.Date{cp}, []models.EventRecord{{Date: cp, Description: "same"}}, -1)
	if got[0].Matched() {
		t.Fatalf("negative window should be empty")
	}
}

func TestMatchEventsPreservesOrderAndDuplicates(t *testing.T) {
	cps := []models.Date{
		models.NewDate(2019, 1, 1),
		models.NewDate(2015, 1, 1),
		models.NewDate(2019, 1, 1),
	}
	events := []models.EventRecord{ev(2019, 2, 1, "X")}
	got := MatchEvents(cps, events, 90)
	if len(got) != len(cps) {
		t.Fatalf("expected %d results, got %d", len(cps), len(got))
	}
	for i := range cps {
		if got[i].ChangePoint != cps[i] {
			t.Fatalf("result %d out of order: %v", i, got[i].ChangePoint)
		}
	}
	if !got[0].Matched() || got[1].Matched() || !got[2].Matched() {
		t.Fatalf("unexpected match pattern %+v", got)
	}
	if got[0].EventDate == got[2].EventDate {
		t.Fatalf("duplicate change points must get independent results")
	}
}

func TestMatchEventsIdempotent(t *testing.T) {
	cps := []models.Date{models.NewDate(2020, 2, 1)}
	events := []models.EventRecord{ev(2020, 1, 1, "A")}
	a := MatchEvents(cps, events, 180)
	b := MatchEvents(cps, events, 180)
	if *a[0].EventDate != *b[0].EventDate || a[0].EventDescription != b[0].EventDescription {
		t.Fatalf("expected identical results")
	}
}
