package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateWithinClosedInterval(t *testing.T) {
	d := NewDate(2020, 2, 1)
	if !d.Within(d, d) {
		t.Fatalf("date should be within its own single-day interval")
	}
	if !d.Within(d.AddDays(-180), d.AddDays(180)) {
		t.Fatalf("expected within window")
	}
	if d.AddDays(1).Within(d.AddDays(-1), d) {
		t.Fatalf("day after upper bound must be outside")
	}
}

func TestDateOfDropsClock(t *testing.T) {
	loc := time.FixedZone("X", 5*3600)
	got := DateOf(time.Date(2021, 5, 5, 23, 30, 0, 0, loc))
	if got != NewDate(2021, 5, 5) {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestMatchResultJSONNullEventDate(t *testing.T) {
	b, err := json.Marshal(MatchResult{ChangePoint: NewDate(2021, 5, 5), EventDescription: "No matching event found"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"change_point":"2021-05-05","event_date":null,"event_description":"No matching event found"}`
	if string(b) != want {
		t.Fatalf("got %s", b)
	}

	var back MatchResult
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Matched() || back.ChangePoint != NewDate(2021, 5, 5) {
		t.Fatalf("unexpected round trip %+v", back)
	}
}
