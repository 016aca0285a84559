package models

import (
	"bytes"
	"fmt"
	"time"
)

// DateLayout is the wire format of every Date.
const DateLayout = "2006-01-02"

// Date is a calendar day without timezone, held as midnight UTC.
type Date struct {
	time.Time
}

// NewDate builds a Date from its calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf keeps the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// AddDays shifts by whole calendar days.
func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

// Within reports whether lo <= d <= hi.
func (d Date) Within(lo, hi Date) bool {
	return !d.Time.Before(lo.Time) && !d.Time.After(hi.Time)
}

func (d Date) String() string {
	return d.Time.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("date: expected string, got %s", b)
	}
	t, err := time.Parse(DateLayout, string(b[1:len(b)-1]))
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	*d = Date{t}
	return nil
}
