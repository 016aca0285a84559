package models

// PriceRecord is one row of the price history.
type PriceRecord struct {
	Date  Date    `json:"Date"`
	Price float64 `json:"Price"`
}

// EventRecord is a dated news or policy event.
type EventRecord struct {
	Date        Date   `json:"date"`
	Description string `json:"description"`
}

// ChangePoint is a date where a structural shift in prices was detected upstream.
type ChangePoint struct {
	Date Date `json:"change_point"`
}

// MatchResult pairs a change-point with the event chosen for it.
// EventDate is nil when no event fell inside the window.
type MatchResult struct {
	ChangePoint      Date   `json:"change_point"`
	EventDate        *Date  `json:"event_date"`
	EventDescription string `json:"event_description"`
}

// Matched reports whether an event was found.
func (m MatchResult) Matched() bool { return m.EventDate != nil }

// PriceSummary holds the key indicators shown on the dashboard.
type PriceSummary struct {
	DataPoints   int     `json:"data_points"`
	Average      float64 `json:"average"`
	Volatility   float64 `json:"volatility"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	FirstDate    *Date   `json:"first_date"`
	LastDate     *Date   `json:"last_date"`
	ChangePoints int     `json:"change_points"`
	Events       int     `json:"events"`
}
