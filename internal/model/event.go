package model

import "time"

// EventKind classifies a corporate event for chart annotation.
type EventKind string

const (
	EventEarnings EventKind = "Earnings"
	EventSplit    EventKind = "Split"
)

// Event is a dated corporate event with a human-readable description,
// produced fresh per query. The chart layer sorts events if it needs an
// ordering; none is guaranteed here.
type Event struct {
	Date        time.Time `json:"date"`
	Kind        EventKind `json:"kind"`
	Description string    `json:"description"`
}

// EarningsRecord is a raw earnings report as returned by a corporate-action
// provider. EPS fields may be NaN when the provider omits them.
type EarningsRecord struct {
	Date        time.Time `json:"date"`
	EPSActual   float64   `json:"eps_actual"`
	EPSEstimate float64   `json:"eps_estimate"`
}

// SplitRecord is a raw stock split with its effective date.
// Ratio keeps the provider's notation, e.g. "4:1" or "2/1".
type SplitRecord struct {
	Date  time.Time `json:"date"`
	Ratio string    `json:"ratio"`
}
