package model

import "time"

// Bar represents one OHLCV observation for a single instrument and period.
// Timestamps are strictly increasing within a series; spacing may be
// irregular (daily, weekly, monthly and intraday bars all use this type).
type Bar struct {
	TS     time.Time `json:"ts"` // bar start time (UTC)
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"` // non-negative
}
