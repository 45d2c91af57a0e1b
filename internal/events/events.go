// Package events filters raw corporate-action records down to the
// chart-annotation window.
//
// The upstream corporate-action source is best-effort: absent or partial
// data simply yields fewer events, never an error. Output ordering is
// unspecified; the chart layer sorts if it needs to.
package events

import (
	"fmt"
	"math"
	"time"

	"equity-navigator/internal/model"
)

// FilterRange returns the events whose date falls inside the closed
// interval [start, end], tagged with their kind and a human-readable
// description. Nil record slices are fine and contribute nothing.
func FilterRange(earnings []model.EarningsRecord, splits []model.SplitRecord, start, end time.Time) []model.Event {
	var out []model.Event
	for _, r := range earnings {
		if !inRange(r.Date, start, end) {
			continue
		}
		out = append(out, model.Event{
			Date: r.Date,
			Kind: model.EventEarnings,
			Description: fmt.Sprintf("Earnings: %s (Est: %s)",
				formatEPS(r.EPSActual), formatEPS(r.EPSEstimate)),
		})
	}
	for _, r := range splits {
		if !inRange(r.Date, start, end) {
			continue
		}
		out = append(out, model.Event{
			Date:        r.Date,
			Kind:        model.EventSplit,
			Description: "Split: " + r.Ratio,
		})
	}
	return out
}

func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

func formatEPS(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}
