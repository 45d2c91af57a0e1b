// Package csvio serializes bar series, indicator overlays and event
// lists as comma-separated text with a header row. Bar round-trips are
// lossless; undefined overlay points are written as empty cells so that
// downstream consumers never mistake them for zeros.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"equity-navigator/internal/indicator"
	"equity-navigator/internal/model"
)

var barHeader = []string{"timestamp", "open", "high", "low", "close", "volume"}

// WriteBars writes a bar series with a header row.
func WriteBars(w io.Writer, bars []model.Bar) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(barHeader); err != nil {
		return err
	}
	for i := range bars {
		b := &bars[i]
		rec := []string{
			b.TS.UTC().Format(time.RFC3339),
			formatFloat(b.Open),
			formatFloat(b.High),
			formatFloat(b.Low),
			formatFloat(b.Close),
			formatFloat(b.Volume),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadBars parses a bar series written by WriteBars. Timestamps may be
// RFC 3339 or bare dates (2006-01-02); column order must match the
// header. Ordering validation is left to the series input adapter.
func ReadBars(r io.Reader) ([]model.Bar, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(barHeader)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i, want := range barHeader {
		if header[i] != want {
			return nil, fmt.Errorf("csvio: unexpected header column %q, want %q", header[i], want)
		}
	}

	var bars []model.Bar
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return bars, nil
		}
		if err != nil {
			return nil, err
		}
		ts, err := parseTime(rec[0])
		if err != nil {
			return nil, err
		}
		fields := make([]float64, 5)
		for i := 0; i < 5; i++ {
			v, err := strconv.ParseFloat(rec[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("csvio: bad %s value %q", barHeader[i+1], rec[i+1])
			}
			fields[i] = v
		}
		bars = append(bars, model.Bar{
			TS:     ts,
			Open:   fields[0],
			High:   fields[1],
			Low:    fields[2],
			Close:  fields[3],
			Volume: fields[4],
		})
	}
}

// WriteOverlays writes a timestamp column followed by one column per
// overlay. Undefined points become empty cells.
func WriteOverlays(w io.Writer, overlays []indicator.Overlay) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(overlays)+1)
	header = append(header, "timestamp")
	for _, o := range overlays {
		header = append(header, o.Name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	n := 0
	if len(overlays) > 0 {
		n = overlays[0].Series.Len()
	}
	rec := make([]string, len(header))
	for i := 0; i < n; i++ {
		rec[0] = overlays[0].Series.Time(i).UTC().Format(time.RFC3339)
		for j, o := range overlays {
			if o.Series.Defined(i) {
				rec[j+1] = formatFloat(o.Series.At(i))
			} else {
				rec[j+1] = ""
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEvents writes filtered corporate events.
func WriteEvents(w io.Writer, evs []model.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "kind", "description"}); err != nil {
		return err
	}
	for _, e := range evs {
		rec := []string{
			e.Date.UTC().Format(time.RFC3339),
			string(e.Kind),
			e.Description,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadEarnings parses "date,eps_actual,eps_estimate" records. Empty EPS
// cells become NaN, matching providers that omit estimates.
func ReadEarnings(r io.Reader) ([]model.EarningsRecord, error) {
	rows, err := readTable(r, []string{"date", "eps_actual", "eps_estimate"})
	if err != nil {
		return nil, err
	}
	out := make([]model.EarningsRecord, 0, len(rows))
	for _, rec := range rows {
		ts, err := parseTime(rec[0])
		if err != nil {
			return nil, err
		}
		actual, err := parseOptionalFloat(rec[1])
		if err != nil {
			return nil, err
		}
		estimate, err := parseOptionalFloat(rec[2])
		if err != nil {
			return nil, err
		}
		out = append(out, model.EarningsRecord{Date: ts, EPSActual: actual, EPSEstimate: estimate})
	}
	return out, nil
}

// ReadSplits parses "date,ratio" records.
func ReadSplits(r io.Reader) ([]model.SplitRecord, error) {
	rows, err := readTable(r, []string{"date", "ratio"})
	if err != nil {
		return nil, err
	}
	out := make([]model.SplitRecord, 0, len(rows))
	for _, rec := range rows {
		ts, err := parseTime(rec[0])
		if err != nil {
			return nil, err
		}
		out = append(out, model.SplitRecord{Date: ts, Ratio: rec[1]})
	}
	return out, nil
}

func readTable(r io.Reader, want []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(want)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i, col := range want {
		if header[i] != col {
			return nil, fmt.Errorf("csvio: unexpected header column %q, want %q", header[i], col)
		}
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("csvio: bad timestamp %q", s)
	}
	return t, nil
}

func parseOptionalFloat(s string) (float64, error) {
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("csvio: bad numeric value %q", s)
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
