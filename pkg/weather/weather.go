// Package weather provides the simulated per-day forecast shown next to each
// day of a trip. Forecasts are generated, never fetched.
package weather

import (
	"context"
	"time"
)

// Condition is a coarse sky description.
type Condition string

const (
	Sunny        Condition = "Sunny"
	PartlyCloudy Condition = "Partly Cloudy"
	Cloudy       Condition = "Cloudy"
	Rainy        Condition = "Rainy"
	Thunderstorm Condition = "Thunderstorm"
)

// AllConditions returns the conditions the simulator draws from.
func AllConditions() []Condition {
	return []Condition{Sunny, PartlyCloudy, Cloudy, Rainy, Thunderstorm}
}

// Report is the forecast for one calendar date.
type Report struct {
	Condition     Condition `json:"condition" yaml:"condition"`
	Temperature   float64   `json:"temperature" yaml:"temperature"`
	Precipitation float64   `json:"precipitation" yaml:"precipitation"`
}

// Forecaster produces a report for a date.
type Forecaster interface {
	Forecast(ctx context.Context, date time.Time) (Report, error)
}

const dateLayout = "2006-01-02"

// DateKey formats the key used in the weather map of a document.
func DateKey(date time.Time) string {
	return date.Format(dateLayout)
}

// ForDays forecasts n consecutive dates beginning at start.
func ForDays(ctx context.Context, f Forecaster, start time.Time, n int) (map[string]Report, error) {
	out := make(map[string]Report, n)
	for i := 0; i < n; i++ {
		date := start.AddDate(0, 0, i)
		r, err := f.Forecast(ctx, date)
		if err != nil {
			return nil, err
		}
		out[DateKey(date)] = r
	}
	return out, nil
}
