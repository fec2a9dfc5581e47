package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/trip/pkg/itinerary"
	"tableflip.dev/trip/pkg/metrics"
	"tableflip.dev/trip/pkg/weather"
)

func init() {
	color.NoColor = true
}

func seed() itinerary.Document {
	doc := itinerary.Seed(time.Date(2025, time.January, 30, 8, 0, 0, 0, time.UTC))
	return itinerary.MergeWeather(doc, map[string]weather.Report{"2025-01-31": {Condition: weather.Rainy, Temperature: 12, Precipitation: 70}})
}

func TestDocument(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{ShowID: true, Out: &buf}
	pp.Document(seed())
	out := buf.String()
	for _, want := range []string{
		"2025-01-31 - 2025-02-01",
		"Day 1 (day-1)",
		"☂ 12°C 70%",
		"4h  $25.00",
		"activity-2",
		"Visit museum",
		"10:00 · 3h · $25.00 · @ National Museum",
		"Wear comfortable shoes and bring water",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Summary(metrics.Summarize(seed()))
	out := buf.String()
	for _, want := range []string{"Total cost", "$70.00", "8h 0m", "Day 2 ($45.00)", "Sightseeing"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCalendarSpansMonths(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Calendar(seed())
	out := buf.String()
	if !strings.Contains(out, "January 2025") || !strings.Contains(out, "February 2025") {
		t.Fatalf("expected two months:\n%s", out)
	}
}
