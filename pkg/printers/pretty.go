package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/glyph"
	"tableflip.dev/trip/pkg/itinerary"
	"tableflip.dev/trip/pkg/metrics"
	"tableflip.dev/trip/pkg/places"
	"tableflip.dev/trip/pkg/timeutil"
)

type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

var (
	spacing = strings.Repeat(" ", len("activity-0000  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

// Document prints every day of the trip.
func (pp *PrettyPrint) Document(doc itinerary.Document) {
	if first, last, ok := metrics.DateRange(doc); ok {
		f := color.New(color.Faint)
		_, _ = f.Fprintf(pp.out(), "%s - %s\n\n", first, last)
	}
	if len(doc.Days) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " no days planned\n\n")
		return
	}
	for i := range doc.Days {
		pp.Day(doc, i)
	}
}

// Day prints one day with its date, forecast, totals and activities.
func (pp *PrettyPrint) Day(doc itinerary.Document, index int) {
	day := doc.Days[index]
	w := pp.out()
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(w, day.Title)
	if pp.ShowID {
		_, _ = c.Fprintf(w, " (%s)", day.ID)
	}
	if date, ok := doc.DayDate(index); ok {
		_, _ = c.Fprintf(w, "  %s", date.Format("Mon Jan 2"))
	}
	if r, ok := doc.WeatherFor(index); ok {
		_, _ = c.Fprintf(w, "  %s %.0f°C %.0f%%", glyph.ForCondition(r.Condition), r.Temperature, r.Precipitation)
	}
	_, _ = c.Fprintf(w, "  %s  $%.2f\n", timeutil.FormatMinutesCompact(metrics.DayTotalDuration(day)), metrics.DayTotalCost(day))

	pp.Activities(day.Activities...)
}

// Activities prints a list of activities, or "none".
func (pp *PrettyPrint) Activities(acts ...activity.Activity) {
	w := pp.out()
	if len(acts) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(w, spacing)
		}
		_, _ = f.Fprint(w, " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	m := color.New(color.Faint)
	for _, a := range acts {
		if pp.ShowID {
			_, _ = y.Fprint(w, a.ID)
			pad := len(spacing) - len(a.ID)
			if pad < 1 {
				pad = 1
			}
			_, _ = y.Fprint(w, strings.Repeat(" ", pad))
		}
		p := priorityColor(a.Priority)
		_, _ = p.Fprintf(w, "%s ", glyph.ForPriority(a.Priority))
		_, _ = fmt.Fprintf(w, "%s %s", glyph.ForCategory(a.Category), a.Title)

		var meta []string
		if a.Time != "" {
			meta = append(meta, a.Time)
		}
		meta = append(meta, timeutil.FormatMinutesCompact(a.Duration.Int()))
		if cost := a.Cost.Float(); cost > 0 {
			meta = append(meta, fmt.Sprintf("$%.2f", cost))
		}
		if a.Location != "" {
			meta = append(meta, "@ "+a.Location)
		}
		_, _ = m.Fprintf(w, "  %s\n", strings.Join(meta, " · "))
		if a.Notes != "" {
			n := color.New(color.Faint, color.Italic)
			_, _ = n.Fprintf(w, "      %s\n", a.Notes)
		}
	}
	_, _ = fmt.Fprintln(w, "")
}

// Places prints numbered search results.
func (pp *PrettyPrint) Places(results []places.Place) {
	w := pp.out()
	if len(results) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(w, " no places found\n")
		return
	}
	m := color.New(color.Faint)
	for i, p := range results {
		_, _ = fmt.Fprintf(w, "%d. %s\n", i+1, p.Name)
		_, _ = m.Fprintf(w, "   %s (%.4f, %.4f)\n", p.Address, p.Coordinates.Lat, p.Coordinates.Lng)
	}
}

func priorityColor(p activity.Priority) *color.Color {
	switch p.OrDefault() {
	case activity.High:
		return color.New(color.FgRed)
	case activity.Low:
		return color.New(color.FgBlue)
	}
	return color.New(color.FgYellow)
}
