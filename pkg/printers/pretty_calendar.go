package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/trip/pkg/itinerary"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints a month grid for every month the trip touches. Trip days
// are bold, days with activities are also underlined.
func (pp *PrettyPrint) Calendar(doc itinerary.Document) {
	if doc.StartDate == nil || len(doc.Days) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " no start date set\n\n")
		return
	}

	count := make(map[string]int, len(doc.Days))
	for i, day := range doc.Days {
		d, _ := doc.DayDate(i)
		count[d.String()] = len(day.Activities) + 1
	}

	first := doc.StartDate.Time
	last := doc.StartDate.AddDays(len(doc.Days) - 1).Time
	for m := firstOfMonth(first); !m.After(last); m = NextMonth(m) {
		pp.PrintMonthCount(m, count)
	}
}

// PrintMonthCount prints one month. count is keyed by date and holds one plus
// the number of activities for trip days.
func (pp *PrettyPrint) PrintMonthCount(then time.Time, count map[string]int) {
	w := pp.out()
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%s %d", then.Month(), then.Year())
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(w, "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	l3 := color.New(color.Bold, color.FgHiWhite, color.Underline)

	days := DaysIn(then)
	for i := 0; i < days; i++ {
		key := time.Date(then.Year(), then.Month(), i+1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		switch n := count[key]; {
		case n == 0:
			_, _ = l1.Fprintf(w, "%2d", i+1)
		case n == 1:
			_, _ = l2.Fprintf(w, "%2d", i+1)
		default:
			_, _ = l3.Fprintf(w, "%2d", i+1)
		}
		_, _ = fmt.Fprint(w, " ")

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(w, "\n")
		}
	}
	_, _ = fmt.Fprint(w, "\n\n")
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

func DaysIn(then time.Time) int {
	return time.Date(then.UTC().Year(), then.UTC().Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.UTC().Year(), then.UTC().Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
