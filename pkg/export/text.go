package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"tableflip.dev/trip/pkg/itinerary"
	"tableflip.dev/trip/pkg/timeutil"
)

// Text writes the plain text itinerary. Empty fields are left out.
func Text(w io.Writer, days []itinerary.Day, start *itinerary.Date) error {
	b := bufio.NewWriter(w)
	b.WriteString("TRAVEL ITINERARY\n\n")

	if from, to, ok := dateRange(days, start); ok {
		fmt.Fprintf(b, "Trip Dates: %s - %s\n\n", from, to)
	}

	for i, day := range days {
		fmt.Fprintf(b, "%s\n", strings.ToUpper(day.Title))
		fmt.Fprintf(b, "%s\n", strings.Repeat("=", utf8.RuneCountInString(day.Title)))
		if start != nil {
			fmt.Fprintf(b, "Date: %s\n", start.AddDays(i).Format(displayDate))
		}
		b.WriteString("\n")

		if len(day.Activities) == 0 {
			b.WriteString("No activities planned.\n\n")
		}
		for _, a := range day.Activities {
			fmt.Fprintf(b, "• %s\n", a.Title)
			if a.Time != "" {
				fmt.Fprintf(b, "  Time: %s\n", a.Time)
			}
			if d := a.Duration.Int(); d > 0 {
				fmt.Fprintf(b, "  Duration: %s\n", timeutil.FormatMinutes(d))
			}
			if a.Location != "" {
				fmt.Fprintf(b, "  Location: %s\n", a.Location)
			}
			if a.Category != "" {
				fmt.Fprintf(b, "  Category: %s\n", a.Category)
			}
			if a.Priority != "" {
				fmt.Fprintf(b, "  Priority: %s\n", a.Priority)
			}
			if c := a.Cost.Float(); c > 0 {
				fmt.Fprintf(b, "  Cost: $%.2f\n", c)
			}
			if a.Notes != "" {
				fmt.Fprintf(b, "  Notes: %s\n", a.Notes)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.Flush()
}
