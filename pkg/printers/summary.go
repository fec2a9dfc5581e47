package printers

import (
	"fmt"

	"github.com/gosuri/uitable"

	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/glyph"
	"tableflip.dev/trip/pkg/metrics"
	"tableflip.dev/trip/pkg/timeutil"
)

// Summary prints the trip totals and breakdowns.
func (pp *PrettyPrint) Summary(s metrics.Summary) {
	w := pp.out()
	pp.Title("Trip Summary")

	tbl := uitable.New()
	tbl.Separator = "  "
	if s.StartDate != nil && s.EndDate != nil {
		tbl.AddRow("Dates", fmt.Sprintf("%s - %s", s.StartDate, s.EndDate))
	}
	tbl.AddRow("Days", s.Days)
	tbl.AddRow("Activities", s.Activities)
	tbl.AddRow("Total cost", fmt.Sprintf("$%.2f", s.TotalCost))
	tbl.AddRow("Average per day", fmt.Sprintf("$%.2f", s.AverageCostPerDay))
	tbl.AddRow("Total time", timeutil.FormatMinutes(s.TotalDuration))
	if d := s.MostExpensiveDay; d != nil {
		tbl.AddRow("Most expensive", fmt.Sprintf("%s ($%.2f)", d.Title, d.Value))
	}
	if d := s.BusiestDay; d != nil {
		tbl.AddRow("Busiest", fmt.Sprintf("%s (%.0f activities)", d.Title, d.Value))
	}
	_, _ = fmt.Fprintln(w, tbl)

	_, _ = fmt.Fprintln(w, glyph.Bold(glyph.Underline("\nCategories")))
	cats := uitable.New()
	cats.Separator = "  "
	for _, c := range activity.AllCategories() {
		if n := s.Categories[c]; n > 0 {
			cats.AddRow(glyph.ForCategory(c).Symbol, c, n)
		}
	}
	_, _ = fmt.Fprintln(w, cats)

	_, _ = fmt.Fprintln(w, glyph.Bold(glyph.Underline("\nPriorities")))
	prio := uitable.New()
	prio.Separator = "  "
	for _, p := range activity.AllPriorities() {
		prio.AddRow(priorityColor(p).Sprint(glyph.ForPriority(p).Symbol), p, s.Priorities[p])
	}
	_, _ = fmt.Fprintln(w, prio)

	_, _ = fmt.Fprintln(w, glyph.Bold(glyph.Underline("\nCost by day")))
	costs := uitable.New()
	costs.Separator = "  "
	for _, d := range s.CostsByDay {
		costs.AddRow(d.Title, fmt.Sprintf("$%.2f", d.Value))
	}
	_, _ = fmt.Fprintln(w, costs)
}
