// Package metrics derives totals and summaries from a trip document. Nothing
// is cached; every call recomputes from the document it is given.
package metrics

import (
	"math"

	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/itinerary"
)

// DayTotalCost sums the cost of every activity in the day.
func DayTotalCost(d itinerary.Day) float64 {
	total := 0.0
	for _, a := range d.Activities {
		total += a.Cost.Float()
	}
	return finite(total)
}

// DayTotalDuration sums the minutes of every activity in the day.
func DayTotalDuration(d itinerary.Day) int {
	total := 0
	for _, a := range d.Activities {
		total += a.Duration.Int()
	}
	return total
}

func TripTotalCost(doc itinerary.Document) float64 {
	total := 0.0
	for _, d := range doc.Days {
		total += DayTotalCost(d)
	}
	return finite(total)
}

func TripTotalDuration(doc itinerary.Document) int {
	total := 0
	for _, d := range doc.Days {
		total += DayTotalDuration(d)
	}
	return total
}

func ActivityCount(doc itinerary.Document) int {
	return itinerary.ActivityCount(doc)
}

// CategoryHistogram counts activities per category. Blank categories count
// as Other.
func CategoryHistogram(doc itinerary.Document) map[activity.Category]int {
	out := make(map[activity.Category]int)
	for _, d := range doc.Days {
		for _, a := range d.Activities {
			out[a.Category.OrDefault()]++
		}
	}
	return out
}

// PriorityHistogram counts activities per priority. All three priorities are
// present; blank priorities count as medium.
func PriorityHistogram(doc itinerary.Document) map[activity.Priority]int {
	out := make(map[activity.Priority]int, 3)
	for _, p := range activity.AllPriorities() {
		out[p] = 0
	}
	for _, d := range doc.Days {
		for _, a := range d.Activities {
			out[a.Priority.OrDefault()]++
		}
	}
	return out
}

// DayValue pairs a day with a derived number.
type DayValue struct {
	Index int     `json:"index"`
	DayID string  `json:"dayId"`
	Title string  `json:"title"`
	Value float64 `json:"value"`
}

// CostsByDay lists the total cost of each day in order.
func CostsByDay(doc itinerary.Document) []DayValue {
	out := make([]DayValue, 0, len(doc.Days))
	for i, d := range doc.Days {
		out = append(out, DayValue{Index: i, DayID: d.ID, Title: d.Title, Value: DayTotalCost(d)})
	}
	return out
}

// MostExpensiveDay is the day with the highest total cost. The first day wins
// ties. ok is false when there are no days.
func MostExpensiveDay(doc itinerary.Document) (DayValue, bool) {
	return argmax(doc, func(d itinerary.Day) float64 { return DayTotalCost(d) })
}

// BusiestDay is the day with the most activities. The first day wins ties.
func BusiestDay(doc itinerary.Document) (DayValue, bool) {
	return argmax(doc, func(d itinerary.Day) float64 { return float64(len(d.Activities)) })
}

// AverageCostPerDay is the trip cost divided by the number of days, or 0.
func AverageCostPerDay(doc itinerary.Document) float64 {
	if len(doc.Days) == 0 {
		return 0
	}
	return finite(TripTotalCost(doc) / float64(len(doc.Days)))
}

// DayDate is the calendar date of the day at index.
func DayDate(doc itinerary.Document, index int) (itinerary.Date, bool) {
	return doc.DayDate(index)
}

// DateRange is the first and last date of the trip. ok is false without a
// start date or without days.
func DateRange(doc itinerary.Document) (first, last itinerary.Date, ok bool) {
	if doc.StartDate == nil || len(doc.Days) == 0 {
		return itinerary.Date{}, itinerary.Date{}, false
	}
	return *doc.StartDate, doc.StartDate.AddDays(len(doc.Days) - 1), true
}

func argmax(doc itinerary.Document, value func(itinerary.Day) float64) (DayValue, bool) {
	if len(doc.Days) == 0 {
		return DayValue{}, false
	}
	best := DayValue{Index: -1}
	for i, d := range doc.Days {
		v := value(d)
		if best.Index < 0 || v > best.Value {
			best = DayValue{Index: i, DayID: d.ID, Title: d.Title, Value: v}
		}
	}
	return best, true
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
