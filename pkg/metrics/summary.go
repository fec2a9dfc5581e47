package metrics

import (
	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/itinerary"
)

// Summary bundles every derived value shown for a trip.
type Summary struct {
	Days              int                       `json:"days"`
	Activities        int                       `json:"activities"`
	TotalCost         float64                   `json:"totalCost"`
	TotalDuration     int                       `json:"totalDuration"`
	AverageCostPerDay float64                   `json:"averageCostPerDay"`
	Categories        map[activity.Category]int `json:"categories"`
	Priorities        map[activity.Priority]int `json:"priorities"`
	CostsByDay        []DayValue                `json:"costsByDay"`
	MostExpensiveDay  *DayValue                 `json:"mostExpensiveDay,omitempty"`
	BusiestDay        *DayValue                 `json:"busiestDay,omitempty"`
	StartDate         *itinerary.Date           `json:"startDate,omitempty"`
	EndDate           *itinerary.Date           `json:"endDate,omitempty"`
}

// Summarize computes a Summary for doc.
func Summarize(doc itinerary.Document) Summary {
	s := Summary{
		Days:              len(doc.Days),
		Activities:        ActivityCount(doc),
		TotalCost:         TripTotalCost(doc),
		TotalDuration:     TripTotalDuration(doc),
		AverageCostPerDay: AverageCostPerDay(doc),
		Categories:        CategoryHistogram(doc),
		Priorities:        PriorityHistogram(doc),
		CostsByDay:        CostsByDay(doc),
	}
	if d, ok := MostExpensiveDay(doc); ok {
		s.MostExpensiveDay = &d
	}
	if d, ok := BusiestDay(doc); ok {
		s.BusiestDay = &d
	}
	if first, last, ok := DateRange(doc); ok {
		s.StartDate = &first
		s.EndDate = &last
	}
	return s
}
