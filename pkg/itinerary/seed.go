package itinerary

import (
	"time"

	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/weather"
)

// Seed is the document a new or unreadable store starts from. The trip starts
// the day after now. Weather is left empty.
func Seed(now time.Time) Document {
	start := DateOf(now).AddDays(1)
	return Document{
		StartDate: &start,
		Weather:   map[string]weather.Report{},
		Days: []Day{
			{
				ID:    "day-1",
				Title: "Day 1",
				Activities: []activity.Activity{
					{
						ID:       "activity-1",
						Title:    "Breakfast at hotel",
						Time:     "08:00",
						Location: "Hotel restaurant",
						Notes:    "Continental breakfast included with stay",
						Category: activity.Food,
						Priority: activity.Medium,
						Cost:     0,
						Duration: 60,
					},
					{
						ID:       "activity-2",
						Title:    "Visit museum",
						Time:     "10:00",
						Location: "National Museum",
						Notes:    "Tickets already purchased online",
						Category: activity.Sightseeing,
						Priority: activity.High,
						Cost:     25,
						Duration: 180,
					},
				},
			},
			{
				ID:    "day-2",
				Title: "Day 2",
				Activities: []activity.Activity{
					{
						ID:       "activity-3",
						Title:    "Hiking tour",
						Time:     "09:00",
						Location: "Mountain trail",
						Notes:    "Wear comfortable shoes and bring water",
						Category: activity.Adventure,
						Priority: activity.High,
						Cost:     45,
						Duration: 240,
					},
				},
			},
		},
	}
}
