// Package itinerary holds the trip document: an ordered list of days, each
// with an ordered list of activities. Every function here is pure. Inputs are
// never modified and a new Document is returned.
package itinerary

import (
	"errors"

	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/weather"
)

var (
	ErrDayNotFound      = errors.New("itinerary: day not found")
	ErrActivityNotFound = errors.New("itinerary: activity not found")
	ErrDuplicateID      = errors.New("itinerary: id already in use")
)

// Day is one day of the trip.
type Day struct {
	ID         string              `json:"id" yaml:"id"`
	Title      string              `json:"title" yaml:"title"`
	Activities []activity.Activity `json:"activities" yaml:"activities"`
}

// Clone returns a deep copy of d.
func (d Day) Clone() Day {
	out := Day{ID: d.ID, Title: d.Title, Activities: make([]activity.Activity, len(d.Activities))}
	for i, a := range d.Activities {
		out.Activities[i] = a.Clone()
	}
	return out
}

// Document is the whole persisted state of a trip.
type Document struct {
	Days      []Day                     `json:"days" yaml:"days"`
	StartDate *Date                     `json:"startDate" yaml:"startDate,omitempty"`
	Weather   map[string]weather.Report `json:"weatherData" yaml:"weatherData,omitempty"`
}

// Clone returns a deep copy of doc. Nil slices and maps come back empty.
func (doc Document) Clone() Document {
	out := Document{
		Days:    make([]Day, len(doc.Days)),
		Weather: make(map[string]weather.Report, len(doc.Weather)),
	}
	for i, d := range doc.Days {
		out.Days[i] = d.Clone()
	}
	if doc.StartDate != nil {
		sd := *doc.StartDate
		out.StartDate = &sd
	}
	for k, v := range doc.Weather {
		out.Weather[k] = v
	}
	return out
}

// DayDate is the calendar date of the day at index, if a start date is set.
func (doc Document) DayDate(index int) (Date, bool) {
	if doc.StartDate == nil || index < 0 {
		return Date{}, false
	}
	return doc.StartDate.AddDays(index), true
}

// WeatherFor returns the report for the day at index.
func (doc Document) WeatherFor(index int) (weather.Report, bool) {
	d, ok := doc.DayDate(index)
	if !ok {
		return weather.Report{}, false
	}
	r, ok := doc.Weather[d.Key()]
	return r, ok
}

// FindDay returns the day with the given id.
func FindDay(doc Document, dayID string) (Day, bool) {
	if i := DayIndex(doc, dayID); i >= 0 {
		return doc.Days[i], true
	}
	return Day{}, false
}

// DayIndex returns the position of the day, or -1.
func DayIndex(doc Document, dayID string) int {
	for i, d := range doc.Days {
		if d.ID == dayID {
			return i
		}
	}
	return -1
}

// Location is where an activity sits in a document.
type Location struct {
	DayID string
	Index int
}

// FindActivity searches every day for the activity with the given id.
func FindActivity(doc Document, activityID string) (activity.Activity, Location, bool) {
	for _, d := range doc.Days {
		for i, a := range d.Activities {
			if a.ID == activityID {
				return a, Location{DayID: d.ID, Index: i}, true
			}
		}
	}
	return activity.Activity{}, Location{}, false
}

// HasDay reports whether a day with the id exists.
func HasDay(doc Document, dayID string) bool {
	return DayIndex(doc, dayID) >= 0
}

// HasActivity reports whether any day holds an activity with the id.
func HasActivity(doc Document, activityID string) bool {
	_, _, ok := FindActivity(doc, activityID)
	return ok
}

// ActivityCount is the number of activities across all days.
func ActivityCount(doc Document) int {
	n := 0
	for _, d := range doc.Days {
		n += len(d.Activities)
	}
	return n
}

func activityIndex(d Day, activityID string) int {
	for i, a := range d.Activities {
		if a.ID == activityID {
			return i
		}
	}
	return -1
}
