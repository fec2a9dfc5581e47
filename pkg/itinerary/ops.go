package itinerary

import (
	"fmt"
	"strings"

	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/places"
	"tableflip.dev/trip/pkg/weather"
)

// DefaultPlaceTitle names an activity created from a place without a name.
const DefaultPlaceTitle = "New Location"

// DayTitle is the automatic title of the day at a zero based position.
func DayTitle(index int) string {
	return fmt.Sprintf("Day %d", index+1)
}

// AddDay appends an empty day titled after its position. An id that is
// already taken leaves the document as is.
func AddDay(doc Document, id string) (Document, error) {
	if HasDay(doc, id) {
		return doc, fmt.Errorf("%w: day %s", ErrDuplicateID, id)
	}
	out := doc.Clone()
	out.Days = append(out.Days, Day{ID: id, Title: DayTitle(len(out.Days)), Activities: []activity.Activity{}})
	return out, nil
}

// RemoveDay drops the day and renames every remaining day "Day N" by position.
// Custom titles do not survive. The renumbering happens even when dayID is
// unknown, in which case ok is false.
func RemoveDay(doc Document, dayID string) (Document, bool) {
	out := doc.Clone()
	found := false
	kept := out.Days[:0]
	for _, d := range out.Days {
		if d.ID == dayID {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	for i := range kept {
		kept[i].Title = DayTitle(i)
	}
	out.Days = kept
	return out, found
}

// UpdateDayTitle renames one day.
func UpdateDayTitle(doc Document, dayID, title string) (Document, bool) {
	i := DayIndex(doc, dayID)
	if i < 0 {
		return doc.Clone(), false
	}
	out := doc.Clone()
	out.Days[i].Title = title
	return out, true
}

// ReorderDays moves the day at from so that it ends up at to. Titles move with
// their days. Indices are clamped to the valid range.
func ReorderDays(doc Document, from, to int) Document {
	out := doc.Clone()
	if len(out.Days) == 0 {
		return out
	}
	from = clamp(from, 0, len(out.Days)-1)
	to = clamp(to, 0, len(out.Days)-1)
	day := out.Days[from]
	out.Days = append(out.Days[:from], out.Days[from+1:]...)
	out.Days = insertDay(out.Days, to, day)
	return out
}

// AddActivity appends a to the day. An unknown day or an activity id used
// anywhere in the trip leaves the document as is.
func AddActivity(doc Document, dayID string, a activity.Activity) (Document, error) {
	i := DayIndex(doc, dayID)
	if i < 0 {
		return doc, fmt.Errorf("%w: %s", ErrDayNotFound, dayID)
	}
	if HasActivity(doc, a.ID) {
		return doc, fmt.Errorf("%w: activity %s", ErrDuplicateID, a.ID)
	}
	out := doc.Clone()
	out.Days[i].Activities = append(out.Days[i].Activities, a.Clone())
	return out, nil
}

// UpdateActivity merges patch into the activity. Its id is kept.
func UpdateActivity(doc Document, dayID, activityID string, patch activity.Patch) (Document, bool) {
	di := DayIndex(doc, dayID)
	if di < 0 {
		return doc.Clone(), false
	}
	ai := activityIndex(doc.Days[di], activityID)
	if ai < 0 {
		return doc.Clone(), false
	}
	out := doc.Clone()
	out.Days[di].Activities[ai] = activity.Apply(out.Days[di].Activities[ai], patch)
	return out, true
}

// DeleteActivity removes the activity from its day.
func DeleteActivity(doc Document, dayID, activityID string) (Document, bool) {
	di := DayIndex(doc, dayID)
	if di < 0 {
		return doc.Clone(), false
	}
	ai := activityIndex(doc.Days[di], activityID)
	if ai < 0 {
		return doc.Clone(), false
	}
	out := doc.Clone()
	acts := out.Days[di].Activities
	out.Days[di].Activities = append(acts[:ai], acts[ai+1:]...)
	return out, true
}

// MoveActivity takes the activity at srcIndex of one day and inserts the same
// value at dstIndex of another, or of the same day. Indices are clamped. ok is
// false when either day is missing or the source day is empty.
func MoveActivity(doc Document, srcDayID string, srcIndex int, dstDayID string, dstIndex int) (Document, bool) {
	si := DayIndex(doc, srcDayID)
	di := DayIndex(doc, dstDayID)
	if si < 0 || di < 0 || len(doc.Days[si].Activities) == 0 {
		return doc.Clone(), false
	}
	out := doc.Clone()
	src := out.Days[si].Activities
	srcIndex = clamp(srcIndex, 0, len(src)-1)
	moved := src[srcIndex]
	out.Days[si].Activities = append(src[:srcIndex], src[srcIndex+1:]...)

	dst := out.Days[di].Activities
	dstIndex = clamp(dstIndex, 0, len(dst))
	out.Days[di].Activities = insertActivity(dst, dstIndex, moved)
	return out, true
}

// SetStartDate replaces the trip start date. Nil clears it.
func SetStartDate(doc Document, start *Date) Document {
	out := doc.Clone()
	if start == nil {
		out.StartDate = nil
		return out
	}
	sd := *start
	out.StartDate = &sd
	return out
}

// MergeWeather adds or overwrites reports. Existing dates not in reports stay.
func MergeWeather(doc Document, reports map[string]weather.Report) Document {
	out := doc.Clone()
	for k, v := range reports {
		out.Weather[k] = v
	}
	return out
}

// SetWeather replaces every report with reports.
func SetWeather(doc Document, reports map[string]weather.Report) Document {
	out := doc.Clone()
	out.Weather = make(map[string]weather.Report, len(reports))
	for k, v := range reports {
		out.Weather[k] = v
	}
	return out
}

// AddPlace appends a sightseeing activity built from a search result.
func AddPlace(doc Document, dayID, id string, p places.Place) (Document, error) {
	return AddActivity(doc, dayID, PlaceActivity(id, p))
}

// PlaceActivity is the activity AddPlace creates for p.
func PlaceActivity(id string, p places.Place) activity.Activity {
	title := strings.TrimSpace(p.Name)
	if title == "" {
		title = DefaultPlaceTitle
	}
	coords := p.Coordinates
	return activity.New(id, activity.Input{
		Title:       title,
		Location:    p.Address,
		Category:    activity.Sightseeing,
		Coordinates: &coords,
	})
}

func insertDay(days []Day, at int, d Day) []Day {
	days = append(days, Day{})
	copy(days[at+1:], days[at:])
	days[at] = d
	return days
}

func insertActivity(acts []activity.Activity, at int, a activity.Activity) []activity.Activity {
	acts = append(acts, activity.Activity{})
	copy(acts[at+1:], acts[at:])
	acts[at] = a
	return acts
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
