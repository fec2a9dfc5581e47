package itinerary

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/places"
	"tableflip.dev/trip/pkg/weather"
)

var testNow = time.Date(2025, time.March, 14, 15, 30, 0, 0, time.UTC)

func titles(doc Document) []string {
	out := make([]string, 0, len(doc.Days))
	for _, d := range doc.Days {
		out = append(out, d.Title)
	}
	return out
}

func ids(d Day) []string {
	out := make([]string, 0, len(d.Activities))
	for _, a := range d.Activities {
		out = append(out, a.ID)
	}
	return out
}

func TestSeed(t *testing.T) {
	doc := Seed(testNow)
	if got := titles(doc); !reflect.DeepEqual(got, []string{"Day 1", "Day 2"}) {
		t.Fatalf("unexpected titles %v", got)
	}
	if got := ids(doc.Days[0]); !reflect.DeepEqual(got, []string{"activity-1", "activity-2"}) {
		t.Fatalf("unexpected day-1 activities %v", got)
	}
	if doc.StartDate == nil || doc.StartDate.String() != "2025-03-15" {
		t.Fatalf("expected start date of tomorrow, got %v", doc.StartDate)
	}
}

func TestAddDayTitlesByPosition(t *testing.T) {
	doc := Seed(testNow)
	out, err := AddDay(doc, "day-x")
	if err != nil {
		t.Fatalf("AddDay: %v", err)
	}
	if got := titles(out); !reflect.DeepEqual(got, []string{"Day 1", "Day 2", "Day 3"}) {
		t.Fatalf("unexpected titles %v", got)
	}
	if len(out.Days[2].Activities) != 0 || out.Days[2].Activities == nil {
		t.Fatalf("expected empty non-nil activities")
	}
	if len(doc.Days) != 2 {
		t.Fatalf("input document was modified")
	}
}

func TestRemoveDayRenumbers(t *testing.T) {
	doc := Document{Days: []Day{
		{ID: "a", Title: "Arrival"},
		{ID: "b", Title: "Beach"},
		{ID: "c", Title: "Canyon"},
	}}
	out, ok := RemoveDay(doc, "a")
	if !ok {
		t.Fatalf("expected removal")
	}
	if got := titles(out); !reflect.DeepEqual(got, []string{"Day 1", "Day 2"}) {
		t.Fatalf("expected renumbered titles, got %v", got)
	}
	if out.Days[0].ID != "b" || out.Days[1].ID != "c" {
		t.Fatalf("unexpected order %+v", out.Days)
	}
	if doc.Days[1].Title != "Beach" {
		t.Fatalf("input document was modified")
	}
}

func TestRemoveDayMissingStillRenumbers(t *testing.T) {
	doc := Document{Days: []Day{{ID: "a", Title: "Arrival"}}}
	out, ok := RemoveDay(doc, "zzz")
	if ok {
		t.Fatalf("expected not found")
	}
	if out.Days[0].Title != "Day 1" {
		t.Fatalf("expected renumbered title, got %q", out.Days[0].Title)
	}
}

func TestReorderDaysKeepsTitles(t *testing.T) {
	doc := Document{Days: []Day{
		{ID: "a", Title: "Arrival"},
		{ID: "b", Title: "Beach"},
		{ID: "c", Title: "Canyon"},
	}}
	out := ReorderDays(doc, 0, 2)
	if got := titles(out); !reflect.DeepEqual(got, []string{"Beach", "Canyon", "Arrival"}) {
		t.Fatalf("unexpected titles %v", got)
	}
	clamped := ReorderDays(doc, 5, -3)
	if got := titles(clamped); !reflect.DeepEqual(got, []string{"Canyon", "Arrival", "Beach"}) {
		t.Fatalf("unexpected clamped titles %v", got)
	}
}

func TestAddActivityUnknownDay(t *testing.T) {
	doc := Seed(testNow)
	out, err := AddActivity(doc, "nope", activity.New("x", activity.Input{}))
	if !errors.Is(err, ErrDayNotFound) {
		t.Fatalf("expected ErrDayNotFound, got %v", err)
	}
	if !reflect.DeepEqual(out, doc) {
		t.Fatalf("expected document unchanged")
	}
}

func TestAddRejectsDuplicateIDs(t *testing.T) {
	doc := Seed(testNow)

	out, err := AddDay(doc, "day-1")
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID for a day, got %v", err)
	}
	if len(out.Days) != 2 {
		t.Fatalf("expected two days, got %d", len(out.Days))
	}

	// activity-1 lives on day-1; ids are unique across the whole trip
	out, err = AddActivity(doc, "day-2", activity.New("activity-1", activity.Input{Title: "Copy"}))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID for an activity, got %v", err)
	}
	if ActivityCount(out) != 3 || !reflect.DeepEqual(out, doc) {
		t.Fatalf("expected document unchanged")
	}

	if _, err := AddPlace(doc, "day-1", "activity-3", places.Place{Name: "Pier"}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID for a place, got %v", err)
	}
}

func TestAddActivityDefaults(t *testing.T) {
	doc := Seed(testNow)
	out, err := AddActivity(doc, "day-2", activity.New("activity-9", activity.Input{Title: "Spa"}))
	if err != nil {
		t.Fatalf("AddActivity: %v", err)
	}
	got := out.Days[1].Activities[1]
	want := activity.Activity{ID: "activity-9", Title: "Spa", Category: activity.Other, Priority: activity.Medium, Duration: 60}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestUpdateActivityPreservesID(t *testing.T) {
	doc := Seed(testNow)
	title := "Brunch"
	out, ok := UpdateActivity(doc, "day-1", "activity-1", activity.Patch{Title: &title})
	if !ok {
		t.Fatalf("expected update")
	}
	a := out.Days[0].Activities[0]
	if a.ID != "activity-1" || a.Title != "Brunch" || a.Location != "Hotel restaurant" {
		t.Fatalf("unexpected activity %+v", a)
	}
	if _, ok := UpdateActivity(doc, "day-2", "activity-1", activity.Patch{Title: &title}); ok {
		t.Fatalf("expected no-op for wrong day")
	}
}

func TestDeleteActivity(t *testing.T) {
	doc := Seed(testNow)
	out, ok := DeleteActivity(doc, "day-1", "activity-1")
	if !ok {
		t.Fatalf("expected delete")
	}
	if got := ids(out.Days[0]); !reflect.DeepEqual(got, []string{"activity-2"}) {
		t.Fatalf("unexpected ids %v", got)
	}
	if len(doc.Days[0].Activities) != 2 {
		t.Fatalf("input document was modified")
	}
	if _, ok := DeleteActivity(doc, "day-1", "missing"); ok {
		t.Fatalf("expected no-op")
	}
}

func TestMoveActivityAcrossDays(t *testing.T) {
	doc := Seed(testNow)
	before, _, _ := FindActivity(doc, "activity-2")
	out, ok := MoveActivity(doc, "day-1", 1, "day-2", 0)
	if !ok {
		t.Fatalf("expected move")
	}
	if got := ids(out.Days[1]); !reflect.DeepEqual(got, []string{"activity-2", "activity-3"}) {
		t.Fatalf("unexpected destination %v", got)
	}
	after, loc, _ := FindActivity(out, "activity-2")
	if !reflect.DeepEqual(before, after) || loc.DayID != "day-2" {
		t.Fatalf("activity identity not preserved: %+v at %+v", after, loc)
	}
	if ActivityCount(out) != ActivityCount(doc) {
		t.Fatalf("activity count changed")
	}
}

func TestMoveActivityWithinDay(t *testing.T) {
	doc := Document{Days: []Day{{ID: "d", Activities: []activity.Activity{{ID: "A"}, {ID: "B"}, {ID: "C"}}}}}
	out, ok := MoveActivity(doc, "d", 2, "d", 1)
	if !ok {
		t.Fatalf("expected move")
	}
	if got := ids(out.Days[0]); !reflect.DeepEqual(got, []string{"A", "C", "B"}) {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestMoveActivityFromEmptyDay(t *testing.T) {
	doc := Document{Days: []Day{{ID: "a"}, {ID: "b", Activities: []activity.Activity{{ID: "x"}}}}}
	if _, ok := MoveActivity(doc, "a", 0, "b", 0); ok {
		t.Fatalf("expected no-op when source day is empty")
	}
}

func TestAddPlace(t *testing.T) {
	doc := Seed(testNow)
	p := places.Place{ID: "place1", Address: "123 Main St, City", Coordinates: activity.Coordinates{Lat: 1, Lng: 2}}
	out, err := AddPlace(doc, "day-2", "activity-10", p)
	if err != nil {
		t.Fatalf("AddPlace: %v", err)
	}
	a := out.Days[1].Activities[1]
	if a.Title != DefaultPlaceTitle || a.Category != activity.Sightseeing || a.Location != p.Address {
		t.Fatalf("unexpected activity %+v", a)
	}
	if a.Coordinates == nil || a.Coordinates.Lng != 2 {
		t.Fatalf("expected coordinates, got %+v", a.Coordinates)
	}
}

func TestMergeWeatherKeepsExisting(t *testing.T) {
	doc := Document{Weather: map[string]weather.Report{"2025-01-01": {Condition: weather.Sunny}}}
	out := MergeWeather(doc, map[string]weather.Report{"2025-01-02": {Condition: weather.Rainy}})
	if len(out.Weather) != 2 || len(doc.Weather) != 1 {
		t.Fatalf("unexpected weather maps %v / %v", out.Weather, doc.Weather)
	}
}

func TestDayDate(t *testing.T) {
	doc := Seed(testNow)
	d, ok := doc.DayDate(1)
	if !ok || d.String() != "2025-03-16" {
		t.Fatalf("unexpected date %v %v", d, ok)
	}
	doc = SetStartDate(doc, nil)
	if _, ok := doc.DayDate(0); ok {
		t.Fatalf("expected no date without a start date")
	}
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	doc := Seed(testNow)
	doc, _ = AddPlace(doc, "day-1", "activity-4", places.Place{Name: "Pier", Coordinates: activity.Coordinates{Lat: 40.7, Lng: -74}})
	doc = MergeWeather(doc, map[string]weather.Report{"2025-03-15": {Condition: weather.Cloudy, Temperature: 18, Precipitation: 40}})

	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Document
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(doc, back) {
		t.Fatalf("round trip mismatch\n got %+v\nwant %+v", back, doc)
	}
}

func TestDateAcceptsTimestamp(t *testing.T) {
	var doc Document
	raw := `{"days":[],"startDate":"2025-03-15T09:12:44.120Z","weatherData":{}}`
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.StartDate == nil || doc.StartDate.String() != "2025-03-15" {
		t.Fatalf("unexpected start date %v", doc.StartDate)
	}

	doc = Document{}
	if err := json.Unmarshal([]byte(`{"days":[],"startDate":null}`), &doc); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if doc.StartDate != nil {
		t.Fatalf("expected nil start date")
	}
}
