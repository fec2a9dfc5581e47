package reorder

import (
	"reflect"
	"testing"

	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/itinerary"
	"tableflip.dev/trip/pkg/weather"
)

func fixture() itinerary.Document {
	return itinerary.Document{Days: []itinerary.Day{
		{ID: "day-1", Title: "Arrival", Activities: []activity.Activity{{ID: "A", Title: "a"}, {ID: "B", Title: "b"}, {ID: "C", Title: "c"}}},
		{ID: "day-2", Title: "Beach", Activities: []activity.Activity{{ID: "D", Title: "d"}}},
		{ID: "day-3", Title: "Canyon", Activities: []activity.Activity{}},
	}, Weather: map[string]weather.Report{}}
}

func order(d itinerary.Day) []string {
	out := []string{}
	for _, a := range d.Activities {
		out = append(out, a.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		drag    DragEnd
		applied bool
		want    map[string][]string
	}{{
		name:    "same day",
		drag:    DragEnd{Type: KindActivity, Source: Location{"day-1", 2}, Destination: &Location{"day-1", 1}},
		applied: true,
		want:    map[string][]string{"day-1": {"A", "C", "B"}, "day-2": {"D"}},
	}, {
		name:    "across days",
		drag:    DragEnd{Type: KindActivity, Source: Location{"day-1", 0}, Destination: &Location{"day-2", 1}},
		applied: true,
		want:    map[string][]string{"day-1": {"B", "C"}, "day-2": {"D", "A"}},
	}, {
		name:    "into empty day",
		drag:    DragEnd{Type: KindActivity, Source: Location{"day-2", 0}, Destination: &Location{"day-3", 0}},
		applied: true,
		want:    map[string][]string{"day-2": {}, "day-3": {"D"}},
	}, {
		name: "no destination",
		drag: DragEnd{Type: KindActivity, Source: Location{"day-1", 0}},
		want: map[string][]string{"day-1": {"A", "B", "C"}},
	}, {
		name: "unknown container",
		drag: DragEnd{Type: KindActivity, Source: Location{"day-1", 0}, Destination: &Location{"day-9", 0}},
		want: map[string][]string{"day-1": {"A", "B", "C"}},
	}, {
		name:    "index past the end is clamped",
		drag:    DragEnd{Type: KindActivity, Source: Location{"day-1", 7}, Destination: &Location{"day-2", 40}},
		applied: true,
		want:    map[string][]string{"day-1": {"A", "B"}, "day-2": {"D", "C"}},
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := fixture()
			out, res := Apply(doc, tc.drag)
			if res.Applied != tc.applied {
				t.Fatalf("applied = %v, want %v", res.Applied, tc.applied)
			}
			for dayID, want := range tc.want {
				day, _ := itinerary.FindDay(out, dayID)
				if got := order(day); !reflect.DeepEqual(got, want) {
					t.Fatalf("%s: got %v want %v", dayID, got, want)
				}
			}
			if itinerary.ActivityCount(out) != itinerary.ActivityCount(doc) {
				t.Fatalf("activity count changed")
			}
			if !reflect.DeepEqual(doc, fixture()) {
				t.Fatalf("input document was modified")
			}
		})
	}
}

func TestApplySameIndexIsEqual(t *testing.T) {
	doc := fixture()
	out, res := Apply(doc, DragEnd{Type: KindActivity, Source: Location{"day-1", 1}, Destination: &Location{"day-1", 1}})
	if !res.Applied || !reflect.DeepEqual(out, doc) {
		t.Fatalf("expected equal document, got %+v", out)
	}
}

func TestApplyCrossDayReportsMoved(t *testing.T) {
	_, res := Apply(fixture(), DragEnd{Type: KindActivity, Source: Location{"day-1", 1}, Destination: &Location{"day-3", 0}})
	if !res.CrossDay || res.Moved == nil || res.Moved.ID != "B" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestApplyDayKeepsTitles(t *testing.T) {
	out, res := Apply(fixture(), DragEnd{Type: KindDay, Source: Location{ContainerDays, 0}, Destination: &Location{ContainerDays, 2}})
	if !res.Applied {
		t.Fatalf("expected day move")
	}
	got := []string{out.Days[0].Title, out.Days[1].Title, out.Days[2].Title}
	if !reflect.DeepEqual(got, []string{"Beach", "Canyon", "Arrival"}) {
		t.Fatalf("unexpected titles %v", got)
	}
}

func TestApplyDayWithoutDestination(t *testing.T) {
	doc := fixture()
	out, res := Apply(doc, DragEnd{Type: KindDay, Source: Location{ContainerDays, 0}})
	if res.Applied || !res.NoDestination || !reflect.DeepEqual(out, doc) {
		t.Fatalf("expected no-op, got %+v", res)
	}
}
