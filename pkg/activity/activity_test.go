package activity

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	a := New("activity-1", Input{})
	if a.ID != "activity-1" {
		t.Fatalf("expected id to be kept, got %q", a.ID)
	}
	if a.Title != DefaultTitle {
		t.Fatalf("expected default title, got %q", a.Title)
	}
	if a.Category != Other {
		t.Fatalf("expected Other, got %q", a.Category)
	}
	if a.Priority != Medium {
		t.Fatalf("expected medium, got %q", a.Priority)
	}
	if a.Duration != 60 {
		t.Fatalf("expected 60 minutes, got %d", a.Duration)
	}
	if a.Cost != 0 {
		t.Fatalf("expected zero cost, got %v", a.Cost)
	}
	if a.Time != "" || a.Location != "" || a.Notes != "" {
		t.Fatalf("expected empty strings, got %+v", a)
	}
	if a.Coordinates != nil {
		t.Fatalf("expected no coordinates")
	}
}

func TestNewKeepsProvidedFields(t *testing.T) {
	in := Input{
		Title:       "  Ferry  ",
		Time:        "07:30",
		Category:    Transportation,
		Priority:    High,
		Cost:        12.5,
		Duration:    45,
		Coordinates: &Coordinates{Lat: 1, Lng: 2},
	}
	a := New("x", in)
	if a.Title != "Ferry" || a.Time != "07:30" || a.Category != Transportation ||
		a.Priority != High || a.Cost != 12.5 || a.Duration != 45 {
		t.Fatalf("unexpected activity %+v", a)
	}
	in.Coordinates.Lat = 99
	if a.Coordinates.Lat != 1 {
		t.Fatalf("coordinates must not alias the input")
	}
}

func TestApplyPreservesIDAndUnsetFields(t *testing.T) {
	base := New("keep", Input{Title: "Museum", Location: "Downtown", Cost: 20})
	title := "Art museum"
	cost := Amount(22)
	out := Apply(base, Patch{Title: &title, Cost: &cost})
	if out.ID != "keep" {
		t.Fatalf("id changed to %q", out.ID)
	}
	if out.Title != "Art museum" || out.Cost != 22 {
		t.Fatalf("patch not applied: %+v", out)
	}
	if out.Location != "Downtown" || out.Duration != 60 {
		t.Fatalf("unset fields changed: %+v", out)
	}
	if base.Title != "Museum" {
		t.Fatalf("input activity mutated")
	}
}

func TestLenientNumbers(t *testing.T) {
	tests := []struct {
		raw      string
		cost     float64
		duration int
	}{
		{raw: `{"cost": 10.5, "duration": 90}`, cost: 10.5, duration: 90},
		{raw: `{"cost": "25.5", "duration": "30"}`, cost: 25.5, duration: 30},
		{raw: `{"cost": "abc", "duration": "soon"}`, cost: 0, duration: 0},
		{raw: `{"cost": null, "duration": true}`, cost: 0, duration: 0},
		{raw: `{"cost": -4, "duration": -10}`, cost: 0, duration: 0},
		{raw: `{"duration": 90.9}`, cost: 0, duration: 90},
		{raw: `{"cost": "12abc", "duration": " 45 minutes"}`, cost: 12, duration: 45},
		{raw: `{"cost": ".5e1 each", "duration": "1.5.2"}`, cost: 5, duration: 1},
		{raw: `{"cost": "$12", "duration": "0x10"}`, cost: 0, duration: 0},
	}
	for _, tt := range tests {
		var a Activity
		if err := json.Unmarshal([]byte(tt.raw), &a); err != nil {
			t.Fatalf("%s: unmarshal: %v", tt.raw, err)
		}
		if a.Cost.Float() != tt.cost {
			t.Errorf("%s: expected cost %v, got %v", tt.raw, tt.cost, a.Cost)
		}
		if a.Duration.Int() != tt.duration {
			t.Errorf("%s: expected duration %d, got %d", tt.raw, tt.duration, a.Duration)
		}
	}
}

func TestValidateRequiresTitle(t *testing.T) {
	err := Validate(Input{Title: "   "})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !verr.Has("title") {
		t.Fatalf("expected title error, got %v", verr)
	}
}

func TestValidateEnumsAndRanges(t *testing.T) {
	err := Validate(Input{
		Title:       "ok",
		Category:    "Nap",
		Priority:    "urgent",
		Cost:        -1,
		Coordinates: &Coordinates{Lat: 120},
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"category", "priority", "cost", "lat"} {
		if !verr.Has(field) {
			t.Errorf("expected %s to be rejected: %v", field, verr)
		}
	}
	if err := Validate(Input{Title: "Dinner", Category: Food, Priority: Low, Cost: 3}); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
}

func TestValidatePatch(t *testing.T) {
	blank := ""
	if err := ValidatePatch(Patch{Title: &blank}); err == nil {
		t.Fatal("expected blank title to be rejected")
	}
	notes := "bring water"
	if err := ValidatePatch(Patch{Notes: &notes}); err != nil {
		t.Fatalf("expected notes-only patch to pass, got %v", err)
	}
}

func TestTemplateMerge(t *testing.T) {
	tmpl, ok := LookupTemplate("tour")
	if !ok {
		t.Fatal("expected Tour template")
	}
	form := Input{Title: "ignored", Time: "14:00", Location: "Old town", Category: Shopping}
	merged := tmpl.Merge(form)
	if merged.Title != "Tour" || merged.Category != Sightseeing || merged.Priority != High ||
		merged.Cost != 30 || merged.Duration != 120 {
		t.Fatalf("template fields not applied: %+v", merged)
	}
	if merged.Time != "14:00" || merged.Location != "Old town" {
		t.Fatalf("form fields lost: %+v", merged)
	}
	if err := Validate(merged); err != nil {
		t.Fatalf("template output must validate: %v", err)
	}
	if _, ok := LookupTemplate("brunch"); ok {
		t.Fatal("unexpected template match")
	}
}

func TestParseCategoryAndPriority(t *testing.T) {
	if c, err := ParseCategory("food"); err != nil || c != Food {
		t.Fatalf("expected Food, got %q %v", c, err)
	}
	if c, err := ParseCategory(""); err != nil || c != Other {
		t.Fatalf("expected Other, got %q %v", c, err)
	}
	if _, err := ParseCategory("nap"); err == nil {
		t.Fatal("expected error for unknown category")
	}
	if p, err := ParsePriority("HIGH"); err != nil || p != High {
		t.Fatalf("expected high, got %q %v", p, err)
	}
}
