package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tableflip.dev/trip/pkg/itinerary"
	"tableflip.dev/trip/pkg/store"
)

func setupStore(t *testing.T) *store.Settings {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TRIP_CONFIG_PATH", dir)
	t.Setenv("TRIP_PATH", dir)
	t.Setenv("TRIP_AUTOSAVE_DELAY", "0s")
	settings, err := store.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	return settings
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("trip %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func saved(t *testing.T, settings *store.Settings) itinerary.Document {
	t.Helper()
	p, err := store.Load(settings)
	if err != nil {
		t.Fatalf("store.Load: %v", err)
	}
	doc, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return doc
}

func TestDayAndActivityCommands(t *testing.T) {
	settings := setupStore(t)

	run(t, "day", "add", "Beach")
	run(t, "activity", "add", "3", "-t", "Swim", "--cost", "$5", "-d", "45m", "-c", "Adventure")
	run(t, "activity", "quick", "day-1", "dinner", "--time", "20:00")

	doc := saved(t, settings)
	if len(doc.Days) != 3 || doc.Days[2].Title != "Beach" {
		t.Fatalf("expected a third day named Beach, got %+v", doc.Days)
	}
	swim := doc.Days[2].Activities[0]
	if swim.Title != "Swim" || swim.Cost != 5 || swim.Duration != 45 {
		t.Fatalf("unexpected activity %+v", swim)
	}
	dinner := doc.Days[0].Activities[len(doc.Days[0].Activities)-1]
	if dinner.Title != "Dinner" || dinner.Time != "20:00" {
		t.Fatalf("unexpected quick add %+v", dinner)
	}

	run(t, "activity", "edit", swim.ID, "--notes", "Bring a towel")
	run(t, "activity", "move", swim.ID, "day-1", "1")
	doc = saved(t, settings)
	if got := doc.Days[0].Activities[0]; got.ID != swim.ID || got.Notes != "Bring a towel" {
		t.Fatalf("expected the edited activity first on day 1, got %+v", got)
	}

	run(t, "day", "move", "day-2", "1")
	run(t, "day", "rm", "--yes", doc.Days[2].ID)
	doc = saved(t, settings)
	if len(doc.Days) != 2 || doc.Days[0].ID != "day-2" {
		t.Fatalf("unexpected days %+v", doc.Days)
	}
}

func TestStartAndWeatherCommands(t *testing.T) {
	settings := setupStore(t)

	run(t, "start", "2025-07-01")
	doc := saved(t, settings)
	if doc.StartDate == nil || doc.StartDate.String() != "2025-07-01" {
		t.Fatalf("expected start date, got %v", doc.StartDate)
	}
	if len(doc.Weather) != len(doc.Days) {
		t.Fatalf("expected a forecast per day, got %d", len(doc.Weather))
	}

	out := run(t, "weather")
	if !strings.Contains(out, "Day 1") || !strings.Contains(out, "Tue Jul 1") {
		t.Fatalf("unexpected forecast output:\n%s", out)
	}

	run(t, "start", "--clear")
	if doc := saved(t, settings); doc.StartDate != nil || len(doc.Weather) != 0 {
		t.Fatalf("expected no start date or weather, got %v %v", doc.StartDate, doc.Weather)
	}
}

func TestSearchAddAndExport(t *testing.T) {
	settings := setupStore(t)

	out := run(t, "search", "old", "town")
	if !strings.Contains(out, "old town Museum") {
		t.Fatalf("unexpected search output:\n%s", out)
	}
	run(t, "search", "harbor", "--add", "2")
	doc := saved(t, settings)
	last := doc.Days[1].Activities[len(doc.Days[1].Activities)-1]
	if last.Title != "harbor Park" {
		t.Fatalf("expected the first result added, got %+v", last)
	}

	out = run(t, "export", "--format", "text")
	if !strings.Contains(out, "harbor Park") {
		t.Fatalf("expected the place in the export:\n%s", out)
	}
}

func TestThemeCommand(t *testing.T) {
	setupStore(t)

	run(t, "theme", "dark")
	if out := run(t, "theme"); strings.TrimSpace(out) != "dark" {
		t.Fatalf("expected dark, got %q", out)
	}
}
