package export

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/export"
	"tableflip.dev/trip/pkg/itinerary"
	"tableflip.dev/trip/pkg/store/storetest"
)

func newService() *app.Service {
	doc := itinerary.Seed(time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC))
	return app.New(&storetest.Memory{}, app.WithDocument(doc))
}

func TestExportToWriter(t *testing.T) {
	var out bytes.Buffer
	e := Export{Service: newService(), Format: export.FormatJSON, Out: &out}
	if err := e.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	var days []itinerary.Day
	if err := json.Unmarshal(out.Bytes(), &days); err != nil {
		t.Fatalf("output is not a day list: %v", err)
	}
	if len(days) != 2 || days[0].Activities[1].Title != "Visit museum" {
		t.Fatalf("unexpected days %+v", days)
	}
}

func TestExportToDirectory(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	e := Export{Service: newService(), Format: export.FormatHTML, Path: dir, Out: &out}
	if err := e.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	want := filepath.Join(dir, "itinerary.html")
	b, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("expected %s: %v", want, err)
	}
	if !strings.Contains(string(b), "Hiking tour") {
		t.Fatalf("html export is missing activities")
	}
	if !strings.Contains(out.String(), want) {
		t.Fatalf("expected the path to be reported, got %q", out.String())
	}
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trip.txt")
	e := Export{Service: newService(), Format: export.FormatText, Path: path}
	if err := e.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s: %v", path, err)
	}
}
