package app

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/idgen"
	"tableflip.dev/trip/pkg/itinerary"
	"tableflip.dev/trip/pkg/places"
	"tableflip.dev/trip/pkg/reorder"
	"tableflip.dev/trip/pkg/store"
	"tableflip.dev/trip/pkg/weather"
)

type memoryPersistence struct {
	mu    sync.Mutex
	doc   *itinerary.Document
	theme store.Theme
	saves int
	err   error
}

func (m *memoryPersistence) Load(context.Context) (itinerary.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		return itinerary.Document{}, store.ErrNoDocument
	}
	return m.doc.Clone(), nil
}

func (m *memoryPersistence) Save(_ context.Context, doc itinerary.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.err != nil {
		return m.err
	}
	cp := doc.Clone()
	m.doc = &cp
	return nil
}

func (m *memoryPersistence) Theme(context.Context) (store.Theme, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.theme == "" {
		return store.ThemeLight, nil
	}
	return m.theme, nil
}

func (m *memoryPersistence) SetTheme(_ context.Context, t store.Theme) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = t
	return nil
}

func (m *memoryPersistence) Reset(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = nil
	m.theme = ""
	return nil
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}

func (m *memoryPersistence) saved() (itinerary.Document, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		return itinerary.Document{}, m.saves
	}
	return m.doc.Clone(), m.saves
}

var testNow = time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, mp *memoryPersistence) (*Service, *weather.Static) {
	t.Helper()
	forecaster := &weather.Static{Default: weather.Report{Condition: weather.Sunny, Temperature: 21, Precipitation: 5}}
	svc := New(mp,
		WithIDs(idgen.NewSequence(100)),
		WithForecaster(forecaster),
		WithSearcher(places.Simulator{}),
		WithClock(func() time.Time { return testNow }),
	)
	if _, err := svc.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}
	return svc, forecaster
}

func activityIDs(doc itinerary.Document, dayID string) []string {
	day, _ := itinerary.FindDay(doc, dayID)
	out := []string{}
	for _, a := range day.Activities {
		out = append(out, a.ID)
	}
	return out
}

func TestOpenSeedsAndSaves(t *testing.T) {
	mp := &memoryPersistence{}
	svc, forecaster := newTestService(t, mp)

	doc := svc.Snapshot()
	if len(doc.Days) != 2 || doc.StartDate.String() != "2025-03-15" {
		t.Fatalf("unexpected seed %+v", doc)
	}
	if len(doc.Weather) != 2 || forecaster.Calls != 2 {
		t.Fatalf("expected weather for both days, got %v", doc.Weather)
	}
	saved, saves := mp.saved()
	if saves != 1 || !reflect.DeepEqual(saved, doc) {
		t.Fatalf("expected seed to be saved once, got %d saves", saves)
	}
}

func TestOpenUsesSavedDocument(t *testing.T) {
	saved, err := itinerary.AddDay(itinerary.Seed(testNow), "day-3")
	if err != nil {
		t.Fatal(err)
	}
	mp := &memoryPersistence{doc: &saved}
	svc, _ := newTestService(t, mp)
	if got := len(svc.Snapshot().Days); got != 3 {
		t.Fatalf("expected 3 days, got %d", got)
	}
	if _, saves := mp.saved(); saves != 0 {
		t.Fatalf("expected no save on open, got %d", saves)
	}
}

func TestAddDayFetchesWeatherForNewDate(t *testing.T) {
	svc, forecaster := newTestService(t, &memoryPersistence{})
	forecaster.Reports = map[string]weather.Report{"2025-03-17": {Condition: weather.Thunderstorm, Temperature: 12, Precipitation: 90}}

	day, err := svc.AddDay(context.Background())
	if err != nil {
		t.Fatalf("add day: %v", err)
	}
	if day.Title != "Day 3" || day.ID != "day-100" {
		t.Fatalf("unexpected day %+v", day)
	}
	doc := svc.Snapshot()
	if got := doc.Weather["2025-03-17"].Condition; got != weather.Thunderstorm {
		t.Fatalf("expected forecast for new day, got %q", got)
	}
	if svc.Generation() != 1 {
		t.Fatalf("expected a single commit, got %d", svc.Generation())
	}
}

func TestAddDayKeepsExistingWeather(t *testing.T) {
	svc, forecaster := newTestService(t, &memoryPersistence{})
	if err := svc.RemoveDay(context.Background(), "day-2"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	calls := forecaster.Calls
	if _, err := svc.AddDay(context.Background()); err != nil {
		t.Fatalf("add day: %v", err)
	}
	if forecaster.Calls != calls {
		t.Fatalf("expected existing forecast to be reused")
	}
}

func TestRemoveDay(t *testing.T) {
	svc, _ := newTestService(t, &memoryPersistence{})
	ctx := context.Background()
	if err := svc.RenameDay(ctx, "day-2", "Mountains"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if err := svc.RemoveDay(ctx, "day-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	doc := svc.Snapshot()
	if len(doc.Days) != 1 || doc.Days[0].Title != "Day 1" {
		t.Fatalf("expected renumbered remaining day, got %+v", doc.Days)
	}
	gen := svc.Generation()
	if err := svc.RemoveDay(ctx, "nope"); !errors.Is(err, itinerary.ErrDayNotFound) {
		t.Fatalf("expected ErrDayNotFound, got %v", err)
	}
	if svc.Generation() != gen {
		t.Fatalf("failed removal must not commit")
	}
}

func TestAddActivityValidation(t *testing.T) {
	svc, _ := newTestService(t, &memoryPersistence{})
	ctx := context.Background()

	_, err := svc.AddActivity(ctx, "day-1", activity.Input{Title: "   "})
	var verr *activity.ValidationError
	if !errors.As(err, &verr) || !verr.Has("title") {
		t.Fatalf("expected title validation error, got %v", err)
	}
	if svc.Generation() != 0 {
		t.Fatalf("invalid input must not commit")
	}

	a, err := svc.AddActivity(ctx, "day-1", activity.Input{Title: "Coffee", Cost: 4.5})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if a.Duration != activity.DefaultDuration || a.Category != activity.Other {
		t.Fatalf("expected defaults, got %+v", a)
	}
	if got := activityIDs(svc.Snapshot(), "day-1"); got[len(got)-1] != a.ID {
		t.Fatalf("expected %s appended, got %v", a.ID, got)
	}

	if _, err := svc.AddActivity(ctx, "day-9", activity.Input{Title: "x"}); !errors.Is(err, itinerary.ErrDayNotFound) {
		t.Fatalf("expected ErrDayNotFound, got %v", err)
	}
}

func TestQuickAdd(t *testing.T) {
	svc, _ := newTestService(t, &memoryPersistence{})
	a, err := svc.QuickAdd(context.Background(), "day-2", "tour", activity.Input{Title: "ignored", Time: "14:00"})
	if err != nil {
		t.Fatalf("quick add: %v", err)
	}
	if a.Title != "Tour" || a.Time != "14:00" || a.Priority != activity.High || a.Cost != 30 || a.Duration != 120 {
		t.Fatalf("unexpected activity %+v", a)
	}
	if _, err := svc.QuickAdd(context.Background(), "day-2", "nap", activity.Input{}); err == nil {
		t.Fatalf("expected unknown template error")
	}
}

func TestUpdateAndDeleteActivity(t *testing.T) {
	svc, _ := newTestService(t, &memoryPersistence{})
	ctx := context.Background()
	cost := activity.Amount(30)
	a, err := svc.UpdateActivity(ctx, "day-1", "activity-2", activity.Patch{Cost: &cost})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if a.ID != "activity-2" || a.Cost != 30 || a.Title != "Visit museum" {
		t.Fatalf("unexpected activity %+v", a)
	}
	if _, err := svc.UpdateActivity(ctx, "day-1", "activity-3", activity.Patch{Cost: &cost}); !errors.Is(err, itinerary.ErrActivityNotFound) {
		t.Fatalf("expected ErrActivityNotFound, got %v", err)
	}
	if err := svc.DeleteActivity(ctx, "day-1", "activity-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := activityIDs(svc.Snapshot(), "day-1"); !reflect.DeepEqual(got, []string{"activity-2"}) {
		t.Fatalf("unexpected ids %v", got)
	}
}

func TestDragScenario(t *testing.T) {
	doc := itinerary.Document{Days: []itinerary.Day{
		{ID: "day-1", Title: "Day 1", Activities: []activity.Activity{{ID: "A"}, {ID: "B"}, {ID: "C"}}},
	}}
	mp := &memoryPersistence{doc: &doc}
	svc, _ := newTestService(t, mp)

	res, err := svc.Drag(context.Background(), reorder.DragEnd{
		Type:        reorder.KindActivity,
		Source:      reorder.Location{ContainerID: "day-1", Index: 2},
		Destination: &reorder.Location{ContainerID: "day-1", Index: 1},
	})
	if err != nil || !res.Applied {
		t.Fatalf("drag: %v %+v", err, res)
	}
	if got := activityIDs(svc.Snapshot(), "day-1"); !reflect.DeepEqual(got, []string{"A", "C", "B"}) {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestDragWithoutDestinationDoesNotCommit(t *testing.T) {
	svc, _ := newTestService(t, &memoryPersistence{})
	var commits int
	unsub := svc.Subscribe(func(Commit) { commits++ })
	defer unsub()

	res, err := svc.Drag(context.Background(), reorder.DragEnd{Type: reorder.KindDay, Source: reorder.Location{ContainerID: reorder.ContainerDays}})
	if err != nil {
		t.Fatalf("drag: %v", err)
	}
	if res.Applied || !res.NoDestination || commits != 0 {
		t.Fatalf("expected no-op, got %+v with %d commits", res, commits)
	}
}

func TestMoveActivityAcrossDays(t *testing.T) {
	svc, _ := newTestService(t, &memoryPersistence{})
	ctx := context.Background()
	if err := svc.MoveActivity(ctx, "day-1", 0, "day-2", 1); err != nil {
		t.Fatalf("move: %v", err)
	}
	doc := svc.Snapshot()
	if got := activityIDs(doc, "day-2"); !reflect.DeepEqual(got, []string{"activity-3", "activity-1"}) {
		t.Fatalf("unexpected day-2 %v", got)
	}
	if err := svc.MoveActivity(ctx, "day-7", 0, "day-2", 0); !errors.Is(err, itinerary.ErrDayNotFound) {
		t.Fatalf("expected ErrDayNotFound, got %v", err)
	}
}

func TestSetStartDateRegeneratesWeather(t *testing.T) {
	svc, _ := newTestService(t, &memoryPersistence{})
	start := itinerary.NewDate(2025, time.July, 1)
	if err := svc.SetStartDate(context.Background(), &start); err != nil {
		t.Fatalf("set start: %v", err)
	}
	doc := svc.Snapshot()
	if len(doc.Weather) != 2 {
		t.Fatalf("expected weather replaced for 2 days, got %v", doc.Weather)
	}
	for _, key := range []string{"2025-07-01", "2025-07-02"} {
		if _, ok := doc.Weather[key]; !ok {
			t.Fatalf("missing weather for %s", key)
		}
	}
	if err := svc.SetStartDate(context.Background(), nil); err != nil {
		t.Fatalf("clear start: %v", err)
	}
	if doc := svc.Snapshot(); doc.StartDate != nil || len(doc.Weather) != 0 {
		t.Fatalf("expected cleared start date and weather")
	}
}

func TestAddPlace(t *testing.T) {
	svc, _ := newTestService(t, &memoryPersistence{})
	ctx := context.Background()
	results, err := svc.Search(ctx, "Central")
	if err != nil || len(results) != 3 {
		t.Fatalf("search: %v %v", results, err)
	}
	a, err := svc.AddPlace(ctx, "day-1", results[1])
	if err != nil {
		t.Fatalf("add place: %v", err)
	}
	if a.Title != "Central Museum" || a.Category != activity.Sightseeing || a.Coordinates == nil {
		t.Fatalf("unexpected activity %+v", a)
	}
}

func TestSubscribersSeeGuardEngaged(t *testing.T) {
	svc, _ := newTestService(t, &memoryPersistence{})
	var engaged bool
	var got Commit
	unsub := svc.Subscribe(func(c Commit) {
		engaged = svc.Guard().Engaged()
		got = c
	})
	defer unsub()

	if _, err := svc.AddDay(context.Background()); err != nil {
		t.Fatalf("add day: %v", err)
	}
	if !engaged {
		t.Fatalf("expected guard engaged while subscribers run")
	}
	if svc.Guard().Engaged() {
		t.Fatalf("expected guard released after commit")
	}
	if got.Generation != 1 || len(got.Document.Days) != 3 || got.Reason != "add day" {
		t.Fatalf("unexpected commit %+v", got)
	}
}

func TestThemeAndReset(t *testing.T) {
	mp := &memoryPersistence{}
	svc, _ := newTestService(t, mp)
	ctx := context.Background()
	if err := svc.SetTheme(ctx, store.ThemeDark); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	if theme, _ := svc.Theme(ctx); theme != store.ThemeDark {
		t.Fatalf("expected dark theme, got %q", theme)
	}
	if _, err := svc.AddDay(ctx); err != nil {
		t.Fatalf("add day: %v", err)
	}
	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := len(svc.Snapshot().Days); got != 2 {
		t.Fatalf("expected seed after reset, got %d days", got)
	}
	if theme, _ := svc.Theme(ctx); theme != store.ThemeLight {
		t.Fatalf("expected theme reset, got %q", theme)
	}
}

func TestNewIDsSkipThoseInUse(t *testing.T) {
	svc := New(&memoryPersistence{},
		WithIDs(idgen.NewSequence(1)),
		WithForecaster(&weather.Static{}),
		WithClock(func() time.Time { return testNow }),
	)
	ctx := context.Background()
	if _, err := svc.Open(ctx); err != nil {
		t.Fatalf("open: %v", err)
	}

	results, err := svc.Search(ctx, "Central")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	a, err := svc.AddPlace(ctx, "day-1", results[1])
	if err != nil {
		t.Fatalf("add place: %v", err)
	}
	if a.ID != "activity-4" || a.Title != "Central Museum" {
		t.Fatalf("unexpected place activity %+v", a)
	}
	day, err := svc.AddDay(ctx)
	if err != nil {
		t.Fatalf("add day: %v", err)
	}
	if day.ID != "day-3" {
		t.Fatalf("expected day-3, got %s", day.ID)
	}

	seen := map[string]bool{}
	for _, d := range svc.Snapshot().Days {
		for _, id := range append([]string{d.ID}, activityIDs(svc.Snapshot(), d.ID)...) {
			if seen[id] {
				t.Fatalf("duplicate id %s", id)
			}
			seen[id] = true
		}
	}
}

type slowForecaster struct {
	delay time.Duration

	mu    sync.Mutex
	calls int
}

func (f *slowForecaster) Forecast(ctx context.Context, _ time.Time) (weather.Report, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return weather.Report{}, ctx.Err()
	}
	return weather.Report{Condition: weather.Cloudy, Temperature: 15, Precipitation: 30}, nil
}

func TestConcurrentForecastingKeepsEveryDayCovered(t *testing.T) {
	svc := New(&memoryPersistence{},
		WithIDs(idgen.NewSequence(100)),
		WithForecaster(&slowForecaster{delay: 50 * time.Millisecond}),
		WithClock(func() time.Time { return testNow }),
	)
	ctx := context.Background()
	if _, err := svc.Open(ctx); err != nil {
		t.Fatalf("open: %v", err)
	}

	start := itinerary.NewDate(2025, time.June, 1)
	var wg sync.WaitGroup
	errs := make(chan error, 3)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddDay(ctx)
			errs <- err
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs <- svc.SetStartDate(ctx, &start)
	}()
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent op: %v", err)
		}
	}

	doc := svc.Snapshot()
	if len(doc.Days) != 4 {
		t.Fatalf("expected 4 days, got %d", len(doc.Days))
	}
	for i := range doc.Days {
		date, ok := doc.DayDate(i)
		if !ok {
			t.Fatalf("day %d has no date", i)
		}
		if _, ok := doc.Weather[date.Key()]; !ok {
			t.Fatalf("day %d (%s) has no weather: %v", i, date.Key(), doc.Weather)
		}
	}
}

func TestResetIsCommitted(t *testing.T) {
	mp := &memoryPersistence{}
	svc, _ := newTestService(t, mp)
	ctx := context.Background()
	saver := NewAutosaver(svc, time.Hour)
	defer saver.Close(ctx)

	var got Commit
	unsub := svc.Subscribe(func(c Commit) { got = c })
	defer unsub()

	if _, err := svc.AddDay(ctx); err != nil {
		t.Fatalf("add day: %v", err)
	}
	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got.Reason != "reset" || len(got.Document.Days) != 2 {
		t.Fatalf("expected reset commit with the seed, got %+v", got)
	}
	if err := saver.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	saved, _ := mp.saved()
	if len(saved.Days) != 2 || saved.StartDate == nil {
		t.Fatalf("expected seed saved after reset, got %+v", saved)
	}
	if len(saved.Weather) != 2 {
		t.Fatalf("expected seed weather saved, got %v", saved.Weather)
	}
}
