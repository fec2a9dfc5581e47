package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/guard"
	"tableflip.dev/trip/pkg/idgen"
	"tableflip.dev/trip/pkg/itinerary"
	"tableflip.dev/trip/pkg/places"
	"tableflip.dev/trip/pkg/store"
	"tableflip.dev/trip/pkg/weather"
)

// Service owns the live itinerary. Every change goes through a commit: the
// guard is engaged, the new document is computed by a pure function, swapped
// in, announced to subscribers and only then is the guard released.
// UIs and CLIs share this logic.
type Service struct {
	Persistence store.Persistence
	IDs         idgen.Generator
	Weather     weather.Forecaster
	Places      places.Searcher
	Clock       func() time.Time

	guard guard.Guard

	// forecasting serializes operations that fetch weather before committing.
	forecasting sync.Mutex

	mu      sync.RWMutex
	doc     itinerary.Document
	commits uint64
	subs    map[int]func(Commit)
	nextSub int

	search searchState
}

var (
	errNoPersistence = errors.New("app: no persistence configured")
	errStaleForecast = errors.New("app: trip changed while forecasting")
)

const (
	maxForecastAttempts = 3
	maxIDAttempts       = 64
)

// Option configures a Service.
type Option func(*Service)

func WithIDs(g idgen.Generator) Option { return func(s *Service) { s.IDs = g } }

func WithForecaster(f weather.Forecaster) Option { return func(s *Service) { s.Weather = f } }

func WithSearcher(p places.Searcher) Option { return func(s *Service) { s.Places = p } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.Clock = now } }

// WithDocument starts the service from doc instead of an empty document.
func WithDocument(doc itinerary.Document) Option { return func(s *Service) { s.doc = doc.Clone() } }

// New returns a Service holding an empty document. Call Open to load.
func New(p store.Persistence, opts ...Option) *Service {
	s := &Service{
		Persistence: p,
		IDs:         idgen.Time{},
		Weather:     weather.NewSimulator(0, 0),
		Places:      places.Simulator{},
		Clock:       time.Now,
		doc:         itinerary.Document{}.Clone(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the saved itinerary. A missing or unreadable one is replaced by
// the seed trip, which gets fresh weather and is saved straight away.
func (s *Service) Open(ctx context.Context) (seeded bool, err error) {
	if s.Persistence == nil {
		return false, errNoPersistence
	}
	doc, seeded := store.LoadDocument(ctx, s.Persistence, itinerary.Seed(s.now()))
	if seeded {
		if doc, err = s.withSeedWeather(ctx, doc); err != nil {
			return false, err
		}
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()

	if seeded {
		if err := s.Persistence.Save(ctx, doc); err != nil {
			return true, err
		}
	}
	return seeded, nil
}

// Snapshot returns a copy of the current document.
func (s *Service) Snapshot() itinerary.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Guard exposes the update-in-flight guard to persistence and UIs.
func (s *Service) Guard() *guard.Guard {
	return &s.guard
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Reload replaces the live document with the saved one without committing.
func (s *Service) Reload(ctx context.Context) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	doc, err := s.Persistence.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return nil
}

// Theme reads the saved display preference.
func (s *Service) Theme(ctx context.Context) (store.Theme, error) {
	if s.Persistence == nil {
		return "", errNoPersistence
	}
	return s.Persistence.Theme(ctx)
}

// SetTheme saves the display preference.
func (s *Service) SetTheme(ctx context.Context, theme store.Theme) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	return s.Persistence.SetTheme(ctx, theme)
}

// Reset erases saved data and replaces the live document with a fresh seed
// trip. The seed is committed like any other change, so subscribers and the
// autosaver see it.
func (s *Service) Reset(ctx context.Context) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	s.forecasting.Lock()
	defer s.forecasting.Unlock()
	tok := s.guard.Begin()
	defer tok.Release()
	if err := s.Persistence.Reset(ctx); err != nil {
		return err
	}
	seed, err := s.withSeedWeather(ctx, itinerary.Seed(s.now()))
	if err != nil {
		return err
	}
	_, err = s.commit(ctx, "reset", func(itinerary.Document) (itinerary.Document, error) {
		return seed, nil
	})
	return err
}

func (s *Service) withSeedWeather(ctx context.Context, doc itinerary.Document) (itinerary.Document, error) {
	if doc.StartDate == nil || s.Weather == nil {
		return doc, nil
	}
	reports, err := weather.ForDays(ctx, s.Weather, doc.StartDate.Time, len(doc.Days))
	if err != nil {
		return doc, fmt.Errorf("app: seed weather: %w", err)
	}
	return itinerary.SetWeather(doc, reports), nil
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

func (s *Service) newID(kind idgen.Kind) string {
	if s.IDs == nil {
		s.IDs = idgen.Time{}
	}
	return s.IDs.New(kind)
}

// freshID draws ids until one is not already used by a day or activity in doc.
func (s *Service) freshID(doc itinerary.Document, kind idgen.Kind) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID(kind)
		if !itinerary.HasDay(doc, id) && !itinerary.HasActivity(doc, id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("app: no free %s id: %w", kind, itinerary.ErrDuplicateID)
}

func notFound(err error, id string) error {
	return fmt.Errorf("%w: %s", err, id)
}

func findActivity(doc itinerary.Document, dayID, activityID string) (activity.Activity, error) {
	day, ok := itinerary.FindDay(doc, dayID)
	if !ok {
		return activity.Activity{}, notFound(itinerary.ErrDayNotFound, dayID)
	}
	for _, a := range day.Activities {
		if a.ID == activityID {
			return a, nil
		}
	}
	return activity.Activity{}, notFound(itinerary.ErrActivityNotFound, activityID)
}
