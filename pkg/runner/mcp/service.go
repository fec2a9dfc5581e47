package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/export"
	"tableflip.dev/trip/pkg/itinerary"
	"tableflip.dev/trip/pkg/metrics"
	"tableflip.dev/trip/pkg/places"
	"tableflip.dev/trip/pkg/weather"
)

// Flusher persists pending changes. *app.Autosaver satisfies it.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Service adapts the itinerary service for MCP tools and resources.
type Service struct {
	app   *app.Service
	saver Flusher

	mu sync.Mutex
	// results of the latest place search, by place id
	lastSearch map[string]places.Place
}

// NewService wraps svc. saver may be nil, in which case nothing is written.
func NewService(svc *app.Service, saver Flusher) *Service {
	return &Service{app: svc, saver: saver}
}

// DayDTO is a day as exposed over MCP.
type DayDTO struct {
	ID            string              `json:"id"`
	Index         int                 `json:"index"`
	Title         string              `json:"title"`
	Date          string              `json:"date,omitempty"`
	Weather       *weather.Report     `json:"weather,omitempty"`
	TotalCost     float64             `json:"totalCost"`
	TotalDuration int                 `json:"totalDuration"`
	Activities    []activity.Activity `json:"activities"`
}

// ItineraryDTO is the whole trip.
type ItineraryDTO struct {
	StartDate string   `json:"startDate,omitempty"`
	Days      []DayDTO `json:"days"`
}

func toDayDTO(doc itinerary.Document, index int) DayDTO {
	d := doc.Days[index]
	dto := DayDTO{
		ID:            d.ID,
		Index:         index,
		Title:         d.Title,
		TotalCost:     metrics.DayTotalCost(d),
		TotalDuration: metrics.DayTotalDuration(d),
		Activities:    d.Activities,
	}
	if dto.Activities == nil {
		dto.Activities = []activity.Activity{}
	}
	if date, ok := doc.DayDate(index); ok {
		dto.Date = date.Key()
	}
	if report, ok := doc.WeatherFor(index); ok {
		r := report
		dto.Weather = &r
	}
	return dto
}

// Itinerary returns every day in order.
func (s *Service) Itinerary(ctx context.Context) ItineraryDTO {
	doc := s.app.Snapshot()
	out := ItineraryDTO{Days: make([]DayDTO, 0, len(doc.Days))}
	if doc.StartDate != nil {
		out.StartDate = doc.StartDate.Key()
	}
	for i := range doc.Days {
		out.Days = append(out.Days, toDayDTO(doc, i))
	}
	return out
}

// Day returns one day by id.
func (s *Service) Day(ctx context.Context, dayID string) (*DayDTO, error) {
	doc := s.app.Snapshot()
	i := itinerary.DayIndex(doc, dayID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", itinerary.ErrDayNotFound, dayID)
	}
	dto := toDayDTO(doc, i)
	return &dto, nil
}

// Summary computes the trip metrics.
func (s *Service) Summary(ctx context.Context) metrics.Summary {
	return metrics.Summarize(s.app.Snapshot())
}

// AddDay appends a day and returns it.
func (s *Service) AddDay(ctx context.Context) (*DayDTO, error) {
	d, err := s.app.AddDay(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return s.Day(ctx, d.ID)
}

// RemoveDay deletes a day and renumbers the rest.
func (s *Service) RemoveDay(ctx context.Context, dayID string) error {
	if err := s.app.RemoveDay(ctx, dayID); err != nil {
		return err
	}
	return s.persist(ctx)
}

// RenameDay sets a day title.
func (s *Service) RenameDay(ctx context.Context, dayID, title string) (*DayDTO, error) {
	if err := s.app.RenameDay(ctx, dayID, title); err != nil {
		return nil, err
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return s.Day(ctx, dayID)
}

// ReorderDays moves the day at from to position to.
func (s *Service) ReorderDays(ctx context.Context, from, to int) (ItineraryDTO, error) {
	if err := s.app.ReorderDays(ctx, from, to); err != nil {
		return ItineraryDTO{}, err
	}
	if err := s.persist(ctx); err != nil {
		return ItineraryDTO{}, err
	}
	return s.Itinerary(ctx), nil
}

// AddActivity adds an activity to a day, optionally from a quick-add template.
func (s *Service) AddActivity(ctx context.Context, dayID, template string, in activity.Input) (activity.Activity, error) {
	var (
		a   activity.Activity
		err error
	)
	if strings.TrimSpace(template) != "" {
		a, err = s.app.QuickAdd(ctx, dayID, template, in)
	} else {
		a, err = s.app.AddActivity(ctx, dayID, in)
	}
	if err != nil {
		return activity.Activity{}, err
	}
	return a, s.persist(ctx)
}

// UpdateActivity patches an activity.
func (s *Service) UpdateActivity(ctx context.Context, dayID, activityID string, patch activity.Patch) (activity.Activity, error) {
	if patch.Empty() {
		return activity.Activity{}, errors.New("no fields to update")
	}
	a, err := s.app.UpdateActivity(ctx, dayID, activityID, patch)
	if err != nil {
		return activity.Activity{}, err
	}
	return a, s.persist(ctx)
}

// DeleteActivity removes an activity.
func (s *Service) DeleteActivity(ctx context.Context, dayID, activityID string) error {
	if err := s.app.DeleteActivity(ctx, dayID, activityID); err != nil {
		return err
	}
	return s.persist(ctx)
}

// MoveActivity moves an activity by id to a position in another (or the same) day.
func (s *Service) MoveActivity(ctx context.Context, activityID, dstDayID string, dstIndex int) (ItineraryDTO, error) {
	_, loc, ok := itinerary.FindActivity(s.app.Snapshot(), activityID)
	if !ok {
		return ItineraryDTO{}, fmt.Errorf("%w: %s", itinerary.ErrActivityNotFound, activityID)
	}
	if dstDayID == "" {
		dstDayID = loc.DayID
	}
	if err := s.app.MoveActivity(ctx, loc.DayID, loc.Index, dstDayID, dstIndex); err != nil {
		return ItineraryDTO{}, err
	}
	if err := s.persist(ctx); err != nil {
		return ItineraryDTO{}, err
	}
	return s.Itinerary(ctx), nil
}

// SetStartDate sets or clears (empty raw) the trip start date.
func (s *Service) SetStartDate(ctx context.Context, raw string) (ItineraryDTO, error) {
	var start *itinerary.Date
	if strings.TrimSpace(raw) != "" {
		d, err := itinerary.ParseDate(raw)
		if err != nil {
			return ItineraryDTO{}, err
		}
		start = &d
	}
	if err := s.app.SetStartDate(ctx, start); err != nil {
		return ItineraryDTO{}, err
	}
	if err := s.persist(ctx); err != nil {
		return ItineraryDTO{}, err
	}
	return s.Itinerary(ctx), nil
}

// SearchPlaces runs a place search and remembers the results for AddPlace.
func (s *Service) SearchPlaces(ctx context.Context, query string) ([]places.Place, error) {
	results, err := s.app.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.lastSearch = make(map[string]places.Place, len(results))
	for _, p := range results {
		s.lastSearch[p.ID] = p
	}
	s.mu.Unlock()
	if results == nil {
		results = []places.Place{}
	}
	return results, nil
}

// AddPlace adds a result of the latest search to a day.
func (s *Service) AddPlace(ctx context.Context, dayID, placeID string) (activity.Activity, error) {
	s.mu.Lock()
	p, ok := s.lastSearch[placeID]
	s.mu.Unlock()
	if !ok {
		return activity.Activity{}, fmt.Errorf("place %q is not in the latest search results", placeID)
	}
	a, err := s.app.AddPlace(ctx, dayID, p)
	if err != nil {
		return activity.Activity{}, err
	}
	return a, s.persist(ctx)
}

// Export renders the itinerary in format.
func (s *Service) Export(ctx context.Context, format string) (string, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := export.Render(&buf, f, s.app.Snapshot()); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Service) persist(ctx context.Context) error {
	if s.saver == nil {
		return nil
	}
	return s.saver.Flush(ctx)
}
