package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/idgen"
	"tableflip.dev/trip/pkg/itinerary"
	"tableflip.dev/trip/pkg/places"
	"tableflip.dev/trip/pkg/reorder"
	"tableflip.dev/trip/pkg/weather"
)

// AddDay appends a day. When the trip has a start date and no forecast for
// the new day's date, one is fetched and lands in the same commit.
func (s *Service) AddDay(ctx context.Context) (itinerary.Day, error) {
	s.forecasting.Lock()
	defer s.forecasting.Unlock()
	tok := s.guard.Begin()
	defer tok.Release()

	for attempt := 0; attempt < maxForecastAttempts; attempt++ {
		// The forecast is fetched without holding the lock, so the commit
		// checks that the new day still lands on the forecast date.
		key, report, err := s.nextDayForecast(ctx, s.Snapshot())
		if err != nil {
			return itinerary.Day{}, err
		}
		var id string
		doc, err := s.commit(ctx, "add day", func(doc itinerary.Document) (itinerary.Document, error) {
			var err error
			if id, err = s.freshID(doc, idgen.Day); err != nil {
				return doc, err
			}
			out, err := itinerary.AddDay(doc, id)
			if err != nil {
				return doc, err
			}
			date, ok := out.DayDate(len(out.Days) - 1)
			if !ok || s.Weather == nil {
				return out, nil
			}
			if _, exists := out.Weather[date.Key()]; exists {
				return out, nil
			}
			if date.Key() != key {
				return doc, errStaleForecast
			}
			return itinerary.MergeWeather(out, map[string]weather.Report{key: report}), nil
		})
		if errors.Is(err, errStaleForecast) {
			continue
		}
		if err != nil {
			return itinerary.Day{}, err
		}
		day, _ := itinerary.FindDay(doc, id)
		return day, nil
	}
	return itinerary.Day{}, fmt.Errorf("app: add day: %w", errStaleForecast)
}

// nextDayForecast fetches the forecast for the day that would follow the
// last one in doc. An empty key means nothing needed fetching.
func (s *Service) nextDayForecast(ctx context.Context, doc itinerary.Document) (string, weather.Report, error) {
	date, ok := doc.DayDate(len(doc.Days))
	if !ok || s.Weather == nil {
		return "", weather.Report{}, nil
	}
	key := date.Key()
	if _, exists := doc.Weather[key]; exists {
		return "", weather.Report{}, nil
	}
	r, err := s.Weather.Forecast(ctx, date.Time)
	if err != nil {
		return "", weather.Report{}, fmt.Errorf("app: forecast %s: %w", key, err)
	}
	return key, r, nil
}

// RemoveDay deletes a day and renumbers the rest.
func (s *Service) RemoveDay(ctx context.Context, dayID string) error {
	_, err := s.update(ctx, "remove day", func(doc itinerary.Document) (itinerary.Document, error) {
		out, ok := itinerary.RemoveDay(doc, dayID)
		if !ok {
			return doc, notFound(itinerary.ErrDayNotFound, dayID)
		}
		return out, nil
	})
	return err
}

// RenameDay sets a custom day title.
func (s *Service) RenameDay(ctx context.Context, dayID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("app: day title required")
	}
	_, err := s.update(ctx, "rename day", func(doc itinerary.Document) (itinerary.Document, error) {
		out, ok := itinerary.UpdateDayTitle(doc, dayID, title)
		if !ok {
			return doc, notFound(itinerary.ErrDayNotFound, dayID)
		}
		return out, nil
	})
	return err
}

// ReorderDays moves the day at from to position to.
func (s *Service) ReorderDays(ctx context.Context, from, to int) error {
	_, err := s.Drag(ctx, reorder.DragEnd{
		Type:        reorder.KindDay,
		Source:      reorder.Location{ContainerID: reorder.ContainerDays, Index: from},
		Destination: &reorder.Location{ContainerID: reorder.ContainerDays, Index: to},
	})
	return err
}

// AddActivity validates in and appends the activity to the day.
func (s *Service) AddActivity(ctx context.Context, dayID string, in activity.Input) (activity.Activity, error) {
	if err := activity.Validate(in); err != nil {
		return activity.Activity{}, err
	}
	return s.appendActivity(ctx, "add activity", dayID, func(id string) activity.Activity {
		return activity.New(id, in)
	})
}

// QuickAdd merges the named template over form and adds the result.
func (s *Service) QuickAdd(ctx context.Context, dayID, template string, form activity.Input) (activity.Activity, error) {
	t, ok := activity.LookupTemplate(template)
	if !ok {
		return activity.Activity{}, fmt.Errorf("app: unknown template %q", template)
	}
	in := t.Merge(form)
	if err := activity.Validate(in); err != nil {
		return activity.Activity{}, err
	}
	return s.appendActivity(ctx, "quick add", dayID, func(id string) activity.Activity {
		return activity.New(id, in)
	})
}

// AddPlace adds a sightseeing activity for a search result.
func (s *Service) AddPlace(ctx context.Context, dayID string, p places.Place) (activity.Activity, error) {
	return s.appendActivity(ctx, "add place", dayID, func(id string) activity.Activity {
		return itinerary.PlaceActivity(id, p)
	})
}

// appendActivity builds the activity under the commit lock so its id is
// checked against the document it joins, and returns what it built.
func (s *Service) appendActivity(ctx context.Context, reason, dayID string, build func(id string) activity.Activity) (activity.Activity, error) {
	var a activity.Activity
	_, err := s.update(ctx, reason, func(doc itinerary.Document) (itinerary.Document, error) {
		id, err := s.freshID(doc, idgen.Activity)
		if err != nil {
			return doc, err
		}
		a = build(id)
		return itinerary.AddActivity(doc, dayID, a)
	})
	if err != nil {
		return activity.Activity{}, err
	}
	return a, nil
}

// UpdateActivity applies patch to one activity.
func (s *Service) UpdateActivity(ctx context.Context, dayID, activityID string, patch activity.Patch) (activity.Activity, error) {
	if err := activity.ValidatePatch(patch); err != nil {
		return activity.Activity{}, err
	}
	doc, err := s.update(ctx, "update activity", func(doc itinerary.Document) (itinerary.Document, error) {
		if _, err := findActivity(doc, dayID, activityID); err != nil {
			return doc, err
		}
		out, _ := itinerary.UpdateActivity(doc, dayID, activityID, patch)
		return out, nil
	})
	if err != nil {
		return activity.Activity{}, err
	}
	return findActivity(doc, dayID, activityID)
}

// DeleteActivity removes one activity.
func (s *Service) DeleteActivity(ctx context.Context, dayID, activityID string) error {
	_, err := s.update(ctx, "delete activity", func(doc itinerary.Document) (itinerary.Document, error) {
		if _, err := findActivity(doc, dayID, activityID); err != nil {
			return doc, err
		}
		out, _ := itinerary.DeleteActivity(doc, dayID, activityID)
		return out, nil
	})
	return err
}

// MoveActivity moves an activity by position, within or across days.
func (s *Service) MoveActivity(ctx context.Context, srcDayID string, srcIndex int, dstDayID string, dstIndex int) error {
	res, err := s.Drag(ctx, reorder.DragEnd{
		Type:        reorder.KindActivity,
		Source:      reorder.Location{ContainerID: srcDayID, Index: srcIndex},
		Destination: &reorder.Location{ContainerID: dstDayID, Index: dstIndex},
	})
	if err != nil {
		return err
	}
	if !res.Applied {
		doc := s.Snapshot()
		for _, id := range []string{srcDayID, dstDayID} {
			if itinerary.DayIndex(doc, id) < 0 {
				return notFound(itinerary.ErrDayNotFound, id)
			}
		}
		return notFound(itinerary.ErrActivityNotFound, fmt.Sprintf("%s[%d]", srcDayID, srcIndex))
	}
	return nil
}

// Drag applies a drag-end descriptor. Drags that change nothing, such as a
// drop outside any list, are not committed.
func (s *Service) Drag(ctx context.Context, drag reorder.DragEnd) (reorder.Result, error) {
	var res reorder.Result
	_, err := s.update(ctx, "drag "+string(drag.Type), func(doc itinerary.Document) (itinerary.Document, error) {
		var out itinerary.Document
		out, res = reorder.Apply(doc, drag)
		if !res.Applied {
			return doc, errNoop
		}
		return out, nil
	})
	if errors.Is(err, errNoop) {
		return res, nil
	}
	return res, err
}

// SetStartDate changes the first day of the trip and replaces all weather
// with fresh forecasts for every day. Nil clears the date and the weather.
func (s *Service) SetStartDate(ctx context.Context, start *itinerary.Date) error {
	s.forecasting.Lock()
	defer s.forecasting.Unlock()
	tok := s.guard.Begin()
	defer tok.Release()

	for attempt := 0; attempt < maxForecastAttempts; attempt++ {
		n := len(s.Snapshot().Days)
		reports := map[string]weather.Report{}
		if start != nil && s.Weather != nil {
			var err error
			reports, err = weather.ForDays(ctx, s.Weather, start.Time, n)
			if err != nil {
				return fmt.Errorf("app: forecast: %w", err)
			}
		}
		_, err := s.commit(ctx, "set start date", func(doc itinerary.Document) (itinerary.Document, error) {
			if start != nil && s.Weather != nil && len(doc.Days) > n {
				return doc, errStaleForecast
			}
			return itinerary.SetWeather(itinerary.SetStartDate(doc, start), reports), nil
		})
		if errors.Is(err, errStaleForecast) {
			continue
		}
		return err
	}
	return fmt.Errorf("app: set start date: %w", errStaleForecast)
}

// RefreshWeather re-forecasts every day of the trip.
func (s *Service) RefreshWeather(ctx context.Context) error {
	return s.SetStartDate(ctx, s.Snapshot().StartDate)
}
