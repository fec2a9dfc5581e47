package search

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/places"
	"tableflip.dev/trip/pkg/printers"
)

// Picker chooses one of the results, returning its index.
type Picker func(results []places.Place) (int, error)

type Search struct {
	Service *app.Service
	Query   string
	Out     io.Writer
	ShowID  bool
	// DayID, when set, adds a result to that day.
	DayID string
	// Pick chooses the result to add. Nil adds the first one.
	Pick Picker

	Results []places.Place
	Added   *activity.Activity
}

func (n *Search) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not search, no itinerary")
	}
	results, err := n.Service.Search(ctx, n.Query)
	if err != nil {
		return err
	}
	n.Results = results

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.DayID == "" {
		pp.NewLine()
		pp.Places(results)
		return nil
	}
	if len(results) == 0 {
		return fmt.Errorf("no places found for %q", n.Query)
	}

	i := 0
	if n.Pick != nil {
		if i, err = n.Pick(results); err != nil {
			return err
		}
	}
	if i < 0 || i >= len(results) {
		return fmt.Errorf("no result %d", i)
	}
	a, err := n.Service.AddPlace(ctx, n.DayID, results[i])
	if err != nil {
		return err
	}
	n.Added = &a
	pp.Activities(a)
	return nil
}
