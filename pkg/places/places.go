// Package places is the map search collaborator. Results are simulated.
package places

import (
	"context"
	"strings"
	"time"

	"tableflip.dev/trip/pkg/activity"
)

// Place is a single search hit.
type Place struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Address     string               `json:"address"`
	Coordinates activity.Coordinates `json:"coordinates"`
}

// Searcher resolves a free-text query into places.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Place, error)
}

// Simulator answers every query with a park, a museum and a restaurant named
// after it. Delay stands in for network latency and is cut short by ctx.
type Simulator struct {
	Delay time.Duration
}

func (s Simulator) Search(ctx context.Context, query string) ([]Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []Place{
		{ID: "place1", Name: query + " Park", Address: "123 Main St, City", Coordinates: activity.Coordinates{Lat: 40.7128, Lng: -74.0060}},
		{ID: "place2", Name: query + " Museum", Address: "456 Broadway, City", Coordinates: activity.Coordinates{Lat: 40.7228, Lng: -73.9960}},
		{ID: "place3", Name: query + " Restaurant", Address: "789 5th Ave, City", Coordinates: activity.Coordinates{Lat: 40.7328, Lng: -74.0160}},
	}, nil
}

// SearcherFunc adapts a function to Searcher.
type SearcherFunc func(ctx context.Context, query string) ([]Place, error)

func (f SearcherFunc) Search(ctx context.Context, query string) ([]Place, error) {
	return f(ctx, query)
}
