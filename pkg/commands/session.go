package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/places"
	"tableflip.dev/trip/pkg/store"
	"tableflip.dev/trip/pkg/weather"
)

// session is one open itinerary with its autosaver.
type session struct {
	settings *store.Settings
	svc      *app.Service
	saver    *app.Autosaver
}

func openSession(ctx context.Context) (*session, error) {
	settings, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(settings)
	if err != nil {
		return nil, err
	}
	svc := app.New(p,
		app.WithForecaster(weather.NewSimulator(settings.Seed, settings.WeatherDelay)),
		app.WithSearcher(places.Simulator{Delay: settings.SearchDelay}),
	)
	if _, err := svc.Open(ctx); err != nil {
		return nil, err
	}
	return &session{
		settings: settings,
		svc:      svc,
		saver:    app.NewAutosaver(svc, settings.AutosaveDelay),
	}, nil
}

// Close writes any pending change and stops the autosaver.
func (s *session) Close(ctx context.Context) error {
	return s.saver.Close(ctx)
}

// withSession opens the itinerary, runs fn and saves what fn changed.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	err = fn(ctx, s)
	if cerr := s.Close(context.WithoutCancel(ctx)); err == nil {
		err = cerr
	}
	return err
}

func dayCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	p, err := store.Load(nil)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	doc, err := p.Load(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var ids []string
	for _, d := range doc.Days {
		ids = append(ids, d.ID+"\t"+d.Title)
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

// dayArg resolves a day id or a 1-based day number.
func dayArg(s *session, raw string) string {
	if n, err := strconv.Atoi(raw); err == nil {
		doc := s.svc.Snapshot()
		if n >= 1 && n <= len(doc.Days) {
			return doc.Days[n-1].ID
		}
	}
	return raw
}
