package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/commands/options"
	"tableflip.dev/trip/pkg/glyph"
	"tableflip.dev/trip/pkg/itinerary"
	"tableflip.dev/trip/pkg/printers"
)

func addStart(topLevel *cobra.Command) {
	unset := false

	cmd := &cobra.Command{
		Use:   "start [date]",
		Short: "Show or set the first day of the trip. Setting it fetches new forecasts.",
		Example: `
trip start
trip start 2025-07-01
trip start tomorrow
trip start --clear
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withSession(cmd, func(ctx context.Context, s *session) error {
				switch {
				case unset:
					if err := s.svc.SetStartDate(ctx, nil); err != nil {
						return err
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Start date cleared")
					return nil
				case len(args) == 0:
					start := s.svc.Snapshot().StartDate
					if start == nil {
						_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No start date set")
						return nil
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), start.Format("Monday, January 2, 2006"))
					return nil
				}
				d, err := options.ParseDate(args[0], time.Now())
				if err != nil {
					return err
				}
				if err := s.svc.SetStartDate(ctx, &d); err != nil {
					return err
				}
				pp := printers.PrettyPrint{Out: cmd.OutOrStdout()}
				pp.Document(s.svc.Snapshot())
				return nil
			})
			return oo.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&unset, "clear", false, "Remove the start date and all forecasts.")

	topLevel.AddCommand(cmd)
}

func addWeather(topLevel *cobra.Command) {
	refresh := false

	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Show the forecast for each day of the trip.",
		Example: `
trip weather
trip weather --refresh
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withSession(cmd, func(ctx context.Context, s *session) error {
				if refresh {
					if err := s.svc.RefreshWeather(ctx); err != nil {
						return err
					}
				}
				doc := s.svc.Snapshot()
				if doc.StartDate == nil {
					return fmt.Errorf("no start date set, run: trip start <date>")
				}
				if oo.JSON {
					return oo.Print(doc.Weather)
				}
				printForecast(cmd, doc)
				return nil
			})
			return oo.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Fetch new forecasts first.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func printForecast(cmd *cobra.Command, doc itinerary.Document) {
	out := cmd.OutOrStdout()
	for i, d := range doc.Days {
		date, _ := doc.DayDate(i)
		r, ok := doc.WeatherFor(i)
		if !ok {
			_, _ = fmt.Fprintf(out, "%-10s %s  no forecast\n", d.Title, date.Format("Mon Jan 2"))
			continue
		}
		_, _ = fmt.Fprintf(out, "%-10s %s  %s %-13s %4.0f°C  %3.0f%% rain\n",
			d.Title, date.Format("Mon Jan 2"), glyph.ForCondition(r.Condition), r.Condition, r.Temperature, r.Precipitation)
	}
}
