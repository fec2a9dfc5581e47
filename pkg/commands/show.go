package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/commands/options"
	"tableflip.dev/trip/pkg/itinerary"
	"tableflip.dev/trip/pkg/metrics"
	"tableflip.dev/trip/pkg/runner/show"
	"tableflip.dev/trip/pkg/runner/summary"
)

func addShow(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	calendar := false

	cmd := &cobra.Command{
		Use:     "show [day]",
		Aliases: []string{"ls", "get"},
		Short:   "Show the itinerary, or one day of it.",
		Example: `
trip show
trip show 2 -k
trip show --calendar
trip show --json
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: dayCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withSession(cmd, func(ctx context.Context, s *session) error {
				day := ""
				if len(args) == 1 {
					day = dayArg(s, args[0])
				}
				if oo.JSON {
					doc := s.svc.Snapshot()
					if day == "" {
						return oo.Print(doc)
					}
					d, ok := itinerary.FindDay(doc, day)
					if !ok {
						return fmt.Errorf("%w: %s", itinerary.ErrDayNotFound, day)
					}
					return oo.Print(d)
				}
				r := show.Show{
					Service:  s.svc,
					Out:      cmd.OutOrStdout(),
					ShowID:   ido.ShowID,
					Calendar: calendar,
					DayID:    day,
				}
				return r.Do(ctx)
			})
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, ido)
	cmd.Flags().BoolVar(&calendar, "calendar", false, "Show the trip on a month calendar.")

	topLevel.AddCommand(cmd)
}

func addSummary(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Totals, averages and breakdowns for the trip.",
		Example: `
trip summary
trip summary --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withSession(cmd, func(ctx context.Context, s *session) error {
				if oo.JSON {
					return oo.Print(metrics.Summarize(s.svc.Snapshot()))
				}
				r := summary.Summary{Service: s.svc, Out: cmd.OutOrStdout()}
				return r.Do(ctx)
			})
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
