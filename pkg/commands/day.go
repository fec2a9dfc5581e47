package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/commands/options"
	"tableflip.dev/trip/pkg/itinerary"
	"tableflip.dev/trip/pkg/printers"
)

func addDay(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "day",
		Aliases: []string{"days"},
		Short:   "Add, remove, rename and reorder days.",
	}

	addDayAdd(cmd)
	addDayRemove(cmd)
	addDayTitle(cmd)
	addDayMove(cmd)

	topLevel.AddCommand(cmd)
}

func addDayAdd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Append a day to the trip.",
		Example: `
trip day add
trip day add "Road trip"
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withSession(cmd, func(ctx context.Context, s *session) error {
				d, err := s.svc.AddDay(ctx)
				if err != nil {
					return err
				}
				if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
					if err := s.svc.RenameDay(ctx, d.ID, args[0]); err != nil {
						return err
					}
				}
				doc := s.svc.Snapshot()
				if oo.JSON {
					d, _ = itinerary.FindDay(doc, d.ID)
					return oo.Print(d)
				}
				pp := printers.PrettyPrint{ShowID: true, Out: cmd.OutOrStdout()}
				pp.Day(doc, itinerary.DayIndex(doc, d.ID))
				return nil
			})
			return oo.HandleError(err)
		},
	}
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addDayRemove(parent *cobra.Command) {
	yes := false
	cmd := &cobra.Command{
		Use:     "rm <day>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a day and everything planned on it.",
		Example: `
trip day rm day-3
trip day rm 2 --yes
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: dayCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withSession(cmd, func(ctx context.Context, s *session) error {
				id := dayArg(s, args[0])
				d, ok := itinerary.FindDay(s.svc.Snapshot(), id)
				if !ok {
					return fmt.Errorf("%w: %s", itinerary.ErrDayNotFound, id)
				}
				if !yes && len(d.Activities) > 0 {
					ok, err := confirm(cmd, fmt.Sprintf("Remove %s and its %d activities", d.Title, len(d.Activities)))
					if err != nil || !ok {
						return err
					}
				}
				if err := s.svc.RemoveDay(ctx, id); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", d.Title)
				return nil
			})
			return oo.HandleError(err)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation.")
	parent.AddCommand(cmd)
}

func addDayTitle(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "title <day> <title>",
		Aliases: []string{"rename"},
		Short:   "Rename a day.",
		Example: `
trip day title day-1 "Arrival"
`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: dayCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withSession(cmd, func(ctx context.Context, s *session) error {
				return s.svc.RenameDay(ctx, dayArg(s, args[0]), args[1])
			})
			return oo.HandleError(err)
		},
	}
	parent.AddCommand(cmd)
}

func addDayMove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "move <day> <position>",
		Short: "Move a day to a 1-based position. Days keep their titles.",
		Example: `
trip day move day-3 1
`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: dayCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			pos, err := strconv.Atoi(args[1])
			if err != nil || pos < 1 {
				return fmt.Errorf("position must be a number from 1, got %q", args[1])
			}
			err = withSession(cmd, func(ctx context.Context, s *session) error {
				id := dayArg(s, args[0])
				from := itinerary.DayIndex(s.svc.Snapshot(), id)
				if from < 0 {
					return fmt.Errorf("%w: %s", itinerary.ErrDayNotFound, id)
				}
				return s.svc.ReorderDays(ctx, from, pos-1)
			})
			return oo.HandleError(err)
		},
	}
	parent.AddCommand(cmd)
}
