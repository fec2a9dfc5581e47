package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/commands/options"
	"tableflip.dev/trip/pkg/itinerary"
	"tableflip.dev/trip/pkg/printers"
	"tableflip.dev/trip/pkg/snake"
)

func addActivity(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"act", "a"},
		Short:   "Add, edit, remove and move activities.",
	}

	addActivityAdd(cmd)
	addActivityQuick(cmd)
	addActivityEdit(cmd)
	addActivityRemove(cmd)
	addActivityMove(cmd)

	topLevel.AddCommand(cmd)
}

func printActivity(cmd *cobra.Command, a activity.Activity) error {
	if oo.JSON {
		return oo.Print(a)
	}
	pp := printers.PrettyPrint{ShowID: true, Out: cmd.OutOrStdout()}
	pp.Activities(a)
	return nil
}

func addActivityAdd(parent *cobra.Command) {
	ao := &options.ActivityOptions{}
	interactive := false

	cmd := &cobra.Command{
		Use:   "add <day>",
		Short: "Add an activity to a day.",
		Example: `
trip activity add day-1 -t "Walking tour" --time 10:00 -c Sightseeing -d 2h --cost 15
trip activity add 2 -i
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: dayCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if interactive {
				if err := snake.PromptFlags(cmd, ao.Validators(), options.ActivityFlags...); err != nil {
					return err
				}
			}
			in, err := ao.Input()
			if err != nil {
				return oo.HandleError(err)
			}
			err = withSession(cmd, func(ctx context.Context, s *session) error {
				a, err := s.svc.AddActivity(ctx, dayArg(s, args[0]), in)
				if err != nil {
					return err
				}
				return printActivity(cmd, a)
			})
			return oo.HandleError(err)
		},
	}

	options.AddActivityArgs(cmd, ao)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for the fields not given as flags.")

	parent.AddCommand(cmd)
}

func addActivityQuick(parent *cobra.Command) {
	ao := &options.ActivityOptions{}
	var names []string
	for _, t := range activity.Templates() {
		names = append(names, strings.ToLower(t.Name))
	}

	cmd := &cobra.Command{
		Use:   "quick <day> <template>",
		Short: fmt.Sprintf("Add an activity from a template: %s.", strings.Join(names, ", ")),
		Example: `
trip activity quick day-1 breakfast
trip activity quick 2 dinner --time 20:00 -l "Harbor Restaurant"
`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 1 {
				return names, cobra.ShellCompDirectiveNoFileComp
			}
			return dayCompletions(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			form, err := ao.Input()
			if err != nil {
				return oo.HandleError(err)
			}
			err = withSession(cmd, func(ctx context.Context, s *session) error {
				a, err := s.svc.QuickAdd(ctx, dayArg(s, args[0]), args[1], form)
				if err != nil {
					return err
				}
				return printActivity(cmd, a)
			})
			return oo.HandleError(err)
		},
	}

	options.AddActivityArgs(cmd, ao)
	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addActivityEdit(parent *cobra.Command) {
	ao := &options.ActivityOptions{}
	interactive := false

	cmd := &cobra.Command{
		Use:     "edit <activity>",
		Aliases: []string{"update", "set"},
		Short:   "Change fields of an activity. Only the flags given are changed.",
		Example: `
trip activity edit activity-2 --time 14:00 -p High
trip activity edit activity-2 --notes ""
trip activity edit activity-2 -i
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if interactive {
				if err := snake.PromptFlags(cmd, ao.Validators(), options.ActivityFlags...); err != nil {
					return err
				}
			}
			patch, err := ao.Patch()
			if err != nil {
				return oo.HandleError(err)
			}
			if patch.Empty() {
				return oo.HandleError(fmt.Errorf("nothing to change, pass at least one of --%s", strings.Join(options.ActivityFlags, ", --")))
			}
			err = withSession(cmd, func(ctx context.Context, s *session) error {
				_, loc, ok := itinerary.FindActivity(s.svc.Snapshot(), args[0])
				if !ok {
					return fmt.Errorf("%w: %s", itinerary.ErrActivityNotFound, args[0])
				}
				a, err := s.svc.UpdateActivity(ctx, loc.DayID, args[0], patch)
				if err != nil {
					return err
				}
				return printActivity(cmd, a)
			})
			return oo.HandleError(err)
		},
	}

	options.AddActivityArgs(cmd, ao)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for the fields not given as flags.")

	parent.AddCommand(cmd)
}

func addActivityRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <activity>...",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove activities.",
		Example: `
trip activity rm activity-3
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withSession(cmd, func(ctx context.Context, s *session) error {
				for _, id := range args {
					a, loc, ok := itinerary.FindActivity(s.svc.Snapshot(), id)
					if !ok {
						return fmt.Errorf("%w: %s", itinerary.ErrActivityNotFound, id)
					}
					if err := s.svc.DeleteActivity(ctx, loc.DayID, id); err != nil {
						return err
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", a.Title)
				}
				return nil
			})
			return oo.HandleError(err)
		},
	}
	parent.AddCommand(cmd)
}

func addActivityMove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "move <activity> <day> [position]",
		Short: "Move an activity to a day, at a 1-based position or last.",
		Example: `
trip activity move activity-2 day-2
trip activity move activity-2 day-1 1
`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			pos := 0
			if len(args) == 3 {
				var err error
				if pos, err = strconv.Atoi(args[2]); err != nil || pos < 1 {
					return fmt.Errorf("position must be a number from 1, got %q", args[2])
				}
			}
			err := withSession(cmd, func(ctx context.Context, s *session) error {
				doc := s.svc.Snapshot()
				_, loc, ok := itinerary.FindActivity(doc, args[0])
				if !ok {
					return fmt.Errorf("%w: %s", itinerary.ErrActivityNotFound, args[0])
				}
				dst := dayArg(s, args[1])
				d, ok := itinerary.FindDay(doc, dst)
				if !ok {
					return fmt.Errorf("%w: %s", itinerary.ErrDayNotFound, dst)
				}
				to := len(d.Activities)
				if pos > 0 {
					to = pos - 1
				}
				return s.svc.MoveActivity(ctx, loc.DayID, loc.Index, dst, to)
			})
			return oo.HandleError(err)
		},
	}
	parent.AddCommand(cmd)
}
