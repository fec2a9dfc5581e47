package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/snake"
	"tableflip.dev/trip/pkg/store"
)

var confirm = snake.Confirm

func addTheme(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "theme [light|dark]",
		Short: "Show or set the board theme.",
		Example: `
trip theme
trip theme dark
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(store.ThemeLight), string(store.ThemeDark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withSession(cmd, func(ctx context.Context, s *session) error {
				if len(args) == 1 {
					t, err := store.ParseTheme(args[0])
					if err != nil {
						return err
					}
					return s.svc.SetTheme(ctx, t)
				}
				t, err := s.svc.Theme(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), t)
				return nil
			})
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}

func addReset(topLevel *cobra.Command) {
	yes := false

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Throw away the itinerary and start over from the sample trip.",
		Example: `
trip reset
trip reset --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if !yes {
				ok, err := confirm(cmd, "Delete the saved itinerary and theme")
				if err != nil || !ok {
					return err
				}
			}
			err := withSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.svc.Reset(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Itinerary reset to the sample trip")
				return nil
			})
			return oo.HandleError(err)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation.")

	topLevel.AddCommand(cmd)
}
