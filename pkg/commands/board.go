package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/runner/board"
)

func addBoard(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "board",
		Aliases: []string{"ui"},
		Short:   "Open the interactive itinerary board.",
		Long: `Open a full screen board with one column per day. Pick up activities or
whole days and drop them somewhere else, edit in place, search for places and
quick-add from templates. Changes are saved as you go. Press ? for keys.`,
		Example: `
trip board
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(cmd, func(ctx context.Context, s *session) error {
				return board.Run(ctx, s.svc)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
