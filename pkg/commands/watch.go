package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print changes other trip commands make to the itinerary.",
		Example: `
trip watch
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := watch.Watch{Service: s.svc, Out: cmd.OutOrStdout()}
				return r.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
