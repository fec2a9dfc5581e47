package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where the itinerary is stored.",
		Example: `
trip info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withSession(cmd, func(ctx context.Context, s *session) error {
				r := info.Info{
					Settings: s.settings,
					Service:  s.svc,
					Out:      cmd.OutOrStdout(),
				}
				return r.Do(ctx)
			})
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
