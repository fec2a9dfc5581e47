package commands

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/commands/options"
	"tableflip.dev/trip/pkg/places"
	"tableflip.dev/trip/pkg/runner/search"
	"tableflip.dev/trip/pkg/snake"
)

func addSearch(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	day := ""
	pick := false

	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Search for places, optionally adding one to a day.",
		Example: `
trip search harbor
trip search old town --add day-2
trip search old town --add 2 --pick
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withSession(cmd, func(ctx context.Context, s *session) error {
				r := search.Search{
					Service: s.svc,
					Query:   strings.Join(args, " "),
					Out:     cmd.OutOrStdout(),
					ShowID:  ido.ShowID,
				}
				if day != "" {
					r.DayID = dayArg(s, day)
				}
				if pick {
					r.Pick = func(results []places.Place) (int, error) {
						return snake.PickPlace(cmd, results)
					}
				}
				if oo.JSON {
					r.Out = io.Discard
					r.DayID = ""
					if err := r.Do(ctx); err != nil {
						return err
					}
					return oo.Print(r.Results)
				}
				return r.Do(ctx)
			})
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, ido)
	cmd.Flags().StringVar(&day, "add", "", "Add a result to this day, the first unless --pick.")
	cmd.Flags().BoolVar(&pick, "pick", false, "Choose which result to add.")
	_ = cmd.RegisterFlagCompletionFunc("add", dayCompletions)

	topLevel.AddCommand(cmd)
}
