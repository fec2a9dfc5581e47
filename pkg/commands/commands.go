package commands

import (
	"io"
	"log"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/commands/options"
)

var (
	oo      = &options.OutputOptions{}
	verbose bool
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "trip",
		Short: options.Wrap80("Plan a trip day by day on the command line."),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetFlags(log.Ltime | log.Lshortfile)
				log.SetPrefix("trip: ")
				return
			}
			log.SetOutput(io.Discard)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log autosave and store activity to stderr.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addShow(topLevel)
	addSummary(topLevel)
	addDay(topLevel)
	addActivity(topLevel)
	addStart(topLevel)
	addWeather(topLevel)
	addSearch(topLevel)
	addExport(topLevel)
	addTheme(topLevel)
	addReset(topLevel)
	addBoard(topLevel)
	addWatch(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
	addUpgrade(topLevel)
}
