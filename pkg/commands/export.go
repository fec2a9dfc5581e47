package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/export"
	runner "tableflip.dev/trip/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	format := string(export.FormatJSON)
	path := ""

	var names []string
	for _, f := range export.Formats() {
		names = append(names, string(f))
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the itinerary as JSON, text, printable HTML or YAML.",
		Example: `
trip export
trip export --format text
trip export --format html -o ~/Desktop
trip export -f yaml -o trip.yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := runner.Export{
					Service: s.svc,
					Format:  f,
					Path:    path,
					Out:     cmd.OutOrStdout(),
				}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", format, fmt.Sprintf("One of %s.", strings.Join(names, ", ")))
	cmd.Flags().StringVarP(&path, "output", "o", "", "File or directory to write. Defaults to stdout.")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
