package snake

import (
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/places"
)

// PickPlace lets the user choose one search result. It returns the index of
// the chosen place.
func PickPlace(cmd *cobra.Command, results []places.Place) (int, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Name | bold }} {{ .Address | green }}",
		Inactive: "   {{ .Name }} {{ .Address | cyan }}",
		Selected: "{{ .Name | bold }}",
		Details: `
--------- Place ----------
{{ .Address }}
{{ .Coordinates.Lat }}, {{ .Coordinates.Lng }}
`,
	}

	searcher := func(input string, index int) bool {
		name := strings.ReplaceAll(strings.ToLower(results[index].Name), " ", "")
		input = strings.ReplaceAll(strings.ToLower(input), " ", "")
		return strings.Contains(name, input)
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Add which place",
		Items:     results,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    NopCloser(cmd.OutOrStdout()),
	}

	i, _, err := prompt.Run()
	return i, err
}
