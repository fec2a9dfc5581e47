// Package snake fills in cobra flags interactively with promptui.
package snake

import (
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Validator checks one answer before it is set on the flag.
type Validator = func(input string) error

// PromptFlags asks for each named flag the user did not set on the command
// line and sets it from the answer. An empty answer keeps the default.
func PromptFlags(cmd *cobra.Command, validators map[string]Validator, names ...string) error {
	flags := cmd.Flags()
	for _, name := range names {
		f := flags.Lookup(name)
		if f == nil {
			return fmt.Errorf("snake: unknown flag %q", name)
		}
		if f.Changed {
			continue
		}

		var (
			answer string
			ok     bool
			err    error
		)
		switch f.Value.Type() {
		case "bool":
			answer, ok, err = PromptFlagBool(cmd, f)
		default:
			answer, ok, err = PromptFlagString(cmd, f, validators[name])
		}
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := flags.Set(name, answer); err != nil {
			return err
		}
	}
	return nil
}

// Confirm asks a yes or no question. Anything but yes is no.
func Confirm(cmd *cobra.Command, label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    NopCloser(cmd.OutOrStdout()),
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func asFlags(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return fmt.Sprintf("--%s, -%s", f.Name, f.Shorthand)
	}
	return fmt.Sprintf("--%s", f.Name)
}

var answerTemplates = &promptui.PromptTemplates{
	Prompt:  "{{ . }} : ",
	Valid:   "{{ . | green }} : ",
	Invalid: "{{ . | red }} : ",
	Success: "{{ . | bold }} : ",
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NopCloser returns a WriteCloser with a no-op Close method wrapping
// the provided Writer w.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}
