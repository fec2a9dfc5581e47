package snake

import (
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// PromptFlagString asks for a string-like flag. ok is false when the answer
// is empty and the default is kept.
func PromptFlagString(cmd *cobra.Command, f *pflag.Flag, validate Validator) (answer string, ok bool, err error) {
	label := fmt.Sprintf("%s %s", asFlags(f), f.Usage)
	if f.DefValue != "" {
		label += fmt.Sprintf(` ["%s"]`, f.DefValue)
	}

	prompt := promptui.Prompt{
		Label:     label,
		Templates: answerTemplates,
		Validate: func(input string) error {
			if input == "" || validate == nil {
				return nil
			}
			return validate(input)
		},
		Stdin:  io.NopCloser(cmd.InOrStdin()),
		Stdout: NopCloser(cmd.OutOrStdout()),
	}

	result, err := prompt.Run()
	if err != nil {
		return "", false, err
	}
	if result == "" {
		return "", false, nil
	}
	return result, true, nil
}
