package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const completionLong = `Print a completion script for the xether CLI.

Load it in the current shell, for example:

  source <(xether completion bash)
  xether completion zsh > "${fpath[1]}/_xether"
  xether completion fish | source`

func NewCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "completion SHELL",
		Short:     "Print a shell completion script for xether",
		Long:      completionLong,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			root, w := cmd.Root(), rt.Writer()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(w)
			case "zsh":
				return root.GenZshCompletion(w)
			case "fish":
				return root.GenFishCompletion(w, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(w)
			}
			return &UsageError{Err: fmt.Errorf("unsupported shell %q (want bash, zsh, fish or powershell)", args[0])}
		},
	}
}
