package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xether-ai/xether-cli/pkg/version"
	"github.com/xether-ai/xether-cli/pkg/xether/output"
)

func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show information about the Xether CLI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			rt.printf("%s - v%s\n", output.Bold("Xether AI CLI"), version.Version)
			rt.println("The official command-line interface for the Xether AI platform.")
			rt.printf("Backend: %s\n", rt.cfg.BackendURL)
			return nil
		},
	}
}
