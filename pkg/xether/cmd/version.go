package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xether-ai/xether-cli/pkg/version"
	"github.com/xether-ai/xether-cli/pkg/xether/output"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the xether CLI version and build details",
		Long:  "Print the release, commit and build date of this xether binary. Use -o json or -o yaml for scripts.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			// The config file is not read for version, so only the flag counts.
			format := output.FormatTable
			if rt.outputFormat != "" {
				if format, err = output.ParseFormat(rt.outputFormat); err != nil {
					return &UsageError{Err: err}
				}
			}
			info := version.GetBuildInfo()
			if format.Structured() {
				return output.WriteObject(rt.Writer(), format, info)
			}
			rt.printf("xether %s (commit: %s, built: %s)\n", info.Version, info.GitCommit, info.BuildDate)
			return nil
		},
	}
}
