package main

import (
	"fmt"
	"os"

	xethercmd "github.com/xether-ai/xether-cli/pkg/xether/cmd"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := xethercmd.DefaultConfig()
	root := xethercmd.NewRootCommand(cfg)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(cfg.ErrorWriter, xethercmd.FormatError(err))
		return xethercmd.ExitCode(err)
	}
	return xethercmd.ExitSuccess
}
