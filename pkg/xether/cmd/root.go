package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xether-ai/xether-cli/pkg/system"
	"github.com/xether-ai/xether-cli/pkg/xether/client"
	"github.com/xether-ai/xether-cli/pkg/xether/config"
	"github.com/xether-ai/xether-cli/pkg/xether/output"
)

type Config struct {
	ConfigPath   string
	DotEnvPath   string
	OutputWriter io.Writer
	ErrorWriter  io.Writer
	Input        io.Reader
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv config.LookupFunc
	// Sleep overrides the client's retry backoff sleeper.
	Sleep client.SleepFunc
}

type runtimeState struct {
	configPath           string
	dotEnvPath           string
	fileCfg              *config.Config
	cfg                  *config.Config
	outputFormat         string
	serverOverride       string
	tokenOverride        string
	tokenStorageOverride string
	caFileOverride       string
	insecureSkipVerify   bool
	nonInteractive       bool
	verbose              bool
	writer               io.Writer
	errWriter            io.Writer
	input                *bufio.Reader
	stdin                io.Reader
	lookupEnv            config.LookupFunc
	sleep                client.SleepFunc
	log                  *zap.SugaredLogger
}

type runtimeKey struct{}

func DefaultConfig() Config {
	return Config{
		ConfigPath:   config.DefaultConfigPath(),
		DotEnvPath:   config.DefaultDotEnvPath(),
		OutputWriter: os.Stdout,
		ErrorWriter:  os.Stderr,
		Input:        os.Stdin,
		LookupEnv:    os.LookupEnv,
	}
}

func NewRootCommand(cfg Config) *cobra.Command {
	rt := &runtimeState{
		configPath: cfg.ConfigPath,
		dotEnvPath: cfg.DotEnvPath,
		writer:     cfg.OutputWriter,
		errWriter:  cfg.ErrorWriter,
		stdin:      cfg.Input,
		lookupEnv:  cfg.LookupEnv,
		sleep:      cfg.Sleep,
		log:        zap.NewNop().Sugar(),
	}

	root := &cobra.Command{
		Use:           "xether",
		Short:         "Xether AI command line interface",
		Long:          "The official command-line interface for the Xether AI platform.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			rt.applyDefaults()
			if err := config.LoadDotEnv(rt.dotEnvPath); err != nil {
				return err
			}
			if !rt.nonInteractive {
				rt.nonInteractive = rt.envBool("XETHER_NON_INTERACTIVE")
			}
			if !rt.verbose {
				rt.verbose = rt.envBool(config.EnvVerbose)
			}
			rt.log = system.NewLogger(rt.errWriter, rt.verbose)

			if skipsConfigLoad(cmd) {
				return nil
			}
			return rt.loadConfig()
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	root.PersistentFlags().StringVar(&rt.configPath, "config", rt.configPath, "Path to config file")
	root.PersistentFlags().StringVarP(&rt.outputFormat, "output", "o", "", "Output format: table, wide, json, yaml")
	root.PersistentFlags().StringVar(&rt.serverOverride, "server", "", "Backend URL override")
	root.PersistentFlags().StringVar(&rt.tokenOverride, "token", "", "Bearer token override")
	root.PersistentFlags().StringVar(&rt.tokenStorageOverride, "token-storage", "", "Token storage backend: file or keychain")
	root.PersistentFlags().StringVar(&rt.caFileOverride, "ca-file", "", "PEM bundle to trust for the backend and storage")
	root.PersistentFlags().BoolVar(&rt.insecureSkipVerify, "insecure-skip-tls-verify", false, "Skip TLS certificate verification")
	root.PersistentFlags().BoolVar(&rt.nonInteractive, "non-interactive", false, "Fail instead of prompting")
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "Log requests and retries to stderr")

	root.SetContext(context.WithValue(context.Background(), runtimeKey{}, rt))

	root.AddCommand(
		NewAuthCommand(),
		NewConfigCommand(),
		NewTeamCommand(),
		NewProjectCommand(),
		NewDatasetCommand(),
		NewArtifactCommand(),
		NewPipelineCommand(),
		NewInfoCommand(),
		NewCompletionCommand(),
		NewVersionCommand(),
	)

	return root
}

// skipsConfigLoad lists commands that must run with a missing or broken
// config. config set validates only what it writes.
func skipsConfigLoad(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "completion":
		return true
	case "path", "set":
		return cmd.Parent() != nil && cmd.Parent().Name() == "config"
	}
	return false
}

func getRuntime(cmd *cobra.Command) (*runtimeState, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtimeState)
	if !ok || rt == nil {
		return nil, errors.New("runtime not initialized")
	}
	return rt, nil
}

func (rt *runtimeState) applyDefaults() {
	if rt.writer == nil {
		rt.writer = os.Stdout
	}
	if rt.errWriter == nil {
		rt.errWriter = os.Stderr
	}
	if rt.stdin == nil {
		rt.stdin = os.Stdin
	}
	if rt.input == nil {
		rt.input = bufio.NewReader(rt.stdin)
	}
	if rt.lookupEnv == nil {
		rt.lookupEnv = os.LookupEnv
	}
	if rt.configPath == "" {
		rt.configPath = rt.env(config.EnvConfigPath)
	}
	if rt.configPath == "" {
		rt.configPath = config.DefaultConfigPath()
	}
}

func (rt *runtimeState) env(key string) string {
	v, _ := rt.lookupEnv(key)
	return strings.TrimSpace(v)
}

func (rt *runtimeState) envBool(key string) bool {
	return strings.EqualFold(rt.env(key), "true") || rt.env(key) == "1"
}

// loadConfig reads the config file and layers environment variables and
// flags on top. Only fileCfg is ever written back to disk.
func (rt *runtimeState) loadConfig() error {
	fileCfg, err := config.Load(rt.configPath)
	if err != nil {
		return err
	}
	effective, err := fileCfg.WithEnv(rt.lookupEnv)
	if err != nil {
		return &ConfigError{Err: err}
	}
	if rt.serverOverride != "" {
		effective.BackendURL = rt.serverOverride
	}
	if rt.tokenOverride != "" {
		effective.AccessToken = rt.tokenOverride
	}
	if rt.outputFormat != "" {
		effective.Settings.OutputFormat = rt.outputFormat
	}
	if rt.tokenStorageOverride != "" {
		effective.Settings.TokenStorage = rt.tokenStorageOverride
	}
	if rt.caFileOverride != "" {
		effective.Settings.CAFile = rt.caFileOverride
	}
	if rt.insecureSkipVerify {
		effective.Settings.InsecureSkipTLSVerify = true
	}
	if err := effective.Validate(); err != nil {
		return &ConfigError{Err: err}
	}
	rt.fileCfg = fileCfg
	rt.cfg = effective
	return nil
}

func (rt *runtimeState) EnsureConfigLoaded() error {
	if rt.cfg != nil {
		return nil
	}
	return rt.loadConfig()
}

func (rt *runtimeState) OutputFormat() output.Format {
	if rt.outputFormat != "" {
		return output.Format(rt.outputFormat)
	}
	if rt.cfg != nil && rt.cfg.Settings.OutputFormat != "" {
		return output.Format(rt.cfg.Settings.OutputFormat)
	}
	return output.FormatTable
}

func (rt *runtimeState) PageSize() int {
	if rt.cfg != nil && rt.cfg.Settings.PageSize > 0 {
		return rt.cfg.Settings.PageSize
	}
	return config.DefaultPageSize
}

func (rt *runtimeState) Writer() io.Writer {
	if rt.writer != nil {
		return rt.writer
	}
	return os.Stdout
}

func (rt *runtimeState) println(args ...any) {
	_, _ = fmt.Fprintln(rt.Writer(), args...)
}

func (rt *runtimeState) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(rt.Writer(), format, args...)
}
