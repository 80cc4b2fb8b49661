package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xether-ai/xether-cli/pkg/xether/config"
	"github.com/xether-ai/xether-cli/pkg/xether/output"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
	}
	cmd.AddCommand(
		newConfigViewCommand(),
		newConfigSetCommand(),
		newConfigPathCommand(),
	)
	return cmd
}

type configView struct {
	BackendURL     string  `json:"backend_url" yaml:"backend_url"`
	LoggedIn       bool    `json:"logged_in" yaml:"logged_in"`
	RequestTimeout float64 `json:"request_timeout" yaml:"request_timeout"`
	MaxRetries     int     `json:"max_retries" yaml:"max_retries"`
	OutputFormat   string  `json:"output_format" yaml:"output_format"`
	PageSize       int     `json:"page_size" yaml:"page_size"`
	TokenStorage   string  `json:"token_storage" yaml:"token_storage"`
	CAFile         string  `json:"ca_file,omitempty" yaml:"ca_file,omitempty"`
	Path           string  `json:"path" yaml:"path"`
}

func newConfigViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "View current CLI configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			manager, err := rt.tokenManager()
			if err != nil {
				return err
			}
			status, err := manager.Status()
			if err != nil {
				return err
			}
			view := configView{
				BackendURL:     rt.cfg.BackendURL,
				LoggedIn:       status.LoggedIn,
				RequestTimeout: rt.cfg.RequestTimeout,
				MaxRetries:     rt.cfg.MaxRetries,
				OutputFormat:   rt.cfg.Settings.OutputFormat,
				PageSize:       rt.PageSize(),
				TokenStorage:   rt.cfg.TokenStorageOrDefault(),
				CAFile:         rt.cfg.Settings.CAFile,
				Path:           rt.configPath,
			}
			if format := rt.OutputFormat(); format.Structured() {
				return output.WriteObject(rt.Writer(), format, view)
			}
			rt.println(output.Bold("Current Configuration:"))
			rt.printf("Backend URL: %s\n", view.BackendURL)
			if view.LoggedIn {
				rt.printf("Status: %s\n", output.Green("Logged In"))
			} else {
				rt.printf("Status: %s\n", output.Yellow("Not Logged In"))
			}
			rt.printf("Request timeout: %gs\n", view.RequestTimeout)
			rt.printf("Max retries: %d\n", view.MaxRetries)
			rt.printf("Output format: %s\n", view.OutputFormat)
			rt.printf("Page size: %d\n", view.PageSize)
			rt.printf("Token storage: %s\n", view.TokenStorage)
			if view.CAFile != "" {
				rt.printf("CA file: %s\n", view.CAFile)
			}
			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	var (
		backendURL   string
		timeout      string
		maxRetries   string
		outputFormat string
		pageSize     string
		tokenStorage string
		caFile       string
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update CLI configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			// Edit the file as stored so environment overrides are not persisted.
			cfg, err := config.Load(rt.configPath)
			if err != nil {
				return err
			}
			var changes []string
			if backendURL != "" {
				cfg.BackendURL = backendURL
				changes = append(changes, "backend URL to: "+backendURL)
			}
			if timeout != "" {
				v, err := strconv.ParseFloat(timeout, 64)
				if err != nil {
					return &UsageError{Err: fmt.Errorf("invalid timeout %q", timeout)}
				}
				cfg.RequestTimeout = v
				changes = append(changes, "request timeout to: "+timeout)
			}
			if maxRetries != "" {
				v, err := strconv.Atoi(maxRetries)
				if err != nil {
					return &UsageError{Err: fmt.Errorf("invalid max retries %q", maxRetries)}
				}
				cfg.MaxRetries = v
				changes = append(changes, "max retries to: "+maxRetries)
			}
			if outputFormat != "" {
				cfg.Settings.OutputFormat = outputFormat
				changes = append(changes, "output format to: "+outputFormat)
			}
			if pageSize != "" {
				v, err := strconv.Atoi(pageSize)
				if err != nil {
					return &UsageError{Err: fmt.Errorf("invalid page size %q", pageSize)}
				}
				cfg.Settings.PageSize = v
				changes = append(changes, "page size to: "+pageSize)
			}
			if tokenStorage != "" {
				cfg.Settings.TokenStorage = tokenStorage
				changes = append(changes, "token storage to: "+tokenStorage)
			}
			if cmd.Flags().Changed("ca-file") {
				cfg.Settings.CAFile = caFile
				changes = append(changes, "CA file to: "+caFile)
			}
			if len(changes) == 0 {
				rt.println("No changes made. Use options like --backend-url to update config.")
				return nil
			}
			if err := cfg.Validate(); err != nil {
				return &ConfigError{Err: err}
			}
			if err := config.Save(rt.configPath, cfg); err != nil {
				return err
			}
			for _, c := range changes {
				rt.printf("Set %s\n", c)
			}
			output.Success(rt.Writer(), "Configuration updated successfully.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&backendURL, "backend-url", "b", "", "Backend API URL")
	cmd.Flags().StringVar(&timeout, "timeout", "", "Request timeout in seconds")
	cmd.Flags().StringVar(&maxRetries, "max-retries", "", "Retries for network failures")
	cmd.Flags().StringVar(&outputFormat, "output-format", "", "Default output format: table, wide, json, yaml")
	cmd.Flags().StringVar(&pageSize, "page-size", "", "Default page size for list commands")
	cmd.Flags().StringVar(&tokenStorage, "token-storage", "", "Token storage: file or keychain")
	cmd.Flags().StringVar(&caFile, "ca-file", "", "PEM bundle to trust (empty clears it)")
	return cmd
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			rt.println(rt.configPath)
			return nil
		},
	}
}
