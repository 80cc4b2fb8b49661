package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/xether-ai/xether-cli/pkg/xether/auth"
	"github.com/xether-ai/xether-cli/pkg/xether/output"
	"github.com/xether-ai/xether-cli/pkg/xether/validation"
)

func NewAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands (login/logout)",
	}
	cmd.AddCommand(
		newAuthLoginCommand(),
		newAuthLogoutCommand(),
		newAuthStatusCommand(),
	)
	return cmd
}

func newAuthLoginCommand() *cobra.Command {
	var (
		email         string
		passwordStdin bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the Xether AI platform",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			apiClient, err := buildLoginClient(rt)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.errWriter, "Connecting to: %s\n", apiClient.BaseURL())
			if email == "" {
				if email, err = rt.readLine("Email: "); err != nil {
					return err
				}
			}
			if email, err = validation.Email(email); err != nil {
				return err
			}
			var password string
			if passwordStdin {
				password, err = rt.readLine("")
			} else {
				password, err = rt.readSecret("Password: ")
			}
			if err != nil {
				return err
			}

			token, err := apiClient.Auth().Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			manager, err := rt.tokenManager()
			if err != nil {
				return err
			}
			if err := manager.Store.Save(auth.FromOAuth2(token)); err != nil {
				return err
			}
			output.Success(rt.Writer(), "Successfully logged in!")
			if !token.Expiry.IsZero() {
				rt.printf("Token expires at %s\n", token.Expiry.UTC().Format(time.RFC3339))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email (prompted when omitted)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	return cmd
}

func newAuthLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of the Xether AI platform",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			manager, err := rt.tokenManager()
			if err != nil {
				return err
			}
			if err := manager.Invalidate(); err != nil {
				return err
			}
			output.Success(rt.Writer(), "Successfully logged out. Session cleared.")
			return nil
		},
	}
}

func newAuthStatusCommand() *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
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
			if !status.LoggedIn {
				rt.println("Not logged in")
				return nil
			}
			rt.printf("Logged in to %s (token from %s)\n", rt.cfg.BackendURL, status.Source)
			if !status.Expiry.IsZero() {
				state := "valid until"
				if status.Expired {
					state = "expired at"
				}
				rt.printf("Token %s %s\n", state, status.Expiry.UTC().Format(time.RFC3339))
			}
			if !remote {
				return nil
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			me, err := apiClient.Auth().Me(cmd.Context())
			if err != nil {
				return err
			}
			user := gjson.GetBytes(me, "email").String()
			if user == "" {
				user = gjson.GetBytes(me, "username").String()
			}
			rt.printf("Authenticated as %s\n", user)
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "Verify the session against the backend")
	return cmd
}
