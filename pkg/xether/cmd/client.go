package cmd

import (
	"errors"

	"github.com/xether-ai/xether-cli/pkg/version"
	"github.com/xether-ai/xether-cli/pkg/xether/auth"
	"github.com/xether-ai/xether-cli/pkg/xether/client"
	"github.com/xether-ai/xether-cli/pkg/xether/config"
	"github.com/xether-ai/xether-cli/pkg/xether/transfer"
)

func userAgent() string {
	return "xether-cli/" + version.Version
}

func (rt *runtimeState) tokenManager() (*auth.Manager, error) {
	if err := rt.EnsureConfigLoaded(); err != nil {
		return nil, err
	}
	store, err := auth.NewStore(rt.cfg, rt.configPath)
	if err != nil {
		return nil, err
	}
	override := rt.tokenOverride
	if override == "" {
		override = rt.env(config.EnvAccessToken)
	}
	return &auth.Manager{Store: store, Override: override}, nil
}

func (rt *runtimeState) baseClientOptions() []client.Option {
	opts := []client.Option{
		client.WithServer(rt.cfg.BackendURL),
		client.WithUserAgent(userAgent()),
		client.WithTimeout(rt.cfg.Timeout()),
		client.WithMaxRetries(rt.cfg.MaxRetries),
		client.WithLogger(rt.log),
	}
	if rt.sleep != nil {
		opts = append(opts, client.WithSleeper(rt.sleep))
	}
	if settings := rt.cfg.Settings; settings.CAFile != "" || settings.InsecureSkipTLSVerify {
		opts = append(opts, client.WithTLSConfig(settings.CAFile, settings.InsecureSkipTLSVerify))
	}
	return opts
}

// buildClient returns an API client carrying the current session. A 401 from
// any call clears the stored session.
func buildClient(rt *runtimeState) (*client.Client, error) {
	manager, err := rt.tokenManager()
	if err != nil {
		return nil, err
	}
	token, err := manager.Token()
	if err != nil && !errors.Is(err, auth.ErrNotLoggedIn) {
		return nil, err
	}
	opts := append(rt.baseClientOptions(),
		client.WithOAuth2Token(token.OAuth2()),
		client.WithAuthFailureHandler(func() error {
			rt.cfg.ClearTokens()
			if rt.fileCfg != nil {
				rt.fileCfg.ClearTokens()
			}
			return manager.Invalidate()
		}),
	)
	return client.New(opts...)
}

// buildLoginClient returns a client without credentials or the session
// invalidation hook, so a failed login leaves the stored session alone.
func buildLoginClient(rt *runtimeState) (*client.Client, error) {
	if err := rt.EnsureConfigLoaded(); err != nil {
		return nil, err
	}
	return client.New(rt.baseClientOptions()...)
}

func (rt *runtimeState) transferClient() (*transfer.Client, error) {
	opts := []transfer.Option{transfer.WithLogger(rt.log)}
	if settings := rt.cfg.Settings; settings.CAFile != "" || settings.InsecureSkipTLSVerify {
		tlsConfig, err := client.LoadTLSConfig(settings.CAFile, settings.InsecureSkipTLSVerify)
		if err != nil {
			return nil, err
		}
		opts = append(opts, transfer.WithTLSConfig(tlsConfig))
	}
	return transfer.New(opts...), nil
}
