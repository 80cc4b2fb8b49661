package config

import (
	"os"
	"path/filepath"
)

const (
	defaultConfigDirName = ".xether"
	defaultConfigFile    = "config.json"
	defaultDotEnvFile    = ".env"
)

func DefaultConfigPath() string {
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(defaultConfigDirName, defaultConfigFile)
	}
	return filepath.Join(home, defaultConfigDirName, defaultConfigFile)
}

func DefaultDotEnvPath() string {
	return defaultDotEnvFile
}
