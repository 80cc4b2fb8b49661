// Package cmd implements the xether command tree. Each command resolves the
// runtime state built by the root command (config file, environment and
// flag overrides), talks to the backend through pkg/xether/client and
// renders results with pkg/xether/output.
package cmd
