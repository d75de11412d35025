// Package config provides CLI configuration for ztctl.
//
//   - settings.go: CLIConfig struct (~/.ztctl/cli.yaml)
//   - loader.go: loading, flag merging and saving
//
// Values are layered as defaults < file < ZTCTL_* environment < flags.
package config
