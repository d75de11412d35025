package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/ztctl-go/internal/core/domain"
	"github.com/yndnr/ztctl-go/internal/infra/confloader"
)

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".ztctl", "cli.yaml")
	}
	return filepath.Join(homeDir, ".ztctl", "cli.yaml")
}

// Load loads CLI configuration. An empty path means the default location,
// which may be absent; an explicit path must exist. flags holds dotted-key
// overrides collected from the command line.
func Load(path string, flags map[string]any) (*CLIConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	opts := []confloader.Option{confloader.WithFlags(flags)}
	switch _, err := os.Stat(path); {
	case err == nil:
		opts = append(opts, confloader.WithConfigFile(path))
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, domain.ErrConfig.WithDetails("config file " + path).WithCause(err)
	}

	cfg := Default()
	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, domain.ErrConfig.WithDetails(path).WithCause(err)
	}
	cfg.sources = loader.Sources()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML to path, creating the directory if needed.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
