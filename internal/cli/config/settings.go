package config

import (
	"time"

	"github.com/yndnr/ztctl-go/internal/core/domain"
	"github.com/yndnr/ztctl-go/internal/telemetry/logger"
)

// Output formats accepted by output.format.
var outputFormats = map[string]bool{"table": true, "json": true, "yaml": true}

// CLIConfig is the configuration for ztctl.
type CLIConfig struct {
	Token   TokenConfig   `koanf:"token" yaml:"token" json:"token"`
	HTTP    HTTPConfig    `koanf:"http" yaml:"http" json:"http"`
	Output  OutputConfig  `koanf:"output" yaml:"output" json:"output"`
	Log     LogConfig     `koanf:"log" yaml:"log" json:"log"`
	Metrics MetricsConfig `koanf:"metrics" yaml:"metrics" json:"metrics"`

	sources []string
}

// Sources lists where the loaded values came from, lowest priority first.
// It is empty for a config built from defaults alone.
func (c *CLIConfig) Sources() []string {
	return c.sources
}

// TokenConfig locates the daemon's auth token.
type TokenConfig struct {
	// Path overrides the platform default token file.
	Path string `koanf:"path" yaml:"path" json:"path"`
	// Wait is how long to wait for the token file to appear. Zero disables waiting.
	Wait time.Duration `koanf:"wait" yaml:"wait" json:"wait"`
}

// HTTPConfig tunes requests to the daemon.
type HTTPConfig struct {
	Timeout     time.Duration `koanf:"timeout" yaml:"timeout" json:"timeout"`
	Concurrency int           `koanf:"concurrency" yaml:"concurrency" json:"concurrency"`
	Rate        float64       `koanf:"rate" yaml:"rate" json:"rate"`
}

// OutputConfig selects the output format.
type OutputConfig struct {
	Format string `koanf:"format" yaml:"format" json:"format"` // table, json, yaml
}

// LogConfig configures diagnostic logging on stderr.
type LogConfig struct {
	Format string `koanf:"format" yaml:"format" json:"format"` // text, json
	// Level applies when no -d flag is given; empty means warn.
	Level string `koanf:"level" yaml:"level" json:"level"`
}

// MetricsConfig configures metric export.
type MetricsConfig struct {
	// Textfile is written after every command when set.
	Textfile string `koanf:"textfile" yaml:"textfile" json:"textfile"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		HTTP: HTTPConfig{
			Timeout:     10 * time.Second,
			Concurrency: 4,
			Rate:        50,
		},
		Output: OutputConfig{Format: "table"},
		Log:    LogConfig{Format: "text"},
	}
}

// Validate checks the configuration for invalid values.
func (c *CLIConfig) Validate() error {
	if !outputFormats[c.Output.Format] {
		return domain.ErrConfig.WithDetailsf("unknown output format %q (want table, json or yaml)", c.Output.Format)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return domain.ErrConfig.WithDetailsf("unknown log format %q (want text or json)", c.Log.Format)
	}
	if c.Log.Level != "" {
		if _, err := logger.ParseLevel(c.Log.Level); err != nil {
			return domain.ErrConfig.WithDetails("log.level").WithCause(err)
		}
	}
	if c.HTTP.Timeout <= 0 {
		return domain.ErrConfig.WithDetailsf("http.timeout must be positive, got %s", c.HTTP.Timeout)
	}
	if c.HTTP.Concurrency < 1 {
		return domain.ErrConfig.WithDetailsf("http.concurrency must be at least 1, got %d", c.HTTP.Concurrency)
	}
	if c.HTTP.Rate < 0 {
		return domain.ErrConfig.WithDetailsf("http.rate must not be negative, got %g", c.HTTP.Rate)
	}
	if c.Token.Wait < 0 {
		return domain.ErrConfig.WithDetailsf("token.wait must not be negative, got %s", c.Token.Wait)
	}
	return nil
}
