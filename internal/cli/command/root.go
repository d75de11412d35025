package command

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/ztctl-go/internal/cli/config"
	"github.com/yndnr/ztctl-go/internal/cli/connection"
	"github.com/yndnr/ztctl-go/internal/cli/output"
	"github.com/yndnr/ztctl-go/internal/core/domain"
	"github.com/yndnr/ztctl-go/internal/core/service"
	"github.com/yndnr/ztctl-go/internal/infra/buildinfo"
	"github.com/yndnr/ztctl-go/internal/infra/shutdown"
	"github.com/yndnr/ztctl-go/internal/telemetry/logger"
	"github.com/yndnr/ztctl-go/internal/telemetry/metric"
)

const (
	envKey          = "env"
	shutdownTimeout = 5 * time.Second
)

// Env is the per-invocation state built by the Before hook.
type Env struct {
	Config     *config.CLIConfig
	ConfigPath string
	Metrics    *metric.Registry
	Shutdown   *shutdown.Handler
}

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:                   buildinfo.Name,
		Usage:                  "Manage networks on a local ZeroTier network controller",
		Version:                buildinfo.String(),
		Flags:                  globalFlags(),
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		Commands: []*cli.Command{
			StatusCommand(),
			ListNetworksCommand(),
			CreateNetworkCommand(),
			NetworkInfoCommand(),
			DeleteNetworkCommand(),
			ListMembersCommand(),
			MemberInfoCommand(),
			AuthorizeMemberCommand(),
			DeauthorizeMemberCommand(),
			MetricsCommand(),
			ConfigCommand(),
			ShellCommand(),
		},
		Before: before,
		After:  after,
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	var debug int
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "Increase log verbosity (-d info, -dd debug)",
			Count:   &debug,
		},
		&cli.StringFlag{
			Name:    "token-file",
			Aliases: []string{"T"},
			Usage:   "Path to the daemon auth token (default: platform location)",
			EnvVars: []string{"ZTCTL_TOKEN_PATH"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-request timeout (default: 10s)",
		},
		&cli.DurationFlag{
			Name:  "wait",
			Usage: "Wait up to this long for the token file to appear",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "CLI config file (default: ~/.ztctl/cli.yaml)",
		},
		&cli.StringFlag{
			Name:   "endpoint",
			Usage:  "Daemon base URL",
			Value:  connection.DefaultEndpoint,
			Hidden: true,
		},
	}
}

// flagOverrides maps explicitly set flags onto config keys.
func flagOverrides(c *cli.Context) map[string]any {
	flags := make(map[string]any)
	if c.IsSet("token-file") {
		flags["token.path"] = c.String("token-file")
	}
	if c.IsSet("output") {
		flags["output.format"] = c.String("output")
	}
	if c.IsSet("timeout") {
		flags["http.timeout"] = c.Duration("timeout")
	}
	if c.IsSet("wait") {
		flags["token.wait"] = c.Duration("wait")
	}
	return flags
}

func before(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"), flagOverrides(c))
	if err != nil {
		return err
	}

	level := logger.LevelForVerbosity(c.Count("debug"))
	if c.Count("debug") <= 0 && cfg.Log.Level != "" {
		// Validate already accepted it.
		level, _ = logger.ParseLevel(cfg.Log.Level)
	}

	log, err := logger.New(logger.Config{
		Level:  level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return err
	}
	logger.SetDefault(log)

	env := &Env{
		Config:     cfg,
		ConfigPath: c.String("config"),
		Metrics:    metric.Global(),
		Shutdown:   shutdown.NewHandler(shutdownTimeout),
	}
	if env.ConfigPath == "" {
		env.ConfigPath = config.DefaultConfigPath()
	}
	if path := cfg.Metrics.Textfile; path != "" {
		env.Shutdown.OnShutdown(func(ctx context.Context) error {
			return env.Metrics.WriteTextfile(path)
		})
	}
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[envKey] = env

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithLogger(ctx, log)
	ctx = logger.WithRequestID(ctx, ulid.Make().String())
	ctx = logger.WithCommand(ctx, c.Args().First())
	c.Context = ctx

	logger.L(ctx).Debug("config loaded", "path", env.ConfigPath, "timeout", cfg.HTTP.Timeout, "output", cfg.Output.Format)
	return nil
}

func after(c *cli.Context) error {
	env, ok := c.App.Metadata[envKey].(*Env)
	if !ok {
		return nil
	}
	return env.Shutdown.Run()
}

// GetEnv retrieves the invocation state from context.
func GetEnv(c *cli.Context) *Env {
	if env, ok := c.App.Metadata[envKey].(*Env); ok {
		return env
	}
	return &Env{Config: config.Default(), Metrics: metric.Global(), Shutdown: shutdown.NewHandler(shutdownTimeout)}
}

// NewController builds the controller client for one invocation: it
// locates the token, optionally waits for it, and reads it exactly once.
func NewController(c *cli.Context) (*service.Controller, error) {
	env := GetEnv(c)
	cfg := env.Config

	path, err := connection.ResolveTokenPath(cfg.Token.Path)
	if err != nil {
		return nil, err
	}

	if cfg.Token.Wait > 0 {
		if err := waitForToken(c, path, cfg.Token.Wait); err != nil {
			return nil, err
		}
	}

	client, err := connection.NewHTTPClientFromFile(path,
		connection.WithEndpoint(c.String("endpoint")),
		connection.WithTimeout(cfg.HTTP.Timeout),
		connection.WithMetrics(env.Metrics),
	)
	if err != nil {
		return nil, err
	}

	return service.NewController(client, &service.ControllerConfig{
		Concurrency: cfg.HTTP.Concurrency,
		Rate:        cfg.HTTP.Rate,
	}), nil
}

func waitForToken(c *cli.Context, path string, wait time.Duration) error {
	ctx, cancel := context.WithTimeout(c.Context, wait)
	defer cancel()

	spinner := output.NewSpinner(c.App.ErrWriter, "Waiting for "+path)
	spinner.Start()
	if err := connection.WaitForToken(ctx, path); err != nil {
		spinner.Fail("token file did not appear")
		return err
	}
	spinner.Stop()
	return nil
}

// Render writes data in the configured output format.
func Render(c *cli.Context, data any) error {
	format, err := output.ParseFormat(GetEnv(c).Config.Output.Format)
	if err != nil {
		return err
	}
	return output.NewFormatter(format, c.Bool("wide")).Format(c.App.Writer, data)
}

// requireArgs checks the positional argument count.
func requireArgs(c *cli.Context, names ...string) error {
	if c.NArg() != len(names) {
		return domain.ErrConfig.WithDetailsf("%s expects %d argument(s): %v, got %d", c.Command.Name, len(names), names, c.NArg())
	}
	return nil
}
