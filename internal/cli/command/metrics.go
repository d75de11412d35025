package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/ztctl-go/internal/core/domain"
	"github.com/yndnr/ztctl-go/internal/telemetry/logger"
	"github.com/yndnr/ztctl-go/internal/telemetry/metric"
)

// MetricsCommand returns the metrics subcommand group.
func MetricsCommand() *cli.Command {
	return &cli.Command{
		Name:  "metrics",
		Usage: "Controller inventory metrics",
		Subcommands: []*cli.Command{
			{
				Name:  "export",
				Usage: "Collect network and member counts into a node_exporter textfile",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "textfile",
						Usage: "Output path (default: metrics.textfile from config)",
					},
				},
				Action: metricsExportAction,
			},
		},
	}
}

func metricsExportAction(c *cli.Context) error {
	env := GetEnv(c)

	path := c.String("textfile")
	if path == "" {
		path = env.Config.Metrics.Textfile
	}
	if path == "" {
		return domain.ErrConfig.WithDetails("metrics export needs --textfile or metrics.textfile")
	}

	ctl, err := NewController(c)
	if err != nil {
		return err
	}

	// The file is written even when collection fails so the scrape
	// failure itself is exported.
	collectErr := metric.NewCollector(ctl, env.Metrics).Collect(c.Context)
	if err := env.Metrics.WriteTextfile(path); err != nil {
		return fmt.Errorf("write textfile: %w", err)
	}
	if collectErr != nil {
		return collectErr
	}

	logger.L(c.Context).Info("metrics exported", "path", path)
	_, err = fmt.Fprintf(c.App.Writer, "Wrote %s\n", path)
	return err
}
