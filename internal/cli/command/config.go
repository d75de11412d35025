package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/yndnr/ztctl-go/internal/cli/config"
	"github.com/yndnr/ztctl-go/internal/cli/output"
	"github.com/yndnr/ztctl-go/internal/core/domain"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "CLI configuration file",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShowAction,
			},
			{
				Name:   "path",
				Usage:  "Print the configuration file path",
				Action: configPathAction,
			},
			{
				Name:      "init",
				Usage:     "Write a configuration file with default settings",
				ArgsUsage: "[FILE]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: configInitAction,
			},
		},
	}
}

func configShowAction(c *cli.Context) error {
	return Render(c, configView{GetEnv(c).Config})
}

func configPathAction(c *cli.Context) error {
	_, err := fmt.Fprintln(c.App.Writer, GetEnv(c).ConfigPath)
	return err
}

func configInitAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		path = GetEnv(c).ConfigPath
	}

	if !c.Bool("force") {
		if _, err := os.Stat(path); err == nil {
			return domain.ErrConfig.WithDetailsf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return domain.ErrConfig.WithDetails(path).WithCause(err)
		}
	}

	if err := config.Save(config.Default(), path); err != nil {
		return err
	}
	_, err := fmt.Fprintf(c.App.Writer, "Wrote %s\n", path)
	return err
}

type configView struct {
	cfg *config.CLIConfig
}

// MarshalJSON encodes the config through its YAML form so durations
// read as "10s" rather than nanoseconds.
func (v configView) MarshalJSON() ([]byte, error) {
	data, err := yaml.Marshal(v.cfg)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

func (v configView) WritePlain(w io.Writer) error {
	sources := v.cfg.Sources()
	if len(sources) == 0 {
		sources = []string{"defaults"}
	}
	for _, src := range sources {
		if _, err := fmt.Fprintf(w, "# %s\n", src); err != nil {
			return err
		}
	}
	return (&output.YAMLFormatter{}).Format(w, v)
}
