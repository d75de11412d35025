package command

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/ztctl-go/internal/cli/repl"
	"github.com/yndnr/ztctl-go/internal/core/domain"
)

// ShellCommand returns the shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:   "shell",
		Usage:  "Start an interactive shell",
		Action: shellAction,
	}
}

func shellAction(c *cli.Context) error {
	app := c.App
	inherited := inheritedFlags(c)

	// Each line runs on a fresh App so flag state from earlier lines
	// does not leak into the next one.
	exec := func(ctx context.Context, args []string) error {
		if args[0] == "shell" {
			return domain.ErrConfig.WithDetails("already in a shell")
		}

		line := App()
		line.Reader = app.Reader
		line.Writer = app.Writer
		line.ErrWriter = app.ErrWriter
		// Errors are printed by the shell; an exit coder must not end it.
		line.ExitErrHandler = func(*cli.Context, error) {}

		argv := append([]string{app.Name}, inherited...)
		return line.RunContext(ctx, append(argv, args...))
	}

	r := repl.New(app.Reader, app.Writer, exec,
		repl.NewCompleter(commandNames(app)...),
		repl.NewHistory(repl.DefaultHistoryPath()),
	)
	return r.Run(c.Context)
}

// inheritedFlags returns the global flags given to the shell so every
// line runs with the same settings.
func inheritedFlags(c *cli.Context) []string {
	var args []string
	for _, name := range []string{"token-file", "output", "timeout", "wait", "config", "endpoint"} {
		if c.IsSet(name) {
			args = append(args, "--"+name+"="+c.String(name))
		}
	}
	if c.Bool("wide") {
		args = append(args, "--wide")
	}
	for i := 0; i < c.Count("debug"); i++ {
		args = append(args, "-d")
	}
	return args
}

func commandNames(app *cli.App) []string {
	var names []string
	for _, cmd := range app.Commands {
		if cmd.Hidden || cmd.Name == "shell" {
			continue
		}
		names = append(names, cmd.Name)
		for _, sub := range cmd.Subcommands {
			names = append(names, cmd.Name+" "+sub.Name)
		}
	}
	return names
}

