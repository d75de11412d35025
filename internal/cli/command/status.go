package command

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/ztctl-go/internal/core/domain"
)

// StatusCommand returns the status command.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show the controller node's version, address and port",
		Action: statusAction,
	}
}

func statusAction(c *cli.Context) error {
	ctl, err := NewController(c)
	if err != nil {
		return err
	}

	status, err := ctl.GetStatus(c.Context)
	if err != nil {
		return err
	}
	return Render(c, statusView{status})
}

type statusView struct {
	status *domain.Status
}

func (v statusView) Unwrap() any { return v.status }

func (v statusView) WritePlain(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Version: %s\n", v.status.VersionString()); err != nil {
		return err
	}
	addr, _ := v.status.NodeAddress()
	if _, err := fmt.Fprintf(w, "Address: %s\n", addr); err != nil {
		return err
	}
	if port, ok := v.status.PrimaryPort(); ok {
		if _, err := fmt.Fprintf(w, "Port: %d\n", port); err != nil {
			return err
		}
	}
	return nil
}
