package command

import (
	"fmt"
	"io"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/ztctl-go/internal/core/domain"
)

// ListNetworksCommand returns the list-networks command.
func ListNetworksCommand() *cli.Command {
	return &cli.Command{
		Name:    "list-networks",
		Aliases: []string{"ls"},
		Usage:   "List the networks managed by this controller",
		Action:  listNetworksAction,
	}
}

// CreateNetworkCommand returns the create-network command.
func CreateNetworkCommand() *cli.Command {
	return &cli.Command{
		Name:      "create-network",
		Usage:     "Create a network, generating its id when none is given",
		ArgsUsage: "[NETWORK_ID]",
		Action:    createNetworkAction,
	}
}

// NetworkInfoCommand returns the network-info command.
func NetworkInfoCommand() *cli.Command {
	return &cli.Command{
		Name:      "network-info",
		Usage:     "Show a network and the authorization state of its members",
		ArgsUsage: "NETWORK_ID",
		Action:    networkInfoAction,
	}
}

// DeleteNetworkCommand returns the delete-network command.
func DeleteNetworkCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete-network",
		Usage:     "Delete a network",
		ArgsUsage: "NETWORK_ID",
		Action:    deleteNetworkAction,
	}
}

func listNetworksAction(c *cli.Context) error {
	ctl, err := NewController(c)
	if err != nil {
		return err
	}

	networks, err := ctl.ListNetworks(c.Context)
	if err != nil {
		return err
	}
	return Render(c, networkListView(networks))
}

func createNetworkAction(c *cli.Context) error {
	if c.NArg() > 1 {
		return requireArgs(c, "NETWORK_ID")
	}

	ctl, err := NewController(c)
	if err != nil {
		return err
	}

	var id *string
	if c.NArg() == 1 {
		arg := c.Args().First()
		id = &arg
	}

	network, err := ctl.CreateNetwork(c.Context, id)
	if err != nil {
		return err
	}
	return Render(c, networkIDView{network})
}

func networkInfoAction(c *cli.Context) error {
	if err := requireArgs(c, "NETWORK_ID"); err != nil {
		return err
	}

	ctl, err := NewController(c)
	if err != nil {
		return err
	}

	info, err := ctl.NetworkInfo(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	return Render(c, networkInfoView{info})
}

func deleteNetworkAction(c *cli.Context) error {
	if err := requireArgs(c, "NETWORK_ID"); err != nil {
		return err
	}

	ctl, err := NewController(c)
	if err != nil {
		return err
	}

	nwid := c.Args().First()
	network, err := ctl.DeleteNetwork(c.Context, nwid)
	if err != nil {
		return err
	}
	return Render(c, deletedNetworkView{id: nwid, network: network})
}

type networkListView []string

func (v networkListView) Unwrap() any { return []string(v) }

func (v networkListView) WritePlain(w io.Writer) error {
	if len(v) == 0 {
		_, err := fmt.Fprintln(w, "There are no networks")
		return err
	}
	if _, err := fmt.Fprintln(w, "This controller has the following networks:"); err != nil {
		return err
	}
	for _, id := range v {
		if _, err := fmt.Fprintf(w, "- %s\n", id); err != nil {
			return err
		}
	}
	return nil
}

type networkIDView struct {
	network *domain.ControllerNetwork
}

func (v networkIDView) Unwrap() any { return v.network }

func (v networkIDView) WritePlain(w io.Writer) error {
	id, _ := v.network.NetworkID()
	_, err := fmt.Fprintf(w, "Network ID is: %s\n", id)
	return err
}

type networkInfoView struct {
	info *domain.NetworkInfo
}

func (v networkInfoView) Unwrap() any { return v.info }

func (v networkInfoView) WritePlain(w io.Writer) error {
	if err := (networkIDView{v.info.Network}).WritePlain(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Members:"); err != nil {
		return err
	}
	for _, m := range v.info.Members {
		if _, err := fmt.Fprintf(w, "- %s: authorized = %s\n", m.MemberID(), strconv.FormatBool(m.IsAuthorized())); err != nil {
			return err
		}
	}
	return nil
}

type deletedNetworkView struct {
	id      string
	network *domain.ControllerNetwork
}

func (v deletedNetworkView) Unwrap() any { return v.network }

func (v deletedNetworkView) WritePlain(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Deleted network %s\n", v.id)
	return err
}
