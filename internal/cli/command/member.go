package command

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/ztctl-go/internal/cli/output"
	"github.com/yndnr/ztctl-go/internal/core/domain"
)

// ListMembersCommand returns the list-members command.
func ListMembersCommand() *cli.Command {
	return &cli.Command{
		Name:      "list-members",
		Usage:     "List the members of a network",
		ArgsUsage: "NETWORK_ID",
		Action:    listMembersAction,
	}
}

// MemberInfoCommand returns the member-info command.
func MemberInfoCommand() *cli.Command {
	return &cli.Command{
		Name:      "member-info",
		Usage:     "Show one member of a network",
		ArgsUsage: "NETWORK_ID MEMBER_ID",
		Action:    memberInfoAction,
	}
}

// AuthorizeMemberCommand returns the authorize-member command.
func AuthorizeMemberCommand() *cli.Command {
	return &cli.Command{
		Name:      "authorize-member",
		Usage:     "Authorize a member to join a private network",
		ArgsUsage: "NETWORK_ID MEMBER_ID",
		Action:    setAuthorizedAction(true),
	}
}

// DeauthorizeMemberCommand returns the deauthorize-member command.
func DeauthorizeMemberCommand() *cli.Command {
	return &cli.Command{
		Name:      "deauthorize-member",
		Usage:     "Revoke a member's authorization",
		ArgsUsage: "NETWORK_ID MEMBER_ID",
		Action:    setAuthorizedAction(false),
	}
}

func listMembersAction(c *cli.Context) error {
	if err := requireArgs(c, "NETWORK_ID"); err != nil {
		return err
	}

	ctl, err := NewController(c)
	if err != nil {
		return err
	}

	members, err := ctl.ListNetworkMembers(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	return Render(c, memberListView(members))
}

func memberInfoAction(c *cli.Context) error {
	if err := requireArgs(c, "NETWORK_ID", "MEMBER_ID"); err != nil {
		return err
	}

	ctl, err := NewController(c)
	if err != nil {
		return err
	}

	member, err := ctl.GetNetworkMember(c.Context, c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}
	return Render(c, memberView{member})
}

func setAuthorizedAction(authorized bool) cli.ActionFunc {
	return func(c *cli.Context) error {
		if err := requireArgs(c, "NETWORK_ID", "MEMBER_ID"); err != nil {
			return err
		}

		ctl, err := NewController(c)
		if err != nil {
			return err
		}

		member, err := ctl.AuthorizeMember(c.Context, c.Args().Get(0), c.Args().Get(1), authorized)
		if err != nil {
			return err
		}
		return Render(c, memberView{member})
	}
}

type memberListView map[string]domain.MemberSummary

func (v memberListView) Unwrap() any { return map[string]domain.MemberSummary(v) }

func (v memberListView) Table(bool) *output.Table {
	t := output.NewTable("MEMBER ID", "REVISION")
	for _, id := range domain.SortedMemberIDs(v) {
		rev := ""
		if r, ok := v[id].Revision(); ok {
			rev = strconv.FormatInt(r, 10)
		}
		t.AddRow(id, rev)
	}
	return t
}

type memberView struct {
	member *domain.Member
}

func (v memberView) Unwrap() any { return v.member }

func (v memberView) WritePlain(w io.Writer) error {
	lines := []string{
		"Member ID is: " + v.member.MemberID(),
		"Authorized: " + strconv.FormatBool(v.member.IsAuthorized()),
	}
	if len(v.member.IPAssignments) > 0 {
		lines = append(lines, "IP assignments: "+strings.Join(v.member.IPAssignments, ", "))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
