package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/yndnr/ztctl-go/internal/cli/connection"
	"github.com/yndnr/ztctl-go/internal/core/domain"
	"github.com/yndnr/ztctl-go/internal/telemetry/logger"
)

// Requester issues authenticated requests to the daemon.
// connection.HTTPClient implements it.
type Requester interface {
	Get(ctx context.Context, path string) (*http.Response, error)
	Post(ctx context.Context, path string, body any) (*http.Response, error)
	Delete(ctx context.Context, path string) (*http.Response, error)
}

// ControllerConfig holds configuration for Controller.
type ControllerConfig struct {
	// Concurrency bounds parallel member detail requests (default: 4).
	Concurrency int

	// Rate limits member detail requests per second (default: 50).
	// Zero or negative disables the limit.
	Rate float64
}

// DefaultControllerConfig returns default configuration.
func DefaultControllerConfig() *ControllerConfig {
	return &ControllerConfig{
		Concurrency: 4,
		Rate:        50,
	}
}

// Controller is the typed client for the daemon's controller API.
type Controller struct {
	r           Requester
	concurrency int
	limiter     *rate.Limiter
}

// NewController creates a Controller on top of r.
func NewController(r Requester, config *ControllerConfig) *Controller {
	if config == nil {
		config = DefaultControllerConfig()
	}

	concurrency := config.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	limit := rate.Inf
	if config.Rate > 0 {
		limit = rate.Limit(config.Rate)
	}

	return &Controller{
		r:           r,
		concurrency: concurrency,
		limiter:     rate.NewLimiter(limit, concurrency),
	}
}

// GetStatus returns the daemon's node status.
func (c *Controller) GetStatus(ctx context.Context) (*domain.Status, error) {
	var status domain.Status
	if err := c.get(ctx, "/status", "get status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListNetworks returns the ids of all networks managed by the controller.
// The result is never nil.
func (c *Controller) ListNetworks(ctx context.Context) ([]string, error) {
	var ids []string
	if err := c.get(ctx, "/controller/network", "list networks", &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// GetNetwork returns the configuration of one network.
func (c *Controller) GetNetwork(ctx context.Context, networkID string) (*domain.ControllerNetwork, error) {
	if err := domain.ValidateID("network", networkID); err != nil {
		return nil, err
	}

	var network domain.ControllerNetwork
	if err := c.get(ctx, networkPath(networkID), "get network "+networkID, &network); err != nil {
		return nil, err
	}
	return &network, nil
}

// CreateNetwork creates a network. With a nil or empty id the daemon
// generates one under this node's address, which is looked up first.
// Daemon failures are always returned, never replaced by an empty network.
func (c *Controller) CreateNetwork(ctx context.Context, networkID *string) (*domain.ControllerNetwork, error) {
	target := ""
	body := &domain.ControllerNetwork{}

	if networkID == nil || *networkID == "" {
		status, err := c.GetStatus(ctx)
		if err != nil {
			return nil, fmt.Errorf("create network: %w", err)
		}
		address, ok := status.NodeAddress()
		if !ok {
			return nil, domain.ErrDecode.WithDetails("create network: status has no node address")
		}
		target = address + domain.GeneratedIDSuffix
	} else {
		if err := domain.ValidateID("network", *networkID); err != nil {
			return nil, err
		}
		target = *networkID
		body.ID = networkID
	}

	op := "create network " + target
	resp, err := c.r.Post(ctx, networkPath(target), body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var network domain.ControllerNetwork
	if err := connection.ParseResponse(resp, op, &network); err != nil {
		return nil, err
	}

	id, ok := network.NetworkID()
	if !ok {
		return nil, domain.ErrDecode.WithDetails(op + ": response has no network id")
	}
	logger.L(ctx).Info("network created", "network", id)
	return &network, nil
}

// DeleteNetwork deletes a network and returns its last configuration.
func (c *Controller) DeleteNetwork(ctx context.Context, networkID string) (*domain.ControllerNetwork, error) {
	if err := domain.ValidateID("network", networkID); err != nil {
		return nil, err
	}

	op := "delete network " + networkID
	resp, err := c.r.Delete(ctx, networkPath(networkID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var network domain.ControllerNetwork
	if err := connection.ParseResponse(resp, op, &network); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("network deleted", "network", networkID)
	return &network, nil
}

// ListNetworkMembers returns the member listing of a network keyed by
// member id. Should the daemon repeat a member id, the last occurrence wins.
func (c *Controller) ListNetworkMembers(ctx context.Context, networkID string) (map[string]domain.MemberSummary, error) {
	if err := domain.ValidateID("network", networkID); err != nil {
		return nil, err
	}

	var members map[string]domain.MemberSummary
	if err := c.get(ctx, networkPath(networkID)+"/member", "list members of "+networkID, &members); err != nil {
		return nil, err
	}
	if members == nil {
		members = map[string]domain.MemberSummary{}
	}
	return members, nil
}

// GetNetworkMember returns the full membership record of one member.
func (c *Controller) GetNetworkMember(ctx context.Context, networkID, memberID string) (*domain.Member, error) {
	if err := validateMember(networkID, memberID); err != nil {
		return nil, err
	}

	var member domain.Member
	op := fmt.Sprintf("get member %s of %s", memberID, networkID)
	if err := c.get(ctx, memberPath(networkID, memberID), op, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// AuthorizeMember sets the authorized flag of a member.
func (c *Controller) AuthorizeMember(ctx context.Context, networkID, memberID string, authorized bool) (*domain.Member, error) {
	if err := validateMember(networkID, memberID); err != nil {
		return nil, err
	}

	op := fmt.Sprintf("update member %s of %s", memberID, networkID)
	resp, err := c.r.Post(ctx, memberPath(networkID, memberID), &domain.Member{Authorized: &authorized})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var member domain.Member
	if err := connection.ParseResponse(resp, op, &member); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("member updated", "network", networkID, "member", memberID, "authorized", authorized)
	return &member, nil
}

// NetworkInfo returns a network together with the full record of every
// member, ordered by member id. Member records are fetched concurrently;
// the first failure cancels the rest and is returned.
func (c *Controller) NetworkInfo(ctx context.Context, networkID string) (*domain.NetworkInfo, error) {
	network, err := c.GetNetwork(ctx, networkID)
	if err != nil {
		return nil, err
	}

	listing, err := c.ListNetworkMembers(ctx, networkID)
	if err != nil {
		return nil, err
	}

	members, err := c.fetchMembers(ctx, networkID, domain.SortedMemberIDs(listing))
	if err != nil {
		return nil, err
	}

	return &domain.NetworkInfo{Network: network, Members: members}, nil
}

func (c *Controller) fetchMembers(ctx context.Context, networkID string, ids []string) ([]*domain.Member, error) {
	members := make([]*domain.Member, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			if err := c.limiter.Wait(gctx); err != nil {
				return fmt.Errorf("member %s: %w", id, err)
			}
			m, err := c.GetNetworkMember(gctx, networkID, id)
			if err != nil {
				return err
			}
			members[i] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *Controller) get(ctx context.Context, path, op string, target any) error {
	resp, err := c.r.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return connection.ParseResponse(resp, op, target)
}

func validateMember(networkID, memberID string) error {
	if err := domain.ValidateID("network", networkID); err != nil {
		return err
	}
	return domain.ValidateID("member", memberID)
}

func networkPath(networkID string) string {
	return "/controller/network/" + url.PathEscape(networkID)
}

func memberPath(networkID, memberID string) string {
	return networkPath(networkID) + "/member/" + url.PathEscape(memberID)
}
