package metric

import (
	"context"
	"fmt"

	"github.com/yndnr/ztctl-go/internal/core/domain"
)

// InventorySource is the part of the controller client the collector reads.
type InventorySource interface {
	ListNetworks(ctx context.Context) ([]string, error)
	NetworkInfo(ctx context.Context, networkID string) (*domain.NetworkInfo, error)
}

// Collector collects controller inventory into a Registry.
type Collector struct {
	source   InventorySource
	registry *Registry
}

// NewCollector creates a new inventory collector.
func NewCollector(source InventorySource, registry *Registry) *Collector {
	return &Collector{source: source, registry: registry}
}

// Collect refreshes the network and member gauges. On failure the
// scrape_success gauge is set to 0 and the error is returned unchanged.
func (c *Collector) Collect(ctx context.Context) error {
	if err := c.collect(ctx); err != nil {
		c.registry.ScrapeSuccess.Set(0)
		return err
	}
	c.registry.ScrapeSuccess.Set(1)
	return nil
}

func (c *Collector) collect(ctx context.Context) error {
	networks, err := c.source.ListNetworks(ctx)
	if err != nil {
		return fmt.Errorf("list networks: %w", err)
	}
	c.registry.Networks.Set(float64(len(networks)))

	c.registry.Members.Reset()
	for _, id := range networks {
		info, err := c.source.NetworkInfo(ctx, id)
		if err != nil {
			return fmt.Errorf("network %s: %w", id, err)
		}
		authorized := info.AuthorizedCount()
		c.registry.SetMembers(id, authorized, len(info.Members)-authorized)
	}
	return nil
}
