package selector

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/dagerber/spring-cloud-commons/loadbalance"
	"github.com/dagerber/spring-cloud-commons/registry"
)

// failingRegistry simulates a discovery backend outage.
type failingRegistry struct {
	registry.Registry
}

func (failingRegistry) Discover(context.Context, string) ([]registry.ServiceInstance, error) {
	return nil, errors.New("etcd unreachable")
}

func TestChoosePicksFromDiscovered(t *testing.T) {
	reg := registry.NewStaticRegistry()
	ctx := context.Background()
	require.NoError(t, reg.Register(ctx, "orders", registry.ServiceInstance{Host: "10.0.0.1", Port: 80}, 0))
	require.NoError(t, reg.Register(ctx, "orders", registry.ServiceInstance{Host: "10.0.0.2", Port: 80}, 0))

	sel := NewRegistrySelector(reg, &loadbalance.RoundRobinBalancer{})

	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		inst, err := sel.Choose(ctx, "orders", nil)
		require.NoError(t, err)
		seen[inst.Addr()] = true
	}
	require.Len(t, seen, 2, "round robin should rotate over both instances")
}

func TestChooseNoInstances(t *testing.T) {
	sel := NewRegistrySelector(registry.NewStaticRegistry(), &loadbalance.RoundRobinBalancer{})

	_, err := sel.Choose(context.Background(), "orders", nil)
	require.ErrorIs(t, err, ErrNoInstanceAvailable)
}

func TestChooseDiscoveryFailure(t *testing.T) {
	sel := NewRegistrySelector(failingRegistry{}, &loadbalance.RoundRobinBalancer{})

	_, err := sel.Choose(context.Background(), "orders", nil)
	require.ErrorIs(t, err, ErrNoInstanceAvailable)
	require.Contains(t, err.Error(), "etcd unreachable")
}
