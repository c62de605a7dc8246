// Package selector implements the per-call instance choice: discover the
// current instances for a service name, then let a balancing strategy pick
// one. Nothing is cached across invocations — every Choose sees the
// registry's current view.
package selector

import (
	"context"

	"github.com/pkg/errors"

	"github.com/dagerber/spring-cloud-commons/loadbalance"
	"github.com/dagerber/spring-cloud-commons/registry"
)

// ErrNoInstanceAvailable is returned when no instance can be selected for a
// service name, either because discovery failed or the service has no
// registered instances. Check with errors.Is.
var ErrNoInstanceAvailable = errors.New("no instance available")

// Selector chooses a concrete instance for a logical service name.
// metadata carries request hints (headers) that strategies may use for
// affinity; the stock strategies ignore it.
type Selector interface {
	Choose(ctx context.Context, serviceName string, metadata map[string]string) (*registry.ServiceInstance, error)
}

// RegistrySelector composes a Registry with a Balancer: discover, then pick.
type RegistrySelector struct {
	registry registry.Registry
	balancer loadbalance.Balancer
}

func NewRegistrySelector(reg registry.Registry, bal loadbalance.Balancer) *RegistrySelector {
	return &RegistrySelector{registry: reg, balancer: bal}
}

func (s *RegistrySelector) Choose(ctx context.Context, serviceName string, _ map[string]string) (*registry.ServiceInstance, error) {
	instances, err := s.registry.Discover(ctx, serviceName)
	if err != nil {
		return nil, errors.Wrapf(ErrNoInstanceAvailable, "discovering %q: %s", serviceName, err)
	}
	if len(instances) == 0 {
		return nil, errors.Wrapf(ErrNoInstanceAvailable, "service %q has no registered instances", serviceName)
	}

	instance, err := s.balancer.Pick(instances)
	if err != nil {
		return nil, errors.Wrapf(ErrNoInstanceAvailable, "%s pick for %q: %s", s.balancer.Name(), serviceName, err)
	}
	return instance, nil
}
