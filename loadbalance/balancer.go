// Package loadbalance provides the strategies the instance selector uses to
// pick one endpoint from a discovered list.
//
// Three strategies are implemented:
//   - RoundRobin:      Stateless services, equal-capacity instances
//   - WeightedRandom:  Heterogeneous instances (different CPU/memory)
//   - ConsistentHash:  Stateful services requiring cache affinity
package loadbalance

import "github.com/dagerber/spring-cloud-commons/registry"

// Balancer is the interface for load balancing strategies.
// Pick runs once per attempt that needs a (re-)selection — it must be
// goroutine-safe and cheap.
type Balancer interface {
	// Pick selects one instance from the available list.
	Pick(instances []registry.ServiceInstance) (*registry.ServiceInstance, error)

	// Name returns the strategy name (for logging/debugging).
	Name() string
}
