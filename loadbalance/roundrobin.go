package loadbalance

import (
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/dagerber/spring-cloud-commons/registry"
)

// RoundRobinBalancer distributes requests evenly across all instances in
// order, using an atomic counter for lock-free, goroutine-safe operation.
//
// Best for: stateless services where all instances have similar capacity.
type RoundRobinBalancer struct {
	counter atomic.Int64
}

// Pick selects the next instance in round-robin order. Note the list order
// comes from discovery, so "next" is only meaningful within one invocation's
// snapshot — that is fine for even spread.
func (b *RoundRobinBalancer) Pick(instances []registry.ServiceInstance) (*registry.ServiceInstance, error) {
	if len(instances) == 0 {
		return nil, errors.New("no instances available")
	}
	index := b.counter.Add(1) % int64(len(instances))
	return &instances[index], nil
}

func (b *RoundRobinBalancer) Name() string {
	return "RoundRobin"
}
