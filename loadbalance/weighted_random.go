package loadbalance

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/dagerber/spring-cloud-commons/registry"
)

// WeightedRandomBalancer picks instances with probability proportional to
// their Weight. Instances with no weight set fall back to uniform random.
type WeightedRandomBalancer struct{}

func (b *WeightedRandomBalancer) Pick(instances []registry.ServiceInstance) (*registry.ServiceInstance, error) {
	if len(instances) == 0 {
		return nil, errors.New("no instances available")
	}

	totalWeight := 0
	for _, in := range instances {
		totalWeight += in.Weight
	}
	if totalWeight <= 0 {
		return &instances[rand.Intn(len(instances))], nil
	}

	r := rand.Intn(totalWeight)
	for i := range instances {
		r -= instances[i].Weight
		if r < 0 {
			return &instances[i], nil
		}
	}

	return nil, errors.New("unexpected error in weighted random selection")
}

func (b *WeightedRandomBalancer) Name() string {
	return "WeightedRandom"
}
