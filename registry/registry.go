// Package registry defines the service instance model and the registry
// capability the selector consumes: register, deregister, discover, watch.
//
// Two implementations are provided: StaticRegistry for fixed instance lists
// (and tests), and EtcdRegistry backed by etcd v3 with TTL leases.
package registry

import (
	"context"
	"net"
	"strconv"
)

// ServiceInstance describes one concrete endpoint of a logical service.
// Instances are immutable values — they are copied around after discovery,
// never mutated in place.
type ServiceInstance struct {
	Host     string
	Port     int
	Weight   int               // relative capacity, used by the weighted balancer
	Metadata map[string]string // free-form labels (zone, version, ...)
}

// Addr returns the host:port form used to dial the instance.
func (i ServiceInstance) Addr() string {
	return net.JoinHostPort(i.Host, strconv.Itoa(i.Port))
}

// Registry is the discovery capability. Implementations must be safe for
// concurrent use — Discover is called on every invocation of the client.
type Registry interface {
	Register(ctx context.Context, serviceName string, instance ServiceInstance, ttl int64) error
	Deregister(ctx context.Context, serviceName string, instance ServiceInstance) error
	Discover(ctx context.Context, serviceName string) ([]ServiceInstance, error)
	Watch(ctx context.Context, serviceName string) <-chan []ServiceInstance
}
