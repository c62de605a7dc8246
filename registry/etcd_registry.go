// etcd-backed Registry implementation.
//
// etcd acts as the distributed phonebook for services:
//
//	Key:   /loadbalancer/{ServiceName}/{host:port}
//	Value: JSON-encoded ServiceInstance
//
// Registration uses TTL-based leases: if the owning process dies, the lease
// expires and the entry disappears on its own, so discovery never returns
// ghost instances for long.
package registry

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	clientv3 "go.etcd.io/etcd/client/v3"
)

const etcdPrefix = "/loadbalancer/"

// EtcdRegistry implements Registry on top of etcd v3.
type EtcdRegistry struct {
	client *clientv3.Client // safe for concurrent use, shared across goroutines
}

// NewEtcdRegistry connects to the given etcd endpoints.
func NewEtcdRegistry(endpoints []string) (*EtcdRegistry, error) {
	c, err := clientv3.New(clientv3.Config{
		Endpoints: endpoints,
	})
	if err != nil {
		return nil, errors.Wrap(err, "connecting to etcd")
	}
	return &EtcdRegistry{client: c}, nil
}

func key(serviceName, addr string) string {
	return etcdPrefix + serviceName + "/" + addr
}

// Register writes the instance under a TTL lease and keeps the lease alive
// in the background. The lease ID stays local to this call so that multiple
// registrations can share one EtcdRegistry without racing.
func (r *EtcdRegistry) Register(ctx context.Context, serviceName string, instance ServiceInstance, ttl int64) error {
	lease, err := r.client.Grant(ctx, ttl)
	if err != nil {
		return errors.Wrap(err, "granting lease")
	}

	val, err := json.Marshal(instance)
	if err != nil {
		return errors.Wrap(err, "encoding instance")
	}

	_, err = r.client.Put(ctx, key(serviceName, instance.Addr()), string(val), clientv3.WithLease(lease.ID))
	if err != nil {
		return errors.Wrapf(err, "registering %s/%s", serviceName, instance.Addr())
	}

	ch, err := r.client.KeepAlive(ctx, lease.ID)
	if err != nil {
		return errors.Wrap(err, "starting keepalive")
	}
	// Drain keepalive responses so the channel never fills up.
	go func() {
		for range ch {
		}
	}()
	return nil
}

// Deregister removes the instance. Called on graceful shutdown; a crashed
// process is covered by lease expiry instead.
func (r *EtcdRegistry) Deregister(ctx context.Context, serviceName string, instance ServiceInstance) error {
	_, err := r.client.Delete(ctx, key(serviceName, instance.Addr()))
	return errors.Wrapf(err, "deregistering %s/%s", serviceName, instance.Addr())
}

// Discover lists all instances currently registered under the service prefix.
func (r *EtcdRegistry) Discover(ctx context.Context, serviceName string) ([]ServiceInstance, error) {
	resp, err := r.client.Get(ctx, etcdPrefix+serviceName+"/", clientv3.WithPrefix())
	if err != nil {
		return nil, errors.Wrapf(err, "discovering %s", serviceName)
	}

	instances := make([]ServiceInstance, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var instance ServiceInstance
		if err := json.Unmarshal(kv.Value, &instance); err != nil {
			continue // skip malformed entries
		}
		instances = append(instances, instance)
	}
	return instances, nil
}

// Watch re-fetches the full instance list whenever anything under the
// service prefix changes (registration, deregistration, lease expiry).
// Server-push via etcd's Watch API, no polling.
func (r *EtcdRegistry) Watch(ctx context.Context, serviceName string) <-chan []ServiceInstance {
	ch := make(chan []ServiceInstance, 1)

	go func() {
		defer close(ch)
		watchChan := r.client.Watch(ctx, etcdPrefix+serviceName+"/", clientv3.WithPrefix())
		for range watchChan {
			// Re-fetching the list is simpler than folding individual
			// watch events into a local copy.
			instances, err := r.Discover(ctx, serviceName)
			if err != nil {
				continue
			}
			select {
			case ch <- instances:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch
}

// Close releases the underlying etcd client.
func (r *EtcdRegistry) Close() error {
	return r.client.Close()
}
