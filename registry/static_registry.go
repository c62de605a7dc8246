package registry

import (
	"context"
	"sync"
)

// StaticRegistry keeps instance lists in process memory. It serves fixed
// deployments (instances known at startup) and tests. Read-mostly: Discover
// takes a shared lock, so many invocations can resolve concurrently.
type StaticRegistry struct {
	mu       sync.RWMutex
	services map[string][]ServiceInstance
	watchers map[string][]chan []ServiceInstance
}

func NewStaticRegistry() *StaticRegistry {
	return &StaticRegistry{
		services: make(map[string][]ServiceInstance),
		watchers: make(map[string][]chan []ServiceInstance),
	}
}

// Register adds an instance to the service's list. The ttl is ignored —
// static entries live until deregistered.
func (r *StaticRegistry) Register(_ context.Context, serviceName string, instance ServiceInstance, _ int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[serviceName] = append(r.services[serviceName], instance)
	r.notifyLocked(serviceName)
	return nil
}

func (r *StaticRegistry) Deregister(_ context.Context, serviceName string, instance ServiceInstance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.services[serviceName][:0]
	for _, in := range r.services[serviceName] {
		if in.Addr() != instance.Addr() {
			kept = append(kept, in)
		}
	}
	r.services[serviceName] = kept
	r.notifyLocked(serviceName)
	return nil
}

// Discover returns a copy of the current instance list. The copy keeps
// callers from observing later Register/Deregister calls mid-invocation.
func (r *StaticRegistry) Discover(_ context.Context, serviceName string) ([]ServiceInstance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]ServiceInstance(nil), r.services[serviceName]...), nil
}

// Watch emits the full instance list after every change. The channel is
// closed when ctx is cancelled.
func (r *StaticRegistry) Watch(ctx context.Context, serviceName string) <-chan []ServiceInstance {
	ch := make(chan []ServiceInstance, 1)

	r.mu.Lock()
	r.watchers[serviceName] = append(r.watchers[serviceName], ch)
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.mu.Lock()
		kept := r.watchers[serviceName][:0]
		for _, w := range r.watchers[serviceName] {
			if w != ch {
				kept = append(kept, w)
			}
		}
		r.watchers[serviceName] = kept
		r.mu.Unlock()
		close(ch)
	}()

	return ch
}

// notifyLocked delivers the current list without blocking on slow watchers:
// a watcher that has not drained the previous snapshot just gets the newest
// one. Runs under r.mu, which also serializes against watcher close.
func (r *StaticRegistry) notifyLocked(serviceName string) {
	snapshot := append([]ServiceInstance(nil), r.services[serviceName]...)
	for _, w := range r.watchers[serviceName] {
		select {
		case w <- snapshot:
		default:
			select {
			case <-w:
			default:
			}
			select {
			case w <- snapshot:
			default:
			}
		}
	}
}
