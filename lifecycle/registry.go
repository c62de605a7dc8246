package lifecycle

import "sync"

// Registry holds the process-wide observer set. It is populated at startup
// and read-mostly afterwards: every invocation filters it once into the
// per-invocation notifier set.
type Registry struct {
	mu        sync.RWMutex
	observers []Observer
}

func NewRegistry(observers ...Observer) *Registry {
	return &Registry{observers: observers}
}

func (r *Registry) Register(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, o)
}

// Observers returns the observers supporting the given service, in
// registration order. The returned slice is a copy, so the order stays
// stable for the whole invocation even if registrations happen concurrently.
func (r *Registry) Observers(serviceName string) []Observer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	supported := make([]Observer, 0, len(r.observers))
	for _, o := range r.observers {
		if o.Supports(serviceName) {
			supported = append(supported, o)
		}
	}
	return supported
}
