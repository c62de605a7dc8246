package retry

import "github.com/dagerber/spring-cloud-commons/registry"

// Context is the per-invocation retry state. It is owned by exactly one
// in-flight invocation and must not be shared across goroutines.
type Context struct {
	ServiceName string

	// Attempts counts executed attempts, starting at 0 and incremented by
	// NextAttempt before each one. Never decremented.
	Attempts int

	// InstanceAttempts counts attempts against the currently bound
	// instance; Bind resets it.
	InstanceAttempts int

	// Instance is the endpoint the next attempt will target. Nil until the
	// first selection.
	Instance *registry.ServiceInstance

	// LastOutcome is the most recent failure, consulted by policies and
	// wrapped into the terminal error when the budget runs out.
	LastOutcome *Outcome
}

func NewContext(serviceName string) *Context {
	return &Context{ServiceName: serviceName}
}

// Bind targets the given instance for subsequent attempts.
func (c *Context) Bind(instance *registry.ServiceInstance) {
	c.Instance = instance
	c.InstanceAttempts = 0
}

// NextAttempt advances both attempt counters.
func (c *Context) NextAttempt() {
	c.Attempts++
	c.InstanceAttempts++
}

// Record stores the outcome of the attempt that just ran.
func (c *Context) Record(o Outcome) {
	c.LastOutcome = &o
}
