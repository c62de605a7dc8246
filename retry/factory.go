package retry

// Factory supplies per-service policies. A nil Policy means the service is
// never retried; a nil BackoffPolicy means retries run without delay. Both
// nils are honored by the controller rather than defaulted away, so "no
// policy configured" stays observable.
type Factory interface {
	CreateRetryPolicy(serviceName string) Policy
	CreateBackoffPolicy(serviceName string) BackoffPolicy
}

// StaticFactory hands out the same policies for every service. The zero
// value is a valid "never retry, no delay" factory.
type StaticFactory struct {
	Policy  Policy
	Backoff BackoffPolicy
}

func (f StaticFactory) CreateRetryPolicy(string) Policy { return f.Policy }

func (f StaticFactory) CreateBackoffPolicy(string) BackoffPolicy { return f.Backoff }

// FactoryFunc adapts per-service lookup functions to the Factory interface.
type FactoryFunc struct {
	PolicyFn  func(serviceName string) Policy
	BackoffFn func(serviceName string) BackoffPolicy
}

func (f FactoryFunc) CreateRetryPolicy(serviceName string) Policy {
	if f.PolicyFn == nil {
		return nil
	}
	return f.PolicyFn(serviceName)
}

func (f FactoryFunc) CreateBackoffPolicy(serviceName string) BackoffPolicy {
	if f.BackoffFn == nil {
		return nil
	}
	return f.BackoffFn(serviceName)
}
