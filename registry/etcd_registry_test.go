package registry

import (
	"context"
	"testing"
	"time"
)

// Needs a local etcd on the default port; skipped otherwise.
func TestEtcdRegisterAndDiscover(t *testing.T) {
	reg, err := NewEtcdRegistry([]string{"localhost:2379"})
	if err != nil {
		t.Skipf("etcd not available: %v", err)
	}
	defer reg.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	inst1 := ServiceInstance{Host: "127.0.0.1", Port: 8001, Weight: 10}
	inst2 := ServiceInstance{Host: "127.0.0.1", Port: 8002, Weight: 5}

	if err := reg.Register(ctx, "orders", inst1, 10); err != nil {
		t.Skipf("etcd not available: %v", err)
	}
	if err := reg.Register(ctx, "orders", inst2, 10); err != nil {
		t.Fatal(err)
	}

	instances, err := reg.Discover(ctx, "orders")
	if err != nil {
		t.Fatal(err)
	}
	if len(instances) != 2 {
		t.Fatalf("expect 2 instances, got %d", len(instances))
	}

	if err := reg.Deregister(ctx, "orders", inst1); err != nil {
		t.Fatal(err)
	}

	time.Sleep(100 * time.Millisecond)

	instances, err = reg.Discover(ctx, "orders")
	if err != nil {
		t.Fatal(err)
	}
	if len(instances) != 1 {
		t.Fatalf("expect 1 instance after deregister, got %d", len(instances))
	}
	if instances[0].Addr() != inst2.Addr() {
		t.Fatalf("expect %s, got %s", inst2.Addr(), instances[0].Addr())
	}

	// Cleanup
	reg.Deregister(ctx, "orders", inst2)
}
