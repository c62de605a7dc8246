package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dagerber/spring-cloud-commons/message"
)

// recordingObserver tracks received events; services limits which service
// names it supports (empty = all).
type recordingObserver struct {
	name        string
	services    map[string]bool
	starts      []StartEvent
	completions []CompletionEvent
	panicOn     string // "start" or "complete"
}

func (o *recordingObserver) Supports(serviceName string) bool {
	if len(o.services) == 0 {
		return true
	}
	return o.services[serviceName]
}

func (o *recordingObserver) OnStart(e StartEvent) {
	if o.panicOn == "start" {
		panic("observer start failure")
	}
	o.starts = append(o.starts, e)
}

func (o *recordingObserver) OnComplete(e CompletionEvent) {
	if o.panicOn == "complete" {
		panic("observer complete failure")
	}
	o.completions = append(o.completions, e)
}

func TestRegistryFiltersBySupports(t *testing.T) {
	all := &recordingObserver{name: "all"}
	ordersOnly := &recordingObserver{name: "orders", services: map[string]bool{"orders": true}}

	reg := NewRegistry(all, ordersOnly)

	require.Len(t, reg.Observers("orders"), 2)
	require.Len(t, reg.Observers("billing"), 1)

	reg.Register(&recordingObserver{name: "late"})
	require.Len(t, reg.Observers("billing"), 2)
}

func TestNotifierFanOut(t *testing.T) {
	a := &recordingObserver{name: "a"}
	b := &recordingObserver{name: "b"}

	n := NewNotifier([]Observer{a, b}, zap.NewNop())
	n.NotifyStart(StartEvent{ServiceName: "orders", Request: &message.Request{Path: "/v1"}})
	n.NotifyComplete(CompletionEvent{ServiceName: "orders", Status: StatusSuccess})

	for _, o := range []*recordingObserver{a, b} {
		require.Len(t, o.starts, 1)
		require.Len(t, o.completions, 1)
		require.Equal(t, StatusSuccess, o.completions[0].Status)
	}
}

func TestNotifierIsolatesPanics(t *testing.T) {
	bad := &recordingObserver{name: "bad", panicOn: "complete"}
	good := &recordingObserver{name: "good"}

	n := NewNotifier([]Observer{bad, good}, zap.NewNop())
	require.NotPanics(t, func() {
		n.NotifyComplete(CompletionEvent{ServiceName: "orders", Status: StatusFailed})
	})
	require.Len(t, good.completions, 1, "a failing observer must not block the others")
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "SUCCESS", StatusSuccess.String())
	require.Equal(t, "FAILED", StatusFailed.String())
}
