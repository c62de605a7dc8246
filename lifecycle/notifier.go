package lifecycle

import "go.uber.org/zap"

// Notifier fans an invocation's events out to its filtered observer set.
// One observer blowing up must not block the others or the response path,
// so every callback runs under a recover and failures are only logged.
type Notifier struct {
	observers []Observer
	logger    *zap.Logger
}

func NewNotifier(observers []Observer, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{observers: observers, logger: logger}
}

func (n *Notifier) NotifyStart(e StartEvent) {
	for _, o := range n.observers {
		n.safeCall(e.ServiceName, "start", func() { o.OnStart(e) })
	}
}

func (n *Notifier) NotifyComplete(e CompletionEvent) {
	for _, o := range n.observers {
		n.safeCall(e.ServiceName, "complete", func() { o.OnComplete(e) })
	}
}

func (n *Notifier) safeCall(serviceName, event string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Warn("lifecycle observer failed",
				zap.String("service", serviceName),
				zap.String("event", event),
				zap.Any("panic", r),
			)
		}
	}()
	fn()
}
