package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vchat/contract"
	"vchat/domain"
	"vchat/domain/event"
	"vchat/observability"
)

// Router resolves user and group identities to live endpoints and delivers
// events to them, best-effort. Each target is handled in its own goroutine
// with its own timeout: a slow or dead connection can neither stall sibling
// deliveries nor fail the caller.
//
// The router provides no queuing, retry, or ordering guarantee. An offline
// user simply does not receive the event.
type Router struct {
	log             *slog.Logger
	registry        contract.IRegistry
	metrics         *observability.Metrics
	deliveryTimeout time.Duration
}

func NewRouter(log *slog.Logger, registry contract.IRegistry,
	metrics *observability.Metrics, deliveryTimeout time.Duration) *Router {
	return &Router{
		log:             log,
		registry:        registry,
		metrics:         metrics,
		deliveryTimeout: deliveryTimeout,
	}
}

// SendToUser delivers to the user's current endpoint, if any.
// An absent endpoint means the user is offline; the event is dropped.
func (r *Router) SendToUser(user domain.UserID, e event.DomainEvent) {
	sink, ok := r.registry.Lookup(user)
	if !ok {
		r.log.Debug(fmt.Sprintf("User %s is offline, %s event dropped", user, e.Name()))
		r.metrics.EventDropped()
		return
	}
	go r.deliver(sink, e)
}

// SendToGroup fans the event out to every endpoint subscribed to the group.
// Partial delivery is expected: offline members are skipped silently.
func (r *Router) SendToGroup(group domain.GroupID, e event.DomainEvent) {
	for _, sink := range r.registry.SinksForGroup(group) {
		go r.deliver(sink, e)
	}
}

// deliver pushes one event to one endpoint. A panicking or failing sink is
// contained here so one broken connection cannot abort a fan-out.
func (r *Router) deliver(sink contract.EventSink, e event.DomainEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Warn("Recovered from sink panic during delivery",
				"event", e.Name(), "panic", rec)
			r.metrics.EventDropped()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), r.deliveryTimeout)
	defer cancel()

	if err := sink.Consume(ctx, e); err != nil {
		// Informational only: an unreachable endpoint is not a failure.
		r.log.Debug("Event not delivered", "event", e.Name(), "error", err)
		r.metrics.EventDropped()
		return
	}
	r.metrics.EventDelivered()
}
