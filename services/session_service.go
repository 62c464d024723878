//go:generate go run go.uber.org/mock/mockgen -source=session_service.go -destination=../mocks/mock_session_service.go -package=mocks
package services

import (
	"log/slog"
	"time"

	"vchat/contract"
	"vchat/domain"
	"vchat/domain/event"
	"vchat/observability"
	"vchat/repositories"
)

type ISessionService interface {
	Connect(user domain.UserID, sink contract.EventSink)
	Disconnect(user domain.UserID, sink contract.EventSink)
	Resync(user domain.UserID)
}

// SessionService ties connection lifecycle events to the registry.
// On connect it snapshots the user's group memberships from the store and
// binds endpoint and subscriptions in one step, so a group broadcast fired
// right after the connect already reaches this endpoint.
type SessionService struct {
	log      *slog.Logger
	registry contract.IRegistry
	router   contract.IRouter
	groups   repositories.IGroupRepository
	metrics  *observability.Metrics
}

func NewSessionService(log *slog.Logger, registry contract.IRegistry,
	router contract.IRouter, groups repositories.IGroupRepository,
	metrics *observability.Metrics) *SessionService {
	return &SessionService{
		log:      log,
		registry: registry,
		router:   router,
		groups:   groups,
		metrics:  metrics,
	}
}

// Connect binds the endpoint. Binding never fails: if the membership lookup
// errors, the user is still bound, only without group subscriptions, and a
// later Resync repairs them.
func (s *SessionService) Connect(user domain.UserID, sink contract.EventSink) {
	groups, err := s.groups.GroupsForUser(user)
	if err != nil {
		s.log.Warn("Membership lookup failed at bind time, binding without subscriptions",
			"user", user, "error", err)
	}
	s.registry.Bind(user, sink, groups)
	s.metrics.SessionOpened()
}

// Disconnect clears the binding for this endpoint, best-effort. The sink
// identifies which connection is going away, so a stale socket dying after
// the user reconnected leaves the fresh binding in place.
func (s *SessionService) Disconnect(user domain.UserID, sink contract.EventSink) {
	s.registry.Unbind(user, sink)
	s.metrics.SessionClosed()
}

// Resync rebuilds the user's group subscriptions from a fresh membership
// snapshot. Called after external membership changes; also exposed on its
// own so the registry's invariants stay observable.
func (s *SessionService) Resync(user domain.UserID) {
	groups, err := s.groups.GroupsForUser(user)
	if err != nil {
		s.log.Warn("Membership lookup failed during resync", "user", user, "error", err)
		return
	}
	s.registry.ResyncSubscriptions(user, groups)
	s.router.SendToUser(user, event.SubscriptionsResynced{
		Groups: groups,
		At:     time.Now().UTC(),
	})
}
