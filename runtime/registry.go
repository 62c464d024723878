// Package runtime holds the live-connection state of the system: which
// endpoint currently represents each user, and which endpoints listen to
// each group. It routes events but contains no call semantics.
package runtime

import (
	"sync"

	"vchat/contract"
	"vchat/domain"
)

type Set map[domain.UserID]struct{}

// Registry maps a user to its single live connection endpoint and mirrors
// group memberships as subscription sets. One endpoint per user: a reconnect
// overwrites the previous binding (last writer wins).
type Registry struct {
	mu            sync.RWMutex
	sessions      map[domain.UserID]contract.EventSink
	subscriptions map[domain.GroupID]Set
}

func NewRegistry() *Registry {
	return &Registry{
		sessions:      make(map[domain.UserID]contract.EventSink),
		subscriptions: make(map[domain.GroupID]Set),
	}
}

// Bind registers the user's live endpoint and subscribes it to every group
// of the membership set, under one lock acquisition. A group broadcast fired
// right after Bind returns therefore already sees this connection; there is
// no window where the user is bound but not subscribed.
func (r *Registry) Bind(user domain.UserID, sink contract.EventSink, groups []domain.GroupID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[user] = sink
	r.resubscribe(user, groups)
}

// Lookup resolves the user's current endpoint. The second result is false
// when the user has no live connection, which callers treat as "offline".
func (r *Registry) Lookup(user domain.UserID) (contract.EventSink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sink, ok := r.sessions[user]
	return sink, ok
}

// Unbind clears the user's binding and subscriptions on disconnect, but only
// if sink is still the current endpoint. After a reconnect the old handler
// tears down late; its unbind must not delete the fresh binding.
// Unbinding an unknown user or a superseded endpoint is a no-op.
func (r *Registry) Unbind(user domain.UserID, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sessions[user]
	if !ok || current != sink {
		return
	}
	delete(r.sessions, user)
	r.dropSubscriptions(user)
}

// ResyncSubscriptions rebuilds the user's subscription sets from a fresh
// membership snapshot. Called independently after external membership
// changes so the registry's state stays auditable.
func (r *Registry) ResyncSubscriptions(user domain.UserID, groups []domain.GroupID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[user]; !ok {
		// No live connection; nothing to subscribe.
		return
	}
	r.resubscribe(user, groups)
}

// SinksForGroup retrieves the live endpoints subscribed to a group.
// Members without a current connection are simply not in the result.
// Returns nil for an unknown or empty group.
func (r *Registry) SinksForGroup(group domain.GroupID) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.subscriptions[group]
	if !ok {
		return nil
	}
	var sinks []contract.EventSink
	for user := range members {
		if sink, exists := r.sessions[user]; exists {
			sinks = append(sinks, sink)
		}
	}
	return sinks
}

// resubscribe must be called with the write lock held.
func (r *Registry) resubscribe(user domain.UserID, groups []domain.GroupID) {
	r.dropSubscriptions(user)
	for _, group := range groups {
		if _, ok := r.subscriptions[group]; !ok {
			r.subscriptions[group] = make(Set)
		}
		r.subscriptions[group][user] = struct{}{}
	}
}

// dropSubscriptions must be called with the write lock held.
// Empty sets are removed entirely to avoid leaking group entries over time.
func (r *Registry) dropSubscriptions(user domain.UserID) {
	for group, members := range r.subscriptions {
		delete(members, user)
		if len(members) == 0 {
			delete(r.subscriptions, group)
		}
	}
}
