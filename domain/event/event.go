// Package event defines the payloads pushed to live connection endpoints.
package event

import (
	"time"

	"vchat/domain"
)

// DomainEvent is anything the broadcast router can push to an endpoint.
// Name is the client-side listener the payload is addressed to.
type DomainEvent interface {
	Name() string
}

// IncomingCall notifies an invitee that a room has been provisioned for them.
// FromGroup is empty for 1:1 calls.
type IncomingCall struct {
	URL       string        `json:"url"`
	FromUser  string        `json:"incomingCallFrom"`
	FromGroup string        `json:"groupName,omitempty"`
	Caller    domain.UserID `json:"callerCode"`
	At        time.Time     `json:"at"`
}

// Name matches the listener the original web client subscribes to.
func (IncomingCall) Name() string { return "callHubListener" }

// SubscriptionsResynced is pushed to a connection after its group
// subscriptions have been rebuilt, so the client can refresh its rosters.
type SubscriptionsResynced struct {
	Groups []domain.GroupID `json:"groups"`
	At     time.Time        `json:"at"`
}

func (SubscriptionsResynced) Name() string { return "subscriptionHubListener" }
