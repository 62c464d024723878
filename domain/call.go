// Package domain contains core concepts of the video-call system.
// Threads, records and their lifecycle rules live here.
// No storage, network, or transport logic should be added to this package.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// CallStatus is one participant's state inside a single call attempt.
// A record is created as OutGoing (the initiator) or Missed (an invitee).
// The only transition is Missed -> InComing, when the invitee joins the room.
type CallStatus string

const (
	CallOutGoing CallStatus = "OUT_GOING"
	CallMissed   CallStatus = "MISSED"
	CallInComing CallStatus = "IN_COMING"
)

// ThreadKind distinguishes 1:1 conversations from group conversations.
type ThreadKind string

const (
	ThreadDirect ThreadKind = "SINGLE"
	ThreadGroup  ThreadKind = "MULTI"
)

// CallThread groups every call attempt between the same set of participants.
// Threads are created lazily on the first attempt and never deleted.
type CallThread struct {
	Code       string
	Kind       ThreadKind
	CreatedBy  UserID
	Created    time.Time
	LastActive time.Time
}

// CallRecord is one participant's entry in a single call attempt.
// Immutable once written, except for the Missed -> InComing status flip.
type CallRecord struct {
	ID      uuid.UUID
	Thread  string
	User    UserID
	Status  CallStatus
	URL     string
	Created time.Time
}

// DirectThreadCode derives the stable code of the 1:1 thread for a pair of
// users. The pair is sorted first so that A calling B and B calling A resolve
// to the same thread.
func DirectThreadCode(a, b UserID) string {
	if b < a {
		a, b = b, a
	}
	return "s:" + string(a) + ":" + string(b)
}
