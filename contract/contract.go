//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"vchat/domain"
	"vchat/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself.
// Supervision (panic recovery, restarts) is the supervisor's job.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// Used for logging and supervision, avoiding a manual naming method on the
// Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is the live connection endpoint of one user.
// Consume must be safe to call from concurrent fan-out goroutines and must
// return quickly; a sink that cannot keep up drops the event.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IRegistry maps a user identity to its single live endpoint and keeps the
// group subscription sets consistent with it. Unbind takes the endpoint being
// torn down: a stale connection dying after a reconnect must not remove the
// fresh binding.
type IRegistry interface {
	Bind(user domain.UserID, sink EventSink, groups []domain.GroupID)
	Lookup(user domain.UserID) (EventSink, bool)
	Unbind(user domain.UserID, sink EventSink)
	ResyncSubscriptions(user domain.UserID, groups []domain.GroupID)
	SinksForGroup(group domain.GroupID) []EventSink
}

// IRouter resolves identities to endpoints and delivers events best-effort.
// Absent or dead endpoints are never an error for the caller.
type IRouter interface {
	SendToUser(user domain.UserID, e event.DomainEvent)
	SendToGroup(group domain.GroupID, e event.DomainEvent)
}

// IRoomProvider is the external video-room collaborator.
// CreateRoom is a blocking network call and may fail; DeleteRoom is
// best-effort cleanup.
type IRoomProvider interface {
	CreateRoom(ctx context.Context) (string, error)
	DeleteRoom(ctx context.Context, url string) error
}
