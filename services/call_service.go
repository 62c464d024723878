//go:generate go run go.uber.org/mock/mockgen -source=call_service.go -destination=../mocks/mock_call_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"vchat/contract"
	"vchat/domain"
	"vchat/domain/event"
	"vchat/errors"
	"vchat/observability"
	"vchat/repositories"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type ICallService interface {
	InitiateDirectCall(ctx context.Context, caller, callee domain.UserID) (string, error)
	InitiateGroupCall(ctx context.Context, caller domain.UserID, group domain.GroupID) (string, error)
	JoinCall(user domain.UserID, url string) error
	CancelCall(ctx context.Context, user domain.UserID, url string)
}

// CallService drives the call lifecycle: provisioning a room, finding or
// creating the conversation thread, appending one record per participant,
// and notifying live endpoints.
//
// Records are created as OutGoing (initiator) or Missed (invitee); the only
// transition is Missed -> InComing when the invitee joins. Notification is a
// read/notify side path: its failures never abort the persisted state.
type CallService struct {
	log      *slog.Logger
	provider contract.IRoomProvider
	router   contract.IRouter
	calls    repositories.ICallRepository
	users    repositories.IUserRepository
	groups   repositories.IGroupRepository
	metrics  *observability.Metrics
	locks    keyedMutex
}

func NewCallService(log *slog.Logger, provider contract.IRoomProvider,
	router contract.IRouter, calls repositories.ICallRepository,
	users repositories.IUserRepository, groups repositories.IGroupRepository,
	metrics *observability.Metrics) *CallService {
	return &CallService{
		log:      log,
		provider: provider,
		router:   router,
		calls:    calls,
		users:    users,
		groups:   groups,
		metrics:  metrics,
	}
}

// InitiateDirectCall provisions a room and records a 1:1 call attempt.
//
// The room is provisioned before the thread lock is taken: provisioning is a
// blocking network call and must not extend the critical section. A
// provisioning failure is fatal to the attempt and surfaced to the caller.
//
// The thread code is derived symmetrically from the pair, so repeated calls
// in either direction land on the same thread; the per-code lock guarantees
// at most one thread per pair under racing initiators.
func (s *CallService) InitiateDirectCall(ctx context.Context, caller, callee domain.UserID) (string, error) {
	url, err := s.provider.CreateRoom(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrProvisioning, err)
	}

	callerUser, err := s.users.GetByID(caller)
	if err != nil {
		s.releaseRoom(ctx, url)
		return "", err
	}
	if _, err = s.users.GetByID(callee); err != nil {
		s.releaseRoom(ctx, url)
		return "", err
	}

	code := domain.DirectThreadCode(caller, callee)
	now := time.Now().UTC()

	unlock := s.locks.Lock(code)
	thread, err := s.calls.EnsureThread(domain.CallThread{
		Code:       code,
		Kind:       domain.ThreadDirect,
		CreatedBy:  caller,
		Created:    now,
		LastActive: now,
	})
	if err == nil {
		err = s.calls.AppendRecords([]domain.CallRecord{
			newRecord(thread.Code, caller, domain.CallOutGoing, url, now),
			newRecord(thread.Code, callee, domain.CallMissed, url, now),
		})
	}
	unlock()
	if err != nil {
		s.releaseRoom(ctx, url)
		return "", err
	}

	s.metrics.CallInitiated("direct")
	// Best-effort: an offline callee simply gets a Missed record.
	s.router.SendToUser(callee, event.IncomingCall{
		URL:      url,
		FromUser: callerUser.FullName,
		Caller:   caller,
		At:       now,
	})
	return url, nil
}

// InitiateGroupCall provisions a room and records a call attempt for the
// full membership snapshot taken now: one Missed record per member plus the
// caller's OutGoing record. The thread code is the group code itself.
func (s *CallService) InitiateGroupCall(ctx context.Context, caller domain.UserID, groupID domain.GroupID) (string, error) {
	group, err := s.groups.Get(groupID)
	if err != nil {
		return "", err
	}

	url, err := s.provider.CreateRoom(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrProvisioning, err)
	}

	callerUser, err := s.users.GetByID(caller)
	if err != nil {
		s.releaseRoom(ctx, url)
		return "", err
	}

	now := time.Now().UTC()
	code := string(group.Code)

	invitees := lo.Filter(group.Members, func(member domain.UserID, _ int) bool {
		return member != caller
	})
	records := lo.Map(invitees, func(member domain.UserID, _ int) domain.CallRecord {
		return newRecord(code, member, domain.CallMissed, url, now)
	})
	records = append(records, newRecord(code, caller, domain.CallOutGoing, url, now))

	unlock := s.locks.Lock(code)
	_, err = s.calls.EnsureThread(domain.CallThread{
		Code:       code,
		Kind:       domain.ThreadGroup,
		CreatedBy:  caller,
		Created:    now,
		LastActive: now,
	})
	if err == nil {
		err = s.calls.AppendRecords(records)
	}
	unlock()
	if err != nil {
		s.releaseRoom(ctx, url)
		return "", err
	}

	s.metrics.CallInitiated("group")
	s.router.SendToGroup(group.Code, event.IncomingCall{
		URL:       url,
		FromUser:  callerUser.FullName,
		FromGroup: group.Name,
		Caller:    caller,
		At:        now,
	})
	return url, nil
}

// JoinCall flips the user's own record for this room from Missed to
// InComing. Unknown URL or an already transitioned record is an idempotent
// no-op: joining twice, or the initiator "joining" their own OutGoing
// record, changes nothing.
func (s *CallService) JoinCall(user domain.UserID, url string) error {
	record, err := s.calls.FindRecordByURL(user, url)
	if errors.Is(err, errors.ErrCallNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if record.Status != domain.CallMissed {
		return nil
	}
	record.Status = domain.CallInComing
	return s.calls.SaveRecord(record)
}

// CancelCall tears the room down, best-effort. Provider failures are logged
// and swallowed: the room expires on the provider side anyway and the
// caller-facing operation must not fail over cleanup.
func (s *CallService) CancelCall(ctx context.Context, user domain.UserID, url string) {
	if _, err := s.calls.FindRecordByURL(user, url); err != nil {
		// Not this user's call; nothing to cancel.
		return
	}
	if err := s.provider.DeleteRoom(ctx, url); err != nil {
		s.log.Warn("Room deprovisioning failed", "url", url, "error", err)
	}
}

// releaseRoom deprovisions a room that will never be joined, after the call
// attempt failed past provisioning. Best-effort: rooms expire on the provider
// side anyway, so a cleanup failure is only logged.
func (s *CallService) releaseRoom(ctx context.Context, url string) {
	if err := s.provider.DeleteRoom(ctx, url); err != nil {
		s.log.Warn("Cleanup of unused room failed", "url", url, "error", err)
	}
}

func newRecord(thread string, user domain.UserID, status domain.CallStatus,
	url string, at time.Time) domain.CallRecord {
	return domain.CallRecord{
		ID:      uuid.New(),
		Thread:  thread,
		User:    user,
		Status:  status,
		URL:     url,
		Created: at,
	}
}

// keyedMutex serializes find-or-create per thread code. Locks are created on
// first use and kept; the set of codes grows with conversations, not calls.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Lock acquires the mutex for the given code and returns its unlock func.
func (k *keyedMutex) Lock(code string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := k.locks[code]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[code] = lock
	}
	k.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
