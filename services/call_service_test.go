package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"vchat/domain"
	"vchat/errors"
	"vchat/mocks"
	"vchat/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// callFixture wires a CallService against real Badger repositories and mocked
// room provider and router, with three registered accounts.
type callFixture struct {
	svc      *CallService
	calls    repositories.CallRepository
	provider *mocks.MockIRoomProvider
	router   *mocks.MockIRouter
	groups   repositories.GroupRepository
	alice    domain.UserID
	bob      domain.UserID
	clara    domain.UserID
}

func newCallFixture(t *testing.T, ctrl *gomock.Controller) *callFixture {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	log := slog.Default()
	users := repositories.NewUserRepository(db)
	groups := repositories.NewGroupRepository(db)
	calls := repositories.NewCallRepository(db, log)
	provider := mocks.NewMockIRoomProvider(ctrl)
	router := mocks.NewMockIRouter(ctrl)

	f := &callFixture{
		svc:      NewCallService(log, provider, router, calls, users, groups, nil),
		calls:    calls,
		provider: provider,
		router:   router,
		groups:   groups,
	}
	f.alice, err = users.CreateUser("alice@example.com", "Alice Doe", "hash")
	req.NoError(err)
	f.bob, err = users.CreateUser("bob@example.com", "Bob Roe", "hash")
	req.NoError(err)
	f.clara, err = users.CreateUser("clara@example.com", "Clara Poe", "hash")
	req.NoError(err)
	return f
}

func countByStatus(records []domain.CallRecord, status domain.CallStatus) int {
	count := 0
	for _, record := range records {
		if record.Status == status {
			count++
		}
	}
	return count
}

func TestCallService_InitiateDirectCall(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newCallFixture(t, ctrl)

	url := "https://v.example/r/abc"
	f.provider.EXPECT().CreateRoom(gomock.Any()).Return(url, nil).Times(1)
	f.router.EXPECT().SendToUser(f.bob, gomock.Any()).Times(1)

	// When alice calls bob
	got, err := f.svc.InitiateDirectCall(context.Background(), f.alice, f.bob)
	req.NoError(err)
	req.Equal(url, got)

	// Then the pair thread exists with the symmetric code
	code := domain.DirectThreadCode(f.alice, f.bob)
	thread, err := f.calls.GetThread(code)
	req.NoError(err)
	req.Equal(domain.ThreadDirect, thread.Kind)
	req.Equal(f.alice, thread.CreatedBy)

	// And exactly two records share the room URL: caller OutGoing, callee Missed
	records, err := f.calls.RecordsForThread(code)
	req.NoError(err)
	req.Len(records, 2)
	for _, record := range records {
		req.Equal(url, record.URL)
	}
	req.Equal(1, countByStatus(records, domain.CallOutGoing))
	req.Equal(1, countByStatus(records, domain.CallMissed))
}

func TestCallService_Direct_Calls_Are_Symmetric(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newCallFixture(t, ctrl)

	f.provider.EXPECT().CreateRoom(gomock.Any()).Return("https://v.example/r/1", nil)
	f.provider.EXPECT().CreateRoom(gomock.Any()).Return("https://v.example/r/2", nil)
	f.router.EXPECT().SendToUser(gomock.Any(), gomock.Any()).Times(2)

	// When alice calls bob, then bob calls alice back
	_, err := f.svc.InitiateDirectCall(context.Background(), f.alice, f.bob)
	req.NoError(err)
	_, err = f.svc.InitiateDirectCall(context.Background(), f.bob, f.alice)
	req.NoError(err)

	// Then both attempts landed on the same thread
	records, err := f.calls.RecordsForThread(domain.DirectThreadCode(f.bob, f.alice))
	req.NoError(err)
	req.Len(records, 4)

	// And each attempt has exactly one initiator record
	req.Equal(2, countByStatus(records, domain.CallOutGoing))
	req.Equal(2, countByStatus(records, domain.CallMissed))
}

func TestCallService_Provisioning_Failure_Is_Fatal(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newCallFixture(t, ctrl)

	f.provider.EXPECT().CreateRoom(gomock.Any()).
		Return("", fmt.Errorf("daily: 503")).Times(1)
	f.router.EXPECT().SendToUser(gomock.Any(), gomock.Any()).Times(0)

	// When room provisioning fails
	_, err := f.svc.InitiateDirectCall(context.Background(), f.alice, f.bob)

	// Then the attempt surfaces the failure and nothing was recorded
	req.ErrorIs(err, errors.ErrProvisioning)
	_, err = f.calls.GetThread(domain.DirectThreadCode(f.alice, f.bob))
	req.ErrorIs(err, errors.ErrThreadNotFound)
}

func TestCallService_Unknown_Callee(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newCallFixture(t, ctrl)

	f.provider.EXPECT().CreateRoom(gomock.Any()).Return("https://v.example/r/abc", nil).Times(1)
	f.router.EXPECT().SendToUser(gomock.Any(), gomock.Any()).Times(0)

	// The already provisioned room is released, not leaked
	f.provider.EXPECT().DeleteRoom(gomock.Any(), "https://v.example/r/abc").Return(nil).Times(1)

	_, err := f.svc.InitiateDirectCall(context.Background(), f.alice, domain.UserID("ghost"))
	req.ErrorIs(err, errors.ErrUserNotFound)
}

func TestCallService_JoinCall_Tolerates_Wrapped_NotFound(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	calls := mocks.NewMockICallRepository(ctrl)
	svc := NewCallService(slog.Default(), mocks.NewMockIRoomProvider(ctrl),
		mocks.NewMockIRouter(ctrl), calls, nil, nil, nil)

	user := domain.UserID("alice")
	url := "https://v.example/r/ghost"

	// Given the repository wraps its not-found sentinel with context
	calls.EXPECT().FindRecordByURL(user, url).
		Return(domain.CallRecord{}, fmt.Errorf("index lookup: %w", errors.ErrCallNotFound)).
		Times(1)
	calls.EXPECT().SaveRecord(gomock.Any()).Times(0)

	// Then the join is still recognized as a no-op, not an error
	req.NoError(svc.JoinCall(user, url))
}

func TestCallService_InitiateGroupCall(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newCallFixture(t, ctrl)

	group := domain.Group{
		Code:      domain.GroupID("g:team"),
		Name:      "Team",
		CreatedBy: f.alice,
		Members:   []domain.UserID{f.alice, f.bob, f.clara},
		Created:   time.Now().UTC(),
	}
	req.NoError(f.groups.Save(group))

	url := "https://v.example/r/team"
	f.provider.EXPECT().CreateRoom(gomock.Any()).Return(url, nil).Times(1)
	f.router.EXPECT().SendToGroup(group.Code, gomock.Any()).Times(1)

	// When alice calls the three-member group
	got, err := f.svc.InitiateGroupCall(context.Background(), f.alice, group.Code)
	req.NoError(err)
	req.Equal(url, got)

	// Then one record per member: caller OutGoing, both others Missed
	records, err := f.calls.RecordsForThread(string(group.Code))
	req.NoError(err)
	req.Len(records, 3)
	req.Equal(1, countByStatus(records, domain.CallOutGoing))
	req.Equal(2, countByStatus(records, domain.CallMissed))

	thread, err := f.calls.GetThread(string(group.Code))
	req.NoError(err)
	req.Equal(domain.ThreadGroup, thread.Kind)
}

func TestCallService_Group_Not_Found(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newCallFixture(t, ctrl)

	// No room may be provisioned for a group that doesn't exist
	f.provider.EXPECT().CreateRoom(gomock.Any()).Times(0)

	_, err := f.svc.InitiateGroupCall(context.Background(), f.alice, domain.GroupID("g:ghost"))
	req.ErrorIs(err, errors.ErrGroupNotFound)
}

func TestCallService_JoinCall(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newCallFixture(t, ctrl)

	url := "https://v.example/r/abc"
	f.provider.EXPECT().CreateRoom(gomock.Any()).Return(url, nil).Times(1)
	f.router.EXPECT().SendToUser(f.bob, gomock.Any()).Times(1)

	_, err := f.svc.InitiateDirectCall(context.Background(), f.alice, f.bob)
	req.NoError(err)

	t.Run("flips the invitee's record from Missed to InComing", func(t *testing.T) {
		req.NoError(f.svc.JoinCall(f.bob, url))

		record, err := f.calls.FindRecordByURL(f.bob, url)
		req.NoError(err)
		req.Equal(domain.CallInComing, record.Status)
	})

	t.Run("joining twice changes nothing", func(t *testing.T) {
		req.NoError(f.svc.JoinCall(f.bob, url))

		record, err := f.calls.FindRecordByURL(f.bob, url)
		req.NoError(err)
		req.Equal(domain.CallInComing, record.Status)
	})

	t.Run("the initiator's own record stays OutGoing", func(t *testing.T) {
		req.NoError(f.svc.JoinCall(f.alice, url))

		record, err := f.calls.FindRecordByURL(f.alice, url)
		req.NoError(err)
		req.Equal(domain.CallOutGoing, record.Status)
	})

	t.Run("unknown URL is a no-op", func(t *testing.T) {
		req.NoError(f.svc.JoinCall(f.bob, "https://v.example/r/ghost"))
	})
}

func TestCallService_CancelCall(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newCallFixture(t, ctrl)

	url := "https://v.example/r/abc"
	f.provider.EXPECT().CreateRoom(gomock.Any()).Return(url, nil).Times(1)
	f.router.EXPECT().SendToUser(f.bob, gomock.Any()).Times(1)

	_, err := f.svc.InitiateDirectCall(context.Background(), f.alice, f.bob)
	req.NoError(err)

	t.Run("tears down the room", func(t *testing.T) {
		f.provider.EXPECT().DeleteRoom(gomock.Any(), url).Return(nil).Times(1)
		f.svc.CancelCall(context.Background(), f.alice, url)
	})

	t.Run("provider failure is swallowed", func(t *testing.T) {
		f.provider.EXPECT().DeleteRoom(gomock.Any(), url).
			Return(fmt.Errorf("daily: 500")).Times(1)
		f.svc.CancelCall(context.Background(), f.alice, url)
	})

	t.Run("unknown URL never reaches the provider", func(t *testing.T) {
		f.provider.EXPECT().DeleteRoom(gomock.Any(), gomock.Any()).Times(0)
		f.svc.CancelCall(context.Background(), f.alice, "https://v.example/r/ghost")
	})
}

func TestCallService_Concurrent_Direct_Calls_One_Thread_Per_Pair(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newCallFixture(t, ctrl)

	var counter atomic.Int64
	f.provider.EXPECT().CreateRoom(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (string, error) {
			return fmt.Sprintf("https://v.example/r/%d", counter.Add(1)), nil
		}).
		AnyTimes()
	f.router.EXPECT().SendToUser(gomock.Any(), gomock.Any()).AnyTimes()

	// When 100 calls race in both directions of the same pair
	attempts := 100
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		caller, callee := f.alice, f.bob
		if i%2 == 1 {
			caller, callee = f.bob, f.alice
		}
		go func() {
			defer wg.Done()
			_, err := f.svc.InitiateDirectCall(context.Background(), caller, callee)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		req.NoError(err)
	}

	// Then every attempt landed on the single pair thread
	records, err := f.calls.RecordsForThread(domain.DirectThreadCode(f.alice, f.bob))
	req.NoError(err)
	req.Len(records, 2*attempts)
	req.Equal(attempts, countByStatus(records, domain.CallOutGoing))

	// And no one sees more than that one shared thread
	threads, err := f.calls.ThreadsForUser(f.alice)
	req.NoError(err)
	req.Len(threads, 1)
}
