package repositories

import (
	"log/slog"
	"testing"
	"time"

	"vchat/domain"
	"vchat/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *badger.DB {
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newCallRecord(thread string, user domain.UserID, status domain.CallStatus,
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

func Test_EnsureThread_Creates_Then_Returns_Existing(t *testing.T) {
	req := require.New(t)
	repository := NewCallRepository(openTestDB(t), slog.Default())

	alice := domain.UserID("alice")
	bob := domain.UserID("bob")
	code := domain.DirectThreadCode(alice, bob)
	at := time.Now().UTC()

	// When ensuring a thread that doesn't exist yet
	created, err := repository.EnsureThread(domain.CallThread{
		Code: code, Kind: domain.ThreadDirect, CreatedBy: alice,
		Created: at, LastActive: at,
	})
	req.NoError(err)
	req.Equal(code, created.Code)
	req.Equal(alice, created.CreatedBy)

	// When ensuring the same code again with a different template
	later := at.Add(time.Hour)
	existing, err := repository.EnsureThread(domain.CallThread{
		Code: code, Kind: domain.ThreadDirect, CreatedBy: bob,
		Created: later, LastActive: later,
	})
	req.NoError(err)

	// Then the stored thread wins: same creator, same creation time
	req.Equal(alice, existing.CreatedBy)
	req.Equal(at, existing.Created)
}

func Test_GetThread_Unknown_Code(t *testing.T) {
	req := require.New(t)
	repository := NewCallRepository(openTestDB(t), slog.Default())

	_, err := repository.GetThread("s:ghost:nobody")
	req.ErrorIs(err, errors.ErrThreadNotFound)
}

func Test_AppendRecords_Newest_First_Ordering(t *testing.T) {
	req := require.New(t)
	repository := NewCallRepository(openTestDB(t), slog.Default())

	alice := domain.UserID("alice")
	bob := domain.UserID("bob")
	code := domain.DirectThreadCode(alice, bob)
	at := time.Now().UTC()

	_, err := repository.EnsureThread(domain.CallThread{
		Code: code, Kind: domain.ThreadDirect, CreatedBy: alice,
		Created: at, LastActive: at,
	})
	req.NoError(err)

	// Given three call attempts at t, t+1m, t+2m
	urls := []string{"https://v.example/r/1", "https://v.example/r/2", "https://v.example/r/3"}
	for i, url := range urls {
		when := at.Add(time.Duration(i) * time.Minute)
		err = repository.AppendRecords([]domain.CallRecord{
			newCallRecord(code, alice, domain.CallOutGoing, url, when),
			newCallRecord(code, bob, domain.CallMissed, url, when),
		})
		req.NoError(err)
	}

	// When fetching the thread's records
	records, err := repository.RecordsForThread(code)
	req.NoError(err)
	req.Len(records, 6)

	// Then they come back newest first
	req.Equal(urls[2], records[0].URL)
	req.Equal(urls[2], records[1].URL)
	req.Equal(urls[1], records[2].URL)
	req.Equal(urls[0], records[4].URL)

	// And the thread's LastActive advanced to the newest attempt
	thread, err := repository.GetThread(code)
	req.NoError(err)
	req.Equal(at.Add(2*time.Minute), thread.LastActive)
}

func Test_FindRecordByURL(t *testing.T) {
	req := require.New(t)
	repository := NewCallRepository(openTestDB(t), slog.Default())

	alice := domain.UserID("alice")
	bob := domain.UserID("bob")
	code := domain.DirectThreadCode(alice, bob)
	at := time.Now().UTC()
	url := "https://v.example/r/abc"

	_, err := repository.EnsureThread(domain.CallThread{
		Code: code, Kind: domain.ThreadDirect, CreatedBy: alice,
		Created: at, LastActive: at,
	})
	req.NoError(err)

	invite := newCallRecord(code, bob, domain.CallMissed, url, at)
	err = repository.AppendRecords([]domain.CallRecord{
		newCallRecord(code, alice, domain.CallOutGoing, url, at),
		invite,
	})
	req.NoError(err)

	t.Run("finds the user's own record for the room URL", func(t *testing.T) {
		record, err := repository.FindRecordByURL(bob, url)
		req.NoError(err)
		req.Equal(invite.ID, record.ID)
		req.Equal(domain.CallMissed, record.Status)
	})

	t.Run("unknown URL", func(t *testing.T) {
		_, err := repository.FindRecordByURL(bob, "https://v.example/r/ghost")
		req.ErrorIs(err, errors.ErrCallNotFound)
	})

	t.Run("known URL but wrong user", func(t *testing.T) {
		_, err := repository.FindRecordByURL(domain.UserID("clara"), url)
		req.ErrorIs(err, errors.ErrCallNotFound)
	})
}

func Test_SaveRecord_Status_Flip_Lands_On_Same_Key(t *testing.T) {
	req := require.New(t)
	repository := NewCallRepository(openTestDB(t), slog.Default())

	alice := domain.UserID("alice")
	bob := domain.UserID("bob")
	code := domain.DirectThreadCode(alice, bob)
	at := time.Now().UTC()
	url := "https://v.example/r/abc"

	_, err := repository.EnsureThread(domain.CallThread{
		Code: code, Kind: domain.ThreadDirect, CreatedBy: alice,
		Created: at, LastActive: at,
	})
	req.NoError(err)

	invite := newCallRecord(code, bob, domain.CallMissed, url, at)
	err = repository.AppendRecords([]domain.CallRecord{invite})
	req.NoError(err)

	// When the invitee joins and the record flips to InComing
	invite.Status = domain.CallInComing
	err = repository.SaveRecord(invite)
	req.NoError(err)

	// Then both lookups see the new status and no duplicate appeared
	record, err := repository.FindRecordByURL(bob, url)
	req.NoError(err)
	req.Equal(domain.CallInComing, record.Status)

	records, err := repository.RecordsForThread(code)
	req.NoError(err)
	req.Len(records, 1)
	req.Equal(domain.CallInComing, records[0].Status)
}

func Test_ThreadsForUser(t *testing.T) {
	req := require.New(t)
	repository := NewCallRepository(openTestDB(t), slog.Default())

	alice := domain.UserID("alice")
	bob := domain.UserID("bob")
	clara := domain.UserID("clara")
	at := time.Now().UTC()

	// Given alice talked to bob and to clara, and bob never talked to clara
	for _, pair := range [][2]domain.UserID{{alice, bob}, {alice, clara}} {
		code := domain.DirectThreadCode(pair[0], pair[1])
		_, err := repository.EnsureThread(domain.CallThread{
			Code: code, Kind: domain.ThreadDirect, CreatedBy: pair[0],
			Created: at, LastActive: at,
		})
		req.NoError(err)
		err = repository.AppendRecords([]domain.CallRecord{
			newCallRecord(code, pair[0], domain.CallOutGoing, "https://v.example/r/"+code, at),
			newCallRecord(code, pair[1], domain.CallMissed, "https://v.example/r/"+code, at),
		})
		req.NoError(err)
	}

	aliceThreads, err := repository.ThreadsForUser(alice)
	req.NoError(err)
	req.Len(aliceThreads, 2)

	bobThreads, err := repository.ThreadsForUser(bob)
	req.NoError(err)
	req.Len(bobThreads, 1)
	req.Equal(domain.DirectThreadCode(alice, bob), bobThreads[0].Code)

	nobody, err := repository.ThreadsForUser(domain.UserID("ghost"))
	req.NoError(err)
	req.Empty(nobody)
}
