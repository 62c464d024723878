//go:generate go run go.uber.org/mock/mockgen -source=call.go -destination=../mocks/mock_call_repository.go -package=mocks
package repositories

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"vchat/domain"
	"vchat/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type ICallRepository interface {
	EnsureThread(thread domain.CallThread) (domain.CallThread, error)
	GetThread(code string) (domain.CallThread, error)
	AppendRecords(records []domain.CallRecord) error
	RecordsForThread(code string) ([]domain.CallRecord, error)
	ThreadsForUser(user domain.UserID) ([]domain.CallThread, error)
	FindRecordByURL(user domain.UserID, url string) (domain.CallRecord, error)
	SaveRecord(record domain.CallRecord) error
}

// CallRepository persists call threads and records in BadgerDB.
//
// Key layout:
//
//	thread:{code}                          -> diskThread
//	call:{code}:{timestamp_padded}:{uuid}  -> diskRecord
//	usercall:{user}:{url_b64}              -> primary record key
//	userthread:{user}:{code}               -> code
//
// The 19-digit zero padding keeps records of a thread in chronological
// lexicographic order, so a reverse prefix scan yields newest-first without
// sorting. The secondary keys answer the two reverse lookups the coordinator
// and the history views need: "my record for this room URL" and "the threads
// I appear in".
type CallRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewCallRepository(db *badger.DB, log *slog.Logger) CallRepository {
	return CallRepository{db: db, log: log}
}

type diskThread struct {
	Code       string `json:"code"`
	Kind       string `json:"kind"`
	CreatedBy  string `json:"created_by"`
	Created    int64  `json:"created"`
	LastActive int64  `json:"last_active"`
}

type diskRecord struct {
	ID      string `json:"id"`
	Thread  string `json:"thread"`
	User    string `json:"user"`
	Status  string `json:"status"`
	URL     string `json:"url"`
	Created int64  `json:"created"`
}

func threadKey(code string) []byte {
	return []byte("thread:" + code)
}

func recordKey(record domain.CallRecord) []byte {
	return []byte(fmt.Sprintf("call:%s:%019d:%s",
		record.Thread,
		record.Created.UnixNano(),
		record.ID,
	))
}

func userCallKey(user domain.UserID, url string) []byte {
	// URLs contain characters that would collide with the ':' separators,
	// so the URL part is base64 encoded.
	return []byte(fmt.Sprintf("usercall:%s:%s",
		user, base64.RawURLEncoding.EncodeToString([]byte(url))))
}

func userThreadKey(user domain.UserID, code string) []byte {
	return []byte(fmt.Sprintf("userthread:%s:%s", user, code))
}

// EnsureThread returns the stored thread for the given code, creating it from
// the template when absent. Running get-or-set inside a single Update
// transaction makes the find-or-create step atomic at the storage level.
func (c CallRepository) EnsureThread(thread domain.CallThread) (domain.CallThread, error) {
	result := thread
	err := c.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(threadKey(thread.Code))
		switch err {
		case nil:
			return item.Value(func(val []byte) error {
				existing, err := decodeThread(val)
				if err != nil {
					return err
				}
				result = existing
				return nil
			})
		case badger.ErrKeyNotFound:
			bytes, err := json.Marshal(fromThread(thread))
			if err != nil {
				return err
			}
			return txn.Set(threadKey(thread.Code), bytes)
		default:
			return err
		}
	})
	if err != nil {
		return domain.CallThread{}, err
	}
	return result, nil
}

func (c CallRepository) GetThread(code string) (domain.CallThread, error) {
	var thread domain.CallThread
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(threadKey(code))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			thread, err = decodeThread(val)
			return err
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.CallThread{}, errors.ErrThreadNotFound
	}
	return thread, err
}

// AppendRecords stores every record of one call attempt in a single
// transaction, together with their secondary keys, and advances the owning
// thread's LastActive. Either the whole attempt is visible or none of it.
func (c CallRepository) AppendRecords(records []domain.CallRecord) error {
	if len(records) == 0 {
		return nil
	}
	return c.db.Update(func(txn *badger.Txn) error {
		for _, record := range records {
			bytes, err := json.Marshal(fromRecord(record))
			if err != nil {
				return err
			}
			key := recordKey(record)
			if err = txn.Set(key, bytes); err != nil {
				return err
			}
			if err = txn.Set(userCallKey(record.User, record.URL), key); err != nil {
				return err
			}
			if err = txn.Set(userThreadKey(record.User, record.Thread), []byte(record.Thread)); err != nil {
				return err
			}
		}
		return c.touchThread(txn, records[0].Thread, records[0].Created)
	})
}

func (c CallRepository) touchThread(txn *badger.Txn, code string, at time.Time) error {
	item, err := txn.Get(threadKey(code))
	if err != nil {
		return err
	}
	var thread domain.CallThread
	if err = item.Value(func(val []byte) error {
		thread, err = decodeThread(val)
		return err
	}); err != nil {
		return err
	}
	if at.Before(thread.LastActive) {
		return nil
	}
	thread.LastActive = at
	bytes, err := json.Marshal(fromThread(thread))
	if err != nil {
		return err
	}
	return txn.Set(threadKey(code), bytes)
}

// RecordsForThread retrieves every record of a thread, newest first.
// Thanks to the padded timestamp in the key, a reverse prefix scan returns
// them already ordered.
func (c CallRepository) RecordsForThread(code string) ([]domain.CallRecord, error) {
	var values [][]byte
	err := c.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("call:%s:", code))
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Seek past the newest possible key, then walk backwards.
		seekKey := append(append([]byte{}, prefix...), []byte("9999999999999999999:~")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				values = append(values, append([]byte{}, val...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decodeRecords(values)
}

// ThreadsForUser resolves the userthread index into full threads.
// Ordering is left to the history projection.
func (c CallRepository) ThreadsForUser(user domain.UserID) ([]domain.CallThread, error) {
	var threads []domain.CallThread
	err := c.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("userthread:%s:", user))
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		var codes []string
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			codes = append(codes, string(it.Item().Key()[len(prefix):]))
		}
		for _, code := range codes {
			item, err := txn.Get(threadKey(code))
			if err != nil {
				// A dangling index entry is not fatal for a history view.
				c.log.Warn("userthread index points to a missing thread",
					"user", user, "code", code)
				continue
			}
			err = item.Value(func(val []byte) error {
				thread, err := decodeThread(val)
				if err != nil {
					return err
				}
				threads = append(threads, thread)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return threads, err
}

// FindRecordByURL looks up the user's own record for a provisioned room URL.
func (c CallRepository) FindRecordByURL(user domain.UserID, url string) (domain.CallRecord, error) {
	var record domain.CallRecord
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userCallKey(user, url))
		if err != nil {
			return err
		}
		var primary []byte
		if err = item.Value(func(val []byte) error {
			primary = append([]byte{}, val...)
			return nil
		}); err != nil {
			return err
		}
		item, err = txn.Get(primary)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			record, err = decodeRecord(val)
			return err
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.CallRecord{}, errors.ErrCallNotFound
	}
	return record, err
}

// SaveRecord rewrites a record in place. The primary key is fully derived
// from immutable fields, so a status flip lands on the same key.
func (c CallRepository) SaveRecord(record domain.CallRecord) error {
	bytes, err := json.Marshal(fromRecord(record))
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(record), bytes)
	})
}

func fromThread(thread domain.CallThread) diskThread {
	return diskThread{
		Code:       thread.Code,
		Kind:       string(thread.Kind),
		CreatedBy:  string(thread.CreatedBy),
		Created:    thread.Created.UnixNano(),
		LastActive: thread.LastActive.UnixNano(),
	}
}

func decodeThread(val []byte) (domain.CallThread, error) {
	var disk diskThread
	if err := json.Unmarshal(val, &disk); err != nil {
		return domain.CallThread{}, err
	}
	return domain.CallThread{
		Code:       disk.Code,
		Kind:       domain.ThreadKind(disk.Kind),
		CreatedBy:  domain.UserID(disk.CreatedBy),
		Created:    time.Unix(0, disk.Created).UTC(),
		LastActive: time.Unix(0, disk.LastActive).UTC(),
	}, nil
}

func fromRecord(record domain.CallRecord) diskRecord {
	return diskRecord{
		ID:      record.ID.String(),
		Thread:  record.Thread,
		User:    string(record.User),
		Status:  string(record.Status),
		URL:     record.URL,
		Created: record.Created.UnixNano(),
	}
}

func decodeRecord(val []byte) (domain.CallRecord, error) {
	var disk diskRecord
	if err := json.Unmarshal(val, &disk); err != nil {
		return domain.CallRecord{}, err
	}
	parsedID, err := uuid.Parse(disk.ID)
	if err != nil {
		return domain.CallRecord{}, err
	}
	return domain.CallRecord{
		ID:      parsedID,
		Thread:  disk.Thread,
		User:    domain.UserID(disk.User),
		Status:  domain.CallStatus(disk.Status),
		URL:     disk.URL,
		Created: time.Unix(0, disk.Created).UTC(),
	}, nil
}

func decodeRecords(values [][]byte) ([]domain.CallRecord, error) {
	records := make([]domain.CallRecord, 0, len(values))
	for _, val := range values {
		record, err := decodeRecord(val)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
