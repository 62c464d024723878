//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"time"

	"vchat/domain"
	"vchat/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IUserRepository interface {
	CreateUser(email, fullName, hashedPassword string) (domain.UserID, error)
	GetByEmail(email string) (domain.User, error)
	GetByID(id domain.UserID) (domain.User, error)
}

// UserRepository persists accounts in BadgerDB.
//
// Key layout:
//
//	user:{id}         -> diskUser
//	useremail:{email} -> id
//
// The email key doubles as the uniqueness guard at signup.
type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

type diskUser struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	FullName     string   `json:"full_name"`
	Avatar       string   `json:"avatar"`
	PasswordHash string   `json:"password_hash"`
	Roles        []string `json:"roles"`
	CreatedAt    int64    `json:"created_at"`
}

func userKey(id domain.UserID) []byte {
	return []byte("user:" + id)
}

func userEmailKey(email string) []byte {
	return []byte("useremail:" + email)
}

// CreateUser persists a new account and returns the generated identity.
// The password is already hashed by the auth layer; the repository never
// sees it in clear.
func (u UserRepository) CreateUser(email, fullName, hashedPassword string) (domain.UserID, error) {
	newID := domain.UserID(uuid.NewString())
	bytes, err := json.Marshal(diskUser{
		ID:           string(newID),
		Email:        email,
		FullName:     fullName,
		PasswordHash: hashedPassword,
		Roles:        []string{"user"},
		CreatedAt:    time.Now().UTC().UnixNano(),
	})
	if err != nil {
		return "", err
	}

	err = u.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(userEmailKey(email)); err == nil {
			return errors.ErrUserAlreadyExists
		}
		if err := txn.Set(userEmailKey(email), []byte(newID)); err != nil {
			return err
		}
		return txn.Set(userKey(newID), bytes)
	})
	if err != nil {
		return "", err
	}
	return newID, nil
}

func (u UserRepository) GetByEmail(email string) (domain.User, error) {
	var id domain.UserID
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userEmailKey(email))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			id = domain.UserID(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.User{}, errors.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return u.GetByID(id)
}

func (u UserRepository) GetByID(id domain.UserID) (domain.User, error) {
	var user domain.User
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			user, err = decodeUser(val)
			return err
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.User{}, errors.ErrUserNotFound
	}
	return user, err
}

func decodeUser(val []byte) (domain.User, error) {
	var disk diskUser
	if err := json.Unmarshal(val, &disk); err != nil {
		return domain.User{}, err
	}
	return domain.User{
		ID:           domain.UserID(disk.ID),
		Email:        disk.Email,
		FullName:     disk.FullName,
		Avatar:       disk.Avatar,
		PasswordHash: disk.PasswordHash,
		Roles:        disk.Roles,
		CreatedAt:    time.Unix(0, disk.CreatedAt).UTC(),
	}, nil
}
