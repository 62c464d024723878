package repositories

import (
	"testing"

	"vchat/errors"

	"github.com/stretchr/testify/require"
)

func Test_CreateUser_And_Lookups(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openTestDB(t))

	id, err := repository.CreateUser("alice@example.com", "Alice Doe", "$argon2id$hash")
	req.NoError(err)
	req.NotEmpty(id)

	byEmail, err := repository.GetByEmail("alice@example.com")
	req.NoError(err)
	req.Equal(id, byEmail.ID)
	req.Equal("Alice Doe", byEmail.FullName)
	req.Equal([]string{"user"}, byEmail.Roles)

	byID, err := repository.GetByID(id)
	req.NoError(err)
	req.Equal(byEmail, byID)
}

func Test_CreateUser_Duplicate_Email(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openTestDB(t))

	_, err := repository.CreateUser("alice@example.com", "Alice Doe", "$argon2id$hash")
	req.NoError(err)

	_, err = repository.CreateUser("alice@example.com", "Alice Clone", "$argon2id$other")
	req.ErrorIs(err, errors.ErrUserAlreadyExists)
}

func Test_User_Not_Found(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openTestDB(t))

	_, err := repository.GetByEmail("ghost@example.com")
	req.ErrorIs(err, errors.ErrUserNotFound)

	_, err = repository.GetByID("nope")
	req.ErrorIs(err, errors.ErrUserNotFound)
}
