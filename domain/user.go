package domain

import "time"

// UserID is the opaque stable identity of an account, issued at signup.
type UserID string

// User is an account with its display profile.
// PasswordHash never leaves the auth/repository layers.
type User struct {
	ID           UserID
	Email        string
	FullName     string
	Avatar       string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
}
