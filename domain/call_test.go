package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirectThreadCode_Is_Symmetric(t *testing.T) {
	req := require.New(t)
	alice := UserID("alice")
	bob := UserID("bob")

	// Both directions of a pair derive the same code
	req.Equal(DirectThreadCode(alice, bob), DirectThreadCode(bob, alice))
	req.Equal("s:alice:bob", DirectThreadCode(bob, alice))

	// Distinct pairs never collide
	req.NotEqual(DirectThreadCode(alice, bob), DirectThreadCode(alice, UserID("clara")))
}

func TestGroup_HasMember(t *testing.T) {
	req := require.New(t)
	group := Group{
		Code:    GroupID("g:team"),
		Members: []UserID{"alice", "bob"},
	}

	req.True(group.HasMember(UserID("alice")))
	req.False(group.HasMember(UserID("clara")))
}
