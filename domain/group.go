package domain

import "time"

// GroupID is the stable identifier of a group.
type GroupID string

// Group holds the membership set used for broadcast resolution and for the
// membership snapshot taken at group-call time.
type Group struct {
	Code      GroupID
	Name      string
	Avatar    string
	CreatedBy UserID
	Members   []UserID
	Created   time.Time
}

// HasMember reports whether user belongs to the group.
func (g Group) HasMember(user UserID) bool {
	for _, m := range g.Members {
		if m == user {
			return true
		}
	}
	return false
}
