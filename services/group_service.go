//go:generate go run go.uber.org/mock/mockgen -source=group_service.go -destination=../mocks/mock_group_service.go -package=mocks
package services

import (
	"log/slog"
	"time"

	"vchat/domain"
	"vchat/repositories"

	"github.com/google/uuid"
)

type IGroupService interface {
	CreateGroup(creator domain.UserID, name string, members []domain.UserID) (domain.Group, error)
	UpdateMembers(code domain.GroupID, members []domain.UserID) (domain.Group, error)
}

// GroupService is the minimal mutation surface for groups. Its single
// responsibility beyond persistence is keeping open registry subscriptions
// consistent: every membership change triggers a resync of the affected
// connections.
type GroupService struct {
	log      *slog.Logger
	groups   repositories.IGroupRepository
	sessions ISessionService
}

func NewGroupService(log *slog.Logger, groups repositories.IGroupRepository,
	sessions ISessionService) *GroupService {
	return &GroupService{log: log, groups: groups, sessions: sessions}
}

// CreateGroup persists the group and resubscribes every member that already
// has a live connection.
func (s *GroupService) CreateGroup(creator domain.UserID, name string, members []domain.UserID) (domain.Group, error) {
	group := domain.Group{
		Code:      domain.GroupID(uuid.NewString()),
		Name:      name,
		CreatedBy: creator,
		Members:   withMember(members, creator),
		Created:   time.Now().UTC(),
	}
	if err := s.groups.Save(group); err != nil {
		return domain.Group{}, err
	}
	for _, member := range group.Members {
		s.sessions.Resync(member)
	}
	return group, nil
}

// UpdateMembers replaces the membership set. Both former and current members
// are resynced: the removed ones lose the subscription, the added ones gain it.
func (s *GroupService) UpdateMembers(code domain.GroupID, members []domain.UserID) (domain.Group, error) {
	group, err := s.groups.Get(code)
	if err != nil {
		return domain.Group{}, err
	}
	previous := group.Members
	group.Members = withMember(members, group.CreatedBy)
	if err := s.groups.Save(group); err != nil {
		return domain.Group{}, err
	}
	for _, member := range previous {
		s.sessions.Resync(member)
	}
	for _, member := range group.Members {
		s.sessions.Resync(member)
	}
	return group, nil
}

// withMember guarantees user is part of the set without duplicating it.
func withMember(members []domain.UserID, user domain.UserID) []domain.UserID {
	for _, m := range members {
		if m == user {
			return members
		}
	}
	return append(members, user)
}
