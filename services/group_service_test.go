package services

import (
	"log/slog"
	"testing"
	"time"

	"vchat/domain"
	"vchat/errors"
	"vchat/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGroupService_CreateGroup(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	groups := mocks.NewMockIGroupRepository(ctrl)
	sessions := mocks.NewMockISessionService(ctrl)
	svc := NewGroupService(slog.Default(), groups, sessions)

	creator := domain.UserID("alice")
	members := []domain.UserID{"bob", "clara"}

	groups.EXPECT().Save(gomock.Any()).Return(nil).Times(1)

	// Every member of the new group gets resynced, creator included
	sessions.EXPECT().Resync(domain.UserID("bob")).Times(1)
	sessions.EXPECT().Resync(domain.UserID("clara")).Times(1)
	sessions.EXPECT().Resync(creator).Times(1)

	group, err := svc.CreateGroup(creator, "Team", members)
	req.NoError(err)
	req.NotEmpty(group.Code)
	req.Equal(creator, group.CreatedBy)

	// The creator is always a member
	req.True(group.HasMember(creator))
	req.Len(group.Members, 3)
}

func TestGroupService_UpdateMembers_Resyncs_Former_And_Current(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	groups := mocks.NewMockIGroupRepository(ctrl)
	sessions := mocks.NewMockISessionService(ctrl)
	svc := NewGroupService(slog.Default(), groups, sessions)

	code := domain.GroupID("g:team")
	stored := domain.Group{
		Code:      code,
		Name:      "Team",
		CreatedBy: domain.UserID("alice"),
		Members:   []domain.UserID{"alice", "bob"},
		Created:   time.Now().UTC(),
	}
	groups.EXPECT().Get(code).Return(stored, nil).Times(1)
	groups.EXPECT().Save(gomock.Any()).Return(nil).Times(1)

	// When bob is replaced by clara
	// Then bob (removed), clara (added) and alice (kept) are all resynced
	sessions.EXPECT().Resync(domain.UserID("alice")).Times(2)
	sessions.EXPECT().Resync(domain.UserID("bob")).Times(1)
	sessions.EXPECT().Resync(domain.UserID("clara")).Times(1)

	group, err := svc.UpdateMembers(code, []domain.UserID{"alice", "clara"})
	req.NoError(err)
	req.True(group.HasMember(domain.UserID("clara")))
	req.False(group.HasMember(domain.UserID("bob")))
}

func TestGroupService_UpdateMembers_Unknown_Group(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	groups := mocks.NewMockIGroupRepository(ctrl)
	sessions := mocks.NewMockISessionService(ctrl)
	svc := NewGroupService(slog.Default(), groups, sessions)

	code := domain.GroupID("g:ghost")
	groups.EXPECT().Get(code).Return(domain.Group{}, errors.ErrGroupNotFound).Times(1)
	sessions.EXPECT().Resync(gomock.Any()).Times(0)

	_, err := svc.UpdateMembers(code, []domain.UserID{"alice"})
	req.ErrorIs(err, errors.ErrGroupNotFound)
}
