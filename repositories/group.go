//go:generate go run go.uber.org/mock/mockgen -source=group.go -destination=../mocks/mock_group_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"vchat/domain"
	"vchat/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

type IGroupRepository interface {
	Save(group domain.Group) error
	Get(code domain.GroupID) (domain.Group, error)
	MembersOf(code domain.GroupID) ([]domain.UserID, error)
	IsMember(code domain.GroupID, user domain.UserID) (bool, error)
	GroupsForUser(user domain.UserID) ([]domain.GroupID, error)
}

// GroupRepository is the read view of group memberships used by the session
// registry and the call coordinator. Mutations originate in the CRUD surface;
// the core only ever re-queries.
//
// Key layout:
//
//	group:{code}               -> diskGroup
//	groupmember:{user}:{code}  -> code
//
// The groupmember index answers "which groups does this user belong to",
// which the registry needs on every bind.
type GroupRepository struct {
	db *badger.DB
}

func NewGroupRepository(db *badger.DB) GroupRepository {
	return GroupRepository{db: db}
}

type diskGroup struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Avatar    string   `json:"avatar"`
	CreatedBy string   `json:"created_by"`
	Members   []string `json:"members"`
	Created   int64    `json:"created"`
}

func groupKey(code domain.GroupID) []byte {
	return []byte("group:" + code)
}

func groupMemberKey(user domain.UserID, code domain.GroupID) []byte {
	return []byte(fmt.Sprintf("groupmember:%s:%s", user, code))
}

// Save writes the group and rebuilds its side of the membership index.
// Members removed since the previous save lose their index entry so that the
// registry stops subscribing them.
func (g GroupRepository) Save(group domain.Group) error {
	bytes, err := json.Marshal(fromGroup(group))
	if err != nil {
		return err
	}
	return g.db.Update(func(txn *badger.Txn) error {
		var previous []domain.UserID
		if item, err := txn.Get(groupKey(group.Code)); err == nil {
			err = item.Value(func(val []byte) error {
				old, err := decodeGroup(val)
				if err != nil {
					return err
				}
				previous = old.Members
				return nil
			})
			if err != nil {
				return err
			}
		}
		for _, user := range previous {
			if !group.HasMember(user) {
				if err := txn.Delete(groupMemberKey(user, group.Code)); err != nil {
					return err
				}
			}
		}
		for _, user := range group.Members {
			if err := txn.Set(groupMemberKey(user, group.Code), []byte(group.Code)); err != nil {
				return err
			}
		}
		return txn.Set(groupKey(group.Code), bytes)
	})
}

func (g GroupRepository) Get(code domain.GroupID) (domain.Group, error) {
	var group domain.Group
	err := g.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(groupKey(code))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			group, err = decodeGroup(val)
			return err
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Group{}, errors.ErrGroupNotFound
	}
	return group, err
}

// MembersOf returns the membership set, or an empty set for an unknown group.
// "Group not found" is not an error on this read path.
func (g GroupRepository) MembersOf(code domain.GroupID) ([]domain.UserID, error) {
	group, err := g.Get(code)
	if errors.Is(err, errors.ErrGroupNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return group.Members, nil
}

func (g GroupRepository) IsMember(code domain.GroupID, user domain.UserID) (bool, error) {
	members, err := g.MembersOf(code)
	if err != nil {
		return false, err
	}
	return lo.Contains(members, user), nil
}

// GroupsForUser scans the groupmember index for every group the user
// belongs to. Queried once per bind and on every resync.
func (g GroupRepository) GroupsForUser(user domain.UserID) ([]domain.GroupID, error) {
	var groups []domain.GroupID
	err := g.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("groupmember:%s:", user))
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			groups = append(groups, domain.GroupID(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	return groups, err
}

func fromGroup(group domain.Group) diskGroup {
	return diskGroup{
		Code:      string(group.Code),
		Name:      group.Name,
		Avatar:    group.Avatar,
		CreatedBy: string(group.CreatedBy),
		Members: lo.Map(group.Members, func(user domain.UserID, _ int) string {
			return string(user)
		}),
		Created: group.Created.UnixNano(),
	}
}

func decodeGroup(val []byte) (domain.Group, error) {
	var disk diskGroup
	if err := json.Unmarshal(val, &disk); err != nil {
		return domain.Group{}, err
	}
	return domain.Group{
		Code:      domain.GroupID(disk.Code),
		Name:      disk.Name,
		Avatar:    disk.Avatar,
		CreatedBy: domain.UserID(disk.CreatedBy),
		Members: lo.Map(disk.Members, func(user string, _ int) domain.UserID {
			return domain.UserID(user)
		}),
		Created: time.Unix(0, disk.Created).UTC(),
	}, nil
}
