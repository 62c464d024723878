// Package projection builds read views from persisted call records.
// It derives, orders, and substitutes; it never mutates stored state.
package projection

import (
	"log/slog"
	"sort"
	"time"

	"vchat/domain"
	"vchat/repositories"

	"github.com/samber/lo"
)

// CallView is one record as the viewing user sees it. For 1:1 threads the
// identity fields carry the counterpart, never the viewer: the UI always
// shows "who I talked to".
type CallView struct {
	User     domain.UserID     `json:"userCode"`
	FullName string            `json:"fullName"`
	Avatar   string            `json:"avatar"`
	Status   domain.CallStatus `json:"status"`
	URL      string            `json:"url"`
	Created  time.Time         `json:"created"`
}

// ThreadView is a conversation in the call-history list.
type ThreadView struct {
	Code       string            `json:"code"`
	Kind       domain.ThreadKind `json:"kind"`
	Name       string            `json:"name"`
	Avatar     string            `json:"avatar"`
	LastActive time.Time         `json:"lastActive"`
	Calls      []CallView        `json:"calls"`
	LastCall   *CallView         `json:"lastCall,omitempty"`
}

// History aggregates per-user call history from the coordinator's records.
type History struct {
	log    *slog.Logger
	calls  repositories.ICallRepository
	users  repositories.IUserRepository
	groups repositories.IGroupRepository
}

func NewHistory(log *slog.Logger, calls repositories.ICallRepository,
	users repositories.IUserRepository, groups repositories.IGroupRepository) *History {
	return &History{log: log, calls: calls, users: users, groups: groups}
}

// ListThreadsForUser returns every thread the user appears in, most recently
// active first, each with its records newest-first. Direct threads are
// displayed under the counterpart's name and avatar; that substitution is a
// presentation transform, nothing is rewritten in the store.
func (h *History) ListThreadsForUser(user domain.UserID) ([]ThreadView, error) {
	threads, err := h.calls.ThreadsForUser(user)
	if err != nil {
		return nil, err
	}

	views := make([]ThreadView, 0, len(threads))
	for _, thread := range threads {
		records, err := h.calls.RecordsForThread(thread.Code)
		if err != nil {
			return nil, err
		}
		view := ThreadView{
			Code:       thread.Code,
			Kind:       thread.Kind,
			LastActive: thread.LastActive,
			Calls:      h.toViews(records),
		}
		if len(view.Calls) > 0 {
			view.LastCall = &view.Calls[0]
		}
		h.nameThread(&view, user, records)
		views = append(views, view)
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].LastActive.After(views[j].LastActive)
	})
	return views, nil
}

// ListRecordsForThread returns the viewing user's own records for one
// thread, newest first. For Direct threads the identity on every record is
// replaced by the counterpart's.
func (h *History) ListRecordsForThread(user domain.UserID, code string) ([]CallView, error) {
	thread, err := h.calls.GetThread(code)
	if err != nil {
		return nil, err
	}
	records, err := h.calls.RecordsForThread(code)
	if err != nil {
		return nil, err
	}

	own := lo.Filter(records, func(record domain.CallRecord, _ int) bool {
		return record.User == user
	})
	views := h.toViews(own)

	if thread.Kind == domain.ThreadDirect {
		if counterpart, ok := h.counterpart(user, records); ok {
			for i := range views {
				views[i].User = counterpart.ID
				views[i].FullName = counterpart.FullName
				views[i].Avatar = counterpart.Avatar
			}
		}
	}
	return views, nil
}

// nameThread fills the displayed name and avatar: the counterpart's for a
// Direct thread, the group's for a Group thread.
func (h *History) nameThread(view *ThreadView, user domain.UserID, records []domain.CallRecord) {
	switch view.Kind {
	case domain.ThreadDirect:
		if counterpart, ok := h.counterpart(user, records); ok {
			view.Name = counterpart.FullName
			view.Avatar = counterpart.Avatar
		}
	case domain.ThreadGroup:
		group, err := h.groups.Get(domain.GroupID(view.Code))
		if err != nil {
			h.log.Warn("Group thread without a group", "code", view.Code, "error", err)
			return
		}
		view.Name = group.Name
		view.Avatar = group.Avatar
	}
}

// counterpart resolves the other participant of a Direct thread.
func (h *History) counterpart(user domain.UserID, records []domain.CallRecord) (domain.User, bool) {
	record, found := lo.Find(records, func(record domain.CallRecord) bool {
		return record.User != user
	})
	if !found {
		return domain.User{}, false
	}
	other, err := h.users.GetByID(record.User)
	if err != nil {
		h.log.Warn("Counterpart lookup failed", "user", record.User, "error", err)
		return domain.User{}, false
	}
	return other, true
}

func (h *History) toViews(records []domain.CallRecord) []CallView {
	// Profiles repeat across records; one lookup per distinct participant.
	profiles := make(map[domain.UserID]domain.User)
	return lo.Map(records, func(record domain.CallRecord, _ int) CallView {
		profile, ok := profiles[record.User]
		if !ok {
			var err error
			profile, err = h.users.GetByID(record.User)
			if err != nil {
				h.log.Warn("Profile lookup failed", "user", record.User, "error", err)
			}
			profiles[record.User] = profile
		}
		return CallView{
			User:     record.User,
			FullName: profile.FullName,
			Avatar:   profile.Avatar,
			Status:   record.Status,
			URL:      record.URL,
			Created:  record.Created,
		}
	})
}
