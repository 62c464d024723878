package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"vchat/auth"
	"vchat/domain"
	"vchat/services"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

type GroupHandler struct {
	log    *slog.Logger
	groups services.IGroupService
}

func NewGroupHandler(log *slog.Logger, groups services.IGroupService) *GroupHandler {
	return &GroupHandler{log: log, groups: groups}
}

type createGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type updateMembersRequest struct {
	Members []string `json:"members"`
}

type groupResponse struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// Create handles POST /api/groups.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	creator, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}
	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	group, err := h.groups.CreateGroup(creator, req.Name, toUserIDs(req.Members))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toGroupResponse(group))
}

// UpdateMembers handles PUT /api/groups/{code}/members.
func (h *GroupHandler) UpdateMembers(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserFromContext(r.Context()); !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}
	var req updateMembersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	code := domain.GroupID(chi.URLParam(r, "code"))
	group, err := h.groups.UpdateMembers(code, toUserIDs(req.Members))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toGroupResponse(group))
}

func toUserIDs(members []string) []domain.UserID {
	return lo.Map(members, func(member string, _ int) domain.UserID {
		return domain.UserID(member)
	})
}

func toGroupResponse(group domain.Group) groupResponse {
	return groupResponse{
		Code: string(group.Code),
		Name: group.Name,
		Members: lo.Map(group.Members, func(member domain.UserID, _ int) string {
			return string(member)
		}),
	}
}
