package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"vchat/auth"
	"vchat/domain"
	"vchat/projection"
	"vchat/services"

	"github.com/go-chi/chi/v5"
)

type CallHandler struct {
	log     *slog.Logger
	calls   services.ICallService
	history *projection.History
}

func NewCallHandler(log *slog.Logger, calls services.ICallService,
	history *projection.History) *CallHandler {
	return &CallHandler{log: log, calls: calls, history: history}
}

type directCallRequest struct {
	Callee string `json:"callee"`
}

type groupCallRequest struct {
	Group string `json:"group"`
}

type roomURLRequest struct {
	URL string `json:"url"`
}

type roomURLResponse struct {
	URL string `json:"url"`
}

// InitiateDirect handles POST /api/calls/direct.
func (h *CallHandler) InitiateDirect(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}
	var req directCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	url, err := h.calls.InitiateDirectCall(r.Context(), caller, domain.UserID(req.Callee))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, roomURLResponse{URL: url})
}

// InitiateGroup handles POST /api/calls/group.
func (h *CallHandler) InitiateGroup(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}
	var req groupCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	url, err := h.calls.InitiateGroupCall(r.Context(), caller, domain.GroupID(req.Group))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, roomURLResponse{URL: url})
}

// Join handles POST /api/calls/join. Idempotent: joining an unknown or
// already joined call is not an error.
func (h *CallHandler) Join(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}
	var req roomURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.calls.JoinCall(user, req.URL); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Cancel handles POST /api/calls/cancel. Always succeeds from the caller's
// point of view; deprovisioning failures are logged server-side.
func (h *CallHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}
	var req roomURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.calls.CancelCall(r.Context(), user, req.URL)
	w.WriteHeader(http.StatusNoContent)
}

// History handles GET /api/calls/history.
func (h *CallHandler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}
	threads, err := h.history.ListThreadsForUser(user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, threads)
}

// HistoryByThread handles GET /api/calls/history/{code}.
func (h *CallHandler) HistoryByThread(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}
	records, err := h.history.ListRecordsForThread(user, chi.URLParam(r, "code"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}
