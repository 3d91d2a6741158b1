package chat

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/sv1nxmmvt/GigaChat/internal/common"
	"github.com/sv1nxmmvt/GigaChat/internal/membership"
)

type Handler struct {
	service Service
	members membership.Service
}

func NewHandler(service Service, members membership.Service) *Handler {
	return &Handler{service: service, members: members}
}

// List handles GET /api/chats
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}

	views, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, views)
}

// Get handles GET /api/chats/{chatId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}

	view, err := h.service.GetByID(r.Context(), mux.Vars(r)["chatId"], userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, view)
}

// Create handles POST /api/chats
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, common.ErrInvalidInput)
		return
	}

	view, err := h.service.Create(r.Context(), req, userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, view)
}

// Update handles PUT /api/chats/{chatId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, common.ErrInvalidInput)
		return
	}

	view, err := h.service.Update(r.Context(), mux.Vars(r)["chatId"], req, userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, view)
}

// Delete handles DELETE /api/chats/{chatId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}

	if err := h.service.Delete(r.Context(), mux.Vars(r)["chatId"], userID); err != nil {
		common.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addMemberRequest struct {
	UserID string `json:"user_id"`
}

// AddMember handles POST /api/chats/{chatId}/members
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		common.WriteError(w, common.ErrInvalidInput)
		return
	}

	if err := h.service.AddMember(r.Context(), mux.Vars(r)["chatId"], req.UserID, userID); err != nil {
		common.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// RemoveMember handles DELETE /api/chats/{chatId}/members/{userId}
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}
	vars := mux.Vars(r)

	if err := h.members.RemoveMember(r.Context(), vars["chatId"], vars["userId"], userID); err != nil {
		common.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Promote handles POST /api/chats/{chatId}/members/{userId}/promote
func (h *Handler) Promote(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}
	vars := mux.Vars(r)

	if err := h.members.Promote(r.Context(), vars["chatId"], vars["userId"], userID); err != nil {
		common.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type markReadRequest struct {
	Timestamp time.Time `json:"timestamp"`
}

// MarkRead handles POST /api/chats/{chatId}/read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}

	var req markReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, common.ErrInvalidInput)
		return
	}
	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now().UTC()
	}

	if err := h.members.AdvanceReadCursor(r.Context(), mux.Vars(r)["chatId"], userID, req.Timestamp); err != nil {
		common.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Unread handles GET /api/chats/{chatId}/unread
func (h *Handler) Unread(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}

	count, err := h.members.UnreadCount(r.Context(), mux.Vars(r)["chatId"], userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]int64{"unread_count": count})
}
