package message

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sv1nxmmvt/GigaChat/internal/common"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type sendMessageRequest struct {
	ChatID        string   `json:"chat_id"`
	Content       string   `json:"content"`
	AttachmentIDs []string `json:"attachment_ids"`
}

type updateMessageRequest struct {
	Content string `json:"content"`
}

// GetMessages handles GET /api/chats/{chatId}/messages?skip=&take=
func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}
	chatID := mux.Vars(r)["chatId"]

	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	take, _ := strconv.Atoi(r.URL.Query().Get("take"))

	messages, err := h.service.Page(r.Context(), chatID, userID, skip, take)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, messages)
}

// Send handles POST /api/messages
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, common.ErrInvalidInput)
		return
	}

	msg, err := h.service.Append(r.Context(), req.ChatID, userID, req.Content, req.AttachmentIDs)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, msg)
}

// Update handles PUT /api/messages/{messageId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}
	messageID := mux.Vars(r)["messageId"]

	var req updateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, common.ErrInvalidInput)
		return
	}

	msg, err := h.service.Edit(r.Context(), messageID, userID, req.Content)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, msg)
}

// Delete handles DELETE /api/messages/{messageId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}
	messageID := mux.Vars(r)["messageId"]

	if err := h.service.SoftDelete(r.Context(), messageID, userID); err != nil {
		common.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
